package purge

import "time"

// State is the orchestrator's position in a run.
type State string

const (
	StateInit      State = "INIT"
	StateResolving State = "RESOLVING"
	StateDeleting  State = "DELETING"
	StateRevoking  State = "REVOKING"
	StateDone      State = "DONE"
	StateFailed    State = "FAILED"
)

// StepResult records the outcome of one executed or skipped step.
type StepResult struct {
	Number     int
	Collection string
	Predicate  string
	Rows       int64
	Skipped    bool
	Duration   time.Duration
}

// Report is the audit record of a run. It is returned even when the run fails.
type Report struct {
	UserID      string
	PropertyIDs []string
	TenantIDs   []string
	// Steps holds the steps that took effect, including skipped ones.
	Steps         []StepResult
	State         State
	FailedIn      State
	FailedStep    int
	Cause         error
	Revoked       bool
	Transactional bool
	// RolledBack is set when a transactional run failed and its deletes were undone.
	RolledBack bool
	// RolledBackSteps holds the steps executed inside a transaction that was
	// rolled back. None of their rows were removed.
	RolledBackSteps []StepResult
	DryRun          bool
}

// Rows sums removed rows over the steps that took effect.
func (r *Report) Rows() int64 {
	var total int64
	for _, s := range r.Steps {
		total += s.Rows
	}
	return total
}

// Step returns the result for the given step number.
func (r *Report) Step(number int) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Number == number {
			return s, true
		}
	}
	return StepResult{}, false
}

// rollback moves the executed steps out of Steps once their transaction is undone.
func (r *Report) rollback() {
	r.RolledBack = true
	r.RolledBackSteps = r.Steps
	r.Steps = nil
}

func (r *Report) fail(step int, err error) {
	r.FailedIn = r.State
	r.FailedStep = step
	r.Cause = err
	r.State = StateFailed
}
