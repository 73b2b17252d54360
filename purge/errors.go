package purge

import "fmt"

// ConfigurationError reports missing or invalid settings or target id.
// Nothing has been read or written when it is returned.
type ConfigurationError struct {
	Cause error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Cause)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// ResolutionError reports a failed id lookup. No deletion was attempted.
type ResolutionError struct {
	Collection string
	Predicate  string
	Cause      error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %s where %s: %v", e.Collection, e.Predicate, e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }

// DeletionError reports a failed delete step. Earlier steps stay deleted.
type DeletionError struct {
	Step       int
	Collection string
	Predicate  string
	Cause      error
}

func (e *DeletionError) Error() string {
	if e.Step > 0 {
		return fmt.Sprintf("step %d: failed to delete from %s where %s: %v", e.Step, e.Collection, e.Predicate, e.Cause)
	}
	return fmt.Sprintf("failed to delete from %s where %s: %v", e.Collection, e.Predicate, e.Cause)
}

func (e *DeletionError) Unwrap() error { return e.Cause }

// RevocationError reports that the identity account survived although all
// application data is gone. An operator has to remove it by hand or re-run.
type RevocationError struct {
	UserID string
	Cause  error
}

func (e *RevocationError) Error() string {
	return fmt.Sprintf("application data removed but identity %s could not be revoked, manual intervention required: %v", e.UserID, e.Cause)
}

func (e *RevocationError) Unwrap() error { return e.Cause }

// RequiresOperator is always true: the store is left without the user's data
// but with a live identity record.
func (e *RevocationError) RequiresOperator() bool { return true }
