package purge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Orchestrator runs resolution, the deletion plan and identity revocation for
// one user, stopping at the first failure.
type Orchestrator struct {
	store         Store
	resolver      *Resolver
	revoker       *Revoker
	plan          Plan
	logger        *zap.Logger
	progress      io.Writer
	transactional bool
}

type Option func(*Orchestrator)

// WithLogger sets the audit logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

// WithProgress sets where the line-oriented progress log is written.
func WithProgress(w io.Writer) Option {
	return func(o *Orchestrator) { o.progress = w }
}

// WithPlan replaces the default plan.
func WithPlan(plan Plan) Option {
	return func(o *Orchestrator) { o.plan = plan }
}

// WithTransactions toggles running the deletion steps in a single transaction
// when the store supports it.
func WithTransactions(enabled bool) Option {
	return func(o *Orchestrator) { o.transactional = enabled }
}

// NewOrchestrator creates an Orchestrator over store and provider
func NewOrchestrator(store Store, provider IdentityProvider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:         store,
		resolver:      NewResolver(store),
		revoker:       NewRevoker(provider),
		plan:          DefaultPlan(),
		logger:        zap.NewNop(),
		progress:      io.Discard,
		transactional: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run erases userID and everything depending on it, then revokes the identity.
// The report is always returned and lists the steps completed before a failure.
func (o *Orchestrator) Run(ctx context.Context, userID string) (*Report, error) {
	report := &Report{UserID: userID, State: StateInit}
	log := o.logger.With(zap.String("user_id", userID))

	targets, err := o.resolve(ctx, report, log)
	if err != nil {
		return report, err
	}

	report.State = StateDeleting
	tx, ok := o.store.(Transactor)
	if o.transactional && ok {
		report.Transactional = true
		err = tx.InTransaction(ctx, func(s Store) error {
			return o.deleteAll(ctx, NewDeleter(s), targets, report, log, true)
		})
		if err != nil {
			var delErr *DeletionError
			if !errors.As(err, &delErr) {
				err = &DeletionError{Step: len(report.Steps), Collection: "transaction", Predicate: "commit", Cause: err}
			}
			report.rollback()
			o.printf("transaction rolled back, no rows were removed\n")
			for _, s := range report.RolledBackSteps {
				log.Info("step rolled back",
					zap.Int("step", s.Number),
					zap.String("collection", s.Collection),
					zap.Int64("rows_restored", s.Rows))
			}
		} else {
			for _, s := range report.Steps {
				log.Info("step committed",
					zap.Int("step", s.Number),
					zap.String("collection", s.Collection),
					zap.Int64("rows", s.Rows))
			}
		}
	} else {
		err = o.deleteAll(ctx, NewDeleter(o.store), targets, report, log, false)
	}
	if err != nil {
		var delErr *DeletionError
		step := 0
		if errors.As(err, &delErr) {
			step = delErr.Step
		}
		report.fail(step, err)
		log.Error("deletion failed",
			zap.Int("step", step),
			zap.Ints("completed_steps", stepNumbers(report.Steps)),
			zap.Ints("rolled_back_steps", stepNumbers(report.RolledBackSteps)),
			zap.Bool("rolled_back", report.RolledBack),
			zap.Error(err))
		return report, err
	}

	report.State = StateRevoking
	if err := o.revoker.Revoke(ctx, userID); err != nil {
		report.fail(o.plan.RevocationStep(), err)
		log.Error("identity revocation failed, manual intervention required",
			zap.Int("step", o.plan.RevocationStep()),
			zap.Int64("rows_deleted", report.Rows()),
			zap.Error(err))
		return report, err
	}
	report.Revoked = true
	o.printf("revoked identity %s\n", userID)
	log.Info("identity revoked", zap.Int("step", o.plan.RevocationStep()))

	report.State = StateDone
	log.Info("user erased",
		zap.Int64("rows_deleted", report.Rows()),
		zap.Bool("transactional", report.Transactional))
	return report, nil
}

// DryRun resolves userID and counts what each step would delete without
// writing anything.
func (o *Orchestrator) DryRun(ctx context.Context, userID string) (*Report, error) {
	report := &Report{UserID: userID, State: StateInit, DryRun: true}
	log := o.logger.With(zap.String("user_id", userID), zap.Bool("dry_run", true))

	targets, err := o.resolve(ctx, report, log)
	if err != nil {
		return report, err
	}

	report.State = StateDeleting
	for _, step := range o.plan {
		result := StepResult{Number: step.Number, Collection: step.Collection, Predicate: step.Template}
		if step.Skip(targets) {
			result.Skipped = true
			report.Steps = append(report.Steps, result)
			o.printf("[%d/%d] would skip %s (%s): no %s\n", step.Number, len(o.plan), step.Collection, step.Template, step.Scope)
			continue
		}

		pred := step.Predicate(targets)
		result.Predicate = pred.String()
		n, err := o.store.CountWhere(ctx, step.Collection, pred)
		if err != nil {
			err = &DeletionError{Step: step.Number, Collection: step.Collection, Predicate: pred.String(), Cause: err}
			report.fail(step.Number, err)
			return report, err
		}
		result.Rows = n
		report.Steps = append(report.Steps, result)
		o.printf("[%d/%d] would delete %d row(s) from %s (%s)\n", step.Number, len(o.plan), n, step.Collection, pred)
	}
	o.printf("would revoke identity %s\n", userID)

	report.State = StateDone
	log.Info("dry run complete", zap.Int64("rows", report.Rows()))
	return report, nil
}

func (o *Orchestrator) resolve(ctx context.Context, report *Report, log *zap.Logger) (Targets, error) {
	if strings.TrimSpace(report.UserID) == "" {
		err := &ConfigurationError{Cause: errors.New("target user id is required")}
		report.fail(0, err)
		return Targets{}, err
	}

	report.State = StateResolving
	start := time.Now()
	targets, err := o.resolver.Resolve(ctx, report.UserID)
	if err != nil {
		report.fail(0, err)
		log.Error("resolution failed", zap.Error(err))
		return Targets{}, err
	}
	report.PropertyIDs = targets.PropertyIDs
	report.TenantIDs = targets.TenantIDs

	o.printf("resolved %d property(ies) and %d tenant(s) for %s\n", len(targets.PropertyIDs), len(targets.TenantIDs), report.UserID)
	log.Info("resolved related entities",
		zap.Strings("property_ids", targets.PropertyIDs),
		zap.Strings("tenant_ids", targets.TenantIDs),
		zap.Duration("duration", time.Since(start)))
	return targets, nil
}

// deleteAll executes the plan strictly in order, one step at a time. Inside a
// transaction the steps are only staged until the commit.
func (o *Orchestrator) deleteAll(ctx context.Context, deleter *Deleter, targets Targets, report *Report, log *zap.Logger, staged bool) error {
	total := len(o.plan)
	msg := "step completed"
	if staged {
		msg = "step staged"
	}
	for _, step := range o.plan {
		if step.Skip(targets) {
			report.Steps = append(report.Steps, StepResult{
				Number:     step.Number,
				Collection: step.Collection,
				Predicate:  step.Template,
				Skipped:    true,
			})
			o.printf("[%d/%d] skipped %s (%s): no %s\n", step.Number, total, step.Collection, step.Template, step.Scope)
			log.Info("step skipped",
				zap.Int("step", step.Number),
				zap.String("collection", step.Collection),
				zap.String("scope", step.Scope.String()))
			continue
		}

		start := time.Now()
		pred := step.Predicate(targets)
		n, err := deleter.Execute(ctx, step, targets)
		if err != nil {
			o.printf("[%d/%d] failed to delete from %s (%s)\n", step.Number, total, step.Collection, pred)
			return err
		}

		result := StepResult{
			Number:     step.Number,
			Collection: step.Collection,
			Predicate:  pred.String(),
			Rows:       n,
			Duration:   time.Since(start),
		}
		report.Steps = append(report.Steps, result)
		o.printf("[%d/%d] deleted %d row(s) from %s (%s)\n", step.Number, total, n, step.Collection, pred)
		log.Info(msg,
			zap.Int("step", step.Number),
			zap.String("collection", step.Collection),
			zap.String("predicate", result.Predicate),
			zap.Int64("rows", n),
			zap.Duration("duration", result.Duration))
	}
	return nil
}

func (o *Orchestrator) printf(format string, args ...interface{}) {
	fmt.Fprintf(o.progress, format, args...)
}

func stepNumbers(steps []StepResult) []int {
	numbers := make([]int, 0, len(steps))
	for _, s := range steps {
		numbers = append(numbers, s.Number)
	}
	return numbers
}
