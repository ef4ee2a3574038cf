package saga

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// Engine executes MutationPlans with all-or-nothing visible effect, using
// forward execution plus reverse compensation rather than true atomic
// transactions. This is required because blob storage operations cannot
// participate in the relational database's transaction.
//
// Execution contract:
//   - Steps run strictly sequentially; no parallelism within one plan, so the
//     completed-steps stack and therefore compensation ordering stay
//     well-defined.
//   - On step failure, forward execution stops immediately; compensations for
//     all completed steps run in strict reverse order. Each compensation
//     attempt is independent: one failure does not prevent attempting the
//     others.
//   - Every failed compensation and every failed cleanup step is durably
//     recorded as a dead letter before Run returns. Nothing is silently
//     dropped.
//
// Plans are purely in-memory: a process crash mid-plan leaves partial effects
// with only the already-executed compensations. Persisting the plan before
// step 1 would enable a recovery sweep on restart; that enhancement is out of
// scope here.
type Engine struct {
	deadLetters ports.DeadLetterRepository
	logger      *slog.Logger
}

// NewEngine creates a workflow engine. The dead-letter repository must write
// on the main database connection, never the transaction of a plan in flight.
func NewEngine(deadLetters ports.DeadLetterRepository, logger *slog.Logger) *Engine {
	return &Engine{
		deadLetters: deadLetters,
		logger:      logger.With("component", "saga_engine"),
	}
}

// Run executes the plan. On full success it runs the cleanup steps
// best-effort and returns nil. On any body-step failure it unwinds and
// returns an *ExecutionError carrying the cause and the compensation outcome;
// the failed step itself is never compensated, since it never completed.
func (e *Engine) Run(ctx context.Context, plan *Plan) error {
	completed := make([]Step, 0, len(plan.Steps()))

	for _, step := range plan.Steps() {
		if err := step.Execute(ctx); err != nil {
			e.logger.ErrorContext(ctx, "step failed, unwinding",
				"plan", plan.Label(), "step", step.Label(), "error", err)
			return &ExecutionError{
				PlanLabel:     plan.Label(),
				FailedStep:    step.Label(),
				Cause:         err,
				Compensations: e.unwind(ctx, plan.Label(), completed),
			}
		}
		completed = append(completed, step)
	}

	e.runCleanup(ctx, plan)
	return nil
}

// unwind compensates completed steps in strict reverse order and returns one
// record per attempt. Failed compensations are dead-lettered.
func (e *Engine) unwind(ctx context.Context, planLabel string, completed []Step) []CompensationRecord {
	records := make([]CompensationRecord, 0, len(completed))

	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		err := step.Compensate(ctx)
		records = append(records, CompensationRecord{
			StepLabel: step.Label(),
			Succeeded: err == nil,
			Err:       err,
		})
		if err == nil {
			continue
		}

		e.logger.ErrorContext(ctx, "compensation failed",
			"plan", planLabel, "step", step.Label(), "error", err)
		e.record(ctx, planLabel, step, err)
	}

	return records
}

// runCleanup executes post-success steps best-effort. Failures are
// dead-lettered and logged, never surfaced to the caller: the business
// outcome has already committed and a leftover trash object is recoverable
// garbage, not an inconsistency.
func (e *Engine) runCleanup(ctx context.Context, plan *Plan) {
	for _, step := range plan.CleanupSteps() {
		if err := step.Execute(ctx); err != nil {
			e.logger.WarnContext(ctx, "cleanup failed, scheduling retry",
				"plan", plan.Label(), "step", step.Label(), "error", err)
			e.record(ctx, plan.Label(), step, err)
		}
	}
}

// record persists a dead letter for a failed compensation or cleanup action.
// If even the dead-letter write fails, the failure is logged with everything
// an operator needs to act manually; there is no further fallback.
func (e *Engine) record(ctx context.Context, planLabel string, step Step, cause error) {
	kind, srcKey, destKey := step.deadLetter()
	letter := &ports.DeadLetter{
		ID:        kernel.NewUUID(),
		PlanLabel: planLabel,
		StepLabel: step.Label(),
		Kind:      kind,
		SourceKey: srcKey,
		DestKey:   destKey,
		Reason:    cause.Error(),
		CreatedAt: time.Now().UTC(),
	}

	if err := e.deadLetters.Add(ctx, letter); err != nil {
		e.logger.ErrorContext(ctx, "failed to persist dead letter, manual cleanup required",
			"plan", planLabel, "step", step.Label(),
			"kind", string(kind), "source_key", srcKey, "dest_key", destKey,
			"cause", cause, "error", err)
	}
}
