package provision

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Engine executes a plan on a single control thread, strictly in
// dependency order. A failed step blocks its transitive dependents;
// independent steps still run, so an early firewall problem does not
// abandon an unrelated certificate step. Failed steps are never retried
// within a run: re-running the whole engine is the recovery path, and it
// is safe because every provider is idempotent.
type Engine struct {
	log *slog.Logger
}

// NewEngine creates an engine logging through the default slog logger.
func NewEngine() *Engine {
	return &Engine{log: slog.Default()}
}

// Execute runs every step and returns the sealed report. Each plan step
// yields exactly one terminal outcome.
func (e *Engine) Execute(ctx context.Context, plan *Plan) *Report {
	report := newReport()
	e.log.Info("starting provisioning", "steps", len(plan.Steps), "run", report.RunID)

	// Step id -> the failed step that (transitively) blocks it.
	blockedBy := make(map[StepID]StepID)

	for i, step := range plan.Steps {
		logger := e.log.With("step", string(step.ID), "n", fmt.Sprintf("%d/%d", i+1, len(plan.Steps)))

		if origin, blocked := e.blockingDep(step, blockedBy); blocked {
			logger.Warn("step blocked", "by", string(origin))
			blockedBy[step.ID] = origin
			report.Outcomes = append(report.Outcomes, Outcome{
				StepID:     step.ID,
				Capability: step.Capability,
				Status:     StatusBlocked,
				Diagnostic: fmt.Sprintf("not attempted: depends on failed step %q", origin),
			})
			continue
		}

		outcome := e.executeStep(ctx, logger, step)
		if outcome.Status == StatusFailed {
			blockedBy[step.ID] = step.ID
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	report.finish()
	e.log.Info("provisioning finished",
		"run", report.RunID,
		"success", report.Success,
		"duration", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	return report
}

// blockingDep returns the failed step a dependency chain leads back to.
func (e *Engine) blockingDep(step Step, blockedBy map[StepID]StepID) (StepID, bool) {
	for _, dep := range step.DependsOn {
		if origin, ok := blockedBy[dep]; ok {
			return origin, true
		}
	}
	return "", false
}

// executeStep runs the check-then-ensure cycle for one step: if the
// current state already matches, record skipped; otherwise apply and
// verify. Warnings are recorded but never fail the step.
func (e *Engine) executeStep(ctx context.Context, logger *slog.Logger, step Step) Outcome {
	start := time.Now()
	outcome := Outcome{StepID: step.ID, Capability: step.Capability}

	finish := func(status Status, diagnostic string) Outcome {
		outcome.Status = status
		outcome.Diagnostic = diagnostic
		outcome.Duration = time.Since(start)
		return outcome
	}

	logger.Info("step starting", "summary", step.Summary)

	satisfied, err := step.Provider.Satisfied(ctx)
	if err != nil {
		logger.Error("state check failed", "err", err)
		return finish(StatusFailed, fmt.Sprintf("state check failed: %v", err))
	}
	if satisfied {
		logger.Info("step skipped", "reason", "already satisfied")
		return finish(StatusSkipped, "")
	}

	if err := step.Provider.Apply(ctx); err != nil {
		if warn, ok := AsWarning(err); ok {
			outcome.Warnings = append(outcome.Warnings, warn.Reason)
			logger.Warn("step applied with warning", "warning", warn.Reason)
		} else {
			logger.Error("step failed", "err", err)
			return finish(StatusFailed, err.Error())
		}
	}

	if err := step.Provider.Verify(ctx); err != nil {
		if warn, ok := AsWarning(err); ok {
			outcome.Warnings = append(outcome.Warnings, warn.Reason)
			logger.Warn("verification warning", "warning", warn.Reason)
		} else {
			logger.Error("verification failed", "err", err)
			return finish(StatusFailed, fmt.Sprintf("applied but verification failed: %v", err))
		}
	}

	logger.Info("step completed", "duration", time.Since(start).Round(time.Millisecond))
	return finish(StatusSuccess, "")
}
