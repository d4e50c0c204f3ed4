package river

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// EventWorker records lifecycle events from the River queue.
type EventWorker struct {
	river.WorkerDefaults[LifecycleEventArgs]
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[LifecycleEventArgs]) error {
	slog.InfoContext(ctx, "lifecycle event",
		"event", job.Args.Event,
		"entity_id", job.Args.EntityID,
		"actor_id", job.Args.ActorID,
		"state", job.Args.State,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}

// CodeWorker hands queued verification codes to the real sender. A failed
// send returns an error so River retries it.
type CodeWorker struct {
	river.WorkerDefaults[CodeDeliveryArgs]
	sender domain.CodeNotifier
}

// Work processes a single code delivery job.
func (w *CodeWorker) Work(ctx context.Context, job *river.Job[CodeDeliveryArgs]) error {
	if err := w.sender.SendCode(ctx, job.Args.Address, job.Args.Code); err != nil {
		slog.WarnContext(ctx, "code delivery failed",
			"job_id", job.ID,
			"attempt", job.Attempt,
			"error", err,
		)
		return fmt.Errorf("delivering code: %w", err)
	}
	return nil
}
