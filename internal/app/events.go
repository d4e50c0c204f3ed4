package app

import (
	"context"
	"log/slog"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// publish emits a lifecycle event after the change it describes has been
// persisted. Failures are logged and never undo the change.
func publish(ctx context.Context, publisher domain.EventPublisher, kind domain.EventKind, entityID, actorID, state string) {
	event := domain.LifecycleEvent{
		Kind:     kind,
		EntityID: entityID,
		ActorID:  actorID,
		State:    state,
	}
	if err := publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "publishing lifecycle event failed",
			"event", string(kind),
			"entity_id", entityID,
			"error", err,
		)
	}
}
