package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// LifecycleEventArgs carries a lifecycle event to the background worker.
// River serializes this as JSON into its job queue table. It is a snapshot
// taken when the change was persisted, so the worker never needs to query
// the database.
type LifecycleEventArgs struct {
	Event    string `json:"event"`
	EntityID string `json:"entity_id"`
	ActorID  string `json:"actor_id"`
	State    string `json:"state"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (LifecycleEventArgs) Kind() string { return "lifecycle.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a lifecycle event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.LifecycleEvent) error {
	_, err := p.client.Insert(ctx, LifecycleEventArgs{
		Event:    string(event.Kind),
		EntityID: event.EntityID,
		ActorID:  event.ActorID,
		State:    event.State,
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing event job: %w", err)
	}
	return nil
}
