package river

import (
	"context"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: Notifier implements domain.CodeNotifier.
var _ domain.CodeNotifier = (*Notifier)(nil)

// codeDeliveryAttempts bounds retries of a single code delivery.
const codeDeliveryAttempts = 5

// CodeDeliveryArgs carries a verification code to the delivery worker.
type CodeDeliveryArgs struct {
	Address string `json:"address"`
	Code    string `json:"code"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (CodeDeliveryArgs) Kind() string { return "code.delivery" }

// InsertOpts caps the retries of a delivery job.
func (CodeDeliveryArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: codeDeliveryAttempts}
}

// Notifier implements domain.CodeNotifier by enqueuing a delivery job, so
// registration never waits on the mail server.
type Notifier struct {
	client *Client
}

// NewNotifier creates a notifier backed by the given River client.
func NewNotifier(client *Client) *Notifier {
	return &Notifier{client: client}
}

// SendCode enqueues delivery of code to address.
func (n *Notifier) SendCode(ctx context.Context, address, code string) error {
	if _, err := n.client.Insert(ctx, CodeDeliveryArgs{Address: address, Code: code}, nil); err != nil {
		return fmt.Errorf("enqueuing code delivery: %w", err)
	}
	return nil
}
