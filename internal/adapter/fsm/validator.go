package fsm

import (
	"context"
	"errors"

	loopfsm "github.com/looplab/fsm"

	"github.com/krishisetu/krishisetu/internal/domain"
)

// Compile-time check: Validator implements domain.TransitionValidator.
var _ domain.TransitionValidator = (*Validator)(nil)

// events converts domain.Transitions into looplab/fsm EventDesc format,
// grouping transitions that share an event and destination into a single
// EventDesc with several source states.
var events = buildEvents()

func buildEvents() []loopfsm.EventDesc {
	type key struct {
		event string
		dst   string
	}
	grouped := make(map[key][]string)
	order := make([]key, 0)

	for _, t := range domain.Transitions {
		k := key{event: string(t.Event), dst: string(t.Dst)}
		if _, exists := grouped[k]; !exists {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], string(t.Src))
	}

	out := make([]loopfsm.EventDesc, 0, len(order))
	for _, k := range order {
		out = append(out, loopfsm.EventDesc{
			Name: k.event,
			Src:  grouped[k],
			Dst:  k.dst,
		})
	}
	return out
}

// Validator implements domain.TransitionValidator using looplab/fsm.
// A looplab FSM tracks its own current state, so a short-lived instance is
// built per Apply call from the booking's stored status.
type Validator struct{}

// New creates a new FSM-backed transition validator.
func New() *Validator {
	return &Validator{}
}

// Apply checks if the given event is valid from the current status and
// returns the destination status. Returns a domain.TransitionError if
// the transition is not allowed.
func (v *Validator) Apply(ctx context.Context, current domain.BookingStatus, event domain.Event) (domain.BookingStatus, error) {
	machine := loopfsm.NewFSM(string(current), events, nil)

	if err := machine.Event(ctx, string(event)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		var noTransition loopfsm.NoTransitionError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) || errors.As(err, &noTransition) {
			return "", &domain.TransitionError{
				Event:   event,
				Current: current,
			}
		}
		return "", err
	}

	return domain.BookingStatus(machine.Current()), nil
}
