package sim

import "github.com/GeneralAntilles/Conto/internal/types"

// Kind identifies what a scheduled event does when it fires
type Kind int

const (
	KindArrival   Kind = iota // a new contact enters the center
	KindAbandon               // patience expired for a queued contact
	KindHoldStart             // contact is placed on hold mid-answer
	KindHoldEnd               // hold finished, answering resumes
	KindHandleEnd             // answering phase finished
	KindWrapEnd               // wrap-up finished, contact completes
)

// String returns the event kind name for logging
func (k Kind) String() string {
	switch k {
	case KindArrival:
		return "arrival"
	case KindAbandon:
		return "abandon_check"
	case KindHoldStart:
		return "hold_start"
	case KindHoldEnd:
		return "hold_end"
	case KindHandleEnd:
		return "handle_end"
	case KindWrapEnd:
		return "wrap_end"
	default:
		return "unknown"
	}
}

// Event is a scheduled future action. Events targeting a contact carry the
// lifecycle state they expect to find; the dispatcher discards the event as
// stale if the contact has since moved on. That state check is the only
// cancellation mechanism in the simulation.
type Event struct {
	Kind    Kind
	Contact *types.Contact
	Expect  types.ContactState

	// Hold carries the hold duration for KindHoldStart. Remaining carries
	// the answering time left after the hold resumes (KindHoldStart and
	// KindHoldEnd).
	Hold      float64
	Remaining float64
}

// Stale reports whether the event has been overtaken by a later transition
// on its target contact.
func (e Event) Stale() bool {
	return e.Contact != nil && e.Expect != "" && e.Contact.State != e.Expect
}
