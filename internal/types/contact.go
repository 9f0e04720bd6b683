package types

// ContactState represents the lifecycle state of a contact
type ContactState string

const (
	ContactQueued     ContactState = "queued"      // Waiting in queue, not yet assigned
	ContactAssigned   ContactState = "assigned"    // Matched to an agent, about to be answered
	ContactAnswering  ContactState = "answering"   // Actively being handled by an agent
	ContactHolding    ContactState = "holding"     // Placed on hold mid-handle
	ContactWrappingUp ContactState = "wrapping_up" // Agent performing after-contact work
	ContactCompleted  ContactState = "completed"   // Successfully completed
	ContactAbandoned  ContactState = "abandoned"   // Customer gave up while waiting
)

// Terminal reports whether the state is a terminal state. Terminal contacts
// are never mutated again.
func (s ContactState) Terminal() bool {
	return s == ContactCompleted || s == ContactAbandoned
}

// Contact represents one customer interaction flowing through the center.
// All timestamps are simulated seconds from run start.
type Contact struct {
	ID    string       `json:"contactId"`
	Skill string       `json:"skill"`
	State ContactState `json:"state"`

	ArrivalTime  float64 `json:"arrivalTime"`
	AnswerTime   float64 `json:"answerTime"`
	CompleteTime float64 `json:"completeTime"`

	WaitTime   float64 `json:"waitTime"`
	HandleTime float64 `json:"handleTime"` // total answering time, excludes hold
	HoldTime   float64 `json:"holdTime"`
	HoldCount  int     `json:"holdCount"`
	WrapTime   float64 `json:"wrapTime"`

	Agent *Agent `json:"-"`
}

// Answered reports whether the contact ever reached an agent.
func (c *Contact) Answered() bool {
	switch c.State {
	case ContactAnswering, ContactHolding, ContactWrappingUp, ContactCompleted:
		return true
	}
	return false
}
