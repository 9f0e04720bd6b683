package types

// AgentState represents the availability state of an agent
type AgentState string

const (
	AgentAvailable AgentState = "available" // Idle, ready to take a contact
	AgentBusy      AgentState = "busy"      // Handling a contact
	AgentWrapUp    AgentState = "wrap_up"   // After-contact work, still occupied
)

// Agent represents a resource capable of handling one contact at a time.
// Invariant: Contact is non-nil iff the agent is not Available, and the
// referenced contact points back at this agent.
type Agent struct {
	ID          string     `json:"agentId"`
	Name        string     `json:"name"`
	Proficiency float64    `json:"proficiency"` // service-time multiplier, 1.0 = nominal
	State       AgentState `json:"state"`

	// StateStart is the simulated time of the last state change, used by
	// longest-idle-first routing.
	StateStart float64 `json:"stateStart"`

	Contact *Contact `json:"-"`

	Handled  int     `json:"handled"`
	BusyTime float64 `json:"busyTime"` // cumulative assigned time (answer through wrap-up)
}

// Available reports whether the agent can take a contact.
func (a *Agent) Available() bool {
	return a.State == AgentAvailable
}

// AgentSnapshot is the per-agent slice of a final run report.
type AgentSnapshot struct {
	AgentID     string  `json:"agentId"`
	Name        string  `json:"name"`
	Proficiency float64 `json:"proficiency"`
	Handled     int     `json:"handled"`
	BusyTime    float64 `json:"busyTime"`
	Occupancy   float64 `json:"occupancy"` // busy time / run duration
}
