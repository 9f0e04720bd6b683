package center

import "github.com/GeneralAntilles/Conto/internal/types"

// RoutingStrategy selects the agent to take the next contact
type RoutingStrategy interface {
	Select(agents []*types.Agent) *types.Agent
}

// LongestIdleFirst selects the available agent that has been idle the
// longest. Ties resolve to pool order, keeping runs deterministic.
type LongestIdleFirst struct{}

// Select picks the available agent with the earliest StateStart, or nil if
// no agent is available
func (LongestIdleFirst) Select(agents []*types.Agent) *types.Agent {
	var best *types.Agent
	for _, a := range agents {
		if !a.Available() {
			continue
		}
		if best == nil || a.StateStart < best.StateStart {
			best = a
		}
	}
	return best
}
