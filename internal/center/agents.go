package center

import (
	"fmt"
	"math/rand"

	"github.com/GeneralAntilles/Conto/internal/types"
)

var firstNames = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Sarah", "Karen",
	"Lisa", "Nancy", "Emily", "Michelle", "Laura", "James", "Robert", "John",
	"Michael", "David", "William", "Thomas", "Daniel", "Matthew", "Andrew",
	"Kevin", "Brian",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Miller", "Davis",
	"Garcia", "Rodriguez", "Wilson", "Martinez", "Anderson", "Taylor",
	"Thomas", "Moore", "Jackson", "White", "Harris", "Clark", "Lewis",
	"Walker", "Young", "King", "Wright",
}

// NewAgentPool creates count agents, all available at time zero. Each agent
// takes its proficiency from proficiencies by index, defaulting to 1.0 when
// the slice runs out. Names are drawn from the run's seeded rng so a fixed
// seed reproduces the same roster.
func NewAgentPool(count int, proficiencies []float64, rng *rand.Rand) []*types.Agent {
	agents := make([]*types.Agent, count)
	for i := 0; i < count; i++ {
		proficiency := 1.0
		if i < len(proficiencies) {
			proficiency = proficiencies[i]
		}
		agents[i] = &types.Agent{
			ID:          fmt.Sprintf("AGT-%03d", i+1),
			Name:        fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))]),
			Proficiency: proficiency,
			State:       types.AgentAvailable,
		}
	}
	return agents
}
