package center

import (
	"math/rand"
	"time"

	"github.com/GeneralAntilles/Conto/internal/config"
	"github.com/GeneralAntilles/Conto/internal/dist"
	"github.com/GeneralAntilles/Conto/internal/report"
	"github.com/rs/zerolog"
)

// patienceShape is the Weibull shape for customer patience. Shape > 1
// clusters abandonment around the configured mean instead of front-loading
// it.
const patienceShape = 1.5

// FromConfig assembles a run from a validated configuration: one seeded rng
// feeds every sampler, the agent roster, and all in-run randomness, so a
// fixed seed reproduces the run byte for byte.
func FromConfig(cfg *config.Config, logger zerolog.Logger, sinks ...report.Sink) (*Center, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	interarrival, err := dist.NewExponential(3600/cfg.ContactsPerHour, rng)
	if err != nil {
		return nil, err
	}
	handle, err := dist.NewNormal(cfg.AvgHandleTime, cfg.HandleStdDev, 1, rng)
	if err != nil {
		return nil, err
	}
	hold, err := dist.NewUniform(cfg.AvgHoldTime/2, cfg.AvgHoldTime*2, rng)
	if err != nil {
		return nil, err
	}
	patience, err := dist.NewWeibull(cfg.AvgAbandonTime, patienceShape, rng)
	if err != nil {
		return nil, err
	}

	var wrapup dist.Sampler = dist.Constant(0)
	if cfg.AvgWrapupTime > 0 {
		wrapup, err = dist.NewExponential(cfg.AvgWrapupTime, rng)
		if err != nil {
			return nil, err
		}
	}

	params := Params{
		Interarrival:    interarrival,
		Patience:        patience,
		Handle:          handle,
		Hold:            hold,
		Wrapup:          wrapup,
		HoldProbability: cfg.HoldProbability,
		Skills:          cfg.Skills,
		Agents:          NewAgentPool(cfg.AgentCount, cfg.Proficiencies, rng),
		Horizon:         cfg.SimTime,
		MaxContacts:     cfg.MaxContacts,
		SLTarget:        cfg.SLTarget,
		SLSeconds:       cfg.SLSeconds,
	}

	return New(params, rng, logger, sinks...), nil
}
