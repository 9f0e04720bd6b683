// Package center drives contacts from arrival through queueing, service
// phases, and completion. The Center owns all run state (scheduler, queue,
// agent pool, statistics), so multiple runs can execute concurrently in one
// process.
package center

import (
	"fmt"
	"math/rand"

	"github.com/GeneralAntilles/Conto/internal/dist"
	"github.com/GeneralAntilles/Conto/internal/queue"
	"github.com/GeneralAntilles/Conto/internal/report"
	"github.com/GeneralAntilles/Conto/internal/sim"
	"github.com/GeneralAntilles/Conto/internal/stats"
	"github.com/GeneralAntilles/Conto/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Params wires the samplers, agent pool, and stop conditions for one run.
// All samplers must share one seeded rng for reproducible runs.
type Params struct {
	Interarrival dist.Sampler
	Patience     dist.Sampler
	Handle       dist.Sampler
	Hold         dist.Sampler
	Wrapup       dist.Sampler

	HoldProbability float64
	Skills          []string

	Agents []*types.Agent

	Horizon     float64 // simulated seconds; 0 = no time horizon
	MaxContacts int     // 0 = unlimited

	SLTarget  int
	SLSeconds int
}

// Center is the lifecycle controller for one simulation run
type Center struct {
	runID   string
	params  Params
	sched   *sim.Scheduler
	queue   *queue.Manager
	agents  []*types.Agent
	routing RoutingStrategy
	stats   *stats.Collector
	sl      *queue.SLTracker
	sinks   []report.Sink
	rng     *rand.Rand
	created int
	logger  zerolog.Logger
}

// New creates a contact center run. The rng drives hold decisions and skill
// selection; pass it seeded for deterministic runs.
func New(p Params, rng *rand.Rand, logger zerolog.Logger, sinks ...report.Sink) *Center {
	runID := uuid.New().String()
	sched := sim.NewScheduler()
	collector := stats.NewCollector(logger)

	return &Center{
		runID:   runID,
		params:  p,
		sched:   sched,
		queue:   queue.NewManager(sched, p.Patience, collector, logger),
		agents:  p.Agents,
		routing: LongestIdleFirst{},
		stats:   collector,
		sl:      queue.NewSLTracker(p.SLTarget, p.SLSeconds),
		sinks:   sinks,
		rng:     rng,
		logger:  logger.With().Str("run_id", runID).Logger(),
	}
}

// RunID returns the unique identifier of this run
func (c *Center) RunID() string {
	return c.runID
}

// SetRouting replaces the default longest-idle-first strategy
func (c *Center) SetRouting(r RoutingStrategy) {
	c.routing = r
}

// Result is the final report of a run
type Result struct {
	RunID        string                `json:"runId"`
	Elapsed      float64               `json:"elapsed"`
	Stats        stats.Snapshot        `json:"stats"`
	ServiceLevel types.ServiceLevel    `json:"serviceLevel"`
	Agents       []types.AgentSnapshot `json:"agents"`
}

// Run executes the simulation to its horizon or until the arrival chain is
// exhausted and all contacts have drained. Returns an error if the schedule
// empties while contacts are still queued or in service, which indicates a
// lost event.
func (c *Center) Run() (*Result, error) {
	c.logger.Info().
		Int("agents", len(c.agents)).
		Float64("horizon", c.params.Horizon).
		Int("max_contacts", c.params.MaxContacts).
		Msg("run started")

	first := c.sched.Now() + c.params.Interarrival.Sample()
	if err := c.sched.Schedule(first, sim.Event{Kind: sim.KindArrival}); err != nil {
		return nil, err
	}

	horizonReached := false
	for {
		at, ok := c.sched.Peek()
		if !ok {
			break
		}
		if c.params.Horizon > 0 && at > c.params.Horizon {
			horizonReached = true
			break
		}
		ev, err := c.sched.Next()
		if err != nil {
			return nil, err
		}
		c.dispatch(ev)
	}

	if !horizonReached && c.stats.InFlight() > 0 {
		return nil, fmt.Errorf("schedule drained with %d contacts outstanding: %w",
			c.stats.InFlight(), sim.ErrEmptySchedule)
	}

	elapsed := c.sched.Now()
	if horizonReached {
		elapsed = c.params.Horizon
	}

	result := &Result{
		RunID:        c.runID,
		Elapsed:      elapsed,
		Stats:        c.stats.Snapshot(),
		ServiceLevel: c.sl.Snapshot(),
		Agents:       c.agentSnapshots(elapsed),
	}

	c.logger.Info().
		Float64("elapsed", elapsed).
		Int("created", result.Stats.Created).
		Int("completed", result.Stats.Completed).
		Int("abandoned", result.Stats.Abandoned).
		Float64("service_level", result.ServiceLevel.CurrentSL).
		Msg("run finished")

	return result, nil
}

// dispatch routes one fired event through the state machine. Events whose
// target contact has moved past the expected state are stale and discarded
// here; this is the single mechanism resolving races between competing
// events for the same contact.
func (c *Center) dispatch(ev sim.Event) {
	if ev.Stale() {
		c.logger.Debug().
			Str("event", ev.Kind.String()).
			Str("contact_id", ev.Contact.ID).
			Str("state", string(ev.Contact.State)).
			Str("expected", string(ev.Expect)).
			Msg("stale event discarded")
		return
	}

	switch ev.Kind {
	case sim.KindArrival:
		c.handleArrival()
	case sim.KindAbandon:
		if c.queue.Abandon(ev.Contact) {
			c.emit(ev.Contact)
		}
	case sim.KindHoldStart:
		c.handleHoldStart(ev)
	case sim.KindHoldEnd:
		c.handleHoldEnd(ev)
	case sim.KindHandleEnd:
		c.handleHandleEnd(ev)
	case sim.KindWrapEnd:
		c.handleWrapEnd(ev)
	}
}

// handleArrival creates the next contact, re-arms the arrival chain, and
// either assigns the contact immediately or queues it
func (c *Center) handleArrival() {
	now := c.sched.Now()
	c.created++
	contact := &types.Contact{
		ID:          fmt.Sprintf("CT-%05d", c.created),
		Skill:       c.pickSkill(),
		ArrivalTime: now,
	}
	c.stats.RecordArrival()

	c.logger.Info().
		Str("contact_id", contact.ID).
		Str("skill", contact.Skill).
		Float64("time", now).
		Msg("contact arrived")

	if c.params.MaxContacts == 0 || c.created < c.params.MaxContacts {
		next := now + c.params.Interarrival.Sample()
		if err := c.sched.Schedule(next, sim.Event{Kind: sim.KindArrival}); err != nil {
			c.logger.Error().Err(err).Msg("failed to schedule next arrival")
		}
	}

	if agent := c.routing.Select(c.agents); agent != nil {
		c.assign(contact, agent)
		return
	}
	if err := c.queue.Enqueue(contact); err != nil {
		c.logger.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to enqueue contact")
	}
}

// assign answers the contact on the given agent and schedules the handle
// phase. Handle time is scaled by the agent's proficiency.
func (c *Center) assign(contact *types.Contact, agent *types.Agent) {
	now := c.sched.Now()

	contact.State = types.ContactAssigned
	contact.Agent = agent
	agent.Contact = contact
	agent.State = types.AgentBusy
	agent.StateStart = now

	contact.AnswerTime = now
	contact.WaitTime = now - contact.ArrivalTime
	contact.State = types.ContactAnswering
	c.sl.RecordAnswer(contact.WaitTime)

	handle := c.params.Handle.Sample() * agent.Proficiency
	contact.HandleTime = handle

	c.logger.Debug().
		Str("contact_id", contact.ID).
		Str("agent_id", agent.ID).
		Float64("wait_time", contact.WaitTime).
		Float64("handle_time", handle).
		Msg("contact answered")

	c.scheduleAnswerSegment(contact, handle)
}

// scheduleAnswerSegment schedules the end of an answering segment of length
// dur, possibly interrupted by a hold partway through. Each resumed segment
// rolls the hold decision again, so long handles can hold more than once.
func (c *Center) scheduleAnswerSegment(contact *types.Contact, dur float64) {
	now := c.sched.Now()

	if c.params.HoldProbability > 0 && c.rng.Float64() < c.params.HoldProbability {
		hold := c.params.Hold.Sample()
		// Only hold when the segment is long enough to resume afterward.
		if hold > 0 && dur > 2*hold {
			offset := dur / 2
			err := c.sched.Schedule(now+offset, sim.Event{
				Kind:      sim.KindHoldStart,
				Contact:   contact,
				Expect:    types.ContactAnswering,
				Hold:      hold,
				Remaining: dur - offset,
			})
			if err != nil {
				c.logger.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to schedule hold")
			}
			return
		}
	}

	err := c.sched.Schedule(now+dur, sim.Event{
		Kind:    sim.KindHandleEnd,
		Contact: contact,
		Expect:  types.ContactAnswering,
	})
	if err != nil {
		c.logger.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to schedule handle end")
	}
}

func (c *Center) handleHoldStart(ev sim.Event) {
	now := c.sched.Now()
	contact := ev.Contact

	contact.State = types.ContactHolding
	contact.HoldCount++
	contact.HoldTime += ev.Hold

	c.logger.Debug().
		Str("contact_id", contact.ID).
		Float64("hold", ev.Hold).
		Float64("time", now).
		Msg("contact placed on hold")

	err := c.sched.Schedule(now+ev.Hold, sim.Event{
		Kind:      sim.KindHoldEnd,
		Contact:   contact,
		Expect:    types.ContactHolding,
		Remaining: ev.Remaining,
	})
	if err != nil {
		c.logger.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to schedule hold end")
	}
}

func (c *Center) handleHoldEnd(ev sim.Event) {
	contact := ev.Contact
	contact.State = types.ContactAnswering

	c.logger.Debug().
		Str("contact_id", contact.ID).
		Float64("time", c.sched.Now()).
		Msg("contact taken off hold")

	c.scheduleAnswerSegment(contact, ev.Remaining)
}

func (c *Center) handleHandleEnd(ev sim.Event) {
	now := c.sched.Now()
	contact := ev.Contact
	agent := contact.Agent

	contact.State = types.ContactWrappingUp
	agent.State = types.AgentWrapUp
	agent.StateStart = now

	wrap := c.params.Wrapup.Sample()
	contact.WrapTime = wrap

	c.logger.Debug().
		Str("contact_id", contact.ID).
		Float64("wrap", wrap).
		Msg("contact entered wrap-up")

	err := c.sched.Schedule(now+wrap, sim.Event{
		Kind:    sim.KindWrapEnd,
		Contact: contact,
		Expect:  types.ContactWrappingUp,
	})
	if err != nil {
		c.logger.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to schedule wrap end")
	}
}

// handleWrapEnd completes the contact, frees the agent, and immediately
// pulls the next waiting contact so the agent never idles over a backlog
func (c *Center) handleWrapEnd(ev sim.Event) {
	now := c.sched.Now()
	contact := ev.Contact
	agent := contact.Agent

	contact.State = types.ContactCompleted
	contact.CompleteTime = now
	c.stats.RecordCompletion(contact)
	c.emit(contact)

	agent.Contact = nil
	agent.State = types.AgentAvailable
	agent.StateStart = now
	agent.Handled++
	agent.BusyTime += now - contact.AnswerTime

	c.logger.Info().
		Str("contact_id", contact.ID).
		Str("agent_id", agent.ID).
		Float64("handle_time", contact.HandleTime).
		Float64("hold_time", contact.HoldTime).
		Float64("time", now).
		Msg("contact completed")

	if next := c.queue.DequeueNext(); next != nil {
		c.assign(next, agent)
	}
}

// emit sends the terminal record to every sink
func (c *Center) emit(contact *types.Contact) {
	rec := types.NewContactRecord(contact, float64(c.params.SLSeconds))
	for _, sink := range c.sinks {
		if err := sink.Record(rec); err != nil {
			c.logger.Error().Err(err).Str("contact_id", contact.ID).Msg("failed to emit contact record")
		}
	}
}

func (c *Center) pickSkill() string {
	switch len(c.params.Skills) {
	case 0:
		return ""
	case 1:
		return c.params.Skills[0]
	default:
		return c.params.Skills[c.rng.Intn(len(c.params.Skills))]
	}
}

func (c *Center) agentSnapshots(elapsed float64) []types.AgentSnapshot {
	snapshots := make([]types.AgentSnapshot, 0, len(c.agents))
	for _, a := range c.agents {
		s := types.AgentSnapshot{
			AgentID:     a.ID,
			Name:        a.Name,
			Proficiency: a.Proficiency,
			Handled:     a.Handled,
			BusyTime:    a.BusyTime,
		}
		if elapsed > 0 {
			s.Occupancy = a.BusyTime / elapsed
		}
		snapshots = append(snapshots, s)
	}
	return snapshots
}
