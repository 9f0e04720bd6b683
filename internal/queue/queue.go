// Package queue holds waiting contacts in arrival order and resolves the
// race between assignment and abandonment.
package queue

import (
	"github.com/GeneralAntilles/Conto/internal/dist"
	"github.com/GeneralAntilles/Conto/internal/sim"
	"github.com/GeneralAntilles/Conto/internal/stats"
	"github.com/GeneralAntilles/Conto/internal/types"
	"github.com/rs/zerolog"
)

// Manager is the FIFO queue of waiting contacts. Enqueueing schedules the
// contact's abandonment check; abandonment is neutralized by a state check
// at fire time rather than by cancelling the event, so a contact assigned
// between scheduling and firing turns the check into a no-op.
type Manager struct {
	sched    *sim.Scheduler
	patience dist.Sampler
	stats    *stats.Collector
	waiting  []*types.Contact
	logger   zerolog.Logger
}

// NewManager creates an empty queue manager
func NewManager(sched *sim.Scheduler, patience dist.Sampler, collector *stats.Collector, logger zerolog.Logger) *Manager {
	return &Manager{
		sched:    sched,
		patience: patience,
		stats:    collector,
		logger:   logger,
	}
}

// Enqueue appends the contact to the tail, marks it waiting, and schedules
// its abandonment check at now + sampled patience.
func (m *Manager) Enqueue(c *types.Contact) error {
	c.State = types.ContactQueued
	m.waiting = append(m.waiting, c)

	patience := m.patience.Sample()
	at := m.sched.Now() + patience
	err := m.sched.Schedule(at, sim.Event{
		Kind:    sim.KindAbandon,
		Contact: c,
		Expect:  types.ContactQueued,
	})
	if err != nil {
		return err
	}

	m.logger.Debug().
		Str("contact_id", c.ID).
		Int("queue_depth", len(m.waiting)).
		Float64("patience", patience).
		Msg("contact enqueued")
	return nil
}

// DequeueNext removes and returns the head contact, or nil if the queue is
// empty. The caller performs the assignment; a dequeued contact is never
// re-inserted.
func (m *Manager) DequeueNext() *types.Contact {
	if len(m.waiting) == 0 {
		return nil
	}
	c := m.waiting[0]
	m.waiting[0] = nil
	m.waiting = m.waiting[1:]
	return c
}

// Abandon handles a fired abandonment check. If the contact was assigned
// between scheduling and firing the event is stale and nothing changes.
// Returns true if the contact abandoned.
func (m *Manager) Abandon(c *types.Contact) bool {
	if c.State != types.ContactQueued {
		m.logger.Debug().
			Str("contact_id", c.ID).
			Str("state", string(c.State)).
			Msg("stale abandonment check discarded")
		return false
	}

	for i, w := range m.waiting {
		if w == c {
			m.waiting = append(m.waiting[:i], m.waiting[i+1:]...)
			break
		}
	}

	now := m.sched.Now()
	c.State = types.ContactAbandoned
	c.WaitTime = now - c.ArrivalTime
	c.CompleteTime = now
	m.stats.RecordAbandonment(c)

	m.logger.Info().
		Str("contact_id", c.ID).
		Float64("wait_time", c.WaitTime).
		Msg("contact abandoned")
	return true
}

// Len returns the number of waiting contacts
func (m *Manager) Len() int {
	return len(m.waiting)
}

// LongestWait returns how long the head contact has been waiting
func (m *Manager) LongestWait() float64 {
	if len(m.waiting) == 0 {
		return 0
	}
	return m.sched.Now() - m.waiting[0].ArrivalTime
}
