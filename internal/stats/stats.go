// Package stats accumulates per-contact outcome metrics in O(1) per terminal
// transition.
package stats

import (
	"math"

	"github.com/GeneralAntilles/Conto/internal/types"
	"github.com/rs/zerolog"
)

// welford is a streaming mean/variance accumulator
type welford struct {
	n    int
	mean float64
	m2   float64
}

func (w *welford) add(x float64) {
	w.n++
	delta := x - w.mean
	w.mean += delta / float64(w.n)
	w.m2 += delta * (x - w.mean)
}

func (w *welford) stddev() float64 {
	if w.n < 2 {
		return 0
	}
	return math.Sqrt(w.m2 / float64(w.n-1))
}

// Collector accumulates running aggregates for a single simulation run.
// Written only at terminal transitions; snapshots are read-only copies.
type Collector struct {
	created   int
	completed int
	abandoned int

	wait        welford // completed contacts only (speed of answer)
	handle      welford
	hold        welford // per held contact
	wrap        welford
	abandonWait welford

	holds         int
	totalHoldTime float64

	logger zerolog.Logger
}

// NewCollector creates an empty collector
func NewCollector(logger zerolog.Logger) *Collector {
	return &Collector{logger: logger}
}

// RecordArrival counts a newly created contact
func (c *Collector) RecordArrival() {
	c.created++
}

// RecordCompletion folds a completed contact into the aggregates
func (c *Collector) RecordCompletion(contact *types.Contact) {
	c.completed++
	c.wait.add(contact.WaitTime)
	c.handle.add(contact.HandleTime)
	c.wrap.add(contact.WrapTime)
	if contact.HoldCount > 0 {
		c.hold.add(contact.HoldTime)
		c.holds += contact.HoldCount
		c.totalHoldTime += contact.HoldTime
	}

	c.logger.Debug().
		Str("contact_id", contact.ID).
		Float64("wait_time", contact.WaitTime).
		Float64("handle_time", contact.HandleTime).
		Msg("completion recorded")
}

// RecordAbandonment folds an abandoned contact into the aggregates
func (c *Collector) RecordAbandonment(contact *types.Contact) {
	c.abandoned++
	c.abandonWait.add(contact.WaitTime)

	c.logger.Debug().
		Str("contact_id", contact.ID).
		Float64("wait_time", contact.WaitTime).
		Msg("abandonment recorded")
}

// Created returns the number of contacts created so far
func (c *Collector) Created() int { return c.created }

// Completed returns the number of completed contacts
func (c *Collector) Completed() int { return c.completed }

// Abandoned returns the number of abandoned contacts
func (c *Collector) Abandoned() int { return c.abandoned }

// InFlight returns the number of contacts that have not reached a terminal
// state
func (c *Collector) InFlight() int {
	return c.created - c.completed - c.abandoned
}

// Snapshot is the read-only aggregate view of a run
type Snapshot struct {
	Created         int     `json:"created"`
	Completed       int     `json:"completed"`
	Abandoned       int     `json:"abandoned"`
	AbandonmentRate float64 `json:"abandonmentRate"`

	ASA          float64 `json:"asa"` // average speed of answer, completed contacts
	WaitStdDev   float64 `json:"waitStdDev"`
	AHT          float64 `json:"aht"` // average handle time, excludes hold
	HandleStdDev float64 `json:"handleStdDev"`
	AvgWrapTime  float64 `json:"avgWrapTime"`

	Holds          int     `json:"holds"`
	TotalHoldTime  float64 `json:"totalHoldTime"`
	AvgHoldTime    float64 `json:"avgHoldTime"` // per held contact
	AvgAbandonWait float64 `json:"avgAbandonWait"`
}

// Snapshot returns the current aggregates
func (c *Collector) Snapshot() Snapshot {
	s := Snapshot{
		Created:        c.created,
		Completed:      c.completed,
		Abandoned:      c.abandoned,
		ASA:            c.wait.mean,
		WaitStdDev:     c.wait.stddev(),
		AHT:            c.handle.mean,
		HandleStdDev:   c.handle.stddev(),
		AvgWrapTime:    c.wrap.mean,
		Holds:          c.holds,
		TotalHoldTime:  c.totalHoldTime,
		AvgHoldTime:    c.hold.mean,
		AvgAbandonWait: c.abandonWait.mean,
	}
	terminal := c.completed + c.abandoned
	if terminal > 0 {
		s.AbandonmentRate = float64(c.abandoned) / float64(terminal)
	}
	return s
}
