// Package sim provides the discrete-event scheduler: a time-ordered priority
// queue of future events and the simulated clock. It holds no contact center
// logic.
package sim

import (
	"container/heap"
	"errors"
)

var (
	// ErrPastTime is returned when an event is scheduled before the current
	// simulated time. Always a programming defect.
	ErrPastTime = errors.New("event scheduled before current simulated time")

	// ErrEmptySchedule is returned by Next when no events remain.
	ErrEmptySchedule = errors.New("no scheduled events remain")
)

// entry pairs an event with its fire time and insertion sequence
type entry struct {
	time float64
	seq  uint64
	ev   Event
}

// entryHeap is a min-heap keyed by (time, seq) so that equal-time events fire
// in insertion order, keeping runs reproducible.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if h[i].time == h[j].time {
		return h[i].seq < h[j].seq
	}
	return h[i].time < h[j].time
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) { *h = append(*h, x.(*entry)) }

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}

// Scheduler advances simulated time by dispatching the earliest scheduled
// event. Time is float64 seconds from run start.
type Scheduler struct {
	now float64
	seq uint64
	h   entryHeap
}

// NewScheduler creates a scheduler at time zero with an empty schedule
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.h)
	return s
}

// Now returns the current simulated time
func (s *Scheduler) Now() float64 {
	return s.now
}

// Len returns the number of outstanding events
func (s *Scheduler) Len() int {
	return len(s.h)
}

// Schedule inserts an event to fire at time t. Returns ErrPastTime if t is
// earlier than the current simulated time.
func (s *Scheduler) Schedule(t float64, ev Event) error {
	if t < s.now {
		return ErrPastTime
	}
	s.seq++
	heap.Push(&s.h, &entry{time: t, seq: s.seq, ev: ev})
	return nil
}

// Next removes and returns the earliest event, advancing the clock to its
// timestamp. Returns ErrEmptySchedule when the schedule is drained.
func (s *Scheduler) Next() (Event, error) {
	if len(s.h) == 0 {
		return Event{}, ErrEmptySchedule
	}
	e := heap.Pop(&s.h).(*entry)
	s.now = e.time
	return e.ev, nil
}

// Peek returns the timestamp of the earliest event without removing it.
// The second return is false if the schedule is empty.
func (s *Scheduler) Peek() (float64, bool) {
	if len(s.h) == 0 {
		return 0, false
	}
	return s.h[0].time, true
}
