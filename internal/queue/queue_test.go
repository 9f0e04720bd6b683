package queue

import (
	"testing"

	"github.com/GeneralAntilles/Conto/internal/dist"
	"github.com/GeneralAntilles/Conto/internal/sim"
	"github.com/GeneralAntilles/Conto/internal/stats"
	"github.com/GeneralAntilles/Conto/internal/types"
	"github.com/rs/zerolog"
)

func newTestManager(patience dist.Sampler) (*Manager, *sim.Scheduler, *stats.Collector) {
	sched := sim.NewScheduler()
	collector := stats.NewCollector(zerolog.Nop())
	return NewManager(sched, patience, collector, zerolog.Nop()), sched, collector
}

func TestFIFOOrdering(t *testing.T) {
	m, _, _ := newTestManager(dist.Constant(120))

	c1 := &types.Contact{ID: "CT-00001"}
	c2 := &types.Contact{ID: "CT-00002"}
	c3 := &types.Contact{ID: "CT-00003"}

	for _, c := range []*types.Contact{c1, c2, c3} {
		if err := m.Enqueue(c); err != nil {
			t.Fatalf("enqueue failed: %v", err)
		}
		if c.State != types.ContactQueued {
			t.Errorf("expected queued state, got %s", c.State)
		}
	}

	if m.Len() != 3 {
		t.Fatalf("expected 3 waiting, got %d", m.Len())
	}

	for _, want := range []string{"CT-00001", "CT-00002", "CT-00003"} {
		got := m.DequeueNext()
		if got == nil || got.ID != want {
			t.Errorf("expected %s, got %v", want, got)
		}
	}

	if m.DequeueNext() != nil {
		t.Error("expected nil from empty queue")
	}
}

func TestEnqueueSchedulesAbandonmentCheck(t *testing.T) {
	m, sched, _ := newTestManager(dist.Constant(30))

	c := &types.Contact{ID: "CT-00001", ArrivalTime: 0}
	if err := m.Enqueue(c); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	at, ok := sched.Peek()
	if !ok {
		t.Fatal("expected an abandonment check on the schedule")
	}
	if at != 30 {
		t.Errorf("expected check at t=30, got %.1f", at)
	}

	ev, err := sched.Next()
	if err != nil {
		t.Fatalf("next failed: %v", err)
	}
	if ev.Kind != sim.KindAbandon || ev.Contact != c || ev.Expect != types.ContactQueued {
		t.Errorf("unexpected abandonment event: %+v", ev)
	}
}

func TestAbandonRemovesAndRecords(t *testing.T) {
	m, sched, collector := newTestManager(dist.Constant(30))

	c := &types.Contact{ID: "CT-00001", ArrivalTime: 0}
	m.Enqueue(c)
	if _, err := sched.Next(); err != nil { // advance clock to t=30
		t.Fatalf("next failed: %v", err)
	}

	if !m.Abandon(c) {
		t.Fatal("expected abandonment to proceed")
	}
	if c.State != types.ContactAbandoned {
		t.Errorf("expected abandoned state, got %s", c.State)
	}
	if c.WaitTime != 30 {
		t.Errorf("expected wait 30, got %.1f", c.WaitTime)
	}
	if m.Len() != 0 {
		t.Errorf("expected empty queue, got %d waiting", m.Len())
	}
	if collector.Abandoned() != 1 {
		t.Errorf("expected 1 abandonment recorded, got %d", collector.Abandoned())
	}
}

func TestAbandonIdempotentAfterAssignment(t *testing.T) {
	m, _, collector := newTestManager(dist.Constant(30))

	c := &types.Contact{ID: "CT-00001"}
	m.Enqueue(c)

	// Contact gets assigned before the check fires.
	got := m.DequeueNext()
	got.State = types.ContactAnswering

	if m.Abandon(c) {
		t.Error("expected stale abandonment check to be a no-op")
	}
	if c.State != types.ContactAnswering {
		t.Errorf("stale check must not alter state, got %s", c.State)
	}
	if collector.Abandoned() != 0 {
		t.Errorf("stale check must not reach statistics, got %d", collector.Abandoned())
	}
}

func TestLongestWait(t *testing.T) {
	m, sched, _ := newTestManager(dist.Constant(100))

	if m.LongestWait() != 0 {
		t.Error("expected zero longest wait on empty queue")
	}

	m.Enqueue(&types.Contact{ID: "CT-00001", ArrivalTime: 0})
	sched.Schedule(25, sim.Event{Kind: sim.KindArrival})
	// Advance the clock to t=25 (the patience check at t=100 stays queued behind it).
	ev, _ := sched.Next()
	if ev.Kind != sim.KindArrival {
		t.Fatalf("expected arrival event, got %s", ev.Kind)
	}

	if m.LongestWait() != 25 {
		t.Errorf("expected longest wait 25, got %.1f", m.LongestWait())
	}
}

func TestServiceLevel(t *testing.T) {
	sl := NewSLTracker(80, 20)

	if sl.CurrentSL() != 100.0 {
		t.Errorf("expected 100%% with no answers, got %.1f", sl.CurrentSL())
	}

	sl.RecordAnswer(10)
	sl.RecordAnswer(20) // exactly at threshold counts
	sl.RecordAnswer(21)
	sl.RecordAnswer(5)

	if sl.CurrentSL() != 75.0 {
		t.Errorf("expected 75%%, got %.1f", sl.CurrentSL())
	}

	snap := sl.Snapshot()
	if snap.AnsweredInSL != 3 || snap.TotalAnswered != 4 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}
