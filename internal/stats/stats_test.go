package stats

import (
	"math"
	"testing"

	"github.com/GeneralAntilles/Conto/internal/types"
	"github.com/rs/zerolog"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector(zerolog.Nop())

	for i := 0; i < 5; i++ {
		c.RecordArrival()
	}
	c.RecordCompletion(&types.Contact{ID: "CT-00001", WaitTime: 10, HandleTime: 300})
	c.RecordCompletion(&types.Contact{ID: "CT-00002", WaitTime: 20, HandleTime: 200})
	c.RecordAbandonment(&types.Contact{ID: "CT-00003", WaitTime: 120})

	if c.Created() != 5 {
		t.Errorf("expected 5 created, got %d", c.Created())
	}
	if c.Completed() != 2 {
		t.Errorf("expected 2 completed, got %d", c.Completed())
	}
	if c.Abandoned() != 1 {
		t.Errorf("expected 1 abandoned, got %d", c.Abandoned())
	}
	if c.InFlight() != 2 {
		t.Errorf("expected 2 in flight, got %d", c.InFlight())
	}
}

func TestSnapshotAggregates(t *testing.T) {
	c := NewCollector(zerolog.Nop())

	c.RecordArrival()
	c.RecordArrival()
	c.RecordArrival()
	c.RecordCompletion(&types.Contact{WaitTime: 10, HandleTime: 100, HoldTime: 30, HoldCount: 1, WrapTime: 60})
	c.RecordCompletion(&types.Contact{WaitTime: 30, HandleTime: 200, WrapTime: 40})
	c.RecordAbandonment(&types.Contact{WaitTime: 90})

	s := c.Snapshot()

	if s.ASA != 20 {
		t.Errorf("expected ASA 20, got %g", s.ASA)
	}
	if s.AHT != 150 {
		t.Errorf("expected AHT 150, got %g", s.AHT)
	}
	if s.AvgWrapTime != 50 {
		t.Errorf("expected avg wrap 50, got %g", s.AvgWrapTime)
	}
	if s.Holds != 1 || s.TotalHoldTime != 30 || s.AvgHoldTime != 30 {
		t.Errorf("unexpected hold aggregates: %+v", s)
	}
	if s.AvgAbandonWait != 90 {
		t.Errorf("expected avg abandon wait 90, got %g", s.AvgAbandonWait)
	}

	// 1 abandoned of 3 terminal
	if math.Abs(s.AbandonmentRate-1.0/3.0) > 1e-9 {
		t.Errorf("expected abandonment rate 1/3, got %g", s.AbandonmentRate)
	}

	// Sample stddev of {10, 30} is sqrt(200) ~ 14.142
	if math.Abs(s.WaitStdDev-math.Sqrt(200)) > 1e-9 {
		t.Errorf("expected wait stddev %.3f, got %.3f", math.Sqrt(200), s.WaitStdDev)
	}
}

func TestSnapshotEmpty(t *testing.T) {
	c := NewCollector(zerolog.Nop())
	s := c.Snapshot()
	if s.AbandonmentRate != 0 || s.ASA != 0 || s.AHT != 0 {
		t.Errorf("expected zeroed snapshot, got %+v", s)
	}
}
