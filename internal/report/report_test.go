package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/GeneralAntilles/Conto/internal/stats"
	"github.com/GeneralAntilles/Conto/internal/types"
)

func TestJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf)

	answer := 12.5
	recs := []types.ContactRecord{
		{ContactID: "CT-00001", Outcome: types.OutcomeCompleted, AnswerTime: &answer, WaitTime: 12.5},
		{ContactID: "CT-00002", Outcome: types.OutcomeAbandoned, WaitTime: 120},
	}
	for _, rec := range recs {
		if err := w.Record(rec); err != nil {
			t.Fatalf("record failed: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var first types.ContactRecord
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if first.ContactID != "CT-00001" || first.Outcome != types.OutcomeCompleted {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.AnswerTime == nil || *first.AnswerTime != 12.5 {
		t.Error("expected answer time to round-trip")
	}

	// Abandoned record must not carry an answer time.
	if strings.Contains(lines[1], "answerTime") {
		t.Errorf("abandoned record should omit answerTime: %s", lines[1])
	}
}

func TestCollectorKeepsOrder(t *testing.T) {
	var c Collector
	c.Record(types.ContactRecord{ContactID: "CT-00002"})
	c.Record(types.ContactRecord{ContactID: "CT-00001"})

	if len(c.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(c.Records))
	}
	if c.Records[0].ContactID != "CT-00002" {
		t.Error("collector must preserve emission order")
	}
}

func TestSummaryContents(t *testing.T) {
	snap := stats.Snapshot{
		Created: 10, Completed: 8, Abandoned: 2,
		AbandonmentRate: 0.2, ASA: 15.5, AHT: 300,
		Holds: 3, TotalHoldTime: 90, AvgHoldTime: 30,
		AvgAbandonWait: 110,
	}
	sl := types.ServiceLevel{Target: 80, ThresholdSecs: 20, CurrentSL: 75.0}
	agents := []types.AgentSnapshot{
		{AgentID: "AGT-001", Name: "Mary Smith", Handled: 8, Occupancy: 0.85},
	}

	out := Summary("run-1", 10000, snap, sl, agents)

	for _, want := range []string{"10 created", "8 completed", "2 abandoned", "75.0%", "AGT-001", "Mary Smith"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
