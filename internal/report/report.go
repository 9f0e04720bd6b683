// Package report carries terminal contact records out of the simulation and
// renders the final aggregate summary.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/GeneralAntilles/Conto/internal/stats"
	"github.com/GeneralAntilles/Conto/internal/types"
)

// Sink receives the terminal record for every contact as it completes or
// abandons. Records arrive in simulated-time order.
type Sink interface {
	Record(rec types.ContactRecord) error
}

// JSONLWriter streams records as one JSON object per line. Given a fixed
// seed, output bytes are identical across runs.
type JSONLWriter struct {
	enc *json.Encoder
}

// NewJSONLWriter creates a JSONL sink writing to w
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{enc: json.NewEncoder(w)}
}

// Record writes one record as a JSON line
func (j *JSONLWriter) Record(rec types.ContactRecord) error {
	return j.enc.Encode(rec)
}

// Collector retains all records in arrival order
type Collector struct {
	Records []types.ContactRecord
}

// Record appends the record
func (c *Collector) Record(rec types.ContactRecord) error {
	c.Records = append(c.Records, rec)
	return nil
}

// Summary renders the final run report as text for the CLI
func Summary(runID string, elapsed float64, snap stats.Snapshot, sl types.ServiceLevel, agents []types.AgentSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "run %s finished at T+%.0fs\n", runID, elapsed)
	fmt.Fprintf(&b, "contacts: %d created, %d completed, %d abandoned (%.1f%% abandonment)\n",
		snap.Created, snap.Completed, snap.Abandoned, snap.AbandonmentRate*100)
	fmt.Fprintf(&b, "service level: %.1f%% in %ds (target %d%%)\n",
		sl.CurrentSL, sl.ThresholdSecs, sl.Target)
	fmt.Fprintf(&b, "ASA %.1fs  AHT %.1fs  avg wrap %.1fs\n",
		snap.ASA, snap.AHT, snap.AvgWrapTime)
	if snap.Holds > 0 {
		fmt.Fprintf(&b, "holds: %d for %.0fs total (avg %.1fs)\n",
			snap.Holds, snap.TotalHoldTime, snap.AvgHoldTime)
	}
	if snap.Abandoned > 0 {
		fmt.Fprintf(&b, "avg wait before abandoning: %.1fs\n", snap.AvgAbandonWait)
	}

	for _, a := range agents {
		fmt.Fprintf(&b, "  %s %-24s handled %3d  occupancy %5.1f%%\n",
			a.AgentID, a.Name, a.Handled, a.Occupancy*100)
	}

	return b.String()
}
