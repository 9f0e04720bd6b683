package queue

import "github.com/GeneralAntilles/Conto/internal/types"

// SLTracker tracks the fraction of contacts answered within the service
// level threshold
type SLTracker struct {
	Target        int // target percentage (e.g., 80)
	ThresholdSecs int // threshold in seconds (e.g., 20)
	AnsweredInSL  int
	TotalAnswered int
}

// NewSLTracker creates a tracker with the given target
func NewSLTracker(target, thresholdSecs int) *SLTracker {
	return &SLTracker{
		Target:        target,
		ThresholdSecs: thresholdSecs,
	}
}

// RecordAnswer records a contact being answered after waiting waitSecs
func (s *SLTracker) RecordAnswer(waitSecs float64) {
	s.TotalAnswered++
	if waitSecs <= float64(s.ThresholdSecs) {
		s.AnsweredInSL++
	}
}

// CurrentSL returns the current service level percentage
func (s *SLTracker) CurrentSL() float64 {
	if s.TotalAnswered == 0 {
		return 100.0
	}
	return float64(s.AnsweredInSL) / float64(s.TotalAnswered) * 100.0
}

// Snapshot returns the service level summary
func (s *SLTracker) Snapshot() types.ServiceLevel {
	return types.ServiceLevel{
		Target:        s.Target,
		ThresholdSecs: s.ThresholdSecs,
		AnsweredInSL:  s.AnsweredInSL,
		TotalAnswered: s.TotalAnswered,
		CurrentSL:     s.CurrentSL(),
	}
}
