package types

// Outcome tags a terminal contact record
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeAbandoned Outcome = "abandoned"
)

// ContactRecord is the terminal record emitted for every contact that
// completes or abandons. Times are simulated seconds from run start.
type ContactRecord struct {
	ContactID    string   `json:"contactId"`
	Skill        string   `json:"skill"`
	AgentID      string   `json:"agentId,omitempty"`
	Outcome      Outcome  `json:"outcome"`
	ArrivalTime  float64  `json:"arrivalTime"`
	AnswerTime   *float64 `json:"answerTime,omitempty"`
	CompleteTime float64  `json:"completeTime"`
	WaitTime     float64  `json:"waitTime"`
	HandleTime   float64  `json:"handleTime"`
	HoldTime     float64  `json:"holdTime"`
	Holds        int      `json:"holds"`
	WrapTime     float64  `json:"wrapTime"`
	AnsweredInSL bool     `json:"answeredInSL"`
}

// NewContactRecord builds the terminal record for a contact. The contact must
// be in a terminal state.
func NewContactRecord(c *Contact, slThresholdSecs float64) ContactRecord {
	rec := ContactRecord{
		ContactID:    c.ID,
		Skill:        c.Skill,
		ArrivalTime:  c.ArrivalTime,
		CompleteTime: c.CompleteTime,
		WaitTime:     c.WaitTime,
		HandleTime:   c.HandleTime,
		HoldTime:     c.HoldTime,
		Holds:        c.HoldCount,
		WrapTime:     c.WrapTime,
	}

	if c.State == ContactAbandoned {
		rec.Outcome = OutcomeAbandoned
		return rec
	}

	rec.Outcome = OutcomeCompleted
	answer := c.AnswerTime
	rec.AnswerTime = &answer
	rec.AnsweredInSL = c.WaitTime <= slThresholdSecs
	if c.Agent != nil {
		rec.AgentID = c.Agent.ID
	}
	return rec
}

// ServiceLevel is the answered-within-threshold summary for a run
type ServiceLevel struct {
	Target        int     `json:"target"`        // target percentage (e.g., 80)
	ThresholdSecs int     `json:"thresholdSecs"` // threshold in seconds (e.g., 20)
	AnsweredInSL  int     `json:"answeredInSL"`
	TotalAnswered int     `json:"totalAnswered"`
	CurrentSL     float64 `json:"currentSL"`
}
