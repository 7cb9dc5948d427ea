package hermes

import "time"

type TenderCreatedEvent struct {
	TenderID string    `json:"tender_id"`
	Code     string    `json:"code,omitempty"`
	Title    string    `json:"title"`
	Budget   float64   `json:"budget"`
	Deadline time.Time `json:"deadline"`
}

type TenderEvaluatedEvent struct {
	TenderID      string    `json:"tender_id"`
	PercentScore  int       `json:"percent_score"`
	Decision      string    `json:"decision"`
	DaysRemaining int       `json:"days_remaining"`
	MatchRatio    float64   `json:"match_ratio"`
	Condition     string    `json:"condition"`
	EvaluatedAt   time.Time `json:"evaluated_at"`
}

type DecisionChangedEvent struct {
	TenderID         string `json:"tender_id"`
	PreviousDecision string `json:"previous_decision"`
	Decision         string `json:"decision"`
	PreviousScore    int    `json:"previous_score"`
	PercentScore     int    `json:"percent_score"`
}

type TenderClosedEvent struct {
	TenderID string    `json:"tender_id"`
	Deadline time.Time `json:"deadline"`
	Decision string    `json:"decision,omitempty"`
}

type ProjectionEvent struct {
	Levers           map[string]int `json:"levers"`
	BaseYear         int            `json:"base_year"`
	EfficiencyTarget float64        `json:"efficiency_target"`
	TrustGain        float64        `json:"trust_gain"`
	CostReduction    float64        `json:"cost_reduction"`
	Timestamp        time.Time      `json:"timestamp"`
}
