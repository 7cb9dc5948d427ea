package scoring

import (
	"math"
	"time"
)

// SimilarTender is a past award carried alongside a tender for context only.
type SimilarTender struct {
	Title  string  `json:"title"`
	Budget float64 `json:"budget"`
	Year   int     `json:"year"`
	Winner string  `json:"winner"`
}

// TenderRecord is the extracted summary of a public tender.
// RiskSummary and SimilarTenders are informational and never scored.
type TenderRecord struct {
	Title                string          `json:"title"`
	Budget               float64         `json:"budget"`
	Deadline             time.Time       `json:"deadline"`
	DurationMonths       int             `json:"durationMonths"`
	RequiredTechnologies []string        `json:"requiredTechnologies"`
	RiskSummary          string          `json:"riskSummary,omitempty"`
	SimilarTenders       []SimilarTender `json:"similarTenders,omitempty"`
}

// Validate fails fast on values the evaluator must not silently absorb.
func (t *TenderRecord) Validate() error {
	if math.IsNaN(t.Budget) || math.IsInf(t.Budget, 0) {
		return &ValidationError{Field: "budget", Value: t.Budget, Reason: "must be a finite number"}
	}
	if t.Budget < 0 {
		return &ValidationError{Field: "budget", Value: t.Budget, Reason: "must not be negative"}
	}
	if t.Deadline.IsZero() {
		return &ValidationError{Field: "deadline", Value: "", Reason: "is required"}
	}
	if t.DurationMonths < 0 {
		return &ValidationError{Field: "durationMonths", Value: t.DurationMonths, Reason: "must not be negative"}
	}
	return nil
}
