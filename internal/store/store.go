package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Advisory/internal/scoring"
)

type TenderStatus string

const (
	StatusOpen       TenderStatus = "open"
	StatusEvaluation TenderStatus = "evaluation"
	StatusClosed     TenderStatus = "closed"
)

var (
	// ErrInvalidStatus is returned when a filter or update names an unknown status.
	ErrInvalidStatus = errors.New("invalid tender status")
	// ErrTenderClosed is returned by UpdateTender when the stored tender is
	// already closed. Closed tenders are never written again.
	ErrTenderClosed = errors.New("tender is closed")
)

func ParseStatus(s string) (TenderStatus, error) {
	switch st := TenderStatus(s); st {
	case StatusOpen, StatusEvaluation, StatusClosed:
		return st, nil
	}
	return "", ErrInvalidStatus
}

type Tender struct {
	ID                   uuid.UUID               `json:"id"`
	Code                 string                  `json:"code,omitempty"`
	Title                string                  `json:"title"`
	Budget               float64                 `json:"budget"`
	Deadline             time.Time               `json:"deadline"`
	DurationMonths       int                     `json:"duration_months"`
	RequiredTechnologies []string                `json:"required_technologies"`
	RiskSummary          string                  `json:"risk_summary,omitempty"`
	SimilarTenders       []scoring.SimilarTender `json:"similar_tenders,omitempty"`

	Status TenderStatus `json:"status"`

	// Last evaluation
	GoNoGoScore *int                `json:"go_no_go_score,omitempty"`
	Decision    scoring.Label       `json:"decision,omitempty"`
	Criteria    []scoring.Criterion `json:"criteria,omitempty"`
	EvaluatedAt *time.Time          `json:"evaluated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Record returns the scoring view of the tender.
func (t *Tender) Record() *scoring.TenderRecord {
	return &scoring.TenderRecord{
		Title:                t.Title,
		Budget:               t.Budget,
		Deadline:             t.Deadline,
		DurationMonths:       t.DurationMonths,
		RequiredTechnologies: append([]string(nil), t.RequiredTechnologies...),
		RiskSummary:          t.RiskSummary,
		SimilarTenders:       t.SimilarTenders,
	}
}

// ApplyEvaluation stores the outcome of a qualification run on the tender.
func (t *Tender) ApplyEvaluation(ev *scoring.Evaluation, at time.Time) {
	score := ev.Decision.PercentScore
	t.GoNoGoScore = &score
	t.Decision = ev.Decision.Label
	t.Criteria = ev.Criteria
	t.EvaluatedAt = &at
}

// NewTender builds an open tender from a validated record.
func NewTender(code string, rec *scoring.TenderRecord) *Tender {
	return &Tender{
		Code:                 code,
		Title:                rec.Title,
		Budget:               rec.Budget,
		Deadline:             rec.Deadline,
		DurationMonths:       rec.DurationMonths,
		RequiredTechnologies: rec.RequiredTechnologies,
		RiskSummary:          rec.RiskSummary,
		SimilarTenders:       rec.SimilarTenders,
		Status:               StatusOpen,
	}
}

type TenderFilter struct {
	Status *TenderStatus
	Limit  int
	Offset int
}

type Store interface {
	CreateTender(ctx context.Context, t *Tender) error
	GetTender(ctx context.Context, id uuid.UUID) (*Tender, error)
	ListTenders(ctx context.Context, filter TenderFilter) ([]*Tender, error)
	UpdateTender(ctx context.Context, t *Tender) error

	// GetOpenTenders returns tenders that are not closed, soonest deadline first.
	GetOpenTenders(ctx context.Context) ([]*Tender, error)

	Close() error
}

const defaultListLimit = 100
