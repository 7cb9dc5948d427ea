package scoring

import (
	"log/slog"
	"time"
)

// Condition flags how an evaluation's inputs were interpreted.
type Condition string

const (
	ConditionOK Condition = "ok"
	// ConditionDegenerate marks a tender with no required technologies; the
	// credential ratio is defined as 0 rather than treated as an error.
	ConditionDegenerate Condition = "degenerate_input"
)

// Evaluation captures the complete qualification output for one tender.
type Evaluation struct {
	Criteria      []Criterion `json:"criteria"`
	Decision      Decision    `json:"decision"`
	DaysRemaining int         `json:"days_remaining"`
	MatchRatio    float64     `json:"match_ratio"`
	Condition     Condition   `json:"condition"`
}

// Evaluator orchestrates the five-criterion Go/No-Go scoring engine.
type Evaluator struct {
	weights WeightSet
	now     func() time.Time
	logger  *slog.Logger
}

// NewEvaluator creates an Evaluator using the fixed default weights.
// now supplies "today" for the deadline criterion; nil means time.Now.
func NewEvaluator(now func() time.Time, logger *slog.Logger) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{
		weights: DefaultWeights(),
		now:     now,
		logger:  logger,
	}
}

// Now reads the evaluator's clock.
func (e *Evaluator) Now() time.Time {
	return e.now()
}

// Evaluate scores tender against capacity as of the evaluator's clock.
func (e *Evaluator) Evaluate(tender *TenderRecord, capacity Capacity) ([]Criterion, error) {
	return e.EvaluateAt(tender, capacity, e.now())
}

// EvaluateAt scores tender against capacity as of now. Every call recomputes
// all five criteria from scratch.
func (e *Evaluator) EvaluateAt(tender *TenderRecord, capacity Capacity, now time.Time) ([]Criterion, error) {
	if err := tender.Validate(); err != nil {
		return nil, err
	}
	if err := capacity.Validate(); err != nil {
		return nil, err
	}

	ec := &EvaluationContext{Tender: tender, Capacity: capacity, Now: now}
	criteria := []Criterion{
		DeadlineCriterion(ec),
		BudgetCriterion(ec),
		ResourcesCriterion(ec),
		CredentialsCriterion(ec),
		RelationshipCriterion(ec),
	}

	// Apply weights
	weights := e.weights.asList()
	for i := range criteria {
		criteria[i].Weight = weights[i]
	}
	return criteria, nil
}

// Qualify evaluates and aggregates in one step.
func (e *Evaluator) Qualify(tender *TenderRecord, capacity Capacity) (Evaluation, error) {
	return e.QualifyAt(tender, capacity, e.now())
}

// QualifyAt is Qualify with an explicit "today".
func (e *Evaluator) QualifyAt(tender *TenderRecord, capacity Capacity, now time.Time) (Evaluation, error) {
	criteria, err := e.EvaluateAt(tender, capacity, now)
	if err != nil {
		return Evaluation{}, err
	}

	_, ratio := MatchCredentials(tender.RequiredTechnologies, capacity.Credentials)
	ev := Evaluation{
		Criteria:      criteria,
		Decision:      Aggregate(criteria),
		DaysRemaining: DaysRemaining(tender.Deadline, now),
		MatchRatio:    ratio,
		Condition:     ConditionOK,
	}
	if len(tender.RequiredTechnologies) == 0 {
		ev.Condition = ConditionDegenerate
	}

	if e.logger != nil {
		e.logger.Debug("tender qualified",
			"title", tender.Title,
			"percent_score", ev.Decision.PercentScore,
			"label", ev.Decision.Label,
			"condition", ev.Condition,
		)
	}
	return ev, nil
}
