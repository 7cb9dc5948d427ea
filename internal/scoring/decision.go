package scoring

// Label is the categorical Go/No-Go outcome.
type Label string

const (
	LabelGo     Label = "GO"
	LabelReview Label = "REVIEW"
	LabelNoGo   Label = "NO_GO"
)

const (
	GoThreshold     = 70
	ReviewThreshold = 40
)

// Decision is the aggregate of a criterion set.
type Decision struct {
	PercentScore int   `json:"percent_score"`
	Label        Label `json:"label"`
}

// Aggregate folds weighted criterion scores into a 0–100 percentage and a label.
//
//	percent = round(100 · Σ(score·weight) / Σ(10·weight))
//
// Rounding is half-up and done in integers so .5 boundaries are exact.
// An empty set, or one whose weights sum to zero, scores 0.
func Aggregate(criteria []Criterion) Decision {
	var total, maxTotal int
	for _, c := range criteria {
		total += c.Score * c.Weight
		maxTotal += MaxCriterionScore * c.Weight
	}
	percent := 0
	if maxTotal > 0 {
		percent = (200*total + maxTotal) / (2 * maxTotal)
	}
	return Decision{PercentScore: percent, Label: LabelFor(percent)}
}

// LabelFor maps a percent score to its band; lower bounds are inclusive.
func LabelFor(percent int) Label {
	switch {
	case percent >= GoThreshold:
		return LabelGo
	case percent >= ReviewThreshold:
		return LabelReview
	default:
		return LabelNoGo
	}
}
