package scoring

import (
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Criterion captures one scored dimension of the Go/No-Go evaluation.
type Criterion struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Weight    int    `json:"weight"`
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

const (
	CriterionDeadline     = "deadline"
	CriterionBudget       = "budget"
	CriterionResources    = "resources"
	CriterionCredentials  = "credentials"
	CriterionRelationship = "relationship"
)

// MaxCriterionScore is the top of every criterion's 0–10 scale.
const MaxCriterionScore = 10

// EvaluationContext bundles everything needed to score one tender.
type EvaluationContext struct {
	Tender   *TenderRecord
	Capacity Capacity
	Now      time.Time
}

var amounts = message.NewPrinter(language.English)

// --- Individual criterion calculators ---

// DaysRemaining is the whole number of days until the deadline, rounded up.
// Past deadlines are negative.
func DaysRemaining(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// DeadlineCriterion scores preparation time left before the submission deadline.
func DeadlineCriterion(ec *EvaluationContext) Criterion {
	days := DaysRemaining(ec.Tender.Deadline, ec.Now)
	c := Criterion{ID: CriterionDeadline, Question: "Time to deadline (vs today)", Score: deadlineScore(days)}
	switch c.Score {
	case 2:
		c.Rationale = amounts.Sprintf("Critical: only %d days remaining.", days)
	case 6:
		c.Rationale = amounts.Sprintf("Acceptable: %d days remaining.", days)
	default:
		c.Rationale = amounts.Sprintf("Optimal: %d days to prepare the bid.", days)
	}
	return c
}

func deadlineScore(days int) int {
	switch {
	case days < 7:
		return 2
	case days < 14:
		return 6
	default:
		return 10
	}
}

// BudgetCriterion scores the tender budget against the sales goal.
func BudgetCriterion(ec *EvaluationContext) Criterion {
	budget, goal := ec.Tender.Budget, ec.Capacity.SalesGoalThreshold
	c := Criterion{ID: CriterionBudget, Question: "Budget impact (vs sales goal)", Score: budgetScore(budget, goal)}
	switch c.Score {
	case 1:
		c.Rationale = "Unknown: high risk."
	case 4:
		c.Rationale = amounts.Sprintf("Below target: €%d < sales goal of €%d.", int64(math.Round(budget)), int64(math.Round(goal)))
	default:
		c.Rationale = "High impact: significant contribution to quota."
	}
	return c
}

func budgetScore(budget, goal float64) int {
	switch {
	case budget == 0:
		return 1
	case budget < goal:
		return 4
	default:
		return 10
	}
}

// ResourcesCriterion scores delivery capacity against the active-project limit.
func ResourcesCriterion(ec *EvaluationContext) Criterion {
	remaining := ec.Capacity.Remaining()
	if remaining > 2 {
		return Criterion{
			ID: CriterionResources, Question: "Resource availability (vs active projects)", Score: 9,
			Rationale: amounts.Sprintf("Available: capacity for %d more projects.", remaining),
		}
	}
	return Criterion{
		ID: CriterionResources, Question: "Resource availability (vs active projects)", Score: 4,
		Rationale: "Saturated: teams at their limit.",
	}
}

// CredentialsCriterion scores how much of the required stack the portfolio covers.
func CredentialsCriterion(ec *EvaluationContext) Criterion {
	matched, ratio := MatchCredentials(ec.Tender.RequiredTechnologies, ec.Capacity.Credentials)
	total := len(ec.Tender.RequiredTechnologies)
	c := Criterion{ID: CriterionCredentials, Question: "Credential match (vs portfolio)", Score: credentialScore(ratio)}
	switch c.Score {
	case 10:
		c.Rationale = amounts.Sprintf("Excellent: strong portfolio match (%d/%d).", matched, total)
	case 5:
		c.Rationale = amounts.Sprintf("Partial: external partners required (%d/%d).", matched, total)
	default:
		c.Rationale = amounts.Sprintf("None: no demonstrable experience (%d/%d).", matched, total)
	}
	return c
}

func credentialScore(ratio float64) int {
	switch {
	case ratio > 0.7:
		return 10
	case ratio > 0.3:
		return 5
	default:
		return 2
	}
}

// MatchCredentials counts required technologies that contain, or are contained
// by, any credential, ignoring case. The ratio is 0 when nothing is required.
// Short credentials such as "IA" also match inside unrelated words ("Social Media").
func MatchCredentials(required, credentials []string) (int, float64) {
	if len(required) == 0 {
		return 0, 0
	}
	matched := 0
	for _, tech := range required {
		t := strings.ToLower(tech)
		for _, cred := range credentials {
			c := strings.ToLower(cred)
			if strings.Contains(c, t) || strings.Contains(t, c) {
				matched++
				break
			}
		}
	}
	return matched, float64(matched) / float64(len(required))
}

// RelationshipCriterion is a fixed placeholder; the relationship with the
// contracting authority cannot be derived from the tender record.
func RelationshipCriterion(_ *EvaluationContext) Criterion {
	return Criterion{
		ID: CriterionRelationship, Question: "Relationship with decision maker (manual)", Score: 5,
		Rationale: "Requires subjective assessment.",
	}
}
