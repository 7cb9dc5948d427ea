package scoring

import (
	"strconv"
	"strings"
)

// Capacity describes the company-side constants the evaluator scores against.
type Capacity struct {
	ActiveProjectsLimit   int      `json:"active_projects_limit" yaml:"active_projects_limit"`
	CurrentActiveProjects int      `json:"current_active_projects" yaml:"current_active_projects"`
	SalesGoalThreshold    float64  `json:"sales_goal_threshold" yaml:"sales_goal_threshold"`
	Credentials           []string `json:"credentials" yaml:"credentials"`
}

// DefaultCapacity returns the reference company profile.
func DefaultCapacity() Capacity {
	return Capacity{
		ActiveProjectsLimit:   20,
		CurrentActiveProjects: 14,
		SalesGoalThreshold:    200000,
		Credentials: []string{
			"Big Data", "IA", "SAP", "Cloud", "Transformación Digital",
			"Java", "React", "Cybersecurity",
		},
	}
}

// Remaining is how many more projects the teams can take on.
func (c Capacity) Remaining() int {
	return c.ActiveProjectsLimit - c.CurrentActiveProjects
}

// Validate rejects negative counts and thresholds, and blank credentials,
// which would otherwise match every technology.
func (c Capacity) Validate() error {
	if c.ActiveProjectsLimit < 0 {
		return &ValidationError{Field: "active_projects_limit", Value: c.ActiveProjectsLimit, Reason: "must not be negative"}
	}
	if c.CurrentActiveProjects < 0 {
		return &ValidationError{Field: "current_active_projects", Value: c.CurrentActiveProjects, Reason: "must not be negative"}
	}
	if c.SalesGoalThreshold < 0 {
		return &ValidationError{Field: "sales_goal_threshold", Value: c.SalesGoalThreshold, Reason: "must not be negative"}
	}
	for i, cred := range c.Credentials {
		if strings.TrimSpace(cred) == "" {
			return &ValidationError{Field: "credentials[" + strconv.Itoa(i) + "]", Value: cred, Reason: "must not be blank"}
		}
	}
	return nil
}
