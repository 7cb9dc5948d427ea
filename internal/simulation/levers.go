package simulation

import (
	"gonum.org/v1/gonum/floats"
)

const (
	LeverMin = 0
	LeverMax = 100
)

// LeverSet holds the eight policy levers, each in [LeverMin, LeverMax].
// It is a value type: callers build a new LeverSet for every run.
type LeverSet struct {
	// Efficiency and sustainability
	ProcessAutomation    int `json:"processAutomation" yaml:"process_automation"`
	ResourceOptimization int `json:"resourceOptimization" yaml:"resource_optimization"`
	GreenPolicies        int `json:"greenPolicies" yaml:"green_policies"`

	// Digital transformation
	AIAndCloud       int `json:"aiAndCloud" yaml:"ai_and_cloud"`
	Interoperability int `json:"interoperability" yaml:"interoperability"`
	CyberSecurity    int `json:"cyberSecurity" yaml:"cyber_security"`

	// Transparency and participation
	OpenData          int `json:"openData" yaml:"open_data"`
	CitizenEngagement int `json:"citizenEngagement" yaml:"citizen_engagement"`
}

// DefaultLevers returns the lever positions a fresh simulation starts from.
func DefaultLevers() LeverSet {
	return LeverSet{
		ProcessAutomation:    40,
		ResourceOptimization: 50,
		GreenPolicies:        30,
		AIAndCloud:           20,
		Interoperability:     30,
		CyberSecurity:        50,
		OpenData:             40,
		CitizenEngagement:    30,
	}
}

// Validate rejects any lever outside [LeverMin, LeverMax]. Out-of-range values
// are never clamped so that upstream extraction failures stay visible.
func (l LeverSet) Validate() error {
	for _, f := range l.fields() {
		if f.value < LeverMin || f.value > LeverMax {
			return &ValidationError{Field: f.name, Value: f.value, Reason: "must be between 0 and 100"}
		}
	}
	return nil
}

var (
	efficiencyWeights = []float64{0.35, 0.25, 0.20, 0.20}
	trustWeights      = []float64{0.30, 0.30, 0.20, 0.20}
)

// EfficiencyBase is the weighted operational-efficiency input:
//
//	0.35·processAutomation + 0.25·resourceOptimization + 0.20·interoperability + 0.20·aiAndCloud
func (l LeverSet) EfficiencyBase() float64 {
	return floats.Dot(efficiencyWeights, []float64{
		float64(l.ProcessAutomation),
		float64(l.ResourceOptimization),
		float64(l.Interoperability),
		float64(l.AIAndCloud),
	})
}

// TrustBase is the weighted citizen-trust input:
//
//	0.30·openData + 0.30·citizenEngagement + 0.20·greenPolicies + 0.20·cyberSecurity
func (l LeverSet) TrustBase() float64 {
	return floats.Dot(trustWeights, []float64{
		float64(l.OpenData),
		float64(l.CitizenEngagement),
		float64(l.GreenPolicies),
		float64(l.CyberSecurity),
	})
}

type leverField struct {
	name  string
	value int
}

func (l LeverSet) fields() []leverField {
	return []leverField{
		{"processAutomation", l.ProcessAutomation},
		{"resourceOptimization", l.ResourceOptimization},
		{"greenPolicies", l.GreenPolicies},
		{"aiAndCloud", l.AIAndCloud},
		{"interoperability", l.Interoperability},
		{"cyberSecurity", l.CyberSecurity},
		{"openData", l.OpenData},
		{"citizenEngagement", l.CitizenEngagement},
	}
}

// Map returns the levers keyed by their JSON names.
func (l LeverSet) Map() map[string]int {
	m := make(map[string]int, 8)
	for _, f := range l.fields() {
		m[f.name] = f.value
	}
	return m
}

// LeverPatch is a partial LeverSet; nil fields keep the base value.
type LeverPatch struct {
	ProcessAutomation    *int `json:"processAutomation,omitempty"`
	ResourceOptimization *int `json:"resourceOptimization,omitempty"`
	GreenPolicies        *int `json:"greenPolicies,omitempty"`
	AIAndCloud           *int `json:"aiAndCloud,omitempty"`
	Interoperability     *int `json:"interoperability,omitempty"`
	CyberSecurity        *int `json:"cyberSecurity,omitempty"`
	OpenData             *int `json:"openData,omitempty"`
	CitizenEngagement    *int `json:"citizenEngagement,omitempty"`
}

// Apply returns a new LeverSet with the patch laid over base.
func (p LeverPatch) Apply(base LeverSet) LeverSet {
	out := base
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&out.ProcessAutomation, p.ProcessAutomation)
	set(&out.ResourceOptimization, p.ResourceOptimization)
	set(&out.GreenPolicies, p.GreenPolicies)
	set(&out.AIAndCloud, p.AIAndCloud)
	set(&out.Interoperability, p.Interoperability)
	set(&out.CyberSecurity, p.CyberSecurity)
	set(&out.OpenData, p.OpenData)
	set(&out.CitizenEngagement, p.CitizenEngagement)
	return out
}
