package simulation

import (
	"math"
	"time"
)

// Horizon is the number of years projected after the base year.
const Horizon = 10

// ProjectionPoint is one simulated year.
type ProjectionPoint struct {
	Year       int     `json:"year"`
	Efficiency float64 `json:"efficiency"`
	Trust      float64 `json:"trust"`
	Cost       float64 `json:"cost"`
}

// ProjectionSeries holds Horizon+1 points in chronological order.
type ProjectionSeries []ProjectionPoint

// GrowthFactor is ln(i+2)/2, a concave adoption curve over the year offset.
func GrowthFactor(offset int) float64 {
	return math.Log(float64(offset+2)) / 2
}

// Project runs the simulation for levers starting at baseYear.
func Project(levers LeverSet, baseYear int) (ProjectionSeries, error) {
	if err := levers.Validate(); err != nil {
		return nil, err
	}
	return projectBases(levers.EfficiencyBase(), levers.TrustBase(), baseYear), nil
}

// projectBases applies the caps and floor regardless of how large the bases are.
func projectBases(efficiencyBase, trustBase float64, baseYear int) ProjectionSeries {
	series := make(ProjectionSeries, 0, Horizon+1)
	for i := 0; i <= Horizon; i++ {
		g := GrowthFactor(i)
		series = append(series, ProjectionPoint{
			Year:       baseYear + i,
			Efficiency: math.Min(100, 40+efficiencyBase*g*0.5),
			Trust:      math.Min(100, 50+trustBase*g*0.3+float64(i)*0.5),
			Cost:       math.Max(20, 100-efficiencyBase*g*0.4),
		})
	}
	return series
}

// Projector binds the projection to a calendar clock.
type Projector struct {
	now func() time.Time
}

// NewProjector returns a Projector using now for the base year; nil means time.Now.
func NewProjector(now func() time.Time) *Projector {
	if now == nil {
		now = time.Now
	}
	return &Projector{now: now}
}

// Project projects levers from the current calendar year.
func (p *Projector) Project(levers LeverSet) (ProjectionSeries, error) {
	return Project(levers, p.now().Year())
}
