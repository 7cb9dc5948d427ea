package simulation

// Summary holds the headline figures shown next to a projection.
type Summary struct {
	EfficiencyTarget float64 `json:"efficiency_target"`
	TrustGain        float64 `json:"trust_gain"`
	FinalTrust       float64 `json:"final_trust"`
	CostReduction    float64 `json:"cost_reduction"`
}

// Summarize compares the last point of series with the first. An empty series
// yields a zero Summary.
func Summarize(series ProjectionSeries) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	first, last := series[0], series[len(series)-1]
	return Summary{
		EfficiencyTarget: last.Efficiency,
		TrustGain:        last.Trust - first.Trust,
		FinalTrust:       last.Trust,
		CostReduction:    first.Cost - last.Cost,
	}
}
