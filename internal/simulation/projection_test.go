package simulation

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(v int) LeverSet {
	return LeverSet{v, v, v, v, v, v, v, v}
}

func TestProjectAllZero(t *testing.T) {
	series, err := Project(uniform(0), 2026)
	require.NoError(t, err)
	require.Len(t, series, Horizon+1)

	first, last := series[0], series[Horizon]
	assert.Equal(t, 2026, first.Year)
	assert.InDelta(t, 40, first.Efficiency, 1e-9)
	assert.InDelta(t, 50, first.Trust, 1e-9)
	assert.InDelta(t, 100, first.Cost, 1e-9)

	assert.Equal(t, 2036, last.Year)
	assert.InDelta(t, 40, last.Efficiency, 1e-9)
	assert.InDelta(t, 55, last.Trust, 1e-9)
	assert.InDelta(t, 100, last.Cost, 1e-9)
}

func TestProjectAllMax(t *testing.T) {
	levers := uniform(100)
	assert.InDelta(t, 100, levers.EfficiencyBase(), 1e-9)
	assert.InDelta(t, 100, levers.TrustBase(), 1e-9)

	series, err := Project(levers, 2026)
	require.NoError(t, err)

	assert.InDelta(t, 1.2425, GrowthFactor(Horizon), 1e-3)
	// 40 + 100·1.242·0.5 ≈ 102.1, capped
	assert.Equal(t, 100.0, series[Horizon].Efficiency)
	// 100 - 100·1.242·0.4 ≈ 50.3
	assert.InDelta(t, 100-100*GrowthFactor(Horizon)*0.4, series[Horizon].Cost, 1e-9)
}

func TestProjectDefaults(t *testing.T) {
	levers := DefaultLevers()
	require.NoError(t, levers.Validate())

	// 0.35·40 + 0.25·50 + 0.20·30 + 0.20·20
	assert.InDelta(t, 36.5, levers.EfficiencyBase(), 1e-9)
	// 0.30·40 + 0.30·30 + 0.20·30 + 0.20·50
	assert.InDelta(t, 37.0, levers.TrustBase(), 1e-9)

	series, err := Project(levers, 2026)
	require.NoError(t, err)
	g := math.Log(2) / 2
	assert.InDelta(t, 40+36.5*g*0.5, series[0].Efficiency, 1e-9)
	assert.InDelta(t, 50+37.0*g*0.3, series[0].Trust, 1e-9)
	assert.InDelta(t, 100-36.5*g*0.4, series[0].Cost, 1e-9)
}

func TestProjectRejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		patch func(*LeverSet)
		field string
	}{
		{"negative automation", func(l *LeverSet) { l.ProcessAutomation = -1 }, "processAutomation"},
		{"open data over max", func(l *LeverSet) { l.OpenData = 101 }, "openData"},
		{"citizen engagement far over", func(l *LeverSet) { l.CitizenEngagement = 1000 }, "citizenEngagement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levers := DefaultLevers()
			tt.patch(&levers)

			series, err := Project(levers, 2026)
			require.Error(t, err)
			assert.Nil(t, series)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestProjectBoundaryLeversAccepted(t *testing.T) {
	for _, v := range []int{LeverMin, LeverMax} {
		_, err := Project(uniform(v), 2026)
		assert.NoError(t, err, "lever value %d", v)
	}
}

func TestProjectSeriesShape(t *testing.T) {
	series, err := Project(DefaultLevers(), 1999)
	require.NoError(t, err)
	require.Len(t, series, 11)
	for i, p := range series {
		assert.Equal(t, 1999+i, p.Year)
	}
}

func TestProjectBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		levers := LeverSet{
			rng.Intn(101), rng.Intn(101), rng.Intn(101), rng.Intn(101),
			rng.Intn(101), rng.Intn(101), rng.Intn(101), rng.Intn(101),
		}
		series, err := Project(levers, 2026)
		require.NoError(t, err)
		for _, p := range series {
			if p.Efficiency < 0 || p.Efficiency > 100 {
				t.Fatalf("efficiency %f out of bounds for %+v", p.Efficiency, levers)
			}
			if p.Trust < 0 || p.Trust > 100 {
				t.Fatalf("trust %f out of bounds for %+v", p.Trust, levers)
			}
			if p.Cost < 20 {
				t.Fatalf("cost %f below floor for %+v", p.Cost, levers)
			}
		}
	}
}

func TestProjectCapsHoldBeyondLeverRange(t *testing.T) {
	series := projectBases(10_000, 10_000, 2026)
	for _, p := range series {
		assert.LessOrEqual(t, p.Efficiency, 100.0)
		assert.LessOrEqual(t, p.Trust, 100.0)
		assert.GreaterOrEqual(t, p.Cost, 20.0)
	}
	assert.Equal(t, 100.0, series[0].Efficiency)
	assert.Equal(t, 20.0, series[Horizon].Cost)
}

func TestProjectMonotonicInEachLever(t *testing.T) {
	setters := map[string]func(*LeverSet, int){
		"processAutomation":    func(l *LeverSet, v int) { l.ProcessAutomation = v },
		"resourceOptimization": func(l *LeverSet, v int) { l.ResourceOptimization = v },
		"greenPolicies":        func(l *LeverSet, v int) { l.GreenPolicies = v },
		"aiAndCloud":           func(l *LeverSet, v int) { l.AIAndCloud = v },
		"interoperability":     func(l *LeverSet, v int) { l.Interoperability = v },
		"cyberSecurity":        func(l *LeverSet, v int) { l.CyberSecurity = v },
		"openData":             func(l *LeverSet, v int) { l.OpenData = v },
		"citizenEngagement":    func(l *LeverSet, v int) { l.CitizenEngagement = v },
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			for v := 0; v < 100; v += 7 {
				lo, hi := DefaultLevers(), DefaultLevers()
				set(&lo, v)
				set(&hi, v+1)

				assert.GreaterOrEqual(t, hi.EfficiencyBase(), lo.EfficiencyBase())
				assert.GreaterOrEqual(t, hi.TrustBase(), lo.TrustBase())
				assert.Greater(t, hi.EfficiencyBase()+hi.TrustBase(), lo.EfficiencyBase()+lo.TrustBase())

				sLo, err := Project(lo, 2026)
				require.NoError(t, err)
				sHi, err := Project(hi, 2026)
				require.NoError(t, err)
				for i := range sLo {
					assert.GreaterOrEqual(t, sHi[i].Efficiency, sLo[i].Efficiency)
					assert.GreaterOrEqual(t, sHi[i].Trust, sLo[i].Trust)
					assert.LessOrEqual(t, sHi[i].Cost, sLo[i].Cost)
				}
			}
		})
	}
}

func TestProjectDeterministic(t *testing.T) {
	a, err := Project(DefaultLevers(), 2026)
	require.NoError(t, err)
	b, err := Project(DefaultLevers(), 2026)
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeated projection differs (-first +second):\n%s", diff)
	}
}

func TestGrowthFactorConcave(t *testing.T) {
	for i := 1; i < Horizon; i++ {
		prev := GrowthFactor(i) - GrowthFactor(i-1)
		next := GrowthFactor(i+1) - GrowthFactor(i)
		assert.Greater(t, next, 0.0)
		assert.Less(t, next, prev)
	}
}

func TestProjectorUsesClockYear(t *testing.T) {
	clock := func() time.Time { return time.Date(2031, time.March, 3, 12, 0, 0, 0, time.UTC) }
	p := NewProjector(clock)

	got, err := p.Project(DefaultLevers())
	require.NoError(t, err)
	want, err := Project(DefaultLevers(), 2031)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("projector series mismatch (-want +got):\n%s", diff)
	}
}

func TestLeverPatchApply(t *testing.T) {
	ten, ninety := 10, 90
	patch := LeverPatch{ProcessAutomation: &ten, CitizenEngagement: &ninety}

	got := patch.Apply(DefaultLevers())
	want := DefaultLevers()
	want.ProcessAutomation = 10
	want.CitizenEngagement = 90
	assert.Equal(t, want, got)

	assert.Equal(t, DefaultLevers(), LeverPatch{}.Apply(DefaultLevers()))
}

func TestSummarize(t *testing.T) {
	series, err := Project(uniform(0), 2026)
	require.NoError(t, err)

	s := Summarize(series)
	assert.InDelta(t, 40, s.EfficiencyTarget, 1e-9)
	assert.InDelta(t, 5, s.TrustGain, 1e-9)
	assert.InDelta(t, 55, s.FinalTrust, 1e-9)
	assert.InDelta(t, 0, s.CostReduction, 1e-9)

	assert.Equal(t, Summary{}, Summarize(nil))
}
