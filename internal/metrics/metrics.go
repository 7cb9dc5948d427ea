// Package metrics exposes Prometheus collectors for both engines and the
// tender pipeline. A nil *Collector is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	projections   prometheus.Counter
	evaluations   *prometheus.CounterVec
	percentScores prometheus.Histogram
	invalidInputs *prometheus.CounterVec
	sweepDuration prometheus.Histogram
	closedTenders prometheus.Counter
	openTenders   prometheus.Gauge
}

// New registers the advisory collectors on reg. If reg is nil, the default
// registerer is used. Collectors that are already registered are reused.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		projections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisory_projections_total",
			Help: "Total number of policy projections computed",
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "advisory_evaluations_total",
			Help: "Total number of tender qualifications by decision label",
		}, []string{"decision"}),
		percentScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisory_evaluation_percent_score",
			Help:    "Distribution of Go/No-Go percent scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		}),
		invalidInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "advisory_invalid_inputs_total",
			Help: "Requests rejected by engine validation",
		}, []string{"engine"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "advisory_watcher_sweep_seconds",
			Help:    "Time spent re-evaluating open tenders per watcher tick",
			Buckets: prometheus.DefBuckets,
		}),
		closedTenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "advisory_tenders_closed_total",
			Help: "Tenders closed by the watcher after their deadline passed",
		}),
		openTenders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "advisory_open_tenders",
			Help: "Open tenders seen by the last watcher tick",
		}),
	}

	var err error
	if c.projections, err = register(reg, c.projections); err != nil {
		return nil, err
	}
	if c.evaluations, err = register(reg, c.evaluations); err != nil {
		return nil, err
	}
	if c.percentScores, err = register(reg, c.percentScores); err != nil {
		return nil, err
	}
	if c.invalidInputs, err = register(reg, c.invalidInputs); err != nil {
		return nil, err
	}
	if c.sweepDuration, err = register(reg, c.sweepDuration); err != nil {
		return nil, err
	}
	if c.closedTenders, err = register(reg, c.closedTenders); err != nil {
		return nil, err
	}
	if c.openTenders, err = register(reg, c.openTenders); err != nil {
		return nil, err
	}
	return c, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return col, err
	}
	return col, nil
}

func (c *Collector) ObserveProjection() {
	if c == nil {
		return
	}
	c.projections.Inc()
}

func (c *Collector) ObserveEvaluation(decision string, percent int) {
	if c == nil {
		return
	}
	c.evaluations.WithLabelValues(decision).Inc()
	c.percentScores.Observe(float64(percent))
}

// ObserveInvalidInput counts a validation rejection by engine ("simulation" or "scoring").
func (c *Collector) ObserveInvalidInput(engine string) {
	if c == nil {
		return
	}
	c.invalidInputs.WithLabelValues(engine).Inc()
}

func (c *Collector) ObserveSweep(d time.Duration, open, closed int) {
	if c == nil {
		return
	}
	c.sweepDuration.Observe(d.Seconds())
	c.openTenders.Set(float64(open))
	c.closedTenders.Add(float64(closed))
}
