// Package metrics provides the observability backends for experiment runs:
// a Prometheus sink and an InfluxDB sink, both registered on the core sink
// factory.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
)

// PromSink exposes trial and summary observations as Prometheus metrics.
type PromSink struct {
	trials  *prometheus.CounterVec
	revenue *prometheus.HistogramVec
	winRate prometheus.Gauge
	uplift  prometheus.Gauge
}

// NewPromSink registers the metrics on the default Prometheus registerer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	trials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fleetsim_trials_total",
		Help: "Number of completed trials",
	}, []string{"winner"})
	revenue := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fleetsim_trial_revenue",
		Help:    "Total revenue per trial and strategy",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	}, []string{"strategy"})
	winRate := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleetsim_win_rate",
		Help: "Fraction of trials the greedy strategy won in the last run",
	})
	uplift := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "fleetsim_uplift_pct",
		Help: "Mean revenue uplift of greedy over random in the last run",
	})

	if err := reg.Register(trials); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			trials = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(revenue); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			revenue = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(winRate); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			winRate = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(uplift); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			uplift = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{trials: trials, revenue: revenue, winRate: winRate, uplift: uplift}, nil
}

// RecordTrial counts the trial and observes both strategies' totals.
func (s *PromSink) RecordTrial(r coremetrics.TrialResult) error {
	winner := "random"
	if r.Diff() > 0 {
		winner = "greedy"
	}
	s.trials.WithLabelValues(winner).Inc()
	s.revenue.WithLabelValues("greedy").Observe(r.GreedyTotal)
	s.revenue.WithLabelValues("random").Observe(r.RandomTotal)
	return nil
}

// RecordSummary sets the run-level gauges.
func (s *PromSink) RecordSummary(sum coremetrics.ExperimentSummary) error {
	s.winRate.Set(sum.WinRate)
	s.uplift.Set(sum.UpliftPct)
	return nil
}
