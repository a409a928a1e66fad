package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/fleetsim/core/metrics"
	"github.com/kilianp07/fleetsim/infra/logger"
)

// InfluxSink writes trial and summary observations to an InfluxDB instance
// using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a NopSink
// if the health check fails, so a dead backend never blocks a run.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordTrial writes one trial point.
func (s *InfluxSink) RecordTrial(r coremetrics.TrialResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("trial_result").
		AddTag("run_id", r.RunID).
		AddField("trial", r.Trial).
		AddField("greedy_total", r.GreedyTotal).
		AddField("random_total", r.RandomTotal).
		AddField("diff", r.Diff()).
		SetTime(r.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSummary writes the run summary point.
func (s *InfluxSink) RecordSummary(sum coremetrics.ExperimentSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("experiment_summary").
		AddTag("run_id", sum.RunID).
		AddField("trials", sum.Trials).
		AddField("greedy_mean", sum.GreedyMean).
		AddField("random_mean", sum.RandomMean).
		AddField("greedy_std", sum.GreedyStd).
		AddField("random_std", sum.RandomStd).
		AddField("win_rate", sum.WinRate).
		AddField("uplift_pct", sum.UpliftPct).
		SetTime(sum.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}
