// Package metrics defines the sink interfaces used to record experiment
// observations. Concrete backends (Prometheus, InfluxDB) live in
// infra/metrics and register themselves with the sink factory.
package metrics
