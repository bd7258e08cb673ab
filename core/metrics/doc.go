// Package metrics defines the sink interface used to observe simulation
// runs. Implementations such as the Prometheus, InfluxDB and MQTT sinks live
// in infra/metrics and register themselves by type name; NewMetricsSink
// builds the configured set and returns a MultiSink when several are listed.
package metrics
