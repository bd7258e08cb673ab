// Package infra groups the adapters that connect the simulator to concrete
// technologies: zerolog logging, Prometheus/InfluxDB/MQTT metrics sinks and
// Sentry error monitoring.
package infra
