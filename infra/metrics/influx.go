package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/lfpfade/core/metrics"
	"github.com/kilianp07/lfpfade/infra/logger"
)

// InfluxConfig holds the connection settings of the InfluxDB sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes simulation runs to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
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

// RecordSimulation writes one simulation_run point.
func (s *InfluxSink) RecordSimulation(rec coremetrics.SimulationRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, simulationPoint(rec))
}

func simulationPoint(rec coremetrics.SimulationRecord) *write.Point {
	outcome := rec.Outcome
	if outcome == "" {
		outcome = coremetrics.OutcomeOK
	}
	p := write.NewPointWithMeasurement("simulation_run").
		AddTag("outcome", string(outcome)).
		AddTag("source", rec.Source).
		AddTag("run_id", rec.ID).
		AddField("duration_ms", round3(rec.Duration.Seconds()*1000))
	if outcome == coremetrics.OutcomeOK {
		p = p.AddTag("degrading", strconv.FormatBool(rec.Summary.Degrading)).
			AddField("capacity_kwh", round3(rec.Config.CapacityKWh)).
			AddField("dod", round3(rec.Config.DoD)).
			AddField("eol", round3(rec.Config.EoL)).
			AddField("cycles", rec.Config.TotalCycles).
			AddField("start_capacity_kwh", round3(rec.Summary.StartCapacityKWh)).
			AddField("eol_capacity_kwh", round3(rec.Summary.EndOfLifeCapacityKWh)).
			AddField("throughput_kwh", round3(rec.Summary.LifetimeThroughputKWh))
	}
	return p.SetTime(rec.Time)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
