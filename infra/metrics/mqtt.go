package metrics

import (
	"time"

	"github.com/kilianp07/lfpfade/core/degradation"
	coremetrics "github.com/kilianp07/lfpfade/core/metrics"
	"github.com/kilianp07/lfpfade/infra/mqtt"
)

// SimulationTopic is the topic suffix of published summaries.
const SimulationTopic = "simulation"

type publisher interface {
	PublishJSON(suffix string, v any) error
	Close() error
}

// MQTTSink publishes a JSON summary of every successful simulation.
type MQTTSink struct {
	pub publisher
}

// SimulationMessage is the payload published on <prefix>/simulation.
type SimulationMessage struct {
	ID       string                       `json:"id"`
	Source   string                       `json:"source"`
	Config   degradation.SimulationConfig `json:"config"`
	Summary  degradation.Summary          `json:"summary"`
	Warnings []string                     `json:"warnings,omitempty"`
	Time     time.Time                    `json:"time"`
}

// NewMQTTSink connects a publisher to the configured broker.
func NewMQTTSink(cfg mqtt.Config) (*MQTTSink, error) {
	pub, err := mqtt.NewPublisher(cfg)
	if err != nil {
		return nil, err
	}
	return &MQTTSink{pub: pub}, nil
}

// RecordSimulation publishes successful runs; rejected runs are skipped.
func (s *MQTTSink) RecordSimulation(rec coremetrics.SimulationRecord) error {
	if rec.Outcome != "" && rec.Outcome != coremetrics.OutcomeOK {
		return nil
	}
	return s.pub.PublishJSON(SimulationTopic, SimulationMessage{
		ID:       rec.ID,
		Source:   rec.Source,
		Config:   rec.Config,
		Summary:  rec.Summary,
		Warnings: rec.Warnings,
		Time:     rec.Time.UTC(),
	})
}

// Close disconnects from the broker.
func (s *MQTTSink) Close() error { return s.pub.Close() }
