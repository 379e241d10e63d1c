// Package kafka consumes and produces seismic events on a Kafka topic. The
// consumer side keeps a sliding window of recent quakes in memory and serves
// them as a domain.SeismicProvider.
package kafka

import (
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/hazard-risk-service/internal/config"
)

// NewReader creates a consumer-group reader for the configured seismic topic.
// Offsets are committed explicitly by the Feed after each event is stored.
func NewReader(cfg *config.Config, logger *slog.Logger) *kafkago.Reader {
	logger.Info("creating seismic reader",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaSeismicTopic,
		"group_id", cfg.KafkaGroupID,
	)
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaSeismicTopic,
		GroupID:     cfg.KafkaGroupID,
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    1 << 20,
	})
}
