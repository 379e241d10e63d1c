package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	kafkaadapter "github.com/couchcryptid/hazard-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

var quakeCmd = &cobra.Command{
	Use:   "quake",
	Short: "Seismic feed utilities",
}

var quakePublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish an earthquake to the seismic feed topic",
	Long:  "Writes one event to KAFKA_SEISMIC_TOPIC, for replaying USGS records or exercising a service running with SEISMIC_SOURCE=kafka.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ev, err := quakeFromFlags(cmd)
		if err != nil {
			return err
		}

		w := kafkaadapter.NewWriter(cfg, logger)
		defer w.Close() //nolint:errcheck

		if err := w.Publish(cmd.Context(), ev); err != nil {
			return fmt.Errorf("publish %s: %w", ev.ID, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "published %s M%.1f to %s\n", ev.ID, ev.Magnitude, cfg.KafkaSeismicTopic)
		return nil
	},
}

func init() {
	f := quakePublishCmd.Flags()
	f.String("id", "", "event id (default: random UUID)")
	f.Float64("mag", 0, "magnitude")
	f.Float64("lat", 0, "epicenter latitude")
	f.Float64("lon", 0, "epicenter longitude")
	f.String("place", "", "human-readable location")
	f.String("time", "", "RFC 3339 time the quake occurred (default: now)")
	_ = quakePublishCmd.MarkFlagRequired("mag")
	_ = quakePublishCmd.MarkFlagRequired("lat")
	_ = quakePublishCmd.MarkFlagRequired("lon")

	quakeCmd.AddCommand(quakePublishCmd)
	rootCmd.AddCommand(quakeCmd)
}

func quakeFromFlags(cmd *cobra.Command) (domain.SeismicEvent, error) {
	f := cmd.Flags()
	id, _ := f.GetString("id")
	mag, _ := f.GetFloat64("mag")
	lat, _ := f.GetFloat64("lat")
	lon, _ := f.GetFloat64("lon")
	place, _ := f.GetString("place")
	at, _ := f.GetString("time")

	ev := domain.SeismicEvent{
		ID:         id,
		Magnitude:  mag,
		Epicenter:  domain.Coordinate{Lat: lat, Lon: lon},
		OccurredAt: time.Now().UTC(),
		Place:      place,
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return domain.SeismicEvent{}, fmt.Errorf("invalid --time: %w", err)
		}
		ev.OccurredAt = t.UTC()
	}
	if !ev.Epicenter.Valid() {
		return domain.SeismicEvent{}, fmt.Errorf("%w: epicenter (%v, %v) out of range", domain.ErrInvalidInput, lat, lon)
	}
	return ev, nil
}
