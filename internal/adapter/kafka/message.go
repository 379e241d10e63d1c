package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// Message header keys.
const (
	headerMagnitude  = "magnitude"
	headerOccurredAt = "occurred_at"
)

var errMalformedEvent = errors.New("malformed seismic event")

// quakeMessage is the wire format of a seismic feed record.
type quakeMessage struct {
	ID         string    `json:"id"`
	Magnitude  *float64  `json:"magnitude"`
	Lat        *float64  `json:"lat"`
	Lon        *float64  `json:"lon"`
	OccurredAt time.Time `json:"occurred_at"`
	Place      string    `json:"place,omitempty"`
}

// decodeMessage maps a feed record to a SeismicEvent. The message key stands
// in for a missing id and the broker timestamp for a missing occurred_at.
func decodeMessage(msg kafkago.Message) (domain.SeismicEvent, error) {
	var q quakeMessage
	if err := json.Unmarshal(msg.Value, &q); err != nil {
		return domain.SeismicEvent{}, fmt.Errorf("decode seismic event: %w", err)
	}
	if q.Magnitude == nil || q.Lat == nil || q.Lon == nil {
		return domain.SeismicEvent{}, fmt.Errorf("%w: magnitude, lat and lon are required", errMalformedEvent)
	}
	epicenter := domain.Coordinate{Lat: *q.Lat, Lon: *q.Lon}
	if math.IsNaN(*q.Magnitude) || !epicenter.Valid() {
		return domain.SeismicEvent{}, fmt.Errorf("%w: epicenter (%v, %v)", errMalformedEvent, epicenter.Lat, epicenter.Lon)
	}

	ev := domain.SeismicEvent{
		ID:         q.ID,
		Magnitude:  *q.Magnitude,
		Epicenter:  epicenter,
		OccurredAt: q.OccurredAt.UTC(),
		Place:      q.Place,
	}
	if ev.ID == "" {
		ev.ID = string(msg.Key)
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = msg.Time.UTC()
	}
	if ev.ID == "" {
		return domain.SeismicEvent{}, fmt.Errorf("%w: missing id", errMalformedEvent)
	}
	return ev, nil
}

// encodeMessage marshals a SeismicEvent into a feed record.
func encodeMessage(ev domain.SeismicEvent) (kafkago.Message, error) {
	lat, lon, mag := ev.Epicenter.Lat, ev.Epicenter.Lon, ev.Magnitude
	data, err := json.Marshal(quakeMessage{
		ID:         ev.ID,
		Magnitude:  &mag,
		Lat:        &lat,
		Lon:        &lon,
		OccurredAt: ev.OccurredAt.UTC(),
		Place:      ev.Place,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize seismic event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(ev.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: headerMagnitude, Value: []byte(fmt.Sprintf("%.1f", ev.Magnitude))},
			{Key: headerOccurredAt, Value: []byte(ev.OccurredAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
