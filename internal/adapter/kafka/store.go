package kafka

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
)

// Store holds seismic events that occurred within a sliding window, keyed by
// event id so redelivered messages replace rather than duplicate.
type Store struct {
	window  time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu     sync.RWMutex
	events map[string]domain.SeismicEvent
}

// NewStore creates an empty store.
func NewStore(window time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		window:  window,
		clock:   clock,
		metrics: metrics,
		events:  make(map[string]domain.SeismicEvent),
	}
}

// Add records ev and drops anything that has aged out of the window. It
// reports false when ev itself is already too old to keep.
func (s *Store) Add(ev domain.SeismicEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-s.window)
	s.pruneLocked(cutoff)
	if !ev.OccurredAt.After(cutoff) {
		return false
	}
	s.events[ev.ID] = ev
	s.recordSize()
	return true
}

// Prune removes aged-out events and returns how many were dropped.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pruneLocked(s.clock.Now().Add(-s.window))
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// RecentEvents returns in-window events whose epicenter lies within radiusKm
// of c, newest first.
func (s *Store) RecentEvents(_ context.Context, c domain.Coordinate, radiusKm float64) ([]domain.SeismicEvent, error) {
	area := s2.CapFromCenterAngle(
		s2.PointFromLatLng(c.LatLng()),
		s1.Angle(radiusKm*1000/domain.EarthRadiusMeters),
	)
	cutoff := s.clock.Now().Add(-s.window)

	s.mu.RLock()
	out := make([]domain.SeismicEvent, 0, len(s.events))
	for _, ev := range s.events {
		if !ev.OccurredAt.After(cutoff) {
			continue
		}
		if !area.ContainsPoint(s2.PointFromLatLng(ev.Epicenter.LatLng())) {
			continue
		}
		out = append(out, ev)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b domain.SeismicEvent) int {
		if n := b.OccurredAt.Compare(a.OccurredAt); n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *Store) pruneLocked(cutoff time.Time) int {
	var dropped int
	for id, ev := range s.events {
		if !ev.OccurredAt.After(cutoff) {
			delete(s.events, id)
			dropped++
		}
	}
	if dropped > 0 {
		s.recordSize()
	}
	return dropped
}

func (s *Store) recordSize() {
	if s.metrics != nil {
		s.metrics.SeismicStored.Set(float64(len(s.events)))
	}
}
