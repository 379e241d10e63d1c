package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
)

// Fetcher is the subset of *kafkago.Reader the feed consumes from.
type Fetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Feed consumes the seismic topic into a Store and serves the stored window
// as a domain.SeismicProvider.
type Feed struct {
	fetcher Fetcher
	store   *Store
	logger  *slog.Logger
	metrics *observability.Metrics
	running atomic.Bool
}

// NewFeed creates a Feed reading from f into store.
func NewFeed(f Fetcher, store *Store, logger *slog.Logger, metrics *observability.Metrics) *Feed {
	return &Feed{
		fetcher: f,
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// RecentEvents implements domain.SeismicProvider from the stored window.
func (f *Feed) RecentEvents(ctx context.Context, c domain.Coordinate, radiusKm float64) ([]domain.SeismicEvent, error) {
	return f.store.RecentEvents(ctx, c, radiusKm)
}

// CheckReadiness returns nil while the consume loop is running.
func (f *Feed) CheckReadiness(_ context.Context) error {
	if !f.running.Load() {
		return errors.New("seismic feed is not running")
	}
	return nil
}

// Run consumes messages until the context is cancelled.
func (f *Feed) Run(ctx context.Context) error {
	f.logger.Info("seismic feed started")
	f.running.Store(true)
	f.metrics.FeedRunning.Set(1)
	defer func() {
		f.running.Store(false)
		f.metrics.FeedRunning.Set(0)
	}()

	backoff := initialBackoff
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("seismic feed stopping", "reason", ctx.Err())
			return nil
		default:
		}

		msg, err := f.fetcher.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			f.logger.Error("fetch seismic message failed", "error", err, "retry_in", backoff)
			if !retry.SleepWithContext(ctx, backoff) {
				return nil
			}
			backoff = retry.NextBackoff(backoff, maxBackoff)
			continue
		}
		backoff = initialBackoff

		f.handle(msg)
		if err := f.fetcher.CommitMessages(ctx, msg); err != nil {
			f.logger.Warn("commit offset failed", "error", err,
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		}
	}
}

// handle stores one message. Undecodable messages are logged and skipped so
// a poison pill cannot stall the partition.
func (f *Feed) handle(msg kafkago.Message) {
	f.metrics.SeismicConsumed.Inc()

	ev, err := decodeMessage(msg)
	if err != nil {
		f.metrics.SeismicDecodeErrors.Inc()
		f.logger.Warn("skipping seismic message", "error", err,
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return
	}
	if !f.store.Add(ev) {
		f.logger.Debug("seismic event outside window", "id", ev.ID, "occurred_at", ev.OccurredAt)
		return
	}
	f.logger.Debug("seismic event stored", "id", ev.ID, "magnitude", ev.Magnitude)
}
