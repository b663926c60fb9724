package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/ariefcatur/reservation-calendar/internal/logx"
	"github.com/ariefcatur/reservation-calendar/internal/metrics"
	"github.com/ariefcatur/reservation-calendar/internal/naver"
	"github.com/ariefcatur/reservation-calendar/internal/reservations"
)

type Fetcher interface {
	Fetch(ctx context.Context, opt naver.FetchOptions) (*naver.Response, error)
}

type Publisher interface {
	Publish(ctx context.Context, key, value []byte, headers ...kafkago.Header) error
}

type RunRecorder interface {
	SaveRun(ctx context.Context, run Run) error
}

// Run summarizes one fetch cycle.
type Run struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Fetched    int       `json:"fetched"`
	Stored     int       `json:"stored"`
	TotalCount int       `json:"total_count"`
	Error      string    `json:"error,omitempty"`
}

// Service fetches one page of bookings, maps them and upserts every row.
// Publisher and Runs are optional.
type Service struct {
	Fetcher     Fetcher
	Store       reservations.Store
	Publisher   Publisher
	Runs        RunRecorder
	Log         *slog.Logger
	PageSize    int
	ServiceName string
	Now         func() time.Time
}

func (s *Service) Run(ctx context.Context) (Run, error) {
	run := Run{StartedAt: s.now()}
	err := s.run(ctx, &run)
	run.FinishedAt = s.now()

	if err != nil {
		run.Error = err.Error()
		metrics.FetchCyclesTotal.WithLabelValues(metrics.ResultError).Inc()
	} else {
		metrics.FetchCyclesTotal.WithLabelValues(metrics.ResultOK).Inc()
	}
	if s.Runs != nil {
		if rerr := s.Runs.SaveRun(ctx, run); rerr != nil {
			s.logger().Warn("save run summary", logx.Err(rerr))
		}
	}
	return run, err
}

func (s *Service) run(ctx context.Context, run *Run) error {
	const op = "poller.Service.Run"

	started := time.Now()
	res, err := s.Fetcher.Fetch(ctx, naver.FetchOptions{
		Statuses: naver.AllStatuses,
		Size:     s.PageSize,
	})
	metrics.UpstreamRequestDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	page := res.Data.Booking
	run.Fetched = len(page.Bookings)
	run.TotalCount = page.TotalCount

	for _, b := range page.Bookings {
		r := reservations.FromBooking(b)
		if err := s.Store.Upsert(ctx, r); err != nil {
			return fmt.Errorf("%s: reservation %d: %w", op, r.ID, err)
		}
		run.Stored++
		metrics.ReservationsUpsertedTotal.Inc()
		s.publish(ctx, r, b.StatusCode)
	}

	s.logger().Info("reservations synced",
		slog.Int("fetched", run.Fetched),
		slog.Int("stored", run.Stored),
		slog.Int("total_count", run.TotalCount),
	)
	return nil
}

func (s *Service) publish(ctx context.Context, r reservations.Reservation, status naver.StatusCode) {
	if s.Publisher == nil {
		return
	}
	value, err := reservations.NewSyncedEvent(r, string(status), s.ServiceName, s.now())
	if err != nil {
		s.logger().Warn("encode sync event", logx.Err(err), slog.Int64("reservation_id", r.ID))
		return
	}
	err = s.Publisher.Publish(ctx, reservations.PartitionKey(r.ID), value,
		kafkago.Header{Key: "x-event-type", Value: []byte(reservations.EventReservationSynced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	if err != nil {
		s.logger().Warn("publish sync event", logx.Err(err), slog.Int64("reservation_id", r.ID))
		return
	}
	metrics.SyncEventsPublishedTotal.Inc()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) logger() *slog.Logger {
	if s.Log == nil {
		return logx.Discard()
	}
	return s.Log
}
