package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/reservation-calendar/internal/poller"
)

func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// RunStore keeps the summary of the most recent fetch cycle.
type RunStore struct {
	Redis *redis.Client
}

func (s *RunStore) SaveRun(ctx context.Context, run poller.Run) error {
	const op = "redisx.RunStore.SaveRun"

	b, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Redis.Set(ctx, KeyLastRun, b, TTLLastRun).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// LastRun reports false when no cycle has been recorded yet.
func (s *RunStore) LastRun(ctx context.Context) (poller.Run, bool, error) {
	const op = "redisx.RunStore.LastRun"

	b, err := s.Redis.Get(ctx, KeyLastRun).Bytes()
	if errors.Is(err, redis.Nil) {
		return poller.Run{}, false, nil
	}
	if err != nil {
		return poller.Run{}, false, fmt.Errorf("%s: %w", op, err)
	}
	var run poller.Run
	if err := json.Unmarshal(b, &run); err != nil {
		return poller.Run{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return run, true, nil
}
