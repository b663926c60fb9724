package poller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ariefcatur/reservation-calendar/internal/logx"
)

// Schedule registers a periodic fetch cycle on a UTC cron. A tick is skipped
// while the previous cycle is still running. The caller starts and stops the
// returned cron.
func Schedule(spec string, svc *Service, timeout time.Duration, log *slog.Logger) (*cron.Cron, error) {
	const op = "poller.Schedule"

	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := svc.Run(ctx); err != nil {
			log.Error("scheduled fetch failed", logx.Err(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %q: %w", op, spec, err)
	}
	return c, nil
}
