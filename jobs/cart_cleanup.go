package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sudaisamin20/Food-Delivery-Website-Backend/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CartPurger deletes carts that have not been touched within ttl.
type CartPurger interface {
	PurgeStale(ttl time.Duration) (int64, error)
}

// RunCartCleanup performs one purge and logs the outcome.
func RunCartCleanup(p CartPurger, ttl time.Duration, log *logger.Logger) (int64, error) {
	n, err := p.PurgeStale(ttl)
	if err != nil {
		log.Error("cart_cleanup", "", "stale cart purge failed", err)
		return 0, err
	}
	log.Info("cart_cleanup", "", "stale carts purged",
		slog.Int64("purged", n), slog.String("ttl", ttl.String()))
	return n, nil
}

// StartCartCleanup schedules RunCartCleanup on a standard five-field cron expression.
// The caller stops the returned scheduler on shutdown.
func StartCartCleanup(schedule string, ttl time.Duration, p CartPurger, log *logger.Logger) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { _, _ = RunCartCleanup(p, ttl, log) }); err != nil {
		return nil, fmt.Errorf("schedule cart cleanup %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
