package querycache

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// StartSweeper schedules periodic removal of expired entries. schedule uses
// cron syntax including descriptors such as "@every 1m". The caller stops
// the returned scheduler on shutdown.
func StartSweeper(c *Cache, schedule string, logger *slog.Logger) (*cron.Cron, error) {
	scheduler := cron.New()
	_, err := scheduler.AddFunc(schedule, func() {
		if n := c.Sweep(); n > 0 {
			logger.Debug("swept expired cache entries", "removed", n, "remaining", c.Len())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule cache sweep %q: %w", schedule, err)
	}
	scheduler.Start()
	return scheduler, nil
}
