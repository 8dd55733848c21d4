package session

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"feedback-intel-go/internal/logger"
)

// StartJanitor schedules MemoryStore.Sweep on spec (standard cron syntax or
// "@every <duration>"). Stop the returned cron to end it.
func StartJanitor(store *MemoryStore, spec string, log *logger.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		removed := store.Sweep(time.Now())
		if removed > 0 {
			log.WithField("removed", removed).WithField("remaining", store.Len()).Info("swept idle sessions")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session sweep: %w", err)
	}
	c.Start()
	return c, nil
}
