package task

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"zitheke_dev_v1/pkg/logger"
)

// IdleSessionPurger drops wizard sessions that have been idle for too long.
type IdleSessionPurger interface {
	PurgeIdle(ctx context.Context, ttl time.Duration) int
}

// SessionCleanupTask periodically purges abandoned wizard sessions and their previews.
type SessionCleanupTask struct {
	Purger IdleSessionPurger
	Cron   *cron.Cron

	spec    string
	idleTTL time.Duration
	log     *zap.Logger
}

// NewSessionCleanupTask purges sessions idle for longer than idleTTL on every
// tick of the cron spec (with seconds field).
func NewSessionCleanupTask(purger IdleSessionPurger, spec string, idleTTL time.Duration, log *zap.Logger) *SessionCleanupTask {
	if spec == "" {
		spec = "0 */5 * * * *"
	}
	if idleTTL <= 0 {
		idleTTL = 2 * time.Hour
	}
	return &SessionCleanupTask{
		Purger:  purger,
		Cron:    cron.New(cron.WithSeconds()),
		spec:    spec,
		idleTTL: idleTTL,
		log:     logger.OrNop(log).Named("SessionCleanupTask"),
	}
}

// Start schedules the purge.
func (t *SessionCleanupTask) Start() error {
	if _, err := t.Cron.AddFunc(t.spec, t.runOnce); err != nil {
		return fmt.Errorf("schedule session cleanup %q: %w", t.spec, err)
	}

	t.Cron.Start()
	t.log.Info("session cleanup started", zap.String("spec", t.spec), zap.Duration("idle_ttl", t.idleTTL))
	return nil
}

// Stop waits for a running purge to finish.
func (t *SessionCleanupTask) Stop() {
	<-t.Cron.Stop().Done()
}

func (t *SessionCleanupTask) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if n := t.Purger.PurgeIdle(ctx, t.idleTTL); n > 0 {
		t.log.Info("idle sessions purged", zap.Int("count", n))
	}
}
