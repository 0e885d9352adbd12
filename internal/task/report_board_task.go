package task

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"zitheke_dev_v1/pkg/logger"
)

// BoardReloader re-reads the open moderation board from the database.
type BoardReloader interface {
	Reload(ctx context.Context) error
}

// ReportBoardTask keeps the in-memory moderation board in step with changes
// made by other instances.
type ReportBoardTask struct {
	Reloader BoardReloader
	Cron     *cron.Cron

	spec string
	log  *zap.Logger
}

func NewReportBoardTask(reloader BoardReloader, spec string, log *zap.Logger) *ReportBoardTask {
	if spec == "" {
		spec = "30 */10 * * * *"
	}
	return &ReportBoardTask{
		Reloader: reloader,
		Cron:     cron.New(cron.WithSeconds()),
		spec:     spec,
		log:      logger.OrNop(log).Named("ReportBoardTask"),
	}
}

// Start loads the board once and then on every tick.
func (t *ReportBoardTask) Start() error {
	if _, err := t.Cron.AddFunc(t.spec, t.runOnce); err != nil {
		return fmt.Errorf("schedule report board reload %q: %w", t.spec, err)
	}

	go t.runOnce()

	t.Cron.Start()
	t.log.Info("report board reload started", zap.String("spec", t.spec))
	return nil
}

// Stop waits for a running reload to finish.
func (t *ReportBoardTask) Stop() {
	<-t.Cron.Stop().Done()
}

func (t *ReportBoardTask) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := t.Reloader.Reload(ctx); err != nil {
		t.log.Warn("report board reload failed", zap.Error(err))
	}
}
