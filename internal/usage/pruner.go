package usage

import (
	"fmt"
	"time"

	"codeberg.org/pixelgate/server/internal/logger"
	"github.com/robfig/cron/v3"
)

// runs shortly after UTC midnight
const pruneSchedule = "5 0 * * *"

type pruneable interface {
	Prune(before string) int
}

// Pruner drops stale daily buckets from an in-process counter on a schedule
type Pruner struct {
	cron  *cron.Cron
	store pruneable
	now   func() time.Time
}

func NewPruner(store pruneable) *Pruner {
	return &Pruner{
		cron:  cron.New(cron.WithLocation(time.UTC)),
		store: store,
		now:   time.Now,
	}
}

// registers the prune job and starts the scheduler
func (p *Pruner) Start() error {
	if _, err := p.cron.AddFunc(pruneSchedule, func() { p.RunOnce() }); err != nil {
		return fmt.Errorf("failed to schedule usage pruning: %w", err)
	}

	p.cron.Start()
	logger.Info("usage pruner started", "schedule", pruneSchedule)

	return nil
}

// removes every bucket older than today
func (p *Pruner) RunOnce() int {
	today := Day(p.now())
	removed := p.store.Prune(today)

	logger.Debug("pruned usage buckets", "before", today, "removed", removed)
	return removed
}

// stops the scheduler and waits for a running job to finish
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
}
