package session

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultPruneSchedule is the cron schedule for dropping expired in-memory
// sessions.
const DefaultPruneSchedule = "@every 10m"

// Pruner periodically removes expired sessions from a MemoryStore.
type Pruner struct {
	cron   *cron.Cron
	store  *MemoryStore
	logger *zap.Logger
}

// NewPruner registers the prune task on schedule, a standard cron
// expression or descriptor such as "@every 10m".
func NewPruner(store *MemoryStore, schedule string, logger *zap.Logger) (*Pruner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == "" {
		schedule = DefaultPruneSchedule
	}

	p := &Pruner{
		cron:   cron.New(),
		store:  store,
		logger: logger,
	}
	if _, err := p.cron.AddFunc(schedule, p.Run); err != nil {
		return nil, fmt.Errorf("register session prune task: %w", err)
	}
	return p, nil
}

// Run prunes once.
func (p *Pruner) Run() {
	removed := p.store.Prune()
	p.logger.Debug("expired sessions pruned",
		zap.String("op", "session.Prune"),
		zap.Int("removed", removed),
		zap.Int("remaining", p.store.Len()),
	)
}

// Start starts the scheduler in its own goroutine.
func (p *Pruner) Start() {
	p.cron.Start()
}

// Stop stops the scheduler and waits for a running prune to finish.
func (p *Pruner) Stop() {
	<-p.cron.Stop().Done()
}
