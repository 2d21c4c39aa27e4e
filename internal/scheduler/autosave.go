// Package scheduler runs the background loops: periodic session autosave
// and preset file reloading.
package scheduler

import (
	"context"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/workspace"
)

// Autosaver periodically captures the session into the autosave ring. The
// enabled/disabled gate lives in the stored settings and is re-checked on
// every tick by the workspace manager.
type Autosaver struct {
	workspaces    *workspace.Manager
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewAutosaver creates a new periodic autosaver
func NewAutosaver(
	wm *workspace.Manager,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Autosaver {
	return &Autosaver{
		workspaces:    wm,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic autosave loop. Unlike the preset reloader it
// does not run once at startup; the first capture happens a full interval
// in, so a restart does not flood the ring.
func (a *Autosaver) Start(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				a.run(ctx)
			case <-a.manualTrigger:
				a.logger.Info("manual autosave triggered")
				a.run(ctx)
			case <-a.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the autosaver
func (a *Autosaver) Stop() {
	close(a.stopCh)
}

func (a *Autosaver) run(ctx context.Context) {
	if _, err := a.workspaces.Autosave(ctx); err != nil {
		a.logger.Error("periodic autosave failed", logger.Error(err))
	}
}
