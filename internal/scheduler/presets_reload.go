package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/sources/presets"
	"github.com/nadalpiantini/tabgrouper/internal/store"
)

// PresetReloader handles periodic reloading of the presets file
type PresetReloader struct {
	loader        *presets.Loader
	mapper        *presets.Mapper
	store         *store.Store
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewPresetReloader creates a new preset file reloader
func NewPresetReloader(
	presetFile string,
	s *store.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *PresetReloader {
	return &PresetReloader{
		loader:        presets.NewLoader(presetFile),
		mapper:        presets.NewMapper(),
		store:         s,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (pr *PresetReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := pr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	// Start periodic reload
	ticker := time.NewTicker(pr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := pr.Reload(ctx); err != nil {
					pr.logger.Error("failed to reload presets",
						logger.Error(err))
				}
			case <-pr.manualTrigger:
				pr.logger.Info("manual reload triggered")
				if err := pr.Reload(ctx); err != nil {
					pr.logger.Error("failed to reload presets",
						logger.Error(err))
				}
			case <-pr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (pr *PresetReloader) Stop() {
	close(pr.stopCh)
}

// Reload loads the presets file and merges it into the stored grouping
// configuration. File presets replace same-named stored presets; presets
// that only exist in the store are kept, so user-defined ones survive a
// file that no longer mentions them.
func (pr *PresetReloader) Reload(ctx context.Context) error {
	pr.logger.Info("reloading presets from file")

	file, err := pr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}

	loaded, err := pr.mapper.MapPresets(file)
	if err != nil {
		return fmt.Errorf("failed to map presets: %w", err)
	}

	cfg, err := pr.store.GroupingConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Presets == nil {
		cfg.Presets = make(map[string][]domain.Rule, len(loaded))
	}
	for name, rules := range loaded {
		cfg.Presets[name] = rules
	}

	if err := pr.store.SetGroupingConfig(ctx, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	pr.logger.Info("presets reloaded",
		logger.Int("presets", len(loaded)))
	return nil
}
