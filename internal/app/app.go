package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nadalpiantini/tabgrouper/internal/bridge"
	"github.com/nadalpiantini/tabgrouper/internal/config"
	"github.com/nadalpiantini/tabgrouper/internal/domain"
	"github.com/nadalpiantini/tabgrouper/internal/engine"
	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/layout"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/metrics"
	"github.com/nadalpiantini/tabgrouper/internal/redis"
	"github.com/nadalpiantini/tabgrouper/internal/scheduler"
	"github.com/nadalpiantini/tabgrouper/internal/store"
	redisstore "github.com/nadalpiantini/tabgrouper/internal/store/redis"
	"github.com/nadalpiantini/tabgrouper/internal/version"
	"github.com/nadalpiantini/tabgrouper/internal/workspace"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	autosaver   *scheduler.Autosaver
	reloader    *scheduler.PresetReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Durable collections: synced namespace for workspaces and config,
	// local namespace for the autosave ring and the undo snapshot.
	st := store.New(redisstore.NewSynced(redisClient), redisstore.NewLocal(redisClient))

	// In-memory host adapter, seeded with one empty window so the current
	// window exists before any tabs are opened.
	memHost := host.NewMemoryHost(domain.Bounds{
		Width:  cfg.WorkAreaWidth,
		Height: cfg.WorkAreaHeight,
	})
	if _, err := memHost.CreateWindow(context.Background(), domain.Bounds{
		Width:  cfg.WorkAreaWidth,
		Height: cfg.WorkAreaHeight,
		State:  "normal",
	}); err != nil {
		loggerClient.Errorf("Failed to seed host window: %v", err)
		os.Exit(1)
	}

	workspaces := workspace.NewManager(memHost, st, loggerClient)
	eng := engine.New(memHost, st, workspaces, loggerClient)
	layouts := layout.NewManager(memHost, st, loggerClient)
	met := metrics.New()

	var profileBridge *bridge.Bridge
	if cfg.BridgeURL != "" {
		profileBridge = bridge.New(cfg.BridgeURL, cfg.BridgeTimeout, loggerClient)
	} else {
		loggerClient.Info("bridge URL not configured, profile bridge disabled")
	}

	// Autosave loop with a manual trigger channel
	autosaveNow := make(chan struct{}, 1)
	autosaver := scheduler.NewAutosaver(workspaces, loggerClient, cfg.AutosaveInterval, autosaveNow)

	// Preset file reloader (if a presets file is configured)
	var reloader *scheduler.PresetReloader
	var reloadTrigger chan struct{}
	if cfg.PresetFile != "" {
		loggerClient.Info("preset file configured, initializing preset reloader",
			logger.String("file", cfg.PresetFile))
		reloadTrigger = make(chan struct{}, 1)
		reloader = scheduler.NewPresetReloader(
			cfg.PresetFile,
			st,
			loggerClient,
			cfg.ReloadInterval,
			reloadTrigger,
		)
	} else {
		loggerClient.Info("preset file not configured, file presets disabled")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		Host:          memHost,
		Store:         st,
		Engine:        eng,
		Workspaces:    workspaces,
		Layouts:       layouts,
		Bridge:        profileBridge,
		Metrics:       met,
		RedisClient:   redisClient,
		ReloadTrigger: reloadTrigger,
		AutosaveNow:   autosaveNow,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		autosaver:   autosaver,
		reloader:    reloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting tabgrouper v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("tabgrouper %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start preset reloader (loads presets and starts periodic refresh)
	if a.reloader != nil {
		if err := a.reloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start preset reloader: %w", err)
		}
		a.logger.Info("preset reloader started",
			logger.Duration("interval", a.cfg.ReloadInterval))
	}

	// Start periodic autosave
	if a.cfg.AutosaveInterval > 0 {
		if err := a.autosaver.Start(ctx); err != nil {
			return fmt.Errorf("failed to start autosaver: %w", err)
		}
		a.logger.Info("autosaver started",
			logger.Duration("interval", a.cfg.AutosaveInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.reloader != nil {
		a.reloader.Stop()
	}
	if a.cfg.AutosaveInterval > 0 {
		a.autosaver.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("tabgrouper stopped cleanly")
	return nil
}
