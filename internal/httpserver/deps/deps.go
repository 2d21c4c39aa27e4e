package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nadalpiantini/tabgrouper/internal/bridge"
	"github.com/nadalpiantini/tabgrouper/internal/engine"
	"github.com/nadalpiantini/tabgrouper/internal/host"
	"github.com/nadalpiantini/tabgrouper/internal/layout"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
	"github.com/nadalpiantini/tabgrouper/internal/metrics"
	"github.com/nadalpiantini/tabgrouper/internal/store"
	"github.com/nadalpiantini/tabgrouper/internal/workspace"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Host       host.Adapter       // Live window/tab/group surface
	Store      *store.Store       // Durable collections
	Engine     *engine.Engine     // Grouping, merge, split, undo
	Workspaces *workspace.Manager // Capture, restore, import/export
	Layouts    *layout.Manager    // Window positioning
	Bridge     *bridge.Bridge     // Optional profile service, may be nil
	Metrics    *metrics.Metrics   // Prometheus registry

	RedisClient   *redis.Client // Redis client connection
	ReloadTrigger chan struct{} // Channel to trigger manual preset reload (nil if no preset file)
	AutosaveNow   chan struct{} // Channel to trigger immediate autosave
}
