package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8547"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	PresetFile       string        // path to presets.yaml (optional, empty = file presets disabled)
	ReloadInterval   time.Duration // interval to reload presets.yaml (default: 1h)
	AutosaveInterval time.Duration // interval for periodic session autosaves (default: 10m, 0 = disabled)

	// Simulated host work area, used until a real browser host is attached
	WorkAreaWidth  int
	WorkAreaHeight int

	// Profile bridge (optional local window-manager service)
	BridgeURL     string        // base URL (ex: http://localhost:8546/api)
	BridgeTimeout time.Duration // health-check timeout (default: 1s)

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("TABGROUPER_LISTEN_PORT", ":8547"),
		ShutdownTimeout: mustDuration("TABGROUPER_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("TABGROUPER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("TABGROUPER_PRETTY_LOG", true),

		// Sources and schedulers
		PresetFile:       getenv("TABGROUPER_PRESET_FILE", ""), // Optional, empty = file presets disabled
		ReloadInterval:   mustDuration("TABGROUPER_RELOAD_SOURCE_INTERVAL", time.Hour),
		AutosaveInterval: mustDuration("TABGROUPER_AUTOSAVE_INTERVAL", 10*time.Minute),

		// Simulated host
		WorkAreaWidth:  getenvInt("TABGROUPER_WORK_AREA_WIDTH", 1920),
		WorkAreaHeight: getenvInt("TABGROUPER_WORK_AREA_HEIGHT", 1080),

		// Profile bridge
		BridgeURL:     getenv("TABGROUPER_BRIDGE_URL", "http://localhost:8546/api"),
		BridgeTimeout: mustDuration("TABGROUPER_BRIDGE_TIMEOUT", time.Second),

		// Redis settings
		RedisAddr:             requireEnv("TABGROUPER_REDIS_ADDR"),
		RedisUser:             getenv("TABGROUPER_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("TABGROUPER_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("TABGROUPER_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("TABGROUPER_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: TABGROUPER_REDIS_PASSWORD is required when TABGROUPER_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
