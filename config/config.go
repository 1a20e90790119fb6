package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"sjsage522/wishlistwatcher/pkg/errors"
)

// Supported snapshot store backends
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration
type Config struct {
	// Wishlist pages polled every round, in order
	WishlistURLs []string
	PollInterval time.Duration

	// Fetch configuration
	UserAgent         string
	FetchTimeout      time.Duration
	FetchRatePerMin   int
	SettleDelay       time.Duration
	ChromeAddr        string
	ProxyURL          string
	MemcacheAddr      string
	RateLimitBlockFor time.Duration

	// Snapshot store configuration
	StateBackend  string
	StateFile     string
	SQLitePath    string
	RedisAddr     string
	RedisDB       int
	RedisStateKey string

	// Notification configuration
	RedisStream          string
	RedisStreamMaxLength int
	TelegramToken        string
	TelegramChatID       string
	NotifyTitleUpdates   bool

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		WishlistURLs:         splitList(getEnv("WISHLIST_URLS", "")),
		PollInterval:         getSeconds("POLL_INTERVAL_SECONDS", 300),
		UserAgent:            getEnv("USER_AGENT", "Mozilla/5.0 (compatible)"),
		FetchTimeout:         getSeconds("FETCH_TIMEOUT_SECONDS", 30),
		FetchRatePerMin:      getInt("FETCH_RATE_PER_MINUTE", 30),
		SettleDelay:          time.Duration(getInt("SETTLE_DELAY_MS", 1000)) * time.Millisecond,
		ChromeAddr:           getEnv("CHROME_ADDR", ""),
		ProxyURL:             getEnv("PROXY_URL", ""),
		MemcacheAddr:         getEnv("MEMCACHE_ADDR", ""),
		RateLimitBlockFor:    getSeconds("BLOCK_SECONDS", 600),
		StateBackend:         strings.ToLower(getEnv("STATE_BACKEND", BackendFile)),
		StateFile:            getEnv("STATE_FILE", "state.json"),
		SQLitePath:           getEnv("SQLITE_PATH", "state.db"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              getInt("REDIS_DB", 0),
		RedisStateKey:        getEnv("REDIS_STATE_KEY", "wishlist:state"),
		RedisStream:          getEnv("REDIS_STREAM", ""),
		RedisStreamMaxLength: getInt("REDIS_STREAM_MAX_LENGTH", 1000),
		TelegramToken:        getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID:       getEnv("TELEGRAM_CHAT_ID", ""),
		NotifyTitleUpdates:   getBool("NOTIFY_TITLE_UPDATES", false),
		Environment:          getEnv("WATCHER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration can drive a watch loop
func (c *Config) Validate() error {
	if len(c.WishlistURLs) == 0 {
		return errors.NewConfiguration("WISHLIST_URLS must list at least one URL", nil)
	}
	for _, raw := range c.WishlistURLs {
		u, err := url.Parse(raw)
		if err != nil {
			return errors.NewConfiguration("invalid wishlist URL "+raw, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.NewConfiguration("wishlist URL must be absolute http(s): "+raw, nil)
		}
	}
	if c.PollInterval <= 0 {
		return errors.NewConfiguration("POLL_INTERVAL_SECONDS must be positive", nil)
	}
	if c.FetchTimeout <= 0 {
		return errors.NewConfiguration("FETCH_TIMEOUT_SECONDS must be positive", nil)
	}

	switch c.StateBackend {
	case BackendFile:
		if c.StateFile == "" {
			return errors.NewConfiguration("STATE_FILE must be set for the file backend", nil)
		}
	case BackendRedis, BackendSQLite:
	default:
		return errors.NewConfiguration("unknown STATE_BACKEND "+c.StateBackend, nil)
	}

	return nil
}

// TelegramEnabled reports whether both Telegram credentials are present
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getSeconds(key string, defaultValue int) time.Duration {
	return time.Duration(getInt(key, defaultValue)) * time.Second
}

func getBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
