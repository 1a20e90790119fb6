package main

import (
	"net/http"

	"sjsage522/wishlistwatcher/config"
	"sjsage522/wishlistwatcher/helpers"
	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/services/cache"
	"sjsage522/wishlistwatcher/services/notifier"
	"sjsage522/wishlistwatcher/services/store"
)

// Services holds all the initialized services
type Services struct {
	Cache    cache.CacheService
	Client   *http.Client
	Store    store.Store
	Notifier notifier.Notifier
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Notifier != nil {
		s.Notifier.Close()
	}
	if s.Store != nil {
		s.Store.Close()
	}
}

// initializeServices initializes all required services
func initializeServices(cfg *config.Config) (*Services, error) {
	services := &Services{}

	if cfg.MemcacheAddr != "" {
		mc := cache.NewMemcacheService(cfg.MemcacheAddr, "wishlist:")
		if err := mc.Ping(); err != nil {
			logger.Warn("Memcache at %s is not reachable, rate-limit blocks may be lost: %v", cfg.MemcacheAddr, err)
		} else {
			logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
		}
		services.Cache = mc
	} else {
		services.Cache = cache.NewMemoryCache()
	}

	client, err := helpers.NewHTTPClient(cfg.FetchTimeout, cfg.ProxyURL)
	if err != nil {
		return nil, err
	}
	services.Client = client

	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	services.Store = st
	logger.Info("Using %s snapshot store", cfg.StateBackend)

	sinks := notifier.Multi{notifier.NewLogNotifier()}
	if cfg.TelegramEnabled() {
		sinks = append(sinks, notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID))
		logger.Info("Telegram notifications enabled for chat %s", cfg.TelegramChatID)
	}
	if cfg.RedisStream != "" {
		sinks = append(sinks, notifier.NewRedisStreamNotifier(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLength))
		logger.Info("Publishing events to Redis stream %s at %s", cfg.RedisStream, cfg.RedisAddr)
	}
	if len(sinks) == 1 {
		logger.Warn("No notifier configured, changes will only be logged")
	}
	services.Notifier = sinks

	return services, nil
}
