package main

import (
	"strings"
	"sync"
	"time"

	"github.com/podlanding/podcast-discovery/internal/cache"
	"github.com/podlanding/podcast-discovery/internal/client"
	"github.com/podlanding/podcast-discovery/internal/config"
	"github.com/podlanding/podcast-discovery/internal/store"
)

// commandContext builds the shared catalog store on first use.
type commandContext struct {
	catalogURL *string
	noCache    *bool
	now        func() time.Time

	storeOnce sync.Once
	store     *store.Store
	closers   []func() error
}

func newCommandContext(catalogURL *string, noCache *bool) *commandContext {
	return &commandContext{
		catalogURL: catalogURL,
		noCache:    noCache,
		now:        time.Now,
	}
}

// configValue returns a copy of the loaded configuration with flag overrides applied.
func (c *commandContext) configValue() *config.Config {
	cfg := config.Config{}
	if loaded := config.GetConfig(); loaded != nil {
		cfg = *loaded
	}
	if c.catalogURL != nil && strings.TrimSpace(*c.catalogURL) != "" {
		cfg.CatalogURL = strings.TrimSpace(*c.catalogURL)
	}
	return &cfg
}

func (c *commandContext) ensureStore() *store.Store {
	c.storeOnce.Do(func() {
		cfg := c.configValue()
		logger := config.GetLogger()

		var opts []client.Option
		if c.noCache == nil || !*c.noCache {
			respCache, err := cache.FromConfig(cfg)
			if err != nil {
				logger.Warn().Err(err).Str("provider", cfg.Cache.Provider).Msg("Response cache unavailable, continuing without it")
			} else {
				opts = append(opts, client.WithCache(respCache))
			}
		}

		cl := client.NewClient(cfg, opts...)
		c.closers = append(c.closers, cl.Close)
		c.store = store.New(cl, store.WithClock(c.now))
	})
	return c.store
}

func (c *commandContext) close() {
	logger := config.GetLogger()
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			logger.Warn().Err(err).Msg("Failed to release resources")
		}
	}
	c.closers = nil
}
