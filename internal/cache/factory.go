package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/podlanding/podcast-discovery/internal/config"
)

const (
	defaultSize = 16
	defaultTTL  = 24 * time.Hour

	// CatalogGroup is the metrics label of the catalog response cache.
	CatalogGroup = "catalog"
)

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries. Ignored by Redis, which relies on its own maxmemory policy.
	Size int

	// TTL is the time-to-live for cache entries.
	TTL time.Duration

	// OnEvict is called when an entry is evicted. Not all providers support this.
	OnEvict EvictCallback

	// Logger receives error reports from cache operations. If nil, errors are silently ignored.
	Logger Logger

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// KeyPrefix namespaces Redis keys. Defaults to "podcast-discovery:".
	KeyPrefix string

	// Group labels the Prometheus metrics of this instance. When non-empty
	// the cache is wrapped with hit/miss/eviction instrumentation.
	Group string
}

// Provider is a constructor function that creates a Cache from config.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register registers a cache provider under the given name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a Cache using the named provider.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}

	if cfg.Group == "" {
		return p(cfg)
	}

	group := cfg.Group
	original := cfg.OnEvict
	cfg.OnEvict = func(key string, value []byte) {
		EvictionsTotal.WithLabelValues(group).Inc()
		if original != nil {
			original(key, value)
		}
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}

	return newInstrumentedCache(inner, group), nil
}

// FromConfig builds the catalog response cache described by the cache section of cfg.
func FromConfig(cfg *config.Config) (Cache, error) {
	logger := config.GetLogger()

	ttl := defaultTTL
	if cfg.Cache.TTL != "" {
		parsed, err := time.ParseDuration(cfg.Cache.TTL)
		if err != nil {
			logger.Warn().Err(err).Str("ttl", cfg.Cache.TTL).Msg("Invalid cache TTL, using default 24h")
		} else {
			ttl = parsed
		}
	}

	provider := cfg.Cache.Provider
	if provider == "" {
		provider = "memory"
	}

	c, err := New(provider, ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           ttl,
		Logger:        zerologAdapter{logger: logger.With().Str("component", "cache").Logger()},
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         CatalogGroup,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().Str("provider", provider).Dur("ttl", ttl).Msg("Catalog cache ready")
	return c, nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type zerologAdapter struct {
	logger zerolog.Logger
}

func (z zerologAdapter) Error(msg string, err error) {
	z.logger.Error().Err(err).Msg(msg)
}
