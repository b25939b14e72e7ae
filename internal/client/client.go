package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/podlanding/podcast-discovery/internal/cache"
	"github.com/podlanding/podcast-discovery/internal/config"
	"github.com/podlanding/podcast-discovery/internal/models"
)

// Client retrieves the show list from the remote catalog.
type Client interface {
	// FetchShows performs a single GET against the catalog endpoint and returns
	// the validated records in response order.
	FetchShows(ctx context.Context) ([]models.RawShow, error)

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// Option customises a client built by NewClient.
type Option func(*client)

// WithCache enables conditional requests: the last body and its ETag are kept
// in c and reused when the catalog answers 304 Not Modified.
func WithCache(c cache.Cache) Option {
	return func(cl *client) {
		cl.cache = c
	}
}

// WithHTTPClient replaces the HTTP client, e.g. to inject a test transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *client) {
		cl.httpClient = hc
	}
}

// client implements the Client interface
type client struct {
	httpClient *http.Client
	catalogURL string
	userAgent  string
	cache      cache.Cache
}

// NewClient creates a new client instance with proxy configuration if provided
func NewClient(cfg *config.Config, opts ...Option) Client {
	logger := config.GetLogger()

	timeout := 30 * time.Second
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to keep its pooling and HTTP/2 settings.
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	catalogURL := cfg.CatalogURL
	if catalogURL == "" {
		catalogURL = config.DefaultCatalogURL
	}

	c := &client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newCompressionTransport(baseTransport),
		},
		catalogURL: catalogURL,
		userAgent:  userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the response cache, if any.
func (c *client) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}
