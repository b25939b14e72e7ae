package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/config"
	"github.com/podlanding/podcast-discovery/internal/metrics"
	"github.com/podlanding/podcast-discovery/internal/models"
)

// maxCatalogBytes bounds the body read from the catalog endpoint.
const maxCatalogBytes = 32 << 20

// cachedCatalog is the cache representation of the last successful response.
type cachedCatalog struct {
	ETag        string `json:"etag"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// FetchShows retrieves and validates the show list.
func (c *client) FetchShows(ctx context.Context) ([]models.RawShow, error) {
	requestID := uuid.NewString()
	logger := config.GetLogger().With().Str("requestID", requestID).Str("url", c.catalogURL).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.catalogURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	cached, haveCached := c.lookupCached()
	if haveCached && cached.ETag != "" {
		req.Header.Set("If-None-Match", cached.ETag)
	}

	logger.Debug().Bool("conditional", req.Header.Get("If-None-Match") != "").Msg("Fetching show list")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.CatalogFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && haveCached {
		logger.Debug().Msg("Catalog not modified, reusing cached body")
		metrics.CatalogFetchesTotal.WithLabelValues("not_modified").Inc()
		return decodeShows(cached.Body, cached.ContentType)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperrors.ErrUnexpectedStatus{StatusCode: resp.StatusCode, URL: c.catalogURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	shows, err := decodeShows(body, contentType)
	if err != nil {
		return nil, err
	}

	if etag := resp.Header.Get("ETag"); etag != "" {
		c.storeCached(cachedCatalog{ETag: etag, ContentType: contentType, Body: body})
	}

	logger.Info().Int("count", len(shows)).Int("bytes", len(body)).Msg("Fetched show list")
	return shows, nil
}

func (c *client) lookupCached() (cachedCatalog, bool) {
	var entry cachedCatalog
	if c.cache == nil {
		return entry, false
	}
	raw, ok := c.cache.Get(c.catalogURL)
	if !ok {
		return entry, false
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return entry, false
	}
	return entry, true
}

func (c *client) storeCached(entry cachedCatalog) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	c.cache.Set(c.catalogURL, raw)
}
