// Package store holds the current show catalog and the status of the last load.
package store

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/config"
	"github.com/podlanding/podcast-discovery/internal/metrics"
	"github.com/podlanding/podcast-discovery/internal/models"
)

// Fetcher retrieves raw catalog records. client.Client satisfies it.
type Fetcher interface {
	FetchShows(ctx context.Context) ([]models.RawShow, error)
}

// State is an immutable snapshot of the store. Callers must not modify Shows.
type State struct {
	Shows     []models.Show           `json:"shows"`
	IsLoading bool                    `json:"isLoading"`
	Err       *apperrors.FetchFailure `json:"error,omitempty"`
	LoadedAt  time.Time               `json:"loadedAt,omitempty"`
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the wall clock used to derive IsRecent at ingestion.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger overrides the store logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Store owns the show collection. Every update replaces the whole snapshot,
// so readers never observe a partially applied load.
type Store struct {
	fetcher Fetcher
	now     func() time.Time
	logger  zerolog.Logger

	state atomic.Pointer[State]

	mu      sync.Mutex // serialises writers and guards the fields below
	latest  uint64
	subs    map[int]chan State
	nextSub int
}

// New creates an empty store. Nothing is fetched until Load is called.
func New(fetcher Fetcher, opts ...Option) *Store {
	s := &Store{
		fetcher: fetcher,
		now:     time.Now,
		logger:  config.GetLogger().With().Str("component", "store").Logger(),
		subs:    make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state.Store(&State{Shows: []models.Show{}})
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	return *s.state.Load()
}

// Load fetches the catalog once and replaces the held shows on success. On
// failure the previous shows are kept and the error is recorded. When loads
// overlap, only the most recently started one may change the state; earlier
// completions are discarded.
func (s *Store) Load(ctx context.Context) error {
	token := s.begin()

	raw, err := s.fetcher.FetchShows(ctx)
	now := s.now()

	if err != nil {
		failure := apperrors.NewFetchFailure(err)
		if !s.finish(token, func(prev State) State {
			prev.IsLoading = false
			prev.Err = failure
			return prev
		}) {
			return failure
		}
		metrics.CatalogFetchesTotal.WithLabelValues("error").Inc()
		s.logger.Error().Err(err).Uint64("token", token).Msg("Error fetching podcasts")
		return failure
	}

	shows := make([]models.Show, len(raw))
	for i, r := range raw {
		shows[i] = models.NewShow(r, now)
	}

	if !s.finish(token, func(State) State {
		return State{Shows: shows, LoadedAt: now}
	}) {
		return nil
	}
	metrics.CatalogFetchesTotal.WithLabelValues("success").Inc()
	metrics.CatalogShows.Set(float64(len(shows)))
	s.logger.Info().Int("count", len(shows)).Uint64("token", token).Msg("Podcasts loaded")
	return nil
}

// Refresh is Load, exposed under the name presentation layers use for the retry action.
func (s *Store) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// ShowByID looks a show up in the current snapshot.
func (s *Store) ShowByID(id string) (models.Show, bool) {
	for _, show := range s.Snapshot().Shows {
		if show.ID == id {
			return show, true
		}
	}
	return models.Show{}, false
}

// Subscribe returns a channel that receives the state after every change and
// a function to stop the subscription. Slow readers only see the latest state.
func (s *Store) Subscribe() (<-chan State, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan State, 1)
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// begin issues a new load token and marks the store as loading with no error.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	next := *s.state.Load()
	next.IsLoading = true
	next.Err = nil
	s.publishLocked(next)
	return s.latest
}

// finish applies update if token is still the latest one issued. It reports
// whether the update was applied.
func (s *Store) finish(token uint64, update func(State) State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.latest {
		metrics.CatalogStaleResponsesTotal.Inc()
		s.logger.Debug().Uint64("token", token).Uint64("latest", s.latest).Msg("Discarding stale catalog response")
		return false
	}
	s.publishLocked(update(*s.state.Load()))
	return true
}

func (s *Store) publishLocked(next State) {
	s.state.Store(&next)
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
}
