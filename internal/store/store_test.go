package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/client"
	"github.com/podlanding/podcast-discovery/internal/config"
	"github.com/podlanding/podcast-discovery/internal/models"
)

var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeFetcher returns queued results in order; when gate is set, each call
// blocks until gate is closed.
type fakeFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   int
}

type fetchResult struct {
	shows []models.RawShow
	err   error
	gate  chan struct{}
}

func (f *fakeFetcher) FetchShows(ctx context.Context) ([]models.RawShow, error) {
	f.mu.Lock()
	r := f.results[f.calls]
	f.calls++
	f.mu.Unlock()

	if r.gate != nil {
		select {
		case <-r.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return r.shows, r.err
}

func raw(id string, seasons int, updated time.Time) models.RawShow {
	return models.RawShow{
		ID:          id,
		Title:       "Show " + id,
		Description: "Description " + id,
		Seasons:     seasons,
		Genres:      []int{1},
		Updated:     updated.Format(time.RFC3339),
	}
}

func TestStore_InitialState(t *testing.T) {
	s := New(&fakeFetcher{})
	st := s.Snapshot()

	if st.IsLoading || st.Err != nil {
		t.Errorf("Expected idle store without error, got %+v", st)
	}
	if st.Shows == nil || len(st.Shows) != 0 {
		t.Errorf("Expected empty non-nil shows, got %v", st.Shows)
	}
}

func TestStore_Load_Success(t *testing.T) {
	f := &fakeFetcher{results: []fetchResult{{shows: []models.RawShow{
		raw("1", 8, fixedNow.Add(-10*24*time.Hour)),
		raw("2", 2, fixedNow.AddDate(-1, 0, 0)),
	}}}}
	s := New(f, WithClock(fixedClock))

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	st := s.Snapshot()
	if st.IsLoading || st.Err != nil {
		t.Errorf("Expected settled state, got loading=%v err=%v", st.IsLoading, st.Err)
	}
	if len(st.Shows) != 2 || st.Shows[0].ID != "1" || st.Shows[1].ID != "2" {
		t.Fatalf("Expected shows in response order, got %+v", st.Shows)
	}
	if !st.Shows[0].IsPopular || !st.Shows[0].IsRecent {
		t.Errorf("Expected first show popular and recent, got %+v", st.Shows[0])
	}
	if st.Shows[1].IsPopular || st.Shows[1].IsRecent {
		t.Errorf("Expected second show neither popular nor recent, got %+v", st.Shows[1])
	}
	if !st.LoadedAt.Equal(fixedNow) {
		t.Errorf("Expected LoadedAt %v, got %v", fixedNow, st.LoadedAt)
	}
}

func TestStore_Load_FailureOnFirstLoad(t *testing.T) {
	f := &fakeFetcher{results: []fetchResult{{err: &apperrors.ErrUnexpectedStatus{StatusCode: 500}}}}
	s := New(f)

	err := s.Load(context.Background())
	if !errors.Is(err, &apperrors.FetchFailure{}) {
		t.Fatalf("Expected FetchFailure, got %v", err)
	}

	st := s.Snapshot()
	if len(st.Shows) != 0 {
		t.Errorf("Expected no shows after failed first load, got %d", len(st.Shows))
	}
	if st.Err == nil || st.Err.Message != "Failed to load podcasts" {
		t.Fatalf("Expected FetchFailure in state, got %+v", st.Err)
	}
	if st.Err.Details != "HTTP error! status: 500" {
		t.Errorf("Unexpected details %q", st.Err.Details)
	}
	if st.IsLoading {
		t.Error("Expected loading to be false after settling")
	}
}

func TestStore_Load_FailureKeepsPreviousShows(t *testing.T) {
	f := &fakeFetcher{results: []fetchResult{
		{shows: []models.RawShow{raw("1", 3, fixedNow)}},
		{err: errors.New("connection reset")},
	}}
	s := New(f, WithClock(fixedClock))

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	_ = s.Refresh(context.Background())

	st := s.Snapshot()
	if len(st.Shows) != 1 || st.Shows[0].ID != "1" {
		t.Errorf("Expected previous shows to survive a failed refresh, got %+v", st.Shows)
	}
	if st.Err == nil || st.Err.Details != "connection reset" {
		t.Errorf("Expected error details to be recorded, got %+v", st.Err)
	}
}

func TestStore_Load_ClearsErrorOnStart(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeFetcher{results: []fetchResult{
		{err: errors.New("boom")},
		{shows: []models.RawShow{raw("1", 1, fixedNow)}, gate: gate},
	}}
	s := New(f, WithClock(fixedClock))
	_ = s.Load(context.Background())

	updates, cancel := s.Subscribe()
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()

	st := <-updates
	if !st.IsLoading || st.Err != nil {
		t.Errorf("Expected loading state with cleared error, got loading=%v err=%v", st.IsLoading, st.Err)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	st = <-updates
	if st.IsLoading || len(st.Shows) != 1 {
		t.Errorf("Expected loaded state, got %+v", st)
	}
}

func TestStore_Load_DiscardsStaleResponse(t *testing.T) {
	slowGate := make(chan struct{})
	f := &fakeFetcher{results: []fetchResult{
		{shows: []models.RawShow{raw("old", 1, fixedNow)}, gate: slowGate},
		{shows: []models.RawShow{raw("new", 1, fixedNow)}},
	}}
	s := New(f, WithClock(fixedClock))

	slowDone := make(chan error, 1)
	go func() { slowDone <- s.Load(context.Background()) }()

	// Wait until the slow load has taken its token.
	deadline := time.Now().Add(2 * time.Second)
	for !s.Snapshot().IsLoading {
		if time.Now().After(deadline) {
			t.Fatal("Slow load never started")
		}
		time.Sleep(time.Millisecond)
	}
	for {
		f.mu.Lock()
		calls := f.calls
		f.mu.Unlock()
		if calls == 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	close(slowGate)
	if err := <-slowDone; err != nil {
		t.Fatalf("slow Load returned error: %v", err)
	}

	st := s.Snapshot()
	if len(st.Shows) != 1 || st.Shows[0].ID != "new" {
		t.Errorf("Expected the latest load to win, got %+v", st.Shows)
	}
	if st.IsLoading {
		t.Error("Expected loading to be false")
	}
}

func TestStore_LoadingWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	f := &fakeFetcher{results: []fetchResult{{shows: []models.RawShow{}, gate: gate}}}
	s := New(f)

	done := make(chan error, 1)
	go func() { done <- s.Load(context.Background()) }()

	deadline := time.Now().Add(2 * time.Second)
	for !s.Snapshot().IsLoading {
		if time.Now().After(deadline) {
			t.Fatal("Expected loading flag while the fetch is in flight")
		}
		time.Sleep(time.Millisecond)
	}

	close(gate)
	<-done
	if s.Snapshot().IsLoading {
		t.Error("Expected loading flag to drop after completion")
	}
}

func TestStore_ShowByID(t *testing.T) {
	f := &fakeFetcher{results: []fetchResult{{shows: []models.RawShow{raw("a", 1, fixedNow), raw("b", 9, fixedNow)}}}}
	s := New(f, WithClock(fixedClock))
	_ = s.Load(context.Background())

	show, ok := s.ShowByID("b")
	if !ok || show.Seasons != 9 {
		t.Errorf("Expected to find show b, got %+v %v", show, ok)
	}
	if _, ok := s.ShowByID("zzz"); ok {
		t.Error("Expected unknown ID to be missing")
	}
}

func TestStore_SubscribeCancel(t *testing.T) {
	s := New(&fakeFetcher{results: []fetchResult{{shows: nil}}})
	updates, cancel := s.Subscribe()
	cancel()
	cancel()

	if _, ok := <-updates; ok {
		t.Error("Expected channel to be closed after cancel")
	}
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load after unsubscribe failed: %v", err)
	}
}

// End to end with the HTTP client: one fresh record, HTTP 500 scenario.
func TestStore_WithHTTPClient(t *testing.T) {
	var fail atomic.Bool
	updated := time.Now().Add(-10 * 24 * time.Hour).UTC().Format(time.RFC3339)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"id":"1","title":"Fresh","description":"d","seasons":8,"image":"","genres":[4],"updated":"` + updated + `"}]`))
	}))
	defer server.Close()

	c := client.NewClient(&config.Config{CatalogURL: server.URL, ClientTimeout: "5s"})
	s := New(c)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	st := s.Snapshot()
	if len(st.Shows) != 1 || !st.Shows[0].IsPopular || !st.Shows[0].IsRecent {
		t.Fatalf("Expected one popular, recent show, got %+v", st.Shows)
	}

	fail.Store(true)
	_ = s.Refresh(context.Background())
	st = s.Snapshot()
	if st.Err == nil || st.Err.Message != apperrors.FetchFailureMessage {
		t.Errorf("Expected FetchFailure after HTTP 500, got %+v", st.Err)
	}
	if len(st.Shows) != 1 {
		t.Errorf("Expected previous show to be kept, got %d", len(st.Shows))
	}
	if st.IsLoading {
		t.Error("Expected loading false after settling")
	}
}
