package discovery

import (
	"errors"
	"testing"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/models"
	"github.com/podlanding/podcast-discovery/internal/store"
)

func TestNewState(t *testing.T) {
	s := NewState()
	if s.Search != "" || s.Category != models.CategoryAll || s.Selected != nil {
		t.Errorf("Unexpected initial state: %+v", s)
	}
	if s.EmptyMessage() != EmptyResultsMessage {
		t.Errorf("Expected empty message for empty catalog, got %q", s.EmptyMessage())
	}
}

func TestState_TransitionsDoNotMutateReceiver(t *testing.T) {
	base := NewState().LoadSucceeded(sampleShows())
	next := base.SetSearch("history").SetCategory(models.CategoryRecent).SelectShow(base.Shows[0])

	if base.Search != "" || base.Category != models.CategoryAll || base.Selected != nil {
		t.Errorf("Expected receiver to be unchanged, got %+v", base)
	}
	if next.Search != "history" || next.Category != models.CategoryRecent || next.Selected == nil {
		t.Errorf("Unexpected transitioned state: %+v", next)
	}
	if next.ClearSelection().Selected != nil {
		t.Error("Expected ClearSelection to drop the selection")
	}
}

func TestState_Visible(t *testing.T) {
	s := NewState().LoadSucceeded(sampleShows()).SetCategory(models.CategoryPopular)
	if got := ids(s.Visible()); got != "1,3" {
		t.Errorf("Visible() = %s, want 1,3", got)
	}

	s = s.SetSearch("no such podcast")
	if s.EmptyMessage() != EmptyResultsMessage {
		t.Errorf("Expected %q, got %q", EmptyResultsMessage, s.EmptyMessage())
	}
}

func TestState_LoadLifecycle(t *testing.T) {
	s := NewState().LoadFailed(errors.New("boom"))
	if s.Err == nil || s.Err.Message != apperrors.FetchFailureMessage || s.Err.Details != "boom" {
		t.Fatalf("Expected FetchFailure, got %+v", s.Err)
	}
	if s.EmptyMessage() != "" {
		t.Error("Expected no empty message while an error is shown")
	}

	s = s.StartLoad()
	if !s.Loading || s.Err != nil {
		t.Errorf("Expected loading without error, got %+v", s)
	}
	if s.EmptyMessage() != "" {
		t.Error("Expected no empty message while loading")
	}

	s = s.LoadSucceeded(sampleShows())
	if s.Loading || s.Err != nil || len(s.Shows) != 5 {
		t.Errorf("Expected settled state with 5 shows, got %+v", s)
	}

	s = s.LoadFailed(&apperrors.ErrUnexpectedStatus{StatusCode: 500})
	if len(s.Shows) != 5 {
		t.Error("Expected failure to keep the shows")
	}
	if s.Err.Details != "HTTP error! status: 500" {
		t.Errorf("Unexpected details %q", s.Err.Details)
	}
}

func TestState_LoadSucceededFollowsSelection(t *testing.T) {
	shows := sampleShows()
	s := NewState().LoadSucceeded(shows).SelectShow(shows[1])

	updated := sampleShows()
	updated[1].Title = "Deep History, Revised"
	s = s.LoadSucceeded(updated)
	if s.Selected == nil || s.Selected.Title != "Deep History, Revised" {
		t.Errorf("Expected selection to follow the fresh record, got %+v", s.Selected)
	}

	s = s.LoadSucceeded(updated[2:])
	if s.Selected != nil {
		t.Errorf("Expected selection to be cleared when the show disappears, got %+v", s.Selected)
	}
}

func TestState_Apply(t *testing.T) {
	failure := apperrors.NewFetchFailure(errors.New("offline"))
	s := NewState().Apply(store.State{Shows: sampleShows(), IsLoading: false, Err: failure})

	if len(s.Shows) != 5 || s.Err != failure || s.Loading {
		t.Errorf("Unexpected state after Apply: %+v", s)
	}

	s = s.Apply(store.State{Shows: s.Shows, IsLoading: true})
	if !s.Loading || s.Err != nil {
		t.Errorf("Expected loading state, got %+v", s)
	}
}
