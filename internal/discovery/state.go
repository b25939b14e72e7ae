package discovery

import (
	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/models"
	"github.com/podlanding/podcast-discovery/internal/store"
)

// EmptyResultsMessage is shown when a settled catalog has no visible shows.
const EmptyResultsMessage = "No podcasts found matching your criteria"

// State is the view state of a discovery surface. Transitions return a new
// State and leave the receiver untouched.
type State struct {
	Search   string                  `json:"search"`
	Category models.Category         `json:"category"`
	Selected *models.Show            `json:"selected,omitempty"`
	Loading  bool                    `json:"loading"`
	Err      *apperrors.FetchFailure `json:"error,omitempty"`
	Shows    []models.Show           `json:"-"`
}

// NewState returns the initial state: no search, all categories, nothing selected.
func NewState() State {
	return State{Category: models.CategoryAll, Shows: []models.Show{}}
}

func (s State) SetSearch(search string) State {
	s.Search = search
	return s
}

func (s State) SetCategory(c models.Category) State {
	s.Category = c
	return s
}

// SelectShow opens the detail view for show.
func (s State) SelectShow(show models.Show) State {
	s.Selected = &show
	return s
}

func (s State) ClearSelection() State {
	s.Selected = nil
	return s
}

// StartLoad marks a load in flight and drops the previous error.
func (s State) StartLoad() State {
	s.Loading = true
	s.Err = nil
	return s
}

// LoadSucceeded replaces the shows. An open selection follows its record into
// the new collection, or is closed if the record is gone.
func (s State) LoadSucceeded(shows []models.Show) State {
	if shows == nil {
		shows = []models.Show{}
	}
	s.Shows = shows
	s.Loading = false
	s.Err = nil

	if s.Selected != nil {
		id := s.Selected.ID
		s.Selected = nil
		for i := range shows {
			if shows[i].ID == id {
				fresh := shows[i]
				s.Selected = &fresh
				break
			}
		}
	}
	return s
}

// LoadFailed records err and keeps the current shows.
func (s State) LoadFailed(err error) State {
	s.Loading = false
	s.Err = apperrors.AsFetchFailure(err)
	return s
}

// Apply mirrors a store snapshot into the view state.
func (s State) Apply(st store.State) State {
	s = s.LoadSucceeded(st.Shows)
	s.Loading = st.IsLoading
	s.Err = st.Err
	return s
}

// Visible is the filtered subset of Shows.
func (s State) Visible() []models.Show {
	return Filter(s.Shows, s.Search, s.Category)
}

// EmptyMessage returns EmptyResultsMessage when the catalog has settled
// without error and nothing passes the filters, and "" otherwise.
func (s State) EmptyMessage() string {
	if s.Loading || s.Err != nil {
		return ""
	}
	if len(s.Visible()) == 0 {
		return EmptyResultsMessage
	}
	return ""
}
