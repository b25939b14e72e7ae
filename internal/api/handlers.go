package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/podlanding/podcast-discovery/internal/apperrors"
	"github.com/podlanding/podcast-discovery/internal/dateutil"
	"github.com/podlanding/podcast-discovery/internal/discovery"
	"github.com/podlanding/podcast-discovery/internal/genres"
	"github.com/podlanding/podcast-discovery/internal/models"
	"github.com/podlanding/podcast-discovery/internal/render"
)

// ShowsResponse is the body of GET /api/shows and POST /api/refresh. Shows
// holds the filtered subset; Total counts every show in the catalog.
type ShowsResponse struct {
	Shows   []models.Show           `json:"shows"`
	Total   int                     `json:"total"`
	Loading bool                    `json:"loading"`
	Error   *apperrors.FetchFailure `json:"error,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// ShowDetail is the body of GET /api/shows/:id.
type ShowDetail struct {
	models.Show
	GenreNames   []string `json:"genreNames"`
	SeasonsLabel string   `json:"seasonsLabel"`
	TimeSince    string   `json:"timeSince"`
	UpdatedOn    string   `json:"updatedOn"`
	PlainText    string   `json:"plainDescription"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) listShows(c echo.Context) error {
	category, err := models.ParseCategory(c.QueryParam("filter"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	view := discovery.NewState().
		SetSearch(c.QueryParam("search")).
		SetCategory(category).
		Apply(s.store.Snapshot())
	return c.JSON(http.StatusOK, NewShowsResponse(view))
}

func (s *Server) getShow(c echo.Context) error {
	id := c.Param("id")
	show, ok := s.store.ShowByID(id)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Error: apperrors.NewShowNotFoundError(id).Error()})
	}

	return c.JSON(http.StatusOK, NewShowDetail(show, s.now()))
}

func (s *Server) listGenres(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"genres": genres.All()})
}

// refresh runs a load and answers with the resulting state. A failed load is
// reported in the body's error field. The load outlives the request: a client
// hanging up must not record a failure in the shared store.
func (s *Server) refresh(c echo.Context) error {
	_ = s.store.Refresh(context.WithoutCancel(c.Request().Context()))
	return c.JSON(http.StatusOK, NewShowsResponse(discovery.NewState().Apply(s.store.Snapshot())))
}

// NewShowsResponse builds the list body from a view state.
func NewShowsResponse(view discovery.State) ShowsResponse {
	return ShowsResponse{
		Shows:   view.Visible(),
		Total:   len(view.Shows),
		Loading: view.Loading,
		Error:   view.Err,
		Message: view.EmptyMessage(),
	}
}

// NewShowDetail decorates show with its display fields as of now.
func NewShowDetail(show models.Show, now time.Time) ShowDetail {
	return ShowDetail{
		Show:         show,
		GenreNames:   genres.NamesFor(show.GenreIDs),
		SeasonsLabel: render.SeasonLabel(show.Seasons),
		TimeSince:    dateutil.TimeSince(show.UpdatedAt, now),
		UpdatedOn:    dateutil.FormatFull(show.UpdatedAt),
		PlainText:    render.PlainText(show.Description),
	}
}
