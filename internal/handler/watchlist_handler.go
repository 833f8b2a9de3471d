package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/library"
	"github.com/mybrudda/MovieApp/internal/models"
)

type WatchlistHandler struct {
	library *library.Store
	logger  zerolog.Logger
}

func NewWatchlistHandler(lib *library.Store, logger zerolog.Logger) *WatchlistHandler {
	return &WatchlistHandler{library: lib, logger: logger}
}

// @Summary Get watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.WatchlistEntry
// @Failure 401 {object} map[string]string
// @Router /me/watchlist [get]
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.library.Watchlist(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

// @Summary Add to watchlist
// @Description Adding a movie already on the list overwrites its snapshot.
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.MovieSummary true "movie snapshot"
// @Success 201 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Router /me/watchlist [post]
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var movie models.MovieSummary
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if movie.ID == 0 {
		writeError(w, http.StatusBadRequest, "movie id is required")
		return
	}

	if err := h.library.AddToWatchlist(r.Context(), UserIDFromContext(r.Context()), movie); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"added": true})
}

// @Summary Remove from watchlist
// @Description Removing a movie that is not on the list succeeds.
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param movieId path int true "movie id"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Router /me/watchlist/{movieId} [delete]
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	if err := h.library.RemoveFromWatchlist(r.Context(), UserIDFromContext(r.Context()), movieID); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
