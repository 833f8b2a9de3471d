package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/catalog"
	"github.com/mybrudda/MovieApp/internal/library"
	"github.com/mybrudda/MovieApp/internal/models"
)

const defaultCastLimit = 10

type MovieHandler struct {
	catalog *catalog.Client
	library *library.Store
	logger  zerolog.Logger
}

func NewMovieHandler(c *catalog.Client, lib *library.Store, logger zerolog.Logger) *MovieHandler {
	return &MovieHandler{catalog: c, library: lib, logger: logger}
}

// @Summary List movies
// @Description Popular movies, or title search results when q is set.
// @Tags movies
// @Produce json
// @Param page query int false "page number, minimum 1"
// @Param q query string false "title search"
// @Success 200 {array} models.MovieSummary
// @Failure 502 {object} map[string]string
// @Router /movies [get]
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	query := r.URL.Query().Get("q")

	movies, err := h.catalog.Search(r.Context(), query, page)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if movies == nil {
		movies = []models.MovieSummary{}
	}
	writeJSON(w, http.StatusOK, movies)
}

// @Summary Movie detail
// @Description Full movie record with top-billed cast. Cast is omitted when the credits lookup fails.
// @Tags movies
// @Produce json
// @Param id path int true "movie id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /movies/{id} [get]
func (h *MovieHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	detail, cast, err := h.catalog.DetailWithCast(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if len(cast) > defaultCastLimit {
		cast = cast[:defaultCastLimit]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"movie": detail,
		"cast":  cast,
	})
}

// @Summary Movie credits
// @Tags movies
// @Produce json
// @Param id path int true "movie id"
// @Param limit query int false "maximum cast members, default 10"
// @Success 200 {array} models.CastMember
// @Failure 404 {object} map[string]string
// @Router /movies/{id}/credits [get]
func (h *MovieHandler) Credits(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultCastLimit
	}

	cast, err := h.catalog.Cast(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if len(cast) > limit {
		cast = cast[:limit]
	}
	writeJSON(w, http.StatusOK, cast)
}

// @Summary Movie reviews
// @Description All reviews submitted for a movie, across users.
// @Tags movies
// @Produce json
// @Param id path int true "movie id"
// @Success 200 {array} models.Review
// @Router /movies/{id}/reviews [get]
func (h *MovieHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	reviews, err := h.library.ReviewsForMovie(r.Context(), id)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}
