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

type ReviewHandler struct {
	library *library.Store
	logger  zerolog.Logger
}

func NewReviewHandler(lib *library.Store, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{library: lib, logger: logger}
}

// @Summary My reviews
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Review
// @Failure 401 {object} map[string]string
// @Router /me/reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.library.ReviewsForUser(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

type submitReviewRequest struct {
	MovieID    int     `json:"movieId"`
	MovieTitle string  `json:"movieTitle"`
	Rating     float64 `json:"rating"`
	ReviewText string  `json:"reviewText"`
}

// @Summary Submit review
// @Description One review per user per movie. Resubmitting replaces the previous review.
// @Tags reviews
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body submitReviewRequest true "review"
// @Success 201 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /me/reviews [post]
func (h *ReviewHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MovieID == 0 {
		writeError(w, http.StatusBadRequest, "movieId is required")
		return
	}

	tok := TokenFromContext(r.Context())
	rc := library.ReviewContext{MovieTitle: req.MovieTitle, UserName: tok.DisplayName}
	err := h.library.SubmitReview(r.Context(), tok.UserID, req.MovieID, req.Rating, req.ReviewText, rc)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"submitted": true})
}

// @Summary Delete review
// @Description Deleting a review that does not exist succeeds.
// @Tags reviews
// @Security BearerAuth
// @Produce json
// @Param movieId path int true "movie id"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} map[string]string
// @Router /me/reviews/{movieId} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid movie id")
		return
	}

	if err := h.library.DeleteReview(r.Context(), UserIDFromContext(r.Context()), movieID); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
