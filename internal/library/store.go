// Package library owns the per-user watchlist and review documents. It
// is the single writer for both; reviews are mirrored under two paths so
// they can be listed by user and by movie without a join.
package library

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/docstore"
	"github.com/mybrudda/MovieApp/internal/models"
)

type Store struct {
	docs   docstore.Store
	logger zerolog.Logger
}

func NewStore(docs docstore.Store, logger zerolog.Logger) *Store {
	return &Store{docs: docs, logger: logger}
}

// ReviewContext is the movie/user metadata denormalized into a review.
type ReviewContext struct {
	MovieTitle string
	UserName   string
}

func watchlistPath(uid string, movieID int) string {
	return fmt.Sprintf("users/%s/watchlist/%d", uid, movieID)
}

func watchlistCollection(uid string) string {
	return fmt.Sprintf("users/%s/watchlist", uid)
}

func userReviewPath(uid string, movieID int) string {
	return fmt.Sprintf("users/%s/reviews/%d", uid, movieID)
}

func movieReviewPath(movieID int, uid string) string {
	return fmt.Sprintf("movies/%d/reviews/%s", movieID, uid)
}

// AddToWatchlist upserts the entry keyed by (user, movie): saving the
// same movie twice leaves one entry.
func (s *Store) AddToWatchlist(ctx context.Context, userID string, movie models.MovieSummary) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	entry := models.WatchlistEntry{
		MovieID:     movie.ID,
		Title:       movie.Title,
		PosterPath:  movie.PosterPath,
		ReleaseYear: releaseYear(movie.ReleaseDate),
		Overview:    movie.Overview,
		AddedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	return s.docs.Set(ctx, watchlistPath(userID, movie.ID), entry)
}

func (s *Store) Watchlist(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	var out []models.WatchlistEntry
	if err := s.docs.List(ctx, watchlistCollection(userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveFromWatchlist is idempotent: removing an absent entry succeeds.
func (s *Store) RemoveFromWatchlist(ctx context.Context, userID string, movieID int) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	return s.docs.Delete(ctx, watchlistPath(userID, movieID))
}

// SubmitReview validates the rating before any write, then lands the
// review on both mirror paths. Resubmitting overwrites; it never
// duplicates. On a transactional store both writes commit together; on
// anything else a failed second write surfaces ErrPartialWrite instead
// of being swallowed.
func (s *Store) SubmitReview(ctx context.Context, userID string, movieID int, rating float64, text string, rc ReviewContext) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if rating < 1 || rating > 10 {
		return ErrInvalidRating
	}

	review := models.Review{
		UserID:     userID,
		MovieID:    movieID,
		MovieTitle: rc.MovieTitle,
		UserName:   rc.UserName,
		Rating:     rating,
		ReviewText: text,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	write := func(tx docstore.Store) error {
		if err := tx.Set(ctx, userReviewPath(userID, movieID), review); err != nil {
			return err
		}
		return tx.Set(ctx, movieReviewPath(movieID, userID), review)
	}

	if runner, ok := s.docs.(docstore.TxRunner); ok {
		return runner.RunTx(ctx, write)
	}

	if err := s.docs.Set(ctx, userReviewPath(userID, movieID), review); err != nil {
		return err
	}
	if err := s.docs.Set(ctx, movieReviewPath(movieID, userID), review); err != nil {
		s.logger.Error().Err(err).
			Str("userId", userID).Int("movieId", movieID).
			Msg("second review write failed, mirror is inconsistent")
		return fmt.Errorf("%w: %s", ErrPartialWrite, err)
	}
	return nil
}

func (s *Store) ReviewsForUser(ctx context.Context, userID string) ([]models.Review, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	var out []models.Review
	if err := s.docs.List(ctx, fmt.Sprintf("users/%s/reviews", userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) ReviewsForMovie(ctx context.Context, movieID int) ([]models.Review, error) {
	var out []models.Review
	if err := s.docs.List(ctx, fmt.Sprintf("movies/%d/reviews", movieID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteReview removes both mirrored documents. Deleting a review that
// does not exist succeeds.
func (s *Store) DeleteReview(ctx context.Context, userID string, movieID int) error {
	if userID == "" {
		return ErrUnauthenticated
	}

	del := func(tx docstore.Store) error {
		if err := tx.Delete(ctx, userReviewPath(userID, movieID)); err != nil {
			return err
		}
		return tx.Delete(ctx, movieReviewPath(movieID, userID))
	}

	if runner, ok := s.docs.(docstore.TxRunner); ok {
		return runner.RunTx(ctx, del)
	}

	if err := s.docs.Delete(ctx, userReviewPath(userID, movieID)); err != nil {
		return err
	}
	if err := s.docs.Delete(ctx, movieReviewPath(movieID, userID)); err != nil {
		s.logger.Error().Err(err).
			Str("userId", userID).Int("movieId", movieID).
			Msg("second review delete failed, mirror is inconsistent")
		return fmt.Errorf("%w: %s", ErrPartialWrite, err)
	}
	return nil
}

func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
