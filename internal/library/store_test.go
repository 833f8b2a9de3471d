package library

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybrudda/MovieApp/internal/docstore"
	"github.com/mybrudda/MovieApp/internal/models"
)

var matrix = models.MovieSummary{
	ID:          603,
	Title:       "The Matrix",
	PosterPath:  "/a.jpg",
	ReleaseDate: "1999-03-30",
	Overview:    "Neo.",
}

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(docstore.NewMemoryStore(), zerolog.Nop())
}

func TestWatchlistUpsertAndRemove(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.AddToWatchlist(ctx, "u1", matrix))
	require.NoError(t, s.AddToWatchlist(ctx, "u1", matrix)) // upsert, not append

	list, err := s.Watchlist(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 603, list[0].MovieID)
	assert.Equal(t, 1999, list[0].ReleaseYear)
	assert.NotEmpty(t, list[0].AddedAt)

	require.NoError(t, s.RemoveFromWatchlist(ctx, "u1", 603))
	list, err = s.Watchlist(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	// removing again is a no-op success
	require.NoError(t, s.RemoveFromWatchlist(ctx, "u1", 603))
}

func TestWatchlistRequiresUser(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	assert.ErrorIs(t, s.AddToWatchlist(ctx, "", matrix), ErrUnauthenticated)
	_, err := s.Watchlist(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, s.RemoveFromWatchlist(ctx, "", 603), ErrUnauthenticated)
	assert.ErrorIs(t, s.SubmitReview(ctx, "", 603, 8, "great", ReviewContext{}), ErrUnauthenticated)
}

func TestSubmitReviewWritesBothMirrors(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	rc := ReviewContext{MovieTitle: "The Matrix", UserName: "alice"}
	require.NoError(t, s.SubmitReview(ctx, "u1", 603, 9, "whoa", rc))

	byUser, err := s.ReviewsForUser(ctx, "u1")
	require.NoError(t, err)
	byMovie, err := s.ReviewsForMovie(ctx, 603)
	require.NoError(t, err)

	require.Len(t, byUser, 1)
	require.Len(t, byMovie, 1)
	assert.Equal(t, byUser[0], byMovie[0])
	assert.Equal(t, 9.0, byUser[0].Rating)
	assert.Equal(t, "whoa", byUser[0].ReviewText)
	assert.Equal(t, "alice", byUser[0].UserName)

	// resubmission overwrites, it does not duplicate
	require.NoError(t, s.SubmitReview(ctx, "u1", 603, 4, "rewatch was worse", rc))
	byUser, err = s.ReviewsForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, 4.0, byUser[0].Rating)
}

func TestSubmitReviewValidatesRating(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	for _, rating := range []float64{0, 0.5, 10.5, -3, 11} {
		err := s.SubmitReview(ctx, "u1", 603, rating, "x", ReviewContext{})
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	// nothing may be written on a rejected rating
	byUser, err := s.ReviewsForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, byUser)
	byMovie, err := s.ReviewsForMovie(ctx, 603)
	require.NoError(t, err)
	assert.Empty(t, byMovie)

	for _, rating := range []float64{1, 5.5, 10} {
		require.NoError(t, s.SubmitReview(ctx, "u1", 603, rating, "x", ReviewContext{}))
	}
}

func TestDeleteReviewRemovesBothMirrors(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.SubmitReview(ctx, "u1", 603, 9, "whoa", ReviewContext{}))
	require.NoError(t, s.SubmitReview(ctx, "u2", 603, 3, "meh", ReviewContext{}))

	require.NoError(t, s.DeleteReview(ctx, "u1", 603))

	byUser, err := s.ReviewsForUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, byUser)

	byMovie, err := s.ReviewsForMovie(ctx, 603)
	require.NoError(t, err)
	require.Len(t, byMovie, 1)
	assert.Equal(t, "u2", byMovie[0].UserID)

	// deleting an absent review succeeds
	require.NoError(t, s.DeleteReview(ctx, "u1", 603))
}

// failingStore has no RunTx and fails writes/deletes on movie review
// paths, forcing the guarded sequential fallback into its failure leg.
type failingStore struct {
	inner    docstore.Store
	failPath string
}

func (f *failingStore) Get(ctx context.Context, path string, dest any) (bool, error) {
	return f.inner.Get(ctx, path, dest)
}

func (f *failingStore) Set(ctx context.Context, path string, doc any) error {
	if strings.HasPrefix(path, f.failPath) {
		return errors.New("backend down")
	}
	return f.inner.Set(ctx, path, doc)
}

func (f *failingStore) Delete(ctx context.Context, path string) error {
	if strings.HasPrefix(path, f.failPath) {
		return errors.New("backend down")
	}
	return f.inner.Delete(ctx, path)
}

func (f *failingStore) List(ctx context.Context, collection string, dest any) error {
	return f.inner.List(ctx, collection, dest)
}

func TestSubmitReviewReportsPartialWrite(t *testing.T) {
	ctx := context.Background()
	s := NewStore(&failingStore{inner: docstore.NewMemoryStore(), failPath: "movies/"}, zerolog.Nop())

	err := s.SubmitReview(ctx, "u1", 603, 9, "whoa", ReviewContext{})
	assert.ErrorIs(t, err, ErrPartialWrite)

	err = s.DeleteReview(ctx, "u1", 603)
	assert.ErrorIs(t, err, ErrPartialWrite)
}

func TestTransactionalStoreRollsBackReview(t *testing.T) {
	ctx := context.Background()
	// memory store is transactional; a tx store must never half-write,
	// so a Set error inside the tx leaves the user mirror absent too.
	mem := docstore.NewMemoryStore()
	s := NewStore(mem, zerolog.Nop())

	require.NoError(t, s.SubmitReview(ctx, "u1", 603, 9, "whoa", ReviewContext{}))
	var rev models.Review
	found, err := mem.Get(ctx, "movies/603/reviews/u1", &rev)
	require.NoError(t, err)
	assert.True(t, found)
	found, err = mem.Get(ctx, "users/u1/reviews/603", &rev)
	require.NoError(t, err)
	assert.True(t, found)
}
