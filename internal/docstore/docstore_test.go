package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathValidation(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		docOK  bool
		collOK bool
	}{
		{"profile doc", "users/u1", true, false},
		{"watchlist doc", "users/u1/watchlist/42", true, false},
		{"watchlist collection", "users/u1/watchlist", false, true},
		{"top collection", "users", false, true},
		{"empty", "", false, false},
		{"empty segment", "users//watchlist", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.docOK, ValidateDocPath(tt.path) == nil)
			assert.Equal(t, tt.collOK, ValidateCollectionPath(tt.path) == nil)
		})
	}
}

func TestParent(t *testing.T) {
	assert.Equal(t, "users/u1/watchlist", Parent("users/u1/watchlist/42"))
	assert.Equal(t, "users", Parent("users/u1"))
	assert.Equal(t, "", Parent("users"))
}

type entry struct {
	MovieID int    `json:"movieId"`
	Title   string `json:"title"`
}

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var got entry
	found, err := s.Get(ctx, "users/u1/watchlist/42", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "users/u1/watchlist/42", entry{MovieID: 42, Title: "The Matrix"}))
	// upsert, not append
	require.NoError(t, s.Set(ctx, "users/u1/watchlist/42", entry{MovieID: 42, Title: "The Matrix Reloaded"}))
	require.NoError(t, s.Set(ctx, "users/u1/watchlist/7", entry{MovieID: 7, Title: "Se7en"}))
	require.NoError(t, s.Set(ctx, "users/u2/watchlist/42", entry{MovieID: 42, Title: "The Matrix"}))

	found, err = s.Get(ctx, "users/u1/watchlist/42", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "The Matrix Reloaded", got.Title)

	var list []entry
	require.NoError(t, s.List(ctx, "users/u1/watchlist", &list))
	assert.Len(t, list, 2)

	require.NoError(t, s.Delete(ctx, "users/u1/watchlist/42"))
	require.NoError(t, s.Delete(ctx, "users/u1/watchlist/42")) // idempotent

	list = nil
	require.NoError(t, s.List(ctx, "users/u1/watchlist", &list))
	require.Len(t, list, 1)
	assert.Equal(t, 7, list[0].MovieID)
}

func TestMemoryStoreTxCommit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.RunTx(ctx, func(tx Store) error {
		if err := tx.Set(ctx, "users/u1/reviews/42", entry{MovieID: 42}); err != nil {
			return err
		}
		// a tx sees its own writes
		var e entry
		found, err := tx.Get(ctx, "users/u1/reviews/42", &e)
		require.NoError(t, err)
		require.True(t, found)
		return tx.Set(ctx, "movies/42/reviews/u1", entry{MovieID: 42})
	})
	require.NoError(t, err)

	var e entry
	found, err := s.Get(ctx, "movies/42/reviews/u1", &e)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestMemoryStoreTxRollback(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	boom := errors.New("boom")

	err := s.RunTx(ctx, func(tx Store) error {
		if err := tx.Set(ctx, "users/u1/reviews/42", entry{MovieID: 42}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var e entry
	found, err := s.Get(ctx, "users/u1/reviews/42", &e)
	require.NoError(t, err)
	assert.False(t, found, "failed tx must leave nothing behind")
}
