package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientValidation(t *testing.T) {
	logger := zerolog.Nop()

	_, err := NewClient("", "key", logger)
	require.Error(t, err)

	_, err = NewClient("http://localhost", "", logger)
	require.Error(t, err)

	c, err := NewClient("http://localhost/", "key", logger)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost", c.baseURL)
}

func TestDiscover(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = flatten(r)
		json.NewEncoder(w).Encode(map[string]any{
			"page": 2,
			"results": []map[string]any{
				{"id": 603, "title": "The Matrix", "poster_path": "/a.jpg", "release_date": "1999-03-30", "overview": "Neo."},
				{"id": 604, "title": "The Matrix Reloaded", "overview": "More Neo."},
			},
		})
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)

	movies, err := c.Discover(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, "/discover/movie", gotPath)
	assert.Equal(t, "test-key", gotQuery["api_key"])
	assert.Equal(t, "popularity.desc", gotQuery["sort_by"])
	assert.Equal(t, "false", gotQuery["include_adult"])
	assert.Equal(t, "2", gotQuery["page"])

	require.Len(t, movies, 2)
	assert.Equal(t, 603, movies[0].ID)
	assert.Equal(t, "/a.jpg", movies[0].PosterPath)
	assert.Empty(t, movies[1].PosterPath)
}

func TestSearchBlankQueryFallsBackToDiscover(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"page": 1, "results": []any{}})
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "matrix", 1)
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "   ", 1)
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"/search/movie", "/discover/movie", "/discover/movie"}, paths)
}

func TestEmptyPageIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"page": 500, "results": []any{}})
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)

	movies, err := c.Discover(context.Background(), 500)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestDetailAndCast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/603":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 603, "title": "The Matrix", "release_date": "1999-03-30",
				"runtime": 136, "vote_average": 8.2, "overview": "Neo.",
				"genres":           []map[string]any{{"name": "Action"}, {"name": "Science Fiction"}},
				"spoken_languages": []map[string]any{{"english_name": "English"}},
			})
		case "/movie/603/credits":
			json.NewEncoder(w).Encode(map[string]any{
				"cast": []map[string]any{
					{"id": 1, "name": "Keanu Reeves", "profile_path": "/k.jpg"},
					{"id": 2, "name": "Carrie-Anne Moss"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)

	detail, cast, err := c.DetailWithCast(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, 136, detail.RuntimeMinutes)
	require.Len(t, detail.Genres, 2)
	assert.Equal(t, "Action", detail.Genres[0].Name)
	assert.Equal(t, "English", detail.SpokenLanguages[0].EnglishName)
	require.Len(t, cast, 2)
	assert.Equal(t, "Keanu Reeves", cast[0].Name)
}

func TestDetailWithCastDegradesOnCreditsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/movie/603" {
			json.NewEncoder(w).Encode(map[string]any{"id": 603, "title": "The Matrix"})
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)

	detail, cast, err := c.DetailWithCast(context.Background(), 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", detail.Title)
	assert.Empty(t, cast)
}

func TestErrorKinds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/1":
			http.NotFound(w, r)
		case "/movie/2":
			w.Write([]byte("{not json"))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "test-key", zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Detail(ctx, 1)
	assert.True(t, IsNotFound(err))

	_, err = c.Detail(ctx, 2)
	assert.True(t, IsDecodeErr(err))

	_, err = c.Detail(ctx, 3)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.False(t, IsDecodeErr(err))
}

func TestPosterURL(t *testing.T) {
	assert.Equal(t, "https://image.tmdb.org/t/p/w200/a.jpg", PosterURL("w200", "/a.jpg"))
	assert.Empty(t, PosterURL("w200", ""))
}

func flatten(r *http.Request) map[string]string {
	out := map[string]string{}
	for k, v := range r.URL.Query() {
		out[k] = v[0]
	}
	return out
}
