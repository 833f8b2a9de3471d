// Package catalog is the read-only TMDB client. Every call is a fresh
// network fetch; nothing is cached anywhere in this package.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/models"
)

// ImageBaseURL is where poster and profile fragments resolve.
const ImageBaseURL = "https://image.tmdb.org/t/p/"

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("catalog: base URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("catalog: API key is required")
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Discover returns one page of movies sorted by descending popularity.
// Pages are 1-indexed; a page past the end is an empty list, not an error.
func (c *Client) Discover(ctx context.Context, page int) ([]models.MovieSummary, error) {
	params := url.Values{}
	params.Set("include_adult", "false")
	params.Set("include_video", "false")
	params.Set("language", "en-US")
	params.Set("sort_by", "popularity.desc")
	params.Set("page", strconv.Itoa(page))

	var out moviePage
	if err := c.getJSON(ctx, "discover", "/discover/movie", params, &out); err != nil {
		return nil, err
	}
	return summaries(out), nil
}

// Search queries by title. A blank query behaves exactly like Discover.
func (c *Client) Search(ctx context.Context, query string, page int) ([]models.MovieSummary, error) {
	if strings.TrimSpace(query) == "" {
		return c.Discover(ctx, page)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", strconv.Itoa(page))

	var out moviePage
	if err := c.getJSON(ctx, "search", "/search/movie", params, &out); err != nil {
		return nil, err
	}
	return summaries(out), nil
}

func (c *Client) Detail(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	params := url.Values{}
	params.Set("language", "en-US")

	var out detailWire
	if err := c.getJSON(ctx, "detail", fmt.Sprintf("/movie/%d", movieID), params, &out); err != nil {
		return nil, err
	}
	return out.toDetail(), nil
}

func (c *Client) Cast(ctx context.Context, movieID int) ([]models.CastMember, error) {
	params := url.Values{}
	params.Set("language", "en-US")

	var out creditsWire
	if err := c.getJSON(ctx, "credits", fmt.Sprintf("/movie/%d/credits", movieID), params, &out); err != nil {
		return nil, err
	}
	return out.toCast(), nil
}

// DetailWithCast fetches both halves of a detail view. The cast degrades
// to an empty list on its own failure instead of failing the view.
func (c *Client) DetailWithCast(ctx context.Context, movieID int) (*models.MovieDetail, []models.CastMember, error) {
	detail, err := c.Detail(ctx, movieID)
	if err != nil {
		return nil, nil, err
	}
	cast, err := c.Cast(ctx, movieID)
	if err != nil {
		c.logger.Warn().Err(err).Int("movieId", movieID).Msg("credits fetch failed, rendering without cast")
		cast = []models.CastMember{}
	}
	return detail, cast, nil
}

// PosterURL resolves an image path fragment against the image CDN.
// size is a TMDB size token such as "w200" or "w500".
func PosterURL(size, path string) string {
	if path == "" {
		return ""
	}
	return ImageBaseURL + size + path
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, params url.Values, dest any) error {
	params.Set("api_key", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &FetchError{Kind: KindNetwork, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Kind: KindNetwork, Op: op, Err: err}
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &FetchError{Kind: KindNotFound, Op: op}
	case resp.StatusCode != http.StatusOK:
		return &FetchError{Kind: KindNetwork, Op: op, Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return &FetchError{Kind: KindDecode, Op: op, Err: err}
	}
	return nil
}

func summaries(page moviePage) []models.MovieSummary {
	out := make([]models.MovieSummary, 0, len(page.Results))
	for _, m := range page.Results {
		out = append(out, m.toSummary())
	}
	return out
}
