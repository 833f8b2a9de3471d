package viewstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybrudda/MovieApp/internal/models"
)

func page(ids ...int) []models.MovieSummary {
	out := make([]models.MovieSummary, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.MovieSummary{ID: id, Title: fmt.Sprintf("movie %d", id)})
	}
	return out
}

// scriptedCatalog serves canned responses keyed by page and records calls.
type scriptedCatalog struct {
	mu    sync.Mutex
	pages map[int][]models.MovieSummary
	errs  map[int]error
	calls []string
}

func (c *scriptedCatalog) Search(_ context.Context, query string, p int) ([]models.MovieSummary, error) {
	c.mu.Lock()
	c.calls = append(c.calls, fmt.Sprintf("%q@%d", query, p))
	c.mu.Unlock()
	if err := c.errs[p]; err != nil {
		return nil, err
	}
	return c.pages[p], nil
}

func (c *scriptedCatalog) Discover(ctx context.Context, p int) ([]models.MovieSummary, error) {
	return c.Search(ctx, "", p)
}

func (c *scriptedCatalog) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func collectStates() (chan ListingState, func(ListingState)) {
	ch := make(chan ListingState, 64)
	return ch, func(s ListingState) { ch <- s }
}

func waitFor(t *testing.T, states chan ListingState, pred func(ListingState) bool) ListingState {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-states:
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatal("timed out waiting for listing state")
		}
	}
}

func settled(s ListingState) bool { return s.Status == StatusLoaded || s.Status == StatusFailed }

func TestListingLoadAndPaging(t *testing.T) {
	ctx := context.Background()
	cat := &scriptedCatalog{pages: map[int][]models.MovieSummary{1: page(1, 2), 2: page(3)}, errs: map[int]error{}}
	states, onChange := collectStates()
	l := NewListing(cat, zerolog.Nop(), onChange)

	assert.Equal(t, 1, l.State().Page)
	assert.Equal(t, StatusIdle, l.State().Status)

	l.Reload(ctx)
	s := waitFor(t, states, settled)
	assert.Equal(t, StatusLoaded, s.Status)
	assert.Len(t, s.Items, 2)

	l.NextPage(ctx)
	s = waitFor(t, states, settled)
	assert.Equal(t, 2, s.Page)
	assert.Len(t, s.Items, 1)

	l.PrevPage(ctx)
	s = waitFor(t, states, settled)
	assert.Equal(t, 1, s.Page)
	assert.Len(t, s.Items, 2)
}

func TestListingPrevPageClampsAtOne(t *testing.T) {
	ctx := context.Background()
	cat := &scriptedCatalog{pages: map[int][]models.MovieSummary{1: page(1)}, errs: map[int]error{}}
	states, onChange := collectStates()
	l := NewListing(cat, zerolog.Nop(), onChange)

	l.Reload(ctx)
	waitFor(t, states, settled)
	calls := cat.callCount()

	l.PrevPage(ctx)
	assert.Equal(t, calls, cat.callCount(), "no request may be issued below page 1")
	assert.Equal(t, 1, l.State().Page)
}

func TestListingFailureKeepsPreviousItems(t *testing.T) {
	ctx := context.Background()
	cat := &scriptedCatalog{
		pages: map[int][]models.MovieSummary{1: page(1, 2)},
		errs:  map[int]error{2: errors.New("network down")},
	}
	states, onChange := collectStates()
	l := NewListing(cat, zerolog.Nop(), onChange)

	l.Reload(ctx)
	waitFor(t, states, settled)

	l.NextPage(ctx)
	s := waitFor(t, states, settled)
	assert.Equal(t, StatusFailed, s.Status)
	assert.NotEmpty(t, s.Err)
	assert.Len(t, s.Items, 2, "a failed fetch must not clobber the visible list")
}

func TestListingQueryResetsPage(t *testing.T) {
	ctx := context.Background()
	cat := &scriptedCatalog{pages: map[int][]models.MovieSummary{1: page(1), 2: page(2)}, errs: map[int]error{}}
	states, onChange := collectStates()
	l := NewListing(cat, zerolog.Nop(), onChange)

	l.Reload(ctx)
	waitFor(t, states, settled)
	l.NextPage(ctx)
	waitFor(t, states, settled)
	require.Equal(t, 2, l.State().Page)

	l.SetQuery(ctx, "matrix")
	s := waitFor(t, states, settled)
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, "matrix", s.Query)

	cat.mu.Lock()
	last := cat.calls[len(cat.calls)-1]
	cat.mu.Unlock()
	assert.Equal(t, `"matrix"@1`, last)
}

// blockedCatalog parks every Search until the test replies, so response
// ordering is under test control.
type blockedCatalog struct {
	requests chan *blockedReq
}

type blockedReq struct {
	page  int
	reply chan blockedResp
}

type blockedResp struct {
	items []models.MovieSummary
	err   error
}

func (c *blockedCatalog) Search(ctx context.Context, _ string, p int) ([]models.MovieSummary, error) {
	req := &blockedReq{page: p, reply: make(chan blockedResp, 1)}
	c.requests <- req
	select {
	case r := <-req.reply:
		return r.items, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *blockedCatalog) Discover(ctx context.Context, p int) ([]models.MovieSummary, error) {
	return c.Search(ctx, "", p)
}

func TestListingLastRequestWins(t *testing.T) {
	ctx := context.Background()
	cat := &blockedCatalog{requests: make(chan *blockedReq, 4)}
	states, onChange := collectStates()
	l := NewListing(cat, zerolog.Nop(), onChange)

	l.Reload(ctx)
	req1 := <-cat.requests
	require.Equal(t, 1, req1.page)

	// supersede page 1 while it is still in flight
	l.NextPage(ctx)
	req2 := <-cat.requests
	require.Equal(t, 2, req2.page)

	req2.reply <- blockedResp{items: page(3)}
	s := waitFor(t, states, settled)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, []int{3}, ids(s.Items))

	// the stale page-1 response must be discarded on arrival
	req1.reply <- blockedResp{items: page(1, 2)}
	time.Sleep(50 * time.Millisecond)
	final := l.State()
	assert.Equal(t, 2, final.Page)
	assert.Equal(t, []int{3}, ids(final.Items))
}

func ids(items []models.MovieSummary) []int {
	out := make([]int, 0, len(items))
	for _, m := range items {
		out = append(out, m.ID)
	}
	return out
}
