package viewstate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/models"
)

const fetchTimeout = 10 * time.Second

// ListingState is what the movie list screen renders.
type ListingState struct {
	Query  string
	Page   int
	Items  []models.MovieSummary
	Status Status
	Err    string
}

// Listing drives the paginated/searchable movie list. Page changes and
// query submissions each start a fresh fetch tagged with a sequence
// number; a response whose tag is stale by the time it lands is dropped,
// so a slow old page can never overwrite a newer one.
//
// onChange runs with the controller lock held and must not call back
// into the controller.
type Listing struct {
	catalog  Catalog
	logger   zerolog.Logger
	onChange func(ListingState)

	mu     sync.Mutex
	state  ListingState
	seq    uint64
	cancel context.CancelFunc
}

func NewListing(catalog Catalog, logger zerolog.Logger, onChange func(ListingState)) *Listing {
	return &Listing{
		catalog:  catalog,
		logger:   logger,
		onChange: onChange,
		state:    ListingState{Page: 1, Status: StatusIdle},
	}
}

func (l *Listing) State() ListingState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Listing) Reload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startLocked(ctx, l.state.Query, l.state.Page)
}

func (l *Listing) NextPage(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startLocked(ctx, l.state.Query, l.state.Page+1)
}

// PrevPage clamps at page 1: no request is ever issued for page 0.
func (l *Listing) PrevPage(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Page <= 1 {
		return
	}
	l.startLocked(ctx, l.state.Query, l.state.Page-1)
}

// SetQuery submits a new search and resets to page 1. A blank query
// falls back to discover inside the catalog client.
func (l *Listing) SetQuery(ctx context.Context, query string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.startLocked(ctx, query, 1)
}

func (l *Listing) startLocked(ctx context.Context, query string, page int) {
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	seq := l.seq

	l.state.Query = query
	l.state.Page = page
	l.state.Status = StatusLoading
	l.state.Err = ""
	l.notifyLocked()

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	l.cancel = cancel
	go l.fetch(fetchCtx, cancel, seq, query, page)
}

func (l *Listing) fetch(ctx context.Context, cancel context.CancelFunc, seq uint64, query string, page int) {
	defer cancel()
	items, err := l.catalog.Search(ctx, query, page)

	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		l.logger.Debug().Int("page", page).Msg("discarding superseded listing response")
		return
	}
	if err != nil {
		// the previously displayed items stay put
		l.state.Status = StatusFailed
		l.state.Err = err.Error()
	} else {
		l.state.Status = StatusLoaded
		l.state.Items = items
	}
	l.notifyLocked()
}

func (l *Listing) notifyLocked() {
	if l.onChange != nil {
		l.onChange(l.state)
	}
}
