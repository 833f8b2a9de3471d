package viewstate

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mybrudda/MovieApp/internal/library"
	"github.com/mybrudda/MovieApp/internal/models"
)

// DetailState is what the movie detail screen renders. The view is
// renderable once Movie is set; Cast and Reviews degrade to empty lists
// when their own fetches fail.
type DetailState struct {
	Movie             *models.MovieDetail
	Cast              []models.CastMember
	Reviews           []models.Review
	ReviewFormVisible bool
	Status            Status
	Err               string
}

type Detail struct {
	catalog  DetailSource
	library  Library
	logger   zerolog.Logger
	onChange func(DetailState)

	mu     sync.Mutex
	state  DetailState
	seq    uint64
	cancel context.CancelFunc
}

func NewDetail(catalog DetailSource, lib Library, logger zerolog.Logger, onChange func(DetailState)) *Detail {
	return &Detail{
		catalog:  catalog,
		library:  lib,
		logger:   logger,
		onChange: onChange,
		state:    DetailState{Status: StatusIdle},
	}
}

func (d *Detail) State() DetailState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Load starts fetching detail, cast and reviews for one movie,
// superseding any fetch still in flight.
func (d *Detail) Load(ctx context.Context, movieID int) {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.seq++
	seq := d.seq
	d.state = DetailState{Status: StatusLoading}
	d.notifyLocked()

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	d.cancel = cancel
	d.mu.Unlock()

	go d.load(fetchCtx, cancel, seq, movieID)
}

func (d *Detail) load(ctx context.Context, cancel context.CancelFunc, seq uint64, movieID int) {
	defer cancel()

	var (
		movie   *models.MovieDetail
		cast    []models.CastMember
		reviews []models.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movie, err = d.catalog.Detail(gctx, movieID)
		return err
	})
	g.Go(func() error {
		c, err := d.catalog.Cast(gctx, movieID)
		if err != nil {
			d.logger.Warn().Err(err).Int("movieId", movieID).Msg("cast fetch failed")
			return nil
		}
		cast = c
		return nil
	})
	g.Go(func() error {
		r, err := d.library.ReviewsForMovie(gctx, movieID)
		if err != nil {
			d.logger.Warn().Err(err).Int("movieId", movieID).Msg("reviews fetch failed")
			return nil
		}
		reviews = r
		return nil
	})
	err := g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		return
	}
	if err != nil {
		d.state.Status = StatusFailed
		d.state.Err = err.Error()
	} else {
		d.state.Movie = movie
		d.state.Cast = cast
		d.state.Reviews = reviews
		d.state.Status = StatusLoaded
	}
	d.notifyLocked()
}

func (d *Detail) ShowReviewForm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.ReviewFormVisible = true
	d.notifyLocked()
}

func (d *Detail) HideReviewForm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.ReviewFormVisible = false
	d.notifyLocked()
}

// SubmitReview writes the review for the loaded movie. Success hides the
// form and refreshes the review list; failure keeps the form up with the
// error on it.
func (d *Detail) SubmitReview(ctx context.Context, userID, userName string, rating float64, text string) error {
	d.mu.Lock()
	if d.state.Movie == nil {
		d.mu.Unlock()
		return nil
	}
	seq := d.seq
	movieID := d.state.Movie.ID
	title := d.state.Movie.Title
	d.mu.Unlock()

	err := d.library.SubmitReview(ctx, userID, movieID, rating, text, library.ReviewContext{
		MovieTitle: title,
		UserName:   userName,
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		return err
	}
	if err != nil {
		d.state.Err = err.Error()
		d.notifyLocked()
		return err
	}
	d.state.ReviewFormVisible = false
	d.state.Err = ""
	d.refreshReviewsLocked(ctx, movieID)
	d.notifyLocked()
	return nil
}

// DeleteReview removes the signed-in user's review and refreshes the list.
func (d *Detail) DeleteReview(ctx context.Context, userID string) error {
	d.mu.Lock()
	if d.state.Movie == nil {
		d.mu.Unlock()
		return nil
	}
	seq := d.seq
	movieID := d.state.Movie.ID
	d.mu.Unlock()

	err := d.library.DeleteReview(ctx, userID, movieID)

	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.seq {
		return err
	}
	if err != nil {
		d.state.Err = err.Error()
		d.notifyLocked()
		return err
	}
	d.refreshReviewsLocked(ctx, movieID)
	d.notifyLocked()
	return nil
}

func (d *Detail) refreshReviewsLocked(ctx context.Context, movieID int) {
	reviews, err := d.library.ReviewsForMovie(ctx, movieID)
	if err != nil {
		d.logger.Warn().Err(err).Int("movieId", movieID).Msg("review refresh failed")
		return
	}
	d.state.Reviews = reviews
}

func (d *Detail) notifyLocked() {
	if d.onChange != nil {
		d.onChange(d.state)
	}
}
