// Package viewstate holds the per-screen state machines the presentation
// layer observes. Each controller processes one in-flight operation at a
// time: a new trigger supersedes the previous fetch, and responses
// arriving for a superseded trigger are discarded (last request wins).
package viewstate

import (
	"context"

	"github.com/mybrudda/MovieApp/internal/library"
	"github.com/mybrudda/MovieApp/internal/models"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Catalog is the slice of the catalog client the listing screen needs.
type Catalog interface {
	Discover(ctx context.Context, page int) ([]models.MovieSummary, error)
	Search(ctx context.Context, query string, page int) ([]models.MovieSummary, error)
}

// DetailSource is the slice the detail screen needs.
type DetailSource interface {
	Detail(ctx context.Context, movieID int) (*models.MovieDetail, error)
	Cast(ctx context.Context, movieID int) ([]models.CastMember, error)
}

// Library is the review surface of the library store.
type Library interface {
	ReviewsForMovie(ctx context.Context, movieID int) ([]models.Review, error)
	SubmitReview(ctx context.Context, userID string, movieID int, rating float64, text string, rc library.ReviewContext) error
	DeleteReview(ctx context.Context, userID string, movieID int) error
}

// Authenticator is the slice of the session manager the auth forms need.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password, displayName string) error
}
