package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/docstore"
	"github.com/mybrudda/MovieApp/internal/models"
)

func profilePath(uid string) string { return "users/" + uid }

// CreateProfile writes the users/{uid} document for a new account with
// verified=false. Failures are logged, not returned: the account itself
// already exists and sign-up must not be reported as failed.
func CreateProfile(ctx context.Context, docs docstore.Store, logger zerolog.Logger, sess *models.Session, email string) {
	p := models.Profile{
		DisplayName: sess.DisplayName,
		Email:       email,
		Verified:    false,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := docs.Set(ctx, profilePath(sess.UserID), p); err != nil {
		logger.Error().Err(err).Str("uid", sess.UserID).Msg("profile document write failed")
	}
}

// MarkProfileVerified flips verified=true on users/{uid} on the first
// verified login. It is a no-op when the flag is already set, and it never
// blocks or fails the login that triggered it.
func MarkProfileVerified(ctx context.Context, docs docstore.Store, logger zerolog.Logger, sess *models.Session) {
	var p models.Profile
	found, err := docs.Get(ctx, profilePath(sess.UserID), &p)
	if err != nil {
		logger.Error().Err(err).Str("uid", sess.UserID).Msg("profile read failed, skipping verified flag")
		return
	}
	if found && p.Verified {
		return
	}
	if !found {
		p = models.Profile{
			DisplayName: sess.DisplayName,
			CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		}
	}
	p.Verified = true
	if err := docs.Set(ctx, profilePath(sess.UserID), p); err != nil {
		logger.Error().Err(err).Str("uid", sess.UserID).Msg("verified flag write failed")
	}
}
