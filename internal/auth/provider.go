package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mybrudda/MovieApp/internal/docstore"
	"github.com/mybrudda/MovieApp/internal/models"
)

// Provider is the authentication backend: email/password accounts plus
// email verification dispatch.
type Provider interface {
	// SignUp creates the account, sets the display name and dispatches a
	// verification email. It does not establish a session.
	SignUp(ctx context.Context, email, password, displayName string) (*models.Session, error)

	// SignIn checks the credentials and returns the account's session
	// view, including its verification status.
	SignIn(ctx context.Context, email, password string) (*models.Session, error)

	// MarkVerified flips the account to verified, as clicking the link in
	// the verification email would.
	MarkVerified(ctx context.Context, email string) error
}

// Account is the accounts/{uid} document.
type Account struct {
	UID           string `json:"uid" bson:"uid"`
	Email         string `json:"email" bson:"email"`
	PasswordHash  string `json:"passwordHash" bson:"passwordHash"`
	DisplayName   string `json:"displayName" bson:"displayName"`
	EmailVerified bool   `json:"emailVerified" bson:"emailVerified"`
	VerifyToken   string `json:"verifyToken,omitempty" bson:"verifyToken,omitempty"`
	CreatedAt     string `json:"createdAt" bson:"createdAt"`
}

type emailIndex struct {
	UID string `json:"uid" bson:"uid"`
}

// StoreProvider keeps accounts in the document store, with an
// account_emails/{email} index document for lookup by email.
type StoreProvider struct {
	docs   docstore.Store
	logger zerolog.Logger
}

func NewStoreProvider(docs docstore.Store, logger zerolog.Logger) *StoreProvider {
	return &StoreProvider{docs: docs, logger: logger}
}

func accountPath(uid string) string { return "accounts/" + uid }
func emailPath(email string) string { return "account_emails/" + email }

func (p *StoreProvider) SignUp(ctx context.Context, email, password, displayName string) (*models.Session, error) {
	if len(password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}

	var idx emailIndex
	found, err := p.docs.Get(ctx, emailPath(email), &idx)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acc := Account{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		VerifyToken:  uuid.NewString(),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	write := func(tx docstore.Store) error {
		if err := tx.Set(ctx, accountPath(acc.UID), acc); err != nil {
			return err
		}
		return tx.Set(ctx, emailPath(email), emailIndex{UID: acc.UID})
	}
	if runner, ok := p.docs.(docstore.TxRunner); ok {
		err = runner.RunTx(ctx, write)
	} else {
		err = write(p.docs)
	}
	if err != nil {
		return nil, err
	}

	// There is no real mail transport here; the token in the log is the
	// verification link's payload.
	p.logger.Info().
		Str("email", email).
		Str("token", acc.VerifyToken).
		Msg("verification email dispatched")

	return &models.Session{
		UserID:        acc.UID,
		DisplayName:   acc.DisplayName,
		EmailVerified: false,
	}, nil
}

func (p *StoreProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	acc, err := p.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &models.Session{
		UserID:        acc.UID,
		DisplayName:   acc.DisplayName,
		EmailVerified: acc.EmailVerified,
	}, nil
}

func (p *StoreProvider) MarkVerified(ctx context.Context, email string) error {
	acc, err := p.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if acc == nil {
		return fmt.Errorf("auth: no account for %s", email)
	}
	acc.EmailVerified = true
	acc.VerifyToken = ""
	return p.docs.Set(ctx, accountPath(acc.UID), acc)
}

// VerifyEmail is the verification link landing: it marks the account
// verified when token matches the one that was dispatched.
func (p *StoreProvider) VerifyEmail(ctx context.Context, email, token string) error {
	acc, err := p.findByEmail(ctx, email)
	if err != nil {
		return err
	}
	if acc == nil || token == "" || acc.VerifyToken != token {
		return fmt.Errorf("auth: invalid verification token")
	}
	acc.EmailVerified = true
	acc.VerifyToken = ""
	return p.docs.Set(ctx, accountPath(acc.UID), acc)
}

func (p *StoreProvider) findByEmail(ctx context.Context, email string) (*Account, error) {
	var idx emailIndex
	found, err := p.docs.Get(ctx, emailPath(email), &idx)
	if err != nil || !found {
		return nil, err
	}
	var acc Account
	found, err = p.docs.Get(ctx, accountPath(idx.UID), &acc)
	if err != nil || !found {
		return nil, err
	}
	return &acc, nil
}
