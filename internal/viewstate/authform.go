package viewstate

import (
	"context"
	"errors"
	"sync"

	"github.com/mybrudda/MovieApp/internal/auth"
)

// AuthFormState backs both the login and the sign-up screen.
type AuthFormState struct {
	Email        string
	Password     string
	DisplayName  string
	ErrorMessage string
	Submitting   bool
}

type AuthForm struct {
	auth     Authenticator
	onChange func(AuthFormState)

	mu    sync.Mutex
	state AuthFormState
}

func NewAuthForm(a Authenticator, onChange func(AuthFormState)) *AuthForm {
	return &AuthForm{auth: a, onChange: onChange}
}

func (f *AuthForm) State() AuthFormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Editing any field clears a previously shown error.

func (f *AuthForm) SetEmail(v string) { f.edit(func(s *AuthFormState) { s.Email = v }) }

func (f *AuthForm) SetPassword(v string) { f.edit(func(s *AuthFormState) { s.Password = v }) }

func (f *AuthForm) SetDisplayName(v string) { f.edit(func(s *AuthFormState) { s.DisplayName = v }) }

func (f *AuthForm) edit(apply func(*AuthFormState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply(&f.state)
	f.state.ErrorMessage = ""
	f.notifyLocked()
}

// SubmitLogin reports whether the login succeeded. On failure the error
// message is set and Submitting is back to false.
func (f *AuthForm) SubmitLogin(ctx context.Context) bool {
	f.mu.Lock()
	if f.state.Email == "" || f.state.Password == "" {
		f.state.ErrorMessage = "Please fill in all the fields"
		f.notifyLocked()
		f.mu.Unlock()
		return false
	}
	email, password := f.state.Email, f.state.Password
	f.state.Submitting = true
	f.state.ErrorMessage = ""
	f.notifyLocked()
	f.mu.Unlock()

	_, err := f.auth.Login(ctx, email, password)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Submitting = false
	if err != nil {
		f.state.ErrorMessage = messageFor(err)
	} else {
		f.state.Email = ""
		f.state.Password = ""
	}
	f.notifyLocked()
	return err == nil
}

// SubmitSignUp creates the account. It deliberately does not log in; the
// screen routes back to login afterwards.
func (f *AuthForm) SubmitSignUp(ctx context.Context) bool {
	f.mu.Lock()
	if f.state.Email == "" || f.state.Password == "" || f.state.DisplayName == "" {
		f.state.ErrorMessage = "Please fill in all the fields"
		f.notifyLocked()
		f.mu.Unlock()
		return false
	}
	email, password, name := f.state.Email, f.state.Password, f.state.DisplayName
	f.state.Submitting = true
	f.state.ErrorMessage = ""
	f.notifyLocked()
	f.mu.Unlock()

	err := f.auth.SignUp(ctx, email, password, name)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.Submitting = false
	if err != nil {
		f.state.ErrorMessage = messageFor(err)
	}
	f.notifyLocked()
	return err == nil
}

func (f *AuthForm) notifyLocked() {
	if f.onChange != nil {
		f.onChange(f.state)
	}
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Error: Entered email or password is not correct"
	case errors.Is(err, auth.ErrEmailUnverified):
		return "Please verify your email address before logging in"
	case errors.Is(err, auth.ErrEmailInUse):
		return "Error: Email is already registered"
	case errors.Is(err, auth.ErrWeakPassword):
		return "Error: Password should be at least 6 characters"
	default:
		return "Something went wrong. Please try again."
	}
}
