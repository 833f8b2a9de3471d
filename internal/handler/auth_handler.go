package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mybrudda/MovieApp/internal/auth"
	"github.com/mybrudda/MovieApp/internal/docstore"
	"github.com/mybrudda/MovieApp/internal/models"
)

type AuthHandler struct {
	provider *auth.StoreProvider
	docs     docstore.Store
	revoker  *auth.Revoker
	secret   string
	logger   zerolog.Logger
}

func NewAuthHandler(provider *auth.StoreProvider, docs docstore.Store, revoker *auth.Revoker, secret string, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		docs:     docs,
		revoker:  revoker,
		secret:   secret,
		logger:   logger,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type userResponse struct {
	UserID        string `json:"userId"`
	DisplayName   string `json:"displayName"`
	EmailVerified bool   `json:"emailVerified"`
}

func toUserResponse(s *models.Session) userResponse {
	return userResponse{
		UserID:        s.UserID,
		DisplayName:   s.DisplayName,
		EmailVerified: s.EmailVerified,
	}
}

// @Summary Register
// @Description Creates an account and dispatches a verification email. Does not log in.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "account data"
// @Success 201 {object} userResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		writeError(w, http.StatusBadRequest, "email, password and displayName are required")
		return
	}

	sess, err := h.provider.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	auth.CreateProfile(r.Context(), h.docs, h.logger, sess, req.Email)

	writeJSON(w, http.StatusCreated, toUserResponse(sess))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Login
// @Description Returns a session token. Unverified accounts are rejected without a session.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sess, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if !sess.EmailVerified {
		writeError(w, statusFor(auth.ErrEmailUnverified), auth.ErrEmailUnverified.Error())
		return
	}

	auth.MarkProfileVerified(r.Context(), h.docs, h.logger, sess)

	token, err := auth.IssueToken(h.secret, sess)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserResponse(sess),
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// @Summary Verify email
// @Description Landing for the verification email link.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body verifyRequest true "verification token"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.provider.VerifyEmail(r.Context(), req.Email, req.Token); err != nil {
		writeError(w, http.StatusBadRequest, "invalid verification token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

// @Summary Logout
// @Description Revokes the presented token. Logging out twice succeeds.
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tok := TokenFromContext(r.Context())
	if tok != nil {
		if err := h.revoker.Revoke(r.Context(), tok.JTI, time.Until(tok.ExpiresAt)); err != nil {
			h.logger.Error().Err(err).Msg("token revocation failed")
			writeError(w, http.StatusInternalServerError, "logout failed")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"loggedOut": true})
}
