package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/mybrudda/MovieApp/internal/auth"
)

type ctxKey string

const ctxToken ctxKey = "token"

// TokenRevoker answers whether a token id has been logged out.
type TokenRevoker interface {
	Revoked(ctx context.Context, jti string) bool
}

// JWTAuth validates the bearer token, rejects revoked ones, and puts the
// parsed token into the request context.
func JWTAuth(secret string, revoker TokenRevoker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "missing or invalid Authorization header")
				return
			}

			tok, err := auth.ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			if revoker.Revoked(r.Context(), tok.JTI) {
				writeError(w, http.StatusUnauthorized, "token revoked")
				return
			}

			ctx := context.WithValue(r.Context(), ctxToken, tok)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromContext returns the token JWTAuth parsed, or nil outside an
// authenticated route.
func TokenFromContext(ctx context.Context) *auth.Token {
	tok, _ := ctx.Value(ctxToken).(*auth.Token)
	return tok
}

// UserIDFromContext is a helper for the common case.
func UserIDFromContext(ctx context.Context) string {
	if tok := TokenFromContext(ctx); tok != nil {
		return tok.UserID
	}
	return ""
}
