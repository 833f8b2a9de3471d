package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mybrudda/MovieApp/internal/auth"
	"github.com/mybrudda/MovieApp/internal/catalog"
	"github.com/mybrudda/MovieApp/internal/library"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError converts any error into a user-facing message; nothing
// propagates past a handler as an uncaught fault.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailUnverified):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, auth.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, library.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, library.ErrInvalidRating):
		return http.StatusBadRequest
	case catalog.IsNotFound(err):
		return http.StatusNotFound
	case isFetchErr(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isFetchErr(err error) bool {
	var fe *catalog.FetchError
	return errors.As(err, &fe)
}
