package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mybrudda/MovieApp/internal/models"
)

// TokenTTL bounds how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// Token is a parsed, validated session token.
type Token struct {
	UserID      string
	DisplayName string
	JTI         string
	ExpiresAt   time.Time
}

// IssueToken signs an HS256 token for an authenticated session.
func IssueToken(secret string, sess *models.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sess.UserID,
		"name": sess.DisplayName,
		"jti":  uuid.NewString(),
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates the signature and expiry and extracts the claims.
func ParseToken(secret, tokenStr string) (*Token, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("auth: invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("auth: invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("auth: invalid sub in token")
	}
	name, _ := claims["name"].(string)
	jti, _ := claims["jti"].(string)
	expUnix, _ := claims["exp"].(float64)

	return &Token{
		UserID:      sub,
		DisplayName: name,
		JTI:         jti,
		ExpiresAt:   time.Unix(int64(expUnix), 0),
	}, nil
}
