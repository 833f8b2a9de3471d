package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Revoker records logged-out token ids in Redis until their natural
// expiry. Tokens are otherwise stateless, so this is what makes logout
// stick. With no Redis client configured it degrades to a no-op.
type Revoker struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

func NewRevoker(rdb *redis.Client, logger zerolog.Logger) *Revoker {
	return &Revoker{rdb: rdb, logger: logger}
}

func revocationKey(jti string) string { return "revoked:" + jti }

// Revoke marks the token id as dead for the remainder of its validity.
// Revoking an already-revoked or unknown token succeeds.
func (r *Revoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if r.rdb == nil || jti == "" {
		r.logger.Warn().Msg("no revocation backend, logout is client-side only")
		return nil
	}
	if ttl <= 0 {
		return nil // already expired on its own
	}
	return r.rdb.Set(ctx, revocationKey(jti), "1", ttl).Err()
}

// Revoked reports whether the token id has been logged out. Backend
// errors fail open with a log line; an unreachable Redis must not take
// every authenticated route down with it.
func (r *Revoker) Revoked(ctx context.Context, jti string) bool {
	if r.rdb == nil || jti == "" {
		return false
	}
	_, err := r.rdb.Get(ctx, revocationKey(jti)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("revocation lookup failed")
		return false
	}
	return true
}
