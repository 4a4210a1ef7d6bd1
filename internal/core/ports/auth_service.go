package ports

import (
	"context"
	"time"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// LoginResult carries the issued bearer token.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	TTL       time.Duration
}

type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, identifier, password string) (*LoginResult, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

// TokenIssuer issues and verifies stateless bearer tokens.
type TokenIssuer interface {
	Issue(userID int64) (token string, expiresAt time.Time, err error)
	Verify(token string) (userID int64, err error)
	// RemainingLifetime is expiry minus now. It is negative for expired tokens.
	RemainingLifetime(token string) (time.Duration, error)
	TTL() time.Duration
}

// IDCodec reversibly encrypts user ids for unauthenticated download links.
type IDCodec interface {
	Encrypt(userID int64) (string, error)
	Decrypt(token string) (int64, error)
}
