package ports

import (
	"context"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// UserRepository defines the credential store.
type UserRepository interface {
	// ExistsByUsernameOrEmail reports whether any user has the given username
	// or the given email, using exact (case-sensitive) matching.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	// Create inserts the user and returns it with its assigned ID. A unique
	// constraint violation is reported as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByIdentifier looks a user up by username OR email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
}
