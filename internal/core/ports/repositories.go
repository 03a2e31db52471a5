package ports

import (
	"context"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
)

// UserRepository persists registered users.
type UserRepository interface {
	// UpsertByEmail creates the user, or updates coordinates and geometry
	// when the email is already registered. The stored record (id and
	// timestamps included) is written back into u.
	UpsertByEmail(ctx context.Context, u *domain.User) error

	// List returns all users ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.User, error)

	// SetSubscribed flips the subscription flag and refreshes the update
	// timestamp. Returns domain.ErrNotFound when id matches no user.
	SetSubscribed(ctx context.Context, id string, subscribed bool) (*domain.User, error)

	// ListSubscribed returns every user with an active subscription.
	ListSubscribed(ctx context.Context) ([]domain.User, error)
}
