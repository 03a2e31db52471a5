package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
)

// UserRepo implements ports.UserRepository with pgx.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `
	id, email, latitude1, longitude1, latitude2, longitude2,
	is_subscribed, created_at, updated_at`

// UpsertByEmail inserts the user, or refreshes coordinates and geometry
// when the email already exists. The stored row is written back into u.
func (r *UserRepo) UpsertByEmail(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO users (id, email, latitude1, longitude1, latitude2, longitude2,
		                   location1, location2, is_subscribed)
		VALUES ($1, $2, $3, $4, $5, $6,
		        ST_GeogFromText($7), ST_GeogFromText($8), $9)
		ON CONFLICT (email) DO UPDATE
		SET latitude1 = EXCLUDED.latitude1,
		    longitude1 = EXCLUDED.longitude1,
		    latitude2 = EXCLUDED.latitude2,
		    longitude2 = EXCLUDED.longitude2,
		    location1 = EXCLUDED.location1,
		    location2 = EXCLUDED.location2,
		    updated_at = now()
		RETURNING `+userColumns,
		u.ID, u.Email, u.Latitude1, u.Longitude1, u.Latitude2, u.Longitude2,
		u.Geometry1, u.Geometry2, u.IsSubscribed,
	).Scan(
		&u.ID, &u.Email, &u.Latitude1, &u.Longitude1, &u.Latitude2, &u.Longitude2,
		&u.IsSubscribed, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	u.Geometry1 = domain.PointGeometry(u.Longitude1, u.Latitude1)
	u.Geometry2 = domain.OptionalPointGeometry(u.Longitude2, u.Latitude2)
	return nil
}

// List returns all users ordered by creation time, newest first.
func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// SetSubscribed flips the subscription flag. Returns domain.ErrNotFound
// when the id matches no user.
func (r *UserRepo) SetSubscribed(ctx context.Context, id string, subscribed bool) (*domain.User, error) {
	var u domain.User
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET is_subscribed = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, subscribed,
	).Scan(
		&u.ID, &u.Email, &u.Latitude1, &u.Longitude1, &u.Latitude2, &u.Longitude2,
		&u.IsSubscribed, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("set subscribed: %w", err)
	}

	u.Geometry1 = domain.PointGeometry(u.Longitude1, u.Latitude1)
	u.Geometry2 = domain.OptionalPointGeometry(u.Longitude2, u.Latitude2)
	return &u, nil
}

// ListSubscribed returns every user with an active subscription.
func (r *UserRepo) ListSubscribed(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE is_subscribed
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list subscribed users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]domain.User, error) {
	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.Latitude1, &u.Longitude1, &u.Latitude2, &u.Longitude2,
			&u.IsSubscribed, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		u.Geometry1 = domain.PointGeometry(u.Longitude1, u.Latitude1)
		u.Geometry2 = domain.OptionalPointGeometry(u.Longitude2, u.Latitude2)
		users = append(users, u)
	}
	return users, rows.Err()
}
