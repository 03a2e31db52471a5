package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
	"github.com/aeroanalytics/aerowatch/internal/core/ports"
)

const userListCacheKey = "users:list"

// UserService handles registration, listing, and subscription toggling.
type UserService struct {
	users   ports.UserRepository
	mailer  ports.Mailer
	events  ports.EventPublisher
	cache   ports.CacheService
	baseURL string
}

// NewUserService creates a new UserService. mailer, events, and cache are
// optional collaborators; a nil value disables the corresponding side effect.
func NewUserService(users ports.UserRepository, mailer ports.Mailer, events ports.EventPublisher, cache ports.CacheService, baseURL string) *UserService {
	return &UserService{users: users, mailer: mailer, events: events, cache: cache, baseURL: baseURL}
}

// RegistrationResult reports the outcome of a registration. The primary
// operation (the upsert) succeeding while the verification email fails is a
// normal, observable state, not an error.
type RegistrationResult struct {
	User             *domain.User
	VerificationSent bool
}

// Register validates the request and upserts the user by email. Repeat
// registration with the same email updates the stored coordinates rather
// than erroring. A subscription-verification email is sent best-effort.
func (s *UserService) Register(ctx context.Context, req domain.RegisterRequest) (*RegistrationResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:      req.Email,
		Latitude1:  *req.Latitude1,
		Longitude1: *req.Longitude1,
		Latitude2:  req.Latitude2,
		Longitude2: req.Longitude2,
		Geometry1:  domain.PointGeometry(*req.Longitude1, *req.Latitude1),
		Geometry2:  domain.OptionalPointGeometry(req.Longitude2, req.Latitude2),
	}

	if err := s.users.UpsertByEmail(ctx, u); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	s.invalidateList(ctx)

	if s.events != nil {
		if err := s.events.PublishUserRegistered(ctx, u); err != nil {
			slog.Warn("publish user.registered failed", "user_id", u.ID, "error", err)
		}
	}

	res := &RegistrationResult{User: u}
	if s.mailer != nil {
		subject, html, text := verificationEmail(u, s.baseURL)
		if err := s.mailer.Send(ctx, u.Email, subject, html, text); err != nil {
			slog.Warn("verification email failed", "user_id", u.ID, "error", err)
		} else {
			res.VerificationSent = true
		}
	}

	return res, nil
}

// List returns all users, newest registration first, with a short
// read-through cache in front of the repository.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, userListCacheKey); err == nil {
			var users []domain.User
			if err := json.Unmarshal(data, &users); err == nil {
				return users, nil
			}
		}
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(users); err == nil {
			_ = s.cache.Set(ctx, userListCacheKey, data, 60)
		}
	}

	return users, nil
}

// SetSubscription flips the subscribed flag for a user. action must be
// exactly "subscribe" or "unsubscribe"; domain.ErrNotFound passes through
// from the repository when the id is unknown.
func (s *UserService) SetSubscription(ctx context.Context, id, action string) (*domain.User, error) {
	if id == "" {
		return nil, &domain.ValidationError{Reason: "user id is required"}
	}
	if action != "subscribe" && action != "unsubscribe" {
		return nil, &domain.ValidationError{Reason: "action must be 'subscribe' or 'unsubscribe'"}
	}

	u, err := s.users.SetSubscribed(ctx, id, action == "subscribe")
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)

	if s.events != nil {
		if err := s.events.PublishSubscriptionChanged(ctx, u); err != nil {
			slog.Warn("publish subscription event failed", "user_id", u.ID, "error", err)
		}
	}

	return u, nil
}

func (s *UserService) invalidateList(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, userListCacheKey)
	}
}
