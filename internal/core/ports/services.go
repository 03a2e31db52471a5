package ports

import (
	"context"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
)

// Mailer delivers a single email. Implementations may degrade to a no-op
// (e.g. when no provider credentials are configured); that is not an error.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, u *domain.User) error
	PublishSubscriptionChanged(ctx context.Context, u *domain.User) error
	PublishNotificationSent(ctx context.Context, u *domain.User) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
