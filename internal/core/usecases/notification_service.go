package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
	"github.com/aeroanalytics/aerowatch/internal/core/ports"
)

// NotificationConfig controls the scheduled sweep.
type NotificationConfig struct {
	Enabled bool
	Area    domain.Bounds
	BaseURL string
}

// SweepReport describes one sweep invocation. Per-user send failures are
// counted here instead of surfacing as errors; only a failure to build the
// recipient set at all fails the invocation.
type SweepReport struct {
	Skipped bool `json:"skipped"`
	Matched int  `json:"matched"`
	Sent    int  `json:"sent"`
	Failed  int  `json:"failed"`
}

// NotificationService runs the area-membership notification sweep.
type NotificationService struct {
	users  ports.UserRepository
	mailer ports.Mailer
	events ports.EventPublisher
	cfg    NotificationConfig
	now    func() time.Time
}

// NewNotificationService creates a new NotificationService. events may be nil.
func NewNotificationService(users ports.UserRepository, mailer ports.Mailer, events ports.EventPublisher, cfg NotificationConfig) *NotificationService {
	return &NotificationService{users: users, mailer: mailer, events: events, cfg: cfg, now: time.Now}
}

// Sweep selects subscribed users with a monitored point inside the
// configured area and emails each one. Users are processed strictly
// sequentially; one recipient's failure never aborts the rest.
func (s *NotificationService) Sweep(ctx context.Context) (*SweepReport, error) {
	if !s.cfg.Enabled {
		slog.Info("notifications disabled, skipping sweep")
		return &SweepReport{Skipped: true}, nil
	}

	slog.Info("notification sweep started",
		"min_lat", s.cfg.Area.MinLat, "max_lat", s.cfg.Area.MaxLat,
		"min_lng", s.cfg.Area.MinLng, "max_lng", s.cfg.Area.MaxLng)

	subscribed, err := s.users.ListSubscribed(ctx)
	if err != nil {
		// Without a recipient set the whole invocation is meaningless;
		// let the scheduler see the failure.
		return nil, fmt.Errorf("list subscribed users: %w", err)
	}

	var matched []domain.User
	for _, u := range subscribed {
		if u.WithinBounds(s.cfg.Area) {
			matched = append(matched, u)
		}
	}

	report := &SweepReport{Matched: len(matched)}
	if len(matched) == 0 {
		slog.Info("no subscribed users in the notification area")
		return report, nil
	}

	for i := range matched {
		u := &matched[i]
		if err := s.notify(ctx, u); err != nil {
			slog.Error("notification failed", "user_id", u.ID, "error", err)
			report.Failed++
			continue
		}
		slog.Info("notification sent", "user_id", u.ID, "email", u.Email)
		report.Sent++
	}

	slog.Info("notification sweep completed",
		"matched", report.Matched, "sent", report.Sent, "failed", report.Failed)
	return report, nil
}

func (s *NotificationService) notify(ctx context.Context, u *domain.User) error {
	subject, html, text := areaNotificationEmail(u, s.cfg.Area, s.cfg.BaseURL, s.now())
	if err := s.mailer.Send(ctx, u.Email, subject, html, text); err != nil {
		return err
	}
	if s.events != nil {
		if err := s.events.PublishNotificationSent(ctx, u); err != nil {
			slog.Warn("publish notify.sent failed", "user_id", u.ID, "error", err)
		}
	}
	return nil
}
