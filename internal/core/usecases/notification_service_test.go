package usecases_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
	"github.com/aeroanalytics/aerowatch/internal/core/usecases"
)

var testArea = domain.Bounds{MinLat: 49.0, MaxLat: 49.5, MinLng: -123.5, MaxLng: -123.0}

func sweepConfig(enabled bool) usecases.NotificationConfig {
	return usecases.NotificationConfig{Enabled: enabled, Area: testArea, BaseURL: testBaseURL}
}

func subscribedAt(id string, lat, lng float64) domain.User {
	return domain.User{ID: id, Email: id + "@example.com", Latitude1: lat, Longitude1: lng, IsSubscribed: true}
}

func TestSweep_Disabled_NoCollaboratorCalls(t *testing.T) {
	repoCalled := false
	repo := &mockUserRepo{
		listSubFn: func(ctx context.Context) ([]domain.User, error) {
			repoCalled = true
			return nil, nil
		},
	}
	mailer := &mockMailer{}
	svc := usecases.NewNotificationService(repo, mailer, nil, sweepConfig(false))

	report, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Skipped {
		t.Error("expected report.Skipped")
	}
	if repoCalled {
		t.Error("disabled sweep must not query the repository")
	}
	if len(mailer.sent) != 0 {
		t.Error("disabled sweep must not send mail")
	}
}

func TestSweep_SelectsByAreaMembership(t *testing.T) {
	outLat, outLng := 10.0, 10.0
	secondaryIn := subscribedAt("secondary-in", outLat, outLng)
	inLat, inLng := 49.3, -123.1
	secondaryIn.Latitude2, secondaryIn.Longitude2 = &inLat, &inLng

	repo := &mockUserRepo{
		listSubFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				subscribedAt("primary-in", 49.2, -123.2),
				subscribedAt("both-out", outLat, outLng),
				secondaryIn,
			}, nil
		},
	}
	mailer := &mockMailer{}
	svc := usecases.NewNotificationService(repo, mailer, nil, sweepConfig(true))

	report, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Matched != 2 || report.Sent != 2 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	recipients := map[string]bool{}
	for _, m := range mailer.sent {
		recipients[m.to] = true
	}
	if !recipients["primary-in@example.com"] || !recipients["secondary-in@example.com"] {
		t.Errorf("unexpected recipients: %v", recipients)
	}
	if recipients["both-out@example.com"] {
		t.Error("user with both points outside the box must not be notified")
	}
}

func TestSweep_UnsubscribedUsersNeverSelected(t *testing.T) {
	// The repository contract only returns subscribed users; mimic a repo
	// that honors it and assert no mail goes to anyone else.
	repo := &mockUserRepo{
		listSubFn: func(ctx context.Context) ([]domain.User, error) {
			all := []domain.User{
				subscribedAt("subscribed", 49.2, -123.2),
				{ID: "lurker", Email: "lurker@example.com", Latitude1: 49.2, Longitude1: -123.2},
			}
			var subs []domain.User
			for _, u := range all {
				if u.IsSubscribed {
					subs = append(subs, u)
				}
			}
			return subs, nil
		},
	}
	mailer := &mockMailer{}
	svc := usecases.NewNotificationService(repo, mailer, nil, sweepConfig(true))

	if _, err := svc.Sweep(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0].to != "subscribed@example.com" {
		t.Fatalf("unexpected sends: %+v", mailer.sent)
	}
}

func TestSweep_QueryFailureIsFatal(t *testing.T) {
	repo := &mockUserRepo{
		listSubFn: func(ctx context.Context) ([]domain.User, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}
	svc := usecases.NewNotificationService(repo, &mockMailer{}, nil, sweepConfig(true))

	if _, err := svc.Sweep(context.Background()); err == nil {
		t.Fatal("expected the sweep to fail when the selection query fails")
	}
}

func TestSweep_PerUserFailureIsolated(t *testing.T) {
	repo := &mockUserRepo{
		listSubFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				subscribedAt("first", 49.1, -123.1),
				subscribedAt("second", 49.2, -123.2),
				subscribedAt("third", 49.3, -123.3),
			}, nil
		},
	}
	mailer := &mockMailer{
		sendFn: func(ctx context.Context, to string) error {
			if to == "second@example.com" {
				return fmt.Errorf("mailbox unavailable")
			}
			return nil
		},
	}
	events := &mockEvents{}
	svc := usecases.NewNotificationService(repo, mailer, events, sweepConfig(true))

	report, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("one recipient failing must not fail the sweep: %v", err)
	}
	if report.Matched != 3 || report.Sent != 2 || report.Failed != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	// The user after the failing one still got an attempted send.
	if len(mailer.sent) != 2 || mailer.sent[1].to != "third@example.com" {
		t.Fatalf("expected third user to still receive mail, got %+v", mailer.sent)
	}
	if events.notified != 2 {
		t.Errorf("expected 2 notify events, got %d", events.notified)
	}
}

func TestSweep_EmptySelection_NoSends(t *testing.T) {
	repo := &mockUserRepo{
		listSubFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{subscribedAt("far-away", 10, 10)}, nil
		},
	}
	mailer := &mockMailer{}
	svc := usecases.NewNotificationService(repo, mailer, nil, sweepConfig(true))

	report, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Matched != 0 || len(mailer.sent) != 0 {
		t.Fatalf("expected no matches and no sends, got %+v", report)
	}
}

func TestSweep_EmailContainsLocationsAndUnsubscribeLink(t *testing.T) {
	u := subscribedAt("maia", 49.2, -123.2)
	lat2, lng2 := 49.3, -123.4
	u.ID = "user-42"
	u.Latitude2, u.Longitude2 = &lat2, &lng2

	repo := &mockUserRepo{
		listSubFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{u}, nil
		},
	}
	mailer := &mockMailer{}
	svc := usecases.NewNotificationService(repo, mailer, nil, sweepConfig(true))

	if _, err := svc.Sweep(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mailer.sent))
	}

	body := mailer.sent[0].text
	for _, want := range []string{
		"49.2, -123.2",
		"49.3, -123.4",
		testBaseURL + "/v1/users/user-42/subscription/unsubscribe",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q\nbody: %s", want, body)
		}
	}
}
