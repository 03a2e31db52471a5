package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
	"github.com/aeroanalytics/aerowatch/internal/core/usecases"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	upsertFn        func(ctx context.Context, u *domain.User) error
	listFn          func(ctx context.Context) ([]domain.User, error)
	setSubscribedFn func(ctx context.Context, id string, subscribed bool) (*domain.User, error)
	listSubFn       func(ctx context.Context) ([]domain.User, error)

	upsertCalls int
}

func (m *mockUserRepo) UpsertByEmail(ctx context.Context, u *domain.User) error {
	m.upsertCalls++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, u)
	}
	u.ID = "generated-id"
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	return nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockUserRepo) SetSubscribed(ctx context.Context, id string, subscribed bool) (*domain.User, error) {
	if m.setSubscribedFn != nil {
		return m.setSubscribedFn(ctx, id, subscribed)
	}
	return &domain.User{ID: id, IsSubscribed: subscribed}, nil
}

func (m *mockUserRepo) ListSubscribed(ctx context.Context) ([]domain.User, error) {
	if m.listSubFn != nil {
		return m.listSubFn(ctx)
	}
	return nil, nil
}

// --- Mock Mailer ---

type sentMail struct {
	to      string
	subject string
	html    string
	text    string
}

type mockMailer struct {
	sendFn func(ctx context.Context, to string) error
	sent   []sentMail
}

func (m *mockMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, to); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return nil
}

// --- Mock EventPublisher ---

type mockEvents struct {
	registered    int
	subscriptions int
	notified      int
}

func (m *mockEvents) PublishUserRegistered(ctx context.Context, u *domain.User) error {
	m.registered++
	return nil
}

func (m *mockEvents) PublishSubscriptionChanged(ctx context.Context, u *domain.User) error {
	m.subscriptions++
	return nil
}

func (m *mockEvents) PublishNotificationSent(ctx context.Context, u *domain.User) error {
	m.notified++
	return nil
}

func f(v float64) *float64 { return &v }

func asValidation(err error, target **domain.ValidationError) bool {
	return errors.As(err, target)
}

const testBaseURL = "https://aerowatch.example.com"

// --- Register ---

func TestUserService_Register_Success(t *testing.T) {
	repo := &mockUserRepo{}
	mailer := &mockMailer{}
	events := &mockEvents{}
	svc := usecases.NewUserService(repo, mailer, events, nil, testBaseURL)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:      "maia@example.com",
		Latitude1:  f(49.2827),
		Longitude1: f(-123.1207),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.User.ID == "" {
		t.Error("expected the stored id to be set")
	}
	if res.User.Geometry1 != "POINT(-123.1207 49.2827)" {
		t.Errorf("unexpected geometry: %q", res.User.Geometry1)
	}
	if res.User.Geometry2 != nil {
		t.Error("expected no secondary geometry")
	}
	if !res.VerificationSent {
		t.Error("expected verification email to be sent")
	}
	if len(mailer.sent) != 1 || mailer.sent[0].to != "maia@example.com" {
		t.Fatalf("unexpected sent mail: %+v", mailer.sent)
	}
	if events.registered != 1 {
		t.Errorf("expected 1 registered event, got %d", events.registered)
	}
}

func TestUserService_Register_ValidationFailureSkipsPersistence(t *testing.T) {
	repo := &mockUserRepo{}
	svc := usecases.NewUserService(repo, &mockMailer{}, nil, nil, testBaseURL)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Latitude1:  f(49.2),
		Longitude1: f(-123.2),
	})
	var verr *domain.ValidationError
	if err == nil || !asValidation(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.upsertCalls != 0 {
		t.Errorf("expected no upsert, got %d", repo.upsertCalls)
	}
}

func TestUserService_Register_OutOfRangeLatitude(t *testing.T) {
	svc := usecases.NewUserService(&mockUserRepo{}, nil, nil, nil, testBaseURL)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:      "maia@example.com",
		Latitude1:  f(91),
		Longitude1: f(-123.2),
	})
	var verr *domain.ValidationError
	if err == nil || !asValidation(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Reason != "invalid latitude or longitude values" {
		t.Errorf("unexpected reason: %q", verr.Reason)
	}
}

func TestUserService_Register_MailFailureDoesNotFailRegistration(t *testing.T) {
	mailer := &mockMailer{
		sendFn: func(ctx context.Context, to string) error {
			return fmt.Errorf("provider down")
		},
	}
	svc := usecases.NewUserService(&mockUserRepo{}, mailer, nil, nil, testBaseURL)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:      "maia@example.com",
		Latitude1:  f(49.2),
		Longitude1: f(-123.2),
	})
	if err != nil {
		t.Fatalf("registration should survive a mail failure, got %v", err)
	}
	if res.VerificationSent {
		t.Error("expected VerificationSent=false after mail failure")
	}
}

func TestUserService_Register_NoMailer(t *testing.T) {
	svc := usecases.NewUserService(&mockUserRepo{}, nil, nil, nil, testBaseURL)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Email:      "maia@example.com",
		Latitude1:  f(49.2),
		Longitude1: f(-123.2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.VerificationSent {
		t.Error("expected VerificationSent=false without a mailer")
	}
}

// --- SetSubscription ---

func TestUserService_SetSubscription_InvalidAction(t *testing.T) {
	svc := usecases.NewUserService(&mockUserRepo{}, nil, nil, nil, testBaseURL)

	_, err := svc.SetSubscription(context.Background(), "some-id", "delete")
	var verr *domain.ValidationError
	if err == nil || !asValidation(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUserService_SetSubscription_NotFoundPassesThrough(t *testing.T) {
	repo := &mockUserRepo{
		setSubscribedFn: func(ctx context.Context, id string, subscribed bool) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := usecases.NewUserService(repo, nil, nil, nil, testBaseURL)

	_, err := svc.SetSubscription(context.Background(), "missing", "subscribe")
	if err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserService_SetSubscription_Toggle(t *testing.T) {
	repo := &mockUserRepo{
		setSubscribedFn: func(ctx context.Context, id string, subscribed bool) (*domain.User, error) {
			return &domain.User{ID: id, Email: "maia@example.com", IsSubscribed: subscribed, UpdatedAt: time.Now()}, nil
		},
	}
	events := &mockEvents{}
	svc := usecases.NewUserService(repo, nil, events, nil, testBaseURL)

	u, err := svc.SetSubscription(context.Background(), "u1", "unsubscribe")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.IsSubscribed {
		t.Error("expected subscription off after unsubscribe")
	}
	if events.subscriptions != 1 {
		t.Errorf("expected 1 subscription event, got %d", events.subscriptions)
	}
}
