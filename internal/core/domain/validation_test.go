package domain_test

import (
	"errors"
	"testing"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
)

func f(v float64) *float64 { return &v }

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "maia.sanz@example.org", "x+tag@sub.domain.io"}
	for _, e := range valid {
		if !domain.ValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{"", "plainaddress", "no@dot", "two words@x.com", "a@b c.com", "@missing.local"}
	for _, e := range invalid {
		if domain.ValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}

func TestValidCoordinates(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, true},
		{90, 180, true},
		{-90, -180, true},
		{49.2827, -123.1207, true},
		{90.0001, 0, false},
		{-91, 0, false},
		{0, 180.5, false},
		{0, -181, false},
	}
	for _, c := range cases {
		if got := domain.ValidCoordinates(c.lat, c.lng); got != c.want {
			t.Errorf("ValidCoordinates(%v, %v) = %v, want %v", c.lat, c.lng, got, c.want)
		}
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	cases := []struct {
		name    string
		req     domain.RegisterRequest
		wantErr string
	}{
		{
			name:    "missing email",
			req:     domain.RegisterRequest{Latitude1: f(49.2), Longitude1: f(-123.1)},
			wantErr: "email, latitude1 and longitude1 are required",
		},
		{
			name:    "missing primary point",
			req:     domain.RegisterRequest{Email: "a@b.co"},
			wantErr: "email, latitude1 and longitude1 are required",
		},
		{
			name:    "bad email",
			req:     domain.RegisterRequest{Email: "nope", Latitude1: f(49.2), Longitude1: f(-123.1)},
			wantErr: "invalid email format",
		},
		{
			name:    "latitude out of range",
			req:     domain.RegisterRequest{Email: "a@b.co", Latitude1: f(91), Longitude1: f(-123.1)},
			wantErr: "invalid latitude or longitude values",
		},
		{
			name:    "half a secondary point",
			req:     domain.RegisterRequest{Email: "a@b.co", Latitude1: f(49.2), Longitude1: f(-123.1), Latitude2: f(48)},
			wantErr: "latitude2 and longitude2 must be provided together",
		},
		{
			name:    "secondary out of range",
			req:     domain.RegisterRequest{Email: "a@b.co", Latitude1: f(49.2), Longitude1: f(-123.1), Latitude2: f(48), Longitude2: f(200)},
			wantErr: "invalid latitude2 or longitude2 values",
		},
		{
			name: "valid with secondary",
			req:  domain.RegisterRequest{Email: "a@b.co", Latitude1: f(49.2), Longitude1: f(-123.1), Latitude2: f(48.4), Longitude2: f(-123.3)},
		},
		{
			name: "valid without secondary",
			req:  domain.RegisterRequest{Email: "a@b.co", Latitude1: f(49.2), Longitude1: f(-123.1)},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if c.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q, got nil", c.wantErr)
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Reason != c.wantErr {
				t.Errorf("expected %q, got %q", c.wantErr, verr.Reason)
			}
		})
	}
}
