package config_test

import (
	"testing"

	"github.com/aeroanalytics/aerowatch/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("aerowatch-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Notifications.Enabled {
		t.Error("notifications must default to disabled")
	}
	if cfg.Notifications.Schedule != "0 0 9 * * *" {
		t.Errorf("unexpected default schedule: %q", cfg.Notifications.Schedule)
	}

	// Default area approximates Vancouver.
	a := cfg.Notifications.Area
	if a.MinLat != 49.0 || a.MaxLat != 49.5 || a.MinLng != -123.5 || a.MaxLng != -123.0 {
		t.Errorf("unexpected default area: %+v", a)
	}

	if cfg.Mail.APIKey != "" {
		t.Error("mail API key must default to empty (no-op sender)")
	}
	if cfg.Mail.From == "" {
		t.Error("expected a default sender address")
	}
}

func TestValidate_RejectsInvertedArea(t *testing.T) {
	cfg, err := config.Load("aerowatch-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.Notifications.Area.MinLat = 50
	cfg.Notifications.Area.MaxLat = 49

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation failure for inverted area")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := config.DatabaseConfig{
		Host: "db", Port: 5432, User: "aw", Password: "secret",
		DBName: "aerowatch", SSLMode: "disable",
	}
	want := "postgres://aw:secret@db:5432/aerowatch?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
