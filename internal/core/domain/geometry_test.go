package domain_test

import (
	"testing"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
)

func TestPointGeometry_LongitudeFirst(t *testing.T) {
	got := domain.PointGeometry(-123.1207, 49.2827)
	want := "POINT(-123.1207 49.2827)"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPointGeometry_WholeNumbers(t *testing.T) {
	got := domain.PointGeometry(-123, 49)
	if got != "POINT(-123 49)" {
		t.Errorf("unexpected rendering: %q", got)
	}
}

func TestOptionalPointGeometry(t *testing.T) {
	lng, lat := -123.1207, 49.2827

	if g := domain.OptionalPointGeometry(nil, nil); g != nil {
		t.Errorf("expected nil for two missing coordinates, got %q", *g)
	}
	if g := domain.OptionalPointGeometry(&lng, nil); g != nil {
		t.Errorf("expected nil for missing latitude, got %q", *g)
	}
	if g := domain.OptionalPointGeometry(nil, &lat); g != nil {
		t.Errorf("expected nil for missing longitude, got %q", *g)
	}

	g := domain.OptionalPointGeometry(&lng, &lat)
	if g == nil {
		t.Fatal("expected geometry for a complete point")
	}
	if *g != domain.PointGeometry(lng, lat) {
		t.Errorf("expected %q, got %q", domain.PointGeometry(lng, lat), *g)
	}
}
