package geospatial_test

import (
	"math"
	"testing"

	"github.com/aeroanalytics/aerowatch/internal/pkg/geospatial"
)

func TestHaversine(t *testing.T) {
	// Vancouver downtown to Stanley Park, roughly 2.5 km.
	d := geospatial.Haversine(49.2827, -123.1207, 49.3017, -123.1417)
	if d < 2000 || d > 3000 {
		t.Errorf("expected ~2.5km, got %.0fm", d)
	}

	if z := geospatial.Haversine(49.2, -123.2, 49.2, -123.2); math.Abs(z) > 0.001 {
		t.Errorf("distance to self should be zero, got %v", z)
	}
}
