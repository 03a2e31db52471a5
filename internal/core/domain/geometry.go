package domain

import (
	"fmt"
	"strconv"
)

// PointGeometry renders a coordinate pair as WKT point text, longitude
// first. Spatial-query consumers (PostGIS ST_GeogFromText among them) expect
// the lon-lat ordering, so it must not be "fixed" to lat-lon.
func PointGeometry(lng, lat float64) string {
	return fmt.Sprintf("POINT(%s %s)",
		strconv.FormatFloat(lng, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64))
}

// OptionalPointGeometry returns the WKT text for an optional point, or nil
// unless both coordinates are present.
func OptionalPointGeometry(lng, lat *float64) *string {
	if lng == nil || lat == nil {
		return nil
	}
	s := PointGeometry(*lng, *lat)
	return &s
}
