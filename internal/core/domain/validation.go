package domain

import "regexp"

// Deliberately loose: local@domain with a dot somewhere in the domain and no
// whitespace. Full RFC 5322 parsing buys nothing for a notification list.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError is a rejected-input error; handlers map it to a 400.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(reason string) error { return &ValidationError{Reason: reason} }

// ValidEmail reports whether text looks like an email address.
func ValidEmail(text string) bool {
	return emailPattern.MatchString(text)
}

// ValidCoordinates reports whether lat/lng fall in the WGS 84 value ranges.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// RegisterRequest is the registration payload. Coordinate fields are
// pointers so a missing field is distinguishable from a literal zero.
type RegisterRequest struct {
	Email      string   `json:"email"`
	Latitude1  *float64 `json:"latitude1"`
	Longitude1 *float64 `json:"longitude1"`
	Latitude2  *float64 `json:"latitude2"`
	Longitude2 *float64 `json:"longitude2"`
}

// Validate checks the request in a fixed order: required fields, email
// format, primary point range, secondary point pairing and range. The first
// failing check wins.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" || r.Latitude1 == nil || r.Longitude1 == nil {
		return invalid("email, latitude1 and longitude1 are required")
	}
	if !ValidEmail(r.Email) {
		return invalid("invalid email format")
	}
	if !ValidCoordinates(*r.Latitude1, *r.Longitude1) {
		return invalid("invalid latitude or longitude values")
	}
	if (r.Latitude2 == nil) != (r.Longitude2 == nil) {
		return invalid("latitude2 and longitude2 must be provided together")
	}
	if r.Latitude2 != nil && !ValidCoordinates(*r.Latitude2, *r.Longitude2) {
		return invalid("invalid latitude2 or longitude2 values")
	}
	return nil
}
