package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a user id does not match any stored record.
var ErrNotFound = errors.New("user not found")

// User is a registered recipient of air-quality notifications. Each user
// monitors one required primary point and an optional secondary point; the
// secondary coordinates are either both present or both absent.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Latitude1    float64   `json:"latitude1"`
	Longitude1   float64   `json:"longitude1"`
	Latitude2    *float64  `json:"latitude2,omitempty"`
	Longitude2   *float64  `json:"longitude2,omitempty"`
	Geometry1    string    `json:"-"`
	Geometry2    *string   `json:"-"`
	IsSubscribed bool      `json:"is_subscribed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PrimaryPoint returns the user's required monitored location.
func (u *User) PrimaryPoint() GeoPoint {
	return GeoPoint{Lat: u.Latitude1, Lng: u.Longitude1}
}

// SecondaryPoint returns the optional second location and whether it is set.
func (u *User) SecondaryPoint() (GeoPoint, bool) {
	if u.Latitude2 == nil || u.Longitude2 == nil {
		return GeoPoint{}, false
	}
	return GeoPoint{Lat: *u.Latitude2, Lng: *u.Longitude2}, true
}

// WithinBounds reports whether either of the user's points falls inside b.
// The two points are evaluated independently: an out-of-box primary point
// does not disqualify a user whose secondary point is inside.
func (u *User) WithinBounds(b Bounds) bool {
	if b.Contains(u.PrimaryPoint()) {
		return true
	}
	if p, ok := u.SecondaryPoint(); ok {
		return b.Contains(p)
	}
	return false
}
