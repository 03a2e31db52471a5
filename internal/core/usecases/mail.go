package usecases

import (
	"fmt"
	"strings"
	"time"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
	"github.com/aeroanalytics/aerowatch/internal/pkg/geospatial"
)

// verificationEmail composes the welcome email sent after registration. The
// subscribe link doubles as email verification: following it flips the
// user's subscription flag on.
func verificationEmail(u *domain.User, baseURL string) (subject, html, text string) {
	subscribeURL := fmt.Sprintf("%s/v1/users/%s/subscription/subscribe", baseURL, u.ID)

	subject = "Welcome to AeroWatch - Verify Your Email"

	var h strings.Builder
	h.WriteString("<h2>Welcome to AeroWatch!</h2>")
	h.WriteString("<p>Thank you for registering. Your account has been created successfully.</p>")
	h.WriteString("<p>Please verify your email address to start receiving air-quality notifications for your monitored locations.</p>")
	h.WriteString(fmt.Sprintf(`<p><a href="%s">Verify email address</a></p>`, subscribeURL))
	h.WriteString("<hr><p><small>If you didn't create this account, please ignore this email.</small></p>")
	html = h.String()

	text = fmt.Sprintf(
		"Welcome to AeroWatch!\n\nThank you for registering. Your account has been created successfully.\n\nVerify your email to start receiving notifications: %s\n\nIf you didn't create this account, please ignore this email.\n",
		subscribeURL)
	return subject, html, text
}

// areaNotificationEmail composes the periodic air-quality notification. It
// lists both monitored locations, the distance from the monitored area's
// centre, and an unsubscribe link.
func areaNotificationEmail(u *domain.User, area domain.Bounds, baseURL string, now time.Time) (subject, html, text string) {
	unsubscribeURL := fmt.Sprintf("%s/v1/users/%s/subscription/unsubscribe", baseURL, u.ID)
	center := area.Center()
	distanceKm := geospatial.Haversine(u.Latitude1, u.Longitude1, center.Lat, center.Lng) / 1000

	subject = "AeroWatch Air Quality Notification"

	var h strings.Builder
	h.WriteString("<h2>AeroWatch Update</h2>")
	h.WriteString("<p>Hello!</p><p>This is your air-quality notification for the area you're monitoring.</p>")
	h.WriteString("<p><strong>Your locations:</strong></p><ul>")
	h.WriteString(fmt.Sprintf("<li>Primary: %g, %g (%.1f km from the area centre)</li>", u.Latitude1, u.Longitude1, distanceKm))
	if p, ok := u.SecondaryPoint(); ok {
		h.WriteString(fmt.Sprintf("<li>Secondary: %g, %g</li>", p.Lat, p.Lng))
	}
	h.WriteString("</ul>")
	h.WriteString(fmt.Sprintf("<p>Notification sent at: %s</p>", now.Format(time.RFC1123)))
	h.WriteString(fmt.Sprintf(`<hr><p><small>Don't want these notifications? <a href="%s">Unsubscribe here</a></small></p>`, unsubscribeURL))
	html = h.String()

	var t strings.Builder
	t.WriteString("AeroWatch Update\n\nHello!\n\nThis is your air-quality notification for the area you're monitoring.\n\nYour locations:\n")
	t.WriteString(fmt.Sprintf("- Primary: %g, %g (%.1f km from the area centre)\n", u.Latitude1, u.Longitude1, distanceKm))
	if p, ok := u.SecondaryPoint(); ok {
		t.WriteString(fmt.Sprintf("- Secondary: %g, %g\n", p.Lat, p.Lng))
	}
	t.WriteString(fmt.Sprintf("\nNotification sent at: %s\n\nUnsubscribe here: %s\n", now.Format(time.RFC1123), unsubscribeURL))
	text = t.String()

	return subject, html, text
}
