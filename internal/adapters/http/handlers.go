package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/aeroanalytics/aerowatch/internal/core/domain"
	"github.com/aeroanalytics/aerowatch/internal/pkg/metrics"
)

// RegisterUserHandler registers a user (or updates an existing registration
// with the same email) with one or two watched locations.
func RegisterUserHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req domain.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		res, err := deps.Users.Register(c.UserContext(), req)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return errBadRequest(c, verr.Reason)
			}
			return errInternal(c, err.Error())
		}

		metrics.UsersRegistered.Inc()

		return c.JSON(fiber.Map{
			"user":              res.User,
			"verification_sent": res.VerificationSent,
		})
	}
}

// ListUsersHandler returns all registered users, newest first.
func ListUsersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := deps.Users.List(c.UserContext())
		if err != nil {
			return errInternal(c, err.Error())
		}

		// Apply offset/limit pagination on the full list
		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		total := len(users)
		if offset >= total {
			users = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			users = users[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: users, Pagination: pg})
	}
}

// SubscriptionHandler toggles the subscription flag for a user. The action
// path segment must be exactly "subscribe" or "unsubscribe"; the route
// doubles as the link target embedded in notification emails.
func SubscriptionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		action := c.Params("action")

		u, err := deps.Users.SetSubscription(c.UserContext(), id, action)
		if err != nil {
			var verr *domain.ValidationError
			if errors.As(err, &verr) {
				return errBadRequest(c, verr.Reason)
			}
			if errors.Is(err, domain.ErrNotFound) {
				return errNotFound(c, "user not found")
			}
			return errInternal(c, err.Error())
		}

		metrics.SubscriptionToggles.WithLabelValues(action).Inc()

		verb := "subscribed"
		if !u.IsSubscribed {
			verb = "unsubscribed"
		}

		return c.JSON(fiber.Map{
			"id":            u.ID,
			"email":         u.Email,
			"is_subscribed": u.IsSubscribed,
			"message":       fmt.Sprintf("Successfully %s", verb),
			"updated_at":    u.UpdatedAt,
		})
	}
}

// AirQualityHandler returns the air-quality report for a location. The
// latitude/longitude query parameters are optional and currently only echo
// into the provider call; the payload is a fixed sample.
func AirQualityHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("latitude", 49.2827)
		lng := c.QueryFloat("longitude", -123.1207)

		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			return errBadRequest(c, "invalid latitude or longitude values")
		}

		report := deps.AirQuality.Report(lat, lng)

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(report)
	}
}
