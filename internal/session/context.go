package session

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUnauthenticated is returned by services before any database call when an
// operation requires a user and none is present.
var ErrUnauthenticated = errors.New("not authenticated")

// DayFormat is the calendar-day key used by all daily entities.
const DayFormat = "2006-01-02"

// Today returns the server's current date in UTC.
func Today() string {
	return time.Now().UTC().Format(DayFormat)
}

// UserID extracts the authenticated user's UUID from JWT claims in context.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}
