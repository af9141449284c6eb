package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/constants"
)

// SessionMiddleware rejects requests without a valid session cookie and
// stores the claims in locals for downstream handlers.
func SessionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(CookieName)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, constants.ErrLoginNeeded)
		}

		claims, err := ParseSessionToken(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, constants.ErrLoginNeeded)
		}

		c.Locals("session", claims)
		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// AdminOnlyMiddleware sits behind SessionMiddleware.
func AdminOnlyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Role(c) != constants.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, constants.ErrAdminOnly)
		}
		return c.Next()
	}
}

// NonGuestMiddleware blocks guest sessions from master-data writes.
func NonGuestMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Role(c) == constants.RoleGuest {
			return fiber.NewError(fiber.StatusForbidden, constants.ErrGuestNoWrite)
		}
		return c.Next()
	}
}

/* ===================== LOCALS ACCESSORS ===================== */

func Session(c *fiber.Ctx) *SessionClaims {
	if claims, ok := c.Locals("session").(*SessionClaims); ok {
		return claims
	}
	return nil
}

func UserID(c *fiber.Ctx) string {
	if s := Session(c); s != nil {
		return s.UserID
	}
	return ""
}

func Role(c *fiber.Ctx) string {
	if s := Session(c); s != nil {
		return s.Role
	}
	return ""
}

// GuestProjectID returns the scoped site for guest sessions, "" otherwise.
func GuestProjectID(c *fiber.Ctx) string {
	s := Session(c)
	if s == nil || s.Role != "guest" || s.GuestProjectID == nil {
		return ""
	}
	return *s.GuestProjectID
}

func GuestToken(c *fiber.Ctx) string {
	s := Session(c)
	if s == nil || s.GuestToken == nil {
		return ""
	}
	return *s.GuestToken
}
