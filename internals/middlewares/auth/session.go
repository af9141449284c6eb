package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/configs"
)

const (
	CookieName = "session"
	SessionTTL = 30 * 24 * time.Hour
)

// SessionClaims is the signed cookie payload. Guest fields are only set
// for guest-link logins.
type SessionClaims struct {
	UserID         string  `json:"user_id"`
	Username       *string `json:"username"`
	Role           string  `json:"role"`
	GuestProjectID *string `json:"guest_project_id,omitempty"`
	GuestToken     *string `json:"guest_token,omitempty"`
	GuestCanEdit   bool    `json:"guest_can_edit,omitempty"`
	jwt.RegisteredClaims
}

func IssueSessionCookie(c *fiber.Ctx, claims SessionClaims) error {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(SessionTTL))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString([]byte(configs.SessionSecret))
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    signed,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   configs.GetEnv("APP_ENV") == "production",
		Path:     "/",
		MaxAge:   int(SessionTTL.Seconds()),
	})
	return nil
}

func ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// ParseSessionToken verifies signature and expiry of a raw cookie value.
func ParseSessionToken(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(configs.SessionSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
