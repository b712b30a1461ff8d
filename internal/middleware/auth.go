package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/zacharyr0th/patron-gate/internal/config"
)

const (
	WalletKey = "wallet"
	UserIDKey = "user_id"

	SessionCookie = "patron_session"
)

type sessionClaims struct {
	Wallet string `json:"wallet"`
	jwt.RegisteredClaims
}

// IssueToken creates a signed session token after a successful wallet login.
func IssueToken(cfg *config.Config, userID, wallet string) (string, error) {
	claims := sessionClaims{
		Wallet: wallet,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(config.AuthTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Server.JWTSecret))
}

func parseToken(cfg *config.Config, tokenString string) (*sessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.Server.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func tokenFromRequest(c *fiber.Ctx) string {
	if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Cookies(SessionCookie)
}

// RequireAuth rejects requests without a valid session token.
func RequireAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}

		claims, err := parseToken(cfg, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session",
			})
		}

		c.Locals(WalletKey, claims.Wallet)
		c.Locals(UserIDKey, claims.Subject)

		return c.Next()
	}
}

// OptionalAuth resolves the viewer when a token is present but lets anonymous
// requests through; gated endpoints decide access themselves.
func OptionalAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := parseToken(cfg, tokenString); err == nil {
				c.Locals(WalletKey, claims.Wallet)
				c.Locals(UserIDKey, claims.Subject)
			}
		}
		return c.Next()
	}
}

func GetWallet(c *fiber.Ctx) string {
	wallet, ok := c.Locals(WalletKey).(string)
	if !ok {
		return ""
	}
	return wallet
}

func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
