package middleware

import (
	"fmt"
	"strings"

	"github.com/NicolasBonnefont/15-da-piettra/src/core/config"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/helpers"
	"github.com/NicolasBonnefont/15-da-piettra/src/core/models"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionKey = "session"

// Protected rejects requests without a valid JWT and stores the resolved
// SessionUser in the request locals.
func Protected() fiber.Handler {
	jwtSecret := config.Config("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET is not set in the environment variables") // Panic to prevent startup
	}

	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(jwtSecret)},
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token := c.Locals("user").(*jwt.Token)
			session, err := sessionFromClaims(token.Claims.(jwt.MapClaims))
			if err != nil {
				return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid session token", err)
			}
			c.Locals(sessionKey, session)
			return c.Next()
		},
	})
}

// OptionalSession resolves the SessionUser when a valid bearer token is
// present but lets anonymous requests through. Listing endpoints use it so
// unauthenticated visitors still get data (with liked_by_me=false and empty
// notifications).
func OptionalSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if strings.HasPrefix(authHeader, "Bearer ") {
			if session, err := parseSessionToken(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Locals(sessionKey, session)
			}
		}
		return c.Next()
	}
}

// SessionFrom returns the principal resolved by Protected or
// OptionalSession, if any.
func SessionFrom(c *fiber.Ctx) (models.SessionUser, bool) {
	session, ok := c.Locals(sessionKey).(models.SessionUser)
	return session, ok
}

func parseSessionToken(tokenString string) (models.SessionUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return models.SessionUser{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.SessionUser{}, fmt.Errorf("invalid token claims")
	}
	return sessionFromClaims(claims)
}

func sessionFromClaims(claims jwt.MapClaims) (models.SessionUser, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return models.SessionUser{}, fmt.Errorf("user id missing in token")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return models.SessionUser{}, fmt.Errorf("invalid user id in token: %w", err)
	}
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)
	return models.SessionUser{ID: userID, Name: name, Image: picture}, nil
}

// jwtError handles JWT-related errors
func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return helpers.HandleError(c, fiber.StatusBadRequest, "Missing or malformed JWT", err)
	}
	return helpers.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired JWT", err)
}
