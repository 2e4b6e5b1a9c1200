package utils

import (
	"errors"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// AdminCookieName is the cookie carrying the admin token.
const AdminCookieName = "admin_token"

const adminTokenLifetime = 24 * time.Hour

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateAdminToken signs a 24h HS256 token whose subject is the admin
// email.
func GenerateAdminToken(email string) (string, error) {
	now := time.Now()
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(adminTokenLifetime)),
	})

	token, err := claims.SignedString(jwtSecret())
	if err != nil {
		return "", err
	}

	return token, nil
}

// ParseAdminToken verifies signature and expiry and returns the admin email.
func ParseAdminToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", fiber.ErrUnauthorized
	}

	return claims.Subject, nil
}

// SetAdminCookie attaches the token as an HTTP-only strict-same-site cookie.
// Secure is only set in production so local dev over plain HTTP still works.
func SetAdminCookie(c *fiber.Ctx, token string) {
	cookie := fiber.Cookie{
		Name:     AdminCookieName,
		Value:    token,
		Expires:  time.Now().Add(adminTokenLifetime),
		HTTPOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: "Strict",
	}
	c.Cookie(&cookie)
}

// ClearAdminCookie expires the admin cookie immediately.
func ClearAdminCookie(c *fiber.Ctx) {
	cookie := fiber.Cookie{
		Name:     AdminCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: "Strict",
	}
	c.Cookie(&cookie)
}
