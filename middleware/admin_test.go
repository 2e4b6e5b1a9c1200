package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitpickd/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatedApp(t *testing.T, activeEmails map[string]bool) *fiber.App {
	t.Helper()

	orig := AdminEmailActive
	AdminEmailActive = func(ctx context.Context, email string) (bool, error) {
		return activeEmails[email], nil
	}
	t.Cleanup(func() { AdminEmailActive = orig })

	app := fiber.New()
	app.Get("/gated", AdminRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": c.Locals("admin_email")})
	})
	return app
}

func TestAdminRequiredNoToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := gatedApp(t, map[string]bool{})

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiredInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := gatedApp(t, map[string]bool{})

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiredRevokedEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// Token is perfectly valid; the email just is not on the allow-list
	// anymore. The gate must still reject it.
	app := gatedApp(t, map[string]bool{})

	token, err := utils.GenerateAdminToken("revoked@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRequiredLookupFailureIsNot401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	orig := AdminEmailActive
	AdminEmailActive = func(ctx context.Context, email string) (bool, error) {
		return false, errors.New("connection refused")
	}
	t.Cleanup(func() { AdminEmailActive = orig })

	app := fiber.New()
	app.Get("/gated", AdminRequired, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	token, err := utils.GenerateAdminToken("admin@example.com")
	require.NoError(t, err)

	// A persistence outage during the allow-list recheck is an upstream
	// failure, not an authorization verdict.
	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAdminRequiredBearerHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := gatedApp(t, map[string]bool{"admin@example.com": true})

	token, err := utils.GenerateAdminToken("admin@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRequiredCookieFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := gatedApp(t, map[string]bool{"admin@example.com": true})

	token, err := utils.GenerateAdminToken("admin@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	req.AddCookie(&http.Cookie{Name: utils.AdminCookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
