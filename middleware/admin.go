package middleware

import (
	"context"
	"strings"

	"fitpickd/condb"
	"fitpickd/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4"
)

// AdminEmailActive reports whether the email still has an active allow-list
// row. A missing row means not authorized; any other lookup failure is an
// error so callers answer 500, not 401. Swappable so tests can run without
// a database.
var AdminEmailActive = func(ctx context.Context, email string) (bool, error) {
	conn, err := condb.Connect()
	if err != nil {
		return false, err
	}
	defer conn.Close(ctx)

	var active bool
	err = conn.QueryRow(ctx,
		`SELECT is_active FROM admin_emails WHERE email = $1 AND is_active = TRUE`,
		strings.ToLower(email),
	).Scan(&active)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return active, nil
}

// AdminRequired guards admin-only routes. The token comes from the bearer
// header first, then the admin cookie. The email inside a valid token is
// re-checked against the allow-list on every request, so pulling an email
// from the list locks out its outstanding tokens too.
func AdminRequired(c *fiber.Ctx) error {
	token := ""
	if auth := c.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimPrefix(auth, "Bearer ")
	} else {
		token = c.Cookies(utils.AdminCookieName)
	}

	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Access denied. No token provided."})
	}

	email, err := utils.ParseAdminToken(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token."})
	}

	active, err := AdminEmailActive(c.Context(), email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify admin email"})
	}
	if !active {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Admin email no longer authorized."})
	}

	c.Locals("admin_email", email)
	return c.Next()
}
