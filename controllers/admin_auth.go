package controllers

import (
	"context"
	"log"
	"os"
	"strings"

	"fitpickd/condb"
	"fitpickd/middleware"
	"fitpickd/models"
	"fitpickd/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"
)

// AdminLogin checks the shared credential pair plus the allow-listed email
// and answers with a cookie'd 24h token. Every credential failure gets the
// same message so the response does not reveal which part was wrong.
func AdminLogin(c *fiber.Ctx) error {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if in.Username == "" || in.Password == "" || in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username, password, and email are required"})
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUsername == "" || adminPasswordHash == "" {
		log.Println("Admin credentials not configured in environment")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Admin configuration error"})
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if in.Username != adminUsername {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(adminPasswordHash), []byte(in.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	active, err := middleware.AdminEmailActive(c.Context(), email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}
	if !active {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := utils.GenerateAdminToken(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Token generation failed"})
	}

	utils.SetAdminCookie(c, token)

	if err := recordAdminLogin(c.Context(), email); err != nil {
		log.Printf("admin login log: %v", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"admin": fiber.Map{
			"username": adminUsername,
			"email":    email,
		},
	})
}

// recordAdminLogin appends an audit row and trims the log back down to the
// retention cap, oldest rows first.
func recordAdminLogin(ctx context.Context, email string) error {
	conn, err := condb.Connect()
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx,
		`INSERT INTO admin_login_logs (email) VALUES ($1)`, email); err != nil {
		return err
	}

	var count int
	if err := conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM admin_login_logs`).Scan(&count); err != nil {
		return err
	}

	if count > models.LoginLogRetention {
		_, err = conn.Exec(ctx, `
			DELETE FROM admin_login_logs
			WHERE id IN (
				SELECT id FROM admin_login_logs
				ORDER BY login_at ASC, id ASC
				LIMIT $1
			)`, count-models.LoginLogRetention)
		if err != nil {
			return err
		}
	}
	return nil
}

func AdminLogout(c *fiber.Ctx) error {
	utils.ClearAdminCookie(c)
	return c.JSON(fiber.Map{"success": true, "message": "Logged out successfully"})
}

// VerifyAdminToken answers for callers that already passed the gate.
func VerifyAdminToken(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"admin": fiber.Map{
			"username": os.Getenv("ADMIN_USERNAME"),
			"email":    c.Locals("admin_email"),
		},
	})
}

// VerifyAdminEmail reports whether an email may be used for admin login.
// Used by the dashboard's OAuth prefill flow before the real login call.
func VerifyAdminEmail(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify email"})
	}
	defer conn.Close(context.Background())

	var id int
	err = conn.QueryRow(context.Background(),
		`SELECT id FROM admin_emails WHERE email = $1 AND is_active = TRUE`,
		strings.ToLower(in.Email),
	).Scan(&id)

	if err == pgx.ErrNoRows {
		return c.JSON(fiber.Map{"valid": false, "message": "Email not authorized for admin access"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify email"})
	}

	return c.JSON(fiber.Map{"valid": true, "message": "Email authorized for admin access"})
}
