package controllers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fitpickd/condb"

	"github.com/gofiber/fiber/v2"
	gomail "github.com/go-mail/mail"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	cache "github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

// resetTokens holds single-use recovery tokens for an hour; the janitor
// sweeps expired entries server-side.
var resetTokens = cache.New(time.Hour, 10*time.Minute)

// SendResetEmail delivers the recovery link. Swappable so tests do not need
// an SMTP server.
var SendResetEmail = func(to, link string) error {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("MAIL_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Reset your FitPickd password")
	m.SetBody("text/plain",
		"We received a request to reset your password.\n\n"+
			"Follow this link within the next hour to choose a new one:\n"+link+"\n\n"+
			"If you did not ask for a reset, you can ignore this email.")

	d := gomail.NewDialer(os.Getenv("SMTP_HOST"), port,
		os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))
	return d.DialAndSend(m)
}

// ForgotPassword starts the recovery flow by emailing a single-use token.
// The stored password is never disclosed.
func ForgotPassword(c *fiber.Ctx) error {
	var in struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email is required"})
	}

	email := strings.ToLower(in.Email)

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	var customerID string
	err = conn.QueryRow(context.Background(),
		`SELECT id FROM customers WHERE email = $1`, email).Scan(&customerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No account found with this email address"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process forgot password request"})
	}

	token := uuid.NewString()
	resetTokens.Set(token, customerID, cache.DefaultExpiration)

	link := fmt.Sprintf("%s/reset-password.html?token=%s", os.Getenv("FRONTEND_URL"), token)
	if err := SendResetEmail(email, link); err != nil {
		resetTokens.Delete(token)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send reset email"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Password reset email sent"})
}

// ResetPassword consumes a recovery token and stores the new hash.
func ResetPassword(c *fiber.Ctx) error {
	var in struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if in.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "token required"})
	}
	if len(in.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 6 characters long"})
	}

	v, found := resetTokens.Get(in.Token)
	if !found {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired reset token"})
	}
	resetTokens.Delete(in.Token)
	customerID := v.(string)

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset password"})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	commandTag, err := conn.Exec(context.Background(),
		`UPDATE customers SET password=$1, updated_at=NOW() WHERE id=$2`,
		string(hash), customerID,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset password"})
	}
	if commandTag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
