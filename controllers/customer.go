package controllers

import (
	"context"
	"strings"

	"fitpickd/condb"
	"fitpickd/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"
)

const customerColumns = `id, first_name, email, phone, password, wishlist, created_at, updated_at`

func scanCustomer(row rowScanner) (models.Customer, error) {
	var cus models.Customer
	err := row.Scan(&cus.ID, &cus.FirstName, &cus.Email, &cus.Phone,
		&cus.Password, &cus.Wishlist, &cus.CreatedAt, &cus.UpdatedAt)
	if err != nil {
		return models.Customer{}, err
	}
	if cus.Wishlist == nil {
		cus.Wishlist = []string{}
	}
	return cus, nil
}

// CreateCustomer handles signup. Passwords are stored as bcrypt hashes and
// never leave the server.
func CreateCustomer(c *fiber.Ctx) error {
	var in struct {
		FirstName string `json:"first_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if in.FirstName == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "First name, email, and password are required"})
	}
	if len(in.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 6 characters long"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Customer creation failed"})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	id := uuid.NewString()
	row := conn.QueryRow(context.Background(), `
		INSERT INTO customers (id, first_name, email, phone, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+customerColumns,
		id, in.FirstName, strings.ToLower(in.Email), in.Phone, string(hash),
	)

	cus, err := scanCustomer(row)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Customer creation failed: " + err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "user": cus.PublicView()})
}

func GetCustomers(c *fiber.Ctx) error {
	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	rows, err := conn.Query(context.Background(),
		`SELECT `+customerColumns+` FROM customers ORDER BY created_at ASC`)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		cus, err := scanCustomer(rows)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		customers = append(customers, cus)
	}

	return c.JSON(customers)
}

func GetCustomerByID(c *fiber.Ctx) error {
	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	row := conn.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, c.Params("id"))

	cus, err := scanCustomer(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch customer"})
	}

	return c.JSON(cus)
}

// CustomerLogin accepts the email field as either an email address or a
// phone number.
func CustomerLogin(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	row := conn.QueryRow(context.Background(),
		`SELECT `+customerColumns+` FROM customers WHERE email = $1 OR phone = $2`,
		strings.ToLower(in.Email), in.Email,
	)

	cus, err := scanCustomer(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email, phone, or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cus.Password), []byte(in.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email, phone, or password"})
	}

	return c.JSON(fiber.Map{"success": true, "user": cus.PublicView()})
}

// UpdateCustomer edits profile fields after checking that the new email and
// phone are not taken by another account.
func UpdateCustomer(c *fiber.Ctx) error {
	var in struct {
		FirstName string `json:"first_name"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	customerID := c.Params("id")
	email := strings.ToLower(in.Email)

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	var taken int
	err = conn.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM customers WHERE email = $1 AND id != $2`,
		email, customerID).Scan(&taken)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	if taken > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This email address is already registered with another account."})
	}

	err = conn.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM customers WHERE phone = $1 AND phone != '' AND id != $2`,
		in.Phone, customerID).Scan(&taken)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}
	if taken > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "This phone number is already registered with another account."})
	}

	row := conn.QueryRow(context.Background(), `
		UPDATE customers SET first_name=$1, email=$2, phone=$3, updated_at=NOW()
		WHERE id=$4
		RETURNING `+customerColumns,
		in.FirstName, email, in.Phone, customerID,
	)

	cus, err := scanCustomer(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile: " + err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "user": cus.PublicView()})
}

func VerifyCustomerPassword(c *fiber.Ctx) error {
	var in struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	var hash string
	err = conn.QueryRow(context.Background(),
		`SELECT password FROM customers WHERE id = $1`, c.Params("id")).Scan(&hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to verify password"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(in.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func UpdateCustomerPassword(c *fiber.Ctx) error {
	var in struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if len(in.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password must be at least 6 characters long"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	commandTag, err := conn.Exec(context.Background(),
		`UPDATE customers SET password=$1, updated_at=NOW() WHERE id=$2`,
		string(hash), c.Params("id"),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
	}
	if commandTag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func DeleteCustomer(c *fiber.Ctx) error {
	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	commandTag, err := conn.Exec(context.Background(),
		`DELETE FROM customers WHERE id = $1`, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Delete failed: " + err.Error()})
	}
	if commandTag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
