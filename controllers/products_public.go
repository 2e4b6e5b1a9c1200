package controllers

import (
	"context"
	"encoding/json"

	"fitpickd/condb"
	"fitpickd/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4"
)

const productColumns = `id, name, category, price, description, images, sizes,
	featured, out_of_stock, fabric_composition, fit, country_of_origin,
	care_instruction, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var imagesJSON []byte

	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Price, &p.Description,
		&imagesJSON, &p.Sizes, &p.Featured, &p.OutOfStock,
		&p.FabricComposition, &p.Fit, &p.CountryOfOrigin, &p.CareInstruction,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Product{}, err
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &p.Images); err != nil {
			return models.Product{}, err
		}
	}
	if p.Images == nil {
		p.Images = []models.ProductImage{}
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	return p, nil
}

func queryProducts(where string, args ...interface{}) ([]models.Product, error) {
	conn, err := condb.Connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close(context.Background())

	rows, err := conn.Query(context.Background(),
		`SELECT `+productColumns+` FROM products `+where+` ORDER BY created_at ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func GetProducts(c *fiber.Ctx) error {
	products, err := queryProducts("")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}
	return c.JSON(products)
}

// GetAvailableProducts lists everything not flagged out of stock.
func GetAvailableProducts(c *fiber.Ctx) error {
	products, err := queryProducts("WHERE out_of_stock != TRUE")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch products"})
	}
	return c.JSON(products)
}

func GetOutOfStockProducts(c *fiber.Ctx) error {
	products, err := queryProducts("WHERE out_of_stock = TRUE")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch out of stock products"})
	}
	return c.JSON(products)
}

func GetProductByID(c *fiber.Ctx) error {
	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	row := conn.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, c.Params("id"))

	p, err := scanProduct(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch product"})
	}

	return c.JSON(p)
}
