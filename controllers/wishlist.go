package controllers

import (
	"context"

	"fitpickd/condb"
	"fitpickd/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v4"
)

func updateWishlist(c *fiber.Ctx, apply func([]string, string) []string, failMsg string) error {
	var in struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "product_id required"})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	var wishlist []string
	err = conn.QueryRow(context.Background(),
		`SELECT wishlist FROM customers WHERE id = $1`, c.Params("id")).Scan(&wishlist)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": failMsg})
	}

	wishlist = apply(wishlist, in.ProductID)
	if wishlist == nil {
		wishlist = []string{}
	}

	_, err = conn.Exec(context.Background(),
		`UPDATE customers SET wishlist=$1, updated_at=NOW() WHERE id=$2`,
		wishlist, c.Params("id"),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": failMsg})
	}

	return c.JSON(fiber.Map{"success": true, "wishlist": wishlist})
}

// AddToWishlist is idempotent: re-adding a present id changes nothing.
func AddToWishlist(c *fiber.Ctx) error {
	return updateWishlist(c, models.AddToWishlist, "Failed to add to wishlist")
}

// RemoveFromWishlist is idempotent: removing an absent id changes nothing.
func RemoveFromWishlist(c *fiber.Ctx) error {
	return updateWishlist(c, models.RemoveFromWishlist, "Failed to remove from wishlist")
}

// GetWishlist resolves the stored product ids into full product records.
func GetWishlist(c *fiber.Ctx) error {
	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	var ids []string
	err = conn.QueryRow(context.Background(),
		`SELECT wishlist FROM customers WHERE id = $1`, c.Params("id")).Scan(&ids)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch wishlist"})
	}

	products := []models.Product{}
	if len(ids) > 0 {
		// Keep wishlist insertion order, not table order.
		rows, err := conn.Query(context.Background(),
			`SELECT `+productColumns+` FROM products
			 WHERE id = ANY($1)
			 ORDER BY array_position($1::text[], id)`, ids)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch wishlist"})
		}
		defer rows.Close()

		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch wishlist"})
			}
			products = append(products, p)
		}
	}

	return c.JSON(fiber.Map{"wishlist": products})
}
