package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"fitpickd/assetstore"
	"fitpickd/condb"
	"fitpickd/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"golang.org/x/sync/errgroup"
)

type productInput struct {
	Name              string      `json:"name"`
	Category          string      `json:"category"`
	Price             interface{} `json:"price"`
	Description       string      `json:"description"`
	Sizes             interface{} `json:"sizes"`
	FabricComposition string      `json:"fabric_composition"`
	Fit               string      `json:"fit"`
	CountryOfOrigin   string      `json:"country_of_origin"`
	CareInstruction   string      `json:"care_instruction"`
}

// parsePrice coerces the price field, which clients send either as a number
// or a numeric string.
func parsePrice(v interface{}) (float64, error) {
	switch p := v.(type) {
	case float64:
		return p, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(p), 64)
	case nil:
		return 0, fmt.Errorf("price is required")
	default:
		return 0, fmt.Errorf("invalid price")
	}
}

// normalizeSizes accepts either an array of strings or a comma-separated
// string.
func normalizeSizes(v interface{}) []string {
	switch s := v.(type) {
	case []interface{}:
		var sizes []string
		for _, item := range s {
			if str, ok := item.(string); ok && strings.TrimSpace(str) != "" {
				sizes = append(sizes, strings.TrimSpace(str))
			}
		}
		return sizes
	case string:
		var sizes []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				sizes = append(sizes, part)
			}
		}
		return sizes
	default:
		return nil
	}
}

func validateProductInput(in productInput) (float64, []string, string) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, nil, "name is required"
	}
	if strings.TrimSpace(in.Category) == "" {
		return 0, nil, "category is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		return 0, nil, "description is required"
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return 0, nil, "price must be a number"
	}
	if price <= 0 {
		return 0, nil, "price must be a positive number"
	}
	sizes := normalizeSizes(in.Sizes)
	if len(sizes) == 0 {
		return 0, nil, "at least one size is required"
	}
	return price, sizes, ""
}

func CreateProduct(c *fiber.Ctx) error {
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	price, sizes, msg := validateProductInput(in)
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	id := uuid.NewString()
	_, err = conn.Exec(context.Background(), `
		INSERT INTO products
			(id, name, category, price, description, images, sizes,
			 fabric_composition, fit, country_of_origin, care_instruction)
		VALUES ($1, $2, $3, $4, $5, '[]'::jsonb, $6, $7, $8, $9, $10)`,
		id, in.Name, in.Category, price, in.Description, sizes,
		in.FabricComposition, in.Fit, in.CountryOfOrigin, in.CareInstruction,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Product creation failed: " + err.Error()})
	}

	row := conn.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Product creation failed: " + err.Error()})
	}

	return c.JSON(p)
}

// UpdateProduct edits the descriptive fields only. Images and both flags
// have their own endpoints.
func UpdateProduct(c *fiber.Ctx) error {
	var in productInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	price, sizes, msg := validateProductInput(in)
	if msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	row := conn.QueryRow(context.Background(), `
		UPDATE products
		SET name=$1, category=$2, price=$3, description=$4, sizes=$5,
			fabric_composition=$6, fit=$7, country_of_origin=$8,
			care_instruction=$9, updated_at=NOW()
		WHERE id=$10
		RETURNING `+productColumns,
		in.Name, in.Category, price, in.Description, sizes,
		in.FabricComposition, in.Fit, in.CountryOfOrigin, in.CareInstruction,
		c.Params("id"),
	)

	p, err := scanProduct(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update product: " + err.Error()})
	}

	return c.JSON(p)
}

func toggleProductFlag(c *fiber.Ctx, column, failMsg string) error {
	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	row := conn.QueryRow(context.Background(),
		`UPDATE products SET `+column+` = NOT `+column+`, updated_at=NOW()
		 WHERE id=$1 RETURNING `+productColumns,
		c.Params("id"),
	)

	p, err := scanProduct(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": failMsg})
	}

	return c.JSON(p)
}

func ToggleFeatured(c *fiber.Ctx) error {
	return toggleProductFlag(c, "featured", "Failed to toggle featured status")
}

func ToggleOutOfStock(c *fiber.Ctx) error {
	return toggleProductFlag(c, "out_of_stock", "Failed to toggle out of stock status")
}

// deleteAssets removes remote assets in parallel. Failures are logged and
// swallowed; the product row stays authoritative.
func deleteAssets(ctx context.Context, assetIDs []string) {
	g := new(errgroup.Group)
	for _, assetID := range assetIDs {
		assetID := assetID
		g.Go(func() error {
			if err := assetstore.Destroy(ctx, assetID); err != nil {
				log.Printf("asset cleanup: destroy %s: %v", assetID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

// ReplaceImages swaps the product's image list. The list is capped at six
// entries, the row write is authoritative, and assets dropped from the list
// are cleaned up best-effort afterwards.
func ReplaceImages(c *fiber.Ctx) error {
	var in struct {
		Images []models.ProductImage `json:"images"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	images := models.TruncateImages(in.Images)
	if images == nil {
		images = []models.ProductImage{}
	}

	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	var oldJSON []byte
	err = conn.QueryRow(context.Background(),
		`SELECT images FROM products WHERE id = $1`, c.Params("id")).Scan(&oldJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update images: " + err.Error()})
	}

	var old []models.ProductImage
	if len(oldJSON) > 0 {
		if err := json.Unmarshal(oldJSON, &old); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update images: " + err.Error()})
		}
	}

	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update images: " + err.Error()})
	}

	row := conn.QueryRow(context.Background(),
		`UPDATE products SET images = $1::jsonb, updated_at=NOW()
		 WHERE id=$2 RETURNING `+productColumns,
		string(imagesJSON), c.Params("id"),
	)
	p, err := scanProduct(row)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update images: " + err.Error()})
	}

	deleteAssets(context.Background(), models.RemovedAssetIDs(old, images))

	return c.JSON(p)
}

// DeleteProduct removes the row and cleans up every hosted asset.
func DeleteProduct(c *fiber.Ctx) error {
	conn, err := condb.Connect()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB connection failed"})
	}
	defer conn.Close(context.Background())

	var imagesJSON []byte
	err = conn.QueryRow(context.Background(),
		`SELECT images FROM products WHERE id = $1`, c.Params("id")).Scan(&imagesJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Delete failed: " + err.Error()})
	}

	var images []models.ProductImage
	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &images); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Delete failed: " + err.Error()})
		}
	}

	if _, err := conn.Exec(context.Background(),
		`DELETE FROM products WHERE id = $1`, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Delete failed: " + err.Error()})
	}

	deleteAssets(context.Background(), models.AssetIDs(images))

	return c.JSON(fiber.Map{"success": true})
}
