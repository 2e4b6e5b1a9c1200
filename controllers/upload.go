package controllers

import (
	"context"

	"fitpickd/assetstore"

	"github.com/gofiber/fiber/v2"
)

// UploadImage pushes a multipart file to the asset gateway and returns its
// hosted location.
func UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload failed", "details": err.Error()})
	}
	defer src.Close()

	asset, err := assetstore.Upload(c.Context(), file.Filename, src)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Upload failed", "details": err.Error()})
	}

	return c.JSON(fiber.Map{"url": asset.URL, "asset_id": asset.AssetID})
}

// DeleteImage removes one hosted asset by id. Used by the dashboard to
// discard an upload that never made it onto a product.
func DeleteImage(c *fiber.Ctx) error {
	var in struct {
		AssetID string `json:"asset_id"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if in.AssetID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "asset_id required"})
	}

	if err := assetstore.Destroy(context.Background(), in.AssetID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Delete failed", "details": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true})
}
