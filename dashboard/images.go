package dashboard

import (
	"bytes"
	"context"
	"io"

	"fitpickd/models"
)

// ImageAPI is the slice of the API the image editor uses.
type ImageAPI interface {
	UploadImage(ctx context.Context, filename string, r io.Reader) (models.ProductImage, error)
	ReplaceImages(ctx context.Context, id string, images []models.ProductImage) (models.Product, error)
}

// LocalImage is a staged file preview that has not been uploaded yet.
type LocalImage struct {
	Filename string
	Data     []byte
}

// ImageEditor stages a product's image edits: the already-hosted images plus
// local files picked in the browser. Nothing is uploaded until Save.
type ImageEditor struct {
	ProductID string
	Existing  []models.ProductImage
	Pending   []LocalImage
}

func NewImageEditor(productID string, existing []models.ProductImage) *ImageEditor {
	return &ImageEditor{ProductID: productID, Existing: existing}
}

// StageFile adds a local preview.
func (e *ImageEditor) StageFile(filename string, data []byte) {
	e.Pending = append(e.Pending, LocalImage{Filename: filename, Data: data})
}

// RemoveExisting drops an already-hosted image from the staged set. The
// remote asset is cleaned up by the backend when the replace call lands.
// A fresh slice is built so the caller's slice stays untouched.
func (e *ImageEditor) RemoveExisting(assetID string) {
	kept := make([]models.ProductImage, 0, len(e.Existing))
	for _, img := range e.Existing {
		if img.AssetID != assetID {
			kept = append(kept, img)
		}
	}
	e.Existing = kept
}

// RemovePending drops a staged local file by index.
func (e *ImageEditor) RemovePending(i int) {
	if i < 0 || i >= len(e.Pending) {
		return
	}
	e.Pending = append(e.Pending[:i], e.Pending[i+1:]...)
}

// Count is how many images the product would end up with, before capping.
func (e *ImageEditor) Count() int {
	return len(e.Existing) + len(e.Pending)
}

// Save uploads the pending files one at a time, reporting per-file progress,
// then replaces the product's image list with existing + uploaded, capped at
// the image limit.
func (e *ImageEditor) Save(ctx context.Context, api ImageAPI, progress func(done, total int)) (models.Product, error) {
	total := len(e.Pending)
	merged := append([]models.ProductImage{}, e.Existing...)

	for i, local := range e.Pending {
		uploaded, err := api.UploadImage(ctx, local.Filename, bytes.NewReader(local.Data))
		if err != nil {
			return models.Product{}, err
		}
		merged = append(merged, uploaded)
		if progress != nil {
			progress(i+1, total)
		}
	}

	merged = models.TruncateImages(merged)

	p, err := api.ReplaceImages(ctx, e.ProductID, merged)
	if err != nil {
		return models.Product{}, err
	}

	e.Existing = p.Images
	e.Pending = nil
	return p, nil
}
