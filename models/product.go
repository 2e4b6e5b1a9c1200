package models

import "time"

// MaxProductImages caps how many images a product may carry.
const MaxProductImages = 6

type ProductImage struct {
	URL     string `json:"url"`
	AssetID string `json:"asset_id"`
}

type Product struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Category          string         `json:"category"`
	Price             float64        `json:"price"`
	Description       string         `json:"description"`
	Images            []ProductImage `json:"images"`
	Sizes             []string       `json:"sizes"`
	Featured          bool           `json:"featured"`
	OutOfStock        bool           `json:"out_of_stock"`
	FabricComposition string         `json:"fabric_composition"`
	Fit               string         `json:"fit"`
	CountryOfOrigin   string         `json:"country_of_origin"`
	CareInstruction   string         `json:"care_instruction"`
	CreatedAt         *time.Time     `json:"created_at,omitempty"`
	UpdatedAt         *time.Time     `json:"updated_at,omitempty"`
}

// TruncateImages keeps the first MaxProductImages entries in input order.
func TruncateImages(images []ProductImage) []ProductImage {
	if len(images) > MaxProductImages {
		return images[:MaxProductImages]
	}
	return images
}

// RemovedAssetIDs returns every asset id present in old but absent from the
// replacement list. Empty ids are skipped; ids kept in both lists are never
// returned.
func RemovedAssetIDs(old, replacement []ProductImage) []string {
	kept := make(map[string]bool, len(replacement))
	for _, img := range replacement {
		if img.AssetID != "" {
			kept[img.AssetID] = true
		}
	}

	var removed []string
	seen := make(map[string]bool, len(old))
	for _, img := range old {
		if img.AssetID == "" || kept[img.AssetID] || seen[img.AssetID] {
			continue
		}
		seen[img.AssetID] = true
		removed = append(removed, img.AssetID)
	}
	return removed
}

// AssetIDs collects the non-empty asset ids of a product's images.
func AssetIDs(images []ProductImage) []string {
	var ids []string
	for _, img := range images {
		if img.AssetID != "" {
			ids = append(ids, img.AssetID)
		}
	}
	return ids
}
