// Package assetstore talks to the external image-hosting service. Product
// rows are the source of truth for which assets should exist; callers treat
// deletes as best-effort cleanup and duplicate deletes as harmless.
package assetstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Asset is one hosted image.
type Asset struct {
	URL     string `json:"url"`
	AssetID string `json:"asset_id"`
}

// Gateway is the remote object store surface the controllers use.
type Gateway interface {
	Upload(ctx context.Context, filename string, r io.Reader) (Asset, error)
	Destroy(ctx context.Context, assetID string) error
}

// Default is the gateway the controllers call. Tests swap it for a fake.
var Default Gateway = &Client{}

// Upload stores a file via the default gateway.
func Upload(ctx context.Context, filename string, r io.Reader) (Asset, error) {
	return Default.Upload(ctx, filename, r)
}

// Destroy removes an asset via the default gateway.
func Destroy(ctx context.Context, assetID string) error {
	return Default.Destroy(ctx, assetID)
}

// Client is the HTTP implementation against the hosting service configured
// by ASSET_STORE_URL / ASSET_STORE_KEY / ASSET_FOLDER.
type Client struct {
	HTTP *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (Asset, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return Asset{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return Asset{}, err
	}
	if folder := os.Getenv("ASSET_FOLDER"); folder != "" {
		if err := w.WriteField("folder", folder); err != nil {
			return Asset{}, err
		}
	}
	if err := w.Close(); err != nil {
		return Asset{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		os.Getenv("ASSET_STORE_URL")+"/upload", &body)
	if err != nil {
		return Asset{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+os.Getenv("ASSET_STORE_KEY"))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return Asset{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return Asset{}, fmt.Errorf("asset upload: http %d", resp.StatusCode)
	}

	var asset Asset
	if err := json.NewDecoder(resp.Body).Decode(&asset); err != nil {
		return Asset{}, err
	}
	return asset, nil
}

func (c *Client) Destroy(ctx context.Context, assetID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		os.Getenv("ASSET_STORE_URL")+"/assets/"+url.PathEscape(assetID), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("ASSET_STORE_KEY"))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 404 counts as done: the asset is already gone.
	if resp.StatusCode/100 != 2 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("asset destroy %s: http %d", assetID, resp.StatusCode)
	}
	return nil
}
