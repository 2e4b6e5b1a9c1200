// Package dashboard is the admin dashboard's client-side state and
// orchestration: an API client over the REST surface, a view model that is
// replaced wholesale after every fetch, debounced search, staged delete
// confirmation, and staged image editing.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"fitpickd/models"
)

// API talks to the backend. Admin calls carry the bearer token.
type API struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func (a *API) httpClient() *http.Client {
	if a.HTTP != nil {
		return a.HTTP
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (a *API) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimSuffix(a.BaseURL, "/")+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: http %d", method, path, resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (a *API) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := a.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (a *API) OutOfStockProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := a.do(ctx, http.MethodGet, "/products/out-of-stock", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (a *API) CreateProduct(ctx context.Context, payload map[string]interface{}) (models.Product, error) {
	var p models.Product
	err := a.do(ctx, http.MethodPost, "/products", payload, &p)
	return p, err
}

func (a *API) UpdateProduct(ctx context.Context, id string, payload map[string]interface{}) (models.Product, error) {
	var p models.Product
	err := a.do(ctx, http.MethodPatch, "/products/"+id, payload, &p)
	return p, err
}

func (a *API) DeleteProduct(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

func (a *API) ToggleFeatured(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := a.do(ctx, http.MethodPatch, "/products/"+id+"/featured", nil, &p)
	return p, err
}

func (a *API) ToggleOutOfStock(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := a.do(ctx, http.MethodPatch, "/products/"+id+"/out-of-stock", nil, &p)
	return p, err
}

func (a *API) ReplaceImages(ctx context.Context, id string, images []models.ProductImage) (models.Product, error) {
	var p models.Product
	err := a.do(ctx, http.MethodPatch, "/products/"+id+"/images",
		map[string]interface{}{"images": images}, &p)
	return p, err
}

// UploadImage pushes one file through POST /upload and returns the hosted
// image reference.
func (a *API) UploadImage(ctx context.Context, filename string, r io.Reader) (models.ProductImage, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("image", filename)
	if err != nil {
		return models.ProductImage{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.ProductImage{}, err
	}
	if err := w.Close(); err != nil {
		return models.ProductImage{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(a.BaseURL, "/")+"/upload", &body)
	if err != nil {
		return models.ProductImage{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if a.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.Token)
	}

	resp, err := a.httpClient().Do(req)
	if err != nil {
		return models.ProductImage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return models.ProductImage{}, fmt.Errorf("upload %s: http %d", filename, resp.StatusCode)
	}

	var uploaded struct {
		URL     string `json:"url"`
		AssetID string `json:"asset_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return models.ProductImage{}, err
	}
	return models.ProductImage{URL: uploaded.URL, AssetID: uploaded.AssetID}, nil
}
