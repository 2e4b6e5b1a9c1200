package controllers

import (
	"context"
	"io"
	"sync"
	"testing"

	"fitpickd/assetstore"
	"fitpickd/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	price, err := parsePrice("999")
	require.NoError(t, err)
	assert.Equal(t, 999.0, price)

	price, err = parsePrice(1299.5)
	require.NoError(t, err)
	assert.Equal(t, 1299.5, price)

	_, err = parsePrice(nil)
	assert.Error(t, err)

	_, err = parsePrice("not a number")
	assert.Error(t, err)

	_, err = parsePrice(true)
	assert.Error(t, err)
}

func TestNormalizeSizes(t *testing.T) {
	assert.Equal(t, []string{"M", "L"}, normalizeSizes([]interface{}{"M", "L"}))
	assert.Equal(t, []string{"S", "M", "XL"}, normalizeSizes("S, M , XL"))
	assert.Nil(t, normalizeSizes(""))
	assert.Nil(t, normalizeSizes(nil))
	assert.Nil(t, normalizeSizes([]interface{}{"", "  "}))
}

func TestValidateProductInput(t *testing.T) {
	valid := productInput{
		Name:        "Classic Shirt",
		Category:    "shirts",
		Price:       "999",
		Description: "desc",
		Sizes:       []interface{}{"M", "L"},
	}

	price, sizes, msg := validateProductInput(valid)
	assert.Empty(t, msg)
	assert.Equal(t, 999.0, price)
	assert.Equal(t, []string{"M", "L"}, sizes)

	cases := []struct {
		name   string
		mutate func(*productInput)
	}{
		{"missing name", func(in *productInput) { in.Name = " " }},
		{"missing category", func(in *productInput) { in.Category = "" }},
		{"missing description", func(in *productInput) { in.Description = "" }},
		{"zero price", func(in *productInput) { in.Price = "0" }},
		{"negative price", func(in *productInput) { in.Price = -5.0 }},
		{"bad price", func(in *productInput) { in.Price = "abc" }},
		{"no sizes", func(in *productInput) { in.Sizes = []interface{}{} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, _, msg := validateProductInput(in)
			assert.NotEmpty(t, msg)
		})
	}
}

type fakeGateway struct {
	mu       sync.Mutex
	destroys map[string]int
}

func (f *fakeGateway) Upload(ctx context.Context, filename string, r io.Reader) (assetstore.Asset, error) {
	return assetstore.Asset{}, nil
}

func (f *fakeGateway) Destroy(ctx context.Context, assetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.destroys == nil {
		f.destroys = map[string]int{}
	}
	f.destroys[assetID]++
	return nil
}

func swapGateway(t *testing.T) *fakeGateway {
	t.Helper()
	fake := &fakeGateway{}
	orig := assetstore.Default
	assetstore.Default = fake
	t.Cleanup(func() { assetstore.Default = orig })
	return fake
}

func TestDeleteAssetsOneDestroyPerRemovedID(t *testing.T) {
	fake := swapGateway(t)

	old := []models.ProductImage{
		{AssetID: "a"}, {AssetID: "b"}, {AssetID: "c"},
	}
	replacement := []models.ProductImage{{AssetID: "b"}}

	deleteAssets(context.Background(), models.RemovedAssetIDs(old, replacement))

	assert.Equal(t, map[string]int{"a": 1, "c": 1}, fake.destroys,
		"each removed id destroyed exactly once, kept ids untouched")
}

func TestDeleteAssetsEmptyList(t *testing.T) {
	fake := swapGateway(t)

	deleteAssets(context.Background(), nil)

	assert.Empty(t, fake.destroys)
}
