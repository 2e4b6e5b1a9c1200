package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitpickd/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogServer(t *testing.T, products []models.Product) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(products)
	})
	mux.HandleFunc("/products/out-of-stock", func(w http.ResponseWriter, r *http.Request) {
		outOfStock := []models.Product{}
		for _, p := range products {
			if p.OutOfStock {
				outOfStock = append(outOfStock, p)
			}
		}
		json.NewEncoder(w).Encode(outOfStock)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestViewModelRefreshPartitionsByStockFlag(t *testing.T) {
	products := []models.Product{
		{ID: "1", Name: "Classic Shirt", OutOfStock: false},
		{ID: "2", Name: "Slim Polo", OutOfStock: true},
		{ID: "3", Name: "Linen Trousers", OutOfStock: false},
	}
	srv := catalogServer(t, products)

	api := &API{BaseURL: srv.URL}
	vm := NewViewModel()
	require.NoError(t, vm.Refresh(context.Background(), api))

	// Every product lands in exactly one of the two lists.
	seen := map[string]int{}
	for _, p := range vm.Available {
		assert.False(t, p.OutOfStock)
		seen[p.ID]++
	}
	for _, p := range vm.OutOfStock {
		assert.True(t, p.OutOfStock)
		seen[p.ID]++
	}
	require.Len(t, seen, len(products))
	for id, n := range seen {
		assert.Equal(t, 1, n, "product %s must appear in exactly one list", id)
	}
}

func TestViewModelRefreshReplacesWholesale(t *testing.T) {
	srv := catalogServer(t, []models.Product{{ID: "1", Name: "Classic Shirt"}})

	api := &API{BaseURL: srv.URL}
	vm := NewViewModel()
	vm.Available = []models.Product{{ID: "stale-1"}, {ID: "stale-2"}}
	vm.OutOfStock = []models.Product{{ID: "stale-3"}}

	require.NoError(t, vm.Refresh(context.Background(), api))

	require.Len(t, vm.Available, 1)
	assert.Equal(t, "1", vm.Available[0].ID)
	assert.Empty(t, vm.OutOfStock)
}

func TestAPIDoSurfacesErrorField(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/p1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Product not found"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	api := &API{BaseURL: srv.URL}
	err := api.DeleteProduct(context.Background(), "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Product not found")
}
