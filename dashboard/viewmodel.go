package dashboard

import (
	"context"
	"strings"

	"fitpickd/models"
)

// CategoryAll disables category filtering.
const CategoryAll = "all"

// ViewModel holds the two product lists the dashboard renders plus the
// active filter inputs. Both lists are disposable copies: Refresh replaces
// them wholesale, and every mutating action is followed by a Refresh.
type ViewModel struct {
	Available  []models.Product
	OutOfStock []models.Product

	SearchQuery    string
	CategoryFilter string

	OutOfStockSearchQuery    string
	OutOfStockCategoryFilter string
}

func NewViewModel() *ViewModel {
	return &ViewModel{
		CategoryFilter:           CategoryAll,
		OutOfStockCategoryFilter: CategoryAll,
	}
}

// Refresh reloads both lists from the backend. The available list is every
// product not flagged out of stock.
func (vm *ViewModel) Refresh(ctx context.Context, api *API) error {
	all, err := api.Products(ctx)
	if err != nil {
		return err
	}
	outOfStock, err := api.OutOfStockProducts(ctx)
	if err != nil {
		return err
	}

	available := []models.Product{}
	for _, p := range all {
		if !p.OutOfStock {
			available = append(available, p)
		}
	}

	vm.Available = available
	vm.OutOfStock = outOfStock
	return nil
}

// MatchesFilter applies the dashboard filter: case-insensitive substring
// match on name or description, intersected with an exact category match
// unless the category is "all".
func MatchesFilter(p models.Product, query, category string) bool {
	query = strings.TrimSpace(query)
	if query != "" {
		q := strings.ToLower(query)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			return false
		}
	}
	if category != "" && category != CategoryAll && p.Category != category {
		return false
	}
	return true
}

func filterProducts(products []models.Product, query, category string) []models.Product {
	filtered := []models.Product{}
	for _, p := range products {
		if MatchesFilter(p, query, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilteredAvailable applies the current search and category filter to the
// available list.
func (vm *ViewModel) FilteredAvailable() []models.Product {
	return filterProducts(vm.Available, vm.SearchQuery, vm.CategoryFilter)
}

// FilteredOutOfStock applies the out-of-stock tab's own filter state.
func (vm *ViewModel) FilteredOutOfStock() []models.Product {
	return filterProducts(vm.OutOfStock, vm.OutOfStockSearchQuery, vm.OutOfStockCategoryFilter)
}
