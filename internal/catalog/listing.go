package catalog

import (
	"sort"

	"ezypc-storefront/internal/models"
)

const (
	ItemsPerLoad   = 6
	SubsequentLoad = 3

	FilterAll = "All"
)

// Page is one window of the storefront listing.
type Page struct {
	Items       []models.Product `json:"items"`
	Filter      string           `json:"filter"`
	Filters     []string         `json:"filters"`
	Total       int              `json:"total"`
	Visible     int              `json:"visible"`
	HasMore     bool             `json:"hasMore"`
	NextVisible int              `json:"nextVisible"`
}

// AvailableFilters returns "All" followed by the distinct product types in
// lexical order.
func AvailableFilters(products []models.Product) []string {
	filters := []string{FilterAll}
	if len(products) == 0 {
		return filters
	}

	seen := make(map[models.ProductType]struct{}, len(products))
	types := make([]string, 0, 3)
	for _, p := range products {
		if _, ok := seen[p.Type]; ok {
			continue
		}
		seen[p.Type] = struct{}{}
		types = append(types, string(p.Type))
	}
	sort.Strings(types)

	return append(filters, types...)
}

func FilterByType(products []models.Product, filter string) []models.Product {
	if filter == "" || filter == FilterAll {
		return products
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if string(p.Type) == filter {
			out = append(out, p)
		}
	}
	return out
}

// Paginate selects the first visible products matching filter. A visible
// count below the initial load is raised to it; a filter that matches none
// of the available types falls back to "All".
func Paginate(products []models.Product, filter string, visible int) Page {
	filters := AvailableFilters(products)
	if !contains(filters, filter) {
		filter = FilterAll
	}
	if visible < ItemsPerLoad {
		visible = ItemsPerLoad
	}

	filtered := FilterByType(products, filter)
	end := min(visible, len(filtered))

	page := Page{
		Items:   filtered[:end],
		Filter:  filter,
		Filters: filters,
		Total:   len(filtered),
		Visible: visible,
		HasMore: visible < len(filtered),
	}
	if page.HasMore {
		page.NextVisible = min(visible+SubsequentLoad, len(filtered))
	} else {
		page.NextVisible = visible
	}
	return page
}

// MergeRecommended puts the wizard results first, tagged, and drops any
// existing product that shares a title with one of them. Inputs are not
// modified.
func MergeRecommended(existing, recommended []models.Product) []models.Product {
	titles := make(map[string]struct{}, len(recommended))
	merged := make([]models.Product, 0, len(existing)+len(recommended))

	for _, p := range recommended {
		titles[p.Title] = struct{}{}
		p.Tag = models.TagRecommendedForYou
		merged = append(merged, p)
	}
	for _, p := range existing {
		if _, dup := titles[p.Title]; dup {
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
