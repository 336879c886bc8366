package catalog

import (
	"fmt"
	"testing"

	"ezypc-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeProducts() []models.Product {
	var out []models.Product
	for i := 0; i < 5; i++ {
		out = append(out, product(fmt.Sprintf("Custom %d", i), models.ProductTypeCustomBuild, 50000+i))
	}
	for i := 0; i < 3; i++ {
		out = append(out, product(fmt.Sprintf("Laptop %d", i), models.ProductTypeLaptop, 60000+i))
	}
	out = append(out, product("Prebuilt 0", models.ProductTypePrebuiltPC, 70000))
	return out
}

func TestAvailableFilters(t *testing.T) {
	assert.Equal(t, []string{"All"}, AvailableFilters(nil))
	assert.Equal(t,
		[]string{"All", "Custom Build", "Laptop", "Prebuilt PC"},
		AvailableFilters(storeProducts()),
	)
}

func TestFilterByType(t *testing.T) {
	products := storeProducts()

	assert.Len(t, FilterByType(products, FilterAll), 9)
	assert.Len(t, FilterByType(products, ""), 9)
	assert.Len(t, FilterByType(products, "Laptop"), 3)
	assert.Empty(t, FilterByType(products, "Tablet"))
}

func TestPaginate(t *testing.T) {
	products := storeProducts()

	tests := []struct {
		name        string
		filter      string
		visible     int
		wantItems   int
		wantFilter  string
		wantHasMore bool
		wantNext    int
	}{
		{name: "first load", filter: "All", visible: 0, wantItems: 6, wantFilter: "All", wantHasMore: true, wantNext: 9},
		{name: "second load", filter: "All", visible: 9, wantItems: 9, wantFilter: "All", wantHasMore: false, wantNext: 9},
		{name: "filtered below initial load", filter: "Custom Build", visible: 6, wantItems: 5, wantFilter: "Custom Build", wantHasMore: false, wantNext: 6},
		{name: "unknown filter falls back", filter: "Tablet", visible: 6, wantItems: 6, wantFilter: "All", wantHasMore: true, wantNext: 9},
		{name: "visible beyond total", filter: "Laptop", visible: 30, wantItems: 3, wantFilter: "Laptop", wantHasMore: false, wantNext: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(products, tt.filter, tt.visible)

			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantFilter, page.Filter)
			assert.Equal(t, tt.wantHasMore, page.HasMore)
			assert.Equal(t, tt.wantNext, page.NextVisible)
			assert.Equal(t, AvailableFilters(products), page.Filters)
		})
	}
}

func TestPaginate_LoadMoreStepsByThree(t *testing.T) {
	var products []models.Product
	for i := 0; i < 14; i++ {
		products = append(products, product(fmt.Sprintf("Build %d", i), models.ProductTypeCustomBuild, 40000+i))
	}

	var seen []int
	visible := 0
	for {
		page := Paginate(products, FilterAll, visible)
		seen = append(seen, len(page.Items))
		if !page.HasMore {
			break
		}
		visible = page.NextVisible
	}

	assert.Equal(t, []int{6, 9, 12, 14}, seen)
}

func TestMergeRecommended(t *testing.T) {
	existing := []models.Product{
		product("Store A", models.ProductTypeLaptop, 1),
		product("Shared", models.ProductTypeCustomBuild, 2),
		product("Store B", models.ProductTypePrebuiltPC, 3),
	}
	recommended := []models.Product{
		product("Shared", models.ProductTypeCustomBuild, 4),
		product("Wizard Only", models.ProductTypeCustomBuild, 5),
	}

	merged := MergeRecommended(existing, recommended)
	require.Len(t, merged, 4)

	titles := make([]string, len(merged))
	for i, p := range merged {
		titles[i] = p.Title
	}
	assert.Equal(t, []string{"Shared", "Wizard Only", "Store A", "Store B"}, titles)

	assert.Equal(t, models.TagRecommendedForYou, merged[0].Tag)
	assert.Equal(t, models.TagRecommendedForYou, merged[1].Tag)
	assert.Empty(t, merged[2].Tag)
	assert.Equal(t, 4, merged[0].EstimatedPriceINR)

	assert.Empty(t, recommended[0].Tag)
}
