package catalog

import (
	"reflect"
	"testing"

	"github.com/avoronin/delivery-api/internal/domain"
)

func ptr(v float64) *float64 { return &v }

func sampleDishes() []domain.Dish {
	return []domain.Dish{
		{ID: "1", Name: "Tom Yum", Price: 7.90, Category: domain.CategorySoup, Vegetarian: false, Rating: ptr(8.0)},
		{ID: "2", Name: "Margherita", Price: 9.50, Category: domain.CategoryPizza, Vegetarian: true, Rating: ptr(6.5)},
		{ID: "3", Name: "Mushroom Soup", Price: 5.40, Category: domain.CategorySoup, Vegetarian: true, Rating: nil},
		{ID: "4", Name: "Pepperoni", Price: 11.20, Category: domain.CategoryPizza, Vegetarian: false, Rating: ptr(9.1)},
		{ID: "5", Name: "Green Tea", Price: 2.00, Category: domain.CategoryDrink, Vegetarian: true, Rating: ptr(6.5)},
	}
}

func ids(dishes []domain.Dish) []string {
	out := make([]string, 0, len(dishes))
	for _, d := range dishes {
		out = append(out, d.ID)
	}
	return out
}

func TestApply_CategoryFilter(t *testing.T) {
	dishes := sampleDishes()

	got := Apply(dishes, Filter{Categories: []domain.DishCategory{domain.CategorySoup}}, SortDefault)
	for _, d := range got {
		if d.Category != domain.CategorySoup {
			t.Fatalf("dish %s has category %s, want soup", d.ID, d.Category)
		}
	}
	if len(got) != 2 {
		t.Fatalf("filtered count = %d, want 2", len(got))
	}

	// Empty category set keeps everything.
	all := Apply(dishes, Filter{}, SortDefault)
	if len(all) != len(dishes) {
		t.Fatalf("empty filter dropped dishes: %d != %d", len(all), len(dishes))
	}

	multi := Apply(dishes, Filter{Categories: []domain.DishCategory{domain.CategorySoup, domain.CategoryPizza}}, SortDefault)
	if len(multi) != 4 {
		t.Fatalf("multi-category count = %d, want 4", len(multi))
	}
}

func TestApply_VegetarianFilter(t *testing.T) {
	dishes := sampleDishes()

	vegOnly := Apply(dishes, Filter{VegetarianOnly: true}, SortDefault)
	for _, d := range vegOnly {
		if !d.Vegetarian {
			t.Fatalf("dish %s is not vegetarian", d.ID)
		}
	}

	// The flag only narrows, never widens.
	noFilter := Apply(dishes, Filter{VegetarianOnly: false}, SortDefault)
	if len(vegOnly) > len(noFilter) {
		t.Fatalf("vegetarian filter grew the result: %d > %d", len(vegOnly), len(noFilter))
	}
	if len(noFilter) != len(dishes) {
		t.Fatalf("vegetarian=false filtered dishes out")
	}
}

func TestApply_SortKeys(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortNameAsc, []string{"5", "2", "3", "4", "1"}},
		{SortNameDesc, []string{"1", "4", "3", "2", "5"}},
		{SortPriceAsc, []string{"5", "3", "1", "2", "4"}},
		{SortPriceDesc, []string{"4", "2", "1", "3", "5"}},
		// Unrated dish 3 sorts below every rated dish; 2 and 5 tie at
		// 6.5 and keep input order.
		{SortRateAsc, []string{"3", "2", "5", "1", "4"}},
		{SortRateDesc, []string{"4", "1", "2", "5", "3"}},
		// Default leaves natural order.
		{SortDefault, []string{"1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := ids(Apply(sampleDishes(), Filter{}, tt.key))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Apply(%s) order = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestApply_Deterministic(t *testing.T) {
	dishes := sampleDishes()
	first := ids(Apply(dishes, Filter{}, SortRateAsc))
	for i := 0; i < 10; i++ {
		again := ids(Apply(dishes, Filter{}, SortRateAsc))
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d produced different order: %v vs %v", i, again, first)
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	dishes := sampleDishes()
	before := ids(dishes)
	_ = Apply(dishes, Filter{VegetarianOnly: true}, SortPriceDesc)
	if !reflect.DeepEqual(ids(dishes), before) {
		t.Fatalf("input slice was reordered")
	}
}

func TestApply_EmptyResultIsValid(t *testing.T) {
	got := Apply(nil, Filter{Categories: []domain.DishCategory{domain.CategoryWok}}, SortNameAsc)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestParseSortKey(t *testing.T) {
	for _, valid := range []string{"", "name_asc", "name_desc", "price_asc", "price_desc", "rating_asc", "rating_desc"} {
		if _, err := ParseSortKey(valid); err != nil {
			t.Fatalf("ParseSortKey(%q) unexpected error: %v", valid, err)
		}
	}
	if _, err := ParseSortKey("price"); err == nil {
		t.Fatalf("expected error for unknown sort key")
	}
}
