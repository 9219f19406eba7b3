package httpserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/avoronin/delivery-api/internal/domain"
)

func BenchmarkHandleGetMenu(b *testing.B) {
	env := buildTestServer(b)

	categories := []domain.DishCategory{domain.CategorySoup, domain.CategoryPizza, domain.CategoryWok}
	for i := 0; i < 60; i++ {
		env.seedDish(b, fmt.Sprintf("Dish %03d", i), categories[i%len(categories)], float64(i%20)+1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rec := env.do(http.MethodGet, "/dishes?category=soup&sorting=price_asc&page=1", "", nil)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}
