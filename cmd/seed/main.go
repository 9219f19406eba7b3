package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/avoronin/delivery-api/internal/auth"
	"github.com/avoronin/delivery-api/internal/domain"
	"github.com/avoronin/delivery-api/internal/repository"
)

type seedDish struct {
	name       string
	price      float64
	category   domain.DishCategory
	vegetarian bool
}

var menu = []seedDish{
	{"Tom Yum", 7.90, domain.CategorySoup, false},
	{"Mushroom Cream Soup", 5.40, domain.CategorySoup, true},
	{"Margherita", 9.50, domain.CategoryPizza, true},
	{"Pepperoni", 11.20, domain.CategoryPizza, false},
	{"Udon with Chicken", 8.70, domain.CategoryWok, false},
	{"Vegetable Wok", 7.30, domain.CategoryWok, true},
	{"Cheesecake", 4.80, domain.CategoryDessert, true},
	{"Tiramisu", 5.10, domain.CategoryDessert, true},
	{"Green Tea", 2.00, domain.CategoryDrink, true},
	{"Cola", 1.80, domain.CategoryDrink, true},
}

func main() {
	_ = godotenv.Load(".env.local")

	var (
		dsn      = flag.String("dsn", os.Getenv("DB_URL"), "postgres connection string")
		users    = flag.Int("users", 2, "number of demo users to create")
		tokenTTL = flag.Duration("token-ttl", 24*time.Hour, "lifetime of printed demo tokens")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("database DSN is required (flag -dsn or env DB_URL)")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dsn)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()

	repo := repository.NewWithPool(pool)

	dishIDs := make([]string, 0, len(menu))
	for _, item := range menu {
		dish, err := repo.Dishes.Create(ctx, repository.DishCreateParams{
			Name:       item.name,
			Price:      item.price,
			Category:   item.category,
			Vegetarian: item.vegetarian,
		})
		if err != nil {
			log.Fatalf("seed dish %q: %v", item.name, err)
		}
		dishIDs = append(dishIDs, dish.ID)
	}
	log.Printf("seeded %d dishes", len(dishIDs))

	secret := os.Getenv("JWT_SECRET")
	for i := 0; i < *users; i++ {
		email := fmt.Sprintf("demo-%s@example.com", uuid.NewString()[:8])
		userID, err := repo.Users.Create(ctx, email, fmt.Sprintf("Demo User %d", i+1))
		if err != nil {
			log.Fatalf("seed user %s: %v", email, err)
		}

		// Every demo user has received half the menu, so the rating
		// eligibility gate can be exercised both ways.
		delivered := dishIDs[:len(dishIDs)/2]
		if _, err := repo.Orders.CreateWithDishes(ctx, userID, domain.OrderDelivered, delivered); err != nil {
			log.Fatalf("seed delivered order for %s: %v", email, err)
		}
		if _, err := repo.Orders.CreateWithDishes(ctx, userID, domain.OrderInProcess, dishIDs[len(dishIDs)/2:]); err != nil {
			log.Fatalf("seed pending order for %s: %v", email, err)
		}

		log.Printf("seeded user %s (%s) with %d delivered dishes", email, userID, len(delivered))
		if secret != "" {
			token, err := auth.GenerateToken(secret, userID, *tokenTTL)
			if err != nil {
				log.Fatalf("generate token for %s: %v", email, err)
			}
			fmt.Printf("%s\t%s\n", email, token)
		}
	}
}
