package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/maisonthread/storefront-backend/pkg/config"
	"github.com/maisonthread/storefront-backend/pkg/db"
	"github.com/maisonthread/storefront-backend/pkg/db/models"
	"github.com/maisonthread/storefront-backend/pkg/logger"
	"github.com/maisonthread/storefront-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a production database", errors.New("app env is prod"))
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	if err := seed(ctx, dbClient.DB()); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "seed complete")
}

func seed(ctx context.Context, conn *gorm.DB) error {
	categories := seedCategories()
	var errs []error
	for i := range categories {
		if err := upsertCategory(ctx, conn, &categories[i]); err != nil {
			errs = append(errs, fmt.Errorf("category %s: %w", categories[i].Slug, err))
		}
	}

	bySlug := map[string]models.Category{}
	for _, c := range categories {
		bySlug[c.Slug] = c
	}

	for _, p := range seedProducts(bySlug) {
		if err := upsertProduct(ctx, conn, &p); err != nil {
			errs = append(errs, fmt.Errorf("product %s: %w", p.Slug, err))
		}
	}

	return multierr.Combine(errs...)
}

func upsertCategory(ctx context.Context, conn *gorm.DB, category *models.Category) error {
	return conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "sort_order", "is_active"}),
		}).
		Create(category).Error
}

func upsertProduct(ctx context.Context, conn *gorm.DB, product *models.Product) error {
	return conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price_cents", "sale_price_cents", "stock_quantity", "is_active", "is_featured"}),
		}).
		Create(product).Error
}

func strPtr(s string) *string {
	return &s
}

func intPtr(v int) *int {
	return &v
}

func seedCategories() []models.Category {
	return []models.Category{
		{Name: "Women", Slug: "women", Description: strPtr("Womenswear from everyday staples to statement pieces"), IsActive: true, SortOrder: 1},
		{Name: "Men", Slug: "men", Description: strPtr("Menswear essentials and seasonal drops"), IsActive: true, SortOrder: 2},
		{Name: "Kids", Slug: "kids", Description: strPtr("Durable clothing for growing kids"), IsActive: true, SortOrder: 3},
		{Name: "Accessories", Slug: "accessories", Description: strPtr("Bags, belts, hats and more"), IsActive: true, SortOrder: 4},
		{Name: "Shoes", Slug: "shoes", Description: strPtr("Footwear for every season"), IsActive: true, SortOrder: 5},
		{Name: "Sale", Slug: "sale", Description: strPtr("Marked-down styles while stock lasts"), IsActive: true, SortOrder: 6},
	}
}

func seedProducts(categories map[string]models.Category) []models.Product {
	pick := func(slugs ...string) []models.Category {
		var out []models.Category
		for _, slug := range slugs {
			if c, ok := categories[slug]; ok {
				out = append(out, c)
			}
		}
		return out
	}

	return []models.Product{
		{
			Name:           "Denim Skinny Jeans",
			Slug:           "denim-skinny-jeans",
			Description:    "Stretch denim with a mid-rise skinny fit.",
			SKU:            "WJ-1001",
			PriceCents:     4999,
			SalePriceCents: intPtr(3999),
			StockQuantity:  120,
			Sizes:          []string{"XS", "S", "M", "L", "XL"},
			Colors:         []string{"Indigo", "Black"},
			IsActive:       true,
			IsFeatured:     true,
			Categories:     pick("women", "sale"),
		},
		{
			Name:          "Classic Crew Tee",
			Slug:          "classic-crew-tee",
			Description:   "Heavyweight combed cotton crew neck.",
			SKU:           "MT-2001",
			PriceCents:    1999,
			StockQuantity: 300,
			Sizes:         []string{"S", "M", "L", "XL", "XXL"},
			Colors:        []string{"White", "Black", "Heather Grey"},
			IsActive:      true,
			IsFeatured:    true,
			Categories:    pick("men"),
		},
		{
			Name:          "Wool Overcoat",
			Slug:          "wool-overcoat",
			Description:   "Single-breasted overcoat in an Italian wool blend.",
			SKU:           "MC-2101",
			PriceCents:    18900,
			StockQuantity: 40,
			Sizes:         []string{"S", "M", "L", "XL"},
			Colors:        []string{"Charcoal", "Camel"},
			IsActive:      true,
			Categories:    pick("men"),
		},
		{
			Name:           "Kids Rain Jacket",
			Slug:           "kids-rain-jacket",
			Description:    "Waterproof shell with taped seams and a packable hood.",
			SKU:            "KJ-3001",
			PriceCents:     3499,
			SalePriceCents: intPtr(2799),
			StockQuantity:  85,
			Sizes:          []string{"4Y", "6Y", "8Y", "10Y"},
			Colors:         []string{"Yellow", "Navy"},
			IsActive:       true,
			Categories:     pick("kids", "sale"),
		},
		{
			Name:          "Leather Belt",
			Slug:          "leather-belt",
			Description:   "Full-grain leather belt with a brushed buckle.",
			SKU:           "AC-4001",
			PriceCents:    2499,
			StockQuantity: 150,
			Sizes:         []string{"S", "M", "L"},
			Colors:        []string{"Brown", "Black"},
			IsActive:      true,
			Categories:    pick("accessories"),
		},
		{
			Name:          "Canvas Low-Top Sneakers",
			Slug:          "canvas-low-top-sneakers",
			Description:   "Vulcanized canvas sneakers with a cushioned insole.",
			SKU:           "SH-5001",
			PriceCents:    5499,
			StockQuantity: 95,
			Sizes:         []string{"7", "8", "9", "10", "11", "12"},
			Colors:        []string{"White", "Navy", "Red"},
			IsActive:      true,
			IsFeatured:    true,
			Categories:    pick("shoes"),
		},
	}
}
