package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maisonthread/storefront-backend/pkg/db/models"
	"github.com/maisonthread/storefront-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  sku TEXT NOT NULL UNIQUE,
  price_cents INTEGER NOT NULL,
  sale_price_cents INTEGER,
  stock_quantity INTEGER NOT NULL DEFAULT 0,
  sizes TEXT,
  colors TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	productCategories := `
CREATE TABLE IF NOT EXISTS product_categories (
  product_id TEXT NOT NULL,
  category_id TEXT NOT NULL,
  PRIMARY KEY (product_id, category_id)
);`
	require.NoError(t, db.Exec(categories).Error)
	require.NoError(t, db.Exec(products).Error)
	require.NoError(t, db.Exec(productCategories).Error)
	return db
}

func newCategory(t *testing.T, db *gorm.DB, name string, sortOrder int) *models.Category {
	t.Helper()

	category := &models.Category{
		ID:        uuid.New(),
		Name:      fmt.Sprintf("%s %s", name, uuid.NewString()[:8]),
		Slug:      fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
		IsActive:  true,
		SortOrder: sortOrder,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func newProduct(t *testing.T, db *gorm.DB, name string, priceCents int, created time.Time, mutate func(*models.Product)) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:            uuid.New(),
		Name:          name,
		Slug:          fmt.Sprintf("p-%s", uuid.NewString()),
		SKU:           fmt.Sprintf("SKU-%s", uuid.NewString()),
		PriceCents:    priceCents,
		StockQuantity: 10,
		Sizes:         []string{"S", "M", "L"},
		Colors:        []string{"Black"},
		IsActive:      true,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	if mutate != nil {
		mutate(product)
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryFindBySlug(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	created := newProduct(t, db, "Denim Skinny Jeans", 4999, time.Now().UTC(), nil)

	found, err := repo.FindBySlug(context.Background(), created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, 4999, found.PriceCents)
	assert.Equal(t, []string{"S", "M", "L"}, found.Sizes)

	_, err = repo.FindBySlug(context.Background(), "missing-slug")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryList_filtersAndPagination(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	category := newCategory(t, db, "women", 1)
	now := time.Now().UTC()

	inCategory := newProduct(t, db, "Floral Summer Dress", 5999, now, nil)
	require.NoError(t, db.Model(inCategory).Association("Categories").Append(category))

	newProduct(t, db, "Leather Belt", 1999, now.Add(-time.Minute), nil)
	newProduct(t, db, "Hidden Jacket", 8999, now.Add(-2*time.Minute), func(p *models.Product) {
		p.IsActive = false
	})

	byCategory, err := repo.List(context.Background(), ListFilter{
		CategorySlug: category.Slug,
		ActiveOnly:   true,
	})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, inCategory.ID, byCategory[0].ID)

	bySearch, err := repo.List(context.Background(), ListFilter{
		ActiveOnly: true,
		SearchTerm: "floral summer",
	})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, inCategory.ID, bySearch[0].ID)

	inactiveHidden, err := repo.List(context.Background(), ListFilter{
		ActiveOnly: true,
		SearchTerm: "hidden jacket",
	})
	require.NoError(t, err)
	assert.Empty(t, inactiveHidden)
}

func TestRepositoryList_cursorWalksNewestFirst(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	marker := uuid.NewString()[:8]
	now := time.Now().UTC()
	older := newProduct(t, db, "Walk Older "+marker, 1000, now.Add(-time.Hour), nil)
	newer := newProduct(t, db, "Walk Newer "+marker, 2000, now, nil)

	first, err := repo.List(context.Background(), ListFilter{
		ActiveOnly: true,
		SearchTerm: "walk",
		Pagination: pagination.Params{Limit: 1},
	})
	require.NoError(t, err)
	// one extra row is fetched to signal the next page
	require.Len(t, first, 2)
	assert.Equal(t, newer.ID, first[0].ID)

	cursor := pagination.EncodeCursor(pagination.Cursor{CreatedAt: first[0].CreatedAt, ID: first[0].ID})
	second, err := repo.List(context.Background(), ListFilter{
		ActiveOnly: true,
		SearchTerm: "walk",
		Pagination: pagination.Params{Limit: 1, Cursor: cursor},
	})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, older.ID, second[0].ID)
}

func TestRepositoryDecrementStock(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	product := newProduct(t, db, "Stocked Tee", 1500, time.Now().UTC(), func(p *models.Product) {
		p.StockQuantity = 3
	})

	ok, err := repo.DecrementStock(context.Background(), product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(context.Background(), product.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "guard must reject oversell")

	reloaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.StockQuantity)
}

func TestRepositoryListCategoriesOrdering(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	later := newCategory(t, db, "shoes", 50)
	earlier := newCategory(t, db, "accessories", 10)

	categories, err := repo.ListCategories(context.Background(), true)
	require.NoError(t, err)

	posEarlier, posLater := -1, -1
	for i, c := range categories {
		switch c.ID {
		case earlier.ID:
			posEarlier = i
		case later.ID:
			posLater = i
		}
	}
	require.NotEqual(t, -1, posEarlier)
	require.NotEqual(t, -1, posLater)
	assert.Less(t, posEarlier, posLater)
}
