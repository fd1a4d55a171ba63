package wishlist

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/buildmart/backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}, &models.WishlistItem{}))
	return db
}

func TestRemoteStoreLoad(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.Category{ID: 1, Name: "Waterproofing", Slug: "waterproofing"}).Error)
	catID := uint(1)
	sale := 199.0
	require.NoError(t, db.Create(&[]models.Product{
		{ID: 1, Name: "Aquaseal Coat", Slug: "aquaseal-coat", Price: 230, SalePrice: &sale, StockQuantity: 10, CategoryID: &catID},
		{ID: 2, Name: "Repair Mortar", Slug: "repair-mortar", Price: 250, StockQuantity: 0},
	}).Error)

	store := NewRemoteStore(db, 7)
	_, err := store.Insert(ctx, Item{ProductID: 1})
	require.NoError(t, err)
	_, err = store.Insert(ctx, Item{ProductID: 2})
	require.NoError(t, err)

	items, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.Equal(t, "Aquaseal Coat", items[0].Name)
	require.Equal(t, 199.0, items[0].Price)
	require.Equal(t, "Waterproofing", items[0].Category)
	require.True(t, items[0].InStock)

	// No category falls back to the placeholder, zero stock shows as out.
	require.Equal(t, "Uncategorized", items[1].Category)
	require.False(t, items[1].InStock)
}

func TestRemoteStoreDeleteAndClearScopedToUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Product{ID: 1, Name: "Grout", Slug: "grout", Price: 90}).Error)

	mine := NewRemoteStore(db, 7)
	theirs := NewRemoteStore(db, 8)

	_, err := mine.Insert(ctx, Item{ProductID: 1})
	require.NoError(t, err)
	_, err = theirs.Insert(ctx, Item{ProductID: 1})
	require.NoError(t, err)

	require.NoError(t, mine.Clear(ctx))

	items, err := mine.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	otherItems, err := theirs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, otherItems, 1)
}
