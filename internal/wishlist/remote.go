package wishlist

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildmart/backend/internal/models"
)

type RemoteStore struct {
	db     *gorm.DB
	userID uint
}

func NewRemoteStore(db *gorm.DB, userID uint) *RemoteStore {
	return &RemoteStore{db: db, userID: userID}
}

func (s *RemoteStore) Load(ctx context.Context) ([]Item, error) {
	var rows []struct {
		ID            uint64
		ProductID     uint
		Name          string
		Price         float64
		SalePrice     *float64
		ImageURL      string
		Slug          string
		CategoryName  *string
		StockQuantity uint
	}

	err := s.db.WithContext(ctx).
		Table("wishlist_items").
		Select("wishlist_items.id, wishlist_items.product_id, products.name, products.price, products.sale_price, products.image_url, products.slug, products.stock_quantity, categories.name AS category_name").
		Joins("JOIN products ON products.id = wishlist_items.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Where("wishlist_items.user_id = ?", s.userID).
		Order("wishlist_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("wishlist: load: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, r := range rows {
		price := r.Price
		if r.SalePrice != nil {
			price = *r.SalePrice
		}
		category := "Uncategorized"
		if r.CategoryName != nil && *r.CategoryName != "" {
			category = *r.CategoryName
		}
		items = append(items, Item{
			ID:        r.ID,
			ProductID: r.ProductID,
			Name:      r.Name,
			Price:     price,
			ImageURL:  r.ImageURL,
			Slug:      r.Slug,
			Category:  category,
			InStock:   r.StockQuantity > 0,
		})
	}
	return items, nil
}

func (s *RemoteStore) Insert(ctx context.Context, item Item) (Item, error) {
	row := models.WishlistItem{
		UserID:    s.userID,
		ProductID: item.ProductID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Item{}, fmt.Errorf("wishlist: insert: %w", err)
	}
	item.ID = row.ID
	return item, nil
}

func (s *RemoteStore) Delete(ctx context.Context, productID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", s.userID, productID).
		Delete(&models.WishlistItem{}).Error
	if err != nil {
		return fmt.Errorf("wishlist: delete: %w", err)
	}
	return nil
}

func (s *RemoteStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", s.userID).
		Delete(&models.WishlistItem{}).Error
	if err != nil {
		return fmt.Errorf("wishlist: clear: %w", err)
	}
	return nil
}
