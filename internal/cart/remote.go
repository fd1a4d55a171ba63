package cart

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/buildmart/backend/internal/models"
)

// RemoteStore keeps cart lines as rows scoped by user id. Display fields are
// joined in from products at load time, so price changes show up on the next
// load rather than being frozen at add time.
type RemoteStore struct {
	db     *gorm.DB
	userID uint
}

func NewRemoteStore(db *gorm.DB, userID uint) *RemoteStore {
	return &RemoteStore{db: db, userID: userID}
}

func (s *RemoteStore) Load(ctx context.Context) ([]Item, error) {
	var rows []struct {
		ID        uint64
		ProductID uint
		Quantity  uint
		Name      string
		Price     float64
		SalePrice *float64
		ImageURL  string
		Slug      string
	}

	err := s.db.WithContext(ctx).
		Table("cart_items").
		Select("cart_items.id, cart_items.product_id, cart_items.quantity, products.name, products.price, products.sale_price, products.image_url, products.slug").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", s.userID).
		Order("cart_items.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, r := range rows {
		price := r.Price
		if r.SalePrice != nil {
			price = *r.SalePrice
		}
		items = append(items, Item{
			ID:        r.ID,
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			Name:      r.Name,
			Price:     price,
			ImageURL:  r.ImageURL,
			Slug:      r.Slug,
		})
	}
	return items, nil
}

func (s *RemoteStore) Insert(ctx context.Context, item Item) (Item, error) {
	row := models.CartItem{
		UserID:    s.userID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Item{}, fmt.Errorf("cart: insert: %w", err)
	}
	item.ID = row.ID
	return item, nil
}

func (s *RemoteStore) UpdateQuantity(ctx context.Context, productID, quantity uint) error {
	err := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", s.userID, productID).
		Update("quantity", quantity).Error
	if err != nil {
		return fmt.Errorf("cart: update quantity: %w", err)
	}
	return nil
}

func (s *RemoteStore) Delete(ctx context.Context, productID uint) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", s.userID, productID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("cart: delete: %w", err)
	}
	return nil
}

func (s *RemoteStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", s.userID).
		Delete(&models.CartItem{}).Error
	if err != nil {
		return fmt.Errorf("cart: clear: %w", err)
	}
	return nil
}
