package models

import (
	"time"
)

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Slug        string `gorm:"uniqueIndex;not null"     json:"slug"`
	Description string `json:"description"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null"                 json:"name"`
	Slug          string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null"                 json:"price"`
	SalePrice     *float64  `json:"sale_price,omitempty"`
	ImageURL      string    `json:"image_url"`
	StockQuantity uint      `json:"stock_quantity"`
	CategoryID    *uint     `gorm:"index"                    json:"category_id,omitempty"`
	Category      *Category `gorm:"foreignKey:CategoryID"    json:"category,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	Name         string `json:"name"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

// CartItem is the remote row for an authenticated user's cart line.
// Display fields live on Product and are joined in at load time.
type CartItem struct {
	ID        uint64 `gorm:"primaryKey"                                  json:"id"`
	UserID    uint   `gorm:"index;not null;uniqueIndex:idx_cart_line"    json:"user_id"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_cart_line"          json:"product_id"`
	Quantity  uint   `gorm:"default:1;check:quantity>0"                  json:"quantity"`
}

type WishlistItem struct {
	ID        uint64 `gorm:"primaryKey"                               json:"id"`
	UserID    uint   `gorm:"index;not null;uniqueIndex:idx_wish_line" json:"user_id"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_wish_line"       json:"product_id"`
}

type Order struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UserID      uint    `gorm:"index;not null" json:"user_id"`
	Subtotal    float64 `gorm:"not null" json:"subtotal"`
	ShippingFee float64 `gorm:"not null" json:"shipping_fee"`
	Total       float64 `gorm:"not null" json:"total"`
	Status      string  `gorm:"not null" json:"status"`
	CreatedAt   int64   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	UserID    uint    `gorm:"not null" json:"user_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  uint    `json:"quantity"`
}
