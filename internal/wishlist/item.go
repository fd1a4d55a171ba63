package wishlist

// Item is a saved-for-later product reference. There is no quantity; an item
// is either on the list or it is not.
type Item struct {
	ID        uint64  `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Slug      string  `json:"slug"`
	Category  string  `json:"category"`
	InStock   bool    `json:"in_stock"`
}
