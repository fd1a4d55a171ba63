package cart

// Item is one product line of a session's cart. Display fields are
// denormalized from the product so the cart can render without extra reads.
type Item struct {
	ID        uint64  `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Slug      string  `json:"slug"`
}

func (i Item) UnitPrice() float64 { return i.Price }

func (i Item) Units() uint { return i.Quantity }
