// Package pricing holds the aggregate helpers shared by the cart and the
// checkout flow. All amounts are in EGP.
package pricing

import "github.com/buildmart/backend/internal/models"

// FlatShippingFee is charged once per order when the cart is not empty.
const FlatShippingFee = 50.0

// Line is one priced cart position.
type Line interface {
	UnitPrice() float64
	Units() uint
}

func Subtotal[L Line](lines []L) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.UnitPrice() * float64(l.Units())
	}
	return sum
}

func ItemCount[L Line](lines []L) uint {
	var n uint
	for _, l := range lines {
		n += l.Units()
	}
	return n
}

// Total applies the flat shipping fee. An empty cart ships for free.
func Total(subtotal float64) float64 {
	if subtotal > 0 {
		return subtotal + FlatShippingFee
	}
	return subtotal
}

// Effective returns the price a customer pays for one unit, preferring the
// sale price when the product has one.
func Effective(p models.Product) float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}
