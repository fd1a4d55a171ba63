package wishlist

import "context"

// Store is the authoritative backing store for one session's wishlist,
// mirroring the cart's split between the Postgres row store and the Redis
// guest mirror.
type Store interface {
	Load(ctx context.Context) ([]Item, error)
	Insert(ctx context.Context, item Item) (Item, error)
	Delete(ctx context.Context, productID uint) error
	Clear(ctx context.Context) error
}
