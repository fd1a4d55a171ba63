package cart

import "context"

// Store is the authoritative backing store for one session's cart. An
// authenticated session is served by the Postgres row store, an anonymous one
// by the Redis mirror. Which of the two a Facade talks to is fixed when the
// Facade is constructed.
type Store interface {
	// Load returns every item of the session, in insertion order.
	Load(ctx context.Context) ([]Item, error)
	// Insert persists a new line and returns it with its assigned id.
	Insert(ctx context.Context, item Item) (Item, error)
	// UpdateQuantity sets the quantity of the line for productID.
	UpdateQuantity(ctx context.Context, productID, quantity uint) error
	// Delete removes the line for productID. Deleting an absent line is not
	// an error.
	Delete(ctx context.Context, productID uint) error
	// Clear removes every line of the session.
	Clear(ctx context.Context) error
}
