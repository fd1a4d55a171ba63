package cart

import (
	"context"
	"sync"

	"github.com/buildmart/backend/internal/models"
	"github.com/buildmart/backend/internal/pricing"
)

// Facade keeps one session's cart in memory and writes through to the
// authoritative store chosen at construction. Mutations on the same product
// are serialized by a per-product lock, and the in-memory list only changes
// after the store write succeeded, so list and store cannot diverge silently.
type Facade struct {
	store Store

	mu    sync.Mutex
	items []Item

	locks productLocks
}

// Load fetches the session's items from the store and returns a ready Facade.
func Load(ctx context.Context, store Store) (*Facade, error) {
	items, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Facade{store: store, items: items}, nil
}

// AddItem puts quantity units of the product into the cart. If the product is
// already present the line's quantity grows instead of a second line
// appearing. Stock availability is the caller's problem.
func (f *Facade) AddItem(ctx context.Context, p models.Product, quantity uint) error {
	if quantity < 1 {
		quantity = 1
	}

	unlock := f.locks.lock(p.ID)
	defer unlock()

	if existing, ok := f.find(p.ID); ok {
		return f.setQuantity(ctx, p.ID, existing.Quantity+quantity)
	}

	item := Item{
		ProductID: p.ID,
		Quantity:  quantity,
		Name:      p.Name,
		Price:     pricing.Effective(p),
		ImageURL:  p.ImageURL,
		Slug:      p.Slug,
	}
	saved, err := f.store.Insert(ctx, item)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.items = append(f.items, saved)
	f.mu.Unlock()
	return nil
}

// UpdateQuantity sets the line for productID to quantity. Anything below 1
// removes the line entirely.
func (f *Facade) UpdateQuantity(ctx context.Context, productID, quantity uint) error {
	unlock := f.locks.lock(productID)
	defer unlock()

	return f.setQuantity(ctx, productID, quantity)
}

// RemoveItem deletes the line for productID. Removing an absent product is a
// silent no-op.
func (f *Facade) RemoveItem(ctx context.Context, productID uint) error {
	unlock := f.locks.lock(productID)
	defer unlock()

	return f.remove(ctx, productID)
}

// Clear empties the cart.
func (f *Facade) Clear(ctx context.Context) error {
	if err := f.store.Clear(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	f.items = nil
	f.mu.Unlock()
	return nil
}

// setQuantity assumes the product lock is held.
func (f *Facade) setQuantity(ctx context.Context, productID, quantity uint) error {
	if quantity < 1 {
		return f.remove(ctx, productID)
	}
	if _, ok := f.find(productID); !ok {
		return nil
	}
	if err := f.store.UpdateQuantity(ctx, productID, quantity); err != nil {
		return err
	}

	f.mu.Lock()
	for i := range f.items {
		if f.items[i].ProductID == productID {
			f.items[i].Quantity = quantity
		}
	}
	f.mu.Unlock()
	return nil
}

// remove assumes the product lock is held.
func (f *Facade) remove(ctx context.Context, productID uint) error {
	if _, ok := f.find(productID); !ok {
		return nil
	}
	if err := f.store.Delete(ctx, productID); err != nil {
		return err
	}

	f.mu.Lock()
	kept := f.items[:0]
	for _, it := range f.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	f.items = kept
	f.mu.Unlock()
	return nil
}

func (f *Facade) find(productID uint) (Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return Item{}, false
}

// Items returns a copy of the in-memory list.
func (f *Facade) Items() []Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out
}

func (f *Facade) Subtotal() float64 {
	return pricing.Subtotal(f.Items())
}

func (f *Facade) Total() float64 {
	return pricing.Total(f.Subtotal())
}

func (f *Facade) ItemCount() uint {
	return pricing.ItemCount(f.Items())
}

// productLocks hands out one mutex per product id so that two in-flight
// mutations of the same line cannot interleave their store round trips.
type productLocks struct {
	mu sync.Mutex
	m  map[uint]*sync.Mutex
}

func (l *productLocks) lock(productID uint) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[uint]*sync.Mutex)
	}
	pl, ok := l.m[productID]
	if !ok {
		pl = &sync.Mutex{}
		l.m[productID] = pl
	}
	l.mu.Unlock()

	pl.Lock()
	return pl.Unlock
}
