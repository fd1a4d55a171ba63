package wishlist

import (
	"context"
	"sync"

	"github.com/buildmart/backend/internal/models"
	"github.com/buildmart/backend/internal/pricing"
)

// Facade keeps one session's wishlist in memory and writes through to the
// authoritative store chosen at construction. Presence only, no quantities.
type Facade struct {
	store Store

	mu    sync.Mutex
	items []Item
}

func Load(ctx context.Context, store Store) (*Facade, error) {
	items, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Facade{store: store, items: items}, nil
}

// AddItem saves the product. Adding a product that is already on the list is
// a silent no-op and must not grow the list.
func (f *Facade) AddItem(ctx context.Context, p models.Product) error {
	if f.IsInWishlist(p.ID) {
		return nil
	}

	category := "Uncategorized"
	if p.Category != nil && p.Category.Name != "" {
		category = p.Category.Name
	}
	item := Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     pricing.Effective(p),
		ImageURL:  p.ImageURL,
		Slug:      p.Slug,
		Category:  category,
		InStock:   p.StockQuantity > 0,
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

// RemoveItem drops the product from the list. Absent products are a no-op.
func (f *Facade) RemoveItem(ctx context.Context, productID uint) error {
	if !f.IsInWishlist(productID) {
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

// IsInWishlist is a pure membership check over the in-memory list.
func (f *Facade) IsInWishlist(productID uint) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

func (f *Facade) Items() []Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Item, len(f.items))
	copy(out, f.items)
	return out
}

// MergeOnLogin unions a guest wishlist into the user's remote one. Presence
// wins; duplicates are skipped. The guest copy is destroyed afterwards.
func MergeOnLogin(ctx context.Context, remote, local Store) error {
	guestItems, err := local.Load(ctx)
	if err != nil {
		return err
	}
	if len(guestItems) == 0 {
		return nil
	}

	remoteItems, err := remote.Load(ctx)
	if err != nil {
		return err
	}
	present := make(map[uint]bool, len(remoteItems))
	for _, it := range remoteItems {
		present[it.ProductID] = true
	}

	for _, gi := range guestItems {
		if present[gi.ProductID] {
			continue
		}
		if _, err := remote.Insert(ctx, gi); err != nil {
			return err
		}
	}

	return local.Clear(ctx)
}
