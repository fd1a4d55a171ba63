package cart

import "context"

// MergeOnLogin folds a guest cart into the user's remote cart: the two item
// sets are unioned, quantities are summed for products present in both, and
// the guest copy is destroyed afterwards so it cannot leak into a later
// session on the same browser.
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
	byProduct := make(map[uint]Item, len(remoteItems))
	for _, it := range remoteItems {
		byProduct[it.ProductID] = it
	}

	for _, gi := range guestItems {
		if ri, ok := byProduct[gi.ProductID]; ok {
			if err := remote.UpdateQuantity(ctx, gi.ProductID, ri.Quantity+gi.Quantity); err != nil {
				return err
			}
			continue
		}
		if _, err := remote.Insert(ctx, gi); err != nil {
			return err
		}
	}

	return local.Clear(ctx)
}
