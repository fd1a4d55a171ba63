package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeOnLoginSumsSharedProducts(t *testing.T) {
	ctx := context.Background()
	remote := &fakeStore{}
	local := &fakeStore{}

	_, err := remote.Insert(ctx, Item{ProductID: 1, Quantity: 2, Price: 230})
	require.NoError(t, err)
	_, err = local.Insert(ctx, Item{ProductID: 1, Quantity: 3, Price: 230})
	require.NoError(t, err)
	_, err = local.Insert(ctx, Item{ProductID: 2, Quantity: 1, Price: 250})
	require.NoError(t, err)

	require.NoError(t, MergeOnLogin(ctx, remote, local))

	merged := remote.snapshot()
	require.Len(t, merged, 2)
	require.Equal(t, uint(5), merged[0].Quantity)
	require.Equal(t, uint(2), merged[1].ProductID)
	require.Equal(t, uint(1), merged[1].Quantity)

	// The guest copy is destroyed so it cannot resurface in a later session.
	require.Empty(t, local.snapshot())
}

func TestMergeOnLoginEmptyGuestCartTouchesNothing(t *testing.T) {
	ctx := context.Background()
	remote := &fakeStore{}
	local := &fakeStore{}

	_, err := remote.Insert(ctx, Item{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, MergeOnLogin(ctx, remote, local))
	require.Len(t, remote.snapshot(), 1)
	require.Equal(t, uint(2), remote.snapshot()[0].Quantity)
}

func TestMergeOnLoginIntoEmptyAccount(t *testing.T) {
	ctx := context.Background()
	remote := &fakeStore{}
	local := &fakeStore{}

	_, err := local.Insert(ctx, Item{ProductID: 3, Quantity: 4})
	require.NoError(t, err)

	require.NoError(t, MergeOnLogin(ctx, remote, local))
	merged := remote.snapshot()
	require.Len(t, merged, 1)
	require.Equal(t, uint(3), merged[0].ProductID)
	require.Equal(t, uint(4), merged[0].Quantity)
	require.Empty(t, local.snapshot())
}

func TestSessionsDoNotShareState(t *testing.T) {
	ctx := context.Background()
	userStore := &fakeStore{}
	guestStore := &fakeStore{}

	userCart, err := Load(ctx, userStore)
	require.NoError(t, err)
	guestCart, err := Load(ctx, guestStore)
	require.NoError(t, err)

	require.NoError(t, userCart.AddItem(ctx, product(1, 230), 2))

	require.Empty(t, guestCart.Items())
	require.Empty(t, guestStore.snapshot())
	require.Len(t, userStore.snapshot(), 1)
}
