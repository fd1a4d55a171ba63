package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb, _ := newTestRedis(t)
	store := NewLocalStore(rdb, "guest-1")

	items, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	saved, err := store.Insert(ctx, Item{ProductID: 1, Quantity: 2, Name: "Aquaseal Coat", Price: 230})
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	_, err = store.Insert(ctx, Item{ProductID: 2, Quantity: 1, Name: "Repair Mortar", Price: 250})
	require.NoError(t, err)

	items, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Aquaseal Coat", items[0].Name)
	require.Equal(t, uint(2), items[0].Quantity)

	require.NoError(t, store.UpdateQuantity(ctx, 1, 5))
	items, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, uint(5), items[0].Quantity)

	require.NoError(t, store.Delete(ctx, 2))
	items, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestLocalStoreClearDropsKey(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newTestRedis(t)
	store := NewLocalStore(rdb, "guest-1")

	_, err := store.Insert(ctx, Item{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	require.True(t, mr.Exists("cart:guest-1"))

	require.NoError(t, store.Clear(ctx))
	require.False(t, mr.Exists("cart:guest-1"))

	// Deleting the last line also drops the key instead of storing "[]".
	_, err = store.Insert(ctx, Item{ProductID: 1, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, 1))
	require.False(t, mr.Exists("cart:guest-1"))
}

func TestLocalStoreKeyedByGuest(t *testing.T) {
	ctx := context.Background()
	rdb, _ := newTestRedis(t)

	a := NewLocalStore(rdb, "guest-a")
	b := NewLocalStore(rdb, "guest-b")

	_, err := a.Insert(ctx, Item{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	items, err := b.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestMergeOnLoginFromLocalToRemote(t *testing.T) {
	ctx := context.Background()
	rdb, mr := newTestRedis(t)
	db := newTestDB(t)
	seedProducts(t, db)

	local := NewLocalStore(rdb, "guest-1")
	_, err := local.Insert(ctx, Item{ProductID: 1, Quantity: 3})
	require.NoError(t, err)
	_, err = local.Insert(ctx, Item{ProductID: 2, Quantity: 1})
	require.NoError(t, err)

	remote := NewRemoteStore(db, 7)
	_, err = remote.Insert(ctx, Item{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, MergeOnLogin(ctx, remote, local))

	items, err := remote.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, uint(5), items[0].Quantity)
	require.False(t, mr.Exists("cart:guest-1"))
}
