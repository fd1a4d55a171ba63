package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guestTTL = 30 * 24 * time.Hour

// LocalStore mirrors a guest session's wishlist as one serialized item array
// under a well-known key.
type LocalStore struct {
	rdb     *redis.Client
	guestID string
}

func NewLocalStore(rdb *redis.Client, guestID string) *LocalStore {
	return &LocalStore{rdb: rdb, guestID: guestID}
}

func (s *LocalStore) key() string {
	return fmt.Sprintf("wishlist:%s", s.guestID)
}

func (s *LocalStore) Load(ctx context.Context) ([]Item, error) {
	data, err := s.rdb.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("wishlist: redis get: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("wishlist: unmarshal: %w", err)
	}
	return items, nil
}

func (s *LocalStore) save(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return s.Clear(ctx)
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("wishlist: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key(), data, guestTTL).Err(); err != nil {
		return fmt.Errorf("wishlist: redis set: %w", err)
	}
	return nil
}

func (s *LocalStore) Insert(ctx context.Context, item Item) (Item, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return Item{}, err
	}
	item.ID = uint64(time.Now().UnixMilli())
	items = append(items, item)
	if err := s.save(ctx, items); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (s *LocalStore) Delete(ctx context.Context, productID uint) error {
	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	return s.save(ctx, kept)
}

func (s *LocalStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("wishlist: redis del: %w", err)
	}
	return nil
}
