// Package redis implements the store's KV namespaces on a Redis backend.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nadalpiantini/tabgrouper/internal/store"
)

// KV is one prefixed namespace over a shared Redis client. Values are stored
// as-is with no TTL; the collections are small user-owned documents.
type KV struct {
	client *goredis.Client
	prefix string
}

// NewSynced returns the synced namespace.
func NewSynced(client *goredis.Client) *KV {
	return &KV{client: client, prefix: PrefixSynced}
}

// NewLocal returns the local-only namespace.
func NewLocal(client *goredis.Client) *KV {
	return &KV{client: client, prefix: PrefixLocal}
}

func (kv *KV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := kv.client.Get(ctx, kv.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

func (kv *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := kv.client.Set(ctx, kv.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	if err := kv.client.Del(ctx, kv.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
