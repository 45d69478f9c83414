package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
)

// JSONCache: cache JSON tipis di atas redis. Semua method aman dipanggil saat Client nil
// (cache nonaktif = selalu miss, set/del no-op).
type JSONCache struct {
	Client *redis.Client
	Prefix string
}

func New(client *redis.Client, prefix string) *JSONCache {
	return &JSONCache{Client: client, Prefix: prefix}
}

func (c *JSONCache) key(k string) string {
	if c.Prefix == "" {
		return k
	}
	return c.Prefix + ":" + k
}

func (c *JSONCache) Enabled() bool {
	return c != nil && c.Client != nil
}

// Get mengisi dst dan mengembalikan true kalau hit.
func (c *JSONCache) Get(ctx context.Context, k string, dst any) bool {
	if !c.Enabled() {
		return false
	}
	raw, err := c.Client.Get(ctx, c.key(k)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] get %s gagal: %v", k, err)
		}
		return false
	}
	if err := sonic.Unmarshal(raw, dst); err != nil {
		log.Printf("[CACHE] decode %s gagal: %v", k, err)
		return false
	}
	return true
}

func (c *JSONCache) Set(ctx context.Context, k string, v any, ttl time.Duration) {
	if !c.Enabled() || ttl <= 0 {
		return
	}
	raw, err := sonic.Marshal(v)
	if err != nil {
		log.Printf("[CACHE] encode %s gagal: %v", k, err)
		return
	}
	if err := c.Client.Set(ctx, c.key(k), raw, ttl).Err(); err != nil {
		log.Printf("[CACHE] set %s gagal: %v", k, err)
	}
}

// Del menghapus key-key yang disebut (tanpa prefix, ditambahkan di sini).
func (c *JSONCache) Del(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}
	if err := c.Client.Del(ctx, full...).Err(); err != nil {
		log.Printf("[CACHE] del %v gagal: %v", keys, err)
	}
}
