package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	c := New(nil, "iqro")

	assert.False(t, c.Enabled())
	c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute)

	var out map[string]int
	assert.False(t, c.Get(ctx, "k", &out))
	assert.Nil(t, out)

	c.Del(ctx, "k")

	var nilCache *JSONCache
	assert.False(t, nilCache.Enabled())
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "iqro:lb:1", New(nil, "iqro").key("lb:1"))
	assert.Equal(t, "lb:1", New(nil, "").key("lb:1"))
}
