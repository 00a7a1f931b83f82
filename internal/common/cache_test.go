package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := NewCache(5*time.Minute, 10*time.Minute)

	t.Run("set and get", func(t *testing.T) {
		c.Set(CacheKeyPost(1), "value")

		got, ok := c.Get(CacheKeyPost(1))
		assert.True(t, ok)
		assert.Equal(t, "value", got)
	})

	t.Run("miss", func(t *testing.T) {
		_, ok := c.Get(CacheKeyPost(999))
		assert.False(t, ok)
	})

	t.Run("custom expiration", func(t *testing.T) {
		c.Set(CacheKeyPosts(), "value", 10*time.Millisecond)

		time.Sleep(20 * time.Millisecond)

		_, ok := c.Get(CacheKeyPosts())
		assert.False(t, ok)
	})

	t.Run("flush", func(t *testing.T) {
		c.Set(CacheKeyPost(2), "value")
		c.Flush()

		_, ok := c.Get(CacheKeyPost(2))
		assert.False(t, ok)
	})
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "post:42", CacheKeyPost(42))
	assert.Equal(t, "posts", CacheKeyPosts())
}
