package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemory(time.Minute)

	c.Set("salary:t1:2024-01-01:2024-01-31", 42)

	v, ok := c.Get("salary:t1:2024-01-01:2024-01-31")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = c.Get("salary:t2:2024-01-01:2024-01-31")
	assert.False(t, ok)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemory(time.Millisecond)

	c.Set("k", "v")
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestMemoryCache_InvalidatePrefix(t *testing.T) {
	c := NewMemory(time.Minute)

	c.Set("salary:t1:a", 1)
	c.Set("salary:t1:b", 2)
	c.Set("salary:t2:a", 3)

	c.InvalidatePrefix("salary:t1:")

	_, ok := c.Get("salary:t1:a")
	assert.False(t, ok)
	_, ok = c.Get("salary:t1:b")
	assert.False(t, ok)

	v, ok := c.Get("salary:t2:a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}
