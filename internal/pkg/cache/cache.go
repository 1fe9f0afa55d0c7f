// Package cache provides the injected result cache the salary orchestrator's
// caller owns. Keys are opaque strings; invalidation is by prefix so one
// teacher's cached periods can be dropped when an admin edits their records.
package cache

import (
	"strings"
	"sync"
	"time"
)

type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	// InvalidatePrefix drops every entry whose key starts with prefix.
	InvalidatePrefix(prefix string)
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Memory is a TTL map cache. Entries are evicted lazily on read.
type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl: ttl,
		m:   make(map[string]entry),
	}
}

func (c *Memory) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *Memory) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

func (c *Memory) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
}
