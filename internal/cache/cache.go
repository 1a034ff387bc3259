// Package cache is a small key -> (value, expiry) byte cache used for whole-page caching.
package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Store keeps opaque values until their TTL expires.
type Store interface {
	// Get reports ok=false on a miss or an expired entry.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear drops every entry owned by the store.
	Clear(ctx context.Context) error
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// DefaultMaxEntries bounds a Memory store when no explicit cap is given.
const DefaultMaxEntries = 300

// Memory is an in-process Store. Expired entries are dropped lazily on read
// and swept on write once the store reaches its cap.
type Memory struct {
	mu         sync.RWMutex
	items      map[string]memoryItem
	now        func() time.Time
	maxEntries int
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithMaxEntries caps the number of live entries; n <= 0 keeps the default.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		if n > 0 {
			m.maxEntries = n
		}
	}
}

// WithClock lets tests move time forward without sleeping.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{items: make(map[string]memoryItem), now: time.Now, maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func NewMemoryWithClock(now func() time.Time, opts ...MemoryOption) *Memory {
	return NewMemory(append([]MemoryOption{WithClock(now)}, opts...)...)
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(it.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.items[key]; ok && cur.expiresAt.Equal(it.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return it.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	buf := make([]byte, len(value))
	copy(buf, value)
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[key]; !exists && len(m.items) >= m.maxEntries {
		m.cull(now)
	}
	m.items[key] = memoryItem{value: buf, expiresAt: now.Add(ttl)}
	return nil
}

// cull 先清掉已过期的条目；仍然满载时淘汰最早过期的三分之一。调用方需持有写锁
func (m *Memory) cull(now time.Time) {
	for k, it := range m.items {
		if !now.Before(it.expiresAt) {
			delete(m.items, k)
		}
	}
	if len(m.items) < m.maxEntries {
		return
	}
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return m.items[keys[i]].expiresAt.Before(m.items[keys[j]].expiresAt)
	})
	n := len(keys)/3 + 1
	for _, k := range keys[:n] {
		delete(m.items, k)
	}
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	m.items = make(map[string]memoryItem)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
