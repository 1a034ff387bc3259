package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestMemory_TTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	m := NewMemoryWithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "index_page:/", []byte("v1"), 20*time.Second))

	clock.Advance(19 * time.Second)
	v, ok, err := m.Get(ctx, "index_page:/")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v1"), v)

	clock.Advance(time.Second)
	_, ok, err = m.Get(ctx, "index_page:/")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestMemory_SetCopiesValue(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'x'

	v, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(v))
}

func TestMemory_Clear(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, m.Clear(ctx))
	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestMemory_MaxEntriesBoundsGrowth(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	m := NewMemoryWithClock(clock.Now, WithMaxEntries(50))
	ctx := context.Background()

	for i := 0; i < 500; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("index_page:/?x=%d", i), []byte("v"), time.Hour))
		require.LessOrEqual(t, m.Len(), 50)
		clock.Advance(time.Second)
	}

	// 全部未过期：最新写入的保留，最早到期的被淘汰
	_, ok, err := m.Get(ctx, "index_page:/?x=499")
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = m.Get(ctx, "index_page:/?x=0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_FullStoreSweepsExpired(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_000_000, 0)}
	m := NewMemoryWithClock(clock.Now, WithMaxEntries(10))
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"), 20*time.Second))
	}
	require.Equal(t, 10, m.Len())

	clock.Advance(time.Hour)
	require.NoError(t, m.Set(ctx, "fresh", []byte("v"), 20*time.Second))
	assert.Equal(t, 1, m.Len())
}

func TestMemory_OverwriteAtCapKeepsOthers(t *testing.T) {
	m := NewMemory(WithMaxEntries(2))
	ctx := context.Background()
	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, m.Set(ctx, "a", []byte("3"), time.Minute))

	assert.Equal(t, 2, m.Len())
	v, ok, err := m.Get(ctx, "b")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2", string(v))
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedis_TTL(t *testing.T) {
	mr, client := newRedis(t)
	r := NewRedis(client, "yatube:")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "index_page:/?page=2", []byte("body"), 20*time.Second))
	assert.True(t, mr.Exists("yatube:index_page:/?page=2"))

	v, ok, err := r.Get(ctx, "index_page:/?page=2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("body"), v)

	mr.FastForward(21 * time.Second)
	_, ok, err = r.Get(ctx, "index_page:/?page=2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_ClearOnlyOwnPrefix(t *testing.T) {
	mr, client := newRedis(t)
	r := NewRedis(client, "yatube:")
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, r.Set(ctx, k, []byte(k), time.Minute))
	}
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, r.Clear(ctx))
	for _, k := range []string{"a", "b", "c"} {
		_, ok, err := r.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.True(t, mr.Exists("other:key"))
}

func TestRedis_GetError(t *testing.T) {
	mr, client := newRedis(t)
	r := NewRedis(client, "p:")
	mr.Close()

	_, ok, err := r.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
