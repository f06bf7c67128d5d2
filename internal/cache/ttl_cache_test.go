package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLCache_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := NewTTLCache[string, int]()
	c.now = func() time.Time { return now }

	c.Set("a", 1, time.Minute)
	c.Set("forever", 2, 0)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	now = now.Add(2 * time.Minute)

	_, ok = c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("forever")
	assert.True(t, ok)

	c.Delete("forever")
	_, ok = c.Get("forever")
	assert.False(t, ok)
}

func TestTTLCache_NilSafe(t *testing.T) {
	var c *TTLCache[string, int]
	c.Set("a", 1, time.Second)
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestGetOrLoad(t *testing.T) {
	c := NewTTLCache[string, []string]()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"A1", "A2"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOrLoad[string, []string](context.Background(), c, "codes", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"A1", "A2"}, v)
	}
	assert.Equal(t, 1, calls)
}

func TestGetOrLoad_ErrorsNotCached(t *testing.T) {
	c := NewTTLCache[string, int]()
	boom := errors.New("boom")
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 7, nil
	}

	_, err := GetOrLoad[string, int](context.Background(), c, "k", time.Minute, load)
	assert.ErrorIs(t, err, boom)

	v, err := GetOrLoad[string, int](context.Background(), c, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestNew(t *testing.T) {
	_, isNoop := New[string, int](0).(NoopCache[string, int])
	assert.True(t, isNoop)

	_, isTTL := New[string, int](time.Second).(*TTLCache[string, int])
	assert.True(t, isTTL)

	n := NoopCache[string, int]{}
	n.Set("a", 1, time.Minute)
	_, ok := n.Get("a")
	assert.False(t, ok)
}
