package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *InMemoryCache {
	t.Helper()
	c, err := NewCache(&Config{
		DefaultExpiration: 300,
		CleanupInterval:   600,
	})
	require.NoError(t, err)
	return c
}

func TestNewCache(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		c, err := NewCache(nil)
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("never expire", func(t *testing.T) {
		c, err := NewCache(&Config{DefaultExpiration: -1, CleanupInterval: -1})
		require.NoError(t, err)
		assert.NotNil(t, c)
	})

	t.Run("invalid expiration", func(t *testing.T) {
		_, err := NewCache(&Config{DefaultExpiration: -5, CleanupInterval: 10})
		assert.Error(t, err)
	})

	t.Run("invalid cleanup interval", func(t *testing.T) {
		_, err := NewCache(&Config{DefaultExpiration: 10, CleanupInterval: -2})
		assert.Error(t, err)
	})
}

func TestSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user:1", "one", 0))
	val, err := c.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, "one", val)

	// overwrite
	require.NoError(t, c.Set(ctx, "user:1", "uno", 0))
	val, err = c.Get(ctx, "user:1")
	require.NoError(t, err)
	assert.Equal(t, "uno", val)

	values, err := c.GetByPattern(ctx, "*")
	require.NoError(t, err)
	assert.Len(t, values, 1)
}

func TestGet_Missing(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestSet_TTLExpires(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", "lived", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestGetByPattern(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "user:a", "A", -1))
	require.NoError(t, c.Set(ctx, "user:b", "B", -1))
	require.NoError(t, c.Set(ctx, "team:a", "T", -1))

	values, err := c.GetByPattern(ctx, "user:*")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"user:a": "A", "user:b": "B"}, values)

	values, err = c.GetByPattern(ctx, "group:*")
	require.NoError(t, err)
	assert.Empty(t, values)
	assert.NotNil(t, values)
}

func TestGetByPattern_BadPattern(t *testing.T) {
	c := newTestCache(t)

	for _, pattern := range []string{"user:[", "user:[a"} {
		_, err := c.GetByPattern(context.Background(), pattern)
		assert.ErrorIs(t, err, ErrBadPattern, pattern)
	}
}

func TestGetByPattern_Glob(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	keys := []string{"user:a/b", "user:ab", "user:b", "user:héllo", "user:line\nbreak", "user:*", "user:]"}
	for _, k := range keys {
		require.NoError(t, c.Set(ctx, k, k, -1))
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{pattern: "user:*", want: keys},
		{pattern: "user:a*", want: []string{"user:a/b", "user:ab"}},
		{pattern: "user:?", want: []string{"user:b", "user:*", "user:]"}},
		{pattern: "user:[ab]b", want: []string{"user:ab"}},
		{pattern: "user:h?llo", want: []string{"user:héllo"}},
		{pattern: `user:\*`, want: []string{"user:*"}},
		{pattern: `user:[\]]`, want: []string{"user:]"}},
		{pattern: "user:line*", want: []string{"user:line\nbreak"}},
		{pattern: "user.*", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			values, err := c.GetByPattern(ctx, tt.pattern)
			require.NoError(t, err)

			var got []string
			for k := range values {
				got = append(got, k)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}
