package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	return New(client, &logger), mr
}

func TestReadThrough_LoadsOnceThenServesCache(t *testing.T) {
	t.Parallel()

	c, mr := newCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (*item, error) {
		calls++
		return &item{ID: 1, Name: "Go"}, nil
	}

	got, err := ReadThrough(ctx, c, SkillKey(1), time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, &item{ID: 1, Name: "Go"}, got)

	got, err = ReadThrough(ctx, c, SkillKey(1), time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Name)
	assert.Equal(t, 1, calls)

	assert.True(t, mr.Exists(SkillKey(1)))
	assert.Equal(t, time.Minute, mr.TTL(SkillKey(1)))
}

func TestReadThrough_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	c, mr := newCache(t)
	boom := errors.New("boom")

	_, err := ReadThrough(context.Background(), c, SkillKey(2), time.Minute, func(context.Context) (*item, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(SkillKey(2)))
}

func TestReadThrough_FallsBackWhenRedisIsDown(t *testing.T) {
	t.Parallel()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 5 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	c := New(client, &logger)

	got, err := ReadThrough(context.Background(), c, SkillKey(3), time.Minute, func(context.Context) (*item, error) {
		return &item{ID: 3}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got.ID)
}

func TestReadThrough_NilCache(t *testing.T) {
	t.Parallel()

	got, err := ReadThrough(context.Background(), nil, SkillKey(4), time.Minute, func(context.Context) (*item, error) {
		return &item{ID: 4}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, got.ID)
}

func TestInvalidate(t *testing.T) {
	t.Parallel()

	c, mr := newCache(t)
	require.NoError(t, mr.Set(SkillKey(5), `{"id":5}`))

	c.Invalidate(context.Background(), SkillKey(5))
	assert.False(t, mr.Exists(SkillKey(5)))
}
