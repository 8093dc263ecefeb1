package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_EmptyAddrDisablesRedis(t *testing.T) {
	c := New("", "", 0)
	assert.Nil(t, c)
	assert.False(t, c.Enabled())
}

func TestNilClient_RejectsWrites(t *testing.T) {
	var c *Client
	ctx := context.Background()

	assert.ErrorIs(t, c.Set(ctx, "k", []byte("v"), time.Minute), ErrDisabled)

	found, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestUnreachableRedis_ReturnsErrors(t *testing.T) {
	// Port 1 is reserved; nothing listens there.
	c := New("127.0.0.1:1", "", 0)
	t.Cleanup(func() { _ = c.Close() })
	assert.True(t, c.Enabled())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	found, err := c.Exists(ctx, "k")
	assert.Error(t, err)
	assert.False(t, found)

	assert.Error(t, c.Ping(ctx))
}
