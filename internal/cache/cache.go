package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces every key this service writes.
const keyPrefix = "foodorder:"

// ErrDisabled is returned by writes when no Redis address is configured.
var ErrDisabled = errors.New("redis not configured")

// Client is a thin Redis wrapper. A nil *Client is valid: it holds no keys and
// rejects writes with ErrDisabled.
type Client struct {
	rdb *redis.Client
}

// New connects lazily to Redis at addr. An empty addr disables Redis and
// returns nil.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return nil
	}
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// Enabled reports whether a Redis address was configured.
func (c *Client) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Ping reports whether Redis is reachable. A disabled client is always reachable.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

// Set stores value under key for ttl.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	return c.rdb.Set(ctx, keyPrefix+key, value, ttl).Err()
}

// Exists reports whether key is present. A disabled client reports false
// without error; Redis failures are returned to the caller.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	if !c.Enabled() {
		return false, nil
	}
	n, err := c.rdb.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
