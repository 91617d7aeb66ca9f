package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of redis.UniversalClient this service relies on.
// The concrete go-redis clients satisfy it, as does a miniredis-backed
// client in tests.
type Client interface {
	redis.Cmdable
	Close() error
}
