package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so repositories can run against a
// single node, a cluster or a sentinel-managed primary alike
type Client interface {
	redis.UniversalClient
}
