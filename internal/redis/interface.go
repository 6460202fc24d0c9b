package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the connection the script cache talks to. Tests back it with
// miniredis through testutils.CreateTestRedisClient.
type Client interface {
	redis.UniversalClient
}
