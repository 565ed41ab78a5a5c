package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// INCR and the first-hit PEXPIRE run in one script so concurrent requests
// cannot observe a counter without a deadline.
var fixedWindowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// RedisWindowStore keeps counters in Redis, shared by every server process.
type RedisWindowStore struct {
	client redis.Scripter
	window time.Duration
	prefix string
}

func NewRedisWindowStore(client redis.Scripter, window time.Duration) *RedisWindowStore {
	return &RedisWindowStore{
		client: client,
		window: window,
		prefix: "ratelimit:chat:",
	}
}

func (s *RedisWindowStore) Hit(ctx context.Context, key string) (int, time.Time, error) {
	vals, err := fixedWindowScript.Run(ctx, s.client, []string{s.prefix + key}, s.window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 2 {
		return 0, time.Time{}, fmt.Errorf("rate limit script: unexpected reply %v", vals)
	}

	ttl := time.Duration(vals[1]) * time.Millisecond
	if ttl < 0 {
		ttl = s.window
	}
	return int(vals[0]), time.Now().Add(ttl), nil
}
