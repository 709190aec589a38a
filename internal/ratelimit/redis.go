package ratelimit

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// The expiry is set only by the first hit so the window stays fixed.
var incrWindow = redis.NewScript(`
local c = redis.call("INCR", KEYS[1])
if c == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return c
`)

// Redis shares counters between instances.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "pedalads:rl:"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Allow(ctx context.Context, identifier string, p Policy) (bool, error) {
	if err := p.validate(); err != nil {
		return true, err
	}
	n, err := incrWindow.Run(ctx, r.client, []string{r.prefix + key(identifier, p.Action)}, p.Window.Milliseconds()).Int64()
	if err != nil {
		return true, fmt.Errorf("ratelimit: redis incr: %w", err)
	}
	return n <= int64(p.MaxRequests), nil
}
