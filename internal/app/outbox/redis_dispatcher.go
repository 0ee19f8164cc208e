package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisDispatcher pushes the request onto a Redis list consumed by the runner.
type RedisDispatcher struct {
	rdb   redis.Cmdable
	queue string
}

func NewRedisDispatcher(rdb redis.Cmdable, queue string) *RedisDispatcher {
	return &RedisDispatcher{rdb: rdb, queue: queue}
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, req RunRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal run request: %w", err)
	}
	if err := d.rdb.LPush(ctx, d.queue, body).Err(); err != nil {
		return fmt.Errorf("failed to push run request to Redis queue %s: %w", d.queue, err)
	}
	return nil
}
