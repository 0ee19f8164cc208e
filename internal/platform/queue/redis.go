package queue

import (
	"context"
	"fmt"

	"coursework_tracker/internal/logger"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis(ctx context.Context, addr, password string, db int) error {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return fmt.Errorf("could not connect to Redis at %s: %w", addr, err)
	}
	RDB = client
	logger.NewNamedLogger("queue").Infof("Connected to Redis at %s", addr)
	return nil
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		logger.NewNamedLogger("queue").Info("Redis connection closed")
	}
}
