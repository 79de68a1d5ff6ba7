package config

import (
	"context"
	"os"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis stays nil when REDIS_ADDR is unset; the recent-foods cache then
// falls back to its in-process store.
var Redis *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		Log.Info("REDIS_ADDR not set, recent foods will use the in-memory store")
		return
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		Log.Fatal("failed to connect to redis", zap.String("addr", addr), zap.Error(err))
	}
}
