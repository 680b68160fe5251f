package data

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// StreamNotifications carries one entry per (recipient, event). The
// notification bot tails it and handles delivery.
const StreamNotifications = "bandhall.notifications"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// RedisNotifier publishes governance events to the notification
// stream. At-least-once at best: one XADD attempt per recipient, no
// retries, the caller logs failures.
type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func (n *RedisNotifier) Notify(ctx context.Context, userID, event string, payload map[string]any) error {
	values := map[string]any{
		"user_id": userID,
		"event":   event,
	}
	for k, v := range payload {
		values[k] = v
	}
	_, err := n.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamNotifications,
		Values: values,
	}).Result()
	return err
}
