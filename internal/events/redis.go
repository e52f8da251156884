package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const broadcastChannel = "events:broadcast"

// envelope - обертка события для публикации в Redis
type envelope struct {
	Event   string    `json:"event"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// RedisEmitter - реализация Emitter поверх Redis Pub/Sub
type RedisEmitter struct {
	redisClient *redis.Client
}

// NewRedisEmitter создает новый RedisEmitter
func NewRedisEmitter(client *redis.Client) *RedisEmitter {
	return &RedisEmitter{redisClient: client}
}

// Broadcast публикует событие в общий канал
func (e *RedisEmitter) Broadcast(ctx context.Context, event string, payload any) error {
	return e.publish(ctx, broadcastChannel, event, payload)
}

// EmitTo публикует событие в канал конкретной комнаты/пользователя
func (e *RedisEmitter) EmitTo(ctx context.Context, room string, event string, payload any) error {
	return e.publish(ctx, "events:room:"+room, event, payload)
}

func (e *RedisEmitter) publish(ctx context.Context, channel, event string, payload any) error {
	data, err := json.Marshal(envelope{Event: event, Payload: payload, At: time.Now()})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event, err)
	}

	if err := e.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish event %s to Redis: %w", event, err)
	}
	return nil
}
