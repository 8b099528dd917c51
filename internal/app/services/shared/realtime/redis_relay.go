package realtime

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/pkg/constvars"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type relayEnvelope struct {
	UserID  string          `json:"userId"`
	Payload json.RawMessage `json:"payload"`
}

// RedisRelay shares publishes between service instances over a redis
// pub/sub channel so a user connected to any instance receives them.
type RedisRelay struct {
	client         *redis.Client
	redisRepo      contracts.RedisRepository
	hub            *Hub
	channel        string
	reconnectDelay time.Duration
	Log            *zap.Logger
}

func NewRedisRelay(client *redis.Client, redisRepo contracts.RedisRepository, hub *Hub, channel string, reconnectDelay time.Duration, logger *zap.Logger) *RedisRelay {
	if channel == "" {
		channel = constvars.RedisRealtimeChannel
	}
	if reconnectDelay <= 0 {
		reconnectDelay = 5 * time.Second
	}
	return &RedisRelay{
		client:         client,
		redisRepo:      redisRepo,
		hub:            hub,
		channel:        channel,
		reconnectDelay: reconnectDelay,
		Log:            logger,
	}
}

func (r *RedisRelay) Publish(ctx context.Context, userID string, payload []byte) error {
	return r.redisRepo.Publish(ctx, r.channel, &relayEnvelope{UserID: userID, Payload: payload})
}

// Run subscribes to the relay channel and delivers every message to the
// local hub. It resubscribes after any failure, waiting reconnectDelay
// between attempts, until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) {
	for {
		if err := r.subscribe(ctx); err != nil {
			r.Log.Warn("RedisRelay.Run subscription dropped",
				zap.String(constvars.LoggingRedisKey, r.channel),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			r.Log.Info("RedisRelay.Run stopped")
			return
		case <-time.After(r.reconnectDelay):
		}
	}
}

func (r *RedisRelay) subscribe(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	r.Log.Info("RedisRelay.subscribe listening", zap.String(constvars.LoggingRedisKey, r.channel))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return redis.ErrClosed
			}
			r.deliver(msg.Payload)
		}
	}
}

func (r *RedisRelay) deliver(raw string) {
	envelope := new(relayEnvelope)
	if err := json.Unmarshal([]byte(raw), envelope); err != nil {
		r.Log.Error("RedisRelay.deliver cannot decode envelope", zap.Error(err))
		return
	}

	if r.hub.Deliver(envelope.UserID, envelope.Payload) == 0 {
		r.Log.Debug("RedisRelay.deliver no local subscriber",
			zap.String(constvars.LoggingUserIDKey, envelope.UserID),
		)
	}
}
