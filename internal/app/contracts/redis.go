package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Expire(ctx context.Context, key string, exp time.Duration) (bool, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	Publish(ctx context.Context, channel string, value interface{}) error
	// DeleteIfEquals and ExpireIfEquals act only while key still stores value.
	// They report 1 when applied, 0 when the key is gone and -1 when another
	// value is stored.
	DeleteIfEquals(ctx context.Context, key string, value interface{}) (int64, error)
	ExpireIfEquals(ctx context.Context, key string, value interface{}, exp time.Duration) (int64, error)
}
