package redis

import (
	"context"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var (
	deleteIfEqualsScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
	return 0
end
if stored ~= ARGV[1] then
	return -1
end
return redis.call("DEL", KEYS[1])
`)

	expireIfEqualsScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
	return 0
end
if stored ~= ARGV[1] then
	return -1
end
return redis.call("PEXPIRE", KEYS[1], ARGV[2])
`)
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}

func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = r.client.Set(ctx, key, jsonValue, exp).Err()
	if err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	} else if err != nil {
		return "", exceptions.ErrRedisGetNoData(err, key)
	}
	return data, nil
}

func (r *redisRepository) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	ok, err := r.client.Expire(ctx, key, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisExpire(err)
	}
	return ok, nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	acquired, err := r.client.SetNX(ctx, key, jsonValue, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) Publish(ctx context.Context, channel string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = r.client.Publish(ctx, channel, jsonValue).Err()
	if err != nil {
		return exceptions.ErrRedisPublish(err, channel)
	}
	return nil
}

func (r *redisRepository) DeleteIfEquals(ctx context.Context, key string, value interface{}) (int64, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return 0, exceptions.ErrCannotMarshalJSON(err)
	}

	result, err := deleteIfEqualsScript.Run(ctx, r.client, []string{key}, jsonValue).Int64()
	if err != nil {
		return 0, exceptions.ErrRedisDelete(err)
	}
	return result, nil
}

func (r *redisRepository) ExpireIfEquals(ctx context.Context, key string, value interface{}, exp time.Duration) (int64, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return 0, exceptions.ErrCannotMarshalJSON(err)
	}

	result, err := expireIfEqualsScript.Run(ctx, r.client, []string{key}, jsonValue, exp.Milliseconds()).Int64()
	if err != nil {
		return 0, exceptions.ErrRedisExpire(err)
	}
	return result, nil
}
