package stats

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKey = "flightstats:record"

// RedisStore keeps the record as one JSON value under a single key. SET
// replaces the value atomically.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context) (StatsRecord, error) {
	data, err := s.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return StatsRecord{}, ErrNotFound
	}
	if err != nil {
		return StatsRecord{}, err
	}

	var record StatsRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return StatsRecord{}, err
	}
	return record, nil
}

func (s *RedisStore) Save(ctx context.Context, record StatsRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKey, data, 0).Err()
}
