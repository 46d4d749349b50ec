package flavors

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient captures the subset of redis.Client used by the store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

type redisStore struct {
	client RedisClient
	prefix string
}

func newRedisStore(client RedisClient, prefix string) Store {
	if prefix == "" {
		prefix = defaultRegistryPrefix
	}
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *redisStore) Driver() Driver {
	return DriverRedis
}

func (s *redisStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	if s.client == nil {
		return nil, false, errors.New("redis registry client unavailable")
	}
	value, err := s.client.Get(ctx, s.entryKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

func (s *redisStore) Add(ctx context.Context, name string, body []byte) (bool, error) {
	if s.client == nil {
		return false, errors.New("redis registry client unavailable")
	}
	// Entries never expire; SetNX keeps the first writer's record.
	created, err := s.client.SetNX(ctx, s.entryKey(name), body, 0).Result()
	if err != nil {
		return false, err
	}
	return created, nil
}

func (s *redisStore) Count(ctx context.Context) (int64, error) {
	names, err := s.Names(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(names)), nil
}

func (s *redisStore) Names(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, errors.New("redis registry client unavailable")
	}
	pattern := s.entryKey("*")
	scope := s.entryKey("")
	var names []string
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			names = append(names, strings.TrimPrefix(key, scope))
		}
		cursor = next
		if cursor == 0 {
			return names, nil
		}
	}
}

func (s *redisStore) entryKey(name string) string {
	return s.prefix + ":" + name
}
