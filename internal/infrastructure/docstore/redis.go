package docstore

import (
	"context"
	"fmt"
	"time"

	"momentum/internal/domain/entity"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as a hash at "<collection>:<key>" and indexes the
// keys of a collection in a sorted set scored by the added time.
type RedisStore struct {
	Client *redis.Client
}

// NewRedisStore creates a RedisStore on an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func documentKey(collection, key string) string {
	return collection + ":" + key
}

func (s *RedisStore) Set(ctx context.Context, collection, key string, pair entity.ResolvedPair) error {
	k := documentKey(collection, key)
	_, err := s.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, k)
		pipe.HSet(ctx, k,
			"name", pair.Name,
			"chainId", pair.Chain,
			"pairAddress", pair.PairAddress,
			"addedTime", pair.AddedTime.UTC().Format(time.RFC3339Nano),
		)
		pipe.ZAdd(ctx, collection, redis.Z{Score: float64(pair.AddedTime.UnixMicro()), Member: key})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis set %s: %w", k, err)
	}
	return nil
}

// Get reads the document stored at collection/key.
func (s *RedisStore) Get(ctx context.Context, collection, key string) (entity.ResolvedPair, error) {
	k := documentKey(collection, key)
	fields, err := s.Client.HGetAll(ctx, k).Result()
	if err != nil {
		return entity.ResolvedPair{}, fmt.Errorf("redis get %s: %w", k, err)
	}
	if len(fields) == 0 {
		return entity.ResolvedPair{}, fmt.Errorf("redis get %s: %w", k, redis.Nil)
	}
	added, err := time.Parse(time.RFC3339Nano, fields["addedTime"])
	if err != nil {
		return entity.ResolvedPair{}, fmt.Errorf("redis get %s: bad addedTime: %w", k, err)
	}
	return entity.ResolvedPair{
		Name:        fields["name"],
		Chain:       fields["chainId"],
		PairAddress: fields["pairAddress"],
		AddedTime:   added.UTC(),
	}, nil
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}
