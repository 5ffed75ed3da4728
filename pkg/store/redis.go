// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Default timeouts for Redis operations.
const (
	DefaultDialTimeout  = 5 * time.Second
	DefaultReadTimeout  = 3 * time.Second
	DefaultWriteTimeout = 3 * time.Second
)

// scanBatchSize is the COUNT hint passed to SCAN.
const scanBatchSize = 256

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	// Addr is the host:port of the Redis server.
	Addr string

	// Username and Password are optional ACL credentials.
	Username string
	Password string

	// DB selects the logical database.
	DB int

	// Timeouts (defaults: Dial=5s, Read=3s, Write=3s).
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func validateConfig(cfg *RedisConfig) error {
	if cfg.Addr == "" {
		return errors.New("redis address is required")
	}
	if cfg.DB < 0 {
		return errors.New("redis database index must be nonnegative")
	}
	return nil
}

// RedisStore implements the Store interface on top of a Redis server.
type RedisStore struct {
	client redis.UniversalClient
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis and verifies connectivity.
// Returns an error if configuration validation fails or the server cannot
// be reached.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid redis configuration: %w", err)
	}

	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = DefaultDialTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		// Failures surface to the caller; the client must not retry them.
		MaxRetries: -1,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", wrapTransport(err))
	}

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient creates a RedisStore with a pre-configured client.
// This is useful for testing with miniredis.
func NewRedisStoreWithClient(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Close closes the Redis client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping checks Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return wrapTransport(s.client.Ping(ctx).Err())
}

// SAdd adds members to the set at key.
func (s *RedisStore) SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return wrapTransport(s.client.SAdd(ctx, key, toAnySlice(members)...).Err())
}

// SRem removes members from the set at key.
func (s *RedisStore) SRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return wrapTransport(s.client.SRem(ctx, key, toAnySlice(members)...).Err())
}

// SMembers returns all members of the set at key.
func (s *RedisStore) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := s.client.SMembers(ctx, key).Result()
	return members, wrapTransport(err)
}

// SCard returns the cardinality of the set at key.
func (s *RedisStore) SCard(ctx context.Context, key string) (int64, error) {
	count, err := s.client.SCard(ctx, key).Result()
	return count, wrapTransport(err)
}

// SIsMember reports whether member is in the set at key.
func (s *RedisStore) SIsMember(ctx context.Context, key, member string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, key, member).Result()
	return ok, wrapTransport(err)
}

// SUnion returns the union of the sets at keys.
func (s *RedisStore) SUnion(ctx context.Context, keys ...string) ([]string, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	members, err := s.client.SUnion(ctx, keys...).Result()
	return members, wrapTransport(err)
}

// Del deletes the given keys.
func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return wrapTransport(s.client.Del(ctx, keys...).Err())
}

// ZAdd sets the score of member in the sorted set at key.
func (s *RedisStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	return wrapTransport(s.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err())
}

// ZIncrBy increments the score of member by delta.
func (s *RedisStore) ZIncrBy(ctx context.Context, key string, delta float64, member string) (float64, error) {
	score, err := s.client.ZIncrBy(ctx, key, delta, member).Result()
	return score, wrapTransport(err)
}

// ZRem removes members from the sorted set at key.
func (s *RedisStore) ZRem(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	return wrapTransport(s.client.ZRem(ctx, key, toAnySlice(members)...).Err())
}

// ZCard returns the cardinality of the sorted set at key.
func (s *RedisStore) ZCard(ctx context.Context, key string) (int64, error) {
	count, err := s.client.ZCard(ctx, key).Result()
	return count, wrapTransport(err)
}

// ZRangeWithScores returns members by rank with their scores.
func (s *RedisStore) ZRangeWithScores(
	ctx context.Context, key string, start, stop int64, reverse bool,
) ([]ScoredMember, error) {
	var zs []redis.Z
	var err error
	if reverse {
		zs, err = s.client.ZRevRangeWithScores(ctx, key, start, stop).Result()
	} else {
		zs, err = s.client.ZRangeWithScores(ctx, key, start, stop).Result()
	}
	if err != nil {
		return nil, wrapTransport(err)
	}

	members := make([]ScoredMember, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected member type %T in sorted set %s", z.Member, key)
		}
		members = append(members, ScoredMember{Member: member, Score: z.Score})
	}
	return members, nil
}

// ZTrimToTopK removes all but the k highest-scoring members.
func (s *RedisStore) ZTrimToTopK(ctx context.Context, key string, k int64) error {
	if k <= 0 {
		return nil
	}
	// Rank 0 is the lowest score; keep the top k by removing everything
	// below rank -(k).
	return wrapTransport(s.client.ZRemRangeByRank(ctx, key, 0, -(k + 1)).Err())
}

// ZUnionStore stores the weighted union of the sorted sets at keys into dest.
func (s *RedisStore) ZUnionStore(
	ctx context.Context, dest string, weights []float64, keys ...string,
) (int64, error) {
	if len(weights) != len(keys) {
		return 0, fmt.Errorf("weight count %d does not match key count %d", len(weights), len(keys))
	}
	if len(keys) == 0 {
		return 0, nil
	}
	count, err := s.client.ZUnionStore(ctx, dest, &redis.ZStore{
		Keys:    keys,
		Weights: weights,
	}).Result()
	return count, wrapTransport(err)
}

// EvalScript executes a server-side Lua script. Scripts are cached on the
// server by SHA so repeated evaluations skip re-sending the body.
func (s *RedisStore) EvalScript(ctx context.Context, script string, keys []string, args ...any) (any, error) {
	result, err := redis.NewScript(script).Run(ctx, s.client, keys, args...).Result()
	return result, wrapTransport(err)
}

// ScanKeys returns every key matching pattern using cursor iteration.
func (s *RedisStore) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys matching %s: %w", pattern, wrapTransport(err))
	}
	return keys, nil
}

func toAnySlice(members []string) []any {
	out := make([]any, len(members))
	for i, m := range members {
		out[i] = m
	}
	return out
}
