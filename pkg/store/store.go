// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package store provides the narrow storage interface the recommendation
// engine runs against, along with its Redis implementation.
//
// Every mutable piece of state in the system lives behind this interface:
// plain sets for matrix membership, sorted sets for similarity rows, and an
// atomic script primitive for per-item recomputation. The interface is
// deliberately small so tests can run against miniredis and callers can wrap
// it (see pkg/telemetry).
package store

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks -source=store.go Store

import (
	"context"
)

// ScoredMember is a sorted-set member together with its score.
type ScoredMember struct {
	Member string
	Score  float64
}

// Store is the set of primitives the engine needs from the backing store.
//
// All operations are blocking round-trips to a remote service. The store
// layer performs no retries; failures to reach the service are tagged with
// ErrTransport, server replies are propagated unchanged.
type Store interface {
	// SAdd adds members to the set at key.
	SAdd(ctx context.Context, key string, members ...string) error

	// SRem removes members from the set at key.
	SRem(ctx context.Context, key string, members ...string) error

	// SMembers returns all members of the set at key. A missing key yields
	// an empty slice.
	SMembers(ctx context.Context, key string) ([]string, error)

	// SCard returns the cardinality of the set at key.
	SCard(ctx context.Context, key string) (int64, error)

	// SIsMember reports whether member is in the set at key.
	SIsMember(ctx context.Context, key, member string) (bool, error)

	// SUnion returns the union of the sets at keys.
	SUnion(ctx context.Context, keys ...string) ([]string, error)

	// Del deletes the given keys. Missing keys are ignored.
	Del(ctx context.Context, keys ...string) error

	// ZAdd sets the score of member in the sorted set at key.
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZIncrBy increments the score of member by delta, returning the new score.
	ZIncrBy(ctx context.Context, key string, delta float64, member string) (float64, error)

	// ZRem removes members from the sorted set at key.
	ZRem(ctx context.Context, key string, members ...string) error

	// ZCard returns the cardinality of the sorted set at key.
	ZCard(ctx context.Context, key string) (int64, error)

	// ZRangeWithScores returns members by rank in [start, stop], ascending
	// by score, or descending when reverse is true. Redis rank semantics
	// apply: negative indexes count from the end.
	ZRangeWithScores(ctx context.Context, key string, start, stop int64, reverse bool) ([]ScoredMember, error)

	// ZTrimToTopK removes all but the k highest-scoring members of the
	// sorted set at key. Ties at the cut line resolve by member id, which
	// makes the trim deterministic. k <= 0 is a no-op.
	ZTrimToTopK(ctx context.Context, key string, k int64) error

	// ZUnionStore stores the weighted union of the sorted sets at keys into
	// dest and returns the resulting cardinality. Missing source keys
	// contribute nothing. len(weights) must equal len(keys).
	ZUnionStore(ctx context.Context, dest string, weights []float64, keys ...string) (int64, error)

	// EvalScript executes a server-side script atomically with respect to
	// all other store commands.
	EvalScript(ctx context.Context, script string, keys []string, args ...any) (any, error)

	// ScanKeys returns every key matching the given glob pattern.
	ScanKeys(ctx context.Context, pattern string) ([]string, error)

	// Ping checks connectivity to the store.
	Ping(ctx context.Context) error

	// Close releases the underlying connection resources.
	Close() error
}
