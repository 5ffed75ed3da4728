// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry instruments the store interface with Prometheus metrics.
package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/recgraph/predictor/pkg/store"
)

// Metrics holds the collectors for store round-trips.
type Metrics struct {
	ops      *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the store metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "predictor",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Number of store round-trips by operation.",
		}, []string{"op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "predictor",
			Subsystem: "store",
			Name:      "errors_total",
			Help:      "Number of failed store round-trips by operation.",
		}, []string{"op"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "predictor",
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Latency of store round-trips by operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	reg.MustRegister(m.ops, m.errors, m.duration)
	return m
}

// InstrumentedStore wraps a Store, recording a counter and latency sample
// per operation. It adds no behavior beyond observation.
type InstrumentedStore struct {
	inner   store.Store
	metrics *Metrics
}

var _ store.Store = (*InstrumentedStore)(nil)

// NewInstrumentedStore wraps inner with the given metrics.
func NewInstrumentedStore(inner store.Store, metrics *Metrics) *InstrumentedStore {
	return &InstrumentedStore{inner: inner, metrics: metrics}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	s.metrics.ops.WithLabelValues(op).Inc()
	s.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.errors.WithLabelValues(op).Inc()
	}
}

// SAdd adds members to the set at key.
func (s *InstrumentedStore) SAdd(ctx context.Context, key string, members ...string) error {
	start := time.Now()
	err := s.inner.SAdd(ctx, key, members...)
	s.observe("sadd", start, err)
	return err
}

// SRem removes members from the set at key.
func (s *InstrumentedStore) SRem(ctx context.Context, key string, members ...string) error {
	start := time.Now()
	err := s.inner.SRem(ctx, key, members...)
	s.observe("srem", start, err)
	return err
}

// SMembers returns all members of the set at key.
func (s *InstrumentedStore) SMembers(ctx context.Context, key string) ([]string, error) {
	start := time.Now()
	members, err := s.inner.SMembers(ctx, key)
	s.observe("smembers", start, err)
	return members, err
}

// SCard returns the cardinality of the set at key.
func (s *InstrumentedStore) SCard(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	n, err := s.inner.SCard(ctx, key)
	s.observe("scard", start, err)
	return n, err
}

// SIsMember reports whether member is in the set at key.
func (s *InstrumentedStore) SIsMember(ctx context.Context, key, member string) (bool, error) {
	start := time.Now()
	ok, err := s.inner.SIsMember(ctx, key, member)
	s.observe("sismember", start, err)
	return ok, err
}

// SUnion returns the union of the sets at keys.
func (s *InstrumentedStore) SUnion(ctx context.Context, keys ...string) ([]string, error) {
	start := time.Now()
	members, err := s.inner.SUnion(ctx, keys...)
	s.observe("sunion", start, err)
	return members, err
}

// Del deletes the given keys.
func (s *InstrumentedStore) Del(ctx context.Context, keys ...string) error {
	start := time.Now()
	err := s.inner.Del(ctx, keys...)
	s.observe("del", start, err)
	return err
}

// ZAdd sets the score of member in the sorted set at key.
func (s *InstrumentedStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	start := time.Now()
	err := s.inner.ZAdd(ctx, key, score, member)
	s.observe("zadd", start, err)
	return err
}

// ZIncrBy increments the score of member by delta.
func (s *InstrumentedStore) ZIncrBy(ctx context.Context, key string, delta float64, member string) (float64, error) {
	start := time.Now()
	score, err := s.inner.ZIncrBy(ctx, key, delta, member)
	s.observe("zincrby", start, err)
	return score, err
}

// ZRem removes members from the sorted set at key.
func (s *InstrumentedStore) ZRem(ctx context.Context, key string, members ...string) error {
	start := time.Now()
	err := s.inner.ZRem(ctx, key, members...)
	s.observe("zrem", start, err)
	return err
}

// ZCard returns the cardinality of the sorted set at key.
func (s *InstrumentedStore) ZCard(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	n, err := s.inner.ZCard(ctx, key)
	s.observe("zcard", start, err)
	return n, err
}

// ZRangeWithScores returns members by rank with their scores.
func (s *InstrumentedStore) ZRangeWithScores(
	ctx context.Context, key string, startRank, stopRank int64, reverse bool,
) ([]store.ScoredMember, error) {
	start := time.Now()
	members, err := s.inner.ZRangeWithScores(ctx, key, startRank, stopRank, reverse)
	s.observe("zrange", start, err)
	return members, err
}

// ZTrimToTopK removes all but the k highest-scoring members.
func (s *InstrumentedStore) ZTrimToTopK(ctx context.Context, key string, k int64) error {
	start := time.Now()
	err := s.inner.ZTrimToTopK(ctx, key, k)
	s.observe("ztrim", start, err)
	return err
}

// ZUnionStore stores the weighted union of the sorted sets at keys into dest.
func (s *InstrumentedStore) ZUnionStore(
	ctx context.Context, dest string, weights []float64, keys ...string,
) (int64, error) {
	start := time.Now()
	n, err := s.inner.ZUnionStore(ctx, dest, weights, keys...)
	s.observe("zunionstore", start, err)
	return n, err
}

// EvalScript executes a server-side script.
func (s *InstrumentedStore) EvalScript(
	ctx context.Context, script string, keys []string, args ...any,
) (any, error) {
	start := time.Now()
	result, err := s.inner.EvalScript(ctx, script, keys, args...)
	s.observe("eval", start, err)
	return result, err
}

// ScanKeys returns every key matching pattern.
func (s *InstrumentedStore) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	start := time.Now()
	keys, err := s.inner.ScanKeys(ctx, pattern)
	s.observe("scan", start, err)
	return keys, err
}

// Ping checks connectivity to the store.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.inner.Ping(ctx)
	s.observe("ping", start, err)
	return err
}

// Close releases the underlying connection resources.
func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}
