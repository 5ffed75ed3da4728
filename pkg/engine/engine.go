// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine computes and maintains per-item similarity rows.
//
// For a focal item i, the engine scores every item j sharing at least one
// set with i in at least one matrix. The per-matrix contribution is the
// Jaccard coefficient of the two items' reverse sets, weighted by the matrix
// weight and normalized by the total weight so scores always land in [0, 1].
// The whole recomputation of one row runs as a single server-side script so
// concurrent readers see either the old row or the new one.
package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/recgraph/predictor/pkg/matrix"
	"github.com/recgraph/predictor/pkg/store"
)

// DefaultConcurrency bounds the number of in-flight row recomputations
// during multi-item processing.
const DefaultConcurrency = 8

// Engine recomputes similarity rows for one recommender class.
type Engine struct {
	store       store.Store
	class       string
	matrices    []*matrix.Matrix
	limit       int64
	concurrency int
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency sets the number of parallel workers used by ProcessItems.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// New creates an engine over the given matrices. limit is the maximum row
// size; 0 means unbounded.
func New(st store.Store, class string, matrices []*matrix.Matrix, limit int64, opts ...Option) *Engine {
	e := &Engine{
		store:       st,
		class:       class,
		matrices:    matrices,
		limit:       limit,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SimilarityKey is the key of the similarity row of item.
func (e *Engine) SimilarityKey(item string) string {
	return fmt.Sprintf("%s:similarities:%s", e.class, item)
}

// Process atomically rebuilds the similarity row of item from current
// matrix contents.
func (e *Engine) Process(ctx context.Context, item string) error {
	if item == "" {
		return fmt.Errorf("%w: item id", matrix.ErrEmptyIdentifier)
	}

	args := make([]any, 0, 3+3*len(e.matrices))
	args = append(args, item, e.limit, len(e.matrices))
	for _, m := range e.matrices {
		args = append(args, m.ForwardPrefix(), m.ReversePrefix(), m.Weight())
	}

	if _, err := e.store.EvalScript(ctx, processScript, []string{e.SimilarityKey(item)}, args...); err != nil {
		return fmt.Errorf("failed to process item %s: %w", item, err)
	}
	return nil
}

// ProcessItems rebuilds the similarity rows of the given items. Rows are
// recomputed independently with bounded parallelism; each individual row
// rewrite stays atomic. The first error cancels outstanding work.
func (e *Engine) ProcessItems(ctx context.Context, items ...string) error {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 {
		return e.Process(ctx, items[0])
	}

	seen := make(map[string]struct{}, len(items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for _, item := range items {
		if _, dup := seen[item]; dup {
			continue
		}
		seen[item] = struct{}{}
		g.Go(func() error {
			return e.Process(ctx, item)
		})
	}
	return g.Wait()
}

// Candidates returns every item co-occurring with item in any set of any
// matrix, excluding item itself. This is the set of rows a mutation of item
// can invalidate.
func (e *Engine) Candidates(ctx context.Context, item string) ([]string, error) {
	if item == "" {
		return nil, fmt.Errorf("%w: item id", matrix.ErrEmptyIdentifier)
	}

	var forwardKeys []string
	for _, m := range e.matrices {
		sets, err := m.SetsContaining(ctx, item)
		if err != nil {
			return nil, err
		}
		for _, setID := range sets {
			forwardKeys = append(forwardKeys, m.ForwardKey(setID))
		}
	}
	if len(forwardKeys) == 0 {
		return nil, nil
	}

	members, err := e.store.SUnion(ctx, forwardKeys...)
	if err != nil {
		return nil, fmt.Errorf("failed to union co-occurrence sets of %s: %w", item, err)
	}

	candidates := members[:0]
	for _, j := range members {
		if j != item {
			candidates = append(candidates, j)
		}
	}
	return candidates, nil
}

// DeleteRow removes the similarity row of item.
func (e *Engine) DeleteRow(ctx context.Context, item string) error {
	if item == "" {
		return fmt.Errorf("%w: item id", matrix.ErrEmptyIdentifier)
	}
	return e.store.Del(ctx, e.SimilarityKey(item))
}
