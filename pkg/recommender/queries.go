// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package recommender

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/recgraph/predictor/pkg/matrix"
	"github.com/recgraph/predictor/pkg/store"
)

// ErrEmptyInput is returned when a prediction query resolves to an empty
// input item set.
var ErrEmptyInput = errors.New("prediction input resolves to no items")

// ScoredItem is a query result: an item id with its score.
type ScoredItem struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// QueryOptions controls result filtering and pagination. Pagination is
// applied after exclusion, so offset and limit count returned items only.
type QueryOptions struct {
	// Limit caps the number of returned items. 0 means unbounded.
	Limit int

	// Offset skips the first Offset items of the filtered result.
	Offset int

	// Exclude lists item ids to drop from the result.
	Exclude []string
}

// PredictionInput names the items a prediction aggregates over: either an
// explicit item list, or a (matrix label, set id) pair resolved against the
// matrix's forward set at call time.
type PredictionInput struct {
	Items       []string
	MatrixLabel string
	SetID       string
}

// SimilaritiesFor returns the cached similarity row of item, ordered by
// descending score with ties broken by item id ascending. An unprocessed
// item yields an empty result.
func (r *Recommender) SimilaritiesFor(ctx context.Context, item string, opts QueryOptions) ([]ScoredItem, error) {
	if item == "" {
		return nil, fmt.Errorf("%w: item id", matrix.ErrEmptyIdentifier)
	}

	row, err := r.store.ZRangeWithScores(ctx, r.engine.SimilarityKey(item), 0, -1, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read similarities of %s: %w", item, err)
	}

	excluded := newExclusion(opts.Exclude, item)
	return paginate(rankFiltered(row, excluded), opts), nil
}

// PredictionsFor ranks items by their aggregate similarity to the input
// set. The aggregation is a sorted-set union over the cached rows executed
// on the store; items missing a row contribute nothing. Input items are
// always excluded from the result.
func (r *Recommender) PredictionsFor(ctx context.Context, input PredictionInput, opts QueryOptions) ([]ScoredItem, error) {
	items, err := r.resolveInput(ctx, input)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(items))
	weights := make([]float64, len(items))
	for i, item := range items {
		keys[i] = r.engine.SimilarityKey(item)
		weights[i] = 1
	}

	dest := fmt.Sprintf("%s:predictions:%s", r.class, uuid.NewString())
	defer func() {
		_ = r.store.Del(context.WithoutCancel(ctx), dest)
	}()

	if _, err := r.store.ZUnionStore(ctx, dest, weights, keys...); err != nil {
		return nil, fmt.Errorf("failed to aggregate similarity rows: %w", err)
	}

	row, err := r.store.ZRangeWithScores(ctx, dest, 0, -1, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read aggregated predictions: %w", err)
	}

	excluded := newExclusion(opts.Exclude, items...)
	return paginate(rankFiltered(row, excluded), opts), nil
}

func (r *Recommender) resolveInput(ctx context.Context, input PredictionInput) ([]string, error) {
	items := input.Items
	if len(items) == 0 && input.MatrixLabel != "" {
		m, err := r.Matrix(input.MatrixLabel)
		if err != nil {
			return nil, err
		}
		if items, err = m.MembersOfSet(ctx, input.SetID); err != nil {
			return nil, err
		}
	}
	if len(items) == 0 {
		return nil, ErrEmptyInput
	}
	return items, nil
}

func newExclusion(exclude []string, extra ...string) map[string]struct{} {
	excluded := make(map[string]struct{}, len(exclude)+len(extra))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	for _, id := range extra {
		excluded[id] = struct{}{}
	}
	return excluded
}

// rankFiltered drops excluded members and orders the rest by descending
// score, ties broken by item id ascending. The store's own tie order depends
// on range direction, so the deterministic order is imposed here.
func rankFiltered(row []store.ScoredMember, excluded map[string]struct{}) []ScoredItem {
	results := make([]ScoredItem, 0, len(row))
	for _, m := range row {
		if _, skip := excluded[m.Member]; skip {
			continue
		}
		results = append(results, ScoredItem{ID: m.Member, Score: m.Score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	return results
}

func paginate(results []ScoredItem, opts QueryOptions) []ScoredItem {
	if opts.Offset > 0 {
		if opts.Offset >= len(results) {
			return []ScoredItem{}
		}
		results = results[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(results) {
		results = results[:opts.Limit]
	}
	return results
}
