// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package recommender composes weighted matrices into one recommender class
// and exposes the public mutation, query, and maintenance surface.
package recommender

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recgraph/predictor/pkg/engine"
	"github.com/recgraph/predictor/pkg/matrix"
	"github.com/recgraph/predictor/pkg/store"
)

// Configuration errors, surfaced before any store I/O.
var (
	// ErrUnknownMatrix is returned when an operation references a matrix
	// label the recommender was not configured with.
	ErrUnknownMatrix = errors.New("unknown matrix label")

	// ErrInvalidConfig is the base error of configuration validation
	// failures.
	ErrInvalidConfig = errors.New("invalid recommender configuration")
)

// ProcessMode selects whether a mutation reprocesses affected similarity
// rows immediately or leaves them for a later explicit reprocess.
type ProcessMode int

const (
	// Deferred performs the mutation only. Affected rows stay stale until
	// ProcessItems or ProcessAll is invoked.
	Deferred ProcessMode = iota

	// Immediate reprocesses every row the mutation could have changed
	// before returning.
	Immediate
)

// MatrixConfig declares one matrix of a recommender class.
type MatrixConfig struct {
	// Label names the matrix. Labels must be unique within a class and must
	// not contain the keyspace separator.
	Label string

	// Weight scales this matrix's contribution to similarity scores.
	// Must be positive.
	Weight float64
}

// Config declares a recommender class.
type Config struct {
	// Class is the keyspace prefix shared by everything this recommender
	// stores.
	Class string

	// Matrices is the ordered list of matrix definitions.
	Matrices []MatrixConfig

	// SimilarityLimit caps the size of each similarity row. 0 means
	// unbounded.
	SimilarityLimit int64

	// Concurrency bounds parallel row recomputation. 0 selects the engine
	// default.
	Concurrency int
}

// Validate checks the configuration without touching the store.
func (c *Config) Validate() error {
	if c.Class == "" {
		return fmt.Errorf("%w: class name is required", ErrInvalidConfig)
	}
	if strings.Contains(c.Class, ":") {
		return fmt.Errorf("%w: class name must not contain %q", ErrInvalidConfig, ":")
	}
	if len(c.Matrices) == 0 {
		return fmt.Errorf("%w: at least one matrix is required", ErrInvalidConfig)
	}
	if c.SimilarityLimit < 0 {
		return fmt.Errorf("%w: similarity limit must be nonnegative", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Matrices))
	for _, m := range c.Matrices {
		if m.Label == "" {
			return fmt.Errorf("%w: matrix label is required", ErrInvalidConfig)
		}
		if strings.Contains(m.Label, ":") {
			return fmt.Errorf("%w: matrix label %q must not contain %q", ErrInvalidConfig, m.Label, ":")
		}
		if m.Weight <= 0 {
			return fmt.Errorf("%w: matrix %q weight must be positive", ErrInvalidConfig, m.Label)
		}
		if _, dup := seen[m.Label]; dup {
			return fmt.Errorf("%w: duplicate matrix label %q", ErrInvalidConfig, m.Label)
		}
		seen[m.Label] = struct{}{}
	}
	return nil
}

// Recommender is one configured recommender class. It holds no mutable
// in-process state and is safe for concurrent use.
type Recommender struct {
	store    store.Store
	class    string
	matrices map[string]*matrix.Matrix
	ordered  []*matrix.Matrix
	engine   *engine.Engine
}

// New builds a recommender from its configuration. The store handle is
// passed explicitly; nothing global is consulted.
func New(st store.Store, cfg Config) (*Recommender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	byLabel := make(map[string]*matrix.Matrix, len(cfg.Matrices))
	ordered := make([]*matrix.Matrix, 0, len(cfg.Matrices))
	for _, mc := range cfg.Matrices {
		m := matrix.New(st, cfg.Class, mc.Label, mc.Weight)
		byLabel[mc.Label] = m
		ordered = append(ordered, m)
	}

	var opts []engine.Option
	if cfg.Concurrency > 0 {
		opts = append(opts, engine.WithConcurrency(cfg.Concurrency))
	}

	return &Recommender{
		store:    st,
		class:    cfg.Class,
		matrices: byLabel,
		ordered:  ordered,
		engine:   engine.New(st, cfg.Class, ordered, cfg.SimilarityLimit, opts...),
	}, nil
}

// Class returns the keyspace prefix of this recommender.
func (r *Recommender) Class() string { return r.class }

// Matrix returns the matrix registered under label.
func (r *Recommender) Matrix(label string) (*matrix.Matrix, error) {
	m, ok := r.matrices[label]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMatrix, label)
	}
	return m, nil
}

// MatrixLabels returns the configured labels in declaration order.
func (r *Recommender) MatrixLabels() []string {
	labels := make([]string, len(r.ordered))
	for i, m := range r.ordered {
		labels[i] = m.Label()
	}
	return labels
}

func (r *Recommender) allItemsKey() string {
	return r.class + ":all_items"
}

// Add inserts items into the forward set of setID in the given matrix.
// With Immediate mode, the rows of the inserted items and of everything
// co-occurring with them through setID are reprocessed before returning.
func (r *Recommender) Add(ctx context.Context, label, setID string, items []string, mode ProcessMode) error {
	m, err := r.Matrix(label)
	if err != nil {
		return err
	}
	if err := m.Add(ctx, setID, items...); err != nil {
		return err
	}
	if err := r.store.SAdd(ctx, r.allItemsKey(), items...); err != nil {
		return fmt.Errorf("failed to record items: %w", err)
	}
	if mode == Deferred {
		return nil
	}
	return r.reprocessTouchedSet(ctx, m, setID, items)
}

// Remove deletes items from the forward set of setID in the given matrix.
// With Immediate mode, the removed items and the remaining members of setID
// are reprocessed before returning. Removed items stay in the bookkeeping
// set; they may still appear elsewhere, and a later DeleteItem or full
// reprocess settles them.
func (r *Recommender) Remove(ctx context.Context, label, setID string, items []string, mode ProcessMode) error {
	m, err := r.Matrix(label)
	if err != nil {
		return err
	}
	if err := m.Remove(ctx, setID, items...); err != nil {
		return err
	}
	if mode == Deferred {
		return nil
	}
	return r.reprocessTouchedSet(ctx, m, setID, items)
}

// reprocessTouchedSet rebuilds the rows of the mutated items plus everything
// currently in the touched forward set.
func (r *Recommender) reprocessTouchedSet(ctx context.Context, m *matrix.Matrix, setID string, mutated []string) error {
	members, err := m.MembersOfSet(ctx, setID)
	if err != nil {
		return err
	}
	focal := make([]string, 0, len(mutated)+len(members))
	focal = append(focal, mutated...)
	focal = append(focal, members...)
	return r.engine.ProcessItems(ctx, focal...)
}

// DeleteItemFromMatrix removes item from every set of the given matrix and
// reprocesses the item together with its former co-occurrents. Co-occurrents
// are gathered across all matrices, since scores are cross-matrix.
func (r *Recommender) DeleteItemFromMatrix(ctx context.Context, label, item string) error {
	m, err := r.Matrix(label)
	if err != nil {
		return err
	}

	affected, err := r.engine.Candidates(ctx, item)
	if err != nil {
		return err
	}
	if err := m.DeleteItem(ctx, item); err != nil {
		return err
	}

	focal := append([]string{item}, affected...)
	return r.engine.ProcessItems(ctx, focal...)
}

// DeleteItem removes item from every matrix, deletes its similarity row and
// bookkeeping entry, and reprocesses its former co-occurrents.
func (r *Recommender) DeleteItem(ctx context.Context, item string) error {
	affected, err := r.engine.Candidates(ctx, item)
	if err != nil {
		return err
	}

	for _, m := range r.ordered {
		if err := m.DeleteItem(ctx, item); err != nil {
			return err
		}
	}
	if err := r.engine.DeleteRow(ctx, item); err != nil {
		return err
	}
	if err := r.store.SRem(ctx, r.allItemsKey(), item); err != nil {
		return fmt.Errorf("failed to unrecord item %s: %w", item, err)
	}

	return r.engine.ProcessItems(ctx, affected...)
}

// ProcessItems explicitly reprocesses the given items.
func (r *Recommender) ProcessItems(ctx context.Context, items ...string) error {
	return r.engine.ProcessItems(ctx, items...)
}

// ProcessAll reprocesses every known item exactly once. The bookkeeping set
// is consulted first; when it is missing (state imported from elsewhere),
// items are recovered by scanning the reverse indexes.
func (r *Recommender) ProcessAll(ctx context.Context) error {
	items, err := r.store.SMembers(ctx, r.allItemsKey())
	if err != nil {
		return fmt.Errorf("failed to enumerate items: %w", err)
	}
	if len(items) == 0 {
		if items, err = r.scanItems(ctx); err != nil {
			return err
		}
	}
	return r.engine.ProcessItems(ctx, items...)
}

// scanItems recovers the item universe from the reverse index keys.
func (r *Recommender) scanItems(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var items []string
	for _, m := range r.ordered {
		keys, err := r.store.ScanKeys(ctx, m.ReversePrefix()+"*")
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			item := strings.TrimPrefix(key, m.ReversePrefix())
			if _, dup := seen[item]; !dup {
				seen[item] = struct{}{}
				items = append(items, item)
			}
		}
	}
	return items, nil
}

// Clean deletes every key under this recommender's prefix. It is the
// authoritative recovery mechanism after external inconsistency.
func (r *Recommender) Clean(ctx context.Context) error {
	keys, err := r.store.ScanKeys(ctx, r.class+":*")
	if err != nil {
		return fmt.Errorf("failed to enumerate keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}
