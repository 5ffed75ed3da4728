// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package matrix stores one named sparse relation between sets and items.
//
// A matrix keeps two mirrored indexes in the store: a forward set per set id
// listing its items, and a reverse set per item listing the set ids that
// contain it. Every mutation maintains both sides. The two writes are not
// atomic with respect to each other; a crash in between can leave the two
// indexes out of step. Reprocessing similarity rows does not rewrite either
// index; cleaning the class and reloading its data does.
package matrix

import (
	"context"
	"errors"
	"fmt"

	"github.com/recgraph/predictor/pkg/store"
)

// ErrEmptyIdentifier is returned when a set id or item id is empty.
var ErrEmptyIdentifier = errors.New("identifier must not be empty")

// Matrix is one weighted bipartite relation between sets and items,
// namespaced under a recommender class.
type Matrix struct {
	store  store.Store
	class  string
	label  string
	weight float64
}

// New creates a matrix handle. It performs no store I/O.
func New(st store.Store, class, label string, weight float64) *Matrix {
	return &Matrix{store: st, class: class, label: label, weight: weight}
}

// Label returns the matrix label.
func (m *Matrix) Label() string { return m.label }

// Weight returns the matrix weight.
func (m *Matrix) Weight() float64 { return m.weight }

// ForwardPrefix is the key prefix of forward sets, up to the set id.
func (m *Matrix) ForwardPrefix() string {
	return fmt.Sprintf("%s:%s:sets:", m.class, m.label)
}

// ReversePrefix is the key prefix of reverse sets, up to the item id.
func (m *Matrix) ReversePrefix() string {
	return fmt.Sprintf("%s:%s:items:", m.class, m.label)
}

// ForwardKey is the key of the forward set for setID.
func (m *Matrix) ForwardKey(setID string) string {
	return m.ForwardPrefix() + setID
}

// ReverseKey is the key of the reverse set for item.
func (m *Matrix) ReverseKey(item string) string {
	return m.ReversePrefix() + item
}

func validateIDs(setID string, items []string) error {
	if setID == "" {
		return fmt.Errorf("%w: set id", ErrEmptyIdentifier)
	}
	for _, item := range items {
		if item == "" {
			return fmt.Errorf("%w: item id", ErrEmptyIdentifier)
		}
	}
	return nil
}

// Add inserts items into the forward set of setID and records setID in each
// item's reverse set. Adding an existing pair is a no-op.
func (m *Matrix) Add(ctx context.Context, setID string, items ...string) error {
	if err := validateIDs(setID, items); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	if err := m.store.SAdd(ctx, m.ForwardKey(setID), items...); err != nil {
		return fmt.Errorf("failed to add items to set %s: %w", setID, err)
	}
	for _, item := range items {
		if err := m.store.SAdd(ctx, m.ReverseKey(item), setID); err != nil {
			return fmt.Errorf("failed to index item %s: %w", item, err)
		}
	}
	return nil
}

// Remove deletes items from the forward set of setID and removes setID from
// each item's reverse set. Removing an absent pair is a no-op.
func (m *Matrix) Remove(ctx context.Context, setID string, items ...string) error {
	if err := validateIDs(setID, items); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	if err := m.store.SRem(ctx, m.ForwardKey(setID), items...); err != nil {
		return fmt.Errorf("failed to remove items from set %s: %w", setID, err)
	}
	for _, item := range items {
		if err := m.store.SRem(ctx, m.ReverseKey(item), setID); err != nil {
			return fmt.Errorf("failed to unindex item %s: %w", item, err)
		}
	}
	return nil
}

// MembersOfSet returns the items in the forward set of setID.
func (m *Matrix) MembersOfSet(ctx context.Context, setID string) ([]string, error) {
	if setID == "" {
		return nil, fmt.Errorf("%w: set id", ErrEmptyIdentifier)
	}
	return m.store.SMembers(ctx, m.ForwardKey(setID))
}

// SetsContaining returns the set ids whose forward sets contain item.
func (m *Matrix) SetsContaining(ctx context.Context, item string) ([]string, error) {
	if item == "" {
		return nil, fmt.Errorf("%w: item id", ErrEmptyIdentifier)
	}
	return m.store.SMembers(ctx, m.ReverseKey(item))
}

// DeleteItem removes item from every set it appears in and deletes its
// reverse set.
func (m *Matrix) DeleteItem(ctx context.Context, item string) error {
	if item == "" {
		return fmt.Errorf("%w: item id", ErrEmptyIdentifier)
	}

	sets, err := m.store.SMembers(ctx, m.ReverseKey(item))
	if err != nil {
		return fmt.Errorf("failed to look up sets containing %s: %w", item, err)
	}
	for _, setID := range sets {
		if err := m.store.SRem(ctx, m.ForwardKey(setID), item); err != nil {
			return fmt.Errorf("failed to remove %s from set %s: %w", item, setID, err)
		}
	}
	if err := m.store.Del(ctx, m.ReverseKey(item)); err != nil {
		return fmt.Errorf("failed to delete reverse index of %s: %w", item, err)
	}
	return nil
}

// DeleteSet removes setID from the reverse set of each of its items and
// deletes the forward set.
func (m *Matrix) DeleteSet(ctx context.Context, setID string) error {
	if setID == "" {
		return fmt.Errorf("%w: set id", ErrEmptyIdentifier)
	}

	items, err := m.store.SMembers(ctx, m.ForwardKey(setID))
	if err != nil {
		return fmt.Errorf("failed to look up members of set %s: %w", setID, err)
	}
	for _, item := range items {
		if err := m.store.SRem(ctx, m.ReverseKey(item), setID); err != nil {
			return fmt.Errorf("failed to unindex item %s: %w", item, err)
		}
	}
	if err := m.store.Del(ctx, m.ForwardKey(setID)); err != nil {
		return fmt.Errorf("failed to delete set %s: %w", setID, err)
	}
	return nil
}
