// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package recommender

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/recgraph/predictor/pkg/store"
	"github.com/recgraph/predictor/pkg/store/mocks"
)

func courseConfig(limit int64) Config {
	return Config{
		Class: "courses",
		Matrices: []MatrixConfig{
			{Label: "users", Weight: 3},
			{Label: "tags", Weight: 2},
			{Label: "topics", Weight: 1},
		},
		SimilarityLimit: limit,
	}
}

func newTestRecommender(t *testing.T, limit int64) (*Recommender, store.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := store.NewRedisStoreWithClient(client)
	t.Cleanup(func() { _ = st.Close() })

	r, err := New(st, courseConfig(limit))
	require.NoError(t, err)
	return r, st
}

// seedCourses loads the course fixture and processes every item:
// users u1={c1,c2}, u2={c1,c3}; tags t1={c1,c2}; topics p1={c1,c3}.
func seedCourses(t *testing.T, r *Recommender) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "users", "u1", []string{"c1", "c2"}, Deferred))
	require.NoError(t, r.Add(ctx, "users", "u2", []string{"c1", "c3"}, Deferred))
	require.NoError(t, r.Add(ctx, "tags", "t1", []string{"c1", "c2"}, Deferred))
	require.NoError(t, r.Add(ctx, "topics", "p1", []string{"c1", "c3"}, Deferred))
	require.NoError(t, r.ProcessItems(ctx, "c1", "c2", "c3"))
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := courseConfig(0)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty class", mutate: func(c *Config) { c.Class = "" }, wantErr: true},
		{name: "class with separator", mutate: func(c *Config) { c.Class = "a:b" }, wantErr: true},
		{name: "no matrices", mutate: func(c *Config) { c.Matrices = nil }, wantErr: true},
		{name: "negative limit", mutate: func(c *Config) { c.SimilarityLimit = -1 }, wantErr: true},
		{name: "empty label", mutate: func(c *Config) { c.Matrices[0].Label = "" }, wantErr: true},
		{name: "label with separator", mutate: func(c *Config) { c.Matrices[0].Label = "a:b" }, wantErr: true},
		{name: "zero weight", mutate: func(c *Config) { c.Matrices[0].Weight = 0 }, wantErr: true},
		{name: "negative weight", mutate: func(c *Config) { c.Matrices[0].Weight = -1 }, wantErr: true},
		{name: "duplicate label", mutate: func(c *Config) { c.Matrices[1].Label = "users" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			cfg.Matrices = make([]MatrixConfig, len(valid.Matrices))
			copy(cfg.Matrices, valid.Matrices)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestMatrixLookup(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecommender(t, 0)

	m, err := r.Matrix("users")
	require.NoError(t, err)
	assert.Equal(t, "users", m.Label())

	_, err = r.Matrix("bogus")
	assert.ErrorIs(t, err, ErrUnknownMatrix)

	assert.Equal(t, []string{"users", "tags", "topics"}, r.MatrixLabels())
	assert.Equal(t, "courses", r.Class())
}

func TestAddUnknownMatrix(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecommender(t, 0)
	err := r.Add(context.Background(), "bogus", "u1", []string{"c1"}, Deferred)
	assert.ErrorIs(t, err, ErrUnknownMatrix)
}

func TestAddImmediateProcessesAffectedRows(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecommender(t, 0)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "users", "u1", []string{"c1", "c2"}, Immediate))

	row, err := r.SimilaritiesFor(ctx, "c1", QueryOptions{})
	require.NoError(t, err)
	require.Len(t, row, 1)
	assert.Equal(t, "c2", row[0].ID)

	row, err = r.SimilaritiesFor(ctx, "c2", QueryOptions{})
	require.NoError(t, err)
	require.Len(t, row, 1)
	assert.Equal(t, "c1", row[0].ID)
}

func TestAddDeferredLeavesRowsStale(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecommender(t, 0)
	ctx := context.Background()
	seedCourses(t, r)

	require.NoError(t, r.Add(ctx, "users", "u3", []string{"c1", "c4"}, Deferred))

	row, err := r.SimilaritiesFor(ctx, "c4", QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, row)

	require.NoError(t, r.ProcessItems(ctx, "c1", "c4"))

	row, err = r.SimilaritiesFor(ctx, "c4", QueryOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, row)
	assert.Equal(t, "c1", row[0].ID)
}

func TestRemoveImmediate(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecommender(t, 0)
	ctx := context.Background()
	seedCourses(t, r)

	require.NoError(t, r.Remove(ctx, "users", "u1", []string{"c2"}, Immediate))
	require.NoError(t, r.Remove(ctx, "tags", "t1", []string{"c2"}, Immediate))

	row, err := r.SimilaritiesFor(ctx, "c1", QueryOptions{})
	require.NoError(t, err)
	for _, item := range row {
		assert.NotEqual(t, "c2", item.ID)
	}

	row, err = r.SimilaritiesFor(ctx, "c2", QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, row)
}

func TestDeleteItem(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecommender(t, 0)
	ctx := context.Background()
	seedCourses(t, r)

	require.NoError(t, r.DeleteItem(ctx, "c1"))

	row, err := r.SimilaritiesFor(ctx, "c1", QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, row)

	row, err = r.SimilaritiesFor(ctx, "c2", QueryOptions{})
	require.NoError(t, err)
	for _, item := range row {
		assert.NotEqual(t, "c1", item.ID)
	}
}

func TestDeleteItemFromMatrix(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecommender(t, 0)
	ctx := context.Background()
	seedCourses(t, r)

	require.NoError(t, r.DeleteItemFromMatrix(ctx, "users", "c3"))

	// c3 still co-occurs with c1 through topics p1: (3*0 + 2*0 + 1*1) / 6.
	row, err := r.SimilaritiesFor(ctx, "c1", QueryOptions{})
	require.NoError(t, err)
	require.Len(t, row, 2)
	assert.Equal(t, "c2", row[0].ID)
	assert.Equal(t, "c3", row[1].ID)
	assert.InDelta(t, 1.0/6, row[1].Score, 1e-9)
}

func TestProcessAllConvergesWithDeferredMutations(t *testing.T) {
	t.Parallel()

	r, _ := newTestRecommender(t, 0)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "users", "u1", []string{"c1", "c2"}, Deferred))
	require.NoError(t, r.Add(ctx, "users", "u2", []string{"c1", "c3"}, Deferred))
	require.NoError(t, r.Add(ctx, "tags", "t1", []string{"c1", "c2"}, Deferred))
	require.NoError(t, r.Add(ctx, "topics", "p1", []string{"c1", "c3"}, Deferred))

	require.NoError(t, r.ProcessAll(ctx))

	row, err := r.SimilaritiesFor(ctx, "c1", QueryOptions{})
	require.NoError(t, err)
	require.Len(t, row, 2)
	assert.Equal(t, "c2", row[0].ID)
	assert.InDelta(t, 3.5/6, row[0].Score, 1e-9)
	assert.Equal(t, "c3", row[1].ID)
	assert.InDelta(t, 2.5/6, row[1].Score, 1e-9)

	row, err = r.SimilaritiesFor(ctx, "c3", QueryOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, row)
}

func TestProcessAllRecoversItemsFromReverseIndexes(t *testing.T) {
	t.Parallel()

	r, st := newTestRecommender(t, 0)
	ctx := context.Background()

	require.NoError(t, r.Add(ctx, "users", "u1", []string{"c1", "c2"}, Deferred))

	// Simulate state imported without the bookkeeping set.
	require.NoError(t, st.Del(ctx, "courses:all_items"))

	require.NoError(t, r.ProcessAll(ctx))

	row, err := r.SimilaritiesFor(ctx, "c1", QueryOptions{})
	require.NoError(t, err)
	require.Len(t, row, 1)
	assert.Equal(t, "c2", row[0].ID)
}

func TestClean(t *testing.T) {
	t.Parallel()

	r, st := newTestRecommender(t, 0)
	ctx := context.Background()
	seedCourses(t, r)

	require.NoError(t, r.Clean(ctx))

	keys, err := st.ScanKeys(ctx, "courses:*")
	require.NoError(t, err)
	assert.Empty(t, keys)

	row, err := r.SimilaritiesFor(ctx, "c1", QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, row)

	// Cleaning an already-empty class is fine.
	require.NoError(t, r.Clean(ctx))
}

func TestCleanLeavesOtherClassesAlone(t *testing.T) {
	t.Parallel()

	r, st := newTestRecommender(t, 0)
	ctx := context.Background()
	seedCourses(t, r)

	require.NoError(t, st.SAdd(ctx, "other:users:sets:u1", "x1"))

	require.NoError(t, r.Clean(ctx))

	keys, err := st.ScanKeys(ctx, "other:*")
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestAddPropagatesStoreErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)

	wantErr := errors.New("connection reset")
	st.EXPECT().
		SAdd(gomock.Any(), "courses:users:sets:u1", "c1").
		Return(wantErr)

	r, err := New(st, courseConfig(0))
	require.NoError(t, err)

	err = r.Add(context.Background(), "users", "u1", []string{"c1"}, Deferred)
	assert.ErrorIs(t, err, wantErr)
}
