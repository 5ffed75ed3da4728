// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recgraph/predictor/pkg/recommender"
	"github.com/recgraph/predictor/pkg/store"
)

// newTestServer builds a server over a single "courses" class seeded with
// users u1={c1,c2} and u2={c1,c3}, all rows processed.
func newTestServer(t *testing.T, gatherer prometheus.Gatherer) *Server {
	t.Helper()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := store.NewRedisStoreWithClient(client)
	t.Cleanup(func() { _ = st.Close() })

	rec, err := recommender.New(st, recommender.Config{
		Class:    "courses",
		Matrices: []recommender.MatrixConfig{{Label: "users", Weight: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, rec.Add(ctx, "users", "u1", []string{"c1", "c2"}, recommender.Deferred))
	require.NoError(t, rec.Add(ctx, "users", "u2", []string{"c1", "c3"}, recommender.Deferred))
	require.NoError(t, rec.ProcessItems(ctx, "c1", "c2", "c3"))

	return NewServer("127.0.0.1:0", map[string]*recommender.Recommender{"courses": rec}, gatherer)
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	rr := doRequest(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	srv := newTestServer(t, registry)
	rr := doRequest(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Without a gatherer the endpoint is not registered.
	srv = newTestServer(t, nil)
	rr = doRequest(t, srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListClasses(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)
	rr := doRequest(t, srv, http.MethodGet, "/api/v1/recommenders/", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Classes []string `json:"classes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"courses"}, resp.Classes)
}

func TestGetSimilarities(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodGet, "/api/v1/recommenders/courses/items/c1/similarities", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"c2", "c3"}, resp.Items)
}

func TestGetSimilaritiesWithScores(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodGet, "/api/v1/recommenders/courses/items/c1/similarities?scores=true&limit=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Items []recommender.ScoredItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "c2", resp.Items[0].ID)
	assert.Greater(t, resp.Items[0].Score, 0.0)
}

func TestGetSimilaritiesBadOptions(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodGet, "/api/v1/recommenders/courses/items/c1/similarities?limit=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, srv, http.MethodGet, "/api/v1/recommenders/courses/items/c1/similarities?offset=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnknownClass(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodGet, "/api/v1/recommenders/bogus/items/c1/similarities", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/bogus/predictions", map[string]any{"items": []string{"c1"}})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostPredictions(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/courses/predictions",
		map[string]any{"items": []string{"c1", "c2"}})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Items []recommender.ScoredItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "c3", resp.Items[0].ID)
}

func TestPostPredictionsSetInput(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/courses/predictions",
		map[string]any{"matrix_label": "users", "set_id": "u1"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Items []recommender.ScoredItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "c3", resp.Items[0].ID)
}

func TestPostPredictionsBadRequests(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/courses/predictions", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/courses/predictions",
		map[string]any{"matrix_label": "bogus", "set_id": "u1"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommenders/courses/predictions",
		bytes.NewReader([]byte("{not json")))
	recd := httptest.NewRecorder()
	srv.Router().ServeHTTP(recd, req)
	assert.Equal(t, http.StatusBadRequest, recd.Code)
}

func TestPostProcess(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/courses/process",
		map[string]any{"items": []string{"c1"}})
	assert.Equal(t, http.StatusNoContent, rr.Code)

	// An empty body reprocesses every item.
	rr = doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/courses/process", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestStoreOutageReturnsBadGateway(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := store.NewRedisStoreWithClient(client)
	t.Cleanup(func() { _ = st.Close() })

	rec, err := recommender.New(st, recommender.Config{
		Class:    "courses",
		Matrices: []recommender.MatrixConfig{{Label: "users", Weight: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, rec.Add(ctx, "users", "u1", []string{"c1", "c2"}, recommender.Immediate))

	srv := NewServer("127.0.0.1:0", map[string]*recommender.Recommender{"courses": rec}, nil)
	mr.Close()

	rr := doRequest(t, srv, http.MethodGet, "/api/v1/recommenders/courses/items/c1/similarities", nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	rr = doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/courses/predictions",
		map[string]any{"items": []string{"c1"}})
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	rr = doRequest(t, srv, http.MethodPost, "/api/v1/recommenders/courses/process", nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)

	rr = doRequest(t, srv, http.MethodDelete, "/api/v1/recommenders/courses", nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestDeleteClass(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, nil)

	rr := doRequest(t, srv, http.MethodDelete, "/api/v1/recommenders/courses", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doRequest(t, srv, http.MethodGet, "/api/v1/recommenders/courses/items/c1/similarities", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Items []string `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}
