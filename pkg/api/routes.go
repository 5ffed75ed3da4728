// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/recgraph/predictor/pkg/logger"
	"github.com/recgraph/predictor/pkg/matrix"
	"github.com/recgraph/predictor/pkg/recommender"
	"github.com/recgraph/predictor/pkg/store"
)

// RecommenderRoutes holds the handlers for one set of recommender classes.
type RecommenderRoutes struct {
	recommenders map[string]*recommender.Recommender
}

// RecommenderRouter creates the routes for similarity and prediction
// queries plus maintenance operations.
func RecommenderRouter(recommenders map[string]*recommender.Recommender) http.Handler {
	routes := RecommenderRoutes{recommenders: recommenders}

	r := chi.NewRouter()
	r.Get("/", routes.listClasses)
	r.Get("/{class}/items/{item}/similarities", routes.getSimilarities)
	r.Post("/{class}/predictions", routes.postPredictions)
	r.Post("/{class}/process", routes.postProcess)
	r.Delete("/{class}", routes.deleteClass)

	return r
}

type classListResponse struct {
	Classes []string `json:"classes"`
}

type scoredItemsResponse struct {
	Items []recommender.ScoredItem `json:"items"`
}

type itemsResponse struct {
	Items []string `json:"items"`
}

type predictionRequest struct {
	Items       []string `json:"items,omitempty"`
	MatrixLabel string   `json:"matrix_label,omitempty"`
	SetID       string   `json:"set_id,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	Offset      int      `json:"offset,omitempty"`
	Exclude     []string `json:"exclude,omitempty"`
}

type processRequest struct {
	Items []string `json:"items,omitempty"`
}

func (rr *RecommenderRoutes) lookup(w http.ResponseWriter, r *http.Request) (*recommender.Recommender, bool) {
	class := chi.URLParam(r, "class")
	rec, ok := rr.recommenders[class]
	if !ok {
		http.Error(w, "Recommender class not found", http.StatusNotFound)
		return nil, false
	}
	return rec, true
}

func (rr *RecommenderRoutes) listClasses(w http.ResponseWriter, _ *http.Request) {
	classes := make([]string, 0, len(rr.recommenders))
	for class := range rr.recommenders {
		classes = append(classes, class)
	}
	writeJSON(w, classListResponse{Classes: classes})
}

func (rr *RecommenderRoutes) getSimilarities(w http.ResponseWriter, r *http.Request) {
	rec, ok := rr.lookup(w, r)
	if !ok {
		return
	}
	opts, err := queryOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item := chi.URLParam(r, "item")
	results, err := rec.SimilaritiesFor(r.Context(), item, opts)
	if err != nil {
		if errors.Is(err, matrix.ErrEmptyIdentifier) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeStoreError(w, "Failed to query similarities", err)
		return
	}

	if r.URL.Query().Get("scores") == "true" {
		writeJSON(w, scoredItemsResponse{Items: results})
		return
	}
	writeJSON(w, itemsResponse{Items: itemIDs(results)})
}

func (rr *RecommenderRoutes) postPredictions(w http.ResponseWriter, r *http.Request) {
	rec, ok := rr.lookup(w, r)
	if !ok {
		return
	}

	var req predictionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	results, err := rec.PredictionsFor(r.Context(),
		recommender.PredictionInput{Items: req.Items, MatrixLabel: req.MatrixLabel, SetID: req.SetID},
		recommender.QueryOptions{Limit: req.Limit, Offset: req.Offset, Exclude: req.Exclude},
	)
	if err != nil {
		switch {
		case errors.Is(err, recommender.ErrEmptyInput),
			errors.Is(err, recommender.ErrUnknownMatrix),
			errors.Is(err, matrix.ErrEmptyIdentifier):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			writeStoreError(w, "Failed to query predictions", err)
		}
		return
	}

	writeJSON(w, scoredItemsResponse{Items: results})
}

func (rr *RecommenderRoutes) postProcess(w http.ResponseWriter, r *http.Request) {
	rec, ok := rr.lookup(w, r)
	if !ok {
		return
	}

	var req processRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	var err error
	if len(req.Items) > 0 {
		err = rec.ProcessItems(r.Context(), req.Items...)
	} else {
		err = rec.ProcessAll(r.Context())
	}
	if err != nil {
		if errors.Is(err, matrix.ErrEmptyIdentifier) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeStoreError(w, "Failed to process items", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (rr *RecommenderRoutes) deleteClass(w http.ResponseWriter, r *http.Request) {
	rec, ok := rr.lookup(w, r)
	if !ok {
		return
	}
	if err := rec.Clean(r.Context()); err != nil {
		writeStoreError(w, "Failed to clean recommender", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryOptions(r *http.Request) (recommender.QueryOptions, error) {
	var opts recommender.QueryOptions
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return opts, errors.New("limit must be a nonnegative integer")
		}
		opts.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return opts, errors.New("offset must be a nonnegative integer")
		}
		opts.Offset = offset
	}
	if raw := q.Get("exclude"); raw != "" {
		opts.Exclude = strings.Split(raw, ",")
	}
	return opts, nil
}

func itemIDs(results []recommender.ScoredItem) []string {
	ids := make([]string, len(results))
	for i, res := range results {
		ids[i] = res.ID
	}
	return ids
}

// writeStoreError answers 502 when the store could not be reached and 500
// for any other unexpected failure.
func writeStoreError(w http.ResponseWriter, msg string, err error) {
	logger.Errorf("%s: %v", msg, err)
	if errors.Is(err, store.ErrTransport) {
		http.Error(w, msg, http.StatusBadGateway)
		return
	}
	http.Error(w, msg, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}
