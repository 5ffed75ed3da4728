// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/recgraph/predictor/pkg/config"
	"github.com/recgraph/predictor/pkg/logger"
	"github.com/recgraph/predictor/pkg/recommender"
	"github.com/recgraph/predictor/pkg/store"
)

// connectMaxElapsed bounds the total time spent retrying the initial Redis
// connection before giving up.
const connectMaxElapsed = 30 * time.Second

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// connectStore establishes the Redis connection with exponential backoff.
// Retrying lives here, outside the library, which never retries on its own.
func connectStore(ctx context.Context, settings *config.Settings) (store.Store, error) {
	expBackoff := backoff.NewExponentialBackOff()

	st, err := backoff.Retry(ctx, func() (*store.RedisStore, error) {
		st, err := store.NewRedisStore(ctx, settings.Redis.StoreConfig())
		if err != nil {
			logger.Warnf("Redis connection failed, retrying: %v", err)
			return nil, err
		}
		return st, nil
	},
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxElapsedTime(connectMaxElapsed),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", settings.Redis.Addr, err)
	}
	return st, nil
}

func buildRecommenders(st store.Store, settings *config.Settings) (map[string]*recommender.Recommender, error) {
	recommenders := make(map[string]*recommender.Recommender, len(settings.Recommenders))
	for _, rec := range settings.Recommenders {
		built, err := recommender.New(st, rec.RecommenderConfig())
		if err != nil {
			return nil, err
		}
		recommenders[rec.Class] = built
	}
	return recommenders, nil
}

// selectRecommender resolves the --class flag, defaulting to the only
// configured class when exactly one exists.
func selectRecommender(cmd *cobra.Command, st store.Store, settings *config.Settings) (*recommender.Recommender, error) {
	class, err := cmd.Flags().GetString("class")
	if err != nil {
		return nil, err
	}
	if class == "" {
		if len(settings.Recommenders) != 1 {
			return nil, fmt.Errorf("--class is required when multiple recommender classes are configured")
		}
		class = settings.Recommenders[0].Class
	}

	rec, ok := settings.Recommender(class)
	if !ok {
		return nil, fmt.Errorf("recommender class %q is not configured", class)
	}
	return recommender.New(st, rec.RecommenderConfig())
}

func renderScoredItems(results []recommender.ScoredItem, withScores bool) error {
	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	if withScores {
		table.Options(tablewriter.WithHeader([]string{"Item", "Score"}))
		for _, res := range results {
			if err := table.Append([]string{res.ID, fmt.Sprintf("%.6f", res.Score)}); err != nil {
				return err
			}
		}
	} else {
		table.Options(tablewriter.WithHeader([]string{"Item"}))
		for _, res := range results {
			if err := table.Append([]string{res.ID}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}
