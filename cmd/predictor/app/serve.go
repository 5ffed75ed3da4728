// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/recgraph/predictor/pkg/api"
	"github.com/recgraph/predictor/pkg/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP query server",
	Long: `Start an HTTP server exposing similarity and prediction queries for
every configured recommender class, plus maintenance endpoints and
optional Prometheus metrics.`,
	RunE: serveCmdFunc,
}

func serveCmdFunc(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	st, err := connectStore(ctx, settings)
	if err != nil {
		return err
	}
	defer st.Close()

	var gatherer prometheus.Gatherer
	if settings.Server.Metrics {
		registry := prometheus.NewRegistry()
		st = telemetry.NewInstrumentedStore(st, telemetry.NewMetrics(registry))
		gatherer = registry
	}

	recommenders, err := buildRecommenders(st, settings)
	if err != nil {
		return err
	}

	return api.NewServer(settings.Server.ListenAddr, recommenders, gatherer).Serve(ctx)
}
