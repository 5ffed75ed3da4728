// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package main is the entry point for the predictor CLI.
package main

import (
	"os"

	"github.com/recgraph/predictor/cmd/predictor/app"
	"github.com/recgraph/predictor/pkg/logger"
)

func main() {
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
