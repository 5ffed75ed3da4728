// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

// Package app provides the entry point for the predictor command-line
// application.
package app

import (
	"github.com/spf13/cobra"

	"github.com/recgraph/predictor/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:               "predictor",
	DisableAutoGenTag: true,
	Short:             "predictor maintains Redis-backed item-item recommendations",
	Long: `predictor maintains item-item similarity indexes over sparse binary
relations stored in Redis, and serves similarity and prediction queries
over them.

Recommender classes, their matrices, and weights are declared in
predictor.yaml; mutations and queries are issued through subcommands or
the HTTP server started by "predictor serve".`,
	Run: func(cmd *cobra.Command, _ []string) {
		// If no subcommand is provided, print help
		if err := cmd.Help(); err != nil {
			logger.Errorf("Error displaying help: %v", err)
		}
	},
}

// NewRootCmd creates a new root command for the predictor CLI.
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().String("config", "", "Path to the configuration file")
	rootCmd.PersistentFlags().String("class", "", "Recommender class to operate on (defaults to the only configured class)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(deleteItemCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
