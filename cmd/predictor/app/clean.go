// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Delete all data of a recommender class",
	Long: `Delete every key belonging to the selected recommender class: all sets,
reverse indexes, similarity rows and bookkeeping data. This cannot be
undone.`,
	RunE: cleanCmdFunc,
}

func cleanCmdFunc(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	st, err := connectStore(cmd.Context(), settings)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := selectRecommender(cmd, st, settings)
	if err != nil {
		return err
	}

	if err := rec.Clean(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Cleaned")
	return nil
}
