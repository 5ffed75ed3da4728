// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process [ITEM...]",
	Short: "Rebuild similarity rows",
	Long: `Rebuild the similarity rows of the given items, or of every known item
when no arguments are given. Rows are recomputed concurrently up to the
configured concurrency limit.`,
	RunE: processCmdFunc,
}

func processCmdFunc(cmd *cobra.Command, args []string) error {
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

	if len(args) > 0 {
		if err := rec.ProcessItems(cmd.Context(), args...); err != nil {
			return err
		}
		fmt.Printf("Processed %d items\n", len(args))
		return nil
	}

	if err := rec.ProcessAll(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Processed all items")
	return nil
}
