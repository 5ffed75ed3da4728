// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recgraph/predictor/pkg/recommender"
)

var addCmd = &cobra.Command{
	Use:   "add MATRIX SET_ID ITEM...",
	Short: "Add items to a set of a matrix",
	Long: `Add items to the forward set of SET_ID in the named matrix. With
--immediate, the similarity rows affected by the change are rebuilt
before the command returns; otherwise they stay stale until the next
process run.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateCmdFunc(cmd, args, (*recommender.Recommender).Add)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove MATRIX SET_ID ITEM...",
	Short: "Remove items from a set of a matrix",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return mutateCmdFunc(cmd, args, (*recommender.Recommender).Remove)
	},
}

var deleteItemCmd = &cobra.Command{
	Use:   "delete-item ITEM",
	Short: "Delete an item from every matrix",
	Long: `Remove ITEM from every set of every matrix, delete its similarity row,
and rebuild the rows of its former co-occurrents. With --matrix, the
item is removed from that matrix only.`,
	Args: cobra.ExactArgs(1),
	RunE: deleteItemCmdFunc,
}

func init() {
	addCmd.Flags().Bool("immediate", false, "Rebuild affected similarity rows immediately")
	removeCmd.Flags().Bool("immediate", false, "Rebuild affected similarity rows immediately")
	deleteItemCmd.Flags().String("matrix", "", "Delete the item from this matrix only")
}

type mutateFunc func(
	r *recommender.Recommender,
	ctx context.Context, label, setID string, items []string, mode recommender.ProcessMode,
) error

func mutateCmdFunc(cmd *cobra.Command, args []string, op mutateFunc) error {
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

	mode := recommender.Deferred
	if immediate, _ := cmd.Flags().GetBool("immediate"); immediate {
		mode = recommender.Immediate
	}

	if err := op(rec, cmd.Context(), args[0], args[1], args[2:], mode); err != nil {
		return err
	}
	fmt.Printf("Updated matrix %s set %s (%d items)\n", args[0], args[1], len(args)-2)
	return nil
}

func deleteItemCmdFunc(cmd *cobra.Command, args []string) error {
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

	label, _ := cmd.Flags().GetString("matrix")
	if label != "" {
		if err := rec.DeleteItemFromMatrix(cmd.Context(), label, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s from matrix %s\n", args[0], label)
		return nil
	}

	if err := rec.DeleteItem(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}
