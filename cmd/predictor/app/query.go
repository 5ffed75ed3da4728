// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/recgraph/predictor/pkg/recommender"
)

var errInvalidSetRef = errors.New("--set must be of the form MATRIX:SET_ID")

// splitSetRef splits a MATRIX:SET_ID reference. Matrix labels never
// contain a colon, so the first one separates the two parts.
func splitSetRef(ref string) (label, setID string, ok bool) {
	label, setID, ok = strings.Cut(ref, ":")
	if !ok || label == "" || setID == "" {
		return "", "", false
	}
	return label, setID, true
}

var similarCmd = &cobra.Command{
	Use:   "similar ITEM",
	Short: "Query items similar to an item",
	Long: `Print the similarity row of ITEM, most similar first. Results reflect
the last processed state of the row.`,
	Args: cobra.ExactArgs(1),
	RunE: similarCmdFunc,
}

var predictCmd = &cobra.Command{
	Use:   "predict ITEM...",
	Short: "Predict items related to a group of items",
	Long: `Aggregate the similarity rows of the given items and print the
highest-scoring items not already in the input. With --set, the items of
the named set are used as input instead of command-line arguments.`,
	RunE: predictCmdFunc,
}

func init() {
	for _, cmd := range []*cobra.Command{similarCmd, predictCmd} {
		cmd.Flags().Int("limit", 0, "Maximum number of results (0 for no limit)")
		cmd.Flags().Int("offset", 0, "Number of results to skip")
		cmd.Flags().StringSlice("exclude", nil, "Items to exclude from the results")
		cmd.Flags().Bool("scores", false, "Print scores alongside items")
	}
	predictCmd.Flags().String("set", "", "Use the items of this set as input (MATRIX:SET_ID)")
}

func queryOptionsFromFlags(cmd *cobra.Command) (recommender.QueryOptions, error) {
	var opts recommender.QueryOptions
	var err error
	if opts.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return opts, err
	}
	if opts.Offset, err = cmd.Flags().GetInt("offset"); err != nil {
		return opts, err
	}
	if opts.Exclude, err = cmd.Flags().GetStringSlice("exclude"); err != nil {
		return opts, err
	}
	return opts, nil
}

func similarCmdFunc(cmd *cobra.Command, args []string) error {
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

	opts, err := queryOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	results, err := rec.SimilaritiesFor(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}

	withScores, _ := cmd.Flags().GetBool("scores")
	return renderScoredItems(results, withScores)
}

func predictCmdFunc(cmd *cobra.Command, args []string) error {
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

	opts, err := queryOptionsFromFlags(cmd)
	if err != nil {
		return err
	}

	input := recommender.PredictionInput{Items: args}
	if set, _ := cmd.Flags().GetString("set"); set != "" {
		label, setID, ok := splitSetRef(set)
		if !ok {
			return errInvalidSetRef
		}
		input.MatrixLabel = label
		input.SetID = setID
	}

	results, err := rec.PredictionsFor(cmd.Context(), input, opts)
	if err != nil {
		return err
	}

	withScores, _ := cmd.Flags().GetBool("scores")
	return renderScoredItems(results, withScores)
}
