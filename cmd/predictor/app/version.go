// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recgraph/predictor/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the version of predictor",
		Long:  `Show the version, commit hash and build date of the predictor binary.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetVersionInfo()

			if format == "json" {
				out, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal version info: %w", err)
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Println(info.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format (json)")
	return cmd
}
