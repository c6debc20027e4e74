// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/smartscope/pkg/smartctl"
)

var versionCmd = &cobra.Command{
	Use:   "version <file|->",
	Short: "Detect the smartctl version of a captured report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// arguments are valid, later errors are about the report
		cmd.SilenceUsage = true
		report, err := readReport(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		v, err := smartctl.DetectVersion(report)
		if err != nil {
			return err
		}
		return writeVersion(cmd.OutOrStdout(), v)
	},
}

func writeVersion(w io.Writer, v smartctl.Version) error {
	strategy := "none"
	if s, ok := smartctl.DetectSupportedStrategy(v.Token); ok {
		strategy = s.String()
	}
	_, err := fmt.Fprintf(w, "version: %s\nbanner: %s\ntext supported: %t\njson supported: %t\npreferred strategy: %s\n",
		v.Token, v.Full,
		smartctl.IsVersionSupported(smartctl.StrategyText, v.Token),
		smartctl.IsVersionSupported(smartctl.StrategyJSON, v.Token),
		strategy)
	return err
}
