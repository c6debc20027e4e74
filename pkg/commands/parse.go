// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/smartscope/pkg/smartctl"
)

var (
	parseDiskType string
	parseStrategy string
	parseOutput   string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a captured smartctl report and print its properties",
	Long:  "Parse the output of 'smartctl -x' or 'smartctl --json -x' for an ATA drive. Use '-' to read the report from stdin.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// arguments are valid, later errors are about the report
		cmd.SilenceUsage = true
		diskType, err := smartctl.ParseDiskType(getEnv("DISK_TYPE", parseDiskType))
		if err != nil {
			return err
		}
		strategy, err := smartctl.ParseStrategy(getEnv("STRATEGY", parseStrategy))
		if err != nil {
			return err
		}

		report, err := readReport(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}

		res := smartctl.Parse(report, diskType, strategy)
		log.Info().Str("source", args[0]).Str("version", res.Version.Token).
			Str("strategy", res.Strategy.String()).Int("properties", len(res.Properties)).Msg("report parsed")

		if err := writeResult(cmd.OutOrStdout(), res, parseOutput); err != nil {
			return err
		}
		if !res.OK() {
			return res.Err
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseDiskType, "disk-type", "any", "Disk type for attribute descriptions (any, hdd, ssd)")
	parseCmd.Flags().StringVar(&parseStrategy, "strategy", "auto", "Parser strategy (auto, text, json)")
	parseCmd.Flags().StringVarP(&parseOutput, "output", "o", "table", "Output format (table, json)")
}

// readReport reads a report file, or in when path is "-".
func readReport(path string, in io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading report from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading report: %w", err)
	}
	return string(data), nil
}

type resultOutput struct {
	Version    smartctl.Version         `json:"version"`
	Strategy   smartctl.Strategy        `json:"strategy"`
	DiskType   string                   `json:"disk_type"`
	Error      string                   `json:"error,omitempty"`
	Flags      smartctl.CapabilityFlags `json:"capabilities"`
	Properties []smartctl.Property      `json:"properties"`
}

func writeResult(w io.Writer, res *smartctl.Result, format string) error {
	switch format {
	case "json":
		out := resultOutput{
			Version:    res.Version,
			Strategy:   res.Strategy,
			DiskType:   res.DiskType.String(),
			Error:      res.ErrorMessage(),
			Flags:      smartctl.Capabilities(res.Properties),
			Properties: res.Properties,
		}
		if out.Properties == nil {
			out.Properties = []smartctl.Property{}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "table", "":
		return writeTable(w, res)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeTable(w io.Writer, res *smartctl.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "# smartctl %s (%s parser)\n", res.Version.Token, res.Strategy)
	fmt.Fprintln(tw, "SECTION\tSUBSECTION\tKEY\tNAME\tVALUE")
	for _, p := range res.Properties {
		sub := p.SubSection.String()
		if sub == "" {
			sub = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Section, sub, p.Key, p.Name, p.FormatValue())
	}
	if flags := smartctl.Capabilities(res.Properties); flags != 0 {
		fmt.Fprintf(tw, "# capabilities: %s\n", flags)
	}
	if !res.OK() {
		fmt.Fprintf(tw, "# error: %s\n", res.ErrorMessage())
	}
	return tw.Flush()
}
