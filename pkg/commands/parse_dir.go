// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/smartscope/pkg/smartctl"
)

var (
	parseDirDiskType string
	parseDirStrategy string
	parseDirPattern  string
	parseDirProgress bool
)

// reportOutcome is the per-file line of a batch run.
type reportOutcome struct {
	File       string
	Version    string
	Strategy   string
	Properties int
	Err        string
}

var parseDirCmd = &cobra.Command{
	Use:   "parse-dir <dir>",
	Short: "Parse every captured smartctl report in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// arguments are valid, later errors are about the report
		cmd.SilenceUsage = true
		diskType, err := smartctl.ParseDiskType(getEnv("DISK_TYPE", parseDirDiskType))
		if err != nil {
			return err
		}
		strategy, err := smartctl.ParseStrategy(getEnv("STRATEGY", parseDirStrategy))
		if err != nil {
			return err
		}

		files, err := listReports(args[0], parseDirPattern)
		if err != nil {
			return err
		}

		var progress io.Writer = io.Discard
		if parseDirProgress {
			progress = cmd.ErrOrStderr()
		}
		outcomes := parseReports(files, diskType, strategy, progress)

		failed := 0
		for _, o := range outcomes {
			if o.Err != "" {
				failed++
			}
		}
		if err := writeOutcomes(cmd.OutOrStdout(), outcomes); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d reports could not be parsed", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	parseDirCmd.Flags().StringVar(&parseDirDiskType, "disk-type", "any", "Disk type for attribute descriptions (any, hdd, ssd)")
	parseDirCmd.Flags().StringVar(&parseDirStrategy, "strategy", "auto", "Parser strategy (auto, text, json)")
	parseDirCmd.Flags().StringVar(&parseDirPattern, "pattern", "*", "Glob pattern for report file names")
	parseDirCmd.Flags().BoolVar(&parseDirProgress, "progress", true, "Show a progress bar on stderr")
}

func listReports(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading report directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func parseReports(files []string, diskType smartctl.DiskType, strategy smartctl.Strategy, progress io.Writer) []reportOutcome {
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("parsing reports"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	outcomes := make([]reportOutcome, 0, len(files))
	for _, file := range files {
		o := reportOutcome{File: filepath.Base(file)}
		data, err := os.ReadFile(file)
		if err != nil {
			o.Err = err.Error()
		} else {
			res := smartctl.Parse(string(data), diskType, strategy)
			o.Version = res.Version.Token
			o.Strategy = res.Strategy.String()
			o.Properties = len(res.Properties)
			o.Err = res.ErrorMessage()
		}
		if o.Err != "" {
			log.Warn().Str("file", file).Str("error", o.Err).Msg("report could not be parsed")
		}
		outcomes = append(outcomes, o)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	return outcomes
}

func writeOutcomes(w io.Writer, outcomes []reportOutcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tVERSION\tSTRATEGY\tPROPERTIES\tRESULT")
	for _, o := range outcomes {
		result := "ok"
		if o.Err != "" {
			result = o.Err
		}
		version := o.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", o.File, version, o.Strategy, o.Properties, result)
	}
	return tw.Flush()
}
