// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	json "github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/smartscope/pkg/smartctl"
)

// ProcessReport reads and parses one smartctl report file. A report that
// fails to parse still yields a summary; only an unreadable file is an error.
func ProcessReport(path string, cfg DiskHealthReportConfig) (DiskSummary, error) {
	diskType, err := smartctl.ParseDiskType(cfg.DiskType)
	if err != nil {
		return DiskSummary{}, err
	}
	strategy, err := smartctl.ParseStrategy(cfg.Strategy)
	if err != nil {
		return DiskSummary{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DiskSummary{}, fmt.Errorf("reading report %s: %w", path, err)
	}

	res := smartctl.Parse(string(data), diskType, strategy)
	if !res.OK() {
		log.Warn().Str("file", path).Str("version", res.Version.Token).Err(res.Err).Msg("smartctl report parsed with errors")
	} else {
		log.Debug().Str("file", path).Str("version", res.Version.Token).Str("strategy", res.Strategy.String()).
			Int("properties", len(res.Properties)).Msg("smartctl report parsed")
	}
	return BuildSummary(res, path, cfg), nil
}

// ScanReportDir processes every matching report in the report directory in
// name order.
func ScanReportDir(cfg DiskHealthReportConfig) ([]DiskSummary, error) {
	entries, err := os.ReadDir(cfg.ReportDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !cfg.matches(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var summaries []DiskSummary
	for _, name := range names {
		summary, err := ProcessReport(filepath.Join(cfg.ReportDir, name), cfg)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("error processing report")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// publish sends summaries to the configured sinks, or to stdout as JSON when
// NATS is disabled.
func publish(summaries []DiskSummary, nc Publisher, cfg DiskHealthReportConfig) {
	if len(summaries) == 0 {
		return
	}

	if cfg.Prometheus {
		PublishToPrometheus(summaries)
	}

	if cfg.UseNats && nc != nil {
		if err := PublishToNATS(summaries, nc, cfg.NatsSubject, &cfg); err != nil {
			log.Error().Err(err).Msg("error publishing disk health to nats")
		}
		return
	}

	summariesJSON, err := json.Marshal(summaries)
	if err != nil {
		log.Error().Err(err).Msg("error marshalling disk health to json")
		return
	}
	fmt.Println(string(summariesJSON))
}

func StartMonitoring(cfg DiskHealthReportConfig) {
	StartMonitoringContext(context.Background(), cfg)
}

// StartMonitoringContext watches the report directory until ctx is done.
func StartMonitoringContext(ctx context.Context, cfg DiskHealthReportConfig) {
	var nc *nats.Conn
	var err error
	if cfg.UseNats {
		nc, err = nats.Connect(cfg.NatsURL)
		if err != nil {
			log.Fatal().Err(err).Str("nats_url", cfg.NatsURL).Msg("error connecting to nats")
		}
		log.Info().Str("nats_url", cfg.NatsURL).Msg("connected to nats server")
		defer nc.Close()
	}

	var pub Publisher
	if nc != nil {
		pub = nc
	}

	if cfg.Prometheus {
		StartPrometheusServer(cfg.PrometheusPort)
	}

	watcher, err := createReportWatcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ReportDir).Msg("unable to watch report directory")
	}
	defer watcher.Close()

	if cfg.ScanOnStart {
		summaries, err := ScanReportDir(cfg)
		if err != nil {
			log.Error().Err(err).Str("dir", cfg.ReportDir).Msg("error scanning report directory")
		}
		log.Info().Int("reports", len(summaries)).Msg("initial report scan finished")
		publish(summaries, pub, cfg)
	}

	watchReports(ctx, cfg, watcher, func(path string) {
		summary, err := ProcessReport(path, cfg)
		if err != nil {
			log.Error().Err(err).Str("file", path).Msg("error processing report")
			return
		}
		publish([]DiskSummary{summary}, pub, cfg)
	})
}
