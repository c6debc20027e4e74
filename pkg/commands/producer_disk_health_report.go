// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/smartscope/pkg/producers/diskhealthreport"
)

var (
	dhrReportDir                   string
	dhrPatterns                    string
	dhrDiskType                    string
	dhrStrategy                    string
	dhrScanOnStart                 bool
	dhrSettleDelayMs               int
	dhrNatsURL                     string
	dhrNatsSubject                 string
	dhrPromEnabled                 bool
	dhrPromPort                    int
	dhrNodeName                    string
	dhrInstanceID                  string
	dhrPendingSectorsThreshold     int64
	dhrReallocatedSectorsThreshold int64
	dhrTemperatureThreshold        int64
	dhrLifetimeUsedThreshold       int64
)

var diskHealthReportCmd = &cobra.Command{
	Use:   "disk-health-report",
	Short: "Watch a directory of captured smartctl reports and publish disk health",
	Run: func(cmd *cobra.Command, args []string) {
		config := diskhealthreport.DiskHealthReportConfig{
			ReportDir:                   dhrReportDir,
			Patterns:                    splitList(dhrPatterns),
			DiskType:                    dhrDiskType,
			Strategy:                    dhrStrategy,
			ScanOnStart:                 dhrScanOnStart,
			SettleDelayMs:               dhrSettleDelayMs,
			NatsURL:                     dhrNatsURL,
			NatsSubject:                 dhrNatsSubject,
			Prometheus:                  dhrPromEnabled,
			PrometheusPort:              dhrPromPort,
			NodeName:                    dhrNodeName,
			InstanceID:                  dhrInstanceID,
			PendingSectorsThreshold:     dhrPendingSectorsThreshold,
			ReallocatedSectorsThreshold: dhrReallocatedSectorsThreshold,
			TemperatureThreshold:        dhrTemperatureThreshold,
			LifetimeUsedThreshold:       dhrLifetimeUsedThreshold,
		}

		config = mergeDiskHealthReportConfigWithEnv(config)
		if config.NodeName == "" {
			config.NodeName = diskhealthreport.DefaultNodeName()
		}

		config.UseNats = config.NatsURL != ""

		event := log.Info()
		event.Bool("use_nats", config.UseNats)
		if config.UseNats {
			event.Str("nats_url", config.NatsURL)
			event.Str("nats_subject", config.NatsSubject)
		}

		event.Bool("prometheus_enabled", config.Prometheus)
		if config.Prometheus {
			event.Int("prometheus_port", config.PrometheusPort)
		}

		event.Str("report_dir", config.ReportDir).
			Str("patterns", fmt.Sprintf("%v", config.Patterns)).
			Str("disk_type", config.DiskType).
			Str("strategy", config.Strategy).
			Str("node_name", config.NodeName).
			Str("instance_id", config.InstanceID)

		event.Msg("configuration_loaded")

		validateDiskHealthReportConfig(config)

		diskhealthreport.StartMonitoring(config)
	},
}

func mergeDiskHealthReportConfigWithEnv(cfg diskhealthreport.DiskHealthReportConfig) diskhealthreport.DiskHealthReportConfig {
	cfg.ReportDir = getEnv("REPORT_DIR", cfg.ReportDir)
	cfg.Patterns = getEnvStringSlice("REPORT_PATTERNS", cfg.Patterns)
	cfg.DiskType = getEnv("DISK_TYPE", cfg.DiskType)
	cfg.Strategy = getEnv("STRATEGY", cfg.Strategy)
	cfg.ScanOnStart = getEnvBool("SCAN_ON_START", cfg.ScanOnStart)
	cfg.SettleDelayMs = getEnvInt("SETTLE_DELAY_MS", cfg.SettleDelayMs)
	cfg.NatsURL = getEnv("NATS_URL", cfg.NatsURL)
	cfg.NatsSubject = getEnv("NATS_SUBJECT", cfg.NatsSubject)
	cfg.Prometheus = getEnvBool("PROMETHEUS", cfg.Prometheus)
	cfg.PrometheusPort = getEnvInt("PROMETHEUS_PORT", cfg.PrometheusPort)
	cfg.NodeName = getEnv("NODE_NAME", cfg.NodeName)
	cfg.InstanceID = getEnv("INSTANCE_ID", cfg.InstanceID)
	cfg.PendingSectorsThreshold = getEnvInt64("PENDING_SECTORS_THRESHOLD", cfg.PendingSectorsThreshold)
	cfg.ReallocatedSectorsThreshold = getEnvInt64("REALLOCATED_SECTORS_THRESHOLD", cfg.ReallocatedSectorsThreshold)
	cfg.TemperatureThreshold = getEnvInt64("TEMPERATURE_THRESHOLD", cfg.TemperatureThreshold)
	cfg.LifetimeUsedThreshold = getEnvInt64("LIFETIME_USED_THRESHOLD", cfg.LifetimeUsedThreshold)

	return cfg
}

func init() {
	def := diskhealthreport.DefaultConfig()

	diskHealthReportCmd.Flags().StringVar(&dhrReportDir, "report-dir", "", "Directory where captured smartctl reports are written")
	diskHealthReportCmd.Flags().StringVar(&dhrPatterns, "patterns", strings.Join(def.Patterns, ","), "Comma separated glob patterns of report file names")
	diskHealthReportCmd.Flags().StringVar(&dhrDiskType, "disk-type", def.DiskType, "Disk type for attribute descriptions (any, hdd, ssd)")
	diskHealthReportCmd.Flags().StringVar(&dhrStrategy, "strategy", def.Strategy, "Parser strategy (auto, text, json)")
	diskHealthReportCmd.Flags().BoolVar(&dhrScanOnStart, "scan-on-start", def.ScanOnStart, "Process existing reports on start")
	diskHealthReportCmd.Flags().IntVar(&dhrSettleDelayMs, "settle-delay-ms", def.SettleDelayMs, "Wait after the last write before a report is parsed")
	diskHealthReportCmd.Flags().StringVar(&dhrNatsURL, "nats-url", "", "NATS server URL")
	diskHealthReportCmd.Flags().StringVar(&dhrNatsSubject, "nats-subject", def.NatsSubject, "NATS subject to publish disk health events")
	diskHealthReportCmd.Flags().BoolVar(&dhrPromEnabled, "prometheus", false, "Enable Prometheus metrics")
	diskHealthReportCmd.Flags().IntVar(&dhrPromPort, "prometheus-port", def.PrometheusPort, "Prometheus metrics port")
	diskHealthReportCmd.Flags().StringVar(&dhrNodeName, "node-name", "", "Node name reported with every event (defaults to the host name)")
	diskHealthReportCmd.Flags().StringVar(&dhrInstanceID, "instance-id", "", "Instance ID reported with every event")
	diskHealthReportCmd.Flags().Int64Var(&dhrPendingSectorsThreshold, "pending-sectors-threshold", def.PendingSectorsThreshold, "Threshold for pending sectors to trigger a warning")
	diskHealthReportCmd.Flags().Int64Var(&dhrReallocatedSectorsThreshold, "reallocated-sectors-threshold", def.ReallocatedSectorsThreshold, "Threshold for reallocated sectors to trigger a warning")
	diskHealthReportCmd.Flags().Int64Var(&dhrTemperatureThreshold, "temperature-threshold", def.TemperatureThreshold, "Temperature in Celsius to trigger a warning")
	diskHealthReportCmd.Flags().Int64Var(&dhrLifetimeUsedThreshold, "lifetime-used-threshold", def.LifetimeUsedThreshold, "Threshold for SSD lifetime used percentage to trigger a critical alert")
}

func validateDiskHealthReportConfig(config diskhealthreport.DiskHealthReportConfig) {
	if err := config.Validate(); err != nil {
		fmt.Printf("Warning: %v\n", err)
		fmt.Println("One or more required parameters are missing or invalid. Please provide them through flags or environment variables.")
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var result []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
