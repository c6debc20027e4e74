// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/host"

	"github.com/cobaltcore-dev/smartscope/pkg/smartctl"
)

type DiskHealthReportConfig struct {
	ReportDir      string
	Patterns       []string // glob patterns matched against the file name
	DiskType       string   // any, hdd, ssd
	Strategy       string   // auto, json, text
	ScanOnStart    bool
	SettleDelayMs  int // wait after a write event before reading the report
	NatsURL        string
	NatsSubject    string
	UseNats        bool
	Prometheus     bool
	PrometheusPort int
	NodeName       string
	InstanceID     string

	// NATS event thresholds
	PendingSectorsThreshold     int64
	ReallocatedSectorsThreshold int64
	TemperatureThreshold        int64 // Celsius
	LifetimeUsedThreshold       int64 // percentage
}

// DefaultConfig returns the settings used when neither flags nor environment
// override them. NodeName is left empty, see DefaultNodeName.
func DefaultConfig() DiskHealthReportConfig {
	return DiskHealthReportConfig{
		Patterns:                    []string{"*.txt", "*.json"},
		DiskType:                    "any",
		Strategy:                    "auto",
		ScanOnStart:                 true,
		SettleDelayMs:               100,
		NatsSubject:                 "disk.health.report",
		PrometheusPort:              8080,
		PendingSectorsThreshold:     3,
		ReallocatedSectorsThreshold: 10,
		TemperatureThreshold:        55,
		LifetimeUsedThreshold:       80,
	}
}

// DefaultNodeName returns the host name reported by the OS, empty if unknown.
func DefaultNodeName() string {
	info, err := host.Info()
	if err != nil {
		log.Warn().Err(err).Msg("error reading host info")
		return ""
	}
	return info.Hostname
}

// Validate checks the settings that have no usable default.
func (cfg DiskHealthReportConfig) Validate() error {
	if cfg.ReportDir == "" {
		return fmt.Errorf("report directory must be set")
	}
	if len(cfg.Patterns) == 0 {
		return fmt.Errorf("at least one report file pattern must be set")
	}
	for _, p := range cfg.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("invalid report file pattern %q: %w", p, err)
		}
	}
	if _, err := smartctl.ParseDiskType(cfg.DiskType); err != nil {
		return err
	}
	if _, err := smartctl.ParseStrategy(cfg.Strategy); err != nil {
		return err
	}
	if cfg.Prometheus && (cfg.PrometheusPort <= 0 || cfg.PrometheusPort > 65535) {
		return fmt.Errorf("invalid prometheus port %d", cfg.PrometheusPort)
	}
	return nil
}

// matches reports whether the file name of path matches one of the patterns.
func (cfg DiskHealthReportConfig) matches(path string) bool {
	name := filepath.Base(path)
	for _, p := range cfg.Patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
