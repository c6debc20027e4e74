// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, []string{"*.txt", "*.json"}, cfg.Patterns)
	assert.Equal(t, "any", cfg.DiskType)
	assert.Equal(t, "auto", cfg.Strategy)
	assert.True(t, cfg.ScanOnStart)
	assert.Equal(t, 100, cfg.SettleDelayMs)
	assert.Equal(t, "disk.health.report", cfg.NatsSubject)
	assert.Equal(t, int64(3), cfg.PendingSectorsThreshold)

	// the report directory has no default
	assert.EqualError(t, cfg.Validate(), "report directory must be set")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*DiskHealthReportConfig)
		wantErr string
	}{
		{"valid", func(*DiskHealthReportConfig) {}, ""},
		{"no patterns", func(c *DiskHealthReportConfig) { c.Patterns = nil }, "at least one report file pattern must be set"},
		{"bad pattern", func(c *DiskHealthReportConfig) { c.Patterns = []string{"[sd"} }, "invalid report file pattern"},
		{"bad disk type", func(c *DiskHealthReportConfig) { c.DiskType = "tape" }, `unknown disk type "tape"`},
		{"bad strategy", func(c *DiskHealthReportConfig) { c.Strategy = "xml" }, `unknown parser strategy "xml"`},
		{"bad port", func(c *DiskHealthReportConfig) { c.Prometheus = true; c.PrometheusPort = 0 }, "invalid prometheus port 0"},
		{"port ignored without prometheus", func(c *DiskHealthReportConfig) { c.PrometheusPort = 0 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("/var/lib/smartctl")
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigMatches(t *testing.T) {
	cfg := testConfig("/reports")
	assert.True(t, cfg.matches("/reports/sda.txt"))
	assert.True(t, cfg.matches("sdb.json"))
	assert.False(t, cfg.matches("/reports/sda.txt.swp"))
	assert.False(t, cfg.matches("/reports/.sda.tmp"))

	cfg.Patterns = []string{"sd?.log"}
	assert.True(t, cfg.matches("/reports/sdc.log"))
	assert.False(t, cfg.matches("/reports/nvme0.log"))
}
