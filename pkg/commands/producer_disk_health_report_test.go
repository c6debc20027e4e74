// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cobaltcore-dev/smartscope/pkg/producers/diskhealthreport"
)

func TestMergeDiskHealthReportConfigWithEnv(t *testing.T) {
	t.Setenv("REPORT_DIR", "/var/lib/smartctl")
	t.Setenv("REPORT_PATTERNS", "*.out")
	t.Setenv("DISK_TYPE", "ssd")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("PROMETHEUS", "true")
	t.Setenv("PROMETHEUS_PORT", "9100")
	t.Setenv("NODE_NAME", "storage-02")
	t.Setenv("TEMPERATURE_THRESHOLD", "60")

	cfg := mergeDiskHealthReportConfigWithEnv(diskhealthreport.DefaultConfig())
	assert.Equal(t, "/var/lib/smartctl", cfg.ReportDir)
	assert.Equal(t, []string{"*.out"}, cfg.Patterns)
	assert.Equal(t, "ssd", cfg.DiskType)
	assert.Equal(t, "auto", cfg.Strategy)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
	assert.True(t, cfg.Prometheus)
	assert.Equal(t, 9100, cfg.PrometheusPort)
	assert.Equal(t, "storage-02", cfg.NodeName)
	assert.Equal(t, int64(60), cfg.TemperatureThreshold)
	assert.Equal(t, int64(3), cfg.PendingSectorsThreshold)
	assert.NoError(t, cfg.Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"*.txt", "*.json"}, splitList("*.txt, *.json"))
	assert.Nil(t, splitList(""))
}
