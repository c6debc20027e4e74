// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltcore-dev/smartscope/pkg/smartctl"
)

func testConfig(dir string) DiskHealthReportConfig {
	cfg := DefaultConfig()
	cfg.ReportDir = dir
	cfg.NodeName = "node-1"
	cfg.InstanceID = "i-123"
	return cfg
}

func summarize(t *testing.T, name string) DiskSummary {
	t.Helper()
	summary, err := ProcessReport(filepath.Join("testdata", name), testConfig("testdata"))
	require.NoError(t, err)
	return summary
}

func TestDeviceName(t *testing.T) {
	assert.Equal(t, "sda", DeviceName("/var/lib/smartctl/sda.txt"))
	assert.Equal(t, "nvme0n1", DeviceName("nvme0n1.json"))
	assert.Equal(t, "sdb", DeviceName("sdb"))
}

func TestFindVendor(t *testing.T) {
	tests := []struct {
		model, family, want string
	}{
		{"ST4000NM0035-1V4107", "", "Seagate"},
		{"Samsung SSD 860 EVO 500GB", "", "Samsung"},
		{"WDC WD40EFRX-68N32N0", "Western Digital Red", "WesternDigital"},
		{"HUH721212ALE604", "", "HGST"},
		{"MTFDDAK480TDS", "", "Micron"},
		{"XYZ-1000", "Acme Drives", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FindVendor(tt.model, tt.family), tt.model)
	}
}

func TestBuildSummaryHDDText(t *testing.T) {
	s := summarize(t, "ata_hdd_x.txt")

	assert.Empty(t, s.ParseError)
	assert.Equal(t, "ata_hdd_x", s.Device)
	assert.Equal(t, "node-1", s.NodeName)
	assert.Equal(t, "i-123", s.InstanceID)
	assert.Equal(t, "7.3", s.SmartctlVersion)
	assert.Equal(t, "text", s.Strategy)
	assert.Positive(t, s.PropertyCount)

	require.NotNil(t, s.DeviceInfo)
	assert.Equal(t, "Seagate Exos 7E8", s.DeviceInfo.ModelFamily)
	assert.Equal(t, "ST4000NM0035-1V4107", s.DeviceInfo.DeviceModel)
	assert.Equal(t, "ZC1A2B3C", s.DeviceInfo.SerialNumber)
	assert.Equal(t, "TN03", s.DeviceInfo.FirmwareVersion)
	assert.Equal(t, "5 000c50 0a1b2c3d4", s.DeviceInfo.WWN)
	assert.Equal(t, "Seagate", s.DeviceInfo.Vendor)
	assert.Equal(t, "hdd", s.DeviceInfo.Media)
	assert.Equal(t, int64(7200), s.DeviceInfo.RPM)
	assert.InDelta(t, 4000.787, s.CapacityGB, 0.001)

	require.NotNil(t, s.HealthStatus)
	assert.True(t, *s.HealthStatus)
	require.NotNil(t, s.TemperatureCelsius)
	assert.Equal(t, int64(34), *s.TemperatureCelsius)
	require.NotNil(t, s.ReallocatedSectors)
	assert.Equal(t, int64(8), *s.ReallocatedSectors)
	require.NotNil(t, s.PendingSectors)
	assert.Equal(t, int64(0), *s.PendingSectors)
	require.NotNil(t, s.PowerOnHours)
	assert.Equal(t, int64(22188), *s.PowerOnHours)
	assert.Nil(t, s.SSDLifeUsed)

	assert.Equal(t, map[string]int64{
		"udma_crc_errors":   0,
		"ata_errors":        2,
		"failed_self_tests": 1,
	}, s.ErrorCounts)

	realloc := s.Attributes["reallocated_sector_ct"]
	assert.Equal(t, 5, realloc.ID)
	assert.Equal(t, "sectors", realloc.Unit)
	assert.Equal(t, int64(100), realloc.Value)
	assert.Equal(t, int64(10), realloc.Threshold)
	assert.Equal(t, int64(8), realloc.RawValue)
	assert.Empty(t, realloc.Failed)
	assert.Contains(t, s.Attributes, "end_to_end_error")

	assert.Contains(t, s.Capabilities, "conveyance_self_test")
	assert.Contains(t, s.Capabilities, "sct_erc")
	assert.NotContains(t, s.Capabilities, "self_test_in_progress")
}

func TestBuildSummarySSDText(t *testing.T) {
	s := summarize(t, "ata_ssd_a.txt")

	assert.Empty(t, s.ParseError)
	assert.Equal(t, "ssd", s.DeviceInfo.Media)
	assert.Equal(t, int64(0), s.DeviceInfo.RPM)
	assert.Equal(t, "Samsung", s.DeviceInfo.Vendor)

	// Wear_Leveling_Count normalized value 093
	require.NotNil(t, s.SSDLifeUsed)
	assert.Equal(t, int64(7), *s.SSDLifeUsed)

	// no SCT status table, airflow temperature is used
	require.NotNil(t, s.TemperatureCelsius)
	assert.Equal(t, int64(33), *s.TemperatureCelsius)

	assert.Equal(t, int64(0), s.ErrorCounts["failed_self_tests"])
	assert.Contains(t, s.Capabilities, "self_test_in_progress")
	assert.NotContains(t, s.Capabilities, "conveyance_self_test")

	unknown, ok := s.Attributes["attribute_235"]
	require.True(t, ok)
	assert.Equal(t, int64(-1), unknown.RawValue)
}

func TestBuildSummaryHDDJSON(t *testing.T) {
	s := summarize(t, "ata_hdd_x.json")

	assert.Empty(t, s.ParseError)
	assert.Equal(t, "json", s.Strategy)
	assert.Equal(t, "ata_hdd_x", s.Device)
	assert.Equal(t, "hdd", s.DeviceInfo.Media)
	require.NotNil(t, s.TemperatureCelsius)
	assert.Equal(t, int64(34), *s.TemperatureCelsius)
	require.NotNil(t, s.ReallocatedSectors)
	assert.Equal(t, int64(8), *s.ReallocatedSectors)
	require.NotNil(t, s.PowerOnHours)
	assert.Equal(t, int64(22188), *s.PowerOnHours)
	assert.Equal(t, int64(2), s.ErrorCounts["ata_errors"])
	assert.Equal(t, int64(1), s.ErrorCounts["failed_self_tests"])
	assert.Equal(t, "In_the_past", s.Attributes["current_pending_sector"].Failed)

	text := summarize(t, "ata_hdd_x.txt")
	assert.Equal(t, text.Capabilities, s.Capabilities)
}

func TestBuildSummaryPartial(t *testing.T) {
	res := smartctl.Parse("smartctl 7.3 2022-02-28 r5338\n\n"+
		"=== START OF INFORMATION SECTION ===\n"+
		"Device Model:     ST4000NM0035-1V4107\n\n"+
		"=== START OF READ SMART DATA SECTION ===\n"+
		"General SMART Values:\n"+
		"SMART capabilities:            (0x0003", smartctl.DiskTypeAny, smartctl.StrategyAuto)
	require.False(t, res.OK())

	s := BuildSummary(res, "/reports/sdc.txt", testConfig("/reports"))
	assert.Equal(t, "sdc", s.Device)
	assert.Contains(t, s.ParseError, "capabilities")
	assert.Equal(t, "Seagate", s.DeviceInfo.Vendor)
	assert.Equal(t, "unknown", s.DeviceInfo.Media)
	assert.Nil(t, s.HealthStatus)
	assert.Nil(t, s.TemperatureCelsius)
	assert.NotContains(t, s.ErrorCounts, "ata_errors")
}

func TestBuildSummaryDeclaredDiskType(t *testing.T) {
	res := smartctl.Parse("smartctl 7.3\nDevice Model: X\n", smartctl.DiskTypeSSD, smartctl.StrategyText)
	require.True(t, res.OK())
	s := BuildSummary(res, "sdd.txt", testConfig("."))
	assert.Equal(t, "ssd", s.DeviceInfo.Media)
}
