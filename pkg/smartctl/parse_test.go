// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"errors"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAutoText(t *testing.T) {
	res := Parse(readFixture(t, "ata_hdd_x.txt"), DiskTypeHDD, StrategyAuto)
	require.True(t, res.OK(), res.ErrorMessage())
	assert.Equal(t, StrategyText, res.Strategy)
	assert.Equal(t, "7.3", res.Version.Token)
	assert.NotEmpty(t, res.Properties)
	assert.Contains(t, res.Info, "Device Model:")
	assert.Contains(t, res.Data, "SMART overall-health")
}

func TestParseAutoJSON(t *testing.T) {
	res := Parse(readFixture(t, "ata_hdd_x.json"), DiskTypeHDD, StrategyAuto)
	require.True(t, res.OK(), res.ErrorMessage())
	assert.Equal(t, StrategyJSON, res.Strategy)
	assert.Equal(t, "7.3", res.Version.Token)
}

func TestParseEntryVersionNotFound(t *testing.T) {
	res := Parse("Model: ABC\nSerial Number: 123\n", DiskTypeAny, StrategyText)
	require.False(t, res.OK())
	assert.True(t, errors.Is(res.Err, ErrVersionNotFound))
	assert.Empty(t, res.Properties)

	var pe *ParseError
	require.True(t, errors.As(res.Err, &pe))
	assert.Equal(t, KindVersionNotFound, pe.Kind)
}

func TestParseVersionUnsupported(t *testing.T) {
	res := Parse("smartctl 5.39 2009-08-08 r2873\n", DiskTypeAny, StrategyText)
	require.False(t, res.OK())
	assert.True(t, errors.Is(res.Err, ErrVersionUnsupported))
	assert.Equal(t, "5.39", res.Version.Token)
	assert.Contains(t, res.ErrorMessage(), "smartctl 5.39 is older than 5.43 for the text parser")

	// 6.6 is fine for text but too old for JSON output.
	res = Parse(`{"smartctl": {"version": [6, 6]}}`, DiskTypeAny, StrategyJSON)
	assert.True(t, errors.Is(res.Err, ErrVersionUnsupported))
	assert.Contains(t, res.ErrorMessage(), "older than 7.3 for the json parser")
}

func TestParseStructureFailureKeepsProperties(t *testing.T) {
	report := "smartctl 7.3 2022-02-28 r5338\n\n" +
		"=== START OF INFORMATION SECTION ===\n" +
		"Device Model:     X\n\n" +
		"=== START OF READ SMART DATA SECTION ===\n" +
		"General SMART Values:\n" +
		"SMART capabilities:            (0x0003"

	res := Parse(report, DiskTypeAny, StrategyAuto)
	require.False(t, res.OK())
	assert.False(t, errors.Is(res.Err, ErrVersionNotFound))
	assert.Contains(t, res.ErrorMessage(), "cannot parse capabilities subsection")
	assert.Equal(t, []string{"smartctl/version/_merged", "smartctl/version/_merged_full", "model_name"}, keys(res.Properties))
}

func TestParsePendingDefectsLog(t *testing.T) {
	res := Parse(readFixture(t, "ata_hdd_pending_defects.txt"), DiskTypeHDD, StrategyText)
	require.True(t, res.OK(), res.ErrorMessage())

	full := Parse(readFixture(t, "ata_hdd_x.txt"), DiskTypeHDD, StrategyText)
	require.True(t, full.OK(), full.ErrorMessage())
	assert.Equal(t, keys(full.Properties), keys(res.Properties))

	assert.Len(t, FilterProperties(res.Properties, SubSectionPhyLog), 3)
	assert.NotEmpty(t, FilterProperties(res.Properties, SubSectionDevstat))
}

func TestResultJSON(t *testing.T) {
	res := Parse("smartctl 7.3\nModel: ABC\n", DiskTypeAny, StrategyText)
	require.True(t, res.OK())

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var out struct {
		Version    Version `json:"version"`
		Strategy   string  `json:"strategy"`
		Properties []struct {
			Key     string `json:"key"`
			Section string `json:"section"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "7.3", out.Version.Token)
	assert.Equal(t, "text", out.Strategy)
	require.Len(t, out.Properties, 3)
	assert.Equal(t, "Model", out.Properties[2].Key)
	assert.Equal(t, "info", out.Properties[2].Section)
}
