// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		token string
		full  string
	}{
		{"build date", "smartctl 7.3 (build date Feb 11 2022)\n", "7.3", "7.3 (build date Feb 11 2022)"},
		{"svn revision", "smartctl 5.39 2009-08-08 r2873\n", "5.39", "5.39 2009-08-08 r2873"},
		{"version keyword", "smartctl version 5.37\n", "5.37", "5.37"},
		{"bare", "smartctl 5.39\n", "5.39", "5.39"},
		{"date and time", "smartctl 5.39 2009-06-03 20:10\n", "5.39", "5.39 2009-06-03 20:10"},
		{"platform suffix", "smartctl 7.3 2022-02-28 r5338 [x86_64-linux-5.15.0] (local build)\n", "7.3", "7.3 2022-02-28 r5338"},
		{"crlf", "smartctl 6.6 2017-11-05 r4594\r\nCopyright\r\n", "6.6", "6.6 2017-11-05 r4594"},
		{"not first line", "Warning\nsmartctl 7.1 2019-12-30 r5022\n", "7.1", "7.1 2019-12-30 r5022"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.token, v.Token)
			assert.Equal(t, tt.full, v.Full)
		})
	}
}

func TestParseVersionNotFound(t *testing.T) {
	for _, input := range []string{
		"",
		"Model: ABC\nSerial Number: 123\n",
		"  smartctl 7.3\n",
		"smartctlx 7.3\n",
	} {
		_, err := ParseVersion(input)
		assert.ErrorIs(t, err, ErrVersionNotFound, "input %q", input)
	}
}

func TestVersionFromJSON(t *testing.T) {
	v, err := VersionFromJSON([]int{7, 3})
	require.NoError(t, err)
	assert.Equal(t, "7.3", v.Token)

	v, err = VersionFromJSON([]int{7})
	require.NoError(t, err)
	assert.Equal(t, "7", v.Token)

	_, err = VersionFromJSON(nil)
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestVersionFromJSONOrdering(t *testing.T) {
	v, err := VersionFromJSON([]int{7, 10})
	require.NoError(t, err)
	assert.Equal(t, "7.10", v.Token)
	assert.True(t, IsVersionSupported(StrategyJSON, v.Token))

	s, ok := DetectSupportedStrategy(v.Token)
	assert.True(t, ok)
	assert.Equal(t, StrategyJSON, s)

	assert.True(t, IsVersionSupported(StrategyText, "5.43.1"))
	assert.False(t, IsVersionSupported(StrategyJSON, "7"))
	assert.False(t, IsVersionSupported(StrategyJSON, "6.10"))
}

func TestDetectVersion(t *testing.T) {
	v, err := DetectVersion("smartctl 6.6 2017-11-05 r4594\n")
	require.NoError(t, err)
	assert.Equal(t, "6.6", v.Token)

	v, err = DetectVersion(`{"smartctl": {"version": [7, 3], "svn_revision": "5338"}}`)
	require.NoError(t, err)
	assert.Equal(t, "7.3", v.Token)
	assert.Equal(t, "7.3 r5338", v.Full)

	_, err = DetectVersion("{not json")
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = DetectVersion("no banner")
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestNumericVersion(t *testing.T) {
	v, ok := NumericVersion("5.43")
	assert.True(t, ok)
	assert.InDelta(t, 5.43, v, 1e-9)

	for _, bad := range []string{"", "7.4-pre", "1e3", "seven"} {
		_, ok := NumericVersion(bad)
		assert.False(t, ok, "token %q", bad)
	}
}

func TestIsVersionSupported(t *testing.T) {
	assert.True(t, IsVersionSupported(StrategyText, "5.43"))
	assert.False(t, IsVersionSupported(StrategyText, "5.42"))
	assert.True(t, IsVersionSupported(StrategyText, "7.3"))
	assert.True(t, IsVersionSupported(StrategyJSON, "7.3"))
	assert.False(t, IsVersionSupported(StrategyJSON, "7.2"))
	assert.True(t, IsVersionSupported(StrategyAuto, "6.6"))
	assert.False(t, IsVersionSupported(StrategyAuto, "5.39"))
	assert.False(t, IsVersionSupported(StrategyText, "garbage"))
}

func TestDetectSupportedStrategy(t *testing.T) {
	s, ok := DetectSupportedStrategy("7.3")
	assert.True(t, ok)
	assert.Equal(t, StrategyJSON, s)

	s, ok = DetectSupportedStrategy("6.6")
	assert.True(t, ok)
	assert.Equal(t, StrategyText, s)

	_, ok = DetectSupportedStrategy("5.39")
	assert.False(t, ok)

	// Once a version is supported, every newer one is too.
	supported := false
	for _, token := range []string{"5.0", "5.39", "5.43", "6.0", "7.0", "7.3", "7.4", "8.0"} {
		_, ok := DetectSupportedStrategy(token)
		if supported {
			assert.True(t, ok, "version %s", token)
		}
		supported = supported || ok
	}
	assert.True(t, supported)
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]Strategy{"": StrategyAuto, "auto": StrategyAuto, "JSON": StrategyJSON, " text ": StrategyText} {
		got, err := ParseStrategy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseStrategy("xml")
	assert.Error(t, err)
}

func TestParseErrorUnwrap(t *testing.T) {
	err := error(versionError(KindVersionUnsupported, ErrVersionUnsupported, "smartctl 5.39 is older than 5.43"))
	assert.True(t, errors.Is(err, ErrVersionUnsupported))
	assert.Equal(t, "incompatible smartctl version: smartctl 5.39 is older than 5.43", err.Error())

	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, KindVersionUnsupported, pe.Kind)
}
