// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobaltcore-dev/smartscope/pkg/smartctl"
)

const fixtureDir = "../smartctl/testdata"

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"-v", "error"}, args...))
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestReadReport(t *testing.T) {
	report, err := readReport("-", strings.NewReader("smartctl 7.3\n"))
	require.NoError(t, err)
	assert.Equal(t, "smartctl 7.3\n", report)

	_, err = readReport(filepath.Join(t.TempDir(), "absent.txt"), nil)
	assert.ErrorContains(t, err, "reading report")
}

func TestWriteResultTable(t *testing.T) {
	res := smartctl.Parse("smartctl 7.3\nDevice Model: ST4000NM0035\n", smartctl.DiskTypeAny, smartctl.StrategyText)
	var out bytes.Buffer
	require.NoError(t, writeResult(&out, res, "table"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "# smartctl 7.3 (text parser)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "SECTION"))
	assert.Contains(t, lines[4], "model_name")
	assert.Contains(t, lines[4], "ST4000NM0035")
}

func TestWriteResultUnknownFormat(t *testing.T) {
	res := smartctl.Parse("smartctl 7.3\n", smartctl.DiskTypeAny, smartctl.StrategyText)
	assert.EqualError(t, writeResult(&bytes.Buffer{}, res, "xml"), `unknown output format "xml"`)
}

func TestParseCommandJSON(t *testing.T) {
	out, err := runCommand(t, "", "parse", "--output", "json", filepath.Join(fixtureDir, "ata_hdd_x.txt"))
	require.NoError(t, err)

	var doc struct {
		Version      smartctl.Version `json:"version"`
		Strategy     string           `json:"strategy"`
		Capabilities string           `json:"capabilities"`
		Properties   []struct {
			Key        string `json:"key"`
			SubSection string `json:"subsection"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "7.3", doc.Version.Token)
	assert.Equal(t, "text", doc.Strategy)
	assert.Contains(t, doc.Capabilities, "sct_erc")
	assert.NotEmpty(t, doc.Properties)
}

func TestParseCommandStdinFailure(t *testing.T) {
	out, err := runCommand(t, "Model: ABC\n", "parse", "--output", "table", "-")
	require.Error(t, err)
	assert.ErrorIs(t, err, smartctl.ErrVersionNotFound)
	assert.Contains(t, out, "# error:")
	assert.NotContains(t, out, "Usage:")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "", "version", filepath.Join(fixtureDir, "ata_hdd_x.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "version: 7.3\n")
	assert.Contains(t, out, "json supported: true\n")
	assert.Contains(t, out, "preferred strategy: json\n")

	out, err = runCommand(t, "smartctl 5.41 2011-06-09 r3365\n", "version", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "text supported: false\n")
	assert.Contains(t, out, "preferred strategy: none\n")
}

func TestVersionCommandMatchesParse(t *testing.T) {
	path := filepath.Join(fixtureDir, "ata_hdd_x.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	res := smartctl.Parse(string(data), smartctl.DiskTypeAny, smartctl.StrategyAuto)
	require.True(t, res.OK(), res.ErrorMessage())

	out, err := runCommand(t, "", "version", path)
	require.NoError(t, err)
	assert.Contains(t, out, "banner: "+res.Version.Full+"\n")
}

func TestParseDirCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ata_hdd_x.txt", "ata_ssd_a.txt", "ata_hdd_x.json"} {
		data, err := os.ReadFile(filepath.Join(fixtureDir, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.txt"), []byte("Model: ABC\n"), 0o644))

	out, err := runCommand(t, "", "parse-dir", "--progress=false", dir)
	require.Error(t, err)
	assert.EqualError(t, err, "1 of 4 reports could not be parsed")
	assert.NotContains(t, out, "Usage:")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[1], "ata_hdd_x.json"))
	assert.Contains(t, lines[1], "json")
	assert.True(t, strings.HasPrefix(lines[4], "broken.txt"))
	assert.Contains(t, lines[4], "cannot get smartctl version information")

	out, err = runCommand(t, "", "parse-dir", "--progress=false", "--pattern", "*.txt", dir)
	require.Error(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}

func TestListReportsBadPattern(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644))
	_, err := listReports(dir, "[a")
	assert.ErrorContains(t, err, "invalid pattern")
}
