// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONParserHDD(t *testing.T) {
	p := NewJSONParser()
	require.NoError(t, p.ParseFull(readFixture(t, "ata_hdd_x.json"), DiskTypeHDD))
	props := p.Properties()

	v, ok := FindProperty(props, "smartctl/version/_merged")
	require.True(t, ok)
	assert.Equal(t, StringValue("7.3"), v.Value)
	full, _ := FindProperty(props, "smartctl/version/_merged_full")
	assert.Equal(t, StringValue("7.3 r5338 [x86_64-linux-5.15.0-52-generic] (local build)"), full.Value)

	wwn, _ := FindProperty(props, "wwn/_merged")
	assert.Equal(t, StringValue("5 000c50 0a1b2c3d4"), wwn.Value)

	health, _ := FindProperty(props, "smart_status/passed")
	assert.Equal(t, BoolValue(true), health.Value)
	assert.Equal(t, SubSectionHealth, health.SubSection)

	attrs := FilterProperties(props, SubSectionAttributes)
	require.Len(t, attrs, 6)
	pending := attrs[5].Value.(Attribute)
	assert.Equal(t, 197, pending.ID)
	assert.Equal(t, FailTimePast, pending.WhenFailed)
	assert.Equal(t, UpdateTypeAlways, pending.Updated)
	assert.Equal(t, AttributeTypeOldAge, pending.Type)
	temp := attrs[4].Value.(Attribute)
	assert.Equal(t, "34 (0 17 0 0 0)", temp.RawValue)

	errLog := FilterProperties(props, SubSectionErrorLog)
	require.Len(t, errLog, 3)
	assert.Equal(t, []string{"ICRC", "ABRT"}, errLog[2].Value.(ErrorBlock).ReportedTypes)

	selftests := FilterProperties(props, SubSectionSelftestLog)
	require.Len(t, selftests, 2)
	failed := selftests[1].Value.(SelftestEntry)
	assert.Equal(t, SelftestStatusFailed, failed.Status)
	assert.Equal(t, 90, failed.RemainingPercent)
	assert.Equal(t, "1715004", failed.LBAOfFirstError)

	dir, _ := FindProperty(props, "ata_log_directory/0x09")
	assert.Equal(t, DirectoryEntry{Address: "0x09", Access: "SL", ReadWrite: "R/W", Size: 1, Description: "Selective self-test log"}, dir.Value)

	flags := Capabilities(props)
	assert.True(t, flags.Has(CapConveyanceSelfTest))
	assert.True(t, flags.Has(CapSCTERC))
	assert.True(t, flags.Has(CapAttributeAutosave))
	assert.False(t, flags.Has(CapSelfTestInProgress))

	assert.Contains(t, p.DataSectionInfo(), "\"model_name\"")
	assert.NotContains(t, p.DataSectionInfo(), "\"ata_smart_attributes\"")
	assert.Contains(t, p.DataSectionData(), "\"ata_smart_attributes\"")
}

// The JSON and text reports of the same drive must agree on keys.
func TestJSONKeysMatchText(t *testing.T) {
	text := NewTextParser()
	require.NoError(t, text.ParseFull(readFixture(t, "ata_hdd_x.txt"), DiskTypeHDD))
	textKeys := map[string]bool{}
	for _, p := range text.Properties() {
		textKeys[p.Key] = true
	}

	js := NewJSONParser()
	require.NoError(t, js.ParseFull(readFixture(t, "ata_hdd_x.json"), DiskTypeHDD))
	for _, p := range js.Properties() {
		assert.True(t, textKeys[p.Key], "key %s missing from text report", p.Key)
	}

	for _, key := range []string{
		"smart_status/passed",
		"ata_smart_data/capabilities/_group",
		"ata_sct_capabilities/value",
		"ata_smart_attributes/194",
		"ata_sct_erc/write",
	} {
		a, _ := FindProperty(text.Properties(), key)
		b, _ := FindProperty(js.Properties(), key)
		assert.Equal(t, a.SubSection, b.SubSection, key)
		assert.Equal(t, a.Description, b.Description, key)
	}
	assert.Equal(t, Capabilities(text.Properties()), Capabilities(js.Properties()))
}

func TestJSONParserInvalid(t *testing.T) {
	p := NewJSONParser()
	err := p.ParseFull("{not json", DiskTypeAny)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
	assert.Equal(t, err.Error(), p.ErrorMsg())
	assert.Empty(t, p.Properties())
}

func TestJSONParserNonATA(t *testing.T) {
	report := `{
  "smartctl": {"version": [7, 3]},
  "device": {"name": "/dev/nvme0", "type": "nvme", "protocol": "NVMe"},
  "model_name": "Samsung SSD 980 PRO 1TB",
  "serial_number": "S5GXNF0R123456",
  "smart_status": {"passed": true}
}`
	p := NewJSONParser()
	require.NoError(t, p.ParseFull(report, DiskTypeAny))
	for _, prop := range p.Properties() {
		assert.Equal(t, SectionInfo, prop.Section, prop.Key)
	}
	_, ok := FindProperty(p.Properties(), "model_name")
	assert.True(t, ok)
}

func TestSplitJSONSections(t *testing.T) {
	doc := map[string]json.RawMessage{
		"smartctl":             json.RawMessage(`{}`),
		"serial_number":        json.RawMessage(`"1"`),
		"ata_smart_attributes": json.RawMessage(`{}`),
		"smart_status":         json.RawMessage(`{}`),
	}
	info, data := splitJSONSections(doc)
	assert.Equal(t, []string{"serial_number", "smartctl"}, info)
	assert.Equal(t, []string{"ata_smart_attributes", "smart_status"}, data)
}
