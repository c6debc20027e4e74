// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilitiesHDD(t *testing.T) {
	p := NewTextParser()
	require.NoError(t, p.ParseFull(readFixture(t, "ata_hdd_x.txt"), DiskTypeHDD))

	flags := Capabilities(p.Properties())
	for _, f := range []CapabilityFlags{
		CapExecOfflineImmediate, CapAutoOfflineToggle, CapOfflineSurfaceScan, CapSelfTest,
		CapConveyanceSelfTest, CapSelectiveSelfTest, CapAttributeAutosave, CapErrorLogging,
		CapGPLogging, CapSCTStatus, CapSCTERC,
	} {
		assert.True(t, flags.Has(f), f.String())
	}
	assert.False(t, flags.Has(CapSelfTestInProgress))
}

func TestCapabilitiesSSD(t *testing.T) {
	p := NewTextParser()
	require.NoError(t, p.ParseFull(readFixture(t, "ata_ssd_a.txt"), DiskTypeSSD))

	flags := Capabilities(p.Properties())
	assert.Equal(t, []string{
		"exec_offline_immediate",
		"auto_offline_toggle",
		"self_test",
		"selective_self_test",
		"attribute_autosave",
		"error_logging",
		"gp_logging",
		"sct_status",
		"sct_erc",
		"self_test_in_progress",
	}, flags.Names())

	status, ok := FindProperty(p.Properties(), "ata_smart_data/self_test/status/_group")
	require.True(t, ok)
	assert.Equal(t, CapSelfTestInProgress, status.Value.(Capability).Derived)
}

func TestResolveCapabilitiesIsInPlace(t *testing.T) {
	props := []Property{
		{Key: "model_name", Section: SectionInfo, Value: StringValue("X")},
		{
			Key:        "ata_smart_data/capabilities/_group",
			Section:    SectionData,
			SubSection: SubSectionCapabilities,
			Value:      Capability{FlagValue: 0x11, IsFlag: true},
		},
		{
			Key:        "ata_smart_data/capabilities/error_logging_supported/_group",
			Section:    SectionData,
			SubSection: SubSectionCapabilities,
			Value:      Capability{Values: []string{"No Error logging supported.", "General Purpose Logging supported."}},
		},
		{
			Key:        "ata_smart_data/capabilities/_group",
			Section:    SectionData,
			SubSection: SubSectionAttributes,
			Value:      Capability{FlagValue: 0xff, IsFlag: true},
		},
	}
	resolveCapabilities(props)

	require.Len(t, props, 4)
	assert.Equal(t, CapExecOfflineImmediate|CapSelfTest, props[1].Value.(Capability).Derived)
	assert.Equal(t, CapGPLogging, props[2].Value.(Capability).Derived)
	assert.Zero(t, props[3].Value.(Capability).Derived)
}

func TestCapabilityFlagsText(t *testing.T) {
	f := CapSelfTest | CapSCTERC
	assert.Equal(t, "self_test,sct_erc", f.String())
	b, err := f.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "self_test,sct_erc", string(b))
	assert.Empty(t, CapabilityFlags(0).String())
}
