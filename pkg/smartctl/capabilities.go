// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import "strings"

// CapabilityFlags are the internally significant bits derived from the
// "General SMART Values" entries.
type CapabilityFlags uint32

const (
	CapExecOfflineImmediate CapabilityFlags = 1 << iota
	CapAutoOfflineToggle
	CapOfflineSurfaceScan
	CapSelfTest
	CapConveyanceSelfTest
	CapSelectiveSelfTest
	CapAttributeAutosave
	CapErrorLogging
	CapGPLogging
	CapSCTStatus
	CapSCTERC
	CapSelfTestInProgress
)

var capabilityFlagNames = []struct {
	flag CapabilityFlags
	name string
}{
	{CapExecOfflineImmediate, "exec_offline_immediate"},
	{CapAutoOfflineToggle, "auto_offline_toggle"},
	{CapOfflineSurfaceScan, "offline_surface_scan"},
	{CapSelfTest, "self_test"},
	{CapConveyanceSelfTest, "conveyance_self_test"},
	{CapSelectiveSelfTest, "selective_self_test"},
	{CapAttributeAutosave, "attribute_autosave"},
	{CapErrorLogging, "error_logging"},
	{CapGPLogging, "gp_logging"},
	{CapSCTStatus, "sct_status"},
	{CapSCTERC, "sct_erc"},
	{CapSelfTestInProgress, "self_test_in_progress"},
}

func (f CapabilityFlags) Has(flag CapabilityFlags) bool {
	return f&flag == flag
}

// Names lists the set flags in declaration order.
func (f CapabilityFlags) Names() []string {
	var names []string
	for _, n := range capabilityFlagNames {
		if f.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

func (f CapabilityFlags) String() string {
	return strings.Join(f.Names(), ",")
}

func (f CapabilityFlags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Bits of the offline data collection capabilities byte (ATA8-ACS).
const (
	offlineCapExecImmediate = 0x01
	offlineCapAutoToggle    = 0x02
	offlineCapSurfaceScan   = 0x08
	offlineCapSelfTest      = 0x10
	offlineCapConveyance    = 0x20
	offlineCapSelective     = 0x40

	smartCapAutosaveTimer = 0x0002
	errorLogCapSupported  = 0x01

	sctCapStatus = 0x0001
	sctCapERC    = 0x0008
)

// capabilityRule derives flags from one capability entry, from its bitmask
// and from the sentences smartctl decoded for it.
type capabilityRule struct {
	key   string
	flags func(c Capability) CapabilityFlags
}

var capabilityRules = []capabilityRule{
	{"ata_smart_data/capabilities/_group", func(c Capability) CapabilityFlags {
		var f CapabilityFlags
		if c.IsFlag {
			f |= bitFlag(c.FlagValue, offlineCapExecImmediate, CapExecOfflineImmediate)
			f |= bitFlag(c.FlagValue, offlineCapAutoToggle, CapAutoOfflineToggle)
			f |= bitFlag(c.FlagValue, offlineCapSurfaceScan, CapOfflineSurfaceScan)
			f |= bitFlag(c.FlagValue, offlineCapSelfTest, CapSelfTest)
			f |= bitFlag(c.FlagValue, offlineCapConveyance, CapConveyanceSelfTest)
			f |= bitFlag(c.FlagValue, offlineCapSelective, CapSelectiveSelfTest)
		}
		f |= sentenceFlag(c, "SMART execute Offline immediate", CapExecOfflineImmediate)
		f |= sentenceFlag(c, "Auto Offline data collection on/off support", CapAutoOfflineToggle)
		f |= sentenceFlag(c, "Offline surface scan supported", CapOfflineSurfaceScan)
		f |= sentenceFlag(c, "Self-test supported", CapSelfTest)
		f |= sentenceFlag(c, "Conveyance Self-test supported", CapConveyanceSelfTest)
		f |= sentenceFlag(c, "Selective Self-test supported", CapSelectiveSelfTest)
		return f
	}},
	{"ata_smart_data/capabilities/values/_group", func(c Capability) CapabilityFlags {
		f := sentenceFlag(c, "Supports SMART auto save timer", CapAttributeAutosave)
		if c.IsFlag {
			f |= bitFlag(c.FlagValue, smartCapAutosaveTimer, CapAttributeAutosave)
		}
		return f
	}},
	{"ata_smart_data/capabilities/error_logging_supported/_group", func(c Capability) CapabilityFlags {
		f := sentenceFlag(c, "Error logging supported", CapErrorLogging)
		if c.IsFlag {
			f |= bitFlag(c.FlagValue, errorLogCapSupported, CapErrorLogging)
		}
		return f | sentenceFlag(c, "General Purpose Logging supported", CapGPLogging)
	}},
	{"ata_sct_capabilities/value", func(c Capability) CapabilityFlags {
		f := sentenceFlag(c, "SCT Status supported", CapSCTStatus) |
			sentenceFlag(c, "SCT Error Recovery Control supported", CapSCTERC)
		if c.IsFlag {
			f |= bitFlag(c.FlagValue, sctCapStatus, CapSCTStatus)
			f |= bitFlag(c.FlagValue, sctCapERC, CapSCTERC)
		}
		return f
	}},
	{"ata_smart_data/self_test/status/_group", func(c Capability) CapabilityFlags {
		// Status nibble 0xf means a test is running.
		if c.FlagValue>>4 == 0x0f {
			return CapSelfTestInProgress
		}
		return 0
	}},
}

func bitFlag(v, bit int64, flag CapabilityFlags) CapabilityFlags {
	if v&bit != 0 {
		return flag
	}
	return 0
}

// sentenceFlag matches a decoded sentence exactly, ignoring case and the
// trailing period, so "No Selective Self-test supported." does not match.
func sentenceFlag(c Capability, sentence string, flag CapabilityFlags) CapabilityFlags {
	for _, v := range c.Values {
		if strings.EqualFold(strings.TrimSuffix(strings.TrimSpace(v), "."), sentence) {
			return flag
		}
	}
	return 0
}

// resolveCapabilities annotates capability properties in place with their
// derived flags. It never adds or removes properties.
func resolveCapabilities(props []Property) {
	for i := range props {
		c, ok := props[i].Value.(Capability)
		if !ok || props[i].SubSection != SubSectionCapabilities {
			continue
		}
		for _, r := range capabilityRules {
			if r.key == props[i].Key {
				c.Derived = r.flags(c)
				props[i].Value = c
				break
			}
		}
	}
}

// Capabilities merges the derived flags of all capability properties.
func Capabilities(props []Property) CapabilityFlags {
	var f CapabilityFlags
	for _, p := range props {
		if c, ok := p.Value.(Capability); ok {
			f |= c.Derived
		}
	}
	return f
}
