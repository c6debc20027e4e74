// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"fmt"
	"strings"
)

// DiskType is the declared or detected kind of ATA device. It only affects
// description lookup for attributes whose meaning differs between HDDs and SSDs.
type DiskType int

const (
	DiskTypeAny DiskType = iota
	DiskTypeHDD
	DiskTypeSSD
)

func (d DiskType) String() string {
	switch d {
	case DiskTypeHDD:
		return "hdd"
	case DiskTypeSSD:
		return "ssd"
	default:
		return "any"
	}
}

// ParseDiskType accepts "any", "hdd", "ssd" (case-insensitive, empty means any).
func ParseDiskType(s string) (DiskType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "generic", "ata":
		return DiskTypeAny, nil
	case "hdd", "ata-hdd":
		return DiskTypeHDD, nil
	case "ssd", "ata-ssd":
		return DiskTypeSSD, nil
	}
	return DiskTypeAny, fmt.Errorf("unknown disk type %q", s)
}

// Section is the top-level provenance of a property.
type Section int

const (
	SectionUnknown Section = iota
	SectionInfo
	SectionData
)

func (s Section) String() string {
	switch s {
	case SectionInfo:
		return "info"
	case SectionData:
		return "data"
	default:
		return "unknown"
	}
}

func (s Section) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SubSection is the closed set of data subsections. Every value except
// SubSectionNone has exactly one extractor in the text and JSON parsers.
type SubSection int

const (
	SubSectionNone SubSection = iota
	SubSectionHealth
	SubSectionCapabilities
	SubSectionAttributes
	SubSectionDirectoryLog
	SubSectionErrorLog
	SubSectionSelftestLog
	SubSectionSelectiveSelftestLog
	SubSectionTemperatureLog
	SubSectionERCLog
	SubSectionDevstat
	SubSectionPhyLog
)

var subSectionNames = map[SubSection]string{
	SubSectionNone:                 "",
	SubSectionHealth:               "health",
	SubSectionCapabilities:         "capabilities",
	SubSectionAttributes:           "attributes",
	SubSectionDirectoryLog:         "directory_log",
	SubSectionErrorLog:             "error_log",
	SubSectionSelftestLog:          "selftest_log",
	SubSectionSelectiveSelftestLog: "selective_selftest_log",
	SubSectionTemperatureLog:       "temperature_log",
	SubSectionERCLog:               "erc_log",
	SubSectionDevstat:              "devstat",
	SubSectionPhyLog:               "phy_log",
}

func (s SubSection) String() string {
	return subSectionNames[s]
}

func (s SubSection) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Property is one parsed health datum. Properties are appended in document
// order and keys are not unique.
type Property struct {
	Key         string     `json:"key"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Section     Section    `json:"section"`
	SubSection  SubSection `json:"subsection,omitempty"`
	Reported    string     `json:"reported,omitempty"`
	Value       Value      `json:"value"`
}

// FormatValue renders the value for display.
func (p Property) FormatValue() string {
	if p.Value == nil {
		return p.Reported
	}
	return p.Value.String()
}

func (p Property) String() string {
	return fmt.Sprintf("%s: %s", p.Name, p.FormatValue())
}

// FindProperty returns the first property with the given key.
func FindProperty(props []Property, key string) (Property, bool) {
	for _, p := range props {
		if p.Key == key {
			return p, true
		}
	}
	return Property{}, false
}

// FilterProperties returns the properties tagged with the given subsection.
func FilterProperties(props []Property, sub SubSection) []Property {
	var out []Property
	for _, p := range props {
		if p.SubSection == sub {
			out = append(out, p)
		}
	}
	return out
}

// collector accumulates the properties of one parse in document order.
type collector struct {
	diskType DiskType
	sub      SubSection
	props    []Property
}

// add appends a property, filling the description from the reference tables.
func (c *collector) add(prop Property) {
	if prop.Description == "" {
		prop.Description = describe(prop.Key, c.diskType)
	}
	c.props = append(c.props, prop)
}

// addData appends a data-section property of the current subsection.
func (c *collector) addData(key, name, reported string, v Value) {
	c.add(Property{
		Key:        key,
		Name:       name,
		Section:    SectionData,
		SubSection: c.sub,
		Reported:   reported,
		Value:      v,
	})
}

func (c *collector) addInfo(key, name, reported string, v Value) {
	c.add(Property{
		Key:      key,
		Name:     name,
		Section:  SectionInfo,
		Reported: reported,
		Value:    v,
	})
}

func (c *collector) addVersion(v Version) {
	c.addInfo("smartctl/version/_merged", "Smartctl Version", v.Token, StringValue(v.Token))
	c.addInfo("smartctl/version/_merged_full", "Smartctl Version", v.Full, StringValue(v.Full))
}

// Properties returns the properties parsed so far in document order.
func (c *collector) Properties() []Property {
	return c.props
}
