// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cobaltcore-dev/smartscope/pkg/smartctl"
)

const (
	attrReallocatedSectors = 5
	attrPowerOnHours       = 9
	attrAirflowTemperature = 190
	attrTemperature        = 194
	attrPendingSectors     = 197
	attrUDMACRCErrors      = 199
)

// Normalized values of these attributes count down from 100 as the flash
// wears out.
var wearAttributes = []int{177, 231, 233, 202, 169}

var attributeUnits = map[int]string{
	5:   "sectors",
	9:   "hours",
	12:  "cycles",
	190: "celsius",
	194: "celsius",
	196: "events",
	197: "sectors",
	198: "sectors",
	199: "errors",
}

// DeviceName derives the device name from a report file name, e.g.
// "/var/lib/reports/sda.txt" becomes "sda".
func DeviceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// BuildSummary condenses a parse result into a DiskSummary. A failed result
// still yields the values found before the failure.
func BuildSummary(res *smartctl.Result, reportFile string, cfg DiskHealthReportConfig) DiskSummary {
	props := res.Properties
	summary := DiskSummary{
		NodeName:        cfg.NodeName,
		InstanceID:      cfg.InstanceID,
		Device:          DeviceName(reportFile),
		ReportFile:      reportFile,
		SmartctlVersion: res.Version.Token,
		Strategy:        res.Strategy.String(),
		ErrorCounts:     map[string]int64{},
		Attributes:      map[string]SmartAttribute{},
		PropertyCount:   len(props),
		ParseError:      res.ErrorMessage(),
	}

	summary.DeviceInfo = buildDeviceInfo(props, res.DiskType)
	summary.CapacityGB = summary.DeviceInfo.Capacity

	if p, ok := smartctl.FindProperty(props, "smart_status/passed"); ok {
		if b, ok := p.Value.(smartctl.BoolValue); ok {
			passed := bool(b)
			summary.HealthStatus = &passed
		}
	}

	attrs := map[int]smartctl.Attribute{}
	for _, p := range smartctl.FilterProperties(props, smartctl.SubSectionAttributes) {
		a, ok := p.Value.(smartctl.Attribute)
		if !ok {
			continue
		}
		attrs[a.ID] = a
		summary.Attributes[attributeKey(a)] = SmartAttribute{
			ID:          a.ID,
			Description: p.Description,
			Unit:        attributeUnits[a.ID],
			Threshold:   optInt(a.Threshold),
			Value:       optInt(a.Value),
			Worst:       optInt(a.Worst),
			RawValue:    rawInt(a),
			Failed:      failedText(a.WhenFailed),
		}
	}

	summary.TemperatureCelsius = temperature(props, attrs)
	summary.ReallocatedSectors = attributeRaw(attrs, attrReallocatedSectors)
	summary.PendingSectors = attributeRaw(attrs, attrPendingSectors)
	summary.PowerOnHours = attributeRaw(attrs, attrPowerOnHours)
	if summary.PowerOnHours == nil {
		summary.PowerOnHours = statistic(props, "stat_power-on_hours")
	}
	if summary.DeviceInfo.Media != "hdd" {
		summary.SSDLifeUsed = lifeUsed(attrs)
	}

	if crc := attributeRaw(attrs, attrUDMACRCErrors); crc != nil {
		summary.ErrorCounts["udma_crc_errors"] = *crc
	}
	if n, ok := errorLogCount(props); ok {
		summary.ErrorCounts["ata_errors"] = n
	}
	summary.ErrorCounts["failed_self_tests"] = failedSelfTests(props)

	summary.Capabilities = smartctl.Capabilities(props).Names()
	return summary
}

func buildDeviceInfo(props []smartctl.Property, diskType smartctl.DiskType) *DeviceInfo {
	info := &DeviceInfo{
		ModelFamily:     stringProp(props, "model_family"),
		DeviceModel:     stringProp(props, "model_name"),
		SerialNumber:    stringProp(props, "serial_number"),
		FirmwareVersion: stringProp(props, "firmware_version"),
		WWN:             stringProp(props, "wwn/_merged"),
		FormFactor:      stringProp(props, "form_factor/name"),
		Media:           "unknown",
	}
	info.Vendor = FindVendor(info.DeviceModel, info.ModelFamily)

	if p, ok := smartctl.FindProperty(props, "user_capacity/bytes"); ok {
		if v, ok := p.Value.(smartctl.IntegerValue); ok {
			info.Capacity = float64(v.Value) / 1e9
		}
	}

	switch diskType {
	case smartctl.DiskTypeHDD:
		info.Media = "hdd"
	case smartctl.DiskTypeSSD:
		info.Media = "ssd"
	}
	if p, ok := smartctl.FindProperty(props, "rotation_rate"); ok {
		if v, ok := p.Value.(smartctl.IntegerValue); ok {
			info.RPM = v.Value
			if v.Value == 0 {
				info.Media = "ssd"
			} else {
				info.Media = "hdd"
			}
		}
	}
	return info
}

// attributeKey turns "Reallocated_Sector_Ct" into "reallocated_sector_ct".
// Unnamed attributes are keyed by ID.
func attributeKey(a smartctl.Attribute) string {
	name := strings.ToLower(strings.ReplaceAll(a.Name, "-", "_"))
	if name == "" || name == "unknown_attribute" {
		return "attribute_" + strconv.Itoa(a.ID)
	}
	return name
}

func temperature(props []smartctl.Property, attrs map[int]smartctl.Attribute) *int64 {
	if p, ok := smartctl.FindProperty(props, "ata_sct_status/temperature/current"); ok {
		if v, ok := p.Value.(smartctl.IntegerValue); ok {
			t := v.Value
			return &t
		}
	}
	if t := attributeRaw(attrs, attrTemperature); t != nil {
		return t
	}
	return attributeRaw(attrs, attrAirflowTemperature)
}

func lifeUsed(attrs map[int]smartctl.Attribute) *int64 {
	for _, id := range wearAttributes {
		a, ok := attrs[id]
		if !ok || a.Value == nil {
			continue
		}
		used := int64(100 - *a.Value)
		if used < 0 {
			used = 0
		}
		return &used
	}
	return nil
}

// errorLogCount returns the largest error count of the summary and extended
// error logs.
func errorLogCount(props []smartctl.Property) (int64, bool) {
	var count int64
	found := false
	for _, p := range smartctl.FilterProperties(props, smartctl.SubSectionErrorLog) {
		if !strings.HasSuffix(p.Key, "/count") {
			continue
		}
		if v, ok := p.Value.(smartctl.IntegerValue); ok {
			found = true
			if v.Value > count {
				count = v.Value
			}
		}
	}
	return count, found
}

func failedSelfTests(props []smartctl.Property) int64 {
	var n int64
	for _, p := range smartctl.FilterProperties(props, smartctl.SubSectionSelftestLog) {
		if e, ok := p.Value.(smartctl.SelftestEntry); ok && e.Status == smartctl.SelftestStatusFailed {
			n++
		}
	}
	return n
}

func statistic(props []smartctl.Property, key string) *int64 {
	p, ok := smartctl.FindProperty(props, key)
	if !ok {
		return nil
	}
	if s, ok := p.Value.(smartctl.Statistic); ok && s.ValueInt != nil {
		v := *s.ValueInt
		return &v
	}
	return nil
}

func attributeRaw(attrs map[int]smartctl.Attribute, id int) *int64 {
	a, ok := attrs[id]
	if !ok || a.RawInt == nil {
		return nil
	}
	v := *a.RawInt
	return &v
}

func stringProp(props []smartctl.Property, key string) string {
	p, ok := smartctl.FindProperty(props, key)
	if !ok {
		return ""
	}
	return p.FormatValue()
}

func optInt(v *int) int64 {
	if v == nil {
		return -1
	}
	return int64(*v)
}

func rawInt(a smartctl.Attribute) int64 {
	if a.RawInt == nil {
		return -1
	}
	return *a.RawInt
}

func failedText(f smartctl.FailTime) string {
	if f == smartctl.FailTimeNone || f == smartctl.FailTimeUnknown {
		return ""
	}
	return string(f)
}
