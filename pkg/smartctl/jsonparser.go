// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// jsonDataKeys are the top-level keys of the JSON form that belong to the
// data section; every other key is info.
var jsonDataKeys = map[string]bool{
	"smart_status":                      true,
	"ata_smart_data":                    true,
	"ata_sct_capabilities":              true,
	"ata_smart_attributes":              true,
	"ata_log_directory":                 true,
	"ata_smart_error_log":               true,
	"ata_smart_self_test_log":           true,
	"ata_smart_selective_self_test_log": true,
	"ata_sct_status":                    true,
	"ata_sct_temperature_history":       true,
	"ata_sct_erc":                       true,
	"ata_device_statistics":             true,
	"sata_phy_event_counters":           true,
}

// splitJSONSections groups the top-level keys into info and data keys, each
// sorted.
func splitJSONSections(doc map[string]json.RawMessage) (info, data []string) {
	for k := range doc {
		if jsonDataKeys[k] {
			data = append(data, k)
		} else {
			info = append(info, k)
		}
	}
	sort.Strings(info)
	sort.Strings(data)
	return info, data
}

// JSONParser parses "smartctl --json -x" output of (S)ATA devices into the
// same properties as TextParser.
type JSONParser struct {
	collector
	full string
	info string
	data string
	err  error
}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

// ParseFull decodes a JSON report. All state from a previous call is discarded.
func (p *JSONParser) ParseFull(full string, diskType DiskType) error {
	*p = JSONParser{collector: collector{diskType: diskType}, full: full}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(full), &doc); err != nil {
		p.err = structureError(SubSectionNone, "", "invalid JSON: %v", err)
		return p.err
	}
	infoKeys, dataKeys := splitJSONSections(doc)
	p.info = snapshot(doc, infoKeys)
	p.data = snapshot(doc, dataKeys)

	var r jsonReport
	if err := json.Unmarshal([]byte(full), &r); err != nil {
		p.err = structureError(SubSectionNone, "", "unexpected JSON layout: %v", err)
		return p.err
	}

	p.addJSONInfo(&r)
	if proto := strings.ToUpper(r.Device.Protocol); proto != "" && proto != "ATA" {
		log.Debug().Str("protocol", r.Device.Protocol).Msg("skipping data of non-ATA device")
		return nil
	}
	p.addJSONData(&r)
	resolveCapabilities(p.props)
	return nil
}

func snapshot(doc map[string]json.RawMessage, keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	sub := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		sub[k] = doc[k]
	}
	b, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

func jsonVersion(s jsonSmartctl) (Version, error) {
	v, err := VersionFromJSON(s.Version)
	if err != nil {
		return v, err
	}
	full := v.Token
	if s.SVNRevision != "" {
		full += " r" + s.SVNRevision
	}
	if s.PlatformInfo != "" {
		full += " [" + s.PlatformInfo + "]"
	}
	if s.BuildInfo != "" {
		full += " " + s.BuildInfo
	}
	v.Full = full
	return v, nil
}

func (p *JSONParser) addJSONInfo(r *jsonReport) {
	p.sub = SubSectionNone
	if v, err := jsonVersion(r.Smartctl); err == nil {
		p.addVersion(v)
	}
	str := func(key, name, v string) {
		if v != "" {
			p.addInfo(key, name, v, StringValue(v))
		}
	}
	str("model_family", "Model Family", r.ModelFamily)
	str("model_name", "Device Model", r.ModelName)
	str("serial_number", "Serial Number", r.SerialNumber)
	if r.WWN != nil {
		str("wwn/_merged", "LU WWN Device Id", fmt.Sprintf("%x %06x %09x", r.WWN.NAA, r.WWN.OUI, r.WWN.ID))
	}
	str("firmware_version", "Firmware Version", r.FirmwareVersion)
	if r.UserCapacity != nil {
		v := IntegerValue{Value: r.UserCapacity.Bytes, Unit: "bytes"}
		p.addInfo("user_capacity/bytes", "User Capacity", v.String(), v)
	}
	if r.LogicalBlockSize > 0 {
		v := IntegerValue{Value: r.LogicalBlockSize, Unit: "bytes"}
		p.addInfo("logical_block_size", "Sector Size", v.String(), v)
	}
	if r.RotationRate != nil {
		v := IntegerValue{Value: *r.RotationRate, Unit: "rpm"}
		p.addInfo("rotation_rate", "Rotation Rate", v.String(), v)
	}
	if r.FormFactor != nil {
		str("form_factor/name", "Form Factor", r.FormFactor.Name)
	}
	if r.InSmartctlDatabase != nil {
		v := BoolValue(*r.InSmartctlDatabase)
		p.addInfo("in_smartctl_database", "Device is", v.String(), v)
	}
	if r.ATAVersion != nil {
		str("ata_version/string", "ATA Version is", r.ATAVersion.String)
	}
	if r.SATAVersion != nil {
		str("sata_version/string", "SATA Version is", r.SATAVersion.String)
	}
	if r.LocalTime != nil {
		str("local_time/asctime", "Local Time is", r.LocalTime.Asctime)
	}
	if r.SmartSupport != nil {
		a, e := BoolValue(r.SmartSupport.Available), BoolValue(r.SmartSupport.Enabled)
		p.addInfo("smart_support/available", "SMART support is", a.String(), a)
		p.addInfo("smart_support/enabled", "SMART support is", e.String(), e)
	}
}

func (p *JSONParser) addJSONData(r *jsonReport) {
	if r.SmartStatus != nil {
		p.sub = SubSectionHealth
		v := BoolValue(r.SmartStatus.Passed)
		reported := "FAILED!"
		if r.SmartStatus.Passed {
			reported = "PASSED"
		}
		p.addData("smart_status/passed", "SMART overall-health self-assessment test result", reported, v)
	}
	if r.ATASmartData != nil || r.ATASCTCapabilities != nil {
		p.sub = SubSectionCapabilities
		p.addJSONCapabilities(r.ATASmartData, r.ATASCTCapabilities)
	}
	if a := r.ATASmartAttributes; a != nil {
		p.sub = SubSectionAttributes
		rev := IntegerValue{Value: a.Revision}
		p.addData("ata_smart_attributes/revision", "SMART Attributes Data Structure revision number", rev.String(), rev)
		for _, row := range a.Table {
			attr := jsonAttribute(row)
			p.addData(attributeKeyPrefix+strconv.Itoa(attr.ID), attr.Name, attr.RawValue, attr)
		}
	}
	if d := r.ATALogDirectory; d != nil {
		p.sub = SubSectionDirectoryLog
		for _, e := range d.Table {
			entry := jsonDirectoryEntry(e)
			p.addData("ata_log_directory/"+entry.Address, entry.Description, entry.String(), entry)
		}
	}
	if l := r.ATASmartErrorLog; l != nil {
		p.sub = SubSectionErrorLog
		p.addJSONErrorTable("summary", l.Summary)
		p.addJSONErrorTable("extended", l.Extended)
	}
	if l := r.ATASelfTestLog; l != nil {
		p.sub = SubSectionSelftestLog
		p.addJSONSelftestTable("standard", l.Standard)
		p.addJSONSelftestTable("extended", l.Extended)
	}
	if l := r.ATASelectiveLog; l != nil {
		p.sub = SubSectionSelectiveSelftestLog
		for i, row := range l.Table {
			span := SelectiveSpan{Span: i + 1, MinLBA: row.LBAMin, MaxLBA: row.LBAMax, Status: row.Status.String}
			n := strconv.Itoa(span.Span)
			p.addData("ata_smart_selective_self_test_log/table/"+n, "Span "+n, span.String(), span)
		}
	}
	if s := r.ATASCTStatus; s != nil {
		p.sub = SubSectionTemperatureLog
		p.addJSONSCTStatus(s)
	}
	if e := r.ATASCTERC; e != nil {
		p.sub = SubSectionERCLog
		for _, t := range []struct {
			key, name string
			timer     jsonERCTimer
		}{{"ata_sct_erc/read", "SCT ERC Read", e.Read}, {"ata_sct_erc/write", "SCT ERC Write", e.Write}} {
			v := ERCSetting{Enabled: t.timer.Enabled, Deciseconds: t.timer.Deciseconds}
			p.addData(t.key, t.name, v.String(), v)
		}
	}
	if s := r.ATADeviceStats; s != nil {
		p.sub = SubSectionDevstat
		p.addJSONDevstat(s)
	}
	if e := r.SATAPhyEvents; e != nil {
		p.sub = SubSectionPhyLog
		for _, row := range e.Table {
			ev := PhyEvent{ID: row.ID, Size: row.Size, Value: row.Value, Description: row.Name}
			p.addData(fmt.Sprintf("sata_phy_event_counters/0x%04x", row.ID), row.Name, ev.String(), ev)
		}
	}
}

// sentence is a decoded capability text, kept when ok is set.
type sentence struct {
	ok   bool
	text string
}

func sentences(list ...sentence) []string {
	var out []string
	for _, s := range list {
		if s.ok {
			out = append(out, s.text)
		}
	}
	return out
}

func (p *JSONParser) addJSONCapabilities(d *jsonATASmartData, sct *jsonSCTCapabilities) {
	capability := func(key, name string, c Capability) {
		p.addData(key, name, c.String(), c)
	}
	minutes := func(key, name string, v *int64) {
		if v != nil {
			iv := IntegerValue{Value: *v, Unit: "minutes"}
			p.addData(key, name, iv.String(), iv)
		}
	}

	if d != nil {
		odc := d.OfflineDataCollection
		capability("ata_smart_data/offline_data_collection/status/_group", "Offline data collection status",
			Capability{FlagValue: odc.Status.Value, IsFlag: true, Values: sentences(sentence{odc.Status.String != "", odc.Status.String})})
		st := d.SelfTest.Status
		capability("ata_smart_data/self_test/status/_group", "Self-test execution status",
			Capability{FlagValue: st.Value, Values: sentences(sentence{st.String != "", st.String})})
		if odc.CompletionSeconds != nil {
			iv := IntegerValue{Value: *odc.CompletionSeconds, Unit: "seconds"}
			p.addData("ata_smart_data/offline_data_collection/completion_seconds",
				"Total time to complete Offline data collection", iv.String(), iv)
		}

		c := d.Capabilities
		var offline, smart int64
		if len(c.Values) > 0 {
			offline = c.Values[0]
		}
		if len(c.Values) > 1 {
			smart = c.Values[1]
		}
		capability("ata_smart_data/capabilities/_group", "Offline data collection capabilities", Capability{
			FlagValue: offline,
			IsFlag:    true,
			Values: sentences(
				sentence{c.ExecOfflineImmediateSupported, "SMART execute Offline immediate."},
				sentence{offline&offlineCapAutoToggle != 0, "Auto Offline data collection on/off support."},
				sentence{c.OfflineIsAbortedUponNewCmd, "Abort Offline collection upon new command."},
				sentence{c.OfflineSurfaceScanSupported, "Offline surface scan supported."},
				sentence{c.SelfTestsSupported, "Self-test supported."},
				sentence{c.ConveyanceSelfTestSupported, "Conveyance Self-test supported."},
				sentence{c.SelectiveSelfTestSupported, "Selective Self-test supported."},
			),
		})
		capability("ata_smart_data/capabilities/values/_group", "SMART capabilities", Capability{
			FlagValue: smart,
			IsFlag:    true,
			Values:    sentences(sentence{c.AttributeAutosaveEnabled, "Supports SMART auto save timer."}),
		})
		var errLog int64
		if c.ErrorLoggingSupported {
			errLog = errorLogCapSupported
		}
		capability("ata_smart_data/capabilities/error_logging_supported/_group", "Error logging capability", Capability{
			FlagValue: errLog,
			IsFlag:    true,
			Values: sentences(
				sentence{c.ErrorLoggingSupported, "Error logging supported."},
				sentence{c.GPLoggingSupported, "General Purpose Logging supported."},
			),
		})
		pm := d.SelfTest.PollingMinutes
		minutes("ata_smart_data/self_test/polling_minutes/short", "Short self-test routine recommended polling time", pm.Short)
		minutes("ata_smart_data/self_test/polling_minutes/extended", "Extended self-test routine recommended polling time", pm.Extended)
		minutes("ata_smart_data/self_test/polling_minutes/conveyance", "Conveyance self-test routine recommended polling time", pm.Conveyance)
	}

	if sct != nil {
		capability("ata_sct_capabilities/value", "SCT capabilities", Capability{
			FlagValue: sct.Value,
			IsFlag:    true,
			Values: sentences(
				sentence{sct.Value&sctCapStatus != 0, "SCT Status supported."},
				sentence{sct.ErrorRecoveryControlSupported, "SCT Error Recovery Control supported."},
				sentence{sct.FeatureControlSupported, "SCT Feature Control supported."},
				sentence{sct.DataTableSupported, "SCT Data Table supported."},
			),
		})
	}
}

func jsonAttribute(row jsonATAAttribute) Attribute {
	a := Attribute{
		ID:        row.ID,
		Name:      row.Name,
		Flag:      fmt.Sprintf("0x%04x", row.Flags.Value),
		Value:     row.Value,
		Worst:     row.Worst,
		Threshold: row.Thresh,
		Type:      AttributeTypeOldAge,
		Updated:   UpdateTypeOffline,
		RawValue:  row.Raw.String,
	}
	if row.Flags.Prefailure {
		a.Type = AttributeTypePrefail
	}
	if row.Flags.UpdatedOnline {
		a.Updated = UpdateTypeAlways
	}
	switch strings.ToLower(row.WhenFailed) {
	case "now":
		a.WhenFailed = FailTimeNow
	case "past":
		a.WhenFailed = FailTimePast
	default:
		a.WhenFailed = FailTimeNone
	}
	raw := row.Raw.Value
	a.RawInt = &raw
	return a
}

func jsonDirectoryEntry(e jsonLogDirEntry) DirectoryEntry {
	var access []string
	size := 0
	if e.GPSectors != nil {
		access = append(access, "GPL")
		size = *e.GPSectors
	}
	if e.SmartSectors != nil {
		access = append(access, "SL")
		if size == 0 {
			size = *e.SmartSectors
		}
	}
	rw := "R/O"
	if e.Write {
		rw = "R/W"
	}
	return DirectoryEntry{
		Address:     fmt.Sprintf("0x%02x", e.Address),
		Access:      strings.Join(access, ","),
		ReadWrite:   rw,
		Size:        size,
		Description: e.Name,
	}
}

func (p *JSONParser) addJSONErrorTable(kind string, t *jsonErrorLogTable) {
	if t == nil || len(t.Table) == 0 {
		return
	}
	prefix := "ata_smart_error_log/" + kind
	count := IntegerValue{Value: t.Count}
	p.addData(prefix+"/count", "Error Count", count.String(), count)
	for _, e := range t.Table {
		types, more := parseErrorTypes(e.ErrorDescription)
		b := ErrorBlock{
			ErrorNum:      e.ErrorNumber,
			LogIndex:      e.LogIndex,
			LifetimeHours: e.LifetimeHours,
			ReportedTypes: types,
			TypeMoreInfo:  more,
		}
		p.addData(prefix+"/table/"+strconv.Itoa(b.ErrorNum), "Error "+strconv.Itoa(b.ErrorNum), b.String(), b)
	}
}

func (p *JSONParser) addJSONSelftestTable(kind string, t *jsonSelfTestTable) {
	if t == nil {
		return
	}
	for i, row := range t.Table {
		lba := "-"
		if row.LBA != nil {
			lba = strconv.FormatInt(*row.LBA, 10)
		}
		remaining := 0
		if row.Status.RemainingPercent != nil {
			remaining = *row.Status.RemainingPercent
		}
		e := SelftestEntry{
			TestNum:          i + 1,
			Type:             row.Type.String,
			StatusText:       row.Status.String,
			Status:           classifySelftestStatus(row.Status.String),
			RemainingPercent: remaining,
			LifetimeHours:    row.LifetimeHours,
			LBAOfFirstError:  lba,
		}
		n := strconv.Itoa(e.TestNum)
		p.addData("ata_smart_self_test_log/"+kind+"/table/"+n, "Self-test "+n, e.String(), e)
	}
}

func (p *JSONParser) addJSONSCTStatus(s *jsonSCTStatus) {
	str := func(key, name, v string) {
		p.addData("ata_sct_status/"+key, name, v, StringValue(v))
	}
	str("sct_status_version", "SCT Status Version", strconv.FormatInt(s.FormatVersion, 10))
	str("device_state", "Device State", fmt.Sprintf("%s (%d)", s.DeviceState.String, s.DeviceState.Value))
	t := s.Temperature
	if t.Current != nil {
		v := IntegerValue{Value: *t.Current, Unit: "Celsius"}
		p.addData("ata_sct_status/temperature/current", "Current Temperature", v.String(), v)
	}
	if t.PowerCycleMin != nil && t.PowerCycleMax != nil {
		str("power_cycle_min_max_temperature", "Power Cycle Min/Max Temperature",
			fmt.Sprintf("%d/%d Celsius", *t.PowerCycleMin, *t.PowerCycleMax))
	}
	if t.LifetimeMin != nil && t.LifetimeMax != nil {
		str("lifetime_min_max_temperature", "Lifetime Min/Max Temperature",
			fmt.Sprintf("%d/%d Celsius", *t.LifetimeMin, *t.LifetimeMax))
	}
	if t.UnderLimitCount != nil && t.OverLimitCount != nil {
		str("under_over_temperature_limit_count", "Under/Over Temperature Limit Count",
			fmt.Sprintf("%d/%d", *t.UnderLimitCount, *t.OverLimitCount))
	}
}

func (p *JSONParser) addJSONDevstat(s *jsonDeviceStats) {
	for _, page := range s.Pages {
		title := fmt.Sprintf("%s (rev %d)", page.Name, page.Revision)
		p.addData("stat_page/"+genericName(title), title, "", Statistic{Page: page.Number, IsHeader: true})
		for _, row := range page.Table {
			st := Statistic{
				Page:   page.Number,
				Offset: row.Offset,
				Size:   row.Size,
				Value:  "-",
				Flags:  row.Flags.String,
			}
			if row.Value != nil && row.Flags.Valid {
				v := *row.Value
				st.Value = strconv.FormatInt(v, 10)
				st.ValueInt = &v
			}
			p.addData("stat_"+genericName(row.Name), row.Name, st.Value, st)
		}
	}
}

// Err returns the error of the last parse, nil on success.
func (p *JSONParser) Err() error {
	return p.err
}

// ErrorMsg returns the displayable error message, empty on success.
func (p *JSONParser) ErrorMsg() string {
	if p.err == nil {
		return ""
	}
	return p.err.Error()
}

// DataFull returns the verbatim input of the last parse.
func (p *JSONParser) DataFull() string {
	return p.full
}

// DataSectionInfo returns the info keys of the report as indented JSON.
func (p *JSONParser) DataSectionInfo() string {
	return p.info
}

// DataSectionData returns the data keys of the report as indented JSON.
func (p *JSONParser) DataSectionData() string {
	return p.data
}
