// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const attributeKeyPrefix = "ata_smart_attributes/"

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// parseHealth handles
//
//	SMART overall-health self-assessment test result: PASSED
func (p *TextParser) parseHealth(body string) error {
	for _, line := range splitLines(body) {
		label, value, ok := splitLabel(strings.TrimSpace(line))
		if !ok {
			continue
		}
		if !containsFold(label, "self-assessment test result") && !strings.EqualFold(label, "SMART Health Status") {
			continue
		}
		upper := strings.ToUpper(value)
		var passed bool
		switch {
		case strings.HasPrefix(upper, "PASSED"), strings.HasPrefix(upper, "OK"):
			passed = true
		case strings.HasPrefix(upper, "FAILED"):
			passed = false
		default:
			return structureError(SubSectionHealth, line, "unknown health status %q", value)
		}
		p.addData("smart_status/passed", label, value, BoolValue(passed))
		return nil
	}
	if containsFold(body, "not supported") {
		return nil
	}
	return structureError(SubSectionHealth, firstLine(body), "no self-assessment result")
}

var capabilityKeys = map[string]string{
	"Offline data collection status":                        "ata_smart_data/offline_data_collection/status/_group",
	"Self-test execution status":                            "ata_smart_data/self_test/status/_group",
	"Total time to complete Offline data collection":        "ata_smart_data/offline_data_collection/completion_seconds",
	"Offline data collection capabilities":                  "ata_smart_data/capabilities/_group",
	"SMART capabilities":                                    "ata_smart_data/capabilities/values/_group",
	"Error logging capability":                              "ata_smart_data/capabilities/error_logging_supported/_group",
	"Short self-test routine recommended polling time":      "ata_smart_data/self_test/polling_minutes/short",
	"Extended self-test routine recommended polling time":   "ata_smart_data/self_test/polling_minutes/extended",
	"Conveyance self-test routine recommended polling time": "ata_smart_data/self_test/polling_minutes/conveyance",
	"SCT capabilities":                                      "ata_sct_capabilities/value",
}

type capabilityEntry struct {
	label string
	raw   string
	value int64
	isHex bool
	text  []string
}

// parseCapabilities handles the "General SMART Values" list. An entry is
//
//	Label: (value) first line of text
//	       indented continuation
//
// where the label itself may be wrapped over several unindented lines.
func (p *TextParser) parseCapabilities(body string) error {
	var entries []*capabilityEntry
	var cur *capabilityEntry
	var labelBuf []string
	var labelLine string

	for _, line := range splitLines(body) {
		if isBlank(line) {
			continue
		}
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "General SMART Values") {
			continue
		}
		if isIndented(line) && cur != nil && len(labelBuf) == 0 {
			cur.text = append(cur.text, t)
			continue
		}
		open := strings.IndexByte(t, '(')
		if open < 0 {
			if isIndented(line) {
				return structureError(SubSectionCapabilities, line, "unexpected line")
			}
			if len(labelBuf) == 0 {
				labelLine = line
			}
			labelBuf = append(labelBuf, t)
			cur = nil
			continue
		}
		closing := strings.IndexByte(t[open:], ')')
		if closing < 0 {
			return structureError(SubSectionCapabilities, line, "unterminated value")
		}
		closing += open

		label := strings.TrimSpace(strings.Join(append(labelBuf, t[:open]), " "))
		label = strings.Join(strings.Fields(strings.TrimSuffix(label, ":")), " ")
		if label == "" {
			return structureError(SubSectionCapabilities, line, "missing label")
		}
		raw := strings.TrimSpace(t[open+1 : closing])
		v, isHex, err := parseHexOrDec(raw)
		if err != nil {
			return structureError(SubSectionCapabilities, line, "invalid value %q", raw)
		}
		cur = &capabilityEntry{label: label, raw: raw, value: v, isHex: isHex}
		if rest := strings.TrimSpace(t[closing+1:]); rest != "" {
			cur.text = append(cur.text, rest)
		}
		entries = append(entries, cur)
		labelBuf = nil
	}
	if len(labelBuf) > 0 {
		return structureError(SubSectionCapabilities, labelLine, "label without value")
	}
	if len(entries) == 0 {
		return structureError(SubSectionCapabilities, firstLine(body), "no capability entries")
	}

	for _, e := range entries {
		key, ok := capabilityKeys[e.label]
		if !ok {
			key = "ata_smart_data/" + genericName(e.label)
		}
		text := strings.Join(e.text, " ")
		reported := "(" + e.raw + ")"
		if text != "" {
			reported += " " + text
		}
		if !e.isHex {
			if unit, ok := durationUnit(text); ok {
				p.addData(key, e.label, reported, IntegerValue{Value: e.value, Unit: unit})
				continue
			}
		}
		p.addData(key, e.label, reported, Capability{
			FlagValue: e.value,
			IsFlag:    e.isHex,
			Values:    joinSentences(e.text),
		})
	}
	return nil
}

// durationUnit recognizes the "seconds." / "minutes." text of timing entries.
func durationUnit(text string) (string, bool) {
	switch strings.TrimSuffix(strings.TrimSpace(text), ".") {
	case "seconds":
		return "seconds", true
	case "minutes":
		return "minutes", true
	}
	return "", false
}

type attributeFormat int

const (
	attributeFormatUnknown attributeFormat = iota
	attributeFormatClassic
	attributeFormatBrief
)

// parseAttributes handles both the classic table (-A) and the brief table
// printed by -x with letter flags.
func (p *TextParser) parseAttributes(body string) error {
	format := attributeFormatUnknown
	for _, line := range splitLines(body) {
		t := strings.TrimSpace(line)
		switch {
		case t == "":
			continue
		case strings.HasPrefix(t, "|"):
			continue
		case strings.HasPrefix(t, "SMART Attributes Data Structure revision number"):
			_, value, _ := strings.Cut(t, "number")
			value = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), ":"))
			rev, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return structureError(SubSectionAttributes, line, "invalid revision %q", value)
			}
			p.addData("ata_smart_attributes/revision", "SMART Attributes Data Structure revision number", value, IntegerValue{Value: rev})
			continue
		case strings.HasPrefix(t, "Vendor Specific SMART Attributes"):
			continue
		case strings.HasPrefix(t, "ID#"):
			switch {
			case strings.Contains(t, "WHEN_FAILED"):
				format = attributeFormatClassic
			case strings.Contains(t, "FLAGS"):
				format = attributeFormatBrief
			default:
				return structureError(SubSectionAttributes, line, "unknown attribute table header")
			}
			continue
		}

		if format == attributeFormatUnknown {
			return structureError(SubSectionAttributes, line, "attribute row without table header")
		}
		attr, err := parseAttributeRow(t, format)
		if err != nil {
			return structureError(SubSectionAttributes, line, "%v", err)
		}
		var desc string
		if d, ok := LookupAttribute(attr.ID, p.diskType); ok {
			desc = d.Description
		}
		p.add(Property{
			Key:         attributeKeyPrefix + strconv.Itoa(attr.ID),
			Name:        attr.Name,
			Description: desc,
			Section:     SectionData,
			SubSection:  SubSectionAttributes,
			Reported:    attr.RawValue,
			Value:       attr,
		})
	}
	return nil
}

type rowError string

func (e rowError) Error() string { return string(e) }

func parseAttributeRow(row string, format attributeFormat) (Attribute, error) {
	f := strings.Fields(row)
	minFields := 10
	if format == attributeFormatBrief {
		minFields = 8
	}
	if len(f) < minFields {
		return Attribute{}, rowError("too few columns in attribute row")
	}
	id, err := strconv.Atoi(f[0])
	if err != nil {
		return Attribute{}, rowError("invalid attribute id")
	}
	a := Attribute{ID: id, Name: f[1], Flag: f[2]}
	if a.Value, err = optInt(f[3]); err != nil {
		return Attribute{}, rowError("invalid normalized value")
	}
	if a.Worst, err = optInt(f[4]); err != nil {
		return Attribute{}, rowError("invalid worst value")
	}
	if a.Threshold, err = optInt(f[5]); err != nil {
		return Attribute{}, rowError("invalid threshold")
	}

	var rawFields []string
	switch format {
	case attributeFormatClassic:
		if _, _, err := parseHexOrDec(f[2]); err != nil {
			return Attribute{}, rowError("invalid attribute flag")
		}
		a.Type = AttributeType(f[6])
		a.Updated = UpdateType(f[7])
		a.WhenFailed = FailTime(f[8])
		rawFields = f[9:]
	case attributeFormatBrief:
		if len(f[2]) < 2 {
			return Attribute{}, rowError("invalid attribute flags")
		}
		a.Type = AttributeTypeOldAge
		if f[2][0] == 'P' {
			a.Type = AttributeTypePrefail
		}
		a.Updated = UpdateTypeOffline
		if f[2][1] == 'O' {
			a.Updated = UpdateTypeAlways
		}
		switch f[6] {
		case "NOW":
			a.WhenFailed = FailTimeNow
		case "Past":
			a.WhenFailed = FailTimePast
		default:
			a.WhenFailed = FailTimeNone
		}
		rawFields = f[7:]
	}
	a.RawValue = strings.Join(rawFields, " ")
	if n, ok := leadingInt(a.RawValue); ok {
		a.RawInt = &n
	}
	return a, nil
}

// parseDirectoryLog handles
//
//	0x04       GPL,SL  R/O      8  Device Statistics log
//
// and the older "Log at address 0x00 has 001 sectors [Log Directory]" form.
func (p *TextParser) parseDirectoryLog(body string) error {
	for _, line := range splitLines(body) {
		t := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(t, "0x"):
			f := strings.Fields(t)
			if len(f) < 5 {
				return structureError(SubSectionDirectoryLog, line, "too few columns in log directory row")
			}
			size, err := strconv.Atoi(f[3])
			if err != nil {
				return structureError(SubSectionDirectoryLog, line, "invalid log size %q", f[3])
			}
			e := DirectoryEntry{
				Address:     f[0],
				Access:      f[1],
				ReadWrite:   f[2],
				Size:        size,
				Description: strings.Join(f[4:], " "),
			}
			p.addData("ata_log_directory/"+e.Address, e.Description, t, e)
		case strings.HasPrefix(t, "Log at address"):
			f := strings.Fields(t)
			if len(f) < 6 {
				return structureError(SubSectionDirectoryLog, line, "too few fields in log directory line")
			}
			size, err := strconv.Atoi(f[5])
			if err != nil {
				return structureError(SubSectionDirectoryLog, line, "invalid log size %q", f[5])
			}
			desc := ""
			if open := strings.IndexByte(t, '['); open >= 0 {
				desc = strings.Trim(t[open:], "[]")
			}
			e := DirectoryEntry{Address: f[3], Access: "SL", Size: size, Description: desc}
			p.addData("ata_log_directory/"+e.Address, e.Description, t, e)
		}
	}
	return nil
}

// parseErrorLog handles the summary and the extended comprehensive error
// log. Each "Error N occurred at ..." block becomes one property.
func (p *TextParser) parseErrorLog(body string) error {
	type errorTable struct {
		kind   string
		count  int64
		line   string
		blocks []ErrorBlock
	}
	var tables []*errorTable
	var cur *errorTable
	currentKind := func() string {
		if cur == nil {
			return "summary"
		}
		return cur.kind
	}
	table := func(kind string) *errorTable {
		if cur == nil || cur.kind != kind {
			cur = &errorTable{kind: kind}
			tables = append(tables, cur)
		}
		return cur
	}

	for _, line := range splitLines(body) {
		t := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(t, "SMART Extended Comprehensive Error Log"):
			table("extended")
		case strings.HasPrefix(t, "SMART Error Log"):
			table("summary")
		case strings.HasPrefix(t, "ATA Error Count:"), strings.HasPrefix(t, "Device Error Count:"):
			_, value, _ := strings.Cut(t, ":")
			n, ok := leadingInt(value)
			if !ok {
				return structureError(SubSectionErrorLog, line, "invalid error count")
			}
			tb := table(currentKind())
			tb.count, tb.line = n, t
		case strings.HasPrefix(t, "Error ") && strings.Contains(t, "occurred at"):
			b, err := parseErrorHeader(t)
			if err != nil {
				return structureError(SubSectionErrorLog, line, "%v", err)
			}
			tb := table(currentKind())
			tb.blocks = append(tb.blocks, b)
		case strings.HasPrefix(t, "When the command that caused the error occurred"):
			if cur == nil || len(cur.blocks) == 0 {
				return structureError(SubSectionErrorLog, line, "device state outside of an error block")
			}
			_, state, _ := strings.Cut(t, "the device was ")
			cur.blocks[len(cur.blocks)-1].DeviceState = strings.TrimSuffix(strings.TrimSpace(state), ".")
		case strings.Contains(t, "Error: "):
			if cur == nil || len(cur.blocks) == 0 {
				continue
			}
			types, more := parseErrorTypes(t)
			b := &cur.blocks[len(cur.blocks)-1]
			b.ReportedTypes, b.TypeMoreInfo = types, more
		}
	}

	for _, tb := range tables {
		if len(tb.blocks) == 0 {
			continue
		}
		prefix := "ata_smart_error_log/" + tb.kind
		if tb.line != "" {
			p.addData(prefix+"/count", "Error Count", tb.line, IntegerValue{Value: tb.count})
		}
		for _, b := range tb.blocks {
			name := "Error " + strconv.Itoa(b.ErrorNum)
			p.addData(prefix+"/table/"+strconv.Itoa(b.ErrorNum), name, b.String(), b)
		}
	}
	return nil
}

// parseErrorHeader parses
//
//	Error 3 [2] occurred at disk power-on lifetime: 1234 hours (51 days + 10 hours)
func parseErrorHeader(t string) (ErrorBlock, error) {
	f := strings.Fields(t)
	if len(f) < 2 {
		return ErrorBlock{}, rowError("malformed error header")
	}
	num, err := strconv.Atoi(f[1])
	if err != nil {
		return ErrorBlock{}, rowError("invalid error number")
	}
	b := ErrorBlock{ErrorNum: num}
	if len(f) > 2 && strings.HasPrefix(f[2], "[") {
		idx, err := strconv.Atoi(strings.Trim(f[2], "[]"))
		if err != nil {
			return ErrorBlock{}, rowError("invalid error log index")
		}
		b.LogIndex = idx
	}
	_, lifetime, ok := strings.Cut(t, "lifetime:")
	if !ok {
		return ErrorBlock{}, rowError("missing power-on lifetime")
	}
	hours, ok := leadingInt(lifetime)
	if !ok {
		return ErrorBlock{}, rowError("invalid power-on lifetime")
	}
	b.LifetimeHours = hours
	return b, nil
}

// parseErrorTypes splits "... Error: ICRC, ABRT 8 sectors at LBA = 0x1 = 1"
// into the error type names and the remaining text.
func parseErrorTypes(t string) ([]string, string) {
	_, s, _ := strings.Cut(t, "Error: ")
	f := strings.Fields(s)
	var types []string
	i := 0
	for ; i < len(f); i++ {
		name := strings.TrimSuffix(f[i], ",")
		if name == "" || strings.ToUpper(name) != name || !isUpperWord(name) {
			break
		}
		types = append(types, name)
	}
	return types, strings.Join(f[i:], " ")
}

func isUpperWord(s string) bool {
	for _, r := range s {
		if (r < 'A' || r > 'Z') && r != '_' {
			return false
		}
	}
	return true
}

// parseSelftestLog handles rows of the classic and the extended self-test log:
//
//	# 1  Short offline       Completed without error       00%     18683         -
func (p *TextParser) parseSelftestLog(body string) error {
	kind := "standard"
	for _, line := range splitLines(body) {
		t := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(t, "SMART Extended Self-test Log"):
			kind = "extended"
			continue
		case strings.HasPrefix(t, "SMART Self-test log"):
			kind = "standard"
			continue
		case !strings.HasPrefix(t, "#"):
			continue
		}
		e, err := parseSelftestRow(t)
		if err != nil {
			return structureError(SubSectionSelftestLog, line, "%v", err)
		}
		key := "ata_smart_self_test_log/" + kind + "/table/" + strconv.Itoa(e.TestNum)
		p.addData(key, "Self-test "+strconv.Itoa(e.TestNum), t, e)
	}
	return nil
}

func parseSelftestRow(t string) (SelftestEntry, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(t, "#"))
	f := strings.Fields(rest)
	if len(f) < 6 {
		return SelftestEntry{}, rowError("too few columns in self-test row")
	}
	num, err := strconv.Atoi(f[0])
	if err != nil {
		return SelftestEntry{}, rowError("invalid self-test number")
	}
	n := len(f)
	remaining := f[n-3]
	if !strings.HasSuffix(remaining, "%") {
		return SelftestEntry{}, rowError("missing remaining percentage")
	}
	pct, err := strconv.Atoi(strings.TrimSuffix(remaining, "%"))
	if err != nil {
		return SelftestEntry{}, rowError("invalid remaining percentage")
	}
	hours, ok := leadingInt(f[n-2])
	if !ok {
		return SelftestEntry{}, rowError("invalid lifetime hours")
	}

	middle := strings.TrimSpace(strings.TrimPrefix(rest, f[0]))
	middle = strings.TrimSpace(middle[:strings.LastIndex(middle, remaining)])
	cols := splitColumns(middle)
	if len(cols) < 2 {
		return SelftestEntry{}, rowError("cannot separate test type from status")
	}
	status := strings.Join(cols[1:], " ")
	return SelftestEntry{
		TestNum:          num,
		Type:             cols[0],
		StatusText:       status,
		Status:           classifySelftestStatus(status),
		RemainingPercent: pct,
		LifetimeHours:    hours,
		LBAOfFirstError:  f[n-1],
	}, nil
}

func classifySelftestStatus(s string) SelftestStatus {
	l := strings.ToLower(s)
	switch {
	case strings.HasPrefix(l, "completed without error"):
		return SelftestStatusCompleted
	case strings.Contains(l, "in progress"):
		return SelftestStatusInProgress
	case strings.HasPrefix(l, "aborted"):
		return SelftestStatusAborted
	case strings.HasPrefix(l, "interrupted"):
		return SelftestStatusInterrupted
	case strings.HasPrefix(l, "completed:"), strings.Contains(l, "fail"), strings.Contains(l, "fatal"):
		return SelftestStatusFailed
	}
	return SelftestStatusUnknown
}

// parseSelectiveSelftestLog handles
//
//	 SPAN  MIN_LBA  MAX_LBA  CURRENT_TEST_STATUS
//	    1        0        0  Not_testing
func (p *TextParser) parseSelectiveSelftestLog(body string) error {
	for _, line := range splitLines(body) {
		f := strings.Fields(line)
		if len(f) == 0 || !isDigits(f[0]) {
			continue
		}
		if len(f) < 4 {
			return structureError(SubSectionSelectiveSelftestLog, line, "too few columns in span row")
		}
		span, _ := strconv.Atoi(f[0])
		minLBA, err := strconv.ParseUint(f[1], 10, 64)
		if err != nil {
			return structureError(SubSectionSelectiveSelftestLog, line, "invalid min LBA %q", f[1])
		}
		maxLBA, err := strconv.ParseUint(f[2], 10, 64)
		if err != nil {
			return structureError(SubSectionSelectiveSelftestLog, line, "invalid max LBA %q", f[2])
		}
		s := SelectiveSpan{Span: span, MinLBA: minLBA, MaxLBA: maxLBA, Status: strings.Join(f[3:], " ")}
		p.addData("ata_smart_selective_self_test_log/table/"+f[0], "Span "+f[0], strings.TrimSpace(line), s)
	}
	return nil
}

// parseTemperatureLog handles SCT Status and the SCT temperature history
// header. History rows and vendor hex dumps carry no label and are skipped.
func (p *TextParser) parseTemperatureLog(body string) error {
	found := false
	for _, line := range splitLines(body) {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		if containsFold(t, "not supported") {
			p.addData("ata_sct_status/_not_present", "SCT Status", t, BoolValue(true))
			found = true
			continue
		}
		if f := strings.Fields(t); isDigits(f[0]) || strings.HasPrefix(f[0], "...") {
			continue
		}
		label, value, ok := splitLabel(line)
		if !ok || value == "" {
			continue
		}
		found = true
		if label == "Current Temperature" {
			n, ok := leadingInt(value)
			if !ok {
				return structureError(SubSectionTemperatureLog, line, "invalid temperature %q", value)
			}
			p.addData("ata_sct_status/temperature/current", label, value, IntegerValue{Value: n, Unit: "Celsius"})
			continue
		}
		p.addData("ata_sct_status/"+genericName(label), label, value, StringValue(value))
	}
	if !found {
		return structureError(SubSectionTemperatureLog, firstLine(body), "no SCT status values")
	}
	return nil
}

// parseERCLog handles
//
//	SCT Error Recovery Control:
//	           Read:     70 (7.0 seconds)
//	          Write: Disabled
func (p *TextParser) parseERCLog(body string) error {
	for _, line := range splitLines(body) {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "SCT Error Recovery Control:") {
			continue
		}
		if containsFold(t, "not supported") {
			p.addData("ata_sct_erc/_not_present", "SCT Error Recovery Control", t, BoolValue(true))
			continue
		}
		label, value, ok := splitLabel(t)
		if !ok {
			return structureError(SubSectionERCLog, line, "unexpected line")
		}
		var key string
		switch strings.ToLower(label) {
		case "read":
			key = "ata_sct_erc/read"
		case "write":
			key = "ata_sct_erc/write"
		default:
			return structureError(SubSectionERCLog, line, "unknown timer %q", label)
		}
		var setting ERCSetting
		if !strings.EqualFold(value, "Disabled") {
			n, ok := leadingInt(value)
			if !ok {
				return structureError(SubSectionERCLog, line, "invalid timer value %q", value)
			}
			setting = ERCSetting{Enabled: true, Deciseconds: n}
		}
		p.addData(key, "SCT ERC "+label, value, setting)
	}
	return nil
}

// parseDevstat handles the Device Statistics table with or without the Flags
// column. Page header rows ("=====") become header statistics.
func (p *TextParser) parseDevstat(body string) error {
	hasFlags := false
	headerSeen := false
	for _, line := range splitLines(body) {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "|") || strings.HasPrefix(t, "Device Statistics") {
			continue
		}
		f := strings.Fields(t)
		if f[0] == "Page" {
			headerSeen = true
			hasFlags = strings.Contains(t, "Flags")
			continue
		}
		if !strings.HasPrefix(f[0], "0x") && !isDigits(f[0]) {
			log.Debug().Str("line", line).Msg("skipping device statistics line")
			continue
		}
		if len(f) < 5 {
			return structureError(SubSectionDevstat, line, "too few columns in statistics row")
		}
		page, _, err := parseHexOrDec(f[0])
		if err != nil {
			return structureError(SubSectionDevstat, line, "invalid page %q", f[0])
		}

		if strings.Trim(f[1], "=") == "" {
			_, desc, _ := strings.Cut(t, " == ")
			desc = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(desc), "=="))
			s := Statistic{Page: int(page), IsHeader: true}
			p.addData("stat_page/"+genericName(desc), desc, "", s)
			continue
		}

		offset, _, err := parseHexOrDec(f[1])
		if err != nil {
			return structureError(SubSectionDevstat, line, "invalid offset %q", f[1])
		}
		size, err := strconv.Atoi(f[2])
		if err != nil {
			return structureError(SubSectionDevstat, line, "invalid size %q", f[2])
		}
		flagsCol := hasFlags
		if !headerSeen {
			flagsCol = looksLikeStatFlags(f[4])
		}
		s := Statistic{Page: int(page), Offset: int(offset), Size: size, Value: f[3]}
		descFields := f[4:]
		if flagsCol {
			if len(f) < 6 {
				return structureError(SubSectionDevstat, line, "missing statistic description")
			}
			s.Flags = f[4]
			descFields = f[5:]
		}
		if n, ok := leadingInt(s.Value); ok {
			s.ValueInt = &n
		}
		desc := strings.Join(descFields, " ")
		p.addData("stat_"+genericName(desc), desc, s.Value, s)
	}
	return nil
}

func looksLikeStatFlags(s string) bool {
	if len(s) < 3 || len(s) > 4 {
		return false
	}
	for _, r := range s {
		if r != '-' && r != 'N' && r != 'D' && r != 'C' {
			return false
		}
	}
	return true
}

// parsePhyLog handles
//
//	0x0001  2            0  Command failed due to ICRC error
func (p *TextParser) parsePhyLog(body string) error {
	for _, line := range splitLines(body) {
		t := strings.TrimSpace(line)
		if !strings.HasPrefix(t, "0x") {
			continue
		}
		f := strings.Fields(t)
		if len(f) < 4 {
			return structureError(SubSectionPhyLog, line, "too few columns in PHY event row")
		}
		id, _, err := parseHexOrDec(f[0])
		if err != nil {
			return structureError(SubSectionPhyLog, line, "invalid event id %q", f[0])
		}
		size, err := strconv.Atoi(f[1])
		if err != nil {
			return structureError(SubSectionPhyLog, line, "invalid size %q", f[1])
		}
		value, err := strconv.ParseInt(f[2], 10, 64)
		if err != nil {
			return structureError(SubSectionPhyLog, line, "invalid counter %q", f[2])
		}
		e := PhyEvent{ID: int(id), Size: size, Value: value, Description: strings.Join(f[3:], " ")}
		p.addData("sata_phy_event_counters/"+f[0], e.Description, f[2], e)
	}
	return nil
}
