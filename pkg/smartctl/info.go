// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// infoConverter turns the value of a known info label into a generic key and
// typed value.
type infoConverter func(value string) (string, Value)

func stringAs(key string) infoConverter {
	return func(v string) (string, Value) { return key, StringValue(v) }
}

func integerAs(key, unit string) infoConverter {
	return func(v string) (string, Value) {
		n, ok := leadingInt(v)
		if !ok {
			return key, StringValue(v)
		}
		return key, IntegerValue{Value: n, Unit: unit}
	}
}

var infoLabels = map[string]infoConverter{
	"Model Family":      stringAs("model_family"),
	"Device Model":      stringAs("model_name"),
	"Serial Number":     stringAs("serial_number"),
	"LU WWN Device Id":  stringAs("wwn/_merged"),
	"Add. Product Id":   stringAs("ata_additional_product_id"),
	"Firmware Version":  stringAs("firmware_version"),
	"User Capacity":     integerAs("user_capacity/bytes", "bytes"),
	"Sector Size":       integerAs("logical_block_size", "bytes"),
	"Sector Sizes":      integerAs("logical_block_size", "bytes"),
	"Rotation Rate":     convertRotationRate,
	"Form Factor":       stringAs("form_factor/name"),
	"TRIM Command":      stringAs("trim/_merged"),
	"Zoned Device":      stringAs("zoned_device/_merged"),
	"Device is":         convertInDatabase,
	"ATA Version is":    stringAs("ata_version/string"),
	"SATA Version is":   stringAs("sata_version/string"),
	"Local Time is":     stringAs("local_time/asctime"),
	"SMART support is":  convertSmartSupport,
	"AAM feature is":    stringAs("ata_aam/_merged"),
	"AAM level is":      stringAs("ata_aam/_merged"),
	"APM feature is":    stringAs("ata_apm/_merged"),
	"APM level is":      stringAs("ata_apm/_merged"),
	"Rd look-ahead is":  stringAs("read_lookahead/_merged"),
	"Write cache is":    stringAs("write_cache/_merged"),
	"Wt Cache Reorder":  stringAs("write_cache_reorder/_merged"),
	"DSN feature is":    stringAs("ata_dsn/_merged"),
	"ATA Security is":   stringAs("ata_security/_merged"),
	"Power mode is":     stringAs("power_mode/_merged"),
	"Power mode was":    stringAs("power_mode/_merged"),
	"SMART Status":      stringAs("smart_status/_merged"),
	"Checksum":          stringAs("checksum/_merged"),
	"Additional Notice": stringAs("additional_notice/_merged"),
}

func convertRotationRate(v string) (string, Value) {
	if strings.Contains(strings.ToLower(v), "solid state") {
		return "rotation_rate", IntegerValue{Value: 0, Unit: "rpm"}
	}
	return integerAs("rotation_rate", "rpm")(v)
}

// "In smartctl database 7.3/5319" or "Not in smartctl database 7.3/5319".
func convertInDatabase(v string) (string, Value) {
	return "in_smartctl_database", BoolValue(!strings.HasPrefix(strings.ToLower(v), "not in"))
}

// "SMART support is" appears twice: availability first, then state.
func convertSmartSupport(v string) (string, Value) {
	l := strings.ToLower(v)
	switch {
	case strings.HasPrefix(l, "available"):
		return "smart_support/available", BoolValue(true)
	case strings.HasPrefix(l, "unavailable"), strings.HasPrefix(l, "ambiguous"):
		return "smart_support/available", BoolValue(false)
	case strings.HasPrefix(l, "enabled"):
		return "smart_support/enabled", BoolValue(true)
	case strings.HasPrefix(l, "disabled"):
		return "smart_support/enabled", BoolValue(false)
	}
	return "smart_support/_merged", StringValue(v)
}

// parseInfo extracts one property per "Label: Value" line of an info section.
// A label with an empty value takes the indented lines below it as value.
// Advisory blocks ("==> WARNING: ...") and unlabelled lines are skipped.
func (p *TextParser) parseInfo(body string) {
	lines := splitLines(body)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isBlank(line) {
			continue
		}
		// The banner is recorded separately and may contain a time of day.
		if strings.HasPrefix(line, ToolName+" ") {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "==>") {
			for i+1 < len(lines) && !isBlank(lines[i+1]) {
				i++
			}
			log.Debug().Str("line", line).Msg("skipping advisory block in info section")
			continue
		}

		label, value, ok := splitLabel(line)
		// "Copyright (C) 2002-12 by Bruce Allen, http://..." is not a label.
		if ok && strings.HasPrefix(value, "//") {
			ok = false
		}
		if !ok {
			log.Debug().Str("line", line).Msg("skipping unlabelled info line")
			continue
		}
		if value == "" {
			var cont []string
			for i+1 < len(lines) && isIndented(lines[i+1]) && !isBlank(lines[i+1]) {
				i++
				cont = append(cont, strings.TrimSpace(lines[i]))
			}
			if len(cont) == 0 {
				continue
			}
			value = strings.Join(cont, " ")
		}

		key, val := label, Value(StringValue(value))
		if conv, ok := infoLabels[label]; ok {
			key, val = conv(value)
		}
		p.add(Property{
			Key:      key,
			Name:     label,
			Section:  SectionInfo,
			Reported: value,
			Value:    val,
		})
	}
}
