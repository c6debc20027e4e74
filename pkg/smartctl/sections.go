// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Section headers as printed by smartctl, without the "===" decoration.
const (
	headerInfo         = "START OF INFORMATION SECTION"
	headerReadData     = "START OF READ SMART DATA SECTION"
	headerData         = "START OF SMART DATA SECTION"
	headerEnableCmds   = "START OF ENABLE/DISABLE COMMANDS SECTION"
	headerSelftestCmds = "START OF OFFLINE IMMEDIATE AND SELF-TEST SECTION"
)

// SectionKind is the meaning of a "=== ... ===" banner.
type SectionKind int

const (
	SectionKindUnknown SectionKind = iota
	SectionKindInfo
	SectionKindData
	SectionKindCommands
)

// TextSection is one banner-delimited part of a text report. The text before
// the first banner has an empty Header and is treated as info.
type TextSection struct {
	Header string
	Body   string
}

// Kind classifies the section by its header.
func (s TextSection) Kind() SectionKind {
	if s.Header == "" {
		return SectionKindInfo
	}
	h := strings.ToUpper(s.Header)
	switch {
	case strings.Contains(h, headerInfo):
		return SectionKindInfo
	case strings.Contains(h, headerReadData), strings.Contains(h, headerData):
		return SectionKindData
	case strings.Contains(h, headerEnableCmds), strings.Contains(h, headerSelftestCmds):
		return SectionKindCommands
	}
	return SectionKindUnknown
}

// bannerName returns the text between "===" markers, e.g.
// "  === START OF INFORMATION SECTION ===  " -> "START OF INFORMATION SECTION".
func bannerName(line string) (string, bool) {
	t := strings.TrimSpace(line)
	if len(t) < 7 || !strings.HasPrefix(t, "===") || !strings.HasSuffix(t, "===") {
		return "", false
	}
	name := strings.TrimSpace(strings.Trim(t, "="))
	if name == "" {
		return "", false
	}
	return name, true
}

// SplitSections splits a newline-normalized report into banner sections. A
// non-blank prefix before the first banner is returned as an implicit info
// section with an empty header.
func SplitSections(text string) []TextSection {
	var sections []TextSection
	var header string
	var body []string
	inBanner := false

	flush := func() {
		b := strings.Join(body, "\n")
		if inBanner || !isBlank(b) {
			sections = append(sections, TextSection{Header: header, Body: b})
		}
	}

	for _, line := range splitLines(text) {
		if name, ok := bannerName(line); ok {
			flush()
			header, body, inBanner = name, nil, true
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}

// Subsection is a classified block of the data section.
type Subsection struct {
	Kind SubSection
	Body string
}

// subsectionPrefixes maps the leading line of a block to its subsection.
// Order matters: the first matching prefix wins.
var subsectionPrefixes = []struct {
	prefix string
	kind   SubSection
}{
	{"SMART overall-health self-assessment", SubSectionHealth},
	{"SMART Status", SubSectionHealth},
	{"SMART Health Status", SubSectionHealth},
	{"General SMART Values", SubSectionCapabilities},
	{"SMART Attributes Data Structure", SubSectionAttributes},
	{"Vendor Specific SMART Attributes", SubSectionAttributes},
	{"General Purpose Log Directory", SubSectionDirectoryLog},
	{"SMART Log Directory", SubSectionDirectoryLog},
	{"GP/SMART Log Directories", SubSectionDirectoryLog},
	{"Log Directory", SubSectionDirectoryLog},
	{"SMART Error Log", SubSectionErrorLog},
	{"SMART Extended Comprehensive Error Log", SubSectionErrorLog},
	{"SMART Self-test log", SubSectionSelftestLog},
	{"SMART Extended Self-test Log", SubSectionSelftestLog},
	{"SMART Selective self-test log", SubSectionSelectiveSelftestLog},
	{"SMART Selective Self-test Log", SubSectionSelectiveSelftestLog},
	{"SCT Status", SubSectionTemperatureLog},
	{"SCT Temperature History", SubSectionTemperatureLog},
	{"SCT Commands not supported", SubSectionTemperatureLog},
	{"SCT Data Table command not supported", SubSectionTemperatureLog},
	{"SCT Error Recovery Control", SubSectionERCLog},
	{"Device Statistics", SubSectionDevstat},
	{"SATA Phy Event Counters", SubSectionPhyLog},
}

func classifyBlock(firstLine string) SubSection {
	l := strings.TrimSpace(firstLine)
	for _, p := range subsectionPrefixes {
		if strings.HasPrefix(strings.ToLower(l), strings.ToLower(p.prefix)) {
			return p.kind
		}
	}
	return SubSectionNone
}

// ignoredLogTitle matches titles of GP/SMART log tables without an extractor,
// e.g. "Pending Defects log (GP Log 0x0c)".
var ignoredLogTitle = regexp.MustCompile(`(?i)\((GP|SMART) Log 0x[0-9a-f]+\)\s*$`)

// isNotice reports whether an unclassified block is a standalone notice such
// as "Pending Defects log (GP Log 0x0c) not supported" or a warning.
func isNotice(block []string) bool {
	if len(block) != 1 {
		return strings.HasPrefix(strings.TrimSpace(block[0]), "Warning")
	}
	l := strings.ToLower(block[0])
	return strings.Contains(l, "not supported") || strings.Contains(l, "failed") ||
		strings.HasPrefix(strings.TrimSpace(l), "warning")
}

// SplitSubsections splits a data section body into classified subsections.
// Blocks are separated by blank lines; an unclassified block continues the
// current subsection, adjacent blocks of the same kind are merged. Log tables
// without an extractor are dropped along with their continuation blocks.
func SplitSubsections(body string) []Subsection {
	var subs []Subsection
	skipping := false
	for _, block := range splitBlocks(body) {
		kind := classifyBlock(block[0])
		text := strings.Join(block, "\n")

		if kind == SubSectionNone {
			if isNotice(block) {
				log.Debug().Str("block", block[0]).Msg("skipping data section notice")
				continue
			}
			if ignoredLogTitle.MatchString(block[0]) {
				log.Debug().Str("block", block[0]).Msg("skipping unsupported log table")
				skipping = true
				continue
			}
			if skipping || len(subs) == 0 {
				log.Debug().Str("block", block[0]).Msg("skipping unrecognized data section block")
				continue
			}
			last := &subs[len(subs)-1]
			last.Body += "\n\n" + text
			continue
		}

		skipping = false
		if len(subs) > 0 && subs[len(subs)-1].Kind == kind {
			last := &subs[len(subs)-1]
			last.Body += "\n\n" + text
			continue
		}
		subs = append(subs, Subsection{Kind: kind, Body: text})
	}
	return subs
}

// splitBlocks returns the non-blank line groups separated by blank lines.
func splitBlocks(body string) [][]string {
	var blocks [][]string
	var cur []string
	for _, line := range splitLines(body) {
		if isBlank(line) {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}
