// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// ParserState is the position of a TextParser in its state machine.
type ParserState int

const (
	StateStart ParserState = iota
	StateParsingInfo
	StateParsingData
	StateDone
	StateFailed
)

func (s ParserState) String() string {
	switch s {
	case StateParsingInfo:
		return "parsing_info"
	case StateParsingData:
		return "parsing_data"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "start"
	}
}

// TextParser parses the (S)ATA text output of "smartctl -x" and its subsets.
// A TextParser is not safe for concurrent use; use one instance per report.
type TextParser struct {
	collector
	state ParserState

	full string
	info []string
	data []string

	err error
}

func NewTextParser() *TextParser {
	return &TextParser{}
}

// ParseFull parses a complete report. All state from a previous call is
// discarded. On failure the properties extracted so far stay available and
// the returned error is a *ParseError naming the failing subsection.
//
// The version banner is not required here; when present it is recorded as
// info properties. Use Parse to enforce the minimum version.
func (p *TextParser) ParseFull(full string, diskType DiskType) error {
	*p = TextParser{collector: collector{diskType: diskType}, full: full}
	text := normalizeNewlines(full)

	if v, err := ParseVersion(text); err == nil {
		p.addVersion(v)
	}

	for _, section := range SplitSections(text) {
		switch section.Kind() {
		case SectionKindInfo:
			p.enter(StateParsingInfo, SubSectionNone)
			p.info = append(p.info, section.Body)
			p.parseInfo(section.Body)
		case SectionKindData:
			p.data = append(p.data, section.Body)
			if err := p.parseData(section.Body); err != nil {
				p.fail(err)
				resolveCapabilities(p.props)
				return p.err
			}
		default:
			log.Debug().Str("header", section.Header).Msg("skipping section")
		}
	}

	resolveCapabilities(p.props)
	p.enter(StateDone, SubSectionNone)
	return nil
}

func (p *TextParser) parseData(body string) error {
	for _, sub := range SplitSubsections(body) {
		p.enter(StateParsingData, sub.Kind)
		if err := p.parseSubsection(sub); err != nil {
			return err
		}
	}
	return nil
}

// parseSubsection dispatches to the extractor of the subsection kind.
func (p *TextParser) parseSubsection(sub Subsection) error {
	switch sub.Kind {
	case SubSectionHealth:
		return p.parseHealth(sub.Body)
	case SubSectionCapabilities:
		return p.parseCapabilities(sub.Body)
	case SubSectionAttributes:
		return p.parseAttributes(sub.Body)
	case SubSectionDirectoryLog:
		return p.parseDirectoryLog(sub.Body)
	case SubSectionErrorLog:
		return p.parseErrorLog(sub.Body)
	case SubSectionSelftestLog:
		return p.parseSelftestLog(sub.Body)
	case SubSectionSelectiveSelftestLog:
		return p.parseSelectiveSelftestLog(sub.Body)
	case SubSectionTemperatureLog:
		return p.parseTemperatureLog(sub.Body)
	case SubSectionERCLog:
		return p.parseERCLog(sub.Body)
	case SubSectionDevstat:
		return p.parseDevstat(sub.Body)
	case SubSectionPhyLog:
		return p.parsePhyLog(sub.Body)
	}
	return structureError(sub.Kind, firstLine(sub.Body), "unknown subsection")
}

func (p *TextParser) enter(state ParserState, sub SubSection) {
	if p.state != state || p.sub != sub {
		log.Debug().Str("state", state.String()).Str("subsection", sub.String()).Msg("text parser transition")
	}
	p.state, p.sub = state, sub
}

func (p *TextParser) fail(err error) {
	p.err = err
	p.state = StateFailed
	log.Debug().Err(err).Msg("text parser failed")
}

// State returns the current state of the parser.
func (p *TextParser) State() ParserState {
	return p.state
}

// Err returns the error of the last parse, nil on success.
func (p *TextParser) Err() error {
	return p.err
}

// ErrorMsg returns the displayable error message, empty on success.
func (p *TextParser) ErrorMsg() string {
	if p.err == nil {
		return ""
	}
	return p.err.Error()
}

// DataFull returns the verbatim input of the last parse.
func (p *TextParser) DataFull() string {
	return p.full
}

// DataSectionInfo returns the text of the info sections.
func (p *TextParser) DataSectionInfo() string {
	return strings.Join(p.info, "\n")
}

// DataSectionData returns the text of the data sections.
func (p *TextParser) DataSectionData() string {
	return strings.Join(p.data, "\n")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
