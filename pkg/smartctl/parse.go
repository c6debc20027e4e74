// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of Parse. A failed result still carries the
// properties extracted before the failure.
type Result struct {
	Full       string     `json:"-"`
	Info       string     `json:"-"`
	Data       string     `json:"-"`
	Version    Version    `json:"version"`
	Strategy   Strategy   `json:"strategy"`
	DiskType   DiskType   `json:"-"`
	Properties []Property `json:"properties"`
	Err        error      `json:"-"`
}

// OK reports whether parsing succeeded.
func (r *Result) OK() bool {
	return r.Err == nil
}

// ErrorMessage returns a message suitable for display, empty on success.
func (r *Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

type reportParser interface {
	ParseFull(full string, diskType DiskType) error
	Properties() []Property
	DataSectionInfo() string
	DataSectionData() string
}

// isJSONReport sniffs the report format.
func isJSONReport(report string) bool {
	return strings.HasPrefix(strings.TrimSpace(report), "{")
}

// Parse checks the smartctl version of a captured report, then parses it
// with the requested strategy. StrategyAuto picks JSON for JSON input and
// text otherwise. Version problems are reported before any section is
// parsed.
func Parse(report string, diskType DiskType, strategy Strategy) *Result {
	res := &Result{Full: report, DiskType: diskType}
	if strategy == StrategyAuto {
		strategy = StrategyText
		if isJSONReport(report) {
			strategy = StrategyJSON
		}
	}
	res.Strategy = strategy

	v, err := reportVersion(report, strategy)
	if err != nil {
		res.Err = err
		return res
	}
	res.Version = v
	if !IsVersionSupported(strategy, v.Token) {
		minimum := MinimumTextVersion
		if strategy == StrategyJSON {
			minimum = MinimumJSONVersion
		}
		res.Err = versionError(KindVersionUnsupported, ErrVersionUnsupported,
			fmt.Sprintf("smartctl %s is older than %s for the %s parser", v.Token, formatVersion(minimum), strategy))
		return res
	}

	var p reportParser
	if strategy == StrategyJSON {
		p = NewJSONParser()
	} else {
		p = NewTextParser()
	}
	res.Err = p.ParseFull(report, diskType)
	res.Properties = p.Properties()
	res.Info = p.DataSectionInfo()
	res.Data = p.DataSectionData()

	log.Debug().
		Str("version", v.Token).
		Str("strategy", strategy.String()).
		Int("properties", len(res.Properties)).
		Bool("ok", res.OK()).
		Msg("parsed smartctl report")
	return res
}

// DetectVersion returns the smartctl version of a text or JSON report, the
// same way Parse does before parsing.
func DetectVersion(report string) (Version, error) {
	strategy := StrategyText
	if isJSONReport(report) {
		strategy = StrategyJSON
	}
	return reportVersion(report, strategy)
}

func reportVersion(report string, strategy Strategy) (Version, error) {
	if strategy != StrategyJSON {
		v, err := ParseVersion(report)
		if err != nil {
			return v, versionError(KindVersionNotFound, err, "")
		}
		return v, nil
	}

	var head struct {
		Smartctl jsonSmartctl `json:"smartctl"`
	}
	if err := json.Unmarshal([]byte(report), &head); err != nil {
		return Version{}, structureError(SubSectionNone, "", "invalid JSON: %v", err)
	}
	v, err := jsonVersion(head.Smartctl)
	if err != nil {
		return v, versionError(KindVersionNotFound, err, "")
	}
	return v, nil
}

func formatVersion(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
