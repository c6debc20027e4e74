// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Strategy selects how a report is parsed.
type Strategy int

const (
	StrategyAuto Strategy = iota
	StrategyJSON
	StrategyText
)

// Minimum smartctl versions per strategy. Tokens are compared per dotted
// component, so 7.10 is newer than 7.3.
const (
	MinimumTextVersion = 5.43
	MinimumJSONVersion = 7.3
)

// ToolName is the program name expected at the start of the version banner.
const ToolName = "smartctl"

func (s Strategy) String() string {
	switch s {
	case StrategyJSON:
		return "json"
	case StrategyText:
		return "text"
	default:
		return "auto"
	}
}

func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStrategy accepts "auto", "json" and "text".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return StrategyAuto, nil
	case "json":
		return StrategyJSON, nil
	case "text":
		return StrategyText, nil
	}
	return StrategyAuto, fmt.Errorf("unknown parser strategy %q", s)
}

// Version is the result of banner detection.
type Version struct {
	// Token is the bare version, e.g. "7.3".
	Token string `json:"token"`
	// Full is the banner text after the tool name, e.g. "7.3 2022-02-28 r5338".
	Full string `json:"full"`
}

// Accepted banner forms:
//
//	smartctl version 5.37
//	smartctl 5.39
//	smartctl 5.39 2009-06-03 20:10
//	smartctl 5.39 2009-08-08 r2873
//	smartctl 7.3 (build date Feb 11 2022)
var versionBannerRe = regexp.MustCompile(`(?mi)^` + ToolName +
	` (?:version )?(([0-9][^ \t\n\r]*)(?: [0-9 r:-]+)?(?: \(build date [^)\r\n]*\))?)`)

// ParseVersion finds the first smartctl version banner in s. Unlike the other
// functions of this package it accepts any newline convention.
func ParseVersion(s string) (Version, error) {
	m := versionBannerRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, ErrVersionNotFound
	}
	return Version{
		Token: strings.TrimSpace(m[2]),
		Full:  strings.TrimSpace(m[1]),
	}, nil
}

// VersionFromJSON builds a version token from the smartctl.version array of
// JSON output, e.g. [7, 3] -> "7.3".
func VersionFromJSON(parts []int) (Version, error) {
	if len(parts) == 0 {
		return Version{}, ErrVersionNotFound
	}
	strs := make([]string, 0, len(parts))
	for _, p := range parts {
		strs = append(strs, strconv.Itoa(p))
	}
	token := strs[0]
	if len(strs) > 1 {
		token += "." + strings.Join(strs[1:], "")
	}
	return Version{Token: token, Full: strings.Join(strs, ".")}, nil
}

// NumericVersion parses a version token as a float. Only digits and dots are
// accepted, so "7.4-pre" or "1e3" are rejected.
func NumericVersion(token string) (float64, bool) {
	if token == "" {
		return 0, false
	}
	for _, r := range token {
		if (r < '0' || r > '9') && r != '.' {
			return 0, false
		}
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsVersionSupported reports whether token meets the minimum version of the
// given strategy. StrategyAuto accepts either threshold.
func IsVersionSupported(strategy Strategy, token string) bool {
	if _, ok := NumericVersion(token); !ok {
		return false
	}
	switch strategy {
	case StrategyJSON:
		return versionAtLeast(token, MinimumJSONVersion)
	case StrategyText:
		return versionAtLeast(token, MinimumTextVersion)
	default:
		return versionAtLeast(token, MinimumTextVersion) || versionAtLeast(token, MinimumJSONVersion)
	}
}

// versionAtLeast compares a digits-and-dots token with a minimum, component
// by component. Missing components count as zero.
func versionAtLeast(token string, minimum float64) bool {
	have := strings.Split(token, ".")
	want := strings.Split(formatVersion(minimum), ".")
	for i := 0; i < len(have) || i < len(want); i++ {
		h, w := versionPart(have, i), versionPart(want, i)
		if h != w {
			return h > w
		}
	}
	return true
}

func versionPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(parts[i])
	return n
}

// DetectSupportedStrategy returns the preferred strategy for a version,
// JSON first.
func DetectSupportedStrategy(token string) (Strategy, bool) {
	if IsVersionSupported(StrategyJSON, token) {
		return StrategyJSON, true
	}
	if IsVersionSupported(StrategyText, token) {
		return StrategyText, true
	}
	return StrategyAuto, false
}
