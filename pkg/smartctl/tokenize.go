// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"strconv"
	"strings"
	"unicode"
)

// normalizeNewlines converts \r\n and lone \r to \n.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isIndented(s string) bool {
	return s != "" && (s[0] == ' ' || s[0] == '\t')
}

// splitLabel splits "Label:   value" at the first colon. The label must be
// non-empty and must not start with whitespace.
func splitLabel(line string) (label, value string, ok bool) {
	if isIndented(line) {
		return "", "", false
	}
	idx := strings.IndexByte(line, ':')
	if idx <= 0 {
		return "", "", false
	}
	label = strings.TrimSpace(line[:idx])
	if label == "" {
		return "", "", false
	}
	return label, strings.TrimSpace(line[idx+1:]), true
}

// splitColumns splits on runs of two or more blanks, which is how smartctl
// separates columns whose values may contain single spaces.
func splitColumns(s string) []string {
	var cols []string
	s = strings.TrimSpace(s)
	for s != "" {
		idx := indexColumnGap(s)
		if idx < 0 {
			cols = append(cols, s)
			break
		}
		cols = append(cols, s[:idx])
		s = strings.TrimLeft(s[idx:], " \t")
	}
	return cols
}

func indexColumnGap(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '\t' {
			return i
		}
		if s[i] == ' ' && (s[i+1] == ' ' || s[i+1] == '\t') {
			return i
		}
	}
	return -1
}

// parseHexOrDec parses "0x1f" as hex and anything else as decimal.
func parseHexOrDec(s string) (int64, bool, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err := strconv.ParseInt(s[2:], 16, 64)
		return v, true, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, false, err
}

// leadingInt parses the integer prefix of s ("94571248", "34 (Min/Max 20/45)",
// "1,000,204,886,016 bytes"). Thousands separators are skipped.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if r == ',' && b.Len() > 0 {
			continue
		}
		if r == '-' && i == 0 {
			b.WriteRune(r)
			continue
		}
		break
	}
	if b.Len() == 0 || b.String() == "-" {
		return 0, false
	}
	v, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// optInt parses a normalized attribute value; "---" and similar yield nil.
func optInt(s string) (*int, error) {
	if strings.Trim(s, "-") == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// joinSentences merges wrapped description lines into sentences, flushing
// whenever a line ends with a period.
func joinSentences(lines []string) []string {
	var out []string
	var cur []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		cur = append(cur, l)
		if strings.HasSuffix(l, ".") {
			out = append(out, strings.Join(cur, " "))
			cur = nil
		}
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, " "))
	}
	return out
}

// genericName lowercases a label and replaces separators with underscores:
// "Power-on Hours" -> "power-on_hours".
func genericName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '/' || r == '(' || r == ')' || r == ':'
	}), "_")
}
