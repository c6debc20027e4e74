// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"errors"
	"fmt"
)

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	KindStructure ErrorKind = iota
	KindVersionNotFound
	KindVersionUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindVersionNotFound:
		return "version_not_found"
	case KindVersionUnsupported:
		return "version_unsupported"
	default:
		return "structure"
	}
}

var (
	ErrVersionNotFound    = errors.New("cannot get smartctl version information")
	ErrVersionUnsupported = errors.New("incompatible smartctl version")
)

// ParseError describes why a report could not be parsed. For structural
// errors SubSection and Line point at the offending input.
type ParseError struct {
	Kind       ErrorKind
	SubSection SubSection
	Line       string
	Msg        string
	Err        error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindVersionNotFound, KindVersionUnsupported:
		if e.Msg != "" {
			return fmt.Sprintf("%v: %s", e.Err, e.Msg)
		}
		return e.Err.Error()
	}
	where := "report"
	if e.SubSection != SubSectionNone {
		where = e.SubSection.String() + " subsection"
	}
	if e.Line != "" {
		return fmt.Sprintf("cannot parse %s: %s in line %q", where, e.Msg, e.Line)
	}
	return fmt.Sprintf("cannot parse %s: %s", where, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func structureError(sub SubSection, line, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:       KindStructure,
		SubSection: sub,
		Line:       line,
		Msg:        fmt.Sprintf(format, args...),
	}
}

func versionError(kind ErrorKind, err error, msg string) *ParseError {
	return &ParseError{Kind: kind, Err: err, Msg: msg}
}
