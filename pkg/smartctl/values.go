// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package smartctl

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is the typed payload of a Property. The set of implementations is
// closed; use a type switch to inspect it.
type Value interface {
	fmt.Stringer
	isValue()
}

type StringValue string

func (StringValue) isValue()         {}
func (v StringValue) String() string { return string(v) }

type BoolValue bool

func (BoolValue) isValue() {}
func (v BoolValue) String() string {
	if v {
		return "yes"
	}
	return "no"
}

// IntegerValue is a number with an optional unit ("bytes", "minutes", "Celsius").
type IntegerValue struct {
	Value int64  `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

func (IntegerValue) isValue() {}
func (v IntegerValue) String() string {
	if v.Unit == "" {
		return strconv.FormatInt(v.Value, 10)
	}
	return fmt.Sprintf("%d %s", v.Value, v.Unit)
}

// AttributeType is the pre-failure / old-age classification of an attribute.
type AttributeType string

const (
	AttributeTypeUnknown AttributeType = ""
	AttributeTypePrefail AttributeType = "Pre-fail"
	AttributeTypeOldAge  AttributeType = "Old_age"
)

// UpdateType tells whether an attribute is updated during normal operation.
type UpdateType string

const (
	UpdateTypeUnknown UpdateType = ""
	UpdateTypeAlways  UpdateType = "Always"
	UpdateTypeOffline UpdateType = "Offline"
)

// FailTime is the WHEN_FAILED column.
type FailTime string

const (
	FailTimeUnknown FailTime = ""
	FailTimeNone    FailTime = "-"
	FailTimeNow     FailTime = "FAILING_NOW"
	FailTimePast    FailTime = "In_the_past"
)

// Attribute is one row of the SMART attribute table. Normalized values are nil
// when the drive reports "---".
type Attribute struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Flag       string        `json:"flag"`
	Value      *int          `json:"value"`
	Worst      *int          `json:"worst"`
	Threshold  *int          `json:"threshold"`
	Type       AttributeType `json:"type"`
	Updated    UpdateType    `json:"updated"`
	WhenFailed FailTime      `json:"when_failed"`
	RawValue   string        `json:"raw_value"`
	RawInt     *int64        `json:"raw_int,omitempty"`
}

func (Attribute) isValue() {}
func (a Attribute) String() string {
	return fmt.Sprintf("%d %s value=%s worst=%s thresh=%s raw=%s",
		a.ID, a.Name, formatOptInt(a.Value), formatOptInt(a.Worst), formatOptInt(a.Threshold), a.RawValue)
}

// Capability is one "General SMART Values" entry: the parenthesized flag or
// number plus the sentences printed next to it.
type Capability struct {
	FlagValue int64           `json:"flag_value"`
	IsFlag    bool            `json:"is_flag"`
	Values    []string        `json:"values"`
	Derived   CapabilityFlags `json:"derived,omitempty"`
}

func (Capability) isValue() {}
func (c Capability) String() string {
	var b strings.Builder
	if c.IsFlag {
		fmt.Fprintf(&b, "0x%02x", c.FlagValue)
	} else {
		b.WriteString(strconv.FormatInt(c.FlagValue, 10))
	}
	if len(c.Values) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(c.Values, " "))
	}
	return b.String()
}

// Statistic is one Device Statistics row. Page headers have IsHeader set and
// no value.
type Statistic struct {
	Page     int    `json:"page"`
	Offset   int    `json:"offset"`
	Size     int    `json:"size"`
	Value    string `json:"value"`
	ValueInt *int64 `json:"value_int,omitempty"`
	Flags    string `json:"flags"`
	IsHeader bool   `json:"is_header"`
}

func (Statistic) isValue() {}
func (s Statistic) String() string {
	if s.IsHeader {
		return ""
	}
	return s.Value
}

// SelftestStatus is a coarse classification of the self-test status text.
type SelftestStatus string

const (
	SelftestStatusUnknown     SelftestStatus = "unknown"
	SelftestStatusCompleted   SelftestStatus = "completed"
	SelftestStatusInProgress  SelftestStatus = "in_progress"
	SelftestStatusAborted     SelftestStatus = "aborted"
	SelftestStatusInterrupted SelftestStatus = "interrupted"
	SelftestStatusFailed      SelftestStatus = "failed"
)

// SelftestEntry is one self-test log row.
type SelftestEntry struct {
	TestNum          int            `json:"test_num"`
	Type             string         `json:"type"`
	StatusText       string         `json:"status_text"`
	Status           SelftestStatus `json:"status"`
	RemainingPercent int            `json:"remaining_percent"`
	LifetimeHours    int64          `json:"lifetime_hours"`
	LBAOfFirstError  string         `json:"lba_of_first_error"`
}

func (SelftestEntry) isValue() {}
func (e SelftestEntry) String() string {
	return fmt.Sprintf("#%d %s: %s (%d hours)", e.TestNum, e.Type, e.StatusText, e.LifetimeHours)
}

// ErrorBlock is one entry of the ATA error log.
type ErrorBlock struct {
	ErrorNum      int      `json:"error_num"`
	LogIndex      int      `json:"log_index,omitempty"`
	LifetimeHours int64    `json:"lifetime_hours"`
	DeviceState   string   `json:"device_state"`
	ReportedTypes []string `json:"reported_types"`
	TypeMoreInfo  string   `json:"type_more_info"`
}

func (ErrorBlock) isValue() {}
func (e ErrorBlock) String() string {
	return fmt.Sprintf("Error %d at %d hours: %s %s", e.ErrorNum, e.LifetimeHours,
		strings.Join(e.ReportedTypes, ", "), e.TypeMoreInfo)
}

// SelectiveSpan is one span of the selective self-test log.
type SelectiveSpan struct {
	Span   int    `json:"span"`
	MinLBA uint64 `json:"min_lba"`
	MaxLBA uint64 `json:"max_lba"`
	Status string `json:"status"`
}

func (SelectiveSpan) isValue() {}
func (s SelectiveSpan) String() string {
	return fmt.Sprintf("span %d [%d-%d] %s", s.Span, s.MinLBA, s.MaxLBA, s.Status)
}

// DirectoryEntry is one row of the GP/SMART log directory.
type DirectoryEntry struct {
	Address     string `json:"address"`
	Access      string `json:"access"`
	ReadWrite   string `json:"read_write"`
	Size        int    `json:"size"`
	Description string `json:"description"`
}

func (DirectoryEntry) isValue() {}
func (d DirectoryEntry) String() string {
	return fmt.Sprintf("%s %s %d", d.Address, d.Description, d.Size)
}

// PhyEvent is one SATA PHY event counter.
type PhyEvent struct {
	ID          int    `json:"id"`
	Size        int    `json:"size"`
	Value       int64  `json:"value"`
	Description string `json:"description"`
}

func (PhyEvent) isValue() {}
func (e PhyEvent) String() string {
	return strconv.FormatInt(e.Value, 10)
}

// ERCSetting is an SCT Error Recovery Control timer.
type ERCSetting struct {
	Enabled     bool  `json:"enabled"`
	Deciseconds int64 `json:"deciseconds"`
}

func (ERCSetting) isValue() {}
func (e ERCSetting) String() string {
	if !e.Enabled {
		return "Disabled"
	}
	return fmt.Sprintf("%d (%.1f seconds)", e.Deciseconds, float64(e.Deciseconds)/10)
}

func formatOptInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
