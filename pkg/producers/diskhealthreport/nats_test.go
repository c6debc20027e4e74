// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

func int64p(v int64) *int64 { return &v }
func boolp(v bool) *bool    { return &v }

func healthySummary() DiskSummary {
	return DiskSummary{
		NodeName:           "node-1",
		InstanceID:         "i-123",
		Device:             "sda",
		SmartctlVersion:    "7.3",
		Strategy:           "text",
		PropertyCount:      42,
		DeviceInfo:         &DeviceInfo{DeviceModel: "ST4000NM0035-1V4107", SerialNumber: "ZC1A2B3C", Media: "hdd"},
		HealthStatus:       boolp(true),
		TemperatureCelsius: int64p(34),
		ReallocatedSectors: int64p(0),
		PendingSectors:     int64p(0),
		PowerOnHours:       int64p(22188),
		ErrorCounts:        map[string]int64{"udma_crc_errors": 0},
		Capabilities:       []string{"self_test", "sct_status"},
		Attributes: map[string]SmartAttribute{
			"reallocated_sector_ct": {ID: 5, RawValue: 0},
		},
	}
}

func TestConvertToNatsEventHealthy(t *testing.T) {
	cfg := DefaultConfig()
	event := convertToNatsEvent(healthySummary(), &cfg)

	_, err := uuid.Parse(event.ID)
	assert.NoError(t, err)
	_, err = time.Parse(time.RFC3339, event.Timestamp)
	assert.NoError(t, err)

	assert.Equal(t, "sda", event.Device)
	assert.Equal(t, "node-1", event.NodeName)
	assert.Equal(t, "i-123", event.InstanceID)
	assert.Equal(t, "info", event.Severity)
	assert.Equal(t, "health", event.EventType)
	assert.Equal(t, "SMART data collected successfully.", event.Message)
	assert.Equal(t, "34", event.Details["TemperatureCelsius"])
	assert.Equal(t, "true", event.Details["HealthPassed"])
	assert.Equal(t, "self_test,sct_status", event.Details["Capabilities"])
	assert.Equal(t, "0", event.Details["attribute/reallocated_sector_ct"])
	assert.Equal(t, "0", event.Details["errors/udma_crc_errors"])
	assert.Equal(t, "42", event.Details["Properties"])
}

func TestConvertToNatsEventThresholds(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		mutate    func(*DiskSummary)
		severity  string
		eventType string
		message   string
		detail    string
		note      string
	}{
		{
			name:      "pending sectors",
			mutate:    func(s *DiskSummary) { s.PendingSectors = int64p(4) },
			severity:  "warning",
			eventType: "health_alert",
			message:   "SMART data indicates potential drive issues (pending sectors).",
			detail:    "PendingSectors",
			note:      "Exceeds threshold",
		},
		{
			name:      "reallocated sectors",
			mutate:    func(s *DiskSummary) { s.ReallocatedSectors = int64p(11) },
			severity:  "warning",
			eventType: "health_alert",
			message:   "SMART data indicates potential drive issues (reallocated sectors).",
			detail:    "ReallocatedSectors",
			note:      "Exceeds threshold",
		},
		{
			name:      "temperature",
			mutate:    func(s *DiskSummary) { s.TemperatureCelsius = int64p(61) },
			severity:  "warning",
			eventType: "temperature_alert",
			message:   "Drive temperature exceeds threshold.",
			detail:    "TemperatureCelsius",
			note:      "Exceeds threshold",
		},
		{
			name:      "ssd life",
			mutate:    func(s *DiskSummary) { s.SSDLifeUsed = int64p(95) },
			severity:  "critical",
			eventType: "lifetime_alert",
			message:   "SMART data indicates SSD nearing end of life.",
			detail:    "SSDLifeUsed",
			note:      "Exceeds threshold",
		},
		{
			name:      "failing health",
			mutate:    func(s *DiskSummary) { s.HealthStatus = boolp(false) },
			severity:  "critical",
			eventType: "health_alert",
			message:   "SMART overall-health self-assessment failed.",
			detail:    "HealthPassed",
			note:      "Critical",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := healthySummary()
			tt.mutate(&s)
			event := convertToNatsEvent(s, &cfg)
			assert.Equal(t, tt.severity, event.Severity)
			assert.Equal(t, tt.eventType, event.EventType)
			assert.Equal(t, tt.message, event.Message)
			assert.Contains(t, event.Details[tt.detail], tt.note)
		})
	}
}

func TestConvertToNatsEventCriticalWins(t *testing.T) {
	cfg := DefaultConfig()
	s := healthySummary()
	s.SSDLifeUsed = int64p(90)
	s.TemperatureCelsius = int64p(70)

	event := convertToNatsEvent(s, &cfg)
	assert.Equal(t, "critical", event.Severity)
	assert.Equal(t, "lifetime_alert", event.EventType)
	assert.Equal(t, "Drive temperature exceeds threshold.", event.Message)
}

func TestConvertToNatsEventParseError(t *testing.T) {
	cfg := DefaultConfig()
	s := healthySummary()
	s.ParseError = "cannot parse capabilities subsection"

	event := convertToNatsEvent(s, &cfg)
	assert.Equal(t, "warning", event.Severity)
	assert.Equal(t, "parse_error", event.EventType)
	assert.Equal(t, "smartctl report could only be parsed partially.", event.Message)
	assert.Equal(t, s.ParseError, event.Details["ParseError"])
}

func TestPublishToNATS(t *testing.T) {
	cfg := DefaultConfig()
	pub := &recordingPublisher{}
	second := healthySummary()
	second.Device = "sdb"

	require.NoError(t, PublishToNATS([]DiskSummary{healthySummary(), second}, pub, cfg.NatsSubject, &cfg))
	require.Len(t, pub.payloads, 2)
	assert.Equal(t, []string{"disk.health.report", "disk.health.report"}, pub.subjects)

	var event NatsEvent
	require.NoError(t, json.Unmarshal(pub.payloads[1], &event))
	assert.Equal(t, "sdb", event.Device)
	assert.Equal(t, "health", event.EventType)
}

func TestPublishToNATSError(t *testing.T) {
	cfg := DefaultConfig()
	pub := &recordingPublisher{err: errors.New("connection closed")}
	err := PublishToNATS([]DiskSummary{healthySummary()}, pub, cfg.NatsSubject, &cfg)
	assert.EqualError(t, err, "connection closed")
}
