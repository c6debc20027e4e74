// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Publisher is the part of *nats.Conn the producer needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// convertToNatsEvent converts a DiskSummary to a NatsEvent
func convertToNatsEvent(summary DiskSummary, cfg *DiskHealthReportConfig) NatsEvent {
	details := make(map[string]string)

	severity := "info"
	eventType := "health"

	details["SmartctlVersion"] = summary.SmartctlVersion
	details["Strategy"] = summary.Strategy
	details["Properties"] = fmt.Sprintf("%d", summary.PropertyCount)
	if summary.DeviceInfo != nil {
		details["Model"] = summary.DeviceInfo.DeviceModel
		details["SerialNumber"] = summary.DeviceInfo.SerialNumber
		details["Media"] = summary.DeviceInfo.Media
	}
	if summary.HealthStatus != nil {
		details["HealthPassed"] = fmt.Sprintf("%t", *summary.HealthStatus)
	}
	if summary.TemperatureCelsius != nil {
		details["TemperatureCelsius"] = fmt.Sprintf("%d", *summary.TemperatureCelsius)
	}
	if summary.ReallocatedSectors != nil {
		details["ReallocatedSectors"] = fmt.Sprintf("%d", *summary.ReallocatedSectors)
	}
	if summary.PendingSectors != nil {
		details["PendingSectors"] = fmt.Sprintf("%d", *summary.PendingSectors)
	}
	if summary.PowerOnHours != nil {
		details["PowerOnHours"] = fmt.Sprintf("%d", *summary.PowerOnHours)
	}
	if summary.SSDLifeUsed != nil {
		details["SSDLifeUsed"] = fmt.Sprintf("%d", *summary.SSDLifeUsed)
	}
	if len(summary.Capabilities) > 0 {
		details["Capabilities"] = strings.Join(summary.Capabilities, ",")
	}
	for errorType, count := range summary.ErrorCounts {
		details["errors/"+errorType] = fmt.Sprintf("%d", count)
	}
	for attrName, attr := range summary.Attributes {
		details["attribute/"+attrName] = fmt.Sprintf("%d", attr.RawValue)
	}

	alerts := checkAndSetThresholds(details, summary, cfg, &severity, &eventType)

	if summary.ParseError != "" {
		details["ParseError"] = summary.ParseError
		if severity == "info" {
			severity = "warning"
			eventType = "parse_error"
		}
	}

	return NatsEvent{
		ID:         uuid.New().String(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		NodeName:   summary.NodeName,
		InstanceID: summary.InstanceID,
		Device:     summary.Device,
		EventType:  eventType,
		Severity:   severity,
		Message:    generateMessage(alerts, summary.ParseError),
		Details:    details,
	}
}

// checkAndSetThresholds checks critical SMART values against thresholds,
// annotates details and raises severity. It returns the exceeded detail keys
// in order of importance.
func checkAndSetThresholds(details map[string]string, summary DiskSummary, cfg *DiskHealthReportConfig, severity *string, eventType *string) []string {
	var alerts []string
	raise := func(level, kind string) {
		if *severity != "critical" {
			*severity = level
			*eventType = kind
		}
	}

	if summary.HealthStatus != nil && !*summary.HealthStatus {
		details["HealthPassed"] = "false (Critical: drive reports failing health)"
		alerts = append(alerts, "HealthPassed")
		raise("critical", "health_alert")
	}

	if summary.PendingSectors != nil && *summary.PendingSectors > cfg.PendingSectorsThreshold {
		details["PendingSectors"] = fmt.Sprintf("%d (Warning: Exceeds threshold of %d)", *summary.PendingSectors, cfg.PendingSectorsThreshold)
		alerts = append(alerts, "PendingSectors")
		raise("warning", "health_alert")
	}

	if summary.ReallocatedSectors != nil && *summary.ReallocatedSectors > cfg.ReallocatedSectorsThreshold {
		details["ReallocatedSectors"] = fmt.Sprintf("%d (Warning: Exceeds threshold of %d)", *summary.ReallocatedSectors, cfg.ReallocatedSectorsThreshold)
		alerts = append(alerts, "ReallocatedSectors")
		raise("warning", "health_alert")
	}

	if summary.TemperatureCelsius != nil && *summary.TemperatureCelsius > cfg.TemperatureThreshold {
		details["TemperatureCelsius"] = fmt.Sprintf("%d (Warning: Exceeds threshold of %d)", *summary.TemperatureCelsius, cfg.TemperatureThreshold)
		alerts = append(alerts, "TemperatureCelsius")
		raise("warning", "temperature_alert")
	}

	if summary.SSDLifeUsed != nil && *summary.SSDLifeUsed > cfg.LifetimeUsedThreshold {
		details["SSDLifeUsed"] = fmt.Sprintf("%d%% (Warning: Exceeds threshold of %d%%)", *summary.SSDLifeUsed, cfg.LifetimeUsedThreshold)
		alerts = append(alerts, "SSDLifeUsed")
		raise("critical", "lifetime_alert")
	}

	return alerts
}

// generateMessage generates a summary message from the first exceeded
// threshold.
func generateMessage(alerts []string, parseError string) string {
	if len(alerts) > 0 {
		switch alerts[0] {
		case "HealthPassed":
			return "SMART overall-health self-assessment failed."
		case "PendingSectors":
			return "SMART data indicates potential drive issues (pending sectors)."
		case "ReallocatedSectors":
			return "SMART data indicates potential drive issues (reallocated sectors)."
		case "TemperatureCelsius":
			return "Drive temperature exceeds threshold."
		case "SSDLifeUsed":
			return "SMART data indicates SSD nearing end of life."
		}
	}
	if parseError != "" {
		return "smartctl report could only be parsed partially."
	}
	return "SMART data collected successfully."
}

// PublishToNATS publishes one event per summary.
func PublishToNATS(summaries []DiskSummary, nc Publisher, subject string, cfg *DiskHealthReportConfig) error {
	for _, summary := range summaries {
		event := convertToNatsEvent(summary, cfg)

		eventJSON, err := json.Marshal(event)
		if err != nil {
			return err
		}

		if err := nc.Publish(subject, eventJSON); err != nil {
			return err
		}
	}

	return nil
}
