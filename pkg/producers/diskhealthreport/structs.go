// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

// DiskSummary is the per-disk digest of one parsed smartctl report.
type DiskSummary struct {
	NodeName           string                    `json:"node_name"`           // Name of the node where the drive is located
	InstanceID         string                    `json:"instance_id"`         // ID of the instance (useful in cloud environments)
	Device             string                    `json:"device"`              // Device name derived from the report file, e.g. "sda"
	ReportFile         string                    `json:"report_file"`         // Path of the parsed report
	SmartctlVersion    string                    `json:"smartctl_version"`    // Version token of the reporting smartctl
	Strategy           string                    `json:"strategy"`            // Parser used for the report (text or json)
	DeviceInfo         *DeviceInfo               `json:"device_info"`         // Identification data of the drive
	CapacityGB         float64                   `json:"capacity_gb"`         // Capacity of the drive in gigabytes
	HealthStatus       *bool                     `json:"health_status"`       // Overall health self-assessment (nil if not reported)
	TemperatureCelsius *int64                    `json:"temperature_celsius"` // Current temperature of the drive in Celsius
	ReallocatedSectors *int64                    `json:"reallocated_sectors"` // Number of reallocated sectors on the drive
	PendingSectors     *int64                    `json:"pending_sectors"`     // Number of pending sectors
	PowerOnHours       *int64                    `json:"power_on_hours"`      // Total number of hours the drive has been powered on
	SSDLifeUsed        *int64                    `json:"ssd_life_used"`       // Percentage of SSD life used
	ErrorCounts        map[string]int64          `json:"error_counts"`        // Error counters (CRC errors, logged ATA errors, failed self-tests)
	Capabilities       []string                  `json:"capabilities"`        // Derived capability flags
	Attributes         map[string]SmartAttribute `json:"attributes"`          // SMART attributes keyed by normalized name
	PropertyCount      int                       `json:"property_count"`      // Number of properties the parser produced
	ParseError         string                    `json:"parse_error,omitempty"`
}

// NatsEvent represents an event to be published to NATS
type NatsEvent struct {
	ID         string            `json:"id"`          // Unique event ID
	Timestamp  string            `json:"timestamp"`   // RFC 3339 time the event was created
	NodeName   string            `json:"node_name"`   // Name of the node where the drive is located
	InstanceID string            `json:"instance_id"` // ID of the instance (useful in cloud environments)
	Device     string            `json:"device"`      // Device identifier
	EventType  string            `json:"event_type"`  // e.g. 'health', 'health_alert', 'parse_error'
	Severity   string            `json:"severity"`    // e.g. 'info', 'warning', 'critical'
	Message    string            `json:"message"`     // Description of the event
	Details    map[string]string `json:"details"`     // Additional details, such as SMART attributes
}

type DeviceInfo struct {
	ModelFamily     string  `json:"model_family,omitempty"`
	DeviceModel     string  `json:"device_model,omitempty"`
	SerialNumber    string  `json:"serial_number,omitempty"`
	FirmwareVersion string  `json:"firmware_version,omitempty"`
	Vendor          string  `json:"vendor,omitempty"` // e.g. "Seagate", guessed from model and family
	WWN             string  `json:"wwn,omitempty"`
	Capacity        float64 `json:"capacity_gb"`
	RPM             int64   `json:"rpm,omitempty"`
	FormFactor      string  `json:"form_factor,omitempty"`
	Media           string  `json:"media"` // "hdd", "ssd" or "unknown"
}

// SmartAttribute is the numeric reading of one attribute table row. Missing
// normalized values are -1.
type SmartAttribute struct {
	ID          int    `json:"id"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Threshold   int64  `json:"threshold"`
	Value       int64  `json:"value"`
	Worst       int64  `json:"worst"`
	RawValue    int64  `json:"raw_value"`
	Failed      string `json:"when_failed,omitempty"`
}
