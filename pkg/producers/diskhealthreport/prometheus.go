// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package diskhealthreport

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	smartAttributesGaugeVec = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "smart_attributes",
			Help: "Raw values of the SMART attributes of the disk",
		},
		[]string{"disk", "attribute", "node", "instance"},
	)

	healthGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_health_passed",
			Help: "SMART overall-health self-assessment, 1 if passed",
		},
		[]string{"disk", "node", "instance"},
	)

	temperatureGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_temperature_celsius",
			Help: "Disk temperature in Celsius",
		},
		[]string{"disk", "node", "instance"},
	)

	reallocatedSectorsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_reallocated_sectors",
			Help: "Number of reallocated sectors",
		},
		[]string{"disk", "node", "instance"},
	)

	pendingSectorsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_pending_sectors",
			Help: "Number of pending sectors",
		},
		[]string{"disk", "node", "instance"},
	)

	powerOnHoursGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_power_on_hours",
			Help: "Number of hours the disk has been powered on",
		},
		[]string{"disk", "node", "instance"},
	)

	ssdLifeUsedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ssd_life_used_percentage",
			Help: "Percentage of SSD life used",
		},
		[]string{"disk", "node", "instance"},
	)

	errorCountsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_error_counts",
			Help: "Various error counts for the disk",
		},
		[]string{"disk", "node", "instance", "error_type"},
	)

	diskCapacityGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "disk_capacity_gb",
			Help: "Capacity of the disk in GB",
		},
		[]string{"disk", "node", "instance"},
	)

	reportsParsedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartctl_reports_parsed_total",
			Help: "Number of smartctl reports parsed, by strategy and result",
		},
		[]string{"node", "strategy", "result"},
	)
)

func init() {
	// Register all metrics with Prometheus's default registry
	prometheus.MustRegister(smartAttributesGaugeVec)
	prometheus.MustRegister(healthGauge)
	prometheus.MustRegister(temperatureGauge)
	prometheus.MustRegister(reallocatedSectorsGauge)
	prometheus.MustRegister(pendingSectorsGauge)
	prometheus.MustRegister(powerOnHoursGauge)
	prometheus.MustRegister(ssdLifeUsedGauge)
	prometheus.MustRegister(errorCountsGauge)
	prometheus.MustRegister(diskCapacityGauge)
	prometheus.MustRegister(reportsParsedCounter)
}

// PublishToPrometheus sets the gauges of every summarized disk.
func PublishToPrometheus(summaries []DiskSummary) {
	for _, s := range summaries {
		labels := prometheus.Labels{
			"disk":     s.Device,
			"node":     s.NodeName,
			"instance": s.InstanceID,
		}

		result := "ok"
		if s.ParseError != "" {
			result = "error"
		}
		reportsParsedCounter.With(prometheus.Labels{
			"node":     s.NodeName,
			"strategy": s.Strategy,
			"result":   result,
		}).Inc()

		if s.HealthStatus != nil {
			v := 0.0
			if *s.HealthStatus {
				v = 1
			}
			healthGauge.With(labels).Set(v)
		}
		if s.TemperatureCelsius != nil {
			temperatureGauge.With(labels).Set(float64(*s.TemperatureCelsius))
		}
		if s.ReallocatedSectors != nil {
			reallocatedSectorsGauge.With(labels).Set(float64(*s.ReallocatedSectors))
		}
		if s.PendingSectors != nil {
			pendingSectorsGauge.With(labels).Set(float64(*s.PendingSectors))
		}
		if s.PowerOnHours != nil {
			powerOnHoursGauge.With(labels).Set(float64(*s.PowerOnHours))
		}
		if s.SSDLifeUsed != nil {
			ssdLifeUsedGauge.With(labels).Set(float64(*s.SSDLifeUsed))
		}

		diskCapacityGauge.With(labels).Set(s.CapacityGB)

		for errorType, count := range s.ErrorCounts {
			errorCountsGauge.With(prometheus.Labels{
				"disk":       s.Device,
				"node":       s.NodeName,
				"instance":   s.InstanceID,
				"error_type": errorType,
			}).Set(float64(count))
		}

		for attrName, attr := range s.Attributes {
			if attr.RawValue < 0 {
				continue
			}
			smartAttributesGaugeVec.With(prometheus.Labels{
				"disk":      s.Device,
				"attribute": attrName,
				"node":      s.NodeName,
				"instance":  s.InstanceID,
			}).Set(float64(attr.RawValue))
		}
	}
}

func StartPrometheusServer(port int) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Info().Msgf("starting prometheus metrics server on :%d", port)
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
		if err != nil {
			log.Fatal().Err(err).Msg("error starting prometheus metrics server")
		}
	}()
}
