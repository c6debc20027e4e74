// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/cobaltcore-dev/smartscope/pkg/producers/diskhealthreport"
)

// DiskHealthReportSettings builds the report producer config from producer
// settings, falling back to the global section and then to the defaults.
func DiskHealthReportSettings(producer ProducerConfig, globalConfig GlobalConfig) diskhealthreport.DiskHealthReportConfig {
	def := diskhealthreport.DefaultConfig()
	s := producer.Settings

	natsURL := GetStringSetting(s, "nats_url", globalConfig.NatsURL)
	nodeName := GetStringSetting(s, "node_name", globalConfig.NodeName)
	if nodeName == "" {
		nodeName = diskhealthreport.DefaultNodeName()
	}
	diskType := GetStringSetting(s, "disk_type", globalConfig.DiskType)
	if diskType == "" {
		diskType = def.DiskType
	}
	strategy := GetStringSetting(s, "strategy", globalConfig.Strategy)
	if strategy == "" {
		strategy = def.Strategy
	}

	return diskhealthreport.DiskHealthReportConfig{
		ReportDir:                   GetStringSetting(s, "report_dir", ""),
		Patterns:                    GetStringSliceSetting(s, "patterns", def.Patterns),
		DiskType:                    diskType,
		Strategy:                    strategy,
		ScanOnStart:                 GetBoolSetting(s, "scan_on_start", def.ScanOnStart),
		SettleDelayMs:               GetIntSetting(s, "settle_delay_ms", def.SettleDelayMs),
		NatsURL:                     natsURL,
		NatsSubject:                 GetStringSetting(s, "nats_subject", def.NatsSubject),
		UseNats:                     natsURL != "",
		Prometheus:                  GetBoolSetting(s, "prometheus", false),
		PrometheusPort:              GetIntSetting(s, "prometheus_port", def.PrometheusPort),
		NodeName:                    nodeName,
		InstanceID:                  GetStringSetting(s, "instance_id", globalConfig.InstanceID),
		PendingSectorsThreshold:     GetInt64Setting(s, "pending_sectors_threshold", def.PendingSectorsThreshold),
		ReallocatedSectorsThreshold: GetInt64Setting(s, "reallocated_sectors_threshold", def.ReallocatedSectorsThreshold),
		TemperatureThreshold:        GetInt64Setting(s, "temperature_threshold", def.TemperatureThreshold),
		LifetimeUsedThreshold:       GetInt64Setting(s, "lifetime_used_threshold", def.LifetimeUsedThreshold),
	}
}

func StartProducers(producer ProducerConfig, globalConfig GlobalConfig, wg *sync.WaitGroup) {
	defer wg.Done()

	switch producer.Type {
	case "disk_health_report":
		settings := DiskHealthReportSettings(producer, globalConfig)
		if err := settings.Validate(); err != nil {
			log.Error().Err(err).Str("producer", producer.Name).Msg("invalid disk health report settings")
			return
		}
		log.Info().Str("producer", producer.Name).Msg("--- disk health report ---")
		diskhealthreport.StartMonitoring(settings)
	default:
		log.Warn().Msgf("unknown producer type: %s", producer.Type)
	}
}
