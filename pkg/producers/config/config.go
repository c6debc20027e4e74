// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type GlobalConfig struct {
	NatsURL    string `mapstructure:"nats_url"`
	NodeName   string `mapstructure:"node_name"`
	InstanceID string `mapstructure:"instance_id"`
	DiskType   string `mapstructure:"disk_type"`
	Strategy   string `mapstructure:"strategy"`
}

type ProducerConfig struct {
	Name     string                 `mapstructure:"name"`
	Type     string                 `mapstructure:"type"`
	Settings map[string]interface{} `mapstructure:"settings"`
}

type Config struct {
	Global    GlobalConfig     `mapstructure:"global"`
	Producers []ProducerConfig `mapstructure:"producers"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	err := v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &config, nil
}

func GetStringSetting(settings map[string]interface{}, key, defaultValue string) string {
	if value, ok := settings[key].(string); ok {
		return value
	}
	return defaultValue
}

func GetIntSetting(settings map[string]interface{}, key string, defaultValue int) int {
	switch value := settings[key].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case float64:
		return int(value)
	}
	return defaultValue
}

func GetInt64Setting(settings map[string]interface{}, key string, defaultValue int64) int64 {
	switch value := settings[key].(type) {
	case int:
		return int64(value)
	case int64:
		return value
	case float64:
		return int64(value)
	}
	return defaultValue
}

func GetBoolSetting(settings map[string]interface{}, key string, defaultValue bool) bool {
	if value, ok := settings[key].(bool); ok {
		return value
	}
	return defaultValue
}

func GetStringSliceSetting(settings map[string]interface{}, key string, defaultValue []string) []string {
	if value, ok := settings[key].([]interface{}); ok {
		var result []string
		for _, v := range value {
			if str, ok := v.(string); ok {
				result = append(result, str)
			}
		}
		return result
	}
	return defaultValue
}
