// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and prysm contributors
//
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cobaltcore-dev/smartscope/pkg/producers/config"
)

var configFilePath string

var producerCmd = &cobra.Command{
	Use:   "producer",
	Short: "Producer commands",
}

var useConfigCmd = &cobra.Command{
	Use:   "use-config",
	Short: "Start producers using configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configFilePath)
		if err != nil {
			log.Fatal().Err(err).Str("config", configFilePath).Msg("failed to load config")
		}

		var wg sync.WaitGroup

		for _, producer := range cfg.Producers {
			wg.Add(1)
			go config.StartProducers(producer, cfg.Global, &wg)
		}

		wg.Wait()
	},
}

func init() {
	useConfigCmd.Flags().StringVar(&configFilePath, "config", "", "Path to configuration file")
	useConfigCmd.MarkFlagRequired("config")
	producerCmd.AddCommand(useConfigCmd)

	producerCmd.AddCommand(diskHealthReportCmd)
}
