// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"
	"os"

	"github.com/quantward/qw-api/common"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Valuation engine
	viper.BindEnv("engine.url", "QW_ENGINE_URL")
	rootCmd.PersistentFlags().String("engine-url", "", "Valuation engine base URL")
	viper.BindPFlag("engine.url", rootCmd.PersistentFlags().Lookup("engine-url"))

	viper.BindEnv("engine.timeout", "QW_ENGINE_TIMEOUT")

	// Auth
	viper.BindEnv("auth.jwks_url", "QW_JWKS_URL")
	rootCmd.PersistentFlags().String("jwks-url", "", "JWKS URL used to verify API tokens")
	viper.BindPFlag("auth.jwks_url", rootCmd.PersistentFlags().Lookup("jwks-url"))

	// Database
	viper.BindEnv("database.url", "DATABASE_URL")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")
	viper.BindPFlag("database.url", rootCmd.PersistentFlags().Lookup("database-url"))

	// Cache
	viper.BindEnv("cache.redis_url", "QW_REDIS_URL")
	rootCmd.PersistentFlags().String("redis-url", "", "Redis connection string for the shared pricing cache")
	viper.BindPFlag("cache.redis_url", rootCmd.PersistentFlags().Lookup("redis-url"))
	viper.SetDefault("cache.local_size", 1024)
	viper.SetDefault("cache.ttl", 86400)

	// Logging configuration
	viper.BindEnv("log.level", "QW_LOG_LEVEL")
	rootCmd.PersistentFlags().String("log-level", "warning", "Logging level")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	viper.BindEnv("log.report_caller", "QW_LOG_REPORT_CALLER")
	rootCmd.PersistentFlags().Bool("log-report-caller", false, "Log function name that called log statement")
	viper.BindPFlag("log.report_caller", rootCmd.PersistentFlags().Lookup("log-report-caller"))

	viper.BindEnv("log.output", "QW_LOG_OUTPUT")
	rootCmd.PersistentFlags().String("log-output", "stdout", "Write logs to specified output one of: file path, `stdout`, or `stderr`")
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))

	// Tracing
	viper.BindEnv("otlp.endpoint", "OTLP_ENDPOINT")
	rootCmd.PersistentFlags().String("otlp-endpoint", "", "OTLP trace collector endpoint")
	viper.BindPFlag("otlp.endpoint", rootCmd.PersistentFlags().Lookup("otlp-endpoint"))
}

var rootCmd = &cobra.Command{
	Use:     "qwapi",
	Version: common.CurrentVersion.String(),
	Short:   "Quantward historical valuation service",
	Long:    `A service that values instruments and risk measures over ranges of historical dates.`,
}

// Execute runs the requested command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
