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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantward/qw-api/calendar"
	"github.com/quantward/qw-api/common"
	"github.com/quantward/qw-api/database"
	"github.com/quantward/qw-api/jwks"
	"github.com/quantward/qw-api/middleware"
	"github.com/quantward/qw-api/observability/opentelemetry"
	"github.com/quantward/qw-api/router"

	"github.com/rs/zerolog/log"
)

func init() {
	viper.BindEnv("server.port", "PORT")
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the qw-api server",
	Long:  `Run HTTP server that implements the Quantward valuation API`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		common.SetupLogging()
		common.SetupCache()
		log.Info().Msg("initialized logging")

		if viper.GetString("otlp.endpoint") != "" {
			shutdown, err := opentelemetry.Setup()
			if err != nil {
				log.Fatal().Err(err).Msg("could not initialize tracing")
			}
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("could not shutdown tracing")
				}
			}()
		}

		// setup database and holiday calendars
		if err := database.Connect(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not connect to database")
		}
		if err := calendar.LoadHolidays(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not load market holidays")
		}

		// refresh holiday calendars daily
		scheduler := gocron.NewScheduler(common.GetTimezone())
		scheduler.Every(1).Day().At("01:00").Do(func() {
			if err := calendar.LoadHolidays(context.Background()); err != nil {
				log.Error().Err(err).Msg("could not refresh market holidays")
			}
		})
		scheduler.StartAsync()

		app := fiber.New()

		// shutdown cleanly on interrupt
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt)
		go func() {
			sig := <-quit
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			if err := app.Shutdown(); err != nil {
				log.Fatal().Err(err).Msg("could not shutdown server")
			}
		}()

		app.Use(cors.New(cors.Config{
			AllowOrigins: viper.GetString("server.allowed_origins"),
			AllowHeaders: "*",
			AllowMethods: "GET,POST,HEAD",
		}))
		app.Use(middleware.NewLogger())

		jwksAutoRefresh, jwksURL := jwks.SetupJWKS()
		router.SetupRoutes(app, jwksAutoRefresh, jwksURL)

		if err := app.Listen(":" + viper.GetString("server.port")); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
	},
}
