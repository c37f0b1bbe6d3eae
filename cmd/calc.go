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
	"time"

	"github.com/goccy/go-json"
	"github.com/quantward/qw-api/calendar"
	"github.com/quantward/qw-api/common"
	"github.com/quantward/qw-api/database"
	"github.com/quantward/qw-api/pricing"
	"github.com/quantward/qw-api/risk"
	"github.com/rs/zerolog/log"

	"github.com/spf13/cobra"
)

var (
	calcStartDate string
	calcEndDate   string
	calcCalendars []string
	calcLocation  string
	calcMeasures  []string
	calcUseCache  bool
	calcTerms     string
)

func init() {
	calcCmd.Flags().StringVar(&calcStartDate, "start", "", "start date (YYYY-MM-DD)")
	calcCmd.Flags().StringVar(&calcEndDate, "end", "", "end date (YYYY-MM-DD); defaults to today")
	calcCmd.Flags().StringSliceVar(&calcCalendars, "calendars", []string{}, "holiday calendars (NYC, LDN, HKG)")
	calcCmd.Flags().StringVar(&calcLocation, "location", calendar.LDN, "market data location")
	calcCmd.Flags().StringSliceVar(&calcMeasures, "measures", []string{"Price"}, "risk measures to compute")
	calcCmd.Flags().BoolVar(&calcUseCache, "use-cache", false, "store results in the pricing cache")
	calcCmd.Flags().StringVar(&calcTerms, "terms", "{}", "contract terms as JSON")

	rootCmd.AddCommand(calcCmd)
}

var calcCmd = &cobra.Command{
	Use:        "calc [flags] AssetID AssetType",
	Short:      "Value an instrument over a range of dates",
	Args:       cobra.MinimumNArgs(2),
	ArgAliases: []string{"AssetID", "AssetType"},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		common.SetupLogging()
		common.SetupCache()

		if err := database.Connect(ctx); err != nil {
			log.Warn().Err(err).Msg("could not connect to database; holiday calendars unavailable")
		} else if err := calendar.LoadHolidays(ctx); err != nil {
			log.Warn().Err(err).Msg("could not load market holidays")
		}

		start, err := time.Parse("2006-01-02", calcStartDate)
		if err != nil {
			log.Fatal().Err(err).Str("StartDate", calcStartDate).Msg("cannot parse start date")
		}

		cfg := &pricing.HistoricalContextConfig{
			Start:              start,
			Calendars:          calcCalendars,
			MarketDataLocation: calcLocation,
			UseCache:           calcUseCache,
		}
		if calcEndDate != "" {
			if cfg.End, err = time.Parse("2006-01-02", calcEndDate); err != nil {
				log.Fatal().Err(err).Str("EndDate", calcEndDate).Msg("cannot parse end date")
			}
		}

		hc, err := pricing.NewHistoricalContext(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("could not construct historical context")
		}

		var terms map[string]string
		if err := json.Unmarshal([]byte(calcTerms), &terms); err != nil {
			log.Fatal().Err(err).Msg("could not unmarshal contract terms")
		}

		measures := make([]risk.Measure, 0, len(calcMeasures))
		for _, name := range calcMeasures {
			measures = append(measures, risk.MeasureFromName(name))
		}

		instrument := &pricing.Instrument{ID: args[0], Type: args[1], Terms: terms}
		result, err := hc.CalcSync(ctx, instrument, measures...)
		if err != nil {
			log.Fatal().Err(err).Msg("historical valuation failed")
		}

		switch val := result.(type) {
		case *risk.ErrorValue:
			fmt.Printf("valuation failed on every date: %s\n", val.Reason)
		case *risk.SeriesResult:
			fmt.Println(val.DataFrame(measures[0].Name))
		case risk.MultiMeasureResult:
			df, err := val.DataFrame()
			if err != nil {
				log.Fatal().Err(err).Msg("could not render result")
			}
			fmt.Println(df)
		}
	},
}
