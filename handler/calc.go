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

package handler

import (
	"errors"
	"math"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/quantward/qw-api/dataframe"
	"github.com/quantward/qw-api/observability/opentelemetry"
	"github.com/quantward/qw-api/pricing"
	"github.com/quantward/qw-api/risk"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

type CalcRequest struct {
	Asset struct {
		ID    string            `json:"id"`
		Type  string            `json:"type"`
		Terms map[string]string `json:"terms,omitempty"`
	} `json:"asset"`
	Measures           []string `json:"measures"`
	StartDate          string   `json:"startDate,omitempty"`
	EndDate            string   `json:"endDate,omitempty"`
	Calendars          []string `json:"calendars,omitempty"`
	Dates              []string `json:"dates,omitempty"`
	MarketDataLocation string   `json:"marketDataLocation,omitempty"`
	UseCache           bool     `json:"useCache,omitempty"`
}

type CalcResponse struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Dates   []string `json:"dates,omitempty"`
	Columns []string `json:"columns,omitempty"`
	// failed dates appear as null holes
	Values  [][]*float64                 `json:"values,omitempty"`
	Summary map[string]dataframe.Summary `json:"summary,omitempty"`
}

// Calc values an instrument over a range of dates
func Calc(c *fiber.Ctx) (resp error) {
	defer func() {
		if err := recover(); err != nil {
			stackSlice := make([]byte, 1024)
			runtime.Stack(stackSlice, false)
			log.Error().
				Interface("Panic", err).
				Str("StackTrace", string(stackSlice)).
				Msg("caught panic in /v1/calc")
			resp = fiber.ErrInternalServerError
		}
	}()

	span := trace.SpanFromContext(c.UserContext())
	span.SetAttributes(opentelemetry.SpanAttributesFromFiber(c)...)

	var req CalcRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn().Err(err).Msg("could not parse calc request body")
		return fiber.ErrBadRequest
	}

	if len(req.Measures) == 0 {
		return badRequest(c, "at least one measure is required")
	}

	cfg := &pricing.HistoricalContextConfig{
		Calendars:          req.Calendars,
		MarketDataLocation: req.MarketDataLocation,
		UseCache:           req.UseCache,
	}

	if req.StartDate != "" {
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return badRequest(c, "cannot parse startDate")
		}
		cfg.Start = start
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return badRequest(c, "cannot parse endDate")
		}
		cfg.End = end
	}
	for _, dateStr := range req.Dates {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return badRequest(c, "cannot parse dates entry")
		}
		cfg.Dates = append(cfg.Dates, date)
	}

	hc, err := pricing.NewHistoricalContext(cfg)
	if err != nil {
		if errors.Is(err, pricing.ErrStartAndDates) || errors.Is(err, pricing.ErrNoDates) ||
			errors.Is(err, pricing.ErrNoTradingDays) {
			return badRequest(c, err.Error())
		}
		log.Error().Err(err).Msg("could not construct historical context")
		return fiber.ErrInternalServerError
	}

	measures := make([]risk.Measure, 0, len(req.Measures))
	for _, name := range req.Measures {
		measures = append(measures, risk.MeasureFromName(name))
	}

	instrument := &pricing.Instrument{ID: req.Asset.ID, Type: req.Asset.Type, Terms: req.Asset.Terms}
	result, err := hc.CalcSync(c.UserContext(), instrument, measures...)
	if err != nil {
		log.Error().Err(err).Str("AssetID", req.Asset.ID).Msg("historical valuation failed")
		return fiber.ErrInternalServerError
	}

	return c.JSON(buildCalcResponse(result, measures))
}

func buildCalcResponse(result risk.Result, measures []risk.Measure) CalcResponse {
	var df *dataframe.DataFrame
	var err error

	switch val := result.(type) {
	case *risk.ErrorValue:
		// every date failed; surface the first failure verbatim
		return CalcResponse{Status: "error", Message: val.Reason}
	case risk.MultiMeasureResult:
		if df, err = val.DataFrame(); err != nil {
			return CalcResponse{Status: "error", Message: err.Error()}
		}
	case *risk.SeriesResult:
		df = val.DataFrame(measures[0].Name)
	default:
		return CalcResponse{Status: "error", Message: "unexpected result shape"}
	}

	response := CalcResponse{
		Status:  "success",
		Dates:   make([]string, 0, df.Len()),
		Columns: df.ColNames,
		Values:  make([][]*float64, 0, df.ColCount()),
		Summary: make(map[string]dataframe.Summary, df.ColCount()),
	}
	for _, date := range df.Dates {
		response.Dates = append(response.Dates, date.Format("2006-01-02"))
	}
	for _, col := range df.Vals {
		vals := make([]*float64, len(col))
		for idx := range col {
			if !math.IsNaN(col[idx]) {
				val := col[idx]
				vals[idx] = &val
			}
		}
		response.Values = append(response.Values, vals)
	}
	for _, colName := range df.ColNames {
		// all-hole columns have NaN statistics, which do not marshal
		if summary := df.Summarize(colName); summary.Count > 0 {
			response.Summary[colName] = summary
		}
	}
	return response
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(CalcResponse{
		Status:  "error",
		Message: message,
	})
}
