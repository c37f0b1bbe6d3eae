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

package pricing

import (
	"context"
	"time"

	"github.com/quantward/qw-api/calendar"
	"github.com/quantward/qw-api/common"
	"github.com/quantward/qw-api/observability/opentelemetry"
	"github.com/quantward/qw-api/risk"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// HistoricalContext values an instrument over a sequence of dates. The date
// sequence is fixed at construction: either supplied directly or resolved
// from a start/end pair against holiday calendars - exactly one of the two.
type HistoricalContext struct {
	dates  []time.Time
	params Parameters
	engine Engine
}

type HistoricalContextConfig struct {
	// Start/End expand to business days against Calendars; End defaults to
	// today. Mutually exclusive with Dates.
	Start     time.Time
	End       time.Time
	Calendars []string

	// Dates supplies the date sequence directly, already in the desired
	// order
	Dates []time.Time

	MarketDataLocation string
	UseCache           bool

	// Engine defaults to the viper-configured remote engine
	Engine Engine
}

func NewHistoricalContext(cfg *HistoricalContextConfig) (*HistoricalContext, error) {
	hasStart := !cfg.Start.IsZero()
	hasDates := len(cfg.Dates) > 0

	var dates []time.Time
	switch {
	case hasStart && hasDates:
		return nil, ErrStartAndDates
	case hasStart:
		end := cfg.End
		if end.IsZero() {
			end = time.Now().In(common.GetTimezone())
		}
		var err error
		if dates, err = calendar.Resolve(cfg.Start, end, cfg.Calendars...); err != nil {
			return nil, err
		}
	case hasDates:
		dates = make([]time.Time, len(cfg.Dates))
		copy(dates, cfg.Dates)
	default:
		return nil, ErrNoDates
	}

	if len(dates) == 0 {
		return nil, ErrNoTradingDays
	}

	location := cfg.MarketDataLocation
	if location == "" {
		location = calendar.LDN
	}

	engine := cfg.Engine
	if engine == nil {
		engine = DefaultEngine()
	}

	return &HistoricalContext{
		dates:  dates,
		params: Parameters{MarketDataLocation: location, UseCache: cfg.UseCache},
		engine: engine,
	}, nil
}

// Dates returns a copy of the resolved date sequence
func (hc *HistoricalContext) Dates() []time.Time {
	dates := make([]time.Time, len(hc.dates))
	copy(dates, hc.dates)
	return dates
}

// Calc issues one independent valuation per date, in date order, and
// returns the outward future. The future resolves once every per-date
// computation has resolved, with the composition of the per-date results;
// individual date failures appear as holes in the composed result, never as
// a failure of the returned future.
func (hc *HistoricalContext) Calc(ctx context.Context, priceable Priceable, measures ...risk.Measure) (*risk.Future, error) {
	if len(measures) == 0 {
		return nil, ErrNoMeasures
	}

	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "pricing.HistoricalContext.Calc")
	defer span.End()
	span.SetAttributes(
		attribute.String("AssetID", priceable.AssetID()),
		attribute.Int("NumDates", len(hc.dates)),
	)

	log.Debug().
		Str("AssetID", priceable.AssetID()).
		Int("NumDates", len(hc.dates)).
		Str("MarketDataLocation", hc.params.MarketDataLocation).
		Msg("issuing historical valuation")

	futures := make([]*risk.Future, 0, len(hc.dates))
	for _, date := range hc.dates {
		futures = append(futures, hc.calcOne(ctx, date, priceable, measures))
	}

	return risk.NewCompositeFuture(futures).Future(), nil
}

// calcOne submits a single date's valuation inside a pricing scope pinned
// to that date; the scope is released on every exit path
func (hc *HistoricalContext) calcOne(ctx context.Context, date time.Time, priceable Priceable, measures []risk.Measure) *risk.Future {
	ctx, sc := openScope(ctx, date, hc.params, hc.engine)
	defer sc.close()
	return sc.calc(ctx, priceable, measures)
}

// CalcSync is the blocking equivalent of Calc; it awaits the outward future
// before returning
func (hc *HistoricalContext) CalcSync(ctx context.Context, priceable Priceable, measures ...risk.Measure) (risk.Result, error) {
	future, err := hc.Calc(ctx, priceable, measures...)
	if err != nil {
		return nil, err
	}
	return future.Result(ctx)
}

// Resolve values the instrument's resolved contract terms per date. In-place
// resolution is rejected: the result of a historical resolution is
// necessarily a collection of futures, not a single mutated instrument.
func (hc *HistoricalContext) Resolve(ctx context.Context, priceable Priceable, inPlace bool) (*risk.Future, error) {
	if inPlace {
		return nil, ErrInPlaceResolve
	}
	return hc.Calc(ctx, priceable, risk.ResolvedInstrument)
}
