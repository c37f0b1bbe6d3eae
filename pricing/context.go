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

	"github.com/google/uuid"
	"github.com/quantward/qw-api/observability/opentelemetry"
	"github.com/quantward/qw-api/risk"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Parameters are the evaluation settings fixed for every date of a
// historical valuation
type Parameters struct {
	MarketDataLocation string
	UseCache           bool
}

// scope is a pricing evaluation scope pinned to a single date. Submissions
// made through the scope inherit the pinned date and the fixed parameters.
// Scopes must be closed on every exit path; calcOne guarantees this with a
// deferred close.
type scope struct {
	date   time.Time
	params Parameters
	engine Engine
	span   trace.Span
}

func openScope(ctx context.Context, date time.Time, params Parameters, engine Engine) (context.Context, *scope) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "pricing.scope")
	span.SetAttributes(attribute.String("PricingDate", date.Format("2006-01-02")))
	return ctx, &scope{
		date:   date,
		params: params,
		engine: engine,
		span:   span,
	}
}

// calc submits one asynchronous valuation pinned to the scope's date
func (sc *scope) calc(ctx context.Context, priceable Priceable, measures []risk.Measure) *risk.Future {
	return sc.engine.Submit(ctx, &Request{
		RequestID:          uuid.New().String(),
		Priceable:          priceable,
		Measures:           measures,
		PricingDate:        sc.date,
		MarketDataLocation: sc.params.MarketDataLocation,
		UseCache:           sc.params.UseCache,
	})
}

func (sc *scope) close() {
	sc.span.End()
}
