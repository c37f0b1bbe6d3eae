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

	"github.com/quantward/qw-api/risk"
	"github.com/spf13/viper"
)

// Request describes one single-date valuation. Engines may be invoked many
// times concurrently, one call per pricing date.
type Request struct {
	RequestID          string
	Priceable          Priceable
	Measures           []risk.Measure
	PricingDate        time.Time
	MarketDataLocation string
	UseCache           bool
}

// Engine is the boundary to the valuation service. Submit never blocks; the
// returned future resolves with a Result or an ErrorValue. Engines never
// fail the future for a computation error - failures flow through as
// ErrorValue data.
type Engine interface {
	Submit(ctx context.Context, req *Request) *risk.Future
}

// DefaultEngine builds the engine stack from viper configuration: a remote
// engine wrapped with the pricing cache
func DefaultEngine() Engine {
	return NewCachingEngine(NewRemoteEngine(viper.GetString("engine.url")))
}
