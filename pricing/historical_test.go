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

package pricing_test

import (
	"context"
	"math"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/quantward/qw-api/calendar"
	"github.com/quantward/qw-api/pricing"
	"github.com/quantward/qw-api/risk"
)

// stubEngine records submitted requests and answers each one through fn on a
// separate goroutine
type stubEngine struct {
	mu   sync.Mutex
	reqs []*pricing.Request
	fn   func(req *pricing.Request) risk.Result
}

func (engine *stubEngine) Submit(_ context.Context, req *pricing.Request) *risk.Future {
	engine.mu.Lock()
	engine.reqs = append(engine.reqs, req)
	engine.mu.Unlock()

	future := risk.NewFuture()
	go future.SetResult(engine.fn(req))
	return future
}

func (engine *stubEngine) requests() []*pricing.Request {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	reqs := make([]*pricing.Request, len(engine.reqs))
	copy(reqs, engine.reqs)
	return reqs
}

var _ = Describe("HistoricalContext", func() {
	var (
		engine     *stubEngine
		instrument *pricing.Instrument
		dates      []time.Time
	)

	BeforeEach(func() {
		engine = &stubEngine{
			fn: func(req *pricing.Request) risk.Result {
				return &risk.ScalarResult{Date: req.PricingDate, Value: float64(req.PricingDate.Day())}
			},
		}
		instrument = &pricing.Instrument{ID: "USD-10Y-SWAP", Type: "swap"}
		dates = []time.Time{
			time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC),
			time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2022, 1, 6, 0, 0, 0, 0, time.UTC),
		}
	})

	Describe("construction", func() {
		It("rejects supplying both a start date and explicit dates", func() {
			_, err := pricing.NewHistoricalContext(&pricing.HistoricalContextConfig{
				Start:  dates[0],
				Dates:  dates,
				Engine: engine,
			})
			Expect(err).To(MatchError(pricing.ErrStartAndDates))
		})

		It("rejects supplying neither a start date nor explicit dates", func() {
			_, err := pricing.NewHistoricalContext(&pricing.HistoricalContextConfig{Engine: engine})
			Expect(err).To(MatchError(pricing.ErrNoDates))
		})

		It("expands a start/end pair into business days", func() {
			hc, err := pricing.NewHistoricalContext(&pricing.HistoricalContextConfig{
				Start:  time.Date(2022, 1, 7, 0, 0, 0, 0, time.UTC),
				End:    time.Date(2022, 1, 11, 0, 0, 0, 0, time.UTC),
				Engine: engine,
			})
			Expect(err).To(BeNil())
			Expect(hc.Dates()).To(Equal([]time.Time{
				time.Date(2022, 1, 7, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2022, 1, 11, 0, 0, 0, 0, time.UTC),
			}))
		})

		It("rejects an interval with no trading days", func() {
			_, err := pricing.NewHistoricalContext(&pricing.HistoricalContextConfig{
				Start:  time.Date(2022, 1, 8, 0, 0, 0, 0, time.UTC),
				End:    time.Date(2022, 1, 9, 0, 0, 0, 0, time.UTC),
				Engine: engine,
			})
			Expect(err).To(MatchError(pricing.ErrNoTradingDays))
		})

		It("copies explicit dates so later mutation has no effect", func() {
			supplied := make([]time.Time, len(dates))
			copy(supplied, dates)

			hc, err := pricing.NewHistoricalContext(&pricing.HistoricalContextConfig{
				Dates:  supplied,
				Engine: engine,
			})
			Expect(err).To(BeNil())

			supplied[0] = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
			Expect(hc.Dates()).To(Equal(dates))
		})
	})

	Describe("Calc", func() {
		var hc *pricing.HistoricalContext

		BeforeEach(func() {
			var err error
			hc, err = pricing.NewHistoricalContext(&pricing.HistoricalContextConfig{
				Dates:  dates,
				Engine: engine,
			})
			Expect(err).To(BeNil())
		})

		It("rejects a request with no measures", func() {
			_, err := hc.Calc(context.Background(), instrument)
			Expect(err).To(MatchError(pricing.ErrNoMeasures))
		})

		It("issues one engine request per date with distinct request ids", func() {
			future, err := hc.Calc(context.Background(), instrument, risk.Price)
			Expect(err).To(BeNil())

			_, err = future.Result(context.Background())
			Expect(err).To(BeNil())

			reqs := engine.requests()
			Expect(reqs).To(HaveLen(3))

			seen := map[string]bool{}
			for idx, req := range reqs {
				Expect(req.PricingDate).To(Equal(dates[idx]))
				Expect(req.Priceable).To(BeIdenticalTo(instrument))
				Expect(req.Measures).To(Equal([]risk.Measure{risk.Price}))
				Expect(req.MarketDataLocation).To(Equal(calendar.LDN))
				Expect(seen[req.RequestID]).To(BeFalse())
				seen[req.RequestID] = true
			}
		})

		It("orders the composed series by date regardless of completion order", func() {
			// earlier dates answer slower so completion order inverts
			engine.fn = func(req *pricing.Request) risk.Result {
				delay := time.Duration(10-req.PricingDate.Day()) * 5 * time.Millisecond
				time.Sleep(delay)
				return &risk.ScalarResult{Date: req.PricingDate, Value: float64(req.PricingDate.Day())}
			}

			result, err := hc.CalcSync(context.Background(), instrument, risk.Price)
			Expect(err).To(BeNil())

			series, ok := result.(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(series.Dates).To(Equal(dates))
			Expect(series.Values).To(Equal([]float64{4, 5, 6}))
		})

		It("surfaces a failed date as a hole in the composed series", func() {
			engine.fn = func(req *pricing.Request) risk.Result {
				if req.PricingDate.Equal(dates[1]) {
					return &risk.ErrorValue{Date: req.PricingDate, RequestID: req.RequestID, Reason: "no market data"}
				}
				return &risk.ScalarResult{Date: req.PricingDate, Value: float64(req.PricingDate.Day())}
			}

			result, err := hc.CalcSync(context.Background(), instrument, risk.Price)
			Expect(err).To(BeNil())

			series, ok := result.(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(series.Values[0]).To(Equal(4.0))
			Expect(math.IsNaN(series.Values[1])).To(BeTrue())
			Expect(series.Values[2]).To(Equal(6.0))
		})

		It("returns the first error verbatim when every date fails", func() {
			engine.fn = func(req *pricing.Request) risk.Result {
				return &risk.ErrorValue{Date: req.PricingDate, RequestID: req.RequestID, Reason: "engine offline"}
			}

			result, err := hc.CalcSync(context.Background(), instrument, risk.Price)
			Expect(err).To(BeNil())

			errVal, ok := result.(*risk.ErrorValue)
			Expect(ok).To(BeTrue())
			Expect(errVal.Date).To(Equal(dates[0]))
			Expect(errVal.Reason).To(Equal("engine offline"))
		})

		It("composes each requested measure into its own series", func() {
			engine.fn = func(req *pricing.Request) risk.Result {
				multi := make(risk.MultiMeasureResult, len(req.Measures))
				for idx, measure := range req.Measures {
					multi[measure] = &risk.ScalarResult{
						Date:  req.PricingDate,
						Value: float64(req.PricingDate.Day()) + float64(idx)/10,
					}
				}
				return multi
			}

			result, err := hc.CalcSync(context.Background(), instrument, risk.Price, risk.Vega)
			Expect(err).To(BeNil())

			multi, ok := result.(risk.MultiMeasureResult)
			Expect(ok).To(BeTrue())
			Expect(multi).To(HaveLen(2))

			price, ok := multi[risk.Price].(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(price.Dates).To(Equal(dates))
			Expect(price.Values).To(Equal([]float64{4, 5, 6}))

			vega, ok := multi[risk.Vega].(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(vega.Values).To(Equal([]float64{4.1, 5.1, 6.1}))
		})

		It("honors the configured market data location", func() {
			hc, err := pricing.NewHistoricalContext(&pricing.HistoricalContextConfig{
				Dates:              dates[:1],
				MarketDataLocation: calendar.NYC,
				Engine:             engine,
			})
			Expect(err).To(BeNil())

			_, err = hc.CalcSync(context.Background(), instrument, risk.Price)
			Expect(err).To(BeNil())
			Expect(engine.requests()[0].MarketDataLocation).To(Equal(calendar.NYC))
		})
	})

	Describe("Resolve", func() {
		var hc *pricing.HistoricalContext

		BeforeEach(func() {
			var err error
			hc, err = pricing.NewHistoricalContext(&pricing.HistoricalContextConfig{
				Dates:  dates,
				Engine: engine,
			})
			Expect(err).To(BeNil())
		})

		It("rejects in-place resolution", func() {
			_, err := hc.Resolve(context.Background(), instrument, true)
			Expect(err).To(MatchError(pricing.ErrInPlaceResolve))
		})

		It("requests the resolved instrument for every date", func() {
			future, err := hc.Resolve(context.Background(), instrument, false)
			Expect(err).To(BeNil())

			_, err = future.Result(context.Background())
			Expect(err).To(BeNil())

			reqs := engine.requests()
			Expect(reqs).To(HaveLen(3))
			for _, req := range reqs {
				Expect(req.Measures).To(Equal([]risk.Measure{risk.ResolvedInstrument}))
			}
		})
	})
})
