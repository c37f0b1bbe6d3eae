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

package risk_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/quantward/qw-api/risk"
)

var _ = Describe("ComposeResults", func() {
	var (
		d1 time.Time
		d2 time.Time
		d3 time.Time
	)

	BeforeEach(func() {
		d1 = time.Date(2022, 1, 4, 0, 0, 0, 0, time.UTC)
		d2 = time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC)
		d3 = time.Date(2022, 1, 6, 0, 0, 0, 0, time.UTC)
	})

	Context("with no results", func() {
		It("returns an error", func() {
			_, err := risk.ComposeResults([]risk.Result{})
			Expect(err).To(MatchError(risk.ErrNoResults))
		})
	})

	Context("with scalar results", func() {
		It("builds a date-indexed series in date order", func() {
			result, err := risk.ComposeResults([]risk.Result{
				&risk.ScalarResult{Date: d1, Value: 10},
				&risk.ScalarResult{Date: d2, Value: 20},
				&risk.ScalarResult{Date: d3, Value: 30},
			})
			Expect(err).To(BeNil())

			series, ok := result.(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(series.Dates).To(Equal([]time.Time{d1, d2, d3}))
			Expect(series.Values).To(Equal([]float64{10, 20, 30}))
		})

		It("leaves a NaN hole where a date failed", func() {
			result, err := risk.ComposeResults([]risk.Result{
				&risk.ScalarResult{Date: d1, Value: 10},
				&risk.ErrorValue{Date: d2, Reason: "engine rejected request"},
				&risk.ScalarResult{Date: d3, Value: 30},
			})
			Expect(err).To(BeNil())

			series, ok := result.(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(series.Len()).To(Equal(3))
			Expect(series.Dates[1]).To(Equal(d2))
			Expect(series.Values[0]).To(Equal(10.0))
			Expect(math.IsNaN(series.Values[1])).To(BeTrue())
			Expect(series.Values[2]).To(Equal(30.0))
		})

		It("skips over leading failures when selecting the template", func() {
			result, err := risk.ComposeResults([]risk.Result{
				&risk.ErrorValue{Date: d1, Reason: "market data unavailable"},
				&risk.ScalarResult{Date: d2, Value: 20},
			})
			Expect(err).To(BeNil())

			series, ok := result.(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(math.IsNaN(series.Values[0])).To(BeTrue())
			Expect(series.Values[1]).To(Equal(20.0))
		})
	})

	Context("with series results", func() {
		It("concatenates the per-date series", func() {
			result, err := risk.ComposeResults([]risk.Result{
				&risk.SeriesResult{Dates: []time.Time{d1, d2}, Values: []float64{1, 2}},
				&risk.SeriesResult{Dates: []time.Time{d3}, Values: []float64{3}},
			})
			Expect(err).To(BeNil())

			series, ok := result.(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(series.Dates).To(Equal([]time.Time{d1, d2, d3}))
			Expect(series.Values).To(Equal([]float64{1, 2, 3}))
		})
	})

	Context("when every date failed", func() {
		It("returns the first error value verbatim", func() {
			first := &risk.ErrorValue{Date: d1, RequestID: "req-1", Reason: "engine down"}
			result, err := risk.ComposeResults([]risk.Result{
				first,
				&risk.ErrorValue{Date: d2, RequestID: "req-2", Reason: "engine down"},
			})
			Expect(err).To(BeNil())
			Expect(result).To(BeIdenticalTo(first))
		})
	})

	Context("with multi-measure results", func() {
		It("composes each measure into its own series", func() {
			result, err := risk.ComposeResults([]risk.Result{
				risk.MultiMeasureResult{
					risk.Price: &risk.ScalarResult{Date: d1, Value: 100},
					risk.Delta: &risk.ScalarResult{Date: d1, Value: 0.5},
				},
				risk.MultiMeasureResult{
					risk.Price: &risk.ScalarResult{Date: d2, Value: 101},
					risk.Delta: &risk.ScalarResult{Date: d2, Value: 0.6},
				},
			})
			Expect(err).To(BeNil())

			multi, ok := result.(risk.MultiMeasureResult)
			Expect(ok).To(BeTrue())
			Expect(multi).To(HaveLen(2))

			price, ok := multi[risk.Price].(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(price.Values).To(Equal([]float64{100, 101}))

			delta, ok := multi[risk.Delta].(*risk.SeriesResult)
			Expect(ok).To(BeTrue())
			Expect(delta.Values).To(Equal([]float64{0.5, 0.6}))
		})

		It("punches a hole into every measure on a failed date", func() {
			result, err := risk.ComposeResults([]risk.Result{
				risk.MultiMeasureResult{
					risk.Price: &risk.ScalarResult{Date: d1, Value: 100},
					risk.Delta: &risk.ScalarResult{Date: d1, Value: 0.5},
				},
				&risk.ErrorValue{Date: d2, Reason: "timeout"},
				risk.MultiMeasureResult{
					risk.Price: &risk.ScalarResult{Date: d3, Value: 102},
					risk.Delta: &risk.ScalarResult{Date: d3, Value: 0.7},
				},
			})
			Expect(err).To(BeNil())

			multi, ok := result.(risk.MultiMeasureResult)
			Expect(ok).To(BeTrue())

			for _, measure := range []risk.Measure{risk.Price, risk.Delta} {
				series, ok := multi[measure].(*risk.SeriesResult)
				Expect(ok).To(BeTrue())
				Expect(series.Len()).To(Equal(3))
				Expect(series.Dates[1]).To(Equal(d2))
				Expect(math.IsNaN(series.Values[1])).To(BeTrue())
			}
		})

		It("rejects results missing a measure from the template", func() {
			_, err := risk.ComposeResults([]risk.Result{
				risk.MultiMeasureResult{
					risk.Price: &risk.ScalarResult{Date: d1, Value: 100},
					risk.Delta: &risk.ScalarResult{Date: d1, Value: 0.5},
				},
				risk.MultiMeasureResult{
					risk.Price: &risk.ScalarResult{Date: d2, Value: 101},
				},
			})
			Expect(err).To(MatchError(risk.ErrMismatchedShape))
		})

		It("ignores measures absent from the template", func() {
			result, err := risk.ComposeResults([]risk.Result{
				risk.MultiMeasureResult{
					risk.Price: &risk.ScalarResult{Date: d1, Value: 100},
				},
				risk.MultiMeasureResult{
					risk.Price: &risk.ScalarResult{Date: d2, Value: 101},
					risk.Delta: &risk.ScalarResult{Date: d2, Value: 0.6},
				},
			})
			Expect(err).To(BeNil())

			multi, ok := result.(risk.MultiMeasureResult)
			Expect(ok).To(BeTrue())
			Expect(multi).To(HaveLen(1))
			Expect(multi).To(HaveKey(risk.Price))
		})
	})

	Context("composing directly on the wrong variant", func() {
		It("rejects direct composition on a multi-measure result", func() {
			multi := risk.MultiMeasureResult{}
			_, err := multi.Compose([]risk.Result{})
			Expect(err).To(MatchError(risk.ErrComposeMultiDirect))
		})

		It("rejects composition led by an error value", func() {
			errVal := &risk.ErrorValue{Date: d1, Reason: "bad"}
			_, err := errVal.Compose([]risk.Result{})
			Expect(err).To(MatchError(risk.ErrComposeError))
		})

		It("rejects mixing scalars with series", func() {
			scalar := &risk.ScalarResult{Date: d1, Value: 10}
			_, err := scalar.Compose([]risk.Result{
				scalar,
				&risk.SeriesResult{Dates: []time.Time{d2}, Values: []float64{2}},
			})
			Expect(err).To(MatchError(risk.ErrMismatchedShape))
		})
	})
})
