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

package risk

import (
	"fmt"
	"math"
	"time"
)

// Result is the value produced by evaluating a risk measure. Every variant
// knows how to compose an ordered list of per-date values into a single
// aggregate of its own shape; the composer relies on this capability alone
// and never inspects concrete types beyond the error marker.
type Result interface {
	Compose(results []Result) (Result, error)
}

// ScalarResult holds a single measure value for one pricing date
type ScalarResult struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Compose builds a date-indexed series from the ordered per-date results.
// ErrorValue entries become NaN holes at their date's position.
func (scalar *ScalarResult) Compose(results []Result) (Result, error) {
	series := &SeriesResult{
		Dates:  make([]time.Time, 0, len(results)),
		Values: make([]float64, 0, len(results)),
	}

	for _, result := range results {
		switch val := result.(type) {
		case *ScalarResult:
			series.Dates = append(series.Dates, val.Date)
			series.Values = append(series.Values, val.Value)
		case *ErrorValue:
			series.Dates = append(series.Dates, val.Date)
			series.Values = append(series.Values, math.NaN())
		default:
			return nil, fmt.Errorf("%w: expected scalar got %T", ErrMismatchedShape, result)
		}
	}

	return series, nil
}

// SeriesResult is a date-indexed series of measure values
type SeriesResult struct {
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}

// Compose concatenates the ordered per-date series into one series.
// ErrorValue entries contribute a single NaN observation on their date.
func (series *SeriesResult) Compose(results []Result) (Result, error) {
	composed := &SeriesResult{
		Dates:  make([]time.Time, 0, len(results)),
		Values: make([]float64, 0, len(results)),
	}

	for _, result := range results {
		switch val := result.(type) {
		case *SeriesResult:
			composed.Dates = append(composed.Dates, val.Dates...)
			composed.Values = append(composed.Values, val.Values...)
		case *ErrorValue:
			composed.Dates = append(composed.Dates, val.Date)
			composed.Values = append(composed.Values, math.NaN())
		default:
			return nil, fmt.Errorf("%w: expected series got %T", ErrMismatchedShape, result)
		}
	}

	return composed, nil
}

func (series *SeriesResult) Len() int {
	return len(series.Dates)
}

// MultiMeasureResult maps each requested measure to its result; keys are
// unique by construction
type MultiMeasureResult map[Measure]Result

// Compose on a multi-measure result is a programming error; composition is
// performed per measure by ComposeResults
func (multi MultiMeasureResult) Compose(_ []Result) (Result, error) {
	return nil, ErrComposeMultiDirect
}

// ErrorValue marks a single date's computation as failed. It is terminal and
// non-retryable and flows through composition as data, never as a raised
// fault.
type ErrorValue struct {
	Date      time.Time `json:"date"`
	RequestID string    `json:"requestId,omitempty"`
	Reason    string    `json:"reason"`
}

// Compose on an error value is a programming error; the composer never
// selects an error as the structural template
func (ev *ErrorValue) Compose(_ []Result) (Result, error) {
	return nil, ErrComposeError
}

func (ev *ErrorValue) String() string {
	return fmt.Sprintf("ErrorValue(%s: %s)", ev.Date.Format("2006-01-02"), ev.Reason)
}
