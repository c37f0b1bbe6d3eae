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

package dataframe

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds NaN-aware descriptive statistics for one column
type Summary struct {
	Count int     `json:"count"`
	Holes int     `json:"holes"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
}

// Summarize computes column statistics, skipping NaN holes
func (df *DataFrame) Summarize(colName string) Summary {
	colIdx := df.ColIndex(colName)
	if colIdx == -1 {
		return Summary{Min: math.NaN(), Max: math.NaN(), Mean: math.NaN()}
	}

	observed := make([]float64, 0, len(df.Vals[colIdx]))
	holes := 0
	for _, val := range df.Vals[colIdx] {
		if math.IsNaN(val) {
			holes++
			continue
		}
		observed = append(observed, val)
	}

	if len(observed) == 0 {
		return Summary{Holes: holes, Min: math.NaN(), Max: math.NaN(), Mean: math.NaN()}
	}

	return Summary{
		Count: len(observed),
		Holes: holes,
		Min:   floats.Min(observed),
		Max:   floats.Max(observed),
		Mean:  stat.Mean(observed, nil),
	}
}
