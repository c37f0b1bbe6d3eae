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
	"sort"

	"github.com/quantward/qw-api/dataframe"
)

// DataFrame converts the series to a single-column dataframe
func (series *SeriesResult) DataFrame(colName string) *dataframe.DataFrame {
	return &dataframe.DataFrame{
		Dates:    series.Dates,
		ColNames: []string{colName},
		Vals:     [][]float64{series.Values},
	}
}

// DataFrame converts a composed multi-measure result to a dataframe with one
// column per measure, columns sorted by measure name. Every value must be a
// series sharing the same date index.
func (multi MultiMeasureResult) DataFrame() (*dataframe.DataFrame, error) {
	measures := make([]Measure, 0, len(multi))
	for measure := range multi {
		measures = append(measures, measure)
	}
	sort.Slice(measures, func(i, j int) bool {
		return measures[i].Name < measures[j].Name
	})

	df := &dataframe.DataFrame{
		ColNames: make([]string, 0, len(measures)),
		Vals:     make([][]float64, 0, len(measures)),
	}

	for _, measure := range measures {
		series, ok := multi[measure].(*SeriesResult)
		if !ok {
			return nil, fmt.Errorf("%w: measure %s is not a series", ErrMismatchedShape, measure)
		}
		if df.Dates == nil {
			df.Dates = series.Dates
		} else if len(df.Dates) != len(series.Dates) {
			return nil, dataframe.ErrDateIndexNotAligned
		}
		df.ColNames = append(df.ColNames, measure.Name)
		df.Vals = append(df.Vals, series.Values)
	}

	return df, nil
}
