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
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

var (
	ErrDateIndexNotAligned = errors.New("date index does not align")
	ErrColumnLengths       = errors.New("column lengths do not match date index")
)

// DataFrame stores a table of values organized by date. Vals is column
// major - Vals[colIdx][rowIdx]
type DataFrame struct {
	Dates    []time.Time
	ColNames []string
	Vals     [][]float64
}

// New creates an empty dataframe with the given columns
func New(colNames ...string) *DataFrame {
	vals := make([][]float64, len(colNames))
	for idx := range vals {
		vals[idx] = make([]float64, 0, 252)
	}
	return &DataFrame{
		Dates:    make([]time.Time, 0, 252),
		ColNames: colNames,
		Vals:     vals,
	}
}

// Len returns the number of rows in the dataframe
func (df *DataFrame) Len() int {
	return len(df.Dates)
}

// ColCount returns the number of columns in the dataframe
func (df *DataFrame) ColCount() int {
	return len(df.ColNames)
}

// ColIndex returns the index of the named column; -1 if it doesn't exist
func (df *DataFrame) ColIndex(colName string) int {
	for idx, val := range df.ColNames {
		if colName == val {
			return idx
		}
	}
	return -1
}

// AddCol appends a column of values; the values must align with the existing
// date index
func (df *DataFrame) AddCol(colName string, vals []float64) error {
	if len(df.Dates) != len(vals) {
		return ErrColumnLengths
	}
	df.ColNames = append(df.ColNames, colName)
	df.Vals = append(df.Vals, vals)
	return nil
}

// AppendRow adds a row to the end of the dataframe; the date must be after
// the current last date
func (df *DataFrame) AppendRow(date time.Time, vals ...float64) error {
	if len(vals) != len(df.ColNames) {
		return ErrColumnLengths
	}
	if len(df.Dates) > 0 && !date.After(df.Dates[len(df.Dates)-1]) {
		return ErrDateIndexNotAligned
	}
	df.Dates = append(df.Dates, date)
	for idx, val := range vals {
		df.Vals[idx] = append(df.Vals[idx], val)
	}
	return nil
}

// AsMap creates a map with the date index as the key and the specified
// column as the value
func (df *DataFrame) AsMap(colName string) map[time.Time]float64 {
	res := make(map[time.Time]float64, df.Len())
	colIdx := df.ColIndex(colName)
	if colIdx == -1 {
		return res
	}
	for idx, date := range df.Dates {
		res[date] = df.Vals[colIdx][idx]
	}
	return res
}

func (df *DataFrame) String() string {
	out := &strings.Builder{}
	table := tablewriter.NewWriter(out)
	table.SetHeader(append([]string{"Date"}, df.ColNames...))

	for rowIdx, date := range df.Dates {
		row := make([]string, 0, len(df.ColNames)+1)
		row = append(row, date.Format("2006-01-02"))
		for colIdx := range df.ColNames {
			val := df.Vals[colIdx][rowIdx]
			if math.IsNaN(val) {
				row = append(row, "--")
			} else {
				row = append(row, fmt.Sprintf("%.4f", val))
			}
		}
		table.Append(row)
	}

	table.Render()
	return out.String()
}
