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

// Measure identifies a quantity the valuation engine can compute for an
// instrument on a single pricing date
type Measure struct {
	Name string `json:"name"`
	Unit string `json:"unit,omitempty"`
}

var (
	Price       = Measure{Name: "Price", Unit: "ccy"}
	DollarPrice = Measure{Name: "DollarPrice", Unit: "USD"}
	Delta       = Measure{Name: "Delta"}
	Gamma       = Measure{Name: "Gamma"}
	Vega        = Measure{Name: "Vega"}
	Theta       = Measure{Name: "Theta"}
	IRDelta     = Measure{Name: "IRDelta"}
	IRVega      = Measure{Name: "IRVega"}

	// ResolvedInstrument asks the engine for the fully resolved contract
	// terms rather than a numeric valuation
	ResolvedInstrument = Measure{Name: "ResolvedInstrument"}
)

// MeasureFromName looks up one of the well-known measures; unrecognized
// names are passed through so the engine can decide if it supports them
func MeasureFromName(name string) Measure {
	for _, measure := range []Measure{Price, DollarPrice, Delta, Gamma, Vega, Theta, IRDelta, IRVega, ResolvedInstrument} {
		if measure.Name == name {
			return measure
		}
	}
	return Measure{Name: name}
}

func (m Measure) String() string {
	return m.Name
}
