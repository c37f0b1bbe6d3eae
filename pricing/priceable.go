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

// Priceable is anything the valuation engine can value on a single date
type Priceable interface {
	AssetID() string
	AssetType() string
	ContractTerms() map[string]string
}

// Instrument is a generic priceable contract; Terms are opaque to this
// service and interpreted by the valuation engine
type Instrument struct {
	ID    string            `json:"id"`
	Type  string            `json:"type"`
	Terms map[string]string `json:"terms,omitempty"`
}

func (inst *Instrument) AssetID() string {
	return inst.ID
}

func (inst *Instrument) AssetType() string {
	return inst.Type
}

func (inst *Instrument) ContractTerms() map[string]string {
	return inst.Terms
}
