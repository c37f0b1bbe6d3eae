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

import "errors"

var (
	ErrStartAndDates  = errors.New("must supply start or dates, not both")
	ErrNoDates        = errors.New("must supply start or dates")
	ErrNoTradingDays  = errors.New("no trading days available")
	ErrNoMeasures     = errors.New("at least one risk measure is required")
	ErrInPlaceResolve = errors.New("cannot resolve in place under a historical context")
	ErrEngineResponse = errors.New("malformed engine response")
)
