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

import "errors"

var (
	ErrNoResults          = errors.New("no results to compose")
	ErrMismatchedShape    = errors.New("cannot compose results of mismatched shape")
	ErrComposeMultiDirect = errors.New("multi-measure results must be composed per measure")
	ErrComposeError       = errors.New("error values cannot act as a composition template")
)
