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

import "fmt"

// ComposeResults merges the ordered per-date results into one aggregate.
// The first non-error result acts as the structural template: its shape, and
// for multi-measure results its key set, define the aggregate. Error values
// pass through positionally so each measure's series keeps a hole on the
// dates that failed. When every date failed the first error value is
// returned verbatim; there is no aggregate to build.
func ComposeResults(results []Result) (Result, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	var base Result
	for _, result := range results {
		if result == nil {
			continue
		}
		if _, failed := result.(*ErrorValue); !failed {
			base = result
			break
		}
	}

	if base == nil {
		return results[0], nil
	}

	multi, ok := base.(MultiMeasureResult)
	if !ok {
		return base.Compose(results)
	}

	// NOTE: keys absent from the template are ignored even if present in a
	// later result; downstream consumers depend on this shape-selection rule
	composed := make(MultiMeasureResult, len(multi))
	for measure, template := range multi {
		perDate := make([]Result, 0, len(results))
		for _, result := range results {
			if other, isMulti := result.(MultiMeasureResult); isMulti {
				value, present := other[measure]
				if !present {
					return nil, fmt.Errorf("%w: measure %s missing from result", ErrMismatchedShape, measure)
				}
				perDate = append(perDate, value)
			} else {
				perDate = append(perDate, result)
			}
		}

		aggregate, err := template.Compose(perDate)
		if err != nil {
			return nil, err
		}
		composed[measure] = aggregate
	}

	return composed, nil
}
