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
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

var ErrUnknownResultKind = errors.New("unknown result kind")

const (
	kindScalar = "scalar"
	kindSeries = "series"
	kindMulti  = "multi"
	kindError  = "error"
)

type resultEnvelope struct {
	Kind     string          `json:"kind"`
	Value    json.RawMessage `json:"value"`
	Measures []measureEntry  `json:"measures,omitempty"`
}

type measureEntry struct {
	Measure Measure         `json:"measure"`
	Value   json.RawMessage `json:"value"`
}

// MarshalResult encodes a result with enough type information to round-trip
// through the pricing cache
func MarshalResult(result Result) ([]byte, error) {
	envelope := resultEnvelope{}

	switch val := result.(type) {
	case *ScalarResult:
		envelope.Kind = kindScalar
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		envelope.Value = raw
	case *SeriesResult:
		envelope.Kind = kindSeries
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		envelope.Value = raw
	case *ErrorValue:
		envelope.Kind = kindError
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		envelope.Value = raw
	case MultiMeasureResult:
		envelope.Kind = kindMulti
		for measure, inner := range val {
			raw, err := MarshalResult(inner)
			if err != nil {
				return nil, err
			}
			envelope.Measures = append(envelope.Measures, measureEntry{Measure: measure, Value: raw})
		}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownResultKind, result)
	}

	return json.Marshal(envelope)
}

// UnmarshalResult decodes a result encoded by MarshalResult
func UnmarshalResult(data []byte) (Result, error) {
	var envelope resultEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, err
	}

	switch envelope.Kind {
	case kindScalar:
		scalar := &ScalarResult{}
		if err := json.Unmarshal(envelope.Value, scalar); err != nil {
			return nil, err
		}
		return scalar, nil
	case kindSeries:
		series := &SeriesResult{}
		if err := json.Unmarshal(envelope.Value, series); err != nil {
			return nil, err
		}
		return series, nil
	case kindError:
		errVal := &ErrorValue{}
		if err := json.Unmarshal(envelope.Value, errVal); err != nil {
			return nil, err
		}
		return errVal, nil
	case kindMulti:
		multi := make(MultiMeasureResult, len(envelope.Measures))
		for _, entry := range envelope.Measures {
			inner, err := UnmarshalResult(entry.Value)
			if err != nil {
				return nil, err
			}
			multi[entry.Measure] = inner
		}
		return multi, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownResultKind, envelope.Kind)
}
