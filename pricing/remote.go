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

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/quantward/qw-api/observability/opentelemetry"
	"github.com/quantward/qw-api/risk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// RemoteEngine prices instruments through the valuation service's HTTP API
type RemoteEngine struct {
	baseURL string
	client  *http.Client
}

func NewRemoteEngine(baseURL string) *RemoteEngine {
	timeout := viper.GetDuration("engine.timeout")
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &RemoteEngine{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type priceRequest struct {
	RequestID          string            `json:"requestId"`
	AssetID            string            `json:"assetId"`
	AssetType          string            `json:"assetType"`
	Terms              map[string]string `json:"terms,omitempty"`
	Measures           []string          `json:"measures"`
	PricingDate        string            `json:"pricingDate"`
	MarketDataLocation string            `json:"marketDataLocation"`
}

type priceResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Results []struct {
		Measure string  `json:"measure"`
		Value   float64 `json:"value"`
	} `json:"results"`
}

// Submit issues the valuation asynchronously; the future always resolves
// with a value - transport and engine failures become ErrorValues
func (engine *RemoteEngine) Submit(ctx context.Context, req *Request) *risk.Future {
	future := risk.NewFuture()
	go func() {
		future.SetResult(engine.price(ctx, req))
	}()
	return future
}

func (engine *RemoteEngine) price(ctx context.Context, req *Request) risk.Result {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "pricing.RemoteEngine.price")
	defer span.End()
	span.SetAttributes(
		attribute.String("AssetID", req.Priceable.AssetID()),
		attribute.String("PricingDate", req.PricingDate.Format("2006-01-02")),
	)

	measures := make([]string, 0, len(req.Measures))
	for _, measure := range req.Measures {
		measures = append(measures, measure.Name)
	}

	payload, err := json.Marshal(priceRequest{
		RequestID:          req.RequestID,
		AssetID:            req.Priceable.AssetID(),
		AssetType:          req.Priceable.AssetType(),
		Terms:              req.Priceable.ContractTerms(),
		Measures:           measures,
		PricingDate:        req.PricingDate.Format("2006-01-02"),
		MarketDataLocation: req.MarketDataLocation,
	})
	if err != nil {
		return engine.errorValue(req, fmt.Sprintf("could not marshal request: %s", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, engine.baseURL+"/v1/price", bytes.NewReader(payload))
	if err != nil {
		return engine.errorValue(req, fmt.Sprintf("could not build request: %s", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := engine.client.Do(httpReq)
	if err != nil {
		return engine.errorValue(req, fmt.Sprintf("engine request failed: %s", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return engine.errorValue(req, fmt.Sprintf("could not read engine response: %s", err))
	}

	if resp.StatusCode != http.StatusOK {
		return engine.errorValue(req, fmt.Sprintf("engine returned status %d", resp.StatusCode))
	}

	var parsed priceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return engine.errorValue(req, fmt.Sprintf("%s: %s", ErrEngineResponse, err))
	}

	if parsed.Status != "success" {
		return engine.errorValue(req, parsed.Message)
	}

	values := make(map[string]float64, len(parsed.Results))
	for _, result := range parsed.Results {
		values[result.Measure] = result.Value
	}

	if len(req.Measures) == 1 {
		value, ok := values[req.Measures[0].Name]
		if !ok {
			return engine.errorValue(req, fmt.Sprintf("%s: measure %s missing", ErrEngineResponse, req.Measures[0]))
		}
		return &risk.ScalarResult{Date: req.PricingDate, Value: value}
	}

	multi := make(risk.MultiMeasureResult, len(req.Measures))
	for _, measure := range req.Measures {
		value, ok := values[measure.Name]
		if !ok {
			return engine.errorValue(req, fmt.Sprintf("%s: measure %s missing", ErrEngineResponse, measure))
		}
		multi[measure] = &risk.ScalarResult{Date: req.PricingDate, Value: value}
	}
	return multi
}

func (engine *RemoteEngine) errorValue(req *Request, reason string) *risk.ErrorValue {
	log.Warn().
		Str("RequestID", req.RequestID).
		Time("PricingDate", req.PricingDate).
		Str("Reason", reason).
		Msg("valuation failed")
	return &risk.ErrorValue{
		Date:      req.PricingDate,
		RequestID: req.RequestID,
		Reason:    reason,
	}
}
