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
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/quantward/qw-api/common"
	"github.com/quantward/qw-api/risk"
	"github.com/rs/zerolog/log"
)

// CachingEngine decorates another engine with the shared pricing cache.
// Requests with UseCache unset pass straight through. Error values are
// never cached; a later run may succeed.
type CachingEngine struct {
	engine Engine
}

func NewCachingEngine(engine Engine) *CachingEngine {
	return &CachingEngine{engine: engine}
}

func (caching *CachingEngine) Submit(ctx context.Context, req *Request) *risk.Future {
	if !req.UseCache {
		return caching.engine.Submit(ctx, req)
	}

	key := cacheKey(req)
	if raw, err := common.CacheGet(key); err == nil {
		if result, err := risk.UnmarshalResult(raw); err == nil {
			future := risk.NewFuture()
			future.SetResult(result)
			return future
		}
		log.Warn().Str("Key", key).Msg("discarding undecodable cache entry")
	}

	future := caching.engine.Submit(ctx, req)
	go func() {
		result, err := future.Result(context.Background())
		if err != nil {
			return
		}
		if _, failed := result.(*risk.ErrorValue); failed {
			return
		}
		raw, err := risk.MarshalResult(result)
		if err != nil {
			log.Error().Err(err).Str("Key", key).Msg("could not marshal result for cache")
			return
		}
		if err := common.CacheSet(key, raw); err != nil {
			log.Warn().Err(err).Str("Key", key).Msg("could not store result in cache")
		}
	}()
	return future
}

func cacheKey(req *Request) string {
	measures := make([]string, 0, len(req.Measures))
	for _, measure := range req.Measures {
		measures = append(measures, measure.Name)
	}
	sort.Strings(measures)

	return fmt.Sprintf("price:%s:%s:%s:%s",
		req.Priceable.AssetID(),
		strings.Join(measures, ","),
		req.PricingDate.Format("2006-01-02"),
		req.MarketDataLocation)
}
