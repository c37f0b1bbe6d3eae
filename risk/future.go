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
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Future is a handle to an asynchronous computation's eventual Result. It
// resolves exactly once, either with a value or with an error.
type Future struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	result    Result
	err       error
	callbacks []func()
}

func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// SetResult resolves the future with a value. A per-date failure is an
// ordinary value here (an ErrorValue), not an error.
func (future *Future) SetResult(result Result) {
	future.resolve(result, nil)
}

// SetError resolves the future with a failure; reserved for defects in the
// machinery itself, never for per-date computation failures
func (future *Future) SetError(err error) {
	future.resolve(nil, err)
}

func (future *Future) resolve(result Result, err error) {
	future.mu.Lock()
	if future.resolved {
		future.mu.Unlock()
		log.Panic().Msg("future resolved more than once")
	}
	future.resolved = true
	future.result = result
	future.err = err
	callbacks := future.callbacks
	future.callbacks = nil
	close(future.done)
	future.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}

// Done returns a channel that is closed once the future has resolved
func (future *Future) Done() <-chan struct{} {
	return future.done
}

// Result blocks until the future resolves or ctx is cancelled
func (future *Future) Result(ctx context.Context) (Result, error) {
	select {
	case <-future.done:
		return future.result, future.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// value reads a resolved future without blocking; only call after Done
func (future *Future) value() (Result, error) {
	return future.result, future.err
}

// onResolved registers fn to run when the future resolves; if the future has
// already resolved fn runs immediately on the calling goroutine
func (future *Future) onResolved(fn func()) {
	future.mu.Lock()
	if future.resolved {
		future.mu.Unlock()
		fn()
		return
	}
	future.callbacks = append(future.callbacks, fn)
	future.mu.Unlock()
}

// CompositeFuture owns an ordered collection of child futures and a single
// outward future. The outward future resolves exactly once, after every
// child has resolved, with the composition of the children's values in
// child order. Children may resolve concurrently and in any order; the
// last completion triggers composition via an atomically decremented
// counter so the trigger fires exactly once and no completion is lost.
type CompositeFuture struct {
	futures []*Future
	outward *Future
	pending int32
}

func NewCompositeFuture(futures []*Future) *CompositeFuture {
	composite := &CompositeFuture{
		futures: futures,
		outward: NewFuture(),
		pending: int32(len(futures)),
	}

	if len(futures) == 0 {
		composite.outward.SetError(ErrNoResults)
		return composite
	}

	for _, child := range futures {
		child.onResolved(composite.childResolved)
	}

	return composite
}

// Future returns the outward future callers observe
func (composite *CompositeFuture) Future() *Future {
	return composite.outward
}

// Futures returns the ordered child futures for callers that want to poll
// individual dates; the documented contract is to await the outward future
func (composite *CompositeFuture) Futures() []*Future {
	children := make([]*Future, len(composite.futures))
	copy(children, composite.futures)
	return children
}

func (composite *CompositeFuture) childResolved() {
	if atomic.AddInt32(&composite.pending, -1) != 0 {
		return
	}
	composite.setResult()
}

// setResult runs on whichever goroutine resolved the last child; every
// child is resolved at this point so the value reads never block
func (composite *CompositeFuture) setResult() {
	results := make([]Result, 0, len(composite.futures))
	for _, child := range composite.futures {
		result, err := child.value()
		if err != nil {
			// a child failed outside the ErrorValue channel; carry it
			// through composition as data like any other failed date
			result = &ErrorValue{Reason: err.Error()}
		}
		results = append(results, result)
	}

	aggregate, err := ComposeResults(results)
	if err != nil {
		composite.outward.SetError(err)
		return
	}
	composite.outward.SetResult(aggregate)
}
