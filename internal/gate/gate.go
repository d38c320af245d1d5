// Copyright 2025 The packetd Authors
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

// Package gate implements the bounded cross-request concurrency limit
// described in spec.md §5 ("maxquery"): a counting semaphore that
// serializes HTTP acquisition fairly across goroutines and respects
// context cancellation while waiting.
package gate

import "context"

// Gate is a fair, cancellable counting semaphore.
type Gate struct {
	tokens chan struct{}
}

// New returns a Gate allowing up to n concurrent holders.
func New(n int) *Gate {
	if n <= 0 {
		n = 1
	}
	return &Gate{tokens: make(chan struct{}, n)}
}

// Acquire blocks until a slot is free or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	select {
	case g.tokens <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot to the gate.
func (g *Gate) Release() {
	select {
	case <-g.tokens:
	default:
	}
}
