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

// Package cache provides a small TTL-expiring cache keyed by a hashed
// string, used to avoid refetching the appliance-info document on every
// request.
package cache

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

type entry struct {
	val     []byte
	expires time.Time
}

// TTLCache is a cache keyed by uint64 string hashes (see Key) with a
// background sweep that evicts expired entries.
type TTLCache struct {
	mut sync.RWMutex
	set map[uint64]entry

	ttl  time.Duration
	done chan struct{}
}

// New creates a TTLCache and starts its background GC goroutine.
func New(ttl time.Duration) *TTLCache {
	c := &TTLCache{
		set:  make(map[uint64]entry),
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go c.gc()
	return c
}

// Close stops the background GC goroutine.
func (c *TTLCache) Close() {
	close(c.done)
}

// Key hashes a cache key string with xxhash, the same cache-key
// derivation used across the key/value entries stored here.
func Key(s string) uint64 {
	return xxhash.Sum64String(s)
}

func (c *TTLCache) Set(key uint64, val []byte) {
	c.mut.Lock()
	defer c.mut.Unlock()
	c.set[key] = entry{val: val, expires: time.Now().Add(c.ttl)}
}

func (c *TTLCache) Get(key uint64) ([]byte, bool) {
	c.mut.RLock()
	defer c.mut.RUnlock()

	e, ok := c.set[key]
	if !ok || time.Now().After(e.expires) {
		return nil, false
	}
	return e.val, true
}

func (c *TTLCache) gc() {
	ticker := time.NewTicker(c.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mut.Lock()
			now := time.Now()
			for k, v := range c.set {
				if now.After(v.expires) {
					delete(c.set, k)
				}
			}
			c.mut.Unlock()

		case <-c.done:
			return
		}
	}
}
