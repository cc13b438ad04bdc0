/*
 * MIT License
 *
 * Copyright (c) 2022-2026 Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package collection

import (
	"runtime"
	"sync"

	"github.com/zeebo/xxh3"
)

const maxShards = 64

// shard is a single partition of a ShardedMap.
type shard[V any] struct {
	sync.RWMutex
	data map[string]V
}

// ShardedMap is a concurrent map partitioned into shards to reduce
// lock contention. Keys are distributed across shards with xxh3.
type ShardedMap[V any] struct {
	shards []*shard[V]
}

// NewShardedMap creates an instance of ShardedMap. The shard count is
// derived from the number of available processors and capped at maxShards.
func NewShardedMap[V any]() *ShardedMap[V] {
	numShards := runtime.NumCPU() * 2
	if numShards > maxShards {
		numShards = maxShards
	}
	shards := make([]*shard[V], numShards)
	for i := range shards {
		shards[i] = &shard[V]{
			data: make(map[string]V),
		}
	}
	return &ShardedMap[V]{shards: shards}
}

// Load returns the value stored under the given key.
func (s *ShardedMap[V]) Load(key string) (V, bool) {
	sh := s.shard(key)
	sh.RLock()
	val, ok := sh.data[key]
	sh.RUnlock()
	return val, ok
}

// Store adds a key/value pair to the map.
func (s *ShardedMap[V]) Store(key string, value V) {
	sh := s.shard(key)
	sh.Lock()
	sh.data[key] = value
	sh.Unlock()
}

// Delete removes the given key from the map.
func (s *ShardedMap[V]) Delete(key string) {
	sh := s.shard(key)
	sh.Lock()
	delete(sh.data, key)
	sh.Unlock()
}

// DeleteIf removes the given key only when the stored value satisfies
// the given predicate. It reports whether a removal happened.
func (s *ShardedMap[V]) DeleteIf(key string, predicate func(V) bool) bool {
	sh := s.shard(key)
	sh.Lock()
	defer sh.Unlock()
	val, ok := sh.data[key]
	if !ok || !predicate(val) {
		return false
	}
	delete(sh.data, key)
	return true
}

// Range iterates over the map entries and applies the given function.
func (s *ShardedMap[V]) Range(f func(key string, value V)) {
	for _, sh := range s.shards {
		sh.RLock()
		for k, v := range sh.data {
			f(k, v)
		}
		sh.RUnlock()
	}
}

// Len returns the total number of entries across all shards.
func (s *ShardedMap[V]) Len() int {
	count := 0
	for _, sh := range s.shards {
		sh.RLock()
		count += len(sh.data)
		sh.RUnlock()
	}
	return count
}

// Reset removes all entries from the map.
func (s *ShardedMap[V]) Reset() {
	for _, sh := range s.shards {
		sh.Lock()
		clear(sh.data)
		sh.Unlock()
	}
}

// shard returns the shard owning the given key.
func (s *ShardedMap[V]) shard(key string) *shard[V] {
	hash := xxh3.HashString(key)
	return s.shards[hash%uint64(len(s.shards))]
}
