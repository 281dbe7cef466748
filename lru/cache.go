/*
 * Copyright (c) 2024 Yunshan Networks
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package lru implements a persistent LRU cache on top of the trie
// package. Updates return a new Cache, old versions stay valid and
// share structure with the new ones.
package lru

import (
	"math"

	logging "github.com/op/go-logging"

	"github.com/deepflowio/persistent-libs/trie"
)

var log = logging.MustGetLogger("lru")

// entry is the primary-trie payload, the value plus the recency stamp
// locating the key in the byRecency index.
type entry[V any] struct {
	recency uint32
	value   V
}

// Cache is a persistent uint32-keyed LRU cache built from two tries
// sharing one recency numbering:
//
//	primary:   key -> (recency, value)
//	byRecency: recency -> key
//
// 两棵树互为镜像，byRecency的最小键就是最久未使用的key，
// 淘汰时先查byRecency再删两边。
type Cache[V any] struct {
	primary   trie.Map[entry[V]]
	byRecency trie.Map[uint32]
	capacity  int
	nextIndex uint32
	size      int
}

// New returns an empty cache holding at most capacity entries. A
// capacity of 0 is legal and turns Add into a no-op.
func New[V any](capacity int) Cache[V] {
	if capacity < 0 {
		panic("lru: negative capacity")
	}
	return Cache[V]{capacity: capacity}
}

func (c Cache[V]) Len() int {
	return c.size
}

func (c Cache[V]) Cap() int {
	return c.capacity
}

// Contain checks if a key is in the cache without promoting it.
func (c Cache[V]) Contain(key uint32) bool {
	return c.primary.Contains(key)
}

// Peek returns the key's value without promoting it.
func (c Cache[V]) Peek(key uint32) (V, bool) {
	if e, ok := c.primary.Get(key); ok {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Oldest returns the least recently used binding, false on an empty
// cache. This is the entry the next capacity eviction would drop.
func (c Cache[V]) Oldest() (uint32, V, bool) {
	_, key, ok := c.byRecency.Min()
	if !ok {
		var zero V
		return 0, zero, false
	}
	e, ok := c.primary.Get(key)
	if !ok {
		log.Panicf("byRecency key %d missing from primary", key)
	}
	return key, e.value, true
}

// Get returns the value and the cache with key promoted to most
// recently used. A hit always mints a fresh recency stamp, a miss
// returns the receiver unchanged.
func (c Cache[V]) Get(key uint32) (V, Cache[V], bool) {
	e, ok := c.primary.Get(key)
	if !ok {
		var zero V
		return zero, c, false
	}
	return e.value, c.touch(key, e.recency, e.value), true
}

// Add returns the cache containing key bound to value as the most
// recently used entry. An existing key is updated in place, a new key
// may evict the least recently used entry to stay within capacity.
func (c Cache[V]) Add(key uint32, value V) Cache[V] {
	if c.capacity == 0 {
		return c
	}
	if e, ok := c.primary.Get(key); ok {
		return c.touch(key, e.recency, value)
	}
	c = c.renumberIfNeeded()
	recency := c.nextIndex
	c.primary = c.primary.Insert(key, entry[V]{recency: recency, value: value})
	c.byRecency = c.byRecency.Insert(recency, key)
	c.nextIndex++
	c.size++
	if c.size > c.capacity {
		c = c.removeOldest()
	}
	return c
}

// Remove returns the cache without key. Removing an absent key returns
// the receiver unchanged.
func (c Cache[V]) Remove(key uint32) Cache[V] {
	e, ok := c.primary.Get(key)
	if !ok {
		return c
	}
	c.primary = c.primary.Remove(key)
	c.byRecency = c.byRecency.Remove(e.recency)
	c.size--
	return c
}

// Resize returns the cache with the new capacity, evicting oldest
// entries while the current size exceeds it.
func (c Cache[V]) Resize(capacity int) Cache[V] {
	if capacity < 0 {
		panic("lru: negative capacity")
	}
	c.capacity = capacity
	for c.size > capacity {
		c = c.removeOldest()
	}
	return c
}

// Clear returns an empty cache with the same capacity.
func (c Cache[V]) Clear() Cache[V] {
	return New[V](c.capacity)
}

// touch mints a fresh recency stamp for key, rebinding both tries.
func (c Cache[V]) touch(key uint32, oldRecency uint32, value V) Cache[V] {
	if c.nextIndex == math.MaxUint32 {
		c = c.renumber()
		// 重编号改变了已有表项的recency，重新读取
		if e, ok := c.primary.Get(key); ok {
			oldRecency = e.recency
		}
	}
	recency := c.nextIndex
	c.primary = c.primary.Insert(key, entry[V]{recency: recency, value: value})
	c.byRecency = c.byRecency.Remove(oldRecency).Insert(recency, key)
	c.nextIndex++
	return c
}

func (c Cache[V]) removeOldest() Cache[V] {
	recency, key, ok := c.byRecency.Min()
	if !ok {
		return c
	}
	c.primary = c.primary.Remove(key)
	c.byRecency = c.byRecency.Remove(recency)
	c.size--
	return c
}

func (c Cache[V]) renumberIfNeeded() Cache[V] {
	if c.nextIndex == math.MaxUint32 {
		return c.renumber()
	}
	return c
}

// renumber compacts recency stamps to [0, size) preserving relative
// age, both tries are rebuilt. Only runs when nextIndex is about to
// wrap, which takes 2^32 stamps to reach.
func (c Cache[V]) renumber() Cache[V] {
	var primary trie.Map[entry[V]]
	var byRecency trie.Map[uint32]
	next := uint32(0)
	for _, key := range c.byRecency.All() {
		e, ok := c.primary.Get(key)
		if !ok {
			log.Panicf("byRecency key %d missing from primary", key)
		}
		primary = primary.Insert(key, entry[V]{recency: next, value: e.value})
		byRecency = byRecency.Insert(next, key)
		next++
	}
	c.primary, c.byRecency, c.nextIndex = primary, byRecency, next
	return c
}
