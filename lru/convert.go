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

package lru

import (
	"iter"
	"sort"
)

type Pair[V any] struct {
	Key   uint32
	Value V
}

// All ranges over key/value pairs from oldest to newest.
func (c Cache[V]) All() iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		for _, key := range c.byRecency.All() {
			if e, ok := c.primary.Get(key); ok {
				if !yield(key, e.value) {
					return
				}
			}
		}
	}
}

// Backward ranges over key/value pairs from newest to oldest.
func (c Cache[V]) Backward() iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		for _, key := range c.byRecency.Backward() {
			if e, ok := c.primary.Get(key); ok {
				if !yield(key, e.value) {
					return
				}
			}
		}
	}
}

// Keys returns a slice of all keys, from oldest to newest.
func (c Cache[V]) Keys() []uint32 {
	keys := make([]uint32, 0, c.size)
	for key := range c.All() {
		keys = append(keys, key)
	}
	return keys
}

// Values returns a slice of all values, from oldest to newest.
func (c Cache[V]) Values() []V {
	values := make([]V, 0, c.size)
	for _, value := range c.All() {
		values = append(values, value)
	}
	return values
}

// Entries returns all pairs, from oldest to newest.
func (c Cache[V]) Entries() []Pair[V] {
	entries := make([]Pair[V], 0, c.size)
	for key, value := range c.All() {
		entries = append(entries, Pair[V]{Key: key, Value: value})
	}
	return entries
}

func (c Cache[V]) ToMap() map[uint32]V {
	out := make(map[uint32]V, c.size)
	for key, value := range c.All() {
		out[key] = value
	}
	return out
}

// FromSlice adds all pairs in order, the last max-capacity ones
// survive.
func FromSlice[V any](capacity int, pairs []Pair[V]) Cache[V] {
	c := New[V](capacity)
	for _, pair := range pairs {
		c = c.Add(pair.Key, pair.Value)
	}
	return c
}

// FromMap adds all bindings in ascending key order so that the result
// is deterministic.
func FromMap[V any](capacity int, m map[uint32]V) Cache[V] {
	keys := make([]uint32, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	c := New[V](capacity)
	for _, key := range keys {
		c = c.Add(key, m[key])
	}
	return c
}

// Collect adds all pairs of seq in order, the last max-capacity ones
// survive.
func Collect[V any](capacity int, seq iter.Seq2[uint32, V]) Cache[V] {
	c := New[V](capacity)
	for key, value := range seq {
		c = c.Add(key, value)
	}
	return c
}
