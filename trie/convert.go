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

package trie

import (
	"iter"
)

// Keys returns all keys in ascending unsigned order.
func (m Map[V]) Keys() []uint32 {
	keys := make([]uint32, 0, m.Count())
	m.root.all(func(key uint32, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns all values in ascending key order.
func (m Map[V]) Values() []V {
	values := make([]V, 0, m.Count())
	m.root.all(func(_ uint32, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

// Entries returns all bindings in ascending key order.
func (m Map[V]) Entries() []Entry[V] {
	entries := make([]Entry[V], 0, m.Count())
	m.root.all(func(key uint32, value V) bool {
		entries = append(entries, Entry[V]{Key: key, Value: value})
		return true
	})
	return entries
}

func (m Map[V]) ToMap() map[uint32]V {
	ret := make(map[uint32]V, m.Count())
	m.root.all(func(key uint32, value V) bool {
		ret[key] = value
		return true
	})
	return ret
}

// FromSlice builds a Map by repeated insertion, last write wins on
// duplicate keys.
func FromSlice[V any](entries []Entry[V]) Map[V] {
	m := Map[V]{}
	for _, e := range entries {
		m = m.Insert(e.Key, e.Value)
	}
	return m
}

func FromMap[V any](src map[uint32]V) Map[V] {
	m := Map[V]{}
	for key, value := range src {
		m = m.Insert(key, value)
	}
	return m
}

// Collect builds a Map from any key/value sequence, last write wins.
func Collect[V any](seq iter.Seq2[uint32, V]) Map[V] {
	m := Map[V]{}
	for key, value := range seq {
		m = m.Insert(key, value)
	}
	return m
}
