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

// Package trie implements persistent maps and ordered traversal over
// uint32 keys, backed by a compressed binary trie with structural sharing.
package trie

import (
	"errors"
	"iter"
)

// NotFoundError is returned by Find when the key is absent.
var NotFoundError = errors.New("key not found")

// Map is a persistent uint32-keyed map. The zero value is an empty map.
// Map本身只是根指针的包装，更新操作返回新Map，旧Map保持可用，
// 任意多个goroutine可并发读取各自持有的快照，无需加锁。
type Map[V any] struct {
	root *node[V]
}

type Entry[V any] struct {
	Key   uint32
	Value V
}

func (m Map[V]) IsEmpty() bool {
	return m.root == nil
}

// Count walks the trie to count keys, it is O(n).
func (m Map[V]) Count() int {
	return m.root.count()
}

func (m Map[V]) Contains(key uint32) bool {
	return m.root.lookup(key) != nil
}

// Get returns the value for key, false if absent.
func (m Map[V]) Get(key uint32) (V, bool) {
	if leaf := m.root.lookup(key); leaf != nil {
		return leaf.value, true
	}
	var zero V
	return zero, false
}

// Find is Get for callers that require a hit, absence is NotFoundError.
func (m Map[V]) Find(key uint32) (V, error) {
	if leaf := m.root.lookup(key); leaf != nil {
		return leaf.value, nil
	}
	var zero V
	return zero, NotFoundError
}

// Insert returns a new Map with key bound to value, last write wins.
func (m Map[V]) Insert(key uint32, value V) Map[V] {
	root, _ := m.root.insert(key, value, nil)
	return Map[V]{root: root}
}

// InsertWith is Insert, except an existing binding is merged with
// combine(old, new) instead of being overwritten.
func (m Map[V]) InsertWith(key uint32, value V, combine func(oldValue, newValue V) V) Map[V] {
	root, _ := m.root.insert(key, value, combine)
	return Map[V]{root: root}
}

// Remove returns a new Map without key. Removing an absent key returns
// m unchanged, sharing the entire structure.
func (m Map[V]) Remove(key uint32) Map[V] {
	root := m.root.remove(key)
	if root == m.root {
		return m
	}
	return Map[V]{root: root}
}

// Min returns the binding with the smallest key, false on an empty Map.
func (m Map[V]) Min() (uint32, V, bool) {
	if leaf := m.root.min(); leaf != nil {
		return leaf.prefix, leaf.value, true
	}
	var zero V
	return 0, zero, false
}

// Max returns the binding with the largest key, false on an empty Map.
func (m Map[V]) Max() (uint32, V, bool) {
	if leaf := m.root.max(); leaf != nil {
		return leaf.prefix, leaf.value, true
	}
	var zero V
	return 0, zero, false
}

// All ranges over all bindings in ascending unsigned key order.
func (m Map[V]) All() iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		m.root.all(yield)
	}
}

// Backward ranges over all bindings in descending unsigned key order.
func (m Map[V]) Backward() iter.Seq2[uint32, V] {
	return func(yield func(uint32, V) bool) {
		m.root.backward(yield)
	}
}

// Fold accumulates over all bindings in ascending key order.
func Fold[V, A any](m Map[V], initial A, folder func(A, uint32, V) A) A {
	state := initial
	m.root.all(func(key uint32, value V) bool {
		state = folder(state, key, value)
		return true
	})
	return state
}

// FoldBack accumulates over all bindings in descending key order.
func FoldBack[V, A any](m Map[V], initial A, folder func(A, uint32, V) A) A {
	state := initial
	m.root.backward(func(key uint32, value V) bool {
		state = folder(state, key, value)
		return true
	})
	return state
}
