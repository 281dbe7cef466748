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

// Package hashset implements a persistent hash set on top of the trie
// package. Values hash to a uint32 trie key, equal-hash values share a
// sorted collision bucket.
package hashset

import (
	"bytes"
	"iter"

	"github.com/OneOfOne/xxhash"

	"github.com/deepflowio/persistent-libs/trie"
)

// Set is a persistent set of T. Updates return a new Set, old versions
// stay valid and share structure with the new ones. The zero value is
// unusable, construct with New or one of the typed helpers.
//
// hash与less由调用方提供，要求less是全序且与元素相等一致，
// hash对相等元素必须返回相同值。
type Set[T any] struct {
	root trie.Map[*bucket[T]]
	hash func(T) uint32
	less func(a, b T) bool
}

// New returns an empty Set over the given capability functions.
// Both functions are required, nil panics immediately rather than at
// first use.
func New[T any](hash func(T) uint32, less func(a, b T) bool) Set[T] {
	if hash == nil || less == nil {
		panic("hashset: New requires non-nil hash and less functions")
	}
	return Set[T]{hash: hash, less: less}
}

// Strings returns a set of strings hashed with xxhash.
func Strings(values ...string) Set[string] {
	s := New(xxhash.ChecksumString32, func(a, b string) bool { return a < b })
	return s.AddSlice(values)
}

// Bytes returns a set of byte slices hashed with xxhash. Elements are
// compared by content, callers must not mutate stored slices.
func Bytes(values ...[]byte) Set[[]byte] {
	s := New(xxhash.Checksum32, func(a, b []byte) bool { return bytes.Compare(a, b) < 0 })
	return s.AddSlice(values)
}

// Uint32s returns a set of uint32 values, hashing is the identity.
func Uint32s(values ...uint32) Set[uint32] {
	s := New(func(v uint32) uint32 { return v }, func(a, b uint32) bool { return a < b })
	return s.AddSlice(values)
}

func (s Set[T]) IsEmpty() bool {
	return s.root.IsEmpty()
}

// Count walks all buckets, it is O(n).
func (s Set[T]) Count() int {
	return trie.Fold(s.root, 0, func(n int, _ uint32, b *bucket[T]) int {
		return n + b.count()
	})
}

func (s Set[T]) Contains(v T) bool {
	b, ok := s.root.Get(s.hash(v))
	return ok && b.contains(v, s.less)
}

// Add returns a new Set containing v. Adding a present element returns
// s unchanged, sharing the entire structure.
func (s Set[T]) Add(v T) Set[T] {
	key := s.hash(v)
	old, ok := s.root.Get(key)
	if !ok {
		return s.with(s.root.Insert(key, &bucket[T]{value: v}))
	}
	b := old.add(v, s.less)
	if b == old {
		return s
	}
	return s.with(s.root.Insert(key, b))
}

// AddSlice adds all values in order.
func (s Set[T]) AddSlice(values []T) Set[T] {
	for _, v := range values {
		s = s.Add(v)
	}
	return s
}

// Remove returns a new Set without v. Removing an absent element
// returns s unchanged. An emptied bucket deletes its trie leaf so that
// lookups never meet a nil bucket.
func (s Set[T]) Remove(v T) Set[T] {
	key := s.hash(v)
	old, ok := s.root.Get(key)
	if !ok {
		return s
	}
	b := old.remove(v, s.less)
	if b == old {
		return s
	}
	if b == nil {
		return s.with(s.root.Remove(key))
	}
	return s.with(s.root.Insert(key, b))
}

// All ranges over all elements, ordered by ascending hash and within a
// bucket by ascending less.
func (s Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, b := range s.root.All() {
			if !b.walk(yield) {
				return
			}
		}
	}
}

// Backward ranges over all elements in the reverse of All's order.
func (s Set[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, b := range s.root.Backward() {
			values := b.values()
			for i := len(values) - 1; i >= 0; i-- {
				if !yield(values[i]) {
					return
				}
			}
		}
	}
}

func (s Set[T]) ToSlice() []T {
	out := make([]T, 0, s.Count())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

func (s Set[T]) with(root trie.Map[*bucket[T]]) Set[T] {
	return Set[T]{root: root, hash: s.hash, less: s.less}
}

// Fold accumulates over all elements in All order.
func Fold[T, A any](s Set[T], initial A, folder func(A, T) A) A {
	state := initial
	for v := range s.All() {
		state = folder(state, v)
	}
	return state
}

// FoldBack accumulates over all elements in Backward order.
func FoldBack[T, A any](s Set[T], initial A, folder func(A, T) A) A {
	state := initial
	for v := range s.Backward() {
		state = folder(state, v)
	}
	return state
}
