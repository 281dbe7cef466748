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

package hashset

// bucket is a persistent chain of equal-hash values, kept in strictly
// ascending order under the set's less function and free of duplicates.
// 相等性由less导出：!less(a, b) && !less(b, a) 即视为同一元素。
// 链表更新同样走路径复制，未修改的尾部在新旧版本间共享。
type bucket[T any] struct {
	value T
	next  *bucket[T]
}

// contains reports whether an element equal to v is present. The chain
// is sorted, so the walk stops at the first element not less than v.
func (b *bucket[T]) contains(v T, less func(a, b T) bool) bool {
	for ; b != nil; b = b.next {
		if less(b.value, v) {
			continue
		}
		return !less(v, b.value)
	}
	return false
}

// add returns the chain with v inserted at its sorted position. If an
// equal element is already present the receiver is returned unchanged,
// pointer identity lets callers skip the enclosing trie update.
func (b *bucket[T]) add(v T, less func(a, b T) bool) *bucket[T] {
	if b == nil {
		return &bucket[T]{value: v}
	}
	if less(v, b.value) {
		return &bucket[T]{value: v, next: b}
	}
	if !less(b.value, v) {
		// 等价元素已存在，原链返回
		return b
	}
	next := b.next.add(v, less)
	if next == b.next {
		return b
	}
	return &bucket[T]{value: b.value, next: next}
}

// remove returns the chain without the element equal to v. Removing an
// absent element returns the receiver unchanged, removing the last
// element returns nil so the caller can delete the trie leaf.
func (b *bucket[T]) remove(v T, less func(a, b T) bool) *bucket[T] {
	if b == nil {
		return nil
	}
	if less(v, b.value) {
		// v比当前元素小，不可能出现在后面
		return b
	}
	if !less(b.value, v) {
		return b.next
	}
	next := b.next.remove(v, less)
	if next == b.next {
		return b
	}
	return &bucket[T]{value: b.value, next: next}
}

func (b *bucket[T]) count() int {
	n := 0
	for ; b != nil; b = b.next {
		n++
	}
	return n
}

// walk yields elements in ascending order, stopping early on false.
func (b *bucket[T]) walk(yield func(T) bool) bool {
	for ; b != nil; b = b.next {
		if !yield(b.value) {
			return false
		}
	}
	return true
}

// values materializes the chain, used where descending order is needed.
func (b *bucket[T]) values() []T {
	out := make([]T, 0, b.count())
	for ; b != nil; b = b.next {
		out = append(out, b.value)
	}
	return out
}
