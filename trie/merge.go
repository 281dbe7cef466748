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

// 两棵trie的成对合并。mask不同时，mask较大（prefix较短）的分支在上，
// 另一棵树递归进它prefix匹配的那个孩子；mask和prefix都相同时左右孩子
// 成对递归；prefix不相交时join。未被触及的子树全部按指针共享。

// Union returns a Map containing every key of m and other. Keys present
// in both are merged with combine(key, m's value, other's value), a nil
// combine keeps m's value.
func (m Map[V]) Union(other Map[V], combine func(key uint32, a, b V) V) Map[V] {
	return Map[V]{root: union(m.root, other.root, combine)}
}

// Intersect returns a Map containing the keys present in both m and
// other, merged with combine as in Union.
func (m Map[V]) Intersect(other Map[V], combine func(key uint32, a, b V) V) Map[V] {
	return Map[V]{root: intersect(m.root, other.root, combine)}
}

// Difference returns a Map containing the keys of m absent from other.
func (m Map[V]) Difference(other Map[V]) Map[V] {
	return Map[V]{root: difference(m.root, other.root)}
}

func union[V any](s, t *node[V], combine func(key uint32, a, b V) V) *node[V] {
	if s == nil {
		return t
	}
	if t == nil {
		return s
	}
	if s == t && combine == nil {
		return s
	}
	if s.leaf() {
		root, _ := t.insert(s.prefix, s.value, func(oldValue, newValue V) V {
			if combine == nil {
				return newValue
			}
			return combine(s.prefix, newValue, oldValue)
		})
		return root
	}
	if t.leaf() {
		root, _ := s.insert(t.prefix, t.value, func(oldValue, newValue V) V {
			if combine == nil {
				return oldValue
			}
			return combine(t.prefix, oldValue, newValue)
		})
		return root
	}
	if s.mask == t.mask && s.prefix == t.prefix {
		left := union(s.left, t.left, combine)
		right := union(s.right, t.right, combine)
		if left == s.left && right == s.right {
			return s
		}
		if left == t.left && right == t.right {
			return t
		}
		return &node[V]{prefix: s.prefix, mask: s.mask, left: left, right: right}
	}
	if s.mask > t.mask {
		if matchPrefix(t.prefix, s.prefix, s.mask) {
			if zeroBit(t.prefix, s.mask) {
				left := union(s.left, t, combine)
				if left == s.left {
					return s
				}
				return &node[V]{prefix: s.prefix, mask: s.mask, left: left, right: s.right}
			}
			right := union(s.right, t, combine)
			if right == s.right {
				return s
			}
			return &node[V]{prefix: s.prefix, mask: s.mask, left: s.left, right: right}
		}
	} else if s.mask < t.mask {
		if matchPrefix(s.prefix, t.prefix, t.mask) {
			if zeroBit(s.prefix, t.mask) {
				left := union(s, t.left, combine)
				if left == t.left {
					return t
				}
				return &node[V]{prefix: t.prefix, mask: t.mask, left: left, right: t.right}
			}
			right := union(s, t.right, combine)
			if right == t.right {
				return t
			}
			return &node[V]{prefix: t.prefix, mask: t.mask, left: t.left, right: right}
		}
	}
	return join(s.prefix, s, t.prefix, t)
}

func intersect[V any](s, t *node[V], combine func(key uint32, a, b V) V) *node[V] {
	if s == nil || t == nil {
		return nil
	}
	if s == t && combine == nil {
		return s
	}
	if s.leaf() {
		if found := t.lookup(s.prefix); found != nil {
			if combine == nil {
				return s
			}
			return &node[V]{prefix: s.prefix, value: combine(s.prefix, s.value, found.value)}
		}
		return nil
	}
	if t.leaf() {
		if found := s.lookup(t.prefix); found != nil {
			if combine == nil {
				return found
			}
			return &node[V]{prefix: t.prefix, value: combine(t.prefix, found.value, t.value)}
		}
		return nil
	}
	if s.mask == t.mask && s.prefix == t.prefix {
		left := intersect(s.left, t.left, combine)
		right := intersect(s.right, t.right, combine)
		if left == nil {
			return right
		}
		if right == nil {
			return left
		}
		if left == s.left && right == s.right {
			return s
		}
		return &node[V]{prefix: s.prefix, mask: s.mask, left: left, right: right}
	}
	if s.mask > t.mask {
		if matchPrefix(t.prefix, s.prefix, s.mask) {
			if zeroBit(t.prefix, s.mask) {
				return intersect(s.left, t, combine)
			}
			return intersect(s.right, t, combine)
		}
	} else if s.mask < t.mask {
		if matchPrefix(s.prefix, t.prefix, t.mask) {
			if zeroBit(s.prefix, t.mask) {
				return intersect(s, t.left, combine)
			}
			return intersect(s, t.right, combine)
		}
	}
	return nil
}

func difference[V any](s, t *node[V]) *node[V] {
	if s == nil {
		return nil
	}
	if t == nil {
		return s
	}
	if s == t {
		return nil
	}
	if s.leaf() {
		if t.lookup(s.prefix) != nil {
			return nil
		}
		return s
	}
	if t.leaf() {
		return s.remove(t.prefix)
	}
	if s.mask == t.mask && s.prefix == t.prefix {
		left := difference(s.left, t.left)
		right := difference(s.right, t.right)
		if left == s.left && right == s.right {
			return s
		}
		if left == nil {
			return right
		}
		if right == nil {
			return left
		}
		return &node[V]{prefix: s.prefix, mask: s.mask, left: left, right: right}
	}
	if s.mask > t.mask {
		if matchPrefix(t.prefix, s.prefix, s.mask) {
			if zeroBit(t.prefix, s.mask) {
				left := difference(s.left, t)
				if left == s.left {
					return s
				}
				if left == nil {
					return s.right
				}
				return &node[V]{prefix: s.prefix, mask: s.mask, left: left, right: s.right}
			}
			right := difference(s.right, t)
			if right == s.right {
				return s
			}
			if right == nil {
				return s.left
			}
			return &node[V]{prefix: s.prefix, mask: s.mask, left: s.left, right: right}
		}
		return s
	}
	if s.mask < t.mask {
		if matchPrefix(s.prefix, t.prefix, t.mask) {
			if zeroBit(s.prefix, t.mask) {
				return difference(s, t.left)
			}
			return difference(s, t.right)
		}
		return s
	}
	return s
}
