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
	"github.com/deepflowio/persistent-libs/bit"
)

// 压缩二叉trie（big-endian Patricia）节点，构造后不可变：
//   - 叶子: mask为0，prefix即完整key，value为负载
//   - 分支: mask为单个置位比特，即左右子树key首次不同的最高比特位，
//     prefix保存mask以上的公共比特，mask及以下为0
//
// 分支的两个孩子均非nil，左子树该比特为0，右子树为1，
// 因此中序遍历即为key的无符号升序。
type node[V any] struct {
	prefix uint32
	mask   uint32
	left   *node[V]
	right  *node[V]
	value  V
}

func (n *node[V]) leaf() bool {
	return n.mask == 0
}

// key在mask及以下比特清零后的值
func maskAbove(key, mask uint32) uint32 {
	return key &^ (mask | (mask - 1))
}

func matchPrefix(key, prefix, mask uint32) bool {
	return maskAbove(key, mask) == prefix
}

func zeroBit(key, mask uint32) bool {
	return key&mask == 0
}

func branchingBit(p0, p1 uint32) uint32 {
	return bit.HighestSetBit32(p0 ^ p1)
}

// 以p0和p1首次不同的最高比特为界，将两棵prefix不相交的子树
// 合并到一个新分支下
func join[V any](p0 uint32, t0 *node[V], p1 uint32, t1 *node[V]) *node[V] {
	mask := branchingBit(p0, p1)
	prefix := maskAbove(p0, mask)
	if zeroBit(p0, mask) {
		return &node[V]{prefix: prefix, mask: mask, left: t0, right: t1}
	}
	return &node[V]{prefix: prefix, mask: mask, left: t1, right: t0}
}

// 返回key对应的叶子，未命中返回nil
func (n *node[V]) lookup(key uint32) *node[V] {
	for n != nil {
		if n.leaf() {
			if n.prefix == key {
				return n
			}
			return nil
		}
		if !matchPrefix(key, n.prefix, n.mask) {
			return nil
		}
		if zeroBit(key, n.mask) {
			n = n.left
		} else {
			n = n.right
		}
	}
	return nil
}

// 插入并返回新根，只复制自根到插入点的路径，其余子树原样共享。
// key已存在时用combine(旧值, 新值)合并，combine为nil则新值覆盖，
// 此时added为false。递归深度不超过key位宽。
func (n *node[V]) insert(key uint32, value V, combine func(oldValue, newValue V) V) (*node[V], bool) {
	if n == nil {
		return &node[V]{prefix: key, value: value}, true
	}
	if n.leaf() {
		if n.prefix == key {
			if combine != nil {
				value = combine(n.value, value)
			}
			return &node[V]{prefix: key, value: value}, false
		}
		return join(key, &node[V]{prefix: key, value: value}, n.prefix, n), true
	}
	if !matchPrefix(key, n.prefix, n.mask) {
		return join(key, &node[V]{prefix: key, value: value}, n.prefix, n), true
	}
	if zeroBit(key, n.mask) {
		left, added := n.left.insert(key, value, combine)
		return &node[V]{prefix: n.prefix, mask: n.mask, left: left, right: n.right}, added
	}
	right, added := n.right.insert(key, value, combine)
	return &node[V]{prefix: n.prefix, mask: n.mask, left: n.left, right: right}, added
}

// 删除并返回新根。key不存在时原样返回n（指针相同），
// 删除后只剩单个孩子的分支塌缩为该孩子。
func (n *node[V]) remove(key uint32) *node[V] {
	if n == nil {
		return nil
	}
	if n.leaf() {
		if n.prefix == key {
			return nil
		}
		return n
	}
	if !matchPrefix(key, n.prefix, n.mask) {
		return n
	}
	if zeroBit(key, n.mask) {
		left := n.left.remove(key)
		if left == n.left {
			return n
		}
		if left == nil {
			return n.right
		}
		return &node[V]{prefix: n.prefix, mask: n.mask, left: left, right: n.right}
	}
	right := n.right.remove(key)
	if right == n.right {
		return n
	}
	if right == nil {
		return n.left
	}
	return &node[V]{prefix: n.prefix, mask: n.mask, left: n.left, right: right}
}

func (n *node[V]) min() *node[V] {
	if n == nil {
		return nil
	}
	for !n.leaf() {
		n = n.left
	}
	return n
}

func (n *node[V]) max() *node[V] {
	if n == nil {
		return nil
	}
	for !n.leaf() {
		n = n.right
	}
	return n
}
