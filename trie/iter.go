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

// 遍历一律使用显式栈而非原生递归，栈中只存放分支节点，
// 深度不超过key位宽，叶子直接消费不入栈。

const maxStackDepth = 33

func (n *node[V]) count() int {
	if n == nil {
		return 0
	}
	if n.leaf() {
		return 1
	}
	count := 0
	stack := make([]*node[V], 0, maxStackDepth)
	stack = append(stack, n)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.left.leaf() {
			count++
			if n.right.leaf() {
				count++
			} else {
				stack = append(stack, n.right)
			}
			continue
		}
		if n.right.leaf() {
			count++
			stack = append(stack, n.left)
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return count
}

// 升序遍历，yield返回false时中止并返回false
func (n *node[V]) all(yield func(uint32, V) bool) bool {
	if n == nil {
		return true
	}
	stack := make([]*node[V], 0, maxStackDepth)
	stack = append(stack, n)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.leaf() {
			if !yield(n.prefix, n.value) {
				return false
			}
			continue
		}
		if n.left.leaf() {
			if !yield(n.left.prefix, n.left.value) {
				return false
			}
			if n.right.leaf() {
				if !yield(n.right.prefix, n.right.value) {
					return false
				}
			} else {
				stack = append(stack, n.right)
			}
			continue
		}
		stack = append(stack, n.right, n.left)
	}
	return true
}

// 降序遍历
func (n *node[V]) backward(yield func(uint32, V) bool) bool {
	if n == nil {
		return true
	}
	stack := make([]*node[V], 0, maxStackDepth)
	stack = append(stack, n)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.leaf() {
			if !yield(n.prefix, n.value) {
				return false
			}
			continue
		}
		if n.right.leaf() {
			if !yield(n.right.prefix, n.right.value) {
				return false
			}
			if n.left.leaf() {
				if !yield(n.left.prefix, n.left.value) {
					return false
				}
			} else {
				stack = append(stack, n.left)
			}
			continue
		}
		stack = append(stack, n.left, n.right)
	}
	return true
}
