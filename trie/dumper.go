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
	"fmt"
	"strings"
)

// String renders the trie shape, one node per line, children indented
// under their branch. Intended for debug dumps, not for parsing.
func (m Map[V]) String() string {
	if m.root == nil {
		return "empty\n"
	}
	sb := &strings.Builder{}
	m.root.dump(sb, 0)
	return sb.String()
}

func (n *node[V]) dump(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.leaf() {
		fmt.Fprintf(sb, "%sleaf %#08x: %v\n", indent, n.prefix, n.value)
		return
	}
	fmt.Fprintf(sb, "%sbranch %#08x/%#08x\n", indent, n.prefix, n.mask)
	n.left.dump(sb, depth+1)
	n.right.dump(sb, depth+1)
}
