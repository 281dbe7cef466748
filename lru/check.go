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
	"fmt"

	"github.com/Workiva/go-datastructures/bitarray"
)

// CheckConsistency verifies the two tries form a bijection: every
// primary entry carries a distinct recency below nextIndex, byRecency
// maps it back to the same key, and both sides agree with size.
// 仅供测试和persistctl诊断使用，正常路径不调用。
func (c Cache[V]) CheckConsistency() error {
	seen := bitarray.NewSparseBitArray()
	n := 0
	for key, e := range c.primary.All() {
		if e.recency >= c.nextIndex {
			return fmt.Errorf("key %d recency %d not below nextIndex %d", key, e.recency, c.nextIndex)
		}
		if set, _ := seen.GetBit(uint64(e.recency)); set {
			return fmt.Errorf("recency %d minted for more than one key", e.recency)
		}
		seen.SetBit(uint64(e.recency))
		back, ok := c.byRecency.Get(e.recency)
		if !ok {
			return fmt.Errorf("key %d recency %d missing from byRecency", key, e.recency)
		}
		if back != key {
			return fmt.Errorf("recency %d maps to key %d, expected %d", e.recency, back, key)
		}
		n++
	}
	if n != c.size {
		return fmt.Errorf("size %d but primary holds %d entries", c.size, n)
	}
	if recencies := c.byRecency.Count(); recencies != n {
		return fmt.Errorf("primary holds %d entries but byRecency %d", n, recencies)
	}
	if c.size > c.capacity {
		return fmt.Errorf("size %d exceeds capacity %d", c.size, c.capacity)
	}
	return nil
}
