/*
 * Copyright (c) 2022 Yunshan Networks
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

package bit

import (
	"math/bits"
)

func CountTrailingZeros32(x uint32) int {
	return bits.TrailingZeros32(x)
}

func CountTrailingZeros64(x uint64) int {
	return bits.TrailingZeros64(x)
}

func CountLeadingZeros32(x uint32) int {
	return bits.LeadingZeros32(x)
}

func CountLeadingZeros64(x uint64) int {
	return bits.LeadingZeros64(x)
}

// HighestSetBit32返回x最高有效位对应的单比特值，x为0时返回0
func HighestSetBit32(x uint32) uint32 {
	if x == 0 {
		return 0
	}
	return 1 << uint(31-bits.LeadingZeros32(x))
}

func LowestSetBit32(x uint32) uint32 {
	return x & (-x)
}
