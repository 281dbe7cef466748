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
	"testing"
)

func TestCountTrailingZeros32(t *testing.T) {
	for exp := 0; exp <= 32; exp++ {
		x := uint32(1) << uint32(exp)
		if exp != CountTrailingZeros32(x) {
			t.Errorf("Expected %v found %v", exp, CountTrailingZeros32(x))
		}
	}
}

func TestCountTrailingZeros64(t *testing.T) {
	for exp := 0; exp <= 64; exp++ {
		x := uint64(1) << uint64(exp)
		if exp != CountTrailingZeros64(x) {
			t.Errorf("Expected %v found %v", exp, CountTrailingZeros64(x))
		}
	}
}

func TestCountLeadingZeros32(t *testing.T) {
	for exp := 0; exp < 32; exp++ {
		x := uint32(1) << uint32(exp)
		if 31-exp != CountLeadingZeros32(x) {
			t.Errorf("Expected %v found %v", 31-exp, CountLeadingZeros32(x))
		}
	}
	if CountLeadingZeros32(0) != 32 {
		t.Errorf("Expected 32 found %v", CountLeadingZeros32(0))
	}
}

func TestCountLeadingZeros64(t *testing.T) {
	for exp := 0; exp < 64; exp++ {
		x := uint64(1) << uint64(exp)
		if 63-exp != CountLeadingZeros64(x) {
			t.Errorf("Expected %v found %v", 63-exp, CountLeadingZeros64(x))
		}
	}
	if CountLeadingZeros64(0) != 64 {
		t.Errorf("Expected 64 found %v", CountLeadingZeros64(0))
	}
}

func TestHighestSetBit32(t *testing.T) {
	for exp := 0; exp < 32; exp++ {
		x := uint32(1) << uint32(exp)
		if x != HighestSetBit32(x) {
			t.Errorf("Expected %v found %v", x, HighestSetBit32(x))
		}
		// 低位再置位不影响最高位
		if x != HighestSetBit32(x | (x - 1)) {
			t.Errorf("Expected %v found %v", x, HighestSetBit32(x|(x-1)))
		}
	}
	if HighestSetBit32(0) != 0 {
		t.Errorf("Expected 0 found %v", HighestSetBit32(0))
	}
}

func TestLowestSetBit32(t *testing.T) {
	for exp := 0; exp < 32; exp++ {
		x := uint32(1) << uint32(exp)
		if x != LowestSetBit32(x|0x80000000) && exp != 31 {
			t.Errorf("Expected %v found %v", x, LowestSetBit32(x|0x80000000))
		}
	}
}
