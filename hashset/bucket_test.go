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

import (
	"reflect"
	"testing"
)

func intLess(a, b int) bool { return a < b }

func buildBucket(values ...int) *bucket[int] {
	var b *bucket[int]
	for _, v := range values {
		b = b.add(v, intLess)
	}
	return b
}

func TestBucketAddSorted(t *testing.T) {
	b := buildBucket(5, 1, 3, 2, 4)
	expected := []int{1, 2, 3, 4, 5}
	if values := b.values(); !reflect.DeepEqual(values, expected) {
		t.Errorf("Expected %v found %v", expected, values)
	}
	if count := b.count(); count != 5 {
		t.Errorf("Expected 5 found %d", count)
	}
}

func TestBucketAddExisting(t *testing.T) {
	b := buildBucket(1, 2, 3, 4)
	for _, v := range []int{1, 3, 4} {
		if again := b.add(v, intLess); again != b {
			t.Errorf("Expected identical bucket after re-adding %d", v)
		}
	}
}

func TestBucketContains(t *testing.T) {
	b := buildBucket(1, 3, 5)
	for _, v := range []int{1, 3, 5} {
		if !b.contains(v, intLess) {
			t.Errorf("Expected to contain %d", v)
		}
	}
	for _, v := range []int{0, 2, 4, 6} {
		if b.contains(v, intLess) {
			t.Errorf("Expected not to contain %d", v)
		}
	}
}

func TestBucketRemove(t *testing.T) {
	b := buildBucket(1, 2, 3)
	if values := b.remove(2, intLess).values(); !reflect.DeepEqual(values, []int{1, 3}) {
		t.Errorf("Expected [1 3] found %v", values)
	}
	if values := b.remove(1, intLess).values(); !reflect.DeepEqual(values, []int{2, 3}) {
		t.Errorf("Expected [2 3] found %v", values)
	}
	if values := b.remove(3, intLess).values(); !reflect.DeepEqual(values, []int{1, 2}) {
		t.Errorf("Expected [1 2] found %v", values)
	}
	if again := b.remove(4, intLess); again != b {
		t.Error("Expected identical bucket after removing an absent element")
	}
	if again := b.remove(0, intLess); again != b {
		t.Error("Expected identical bucket after removing an absent element")
	}
}

func TestBucketRemoveLast(t *testing.T) {
	b := buildBucket(7)
	if emptied := b.remove(7, intLess); emptied != nil {
		t.Errorf("Expected nil found %v", emptied.values())
	}
}

func TestBucketSharing(t *testing.T) {
	b1 := buildBucket(2, 3)
	b2 := b1.add(1, intLess)
	if b2.next != b1 {
		t.Error("Expected the old chain to be shared as heir of the new head")
	}
	if values := b1.values(); !reflect.DeepEqual(values, []int{2, 3}) {
		t.Errorf("Expected old version untouched, found %v", values)
	}
}

func TestBucketWalkEarlyStop(t *testing.T) {
	b := buildBucket(1, 2, 3, 4)
	visited := []int{}
	b.walk(func(v int) bool {
		visited = append(visited, v)
		return v < 2
	})
	if !reflect.DeepEqual(visited, []int{1, 2}) {
		t.Errorf("Expected [1 2] found %v", visited)
	}
}
