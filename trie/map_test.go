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
	"errors"
	"math/rand"
	"testing"
)

func TestInsertLookup(t *testing.T) {
	keys := []uint32{5, 3, 11, 2, 17, 4, 12, 14}
	values := []string{"a", "b", "f", "d", "a", "g", "b", "c"}
	m := Map[string]{}
	for i := range keys {
		m = m.Insert(keys[i], values[i])
	}
	validateShape(t, m.root)

	if m.Count() != 8 {
		t.Errorf("Expected %v found %v", 8, m.Count())
	}
	for i := range keys {
		if v, ok := m.Get(keys[i]); !ok || v != values[i] {
			t.Errorf("Expected %v found %v/%v", values[i], v, ok)
		}
	}

	expected := []Entry[string]{
		{2, "d"}, {3, "b"}, {4, "g"}, {5, "a"},
		{11, "f"}, {12, "b"}, {14, "c"}, {17, "a"},
	}
	entries := m.Entries()
	if len(entries) != len(expected) {
		t.Fatalf("Expected %v found %v", len(expected), len(entries))
	}
	for i := range expected {
		if entries[i] != expected[i] {
			t.Errorf("Expected %v found %v", expected[i], entries[i])
		}
	}
}

func TestLastWriteWins(t *testing.T) {
	m := Map[int]{}
	baseline := make(map[uint32]int)
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		key := uint32(r.Intn(1000))
		m = m.Insert(key, i)
		baseline[key] = i
	}
	validateShape(t, m.root)

	if m.Count() != len(baseline) {
		t.Errorf("Expected %v found %v", len(baseline), m.Count())
	}
	for key, value := range baseline {
		if v, ok := m.Get(key); !ok || v != value {
			t.Errorf("Expected %v found %v/%v", value, v, ok)
		}
	}
}

func TestGetMiss(t *testing.T) {
	m := Map[string]{}.Insert(1, "a")
	if v, ok := m.Get(2); ok || v != "" {
		t.Errorf("Expected miss found %v/%v", v, ok)
	}
	if !m.Contains(1) || m.Contains(2) {
		t.Error("Contains mismatch")
	}
}

func TestFind(t *testing.T) {
	m := Map[string]{}.Insert(1, "a")
	if v, err := m.Find(1); err != nil || v != "a" {
		t.Errorf("Expected a found %v/%v", v, err)
	}
	if _, err := m.Find(2); !errors.Is(err, NotFoundError) {
		t.Errorf("Expected NotFoundError found %v", err)
	}
}

func TestInsertWith(t *testing.T) {
	add := func(oldValue, newValue int) int { return oldValue + newValue }
	m := Map[int]{}.InsertWith(7, 1, add)
	m = m.InsertWith(7, 2, add)
	m = m.InsertWith(8, 5, add)
	if v, _ := m.Get(7); v != 3 {
		t.Errorf("Expected %v found %v", 3, v)
	}
	if v, _ := m.Get(8); v != 5 {
		t.Errorf("Expected %v found %v", 5, v)
	}
	if m.Count() != 2 {
		t.Errorf("Expected %v found %v", 2, m.Count())
	}
}

func TestRemove(t *testing.T) {
	m := Map[uint32]{}
	for key := uint32(0); key < 100; key++ {
		m = m.Insert(key, key*10)
	}
	for key := uint32(0); key < 100; key += 2 {
		m = m.Remove(key)
	}
	validateShape(t, m.root)

	if m.Count() != 50 {
		t.Errorf("Expected %v found %v", 50, m.Count())
	}
	for key := uint32(0); key < 100; key++ {
		_, ok := m.Get(key)
		if key%2 == 0 && ok {
			t.Errorf("Expected miss for %v", key)
		}
		if key%2 == 1 && !ok {
			t.Errorf("Expected hit for %v", key)
		}
	}

	for key := uint32(1); key < 100; key += 2 {
		m = m.Remove(key)
	}
	if !m.IsEmpty() {
		t.Error("Expected empty found non-empty")
	}
}

// 删除不存在的key必须原样返回，结构完全共享
func TestRemoveAbsentShares(t *testing.T) {
	m := Map[int]{}.Insert(1, 1).Insert(2, 2).Insert(3, 3)
	m2 := m.Remove(1000)
	if m2.root != m.root {
		t.Error("Expected identical root found copy")
	}
	empty := Map[int]{}
	if empty.Remove(1).root != nil {
		t.Error("Expected nil root found node")
	}
}

func TestRemoveRandom(t *testing.T) {
	m := Map[int]{}
	baseline := make(map[uint32]int)
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		key := uint32(r.Intn(500))
		if r.Intn(3) == 0 {
			m = m.Remove(key)
			delete(baseline, key)
		} else {
			m = m.Insert(key, i)
			baseline[key] = i
		}
		if i%500 == 0 {
			validateShape(t, m.root)
		}
	}
	validateShape(t, m.root)
	if m.Count() != len(baseline) {
		t.Errorf("Expected %v found %v", len(baseline), m.Count())
	}
	for key, value := range baseline {
		if v, ok := m.Get(key); !ok || v != value {
			t.Errorf("Expected %v found %v/%v", value, v, ok)
		}
	}
}

func TestUnsignedOrder(t *testing.T) {
	keys := []uint32{0x80000000, 0, 0xffffffff, 1, 0x7fffffff}
	m := Map[struct{}]{}
	for _, key := range keys {
		m = m.Insert(key, struct{}{})
	}
	expected := []uint32{0, 1, 0x7fffffff, 0x80000000, 0xffffffff}
	got := m.Keys()
	if len(got) != len(expected) {
		t.Fatalf("Expected %v found %v", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected %#08x found %#08x", expected[i], got[i])
		}
	}
}

func TestAllAscending(t *testing.T) {
	m := Map[int]{}
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		m = m.Insert(r.Uint32(), i)
	}
	first := true
	last := uint32(0)
	for key := range m.All() {
		if !first && key <= last {
			t.Fatalf("Expected ascending order found %#08x after %#08x", key, last)
		}
		first = false
		last = key
	}
}

func TestBackward(t *testing.T) {
	m := Map[int]{}
	for _, key := range []uint32{5, 3, 11, 2, 17} {
		m = m.Insert(key, int(key))
	}
	expected := []uint32{17, 11, 5, 3, 2}
	i := 0
	for key := range m.Backward() {
		if key != expected[i] {
			t.Errorf("Expected %v found %v", expected[i], key)
		}
		i++
	}
	if i != len(expected) {
		t.Errorf("Expected %v found %v", len(expected), i)
	}
}

func TestIterEarlyBreak(t *testing.T) {
	m := Map[int]{}
	for key := uint32(0); key < 100; key++ {
		m = m.Insert(key, 0)
	}
	seen := 0
	for range m.All() {
		seen++
		if seen == 3 {
			break
		}
	}
	if seen != 3 {
		t.Errorf("Expected %v found %v", 3, seen)
	}
}

func TestMinMax(t *testing.T) {
	m := Map[string]{}
	if _, _, ok := m.Min(); ok {
		t.Error("Expected false found true")
	}
	if _, _, ok := m.Max(); ok {
		t.Error("Expected false found true")
	}
	m = m.Insert(42, "x").Insert(7, "y").Insert(0x80000001, "z")
	if key, v, ok := m.Min(); !ok || key != 7 || v != "y" {
		t.Errorf("Expected 7/y found %v/%v", key, v)
	}
	if key, v, ok := m.Max(); !ok || key != 0x80000001 || v != "z" {
		t.Errorf("Expected 0x80000001/z found %#08x/%v", key, v)
	}
}

// 插入高位不相交的key后，原有子树必须整体按指针共享
func TestStructuralSharing(t *testing.T) {
	m1 := Map[int]{}
	for key := uint32(0); key < 8; key++ {
		m1 = m1.Insert(key, int(key))
	}
	m2 := m1.Insert(0x80000000, -1)
	if m2.root.left != m1.root {
		t.Error("Expected shared subtree found copy")
	}
	// 旧快照不受影响
	if m1.Count() != 8 || m2.Count() != 9 {
		t.Errorf("Expected 8/9 found %v/%v", m1.Count(), m2.Count())
	}
	if _, ok := m1.Get(0x80000000); ok {
		t.Error("Expected miss in old snapshot found hit")
	}
}

func TestFold(t *testing.T) {
	m := Map[int]{}
	for _, key := range []uint32{5, 3, 11} {
		m = m.Insert(key, int(key)*10)
	}
	keys := Fold(m, []uint32(nil), func(acc []uint32, key uint32, _ int) []uint32 {
		return append(acc, key)
	})
	expected := []uint32{3, 5, 11}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("Expected %v found %v", expected[i], keys[i])
		}
	}
	sum := Fold(m, 0, func(acc int, _ uint32, value int) int { return acc + value })
	if sum != 190 {
		t.Errorf("Expected %v found %v", 190, sum)
	}

	back := FoldBack(m, []uint32(nil), func(acc []uint32, key uint32, _ int) []uint32 {
		return append(acc, key)
	})
	expectedBack := []uint32{11, 5, 3}
	for i := range expectedBack {
		if back[i] != expectedBack[i] {
			t.Errorf("Expected %v found %v", expectedBack[i], back[i])
		}
	}
}

func TestConversions(t *testing.T) {
	src := map[uint32]string{2: "d", 17: "a", 5: "a"}
	m := FromMap(src)
	if m.Count() != 3 {
		t.Errorf("Expected %v found %v", 3, m.Count())
	}
	round := m.ToMap()
	for key, value := range src {
		if round[key] != value {
			t.Errorf("Expected %v found %v", value, round[key])
		}
	}

	m2 := FromSlice([]Entry[string]{{1, "x"}, {2, "y"}, {1, "z"}})
	if v, _ := m2.Get(1); v != "z" {
		t.Errorf("Expected %v found %v", "z", v)
	}

	m3 := Collect(m.All())
	if m3.Count() != m.Count() {
		t.Errorf("Expected %v found %v", m.Count(), m3.Count())
	}

	keys, values := m.Keys(), m.Values()
	if len(keys) != 3 || len(values) != 3 {
		t.Fatalf("Expected 3/3 found %v/%v", len(keys), len(values))
	}
	if keys[0] != 2 || values[0] != "d" {
		t.Errorf("Expected 2/d found %v/%v", keys[0], values[0])
	}
}

func TestDumper(t *testing.T) {
	m := Map[string]{}
	if m.String() != "empty\n" {
		t.Errorf("Expected empty found %q", m.String())
	}
	m = m.Insert(1, "a").Insert(2, "b")
	out := m.String()
	if len(out) == 0 {
		t.Error("Expected dump found empty string")
	}
}

func BenchmarkInsert(b *testing.B) {
	m := Map[int]{}
	for i := 0; i < b.N; i++ {
		m = m.Insert(uint32(i), i)
	}
}

func BenchmarkGet(b *testing.B) {
	m := Map[int]{}
	for i := 0; i < 100000; i++ {
		m = m.Insert(uint32(i), i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Get(uint32(i % 100000))
	}
}
