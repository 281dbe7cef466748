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

package codec

import (
	"testing"
)

func TestWriteU8(t *testing.T) {
	e := &SimpleEncoder{}
	e.WriteU8(0x2)
	exp := []byte{0x2}
	if len(e.String()) != len(exp) {
		t.Errorf("Expected %v found %v", len(exp), len(e.String()))
	}
	for i := 0; i < len(exp); i++ {
		if e.buf[i] != exp[i] {
			t.Errorf("Expected %v found %v", exp[i], e.buf[i])
		}
	}
}

func TestWriteU16(t *testing.T) {
	e := &SimpleEncoder{}
	e.WriteU16(0x1234)
	exp := []byte{0x34, 0x12}
	if len(e.String()) != len(exp) {
		t.Errorf("Expected %v found %v", len(exp), len(e.String()))
	}
	for i := 0; i < len(exp); i++ {
		if e.buf[i] != exp[i] {
			t.Errorf("Expected %v found %v", exp[i], e.buf[i])
		}
	}
}

func TestWriteU32(t *testing.T) {
	e := &SimpleEncoder{}
	e.WriteU32(0x12345678)
	exp := []byte{0x78, 0x56, 0x34, 0x12}
	if len(e.String()) != len(exp) {
		t.Errorf("Expected %v found %v", len(exp), len(e.String()))
	}
	for i := 0; i < len(exp); i++ {
		if e.buf[i] != exp[i] {
			t.Errorf("Expected %v found %v", exp[i], e.buf[i])
		}
	}
}

func TestWriteU64(t *testing.T) {
	e := &SimpleEncoder{}
	d := &SimpleDecoder{}
	e.WriteU64(0x123456789abcdef0)
	expU8 := []byte{0xf0, 0xde, 0xbc, 0x9a, 0x78, 0x56, 0x34, 0x12}
	d.Init(e.Bytes())
	for i := 0; i < len(expU8); i++ {
		v := d.ReadU8()
		if v != expU8[i] {
			t.Errorf("Expected %v found %v", expU8[i], v)
		}
	}

	expU32 := []uint32{0x9abcdef0, 0x12345678}
	d.Init(e.Bytes())
	for i := 0; i < len(expU32); i++ {
		v := d.ReadU32()
		if v != expU32[i] {
			t.Errorf("Expected %v found %v", expU32[i], v)
		}
	}

	expU64 := []uint64{0x123456789abcdef0}
	d.Init(e.Bytes())
	for i := 0; i < len(expU64); i++ {
		v := d.ReadU64()
		if v != expU64[i] {
			t.Errorf("Expected %v found %v", expU64[i], v)
		}
	}
}

func TestWriteString255(t *testing.T) {
	e := &SimpleEncoder{}
	d := &SimpleDecoder{}
	e.WriteString255("persistent")
	e.WriteString255("")
	d.Init(e.Bytes())
	if v := d.ReadString255(); v != "persistent" {
		t.Errorf("Expected %v found %v", "persistent", v)
	}
	if v := d.ReadString255(); v != "" {
		t.Errorf("Expected %v found %v", "", v)
	}
	if d.Failed() {
		t.Error("Expected false found true")
	}
}

func TestWriteU32Slice(t *testing.T) {
	e := &SimpleEncoder{}
	d := &SimpleDecoder{}
	exp := []uint32{0, 1, 0x12345678, 0xffffffff}
	e.WriteU32Slice(exp)
	d.Init(e.Bytes())
	vs := d.ReadU32Slice()
	if len(vs) != len(exp) {
		t.Fatalf("Expected %v found %v", len(exp), len(vs))
	}
	for i := 0; i < len(exp); i++ {
		if vs[i] != exp[i] {
			t.Errorf("Expected %v found %v", exp[i], vs[i])
		}
	}
}

func TestDecodeFailed(t *testing.T) {
	d := &SimpleDecoder{}
	d.Init([]byte{0x1})
	d.ReadU32()
	if !d.Failed() {
		t.Error("Expected true found false")
	}
}

func TestVarintU32(t *testing.T) {
	e := &SimpleEncoder{}
	d := &SimpleDecoder{}

	expU32 := []uint32{1, 1<<7 + 10, 1<<14 + 10, 1<<21 + 10, 1<<28 + 10, 1 << 31, 0, 0xffffffff}

	for _, v := range expU32 {
		e.WriteVarintU32(v)
	}

	d.Init(e.Bytes())
	for i := 0; i < len(expU32); i++ {
		v := d.ReadVarintU32()
		if v != expU32[i] {
			t.Errorf("Expected %v found %v", expU32[i], v)
		}
	}
	if !d.IsEnd() {
		t.Error("Expected true found false")
	}
}

func TestVarintU64(t *testing.T) {
	e := &SimpleEncoder{}
	d := &SimpleDecoder{}

	expU64 := []uint64{1, 1<<7 + 10, 1<<14 + 10, 1<<21 + 10, 1<<28 + 10, 1<<35 + 10, 1<<42 + 10, 1<<49 + 10, 1<<56 + 10, 1 << 63, 0, 0xffffffffffffffff}

	for _, v := range expU64 {
		e.WriteVarintU64(v)
	}

	d.Init(e.Bytes())
	for i := 0; i < len(expU64); i++ {
		v := d.ReadVarintU64()
		if v != expU64[i] {
			t.Errorf("Expected %v found %v", expU64[i], v)
		}
	}
}

func TestAcquireRelease(t *testing.T) {
	e := AcquireSimpleEncoder()
	e.WriteU32(0x12345678)
	PseudoCloneSimpleEncoder(e)
	ReleaseSimpleEncoder(e)
	if len(e.Bytes()) != 4 {
		t.Errorf("Expected %v found %v", 4, len(e.Bytes()))
	}
	ReleaseSimpleEncoder(e)
}
