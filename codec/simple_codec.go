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
	"unsafe"

	"encoding/binary"

	"github.com/deepflowio/persistent-libs/pool"
)

// buffered encoder
type SimpleEncoder struct {
	buf []byte

	pool.ReferenceCount
}

func (e *SimpleEncoder) WriteBool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

func (e *SimpleEncoder) WriteU8(v byte) {
	e.buf = append(e.buf, v)
}

func (e *SimpleEncoder) WriteU16(v uint16) {
	s := [2]byte{}
	binary.LittleEndian.PutUint16(s[:], v)
	e.buf = append(e.buf, s[:]...)
}

func (e *SimpleEncoder) WriteU32(v uint32) {
	s := [4]byte{}
	binary.LittleEndian.PutUint32(s[:], v)
	e.buf = append(e.buf, s[:]...)
}

func (e *SimpleEncoder) WriteU32Slice(vs []uint32) {
	e.WriteU32(uint32(len(vs)))
	s := [4]byte{}
	for _, v := range vs {
		binary.LittleEndian.PutUint32(s[:], v)
		e.buf = append(e.buf, s[:]...)
	}
}

func (e *SimpleEncoder) WriteU64(v uint64) {
	s := [8]byte{}
	binary.LittleEndian.PutUint64(s[:], v)
	e.buf = append(e.buf, s[:]...)
}

// 注意：将会截断至255字节
func (e *SimpleEncoder) WriteString255(v string) {
	length := len(v)
	if length > 255 {
		length = 255
	}

	e.buf = append(e.buf, byte(length))
	e.buf = append(e.buf, []byte(v)[:length]...)
}

func (e *SimpleEncoder) WriteRawString(v string) {
	e.buf = append(e.buf, []byte(v)...)
}

func (e *SimpleEncoder) WriteBytes(v []byte) {
	e.WriteU32(uint32(len(v)))
	e.buf = append(e.buf, v...)
}

func (e *SimpleEncoder) Reset() {
	e.buf = e.buf[:0]
}

func (e *SimpleEncoder) Bytes() []byte {
	return e.buf
}

func (e *SimpleEncoder) RefOfString() string {
	if e.buf == nil {
		return ""
	}
	return *(*string)(unsafe.Pointer(&e.buf))
}

func (e *SimpleEncoder) String() string {
	return string(e.buf)
}

// pool of encoder
var simpleEncoderPool = pool.NewLockFreePool(func() *SimpleEncoder {
	return new(SimpleEncoder)
})

func AcquireSimpleEncoder() *SimpleEncoder {
	e := simpleEncoderPool.Get()
	e.ReferenceCount.Reset()
	return e
}

func ReleaseSimpleEncoder(encoder *SimpleEncoder) {
	if encoder.SubReferenceCount() {
		return
	}
	encoder.Reset()
	simpleEncoderPool.Put(encoder)
}

func PseudoCloneSimpleEncoder(encoder *SimpleEncoder) {
	encoder.AddReferenceCount()
}

// simple decoder
type SimpleDecoder struct {
	buf    []byte
	offset int
	err    int
}

func (d *SimpleDecoder) Init(buf []byte) {
	d.buf = buf
	d.offset = 0
	d.err = 0
}

func (d *SimpleDecoder) ReadBool() bool {
	d.offset++
	if d.offset > len(d.buf) {
		d.err++
		return false
	}
	return d.buf[d.offset-1] == 1
}

func (d *SimpleDecoder) ReadU8() byte {
	d.offset++
	if d.offset > len(d.buf) {
		d.err++
		return 0
	}
	return d.buf[d.offset-1]
}

func (d *SimpleDecoder) ReadU16() uint16 {
	d.offset += 2
	if d.offset > len(d.buf) {
		d.err++
		return 0
	}
	return binary.LittleEndian.Uint16(d.buf[d.offset-2 : d.offset])
}

func (d *SimpleDecoder) ReadU32() uint32 {
	d.offset += 4
	if d.offset > len(d.buf) {
		d.err++
		return 0
	}
	return binary.LittleEndian.Uint32(d.buf[d.offset-4 : d.offset])
}

func (d *SimpleDecoder) ReadU32Slice() []uint32 {
	l := int(d.ReadU32())
	if l == 0 {
		return nil
	}
	d.offset += l * 4
	if d.offset > len(d.buf) {
		d.err++
		return nil
	}

	ret := make([]uint32, 0, l)
	for i := l; i > 0; i-- {
		ret = append(ret, binary.LittleEndian.Uint32(d.buf[d.offset-4*i:d.offset-4*i+4]))
	}

	return ret
}

func (d *SimpleDecoder) ReadU64() uint64 {
	d.offset += 8
	if d.offset > len(d.buf) {
		d.err++
		return 0
	}
	return binary.LittleEndian.Uint64(d.buf[d.offset-8 : d.offset])
}

func (d *SimpleDecoder) ReadString255() string {
	l := int(d.ReadU8())
	d.offset += l
	if d.offset > len(d.buf) {
		d.err++
		return ""
	}
	return string(d.buf[d.offset-l : d.offset])
}

func (d *SimpleDecoder) ReadBytes() []byte {
	l := int(d.ReadU32())
	d.offset += l
	if d.offset > len(d.buf) {
		d.err++
		return nil
	}
	return d.buf[d.offset-l : d.offset]
}

func (d *SimpleDecoder) Offset() int {
	return d.offset
}

func (d *SimpleDecoder) Failed() bool {
	return d.err != 0
}

func (d *SimpleDecoder) IsEnd() bool {
	return d.offset >= len(d.buf)
}

func (d *SimpleDecoder) Bytes() []byte {
	return d.buf
}

func (d *SimpleDecoder) String() string {
	return string(d.buf)
}
