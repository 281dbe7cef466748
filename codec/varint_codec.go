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

// 低7位编码数据，最高位表示后续字节是否仍属于该数
func (e *SimpleEncoder) WriteVarintU32(v uint32) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

func (e *SimpleEncoder) WriteVarintU64(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

func (d *SimpleDecoder) ReadVarintU32() uint32 {
	v := uint32(0)
	for shift := uint(0); shift < 35; shift += 7 {
		d.offset++
		if d.offset > len(d.buf) {
			d.err++
			return 0
		}
		b := d.buf[d.offset-1]
		v |= uint32(b&0x7f) << shift
		if b < 0x80 {
			return v
		}
	}
	d.err++
	return 0
}

func (d *SimpleDecoder) ReadVarintU64() uint64 {
	v := uint64(0)
	for shift := uint(0); shift < 70; shift += 7 {
		d.offset++
		if d.offset > len(d.buf) {
			d.err++
			return 0
		}
		b := d.buf[d.offset-1]
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v
		}
	}
	d.err++
	return 0
}
