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

package utils

// 可嵌入其它结构体中，用于标记注销状态，注意不保证跨线程的即时可见性
type Closable struct {
	closed bool
}

func (c *Closable) Close() error {
	c.closed = true
	return nil
}

func (c *Closable) Closed() bool {
	return c.closed
}
