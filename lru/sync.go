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
	"sync"

	"github.com/deepflowio/persistent-libs/stats"
	"github.com/deepflowio/persistent-libs/utils"
)

type Option = interface{}

// OptionOnEvicted sets a callback invoked for every entry dropped by
// capacity pressure, Add或Resize淘汰时在锁内回调，不可重入本cache。
type OptionOnEvicted[V any] func(key uint32, value V)

type Counter struct {
	Hit     uint64 `statsd:"hit,counter"`
	Miss    uint64 `statsd:"miss,counter"`
	Evicted uint64 `statsd:"evicted,counter"`
	Size    int    `statsd:"size,gauge"`
}

// SyncCache shares one Cache between goroutines behind a mutex.
// 写入者持锁更新当前版本，读取者可以用Snapshot拿走一个不可变快照，
// 之后的读取不需要持锁，也不会被写入者阻塞。
type SyncCache[V any] struct {
	utils.Closable

	name string

	mutex     sync.Mutex
	cache     Cache[V]
	counter   *Counter
	onEvicted OptionOnEvicted[V]
}

// NewSyncCache returns a shared cache registered for statsd counters
// and for persistctl inspection.
func NewSyncCache[V any](module string, capacity int, options ...Option) *SyncCache[V] {
	c := NewSyncCacheNoStats[V](module, capacity)
	statOptions := []stats.Option{stats.OptionStatTags{"module": module}}
	for _, option := range options {
		switch option.(type) {
		case OptionOnEvicted[V]:
			c.onEvicted = option.(OptionOnEvicted[V])
		case stats.OptionStatTags:
			statOptions = append(statOptions, option.(stats.OptionStatTags))
		default:
			panic(fmt.Sprintf("Unknown option %v", option))
		}
	}
	stats.RegisterCountable("lru", c, statOptions...)
	registerForDebug(c)
	return c
}

func NewSyncCacheNoStats[V any](module string, capacity int) *SyncCache[V] {
	return &SyncCache[V]{
		name:    module,
		cache:   New[V](capacity),
		counter: &Counter{},
	}
}

func (c *SyncCache[V]) Name() string {
	return c.name
}

func (c *SyncCache[V]) Close() error {
	deregisterForDebug(c)
	return c.Closable.Close()
}

func (c *SyncCache[V]) GetCounter() interface{} {
	var counter *Counter
	c.mutex.Lock()
	counter, c.counter = c.counter, &Counter{}
	counter.Size = c.cache.Len()
	c.mutex.Unlock()
	return counter
}

func (c *SyncCache[V]) Add(key uint32, value V) {
	c.mutex.Lock()
	size := c.cache.Len()
	var evictKey uint32
	var evictValue V
	// 只有新键在容量打满时才会淘汰，提前记下将被挤掉的最老表项
	mayEvict := size == c.cache.Cap() && c.cache.Cap() > 0 && !c.cache.Contain(key)
	if mayEvict {
		evictKey, evictValue, _ = c.cache.Oldest()
	}
	c.cache = c.cache.Add(key, value)
	if mayEvict && c.cache.Len() == size {
		c.counter.Evicted++
		if c.onEvicted != nil {
			c.onEvicted(evictKey, evictValue)
		}
	}
	c.mutex.Unlock()
}

func (c *SyncCache[V]) Get(key uint32) (V, bool) {
	c.mutex.Lock()
	value, cache, ok := c.cache.Get(key)
	c.cache = cache
	if ok {
		c.counter.Hit++
	} else {
		c.counter.Miss++
	}
	c.mutex.Unlock()
	return value, ok
}

// Peek will return the key's value but not promote it.
func (c *SyncCache[V]) Peek(key uint32) (V, bool) {
	c.mutex.Lock()
	value, ok := c.cache.Peek(key)
	if ok {
		c.counter.Hit++
	} else {
		c.counter.Miss++
	}
	c.mutex.Unlock()
	return value, ok
}

// Contain will check if a key is in the cache but not promote it.
func (c *SyncCache[V]) Contain(key uint32) bool {
	c.mutex.Lock()
	ok := c.cache.Contain(key)
	c.mutex.Unlock()
	return ok
}

func (c *SyncCache[V]) Remove(key uint32) {
	c.mutex.Lock()
	c.cache = c.cache.Remove(key)
	c.mutex.Unlock()
}

func (c *SyncCache[V]) Resize(capacity int) {
	c.mutex.Lock()
	size := c.cache.Len()
	if drop := size - capacity; drop > 0 && c.onEvicted != nil {
		for key, value := range c.cache.All() {
			if drop == 0 {
				break
			}
			c.onEvicted(key, value)
			drop--
		}
	}
	c.cache = c.cache.Resize(capacity)
	c.counter.Evicted += uint64(size - c.cache.Len())
	c.mutex.Unlock()
}

func (c *SyncCache[V]) Len() int {
	c.mutex.Lock()
	size := c.cache.Len()
	c.mutex.Unlock()
	return size
}

// Snapshot returns the current cache value. The snapshot is immutable,
// iterating it cannot block or be blocked by concurrent writers.
func (c *SyncCache[V]) Snapshot() Cache[V] {
	c.mutex.Lock()
	snapshot := c.cache
	c.mutex.Unlock()
	return snapshot
}
