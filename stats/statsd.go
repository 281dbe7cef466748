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

package stats

import (
	"fmt"
	"os"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	logging "github.com/op/go-logging"
	statsd "gopkg.in/alexcesaro/statsd.v2"
)

var log = logging.MustGetLogger("stats")

const (
	DEFAULT_STATSD_ADDR = "127.0.0.1:8125"
	TICK_CYCLE          = time.Second
)

type StatSource struct {
	module    string
	interval  time.Duration
	countable Countable
	tags      OptionStatTags
	skip      int
	client    *statsd.Client
}

func (s *StatSource) Equal(other *StatSource) bool {
	if s.module != other.module || len(s.tags) != len(other.tags) {
		return false
	}
	for key, value := range s.tags {
		if other.tags[key] != value {
			return false
		}
	}
	return true
}

func (s *StatSource) String() string {
	return fmt.Sprintf("%s%s", s.module, s.tags.String())
}

// tag的key value对按key排序，保证不同进程上报的series一致
func (s *StatSource) tagsOptions() []string {
	keys := make([]string, 0, len(s.tags))
	for key := range s.tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	kvPairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		kvPairs = append(kvPairs, key, s.tags[key])
	}
	return kvPairs
}

var (
	processName = strings.Replace(path.Base(os.Args[0]), "-", "_", -1)
	hostname, _ = os.Hostname()

	lock         sync.Mutex
	remoteAddr   = DEFAULT_STATSD_ADDR
	statsdClient *statsd.Client
	statSources  []*StatSource

	runOnce sync.Once
)

func setRemote(addr string) {
	lock.Lock()
	remoteAddr = addr
	if statsdClient != nil {
		statsdClient.Close()
		statsdClient = nil
	}
	for _, source := range statSources {
		source.client = nil
	}
	lock.Unlock()
}

func setHostname(name string) {
	lock.Lock()
	hostname = name
	for _, source := range statSources {
		source.tags["host"] = name
		source.client = nil
	}
	lock.Unlock()
}

func registerCountable(module string, countable Countable, opts ...Option) error {
	source := &StatSource{
		module:    module,
		interval:  MinInterval,
		countable: countable,
		tags:      OptionStatTags{},
		skip:      1,
	}
	for _, opt := range opts {
		if tags, ok := opt.(OptionStatTags); ok {
			for key, value := range tags {
				source.tags[key] = value
			}
		} else if interval, ok := opt.(OptionInterval); ok {
			source.interval = time.Duration(interval)
		}
	}
	if source.interval < MinInterval {
		source.interval = MinInterval
	}
	source.tags["host"] = hostname

	lock.Lock()
	for i, old := range statSources {
		if old.Equal(source) {
			// 重复注册，可能存在未注销的Countable
			log.Warningf("stat source %s already registered, replaced", old)
			statSources[i] = statSources[len(statSources)-1]
			statSources = statSources[:len(statSources)-1]
			break
		}
	}
	statSources = append(statSources, source)
	lock.Unlock()

	runOnce.Do(func() {
		go run()
	})
	return nil
}

func deregisterCountable(countable Countable) {
	lock.Lock()
	for i, source := range statSources {
		if source.countable == countable {
			statSources = append(statSources[:i], statSources[i+1:]...)
			break
		}
	}
	lock.Unlock()
}

func counterToItems(counter interface{}) []StatItem {
	if items, ok := counter.([]StatItem); ok {
		return items
	}
	value := reflect.Indirect(reflect.ValueOf(counter))
	if value.Kind() != reflect.Struct {
		return nil
	}
	items := make([]StatItem, 0, value.NumField())
	for i := 0; i < value.NumField(); i++ {
		field := value.Type().Field(i)
		statsdTag := field.Tag.Get("statsd")
		if statsdTag == "" {
			continue
		}
		segs := strings.Split(statsdTag, ",")
		statType := COUNT_TYPE
		for _, flag := range segs[1:] {
			if flag == "gauge" {
				statType = GAUGE_TYPE
			}
		}
		items = append(items, StatItem{Name: segs[0], StatType: statType, Value: value.Field(i).Interface()})
	}
	return items
}

func send() {
	lock.Lock()
	defer lock.Unlock()

	if statsdClient == nil {
		client, err := statsd.New(
			statsd.Address(remoteAddr),
			statsd.TagsFormat(statsd.InfluxDB),
			statsd.Prefix(processName))
		if err != nil {
			log.Warningf("statsd server %s unavailable: %s", remoteAddr, err)
			return
		}
		statsdClient = client
	}

	for i := 0; i < len(statSources); {
		source := statSources[i]
		if source.countable.Closed() {
			statSources = append(statSources[:i], statSources[i+1:]...)
			log.Infof("stat source %s closed", source)
			continue
		}
		source.skip--
		if source.skip > 0 {
			i++
			continue
		}
		source.skip = int(source.interval / MinInterval)
		if source.skip < 1 {
			source.skip = 1
		}
		items := counterToItems(source.countable.GetCounter())
		if len(items) > 0 {
			if source.client == nil {
				source.client = statsdClient.Clone(
					statsd.Prefix(strings.Replace(source.module, "-", "_", -1)),
					statsd.Tags(source.tagsOptions()...))
			}
			for _, item := range items {
				name := strings.Replace(item.Name, ":", "_", -1)
				if item.StatType == GAUGE_TYPE {
					source.client.Gauge(name, item.Value)
				} else {
					source.client.Count(name, item.Value)
				}
			}
		}
		i++
	}
}

func run() {
	time.Sleep(time.Second) // 等待远程地址和hostname配置完成
	ticker := time.NewTicker(TICK_CYCLE)
	defer ticker.Stop()
	for range ticker.C {
		send()
	}
}
