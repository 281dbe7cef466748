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
	"bytes"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/deepflowio/persistent-libs/codec"
	"github.com/deepflowio/persistent-libs/debug"
)

const (
	CACHE_CMD = 24
)

const (
	CACHE_CMD_LIST = iota
	CACHE_CMD_DUMP
	CACHE_CMD_TREE
	CACHE_CMD_CHECK
)

// debugCache is what the command plane needs from a registered cache,
// *SyncCache of any value type satisfies it.
type debugCache interface {
	Name() string
	dumpTo(encoder *codec.SimpleEncoder)
	treeString() string
	check() error
}

var (
	debugLock   sync.Mutex
	debugOnce   sync.Once
	debugCaches []debugCache
)

func registerForDebug(c debugCache) {
	debugLock.Lock()
	debugCaches = append(debugCaches, c)
	debugLock.Unlock()
	debugOnce.Do(func() {
		debug.Register(CACHE_CMD, cacheDebug{})
	})
}

func deregisterForDebug(c debugCache) {
	debugLock.Lock()
	for i, item := range debugCaches {
		if item == c {
			length := len(debugCaches)
			if i < length-1 {
				copy(debugCaches[i:], debugCaches[i+1:])
			}
			debugCaches = debugCaches[:length-1]
			break
		}
	}
	debugLock.Unlock()
}

func findDebugCache(name string) debugCache {
	debugLock.Lock()
	defer debugLock.Unlock()
	for _, item := range debugCaches {
		if item.Name() == name {
			return item
		}
	}
	return nil
}

// dumpTo encodes a snapshot from oldest to newest, values rendered as
// strings. 与persistctl的解码侧保持一致：u32个数 + (varint key, string value)。
func (c *SyncCache[V]) dumpTo(encoder *codec.SimpleEncoder) {
	snapshot := c.Snapshot()
	encoder.WriteU32(uint32(snapshot.Len()))
	for key, value := range snapshot.All() {
		encoder.WriteVarintU32(key)
		encoder.WriteString255(fmt.Sprint(value))
	}
}

func (c *SyncCache[V]) treeString() string {
	snapshot := c.Snapshot()
	return "primary:\n" + snapshot.primary.String() + "byRecency:\n" + snapshot.byRecency.String()
}

func (c *SyncCache[V]) check() error {
	return c.Snapshot().CheckConsistency()
}

type cacheDebug struct{}

func (d cacheDebug) RecvCommand(conn *net.UDPConn, remote *net.UDPAddr, operate uint16, arg *bytes.Buffer) {
	switch operate {
	case CACHE_CMD_LIST:
		debugLock.Lock()
		names := make([]string, 0, len(debugCaches))
		for _, item := range debugCaches {
			names = append(names, item.Name())
		}
		debugLock.Unlock()
		sort.Strings(names)
		debug.SendToClient(conn, remote, 0, bytes.NewBuffer([]byte(strings.Join(names, "\n"))))
	case CACHE_CMD_DUMP:
		item := findDebugCache(arg.String())
		if item == nil {
			debug.SendToClient(conn, remote, 1, nil)
			return
		}
		encoder := codec.AcquireSimpleEncoder()
		item.dumpTo(encoder)
		debug.SendToClient(conn, remote, 0, bytes.NewBuffer(encoder.Bytes()))
		codec.ReleaseSimpleEncoder(encoder)
	case CACHE_CMD_TREE:
		item := findDebugCache(arg.String())
		if item == nil {
			debug.SendToClient(conn, remote, 1, nil)
			return
		}
		debug.SendToClient(conn, remote, 0, bytes.NewBuffer([]byte(item.treeString())))
	case CACHE_CMD_CHECK:
		item := findDebugCache(arg.String())
		if item == nil {
			debug.SendToClient(conn, remote, 1, nil)
			return
		}
		result := "OK"
		if err := item.check(); err != nil {
			result = err.Error()
		}
		debug.SendToClient(conn, remote, 0, bytes.NewBuffer([]byte(result)))
	default:
		debug.SendToClient(conn, remote, 1, nil)
	}
}

// RegisterCacheCommand returns the persistctl subcommand for inspecting
// registered caches.
func RegisterCacheCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "cache",
		Short: "show registered lru caches",
	}
	command.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "list registered cache names",
		Run: func(cmd *cobra.Command, args []string) {
			_, result, err := debug.SendToServer(CACHE_CMD, CACHE_CMD_LIST, nil)
			if err != nil {
				fmt.Println("Get result failed", err)
				return
			}
			fmt.Println(result.String())
		},
	})
	command.AddCommand(&cobra.Command{
		Use:   "dump [name]",
		Short: "dump a cache from oldest to newest",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				fmt.Println("please specify a cache name")
				return
			}
			dumpCache(args[0])
		},
	})
	command.AddCommand(&cobra.Command{
		Use:   "tree [name]",
		Short: "render a cache's backing tries",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				fmt.Println("please specify a cache name")
				return
			}
			result, err := debug.CommmandGetResult(CACHE_CMD, CACHE_CMD_TREE, args[0])
			if err != nil {
				fmt.Println("Get result failed", err)
				return
			}
			fmt.Println(result)
		},
	})
	command.AddCommand(&cobra.Command{
		Use:   "check [name]",
		Short: "verify a cache's internal consistency",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				fmt.Println("please specify a cache name")
				return
			}
			result, err := debug.CommmandGetResult(CACHE_CMD, CACHE_CMD_CHECK, args[0])
			if err != nil {
				fmt.Println("Get result failed", err)
				return
			}
			fmt.Println(result)
		},
	})
	return command
}

func dumpCache(name string) {
	_, result, err := debug.SendToServer(CACHE_CMD, CACHE_CMD_DUMP, bytes.NewBuffer([]byte(name)))
	if err != nil {
		fmt.Println("Get result failed", err)
		return
	}
	payload := result.Bytes()
	decoder := &codec.SimpleDecoder{}
	decoder.Init(payload)
	count := decoder.ReadU32()
	for i := uint32(0); i < count && !decoder.Failed(); i++ {
		key := decoder.ReadVarintU32()
		value := decoder.ReadString255()
		fmt.Printf("%d: %s\n", key, value)
	}
	if decoder.Failed() {
		fmt.Println("dump payload corrupted")
		return
	}
	fmt.Printf("total %d entries, %s payload\n", count, units.HumanSize(float64(len(payload))))
}
