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
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/deepflowio/persistent-libs/debug"
)

const (
	HASH_SET_CMD = 34

	DUMP_BUCKET_LIMIT = 1000
)

var setCmds = []string{"list", "dump"}

var (
	debugLock    sync.Mutex
	debugOnce    sync.Once
	debugDumpers = make(map[string]func() string)
)

// RegisterForDebug publishes a named dump producer for persistctl, dump
// is called on demand from the debug goroutine and must read a current
// snapshot on every call.
func RegisterForDebug(name string, dump func() string) {
	debugLock.Lock()
	debugDumpers[name] = dump
	debugLock.Unlock()
	debugOnce.Do(func() {
		debug.ServerRegisterSimple(HASH_SET_CMD, command{})
	})
}

func DeregisterForDebug(name string) {
	debugLock.Lock()
	delete(debugDumpers, name)
	debugLock.Unlock()
}

type command struct{}

func (c command) HandleSimpleCommand(op uint16, arg string) string {
	switch setCmds[int(op)%len(setCmds)] {
	case "list":
		debugLock.Lock()
		names := make([]string, 0, len(debugDumpers))
		for name := range debugDumpers {
			names = append(names, name)
		}
		debugLock.Unlock()
		sort.Strings(names)
		return strings.Join(names, "\n")
	case "dump":
		debugLock.Lock()
		dump := debugDumpers[arg]
		debugLock.Unlock()
		if dump == nil {
			return fmt.Sprintf("set '%s' not registered", arg)
		}
		return dump()
	}
	return ""
}

// RegisterSetCommand returns the persistctl subcommand for dumping
// registered sets.
func RegisterSetCommand() *cobra.Command {
	return debug.ClientRegisterSimple(HASH_SET_CMD,
		debug.CmdHelper{Cmd: "set", Helper: "show registered hash sets"},
		[]debug.CmdHelper{
			{Cmd: "list", Helper: "list registered set names"},
			{Cmd: "dump", Helper: "dump a registered set by name"},
		},
	)
}

// Dump renders up to limit buckets, one line per hash in ascending
// order. Used by debug handlers, limit <= 0 means DUMP_BUCKET_LIMIT.
func (s Set[T]) Dump(limit int) string {
	if limit <= 0 {
		limit = DUMP_BUCKET_LIMIT
	}
	sb := strings.Builder{}
	fmt.Fprintf(&sb, "count: %d\n", s.Count())
	n := 0
	for hash, b := range s.root.All() {
		if n >= limit {
			sb.WriteString("...\n")
			break
		}
		fmt.Fprintf(&sb, "%#08x: %v\n", hash, b.values())
		n++
	}
	return sb.String()
}
