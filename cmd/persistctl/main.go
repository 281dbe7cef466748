package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/deepflowio/persistent-libs/debug"
	"github.com/deepflowio/persistent-libs/hashset"
	"github.com/deepflowio/persistent-libs/logger"
	"github.com/deepflowio/persistent-libs/lru"
	"github.com/deepflowio/persistent-libs/pool"
	"github.com/deepflowio/persistent-libs/stats"
)

var log = logging.MustGetLogger("persistctl")

func main() {
	debug.SetIpAndPort(debug.DEBUG_LISTEN_IP, debug.DEBUG_LISTEN_PORT)
	root := &cobra.Command{
		Use:   "persistctl",
		Short: "Persistent Containers Debug Tool",
	}
	root.AddCommand(debug.RegisterLogLevelCommand())
	root.AddCommand(lru.RegisterCacheCommand())
	root.AddCommand(hashset.RegisterSetCommand())
	root.AddCommand(RegisterDemoCommand())
	root.SetArgs(os.Args[1:])
	root.Execute()
}

// demo子命令拉起一个样例进程并注册若干cache和set，
// 另开一个终端即可验证其余子命令
func RegisterDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "run a sample process hosting debug-registered containers",
		Run: func(cmd *cobra.Command, args []string) {
			runDemo()
		},
	}
}

func runDemo() {
	logger.InitConsoleLog()
	debug.NewLogLevelControl()
	pool.SetCounterRegisterCallback(func(counter *pool.Counter) {
		tags := stats.OptionStatTags{
			"name":                counter.Name,
			"object_size":         strconv.Itoa(int(counter.ObjectSize)),
			"pool_size_per_cpu":   strconv.Itoa(int(counter.PoolSizePerCPU)),
			"init_full_pool_size": strconv.Itoa(int(counter.InitFullPoolSize)),
		}
		stats.RegisterCountable("pool", counter, tags)
	})
	stats.RegisterGcMonitor()

	flows := lru.NewSyncCache[string]("demo-flows", 1024)
	defer flows.Close()
	for i := 0; i < 128; i++ {
		flows.Add(rand.Uint32()%256, fmt.Sprintf("flow-%d", i))
	}
	for i := 0; i < 64; i++ {
		flows.Get(rand.Uint32() % 512)
	}

	words := hashset.Strings()
	for _, word := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		words = words.Add(word)
	}
	hashset.RegisterForDebug("demo-words", func() string { return words.Dump(0) })
	defer hashset.DeregisterForDebug("demo-words")

	log.Infof("demo process ready, debug server on %s:%d", debug.DEBUG_LISTEN_IP, debug.DEBUG_LISTEN_PORT)
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
	<-signalChannel
	log.Info("Gracefully stopping")
}
