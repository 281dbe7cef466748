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

package debug

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/deepflowio/persistent-libs/logger"
)

const (
	LOG_LEVEL_CMD = 20
)

const (
	LOG_LEVEL_CMD_SHOW = iota
	LOG_LEVEL_CMD_SET
)

// Module为空时对所有logging module生效
type logLevelArg struct {
	Module string
	Level  string
}

type LogLevelControl struct {
}

func NewLogLevelControl() *LogLevelControl {
	logLevelProcess := &LogLevelControl{}
	// 服务端注册处理函数
	Register(LOG_LEVEL_CMD, logLevelProcess)
	return logLevelProcess
}

func decodeLogLevelArg(arg *bytes.Buffer) (logLevelArg, error) {
	var decoded logLevelArg
	decoder := gob.NewDecoder(arg)
	if err := decoder.Decode(&decoded); err != nil {
		log.Error(err)
		return decoded, err
	}
	return decoded, nil
}

func encodeLogLevelArg(arg logLevelArg) (*bytes.Buffer, error) {
	buffer := bytes.Buffer{}
	encoder := gob.NewEncoder(&buffer)
	if err := encoder.Encode(arg); err != nil {
		log.Errorf("encoder.Encode: %s", err)
		return nil, err
	}
	return &buffer, nil
}

func (l *LogLevelControl) RecvCommand(conn *net.UDPConn, remote *net.UDPAddr, operate uint16, arg *bytes.Buffer) {
	request, err := decodeLogLevelArg(arg)
	if err != nil {
		SendToClient(conn, remote, 1, nil)
		return
	}
	switch operate {
	case LOG_LEVEL_CMD_SHOW:
		request.Level = logger.GetLevel(request.Module)
		enc, err := encodeLogLevelArg(request)
		if err != nil {
			SendToClient(conn, remote, 1, nil)
		} else {
			SendToClient(conn, remote, 0, enc)
		}
	case LOG_LEVEL_CMD_SET:
		log.Infof("set module (%s) logLevel to (%s)", request.Module, request.Level)
		if err := logger.SetLevel(request.Level, request.Module); err != nil {
			log.Warningf("set module (%s) logLevel(%s) failed: %s", request.Module, request.Level, err)
			SendToClient(conn, remote, 1, nil)
		} else {
			enc, _ := encodeLogLevelArg(request)
			SendToClient(conn, remote, 0, enc)
		}
	}
}

func sendCmd(operate int, arg logLevelArg, out *logLevelArg) bool {
	buffer := bytes.Buffer{}
	encoder := gob.NewEncoder(&buffer)
	if err := encoder.Encode(arg); err != nil {
		fmt.Printf("%v: %v\n", err, arg)
		return false
	}

	_, result, err := SendToServer(LOG_LEVEL_CMD, ModuleOperate(operate), &buffer)
	if err != nil {
		fmt.Println(err)
		return false
	}

	decoder := gob.NewDecoder(result)
	if err = decoder.Decode(out); err != nil {
		fmt.Printf("%v: %v\n", err, out)
		return false
	}
	return true
}

func moduleArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// 客户端注册命令
func RegisterLogLevelCommand() *cobra.Command {
	logLevel := &cobra.Command{
		Use:   "loglevel",
		Short: "control log level",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("please run with arguments 'show | set'.\n")
		},
	}

	show := &cobra.Command{
		Use:   "show [module]",
		Short: "show current log Level",
		Run: func(cmd *cobra.Command, args []string) {
			var out logLevelArg
			if sendCmd(LOG_LEVEL_CMD_SHOW, logLevelArg{Module: moduleArg(args)}, &out) {
				fmt.Printf("Current log level: %s\n", out.Level)
			}
		},
	}

	set := &cobra.Command{
		Use:   "set {loglevel} [module]",
		Short: "set log level 'debug|info|warning|error'",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) < 1 {
				fmt.Println("please run with 'debug|info|warning|error'.")
				return
			}
			if args[0] != "debug" && args[0] != "info" && args[0] != "warning" && args[0] != "error" {
				fmt.Println("please run with 'debug|info|warning|error'.")
				return
			}
			var out logLevelArg
			if sendCmd(LOG_LEVEL_CMD_SET, logLevelArg{Module: moduleArg(args[1:]), Level: args[0]}, &out) {
				fmt.Printf("Set log level: %s\n", out.Level)
			}
		},
	}

	logLevel.AddCommand(show)
	logLevel.AddCommand(set)
	return logLevel
}
