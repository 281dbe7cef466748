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
	"time"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("debug")

type ModuleId uint16
type ModuleOperate uint16

const (
	MODULE_MAX      = 32
	MAX_PAYLOAD_LEN = 1400
	UDP_RECV_BUFFER = 8192

	DEBUG_LISTEN_IP   = "127.0.0.1"
	DEBUG_LISTEN_PORT = 9528

	DEBUG_TIMEOUT = 2 * time.Second
)

// 请求和响应共用的报文格式，独立的Result字段用于避免将错误信息当作数据
type Message struct {
	Module, Operate uint16
	Result          uint32
	Args            []byte
}

type CommandLineProcess interface {
	RecvCommand(conn *net.UDPConn, remote *net.UDPAddr, operate uint16, arg *bytes.Buffer)
}

var (
	listenIp   = DEBUG_LISTEN_IP
	listenPort = DEBUG_LISTEN_PORT

	recvHandlers = [MODULE_MAX * 2]CommandLineProcess{}
	running      = false
)

// 必须在第一个模块Register之前调用才能生效
func SetIpAndPort(ip string, port int) {
	listenIp = ip
	listenPort = port
}

// server端注册命令处理函数, module值要小于MODULE_MAX
func Register(module ModuleId, process CommandLineProcess) {
	recvHandlers[module] = process
	if running == false {
		debugListener()
		running = true
	}
}

func process(conn *net.UDPConn) {
	data := make([]byte, UDP_RECV_BUFFER)
	msg := Message{}

	n, remote, err := conn.ReadFromUDP(data)
	if err != nil {
		return
	}
	decoder := gob.NewDecoder(bytes.NewBuffer(data[:n]))
	if err := decoder.Decode(&msg); err != nil {
		log.Error(err)
		return
	}
	if msg.Module >= MODULE_MAX*2 {
		SendToClient(conn, remote, 1, nil)
		return
	}
	if handler := recvHandlers[msg.Module]; handler != nil {
		handler.RecvCommand(conn, remote, msg.Operate, bytes.NewBuffer(msg.Args))
		return
	}
	if handler := simpleHandlers[msg.Module]; handler != nil {
		result := handler.HandleSimpleCommand(msg.Operate, string(msg.Args))
		SendToClient(conn, remote, 0, bytes.NewBuffer([]byte(result)))
		return
	}
	SendToClient(conn, remote, 1, nil)
}

func debugListener() {
	addr := &net.UDPAddr{IP: net.ParseIP(listenIp), Port: listenPort}
	go func() {
		listener, err := net.ListenUDP("udp4", addr)
		if err != nil {
			log.Error(err)
			return
		}
		defer listener.Close()
		log.Infof("debug listener <%v:%v>", listenIp, listenPort)
		for {
			process(listener)
		}
	}()
}

// server端应答，超过MAX_PAYLOAD_LEN的数据会分包发送，
// 最后一包长度小于MAX_PAYLOAD_LEN，client以此判断应答结束
func SendToClient(conn *net.UDPConn, remote *net.UDPAddr, result uint32, args *bytes.Buffer) {
	payload := []byte{}
	if args != nil {
		payload = args.Bytes()
	}
	for {
		chunk := payload
		if len(chunk) > MAX_PAYLOAD_LEN {
			chunk = payload[:MAX_PAYLOAD_LEN]
		}
		payload = payload[len(chunk):]

		msg := Message{Result: result, Args: chunk}
		buffer := bytes.Buffer{}
		encoder := gob.NewEncoder(&buffer)
		if err := encoder.Encode(msg); err != nil {
			log.Error(err)
			return
		}
		if _, err := conn.WriteToUDP(buffer.Bytes(), remote); err != nil {
			log.Error(err)
			return
		}
		if len(chunk) < MAX_PAYLOAD_LEN {
			break
		}
	}
}

func RecvFromServer(conn *net.UDPConn) (*bytes.Buffer, error) {
	data := make([]byte, UDP_RECV_BUFFER)
	msg := Message{}

	conn.SetReadDeadline(time.Now().Add(DEBUG_TIMEOUT))
	n, _, err := conn.ReadFromUDP(data)
	if err != nil {
		return nil, err
	}
	decoder := gob.NewDecoder(bytes.NewBuffer(data[:n]))
	if err := decoder.Decode(&msg); err != nil {
		return nil, err
	}
	if msg.Result != 0 {
		return nil, fmt.Errorf("server result %d", msg.Result)
	}
	return bytes.NewBuffer(msg.Args), nil
}

// client端发送命令并等待第一个应答包
func SendToServer(module ModuleId, operate ModuleOperate, args *bytes.Buffer) (*net.UDPConn, *bytes.Buffer, error) {
	dst := &net.UDPAddr{IP: net.ParseIP(listenIp), Port: listenPort}
	conn, err := net.DialUDP("udp4", nil, dst)
	if err != nil {
		return nil, nil, err
	}

	msg := Message{Module: uint16(module), Operate: uint16(operate)}
	if args != nil {
		msg.Args = args.Bytes()
	}
	sendBuffer := bytes.Buffer{}
	encoder := gob.NewEncoder(&sendBuffer)
	if err := encoder.Encode(msg); err != nil {
		conn.Close()
		return nil, nil, err
	}
	if _, err := conn.Write(sendBuffer.Bytes()); err != nil {
		conn.Close()
		return nil, nil, err
	}
	result, err := RecvFromServerMulti(conn)
	return conn, result, err
}
