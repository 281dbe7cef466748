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

package debug

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

type echoProcess struct {
}

func (e *echoProcess) HandleSimpleCommand(operate uint16, arg string) string {
	if arg == "long" {
		return strings.Repeat("x", 5000)
	}
	return fmt.Sprintf("echo-%d-%s", operate, arg)
}

func TestSimpleCommand(t *testing.T) {
	SetIpAndPort("127.0.0.1", 19528)
	ServerRegisterSimple(MODULE_MAX+1, &echoProcess{})
	time.Sleep(100 * time.Millisecond) // 等待listener就绪

	result, err := CommmandGetResult(MODULE_MAX+1, 3, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if result != "echo-3-abc" {
		t.Errorf("Expected %v found %v", "echo-3-abc", result)
	}
}

func TestSimpleCommandMultiPacket(t *testing.T) {
	SetIpAndPort("127.0.0.1", 19528)
	ServerRegisterSimple(MODULE_MAX+1, &echoProcess{})
	time.Sleep(100 * time.Millisecond)

	result, err := CommmandGetResult(MODULE_MAX+1, 0, "long")
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 5000 {
		t.Errorf("Expected %v found %v", 5000, len(result))
	}
}

func TestLogLevelCommand(t *testing.T) {
	SetIpAndPort("127.0.0.1", 19528)
	NewLogLevelControl()
	time.Sleep(100 * time.Millisecond)

	var out logLevelArg
	if !sendCmd(LOG_LEVEL_CMD_SET, logLevelArg{Level: "info"}, &out) {
		t.Fatal("set command failed")
	}
	if out.Level != "info" {
		t.Errorf("Expected info found %s", out.Level)
	}
	if !sendCmd(LOG_LEVEL_CMD_SHOW, logLevelArg{}, &out) {
		t.Fatal("show command failed")
	}
	if out.Level != "INFO" {
		t.Errorf("Expected INFO found %s", out.Level)
	}
}

func TestUnknownModule(t *testing.T) {
	SetIpAndPort("127.0.0.1", 19528)
	ServerRegisterSimple(MODULE_MAX+1, &echoProcess{})
	time.Sleep(100 * time.Millisecond)

	if _, err := CommmandGetResult(MODULE_MAX+2, 0, ""); err == nil {
		t.Error("Expected error found nil")
	}
}
