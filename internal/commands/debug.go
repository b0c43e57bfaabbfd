// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/echovault/aclkv/internal"
	"github.com/echovault/aclkv/internal/constants"
)

// DEBUG is registered as a single top-level command with no blanket
// command-bitmap bit of its own use beyond its subcommands; it exists to
// exercise the subcommand allowlist ("+debug|sleep") independently of the
// top-level command gate.
func handleDebugSleep(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) != 3 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	seconds, err := strconv.ParseFloat(params.Command[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sleep duration %q", params.Command[2])
	}
	time.Sleep(time.Duration(seconds * float64(time.Second)))
	return []byte(constants.OkResponse), nil
}

func handleDebugObject(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) != 3 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	store, err := storeFrom(params)
	if err != nil {
		return nil, err
	}
	value, ok := store.Get(params.Command[2])
	if !ok {
		return nil, fmt.Errorf("no such key %q", params.Command[2])
	}
	return []byte(fmt.Sprintf("+Value at: %p refcount:1 encoding:raw serializedlength:%d\r\n", &value, len(value))), nil
}

func DebugCommands() []internal.Command {
	return []internal.Command{
		{
			Command:     "debug",
			Module:      constants.DebugModule,
			Categories:  []string{constants.AdminCategory, constants.DangerousCategory, constants.SlowCategory},
			Description: "(DEBUG SLEEP seconds | DEBUG OBJECT key) Diagnostic subcommands.",
			KeyExtractionFunc: func(cmd []string) (internal.KeyExtractionFuncResult, error) {
				if len(cmd) < 2 {
					return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
				}
				if len(cmd) == 3 && equalFoldASCII(cmd[1], "object") {
					return internal.KeyExtractionFuncResult{KeyPositions: []int{2}}, nil
				}
				return internal.KeyExtractionFuncResult{KeyPositions: nil}, nil
			},
			SubCommands: []internal.SubCommand{
				{
					Command:     "sleep",
					Module:      constants.DebugModule,
					Categories:  []string{constants.AdminCategory, constants.SlowCategory},
					Description: "(DEBUG SLEEP seconds) Block the caller for the given number of seconds.",
					HandlerFunc: handleDebugSleep,
				},
				{
					Command:     "object",
					Module:      constants.DebugModule,
					Categories:  []string{constants.AdminCategory, constants.ReadOnlyCategory},
					Description: "(DEBUG OBJECT key) Report low-level information about the value stored at key.",
					HandlerFunc: handleDebugObject,
				},
			},
		},
	}
}

func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
