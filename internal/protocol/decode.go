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

// Package protocol decodes the RESP wire format into the plain []string
// argv every command handler operates on. It accepts both multi-bulk
// arrays and inline commands, since tidwall/resp reads either from the
// same stream transparently.
package protocol

import (
	"bytes"

	"github.com/tidwall/resp"
)

// Decode reads a single command from raw, which may be either an inline
// command ("GET foo\r\n") or a RESP array ("*2\r\n$3\r\nGET\r\n...").
func Decode(raw string) ([]string, error) {
	rd := resp.NewReader(bytes.NewBufferString(raw))

	v, _, err := rd.ReadValue()
	if err != nil {
		return nil, err
	}

	switch v.Type().String() {
	case "SimpleString", "Integer", "Error", "BulkString":
		return []string{v.String()}, nil
	case "Array":
		res := make([]string, 0, len(v.Array()))
		for _, elem := range v.Array() {
			res = append(res, elem.String())
		}
		return res, nil
	default:
		return nil, nil
	}
}
