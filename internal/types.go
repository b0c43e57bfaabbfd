// Copyright 2024 Kelvin Clement Mwinuka
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package internal

import (
	"context"
	"net"

	"github.com/echovault/aclkv/internal/acl"
)

type ContextConnID string

// KeyExtractionFuncResult reports, for a single command invocation, the
// argv positions that hold key names. The ACL hot path only needs
// positions (not values) so it can re-read argv itself at authorisation
// time.
type KeyExtractionFuncResult struct {
	KeyPositions []int
}

type KeyExtractionFunc func(cmd []string) (KeyExtractionFuncResult, error)

type HandlerFuncParams struct {
	Context    context.Context
	Command    []string
	Connection *net.Conn
	GetACL     func() interface{}
	GetCatalog func() interface{}
	GetStore   func() interface{}
}

type HandlerFunc func(params HandlerFuncParams) ([]byte, error)

type Command struct {
	Command     string
	Module      string
	Categories  []string
	Description string
	Kind        acl.CommandKind
	SubCommands []SubCommand
	KeyExtractionFunc
	HandlerFunc
}

type SubCommand struct {
	Command     string
	Module      string
	Categories  []string
	Description string
	KeyExtractionFunc
	HandlerFunc
}
