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

// Package server wires the command catalog, the ACL engine and a single
// connection together into something that can turn a decoded argv into a
// RESP reply. It is deliberately not a network listener: accepting
// connections and framing bytes off a socket belongs to a transport layer
// this module doesn't implement.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	aclengine "github.com/echovault/aclkv/internal/acl"
	"github.com/echovault/aclkv/internal"
	"github.com/echovault/aclkv/internal/commands"
	aclmodule "github.com/echovault/aclkv/internal/modules/acl"
)

// Dispatcher resolves and authorises a command, then runs its handler.
type Dispatcher struct {
	Catalog *commands.Catalog
	ACL     *aclmodule.Manager
	Store   *commands.Store
}

func NewDispatcher(catalog *commands.Catalog, manager *aclmodule.Manager, store *commands.Store) *Dispatcher {
	return &Dispatcher{Catalog: catalog, ACL: manager, Store: store}
}

// Dispatch authorises and executes argv against conn, returning the raw
// RESP reply bytes (including any "-ERR ...\r\n" error frame).
func (d *Dispatcher) Dispatch(ctx context.Context, conn *net.Conn, argv []string) []byte {
	if len(argv) == 0 {
		return errReply(errors.New("empty command"))
	}

	name := strings.ToLower(argv[0])
	cmd, ok := d.Catalog.Lookup(name)
	if !ok {
		return errReply(fmt.Errorf("unknown command %q", argv[0]))
	}

	descriptor, ok := d.Catalog.Descriptor(name)
	if !ok {
		return errReply(fmt.Errorf("unknown command %q", argv[0]))
	}

	user := d.ACL.UserFor(conn)
	decision := d.ACL.Engine.Authorise(&aclengine.Client{
		User: user,
		Cmd:  descriptor,
		Argv: argv,
	})

	switch decision {
	case aclengine.DeniedCommand:
		return errReply(fmt.Errorf("NOPERM user %s has no permissions to run the '%s' command", user.Name, name))
	case aclengine.DeniedKey:
		return errReply(fmt.Errorf("NOPERM user %s has no permissions to access one of the keys used as arguments", user.Name))
	}

	handler, handlerArgv, err := resolveHandler(cmd, argv)
	if err != nil {
		return errReply(err)
	}

	out, err := handler(internal.HandlerFuncParams{
		Context:    ctx,
		Command:    handlerArgv,
		Connection: conn,
		GetACL:     func() interface{} { return d.ACL },
		GetCatalog: func() interface{} { return d.Catalog },
		GetStore:   func() interface{} { return d.Store },
	})
	if err != nil {
		return errReply(err)
	}
	return out
}

// resolveHandler picks the subcommand handler when argv[1] names one,
// otherwise the top-level command's own handler.
func resolveHandler(cmd internal.Command, argv []string) (internal.HandlerFunc, []string, error) {
	if len(cmd.SubCommands) > 0 {
		if len(argv) < 2 {
			return nil, nil, errors.New("wrong number of arguments")
		}
		for _, sub := range cmd.SubCommands {
			if strings.EqualFold(sub.Command, argv[1]) {
				return sub.HandlerFunc, argv, nil
			}
		}
		return nil, nil, fmt.Errorf("unknown subcommand %q for %q", argv[1], argv[0])
	}
	if cmd.HandlerFunc == nil {
		return nil, nil, fmt.Errorf("command %q has no handler", argv[0])
	}
	return cmd.HandlerFunc, argv, nil
}

func errReply(err error) []byte {
	return []byte(fmt.Sprintf("-ERR %s\r\n", err.Error()))
}
