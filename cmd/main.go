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

// Command aclkv is a minimal, non-networked harness that drives the ACL
// subsystem end to end: it reads RESP-encoded commands from stdin,
// authorises each one against the connection's current user, and prints
// the reply. It deliberately stops short of a TCP server; accepting
// connections and framing a socket is a transport concern this module
// doesn't implement.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	aclengine "github.com/echovault/aclkv/internal/acl"
	"github.com/echovault/aclkv/internal/commands"
	"github.com/echovault/aclkv/internal/config"
	connectionmodule "github.com/echovault/aclkv/internal/modules/connection"
	aclmodule "github.com/echovault/aclkv/internal/modules/acl"
	"github.com/echovault/aclkv/internal/protocol"
	"github.com/echovault/aclkv/internal/server"
)

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		log.Fatal(err)
	}

	ids := aclengine.NewCommandIDs()
	catalog := commands.NewCatalog(ids,
		connectionmodule.Commands(),
		commands.GenericCommands(),
		commands.DebugCommands(),
		aclmodule.Commands(),
	)

	manager, err := aclmodule.NewManager(conf, catalog, ids)
	if err != nil {
		log.Fatal(err)
	}

	store := commands.NewStore()
	dispatcher := server.NewDispatcher(catalog, manager, store)

	// A single in-process connection stands in for a client socket; the
	// net.Conn value itself is never dialled, only used as a stable
	// identity key for the connection's authenticated user.
	var conn net.Conn
	manager.RegisterConnection(&conn)
	defer manager.DropConnection(&conn)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("aclkv ready. Enter commands terminated by a newline (Ctrl-D to exit).")
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		argv, err := protocol.Decode(line + "\r\n")
		if err != nil {
			fmt.Printf("-ERR %s\r\n", err)
			continue
		}
		reply := dispatcher.Dispatch(ctx, &conn, argv)
		os.Stdout.Write(reply)
	}
}
