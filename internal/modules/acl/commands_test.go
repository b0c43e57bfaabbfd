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

package acl_test

import (
	"context"
	"net"
	"strings"
	"testing"

	aclengine "github.com/echovault/aclkv/internal/acl"
	"github.com/echovault/aclkv/internal/commands"
	"github.com/echovault/aclkv/internal/config"
	aclmodule "github.com/echovault/aclkv/internal/modules/acl"
	connectionmodule "github.com/echovault/aclkv/internal/modules/connection"
	"github.com/echovault/aclkv/internal/server"
)

func newHarness(t *testing.T) (*server.Dispatcher, *net.Conn) {
	t.Helper()
	ids := aclengine.NewCommandIDs()
	catalog := commands.NewCatalog(ids,
		connectionmodule.Commands(),
		commands.GenericCommands(),
		commands.DebugCommands(),
		aclmodule.Commands(),
	)
	manager, err := aclmodule.NewManager(config.DefaultConfig(), catalog, ids)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	var conn net.Conn
	manager.RegisterConnection(&conn)
	store := commands.NewStore()
	return server.NewDispatcher(catalog, manager, store), &conn
}

func run(d *server.Dispatcher, conn *net.Conn, argv ...string) string {
	return string(d.Dispatch(context.Background(), conn, argv))
}

func TestWhoAmIDefaultsToDefaultUser(t *testing.T) {
	d, conn := newHarness(t)
	got := run(d, conn, "ACL", "WHOAMI")
	if !strings.Contains(got, "default") {
		t.Fatalf("expected default user, got %q", got)
	}
}

func TestSetUserThenAuth(t *testing.T) {
	d, conn := newHarness(t)

	if got := run(d, conn, "ACL", "SETUSER", "alice", "on", ">hunter2", "~foo:*", "+get", "+set"); strings.HasPrefix(got, "-ERR") {
		t.Fatalf("SETUSER failed: %q", got)
	}

	if got := run(d, conn, "AUTH", "alice", "wrongpass"); !strings.Contains(got, "WRONGPASS") {
		t.Fatalf("expected WRONGPASS, got %q", got)
	}

	if got := run(d, conn, "AUTH", "alice", "hunter2"); strings.HasPrefix(got, "-ERR") || strings.Contains(got, "WRONGPASS") {
		t.Fatalf("expected successful AUTH, got %q", got)
	}

	if got := run(d, conn, "ACL", "WHOAMI"); !strings.Contains(got, "alice") {
		t.Fatalf("expected alice, got %q", got)
	}
}

func TestKeyGateDeniesOutOfPatternKeys(t *testing.T) {
	d, conn := newHarness(t)
	run(d, conn, "ACL", "SETUSER", "bob", "on", "nopass", "~foo:*", "+get", "+set")
	run(d, conn, "AUTH", "bob", "")

	if got := run(d, conn, "SET", "foo:1", "bar"); strings.HasPrefix(got, "-ERR") {
		t.Fatalf("expected allowed key to succeed, got %q", got)
	}
	if got := run(d, conn, "SET", "other:1", "bar"); !strings.Contains(got, "NOPERM") {
		t.Fatalf("expected NOPERM for out-of-pattern key, got %q", got)
	}
}

func TestCommandGateDeniesUnlistedCommands(t *testing.T) {
	d, conn := newHarness(t)
	run(d, conn, "ACL", "SETUSER", "carl", "on", "nopass", "allkeys", "+get")
	run(d, conn, "AUTH", "carl", "")

	if got := run(d, conn, "SET", "foo", "bar"); !strings.Contains(got, "NOPERM") {
		t.Fatalf("expected NOPERM for un-allowlisted command, got %q", got)
	}
}

func TestDeluserRefusesDefault(t *testing.T) {
	d, conn := newHarness(t)
	if got := run(d, conn, "ACL", "DELUSER", "default"); !strings.Contains(got, ":0\r\n") {
		t.Fatalf("expected default user deletion to be a no-op, got %q", got)
	}
}

func TestAclCatListsCategory(t *testing.T) {
	d, conn := newHarness(t)
	if got := run(d, conn, "ACL", "CAT", "string"); strings.HasPrefix(got, "-ERR") {
		t.Fatalf("expected category listing to succeed, got %q", got)
	}
}

func TestSubcommandAllowlist(t *testing.T) {
	d, conn := newHarness(t)
	run(d, conn, "ACL", "SETUSER", "dave", "on", "nopass", "allkeys", "+debug|sleep")
	run(d, conn, "AUTH", "dave", "")

	if got := run(d, conn, "DEBUG", "SLEEP", "0"); strings.HasPrefix(got, "-ERR") {
		t.Fatalf("expected allowlisted subcommand to succeed, got %q", got)
	}
	if got := run(d, conn, "DEBUG", "OBJECT", "foo"); !strings.Contains(got, "NOPERM") {
		t.Fatalf("expected non-allowlisted subcommand to be denied, got %q", got)
	}
}
