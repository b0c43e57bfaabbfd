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

// Package acl is the admin command surface (ACL SETUSER/GETUSER/DELUSER/
// WHOAMI/LIST/CAT/USERS and AUTH) built on top of the engine in
// internal/acl. It owns per-connection auth state; the engine itself is
// stateless with respect to connections.
package acl

import (
	"errors"
	"fmt"
	"net"
	"sync"

	aclengine "github.com/echovault/aclkv/internal/acl"
	"github.com/echovault/aclkv/internal/config"
)

// Manager binds the stateless ACL engine to live connections: which user
// each connection is currently authenticated as.
type Manager struct {
	Engine *aclengine.Context

	mu          sync.RWMutex
	connections map[*net.Conn]*aclengine.User
}

func NewManager(conf config.Config, catalog aclengine.CategoryCatalog, ids *aclengine.CommandIDs) (*Manager, error) {
	engine := aclengine.NewContext(catalog, ids)
	if err := engine.Init(); err != nil {
		return nil, err
	}

	if conf.RequirePass {
		defaultUser, err := engine.Lookup(aclengine.DefaultUsername)
		if err != nil {
			return nil, err
		}
		if _, err := engine.ApplyMany(defaultUser, []string{"resetpass", fmt.Sprintf(">%s", conf.Password)}); err != nil {
			return nil, err
		}
	}

	return &Manager{
		Engine:      engine,
		connections: make(map[*net.Conn]*aclengine.User),
	}, nil
}

// RegisterConnection binds a freshly accepted connection to the default
// user, mirroring how the original server pre-authenticates a connection
// when the default user has NOPASS set.
func (m *Manager) RegisterConnection(conn *net.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, err := m.Engine.Lookup(aclengine.DefaultUsername)
	if err != nil {
		return
	}
	m.connections[conn] = u
}

// DropConnection removes bookkeeping for a closed connection.
func (m *Manager) DropConnection(conn *net.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.connections, conn)
}

// UserFor returns the user currently bound to conn, or the default user if
// the connection was never registered.
func (m *Manager) UserFor(conn *net.Conn) *aclengine.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.connections[conn]; ok {
		return u
	}
	u, _ := m.Engine.Lookup(aclengine.DefaultUsername)
	return u
}

// Authenticate handles "AUTH [username] password": on success it rebinds
// conn to the authenticated user.
func (m *Manager) Authenticate(conn *net.Conn, cmd []string) error {
	username := aclengine.DefaultUsername
	var password []byte
	switch len(cmd) {
	case 2:
		password = []byte(cmd[1])
	case 3:
		username = cmd[1]
		password = []byte(cmd[2])
	default:
		return errors.New("wrong number of arguments for 'auth' command")
	}

	// AuthNotFound and AuthBadCredentials must produce the same wire reply;
	// naming the username back to the caller would let it probe for valid
	// accounts.
	if m.Engine.Check(username, password) != aclengine.AuthOk {
		return errors.New("WRONGPASS invalid username-password pair or user is disabled")
	}

	u, err := m.Engine.Lookup(username)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.connections[conn] = u
	m.mu.Unlock()
	return nil
}
