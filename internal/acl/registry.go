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

package acl

import (
	"errors"
	"sync"
)

var (
	ErrAlreadyExists = errors.New("user already exists")
	ErrNotFound      = errors.New("user not found")
)

// CategoryCatalog resolves "+@category" rule tokens to the list of
// command names that belong to that category. It is supplied by the
// command registry; the ACL package itself knows nothing about which
// commands exist beyond the IDs it has allocated.
type CategoryCatalog interface {
	CommandsInCategory(category string) []string
}

// Context is the explicit, non-singleton home for everything the ACL
// subsystem needs across calls: the user table, the command-ID
// allocator, the category catalog and the glob matcher. Callers
// (including tests) construct their own Context rather than reaching for
// process-wide globals.
type Context struct {
	mu    sync.RWMutex
	users map[string]*User

	IDs     *CommandIDs
	Catalog CategoryCatalog
	Matcher Matcher
}

// NewContext creates an empty registry. Catalog may be nil until the
// command registry is wired in; category rules applied before that point
// will simply match no commands. ids lets a caller share one CommandIDs
// allocator between the Context's rule parser and its own command
// registry, so "+cmd" tokens and registered commands agree on IDs
// regardless of which is resolved first; pass nil to have the Context
// allocate its own.
func NewContext(catalog CategoryCatalog, ids *CommandIDs) *Context {
	if ids == nil {
		ids = NewCommandIDs()
	}
	return &Context{
		users:   make(map[string]*User),
		IDs:     ids,
		Catalog: catalog,
		Matcher: NewGlobMatcher(),
	}
}

// Init seeds the registry with the default user: ENABLED, ALLCOMMANDS,
// ALLKEYS, NOPASS, applied as the four rules "+@all", "~*", "on",
// "nopass" in that order (mirrors ACLInit in the original implementation).
func (c *Context) Init() error {
	u, err := c.Create(DefaultUsername)
	if errors.Is(err, ErrAlreadyExists) {
		u, err = c.Lookup(DefaultUsername)
	}
	if err != nil {
		return err
	}
	_, err = c.ApplyMany(u, []string{"+@all", "~*", "on", "nopass"})
	return err
}

// Create adds a new, blank user and returns it. ErrAlreadyExists is
// returned (with the existing user) if name is already registered.
func (c *Context) Create(name string) (*User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if u, ok := c.users[name]; ok {
		return u, ErrAlreadyExists
	}
	u := New(name)
	c.users[name] = u
	return u, nil
}

// Lookup returns the named user, or ErrNotFound.
func (c *Context) Lookup(name string) (*User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[name]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// Delete removes a user from the registry. Deleting the default user is
// refused: invariant 6 requires it always exist. Connections already
// bound to the deleted user keep their reference (see package doc on
// lazy re-resolution); Delete itself performs no connection bookkeeping.
func (c *Context) Delete(name string) error {
	if name == DefaultUsername {
		return errors.New("the default user cannot be deleted")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.users[name]; !ok {
		return ErrNotFound
	}
	delete(c.users, name)
	return nil
}

// Users returns every registered username, in no particular order.
func (c *Context) Users() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.users))
	for name := range c.users {
		names = append(names, name)
	}
	return names
}
