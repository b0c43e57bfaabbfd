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

import "sync"

// CommandIDs hands out dense, stable command IDs. The first call for a
// given name allocates the next counter value; every later call for that
// same name returns the same ID. IDs are never reused, and are shared by
// both the command registry (which stamps each registered command with
// its ID at startup) and the rule parser (which resolves "+cmd" tokens to
// the same IDs, including for commands not yet seen).
type CommandIDs struct {
	mu   sync.Mutex
	ids  map[string]uint64
	next uint64
}

func NewCommandIDs() *CommandIDs {
	return &CommandIDs{ids: make(map[string]uint64)}
}

// IDOf returns the ID for name, allocating one if this is the first time
// name has been seen. Matching is case-sensitive.
func (c *CommandIDs) IDOf(name string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.ids[name]; ok {
		return id
	}
	id := c.next
	c.ids[name] = id
	c.next++
	return id
}
