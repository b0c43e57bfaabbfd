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

// Package commands owns the server's command table: the set of commands a
// client may attempt to run, their categories, and how to find the keys
// each one touches. It is the CategoryCatalog the ACL engine consults to
// resolve "+@category" rule tokens, and the source of the acl.Command
// descriptors Authorise is handed at dispatch time.
package commands

import (
	"strings"

	"github.com/echovault/aclkv/internal"
	"github.com/echovault/aclkv/internal/acl"
)

// Catalog aggregates every registered internal.Command (and its
// subcommands) into a single lookup table, keyed case-insensitively by
// name.
type Catalog struct {
	ids      *acl.CommandIDs
	commands map[string]internal.Command
	order    []string
}

// NewCatalog builds a Catalog from one or more command sources (typically
// the Commands() function of each module). ids is the shared allocator
// also used by the ACL rule parser, so "+cmd" tokens and registered
// commands agree on IDs regardless of which one a name is seen through
// first.
func NewCatalog(ids *acl.CommandIDs, sources ...[]internal.Command) *Catalog {
	cat := &Catalog{
		ids:      ids,
		commands: make(map[string]internal.Command),
	}
	for _, source := range sources {
		for _, cmd := range source {
			cat.register(cmd)
		}
	}
	return cat
}

func (cat *Catalog) register(cmd internal.Command) {
	key := strings.ToLower(cmd.Command)
	if _, exists := cat.commands[key]; !exists {
		cat.order = append(cat.order, key)
	}
	cat.ids.IDOf(key)
	cat.commands[key] = cmd
}

// Lookup returns the registered command named name (case-insensitive).
func (cat *Catalog) Lookup(name string) (internal.Command, bool) {
	cmd, ok := cat.commands[strings.ToLower(name)]
	return cmd, ok
}

// Names returns every registered command name, in registration order.
func (cat *Catalog) Names() []string {
	names := make([]string, len(cat.order))
	copy(names, cat.order)
	return names
}

// CommandsInCategory implements acl.CategoryCatalog. "all" matches every
// registered command; any other category matches commands that list it
// (case-insensitively) among their Categories.
func (cat *Catalog) CommandsInCategory(category string) []string {
	category = strings.ToLower(category)
	var matches []string
	for _, name := range cat.order {
		cmd := cat.commands[name]
		if category == "all" {
			matches = append(matches, name)
			continue
		}
		for _, c := range cmd.Categories {
			if strings.ToLower(c) == category {
				matches = append(matches, name)
				break
			}
		}
	}
	return matches
}

// Descriptor resolves the acl.Command the authorisation engine needs for
// a single invocation: the command's stable ID, whether it's the AUTH
// command, and a KeyPositionFunc wrapping the command's own
// KeyExtractionFunc.
func (cat *Catalog) Descriptor(name string) (acl.Command, bool) {
	cmd, ok := cat.Lookup(name)
	if !ok {
		return acl.Command{}, false
	}
	kind := acl.CommandKindOther
	if cmd.Kind == acl.CommandKindAuth {
		kind = acl.CommandKindAuth
	}
	return acl.Command{
		Name: strings.ToLower(cmd.Command),
		ID:   cat.ids.IDOf(strings.ToLower(cmd.Command)),
		Kind: kind,
		KeyPositionFunc: func(argv []string) ([]int, error) {
			if cmd.KeyExtractionFunc == nil {
				return nil, nil
			}
			res, err := cmd.KeyExtractionFunc(argv)
			if err != nil {
				return nil, err
			}
			return res.KeyPositions, nil
		},
	}, true
}
