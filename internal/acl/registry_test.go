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
	"testing"
)

type stubCatalog struct {
	categories map[string][]string
}

func (s stubCatalog) CommandsInCategory(category string) []string {
	return s.categories[category]
}

func TestInitSeedsDefaultUser(t *testing.T) {
	c := NewContext(stubCatalog{}, nil)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	u, err := c.Lookup(DefaultUsername)
	if err != nil {
		t.Fatalf("Lookup(default): %v", err)
	}
	if !u.Has(FlagEnabled) || !u.Has(FlagAllCommands) || !u.Has(FlagAllKeys) || !u.Has(FlagNoPass) {
		t.Fatalf("expected default user to be ENABLED, ALLCOMMANDS, ALLKEYS, NOPASS; got flags=%b", u.Flags)
	}
}

func TestCreateRejectsDuplicate(t *testing.T) {
	c := NewContext(nil, nil)
	if _, err := c.Create("alice"); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := c.Create("alice"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestLookupMissingUser(t *testing.T) {
	c := NewContext(nil, nil)
	if _, err := c.Lookup("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRefusesDefaultUser(t *testing.T) {
	c := NewContext(nil, nil)
	if err := c.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := c.Delete(DefaultUsername); err == nil {
		t.Fatal("expected deleting the default user to be refused")
	}
	if _, err := c.Lookup(DefaultUsername); err != nil {
		t.Fatal("expected default user to still exist after a refused delete")
	}
}

func TestDeleteRemovesOtherUsers(t *testing.T) {
	c := NewContext(nil, nil)
	if _, err := c.Create("bob"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := c.Delete("bob"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Lookup("bob"); !errors.Is(err, ErrNotFound) {
		t.Fatal("expected bob to be gone after Delete")
	}
}
