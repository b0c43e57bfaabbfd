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
	"fmt"
	"strings"
)

// SyntaxError reports an unrecognised or malformed rule token. The
// offending token is carried so the admin surface can echo it back
// verbatim in its error reply.
type SyntaxError struct {
	Token string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unknown ACL rule modifier '%s'", e.Token)
}

// ApplyRule interprets a single rule token and mutates u accordingly. See
// the package doc table for the full grammar. Any token not recognised
// below returns a *SyntaxError and leaves u unmodified.
func (c *Context) ApplyRule(u *User, token string) error {
	switch {
	case equalFoldASCII(token, "on"):
		u.setFlag(FlagEnabled)
		return nil

	case equalFoldASCII(token, "off"):
		u.clearFlag(FlagEnabled)
		return nil

	case equalFoldASCII(token, "allkeys"), token == "~*":
		u.SetAllKeys()
		return nil

	case equalFoldASCII(token, "allcommands"), equalFoldASCII(token, "+@all"):
		u.setFlag(FlagAllCommands)
		u.SetAllCommands()
		return nil

	case equalFoldASCII(token, "nopass"):
		u.SetNoPass()
		return nil

	case equalFoldASCII(token, "resetpass"):
		u.ResetPass()
		return nil

	case equalFoldASCII(token, "resetkeys"):
		u.ResetKeys()
		return nil

	case equalFoldASCII(token, "reset"):
		// Equivalent to resetpass, resetkeys, off, -@all in sequence, but
		// clears the command bitmap and subcommand allowlist directly
		// rather than through category expansion: "-@all" only reaches
		// commands the catalog currently enumerates, and a freshly reset
		// user must come back to New's zero state regardless of which
		// commands have been named so far.
		u.ResetPass()
		u.ResetKeys()
		u.clearFlag(FlagEnabled)
		u.ClearAllCommands()
		u.clearFlag(FlagAllCommands)
		u.allowedSubcommands = make(map[uint64][]string)
		return nil

	case len(token) > 0 && token[0] == '>':
		u.AddPassword([]byte(token[1:]))
		return nil

	case len(token) > 0 && token[0] == '<':
		u.RemovePassword([]byte(token[1:]))
		return nil

	case len(token) > 0 && token[0] == '~':
		u.AddPattern(token[1:])
		return nil

	case len(token) > 1 && token[0] == '+' && token[1] == '@':
		for _, name := range c.commandsInCategory(token[2:]) {
			u.AllowCommand(c.IDs.IDOf(name))
		}
		return nil

	case len(token) > 1 && token[0] == '-' && token[1] == '@':
		for _, name := range c.commandsInCategory(token[2:]) {
			u.DenyCommand(c.IDs.IDOf(name))
		}
		u.clearFlag(FlagAllCommands)
		return nil

	case len(token) > 1 && token[0] == '+' && strings.Contains(token, "|"):
		cmd, sub, ok := strings.Cut(token[1:], "|")
		if !ok || cmd == "" || sub == "" {
			return &SyntaxError{Token: token}
		}
		u.AllowSubcommand(c.IDs.IDOf(cmd), sub)
		return nil

	case len(token) > 1 && token[0] == '+':
		u.AllowCommand(c.IDs.IDOf(token[1:]))
		return nil

	case len(token) > 1 && token[0] == '-' && strings.Contains(token, "|"):
		// Subcommand allowlisting is additive-only; "-cmd|sub" has no
		// meaning and is rejected rather than silently denying "cmd|sub"
		// as if it were a literal command name.
		return &SyntaxError{Token: token}

	case len(token) > 1 && token[0] == '-':
		u.DenyCommand(c.IDs.IDOf(token[1:]))
		u.clearFlag(FlagAllCommands)
		return nil

	default:
		return &SyntaxError{Token: token}
	}
}

// ApplyMany applies tokens to u in order, stopping at the first
// SyntaxError. It returns the token that failed (empty if all of them
// applied) and the error. Earlier successful mutations are not rolled
// back; this mirrors ACL SETUSER's own policy of leaving partial state
// in place so the operator can see exactly which modifier failed.
func (c *Context) ApplyMany(u *User, tokens []string) (string, error) {
	for _, token := range tokens {
		if err := c.ApplyRule(u, token); err != nil {
			return token, err
		}
	}
	return "", nil
}

func (c *Context) commandsInCategory(category string) []string {
	if c.Catalog == nil {
		return nil
	}
	return c.Catalog.CommandsInCategory(strings.ToLower(category))
}
