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

// CommandKind tags a command descriptor so Authorise can recognise the
// authentication command without depending on the dispatch table's
// underlying function-pointer identity.
type CommandKind int

const (
	CommandKindOther CommandKind = iota
	CommandKindAuth
)

// KeyPositionFunc extracts the argv indices that hold key names for a
// single command invocation.
type KeyPositionFunc func(argv []string) ([]int, error)

// Command is the resolved command descriptor a client carries into
// Authorise: its stable ID, whether it's the auth command, and how to
// find its keys in a given argv.
type Command struct {
	Name            string
	ID              uint64
	Kind            CommandKind
	FirstKey        int
	KeyPositionFunc KeyPositionFunc
}

// hasKeys mirrors the original's "getkeys_proc || firstkey" check: a
// command only goes through the key gate if it declares a way to find
// keys at all.
func (cmd Command) hasKeys() bool {
	return cmd.FirstKey != 0 || cmd.KeyPositionFunc != nil
}

// Client is the minimal view of a connection that Authorise needs: the
// user it's bound to (nil for an internal, unauthenticated-origin
// request), the resolved command, and the literal argv of the attempted
// invocation.
type Client struct {
	User *User
	Cmd  Command
	Argv []string
}

// Decision is the outcome of an authorisation check.
type Decision int

const (
	Allow Decision = iota
	DeniedCommand
	DeniedKey
)

// Authorise decides whether client may run its attempted command. See
// the package doc for the exact step ordering: the command gate always
// runs before the key gate, and within the key gate keys are checked in
// ascending argv position with the first unmatched key failing the
// whole check.
func (c *Context) Authorise(client *Client) Decision {
	u := client.User
	if u == nil {
		return Allow
	}

	if client.Cmd.ID >= MaxCmdBits {
		return DeniedCommand
	}

	if !u.Has(FlagAllCommands) && client.Cmd.Kind != CommandKindAuth {
		if !u.CommandAllowed(client.Cmd.ID) {
			if len(client.Argv) < 2 || !u.SubcommandAllowed(client.Cmd.ID, client.Argv[1]) {
				return DeniedCommand
			}
		}
	}

	if !u.Has(FlagAllKeys) && client.Cmd.hasKeys() {
		positions, err := keyPositions(client.Cmd, client.Argv)
		if err != nil {
			return DeniedCommand
		}
		for _, idx := range positions {
			if idx < 0 || idx >= len(client.Argv) {
				continue
			}
			key := client.Argv[idx]
			if !c.keyMatchesAnyPattern(u, key) {
				return DeniedKey
			}
		}
	}

	return Allow
}

func keyPositions(cmd Command, argv []string) ([]int, error) {
	if cmd.KeyPositionFunc != nil {
		return cmd.KeyPositionFunc(argv)
	}
	if cmd.FirstKey > 0 && cmd.FirstKey < len(argv) {
		return []int{cmd.FirstKey}, nil
	}
	return nil, nil
}

func (c *Context) keyMatchesAnyPattern(u *User, key string) bool {
	for _, pattern := range u.Patterns {
		if c.Matcher.Match(pattern, key) {
			return true
		}
	}
	return false
}
