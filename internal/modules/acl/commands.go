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
	"fmt"
	"sort"

	aclengine "github.com/echovault/aclkv/internal/acl"
	"github.com/echovault/aclkv/internal"
	"github.com/echovault/aclkv/internal/constants"
)

func managerFrom(params internal.HandlerFuncParams) (*Manager, error) {
	m, ok := params.GetACL().(*Manager)
	if !ok {
		return nil, errors.New("could not load ACL")
	}
	return m, nil
}

func handleAuth(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) < 2 || len(params.Command) > 3 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	m, err := managerFrom(params)
	if err != nil {
		return nil, err
	}
	if err := m.Authenticate(params.Connection, params.Command); err != nil {
		return nil, err
	}
	return []byte(constants.OkResponse), nil
}

func handleWhoAmI(params internal.HandlerFuncParams) ([]byte, error) {
	m, err := managerFrom(params)
	if err != nil {
		return nil, err
	}
	u := m.UserFor(params.Connection)
	return []byte(fmt.Sprintf("+%s\r\n", u.Name)), nil
}

func handleSetUser(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) < 3 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	m, err := managerFrom(params)
	if err != nil {
		return nil, err
	}
	username := params.Command[2]
	u, createErr := m.Engine.Create(username)
	if createErr != nil && !errors.Is(createErr, aclengine.ErrAlreadyExists) {
		return nil, createErr
	}
	if failedToken, applyErr := m.Engine.ApplyMany(u, params.Command[3:]); applyErr != nil {
		return nil, fmt.Errorf("%w (at token %q)", applyErr, failedToken)
	}
	return []byte(constants.OkResponse), nil
}

func handleDelUser(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) < 3 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	m, err := managerFrom(params)
	if err != nil {
		return nil, err
	}
	deleted := 0
	for _, username := range params.Command[2:] {
		if delErr := m.Engine.Delete(username); delErr == nil {
			deleted++
		}
	}
	return []byte(fmt.Sprintf(":%d\r\n", deleted)), nil
}

func handleUsers(params internal.HandlerFuncParams) ([]byte, error) {
	m, err := managerFrom(params)
	if err != nil {
		return nil, err
	}
	names := m.Engine.Users()
	sort.Strings(names)
	res := fmt.Sprintf("*%d", len(names))
	for _, name := range names {
		res += fmt.Sprintf("\r\n$%d\r\n%s", len(name), name)
	}
	res += "\r\n"
	return []byte(res), nil
}

func handleGetUser(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) != 3 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	m, err := managerFrom(params)
	if err != nil {
		return nil, err
	}
	u, lookupErr := m.Engine.Lookup(params.Command[2])
	if lookupErr != nil {
		return nil, errors.New("user not found")
	}

	var flags []string
	if u.Has(aclengine.FlagEnabled) {
		flags = append(flags, "on")
	} else {
		flags = append(flags, "off")
	}
	if u.Has(aclengine.FlagNoPass) {
		flags = append(flags, "nopass")
	}
	if u.Has(aclengine.FlagAllCommands) {
		flags = append(flags, "allcommands")
	}
	if u.Has(aclengine.FlagAllKeys) {
		flags = append(flags, "allkeys")
	}

	res := fmt.Sprintf("*8\r\n+username\r\n$%d\r\n%s", len(u.Name), u.Name)

	res += fmt.Sprintf("\r\n+flags\r\n*%d", len(flags))
	for _, flag := range flags {
		res += fmt.Sprintf("\r\n+%s", flag)
	}

	res += fmt.Sprintf("\r\n+passwords\r\n*%d", len(u.Passwords))
	for range u.Passwords {
		// Stored password values are never echoed back; only the count is
		// reported, mirroring how the original command redacts secrets.
		res += "\r\n+#redacted"
	}

	res += fmt.Sprintf("\r\n+keys\r\n*%d", len(u.Patterns))
	for _, pattern := range u.Patterns {
		res += fmt.Sprintf("\r\n+~%s", pattern)
	}

	res += "\r\n"
	return []byte(res), nil
}

func handleList(params internal.HandlerFuncParams) ([]byte, error) {
	m, err := managerFrom(params)
	if err != nil {
		return nil, err
	}
	names := m.Engine.Users()
	sort.Strings(names)
	res := fmt.Sprintf("*%d", len(names))
	for _, name := range names {
		u, lookupErr := m.Engine.Lookup(name)
		if lookupErr != nil {
			continue
		}
		line := "user " + u.Name
		if u.Has(aclengine.FlagEnabled) {
			line += " on"
		} else {
			line += " off"
		}
		if u.Has(aclengine.FlagNoPass) {
			line += " nopass"
		}
		if u.Has(aclengine.FlagAllKeys) {
			line += " allkeys"
		}
		for _, pattern := range u.Patterns {
			line += " ~" + pattern
		}
		if u.Has(aclengine.FlagAllCommands) {
			line += " +@all"
		}
		res += fmt.Sprintf("\r\n$%d\r\n%s", len(line), line)
	}
	res += "\r\n"
	return []byte(res), nil
}

func handleCat(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) > 3 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	catalog, ok := params.GetCatalog().(aclengine.CategoryCatalog)
	if !ok {
		return nil, errors.New("could not load command catalog")
	}

	if len(params.Command) == 2 {
		all := catalog.CommandsInCategory("all")
		res := fmt.Sprintf("*%d", len(all))
		for _, name := range all {
			res += fmt.Sprintf("\r\n$%d\r\n%s", len(name), name)
		}
		res += "\r\n"
		return []byte(res), nil
	}

	names := catalog.CommandsInCategory(params.Command[2])
	if len(names) == 0 {
		return nil, fmt.Errorf("no such category %q", params.Command[2])
	}
	res := fmt.Sprintf("*%d", len(names))
	for _, name := range names {
		res += fmt.Sprintf("\r\n$%d\r\n%s", len(name), name)
	}
	res += "\r\n"
	return []byte(res), nil
}

func handleHelp(params internal.HandlerFuncParams) ([]byte, error) {
	lines := []string{
		"ACL SETUSER <username> [rule [rule ...]]",
		"ACL GETUSER <username>",
		"ACL DELUSER <username> [username ...]",
		"ACL USERS",
		"ACL LIST",
		"ACL CAT [category]",
		"ACL WHOAMI",
		"ACL HELP",
	}
	res := fmt.Sprintf("*%d", len(lines))
	for _, line := range lines {
		res += fmt.Sprintf("\r\n+%s", line)
	}
	res += "\r\n"
	return []byte(res), nil
}

func noKeys(cmd []string) (internal.KeyExtractionFuncResult, error) {
	return internal.KeyExtractionFuncResult{KeyPositions: nil}, nil
}

func Commands() []internal.Command {
	return []internal.Command{
		{
			Command:           "auth",
			Module:            constants.ACLModule,
			Categories:        []string{constants.ConnectionCategory, constants.FastCategory},
			Description:       "(AUTH [username] password) Authenticates the connection.",
			Kind:              aclengine.CommandKindAuth,
			KeyExtractionFunc: noKeys,
			HandlerFunc:       handleAuth,
		},
		{
			Command:           "acl",
			Module:            constants.ACLModule,
			Categories:        []string{constants.AdminCategory, constants.SlowCategory},
			Description:       "Access control list commands.",
			KeyExtractionFunc: noKeys,
			SubCommands: []internal.SubCommand{
				{
					Command:           "setuser",
					Module:            constants.ACLModule,
					Categories:        []string{constants.AdminCategory, constants.SlowCategory, constants.DangerousCategory},
					Description:       "(ACL SETUSER username [rule ...]) Creates or edits a user.",
					KeyExtractionFunc: noKeys,
					HandlerFunc:       handleSetUser,
				},
				{
					Command:           "getuser",
					Module:            constants.ACLModule,
					Categories:        []string{constants.AdminCategory, constants.SlowCategory, constants.DangerousCategory},
					Description:       "(ACL GETUSER username) Reports the rules in effect for a user.",
					KeyExtractionFunc: noKeys,
					HandlerFunc:       handleGetUser,
				},
				{
					Command:           "deluser",
					Module:            constants.ACLModule,
					Categories:        []string{constants.AdminCategory, constants.SlowCategory, constants.DangerousCategory},
					Description:       "(ACL DELUSER username [username ...]) Deletes users. The default user cannot be deleted.",
					KeyExtractionFunc: noKeys,
					HandlerFunc:       handleDelUser,
				},
				{
					Command:           "users",
					Module:            constants.ACLModule,
					Categories:        []string{constants.AdminCategory, constants.SlowCategory},
					Description:       "(ACL USERS) Lists every configured username.",
					KeyExtractionFunc: noKeys,
					HandlerFunc:       handleUsers,
				},
				{
					Command:           "list",
					Module:            constants.ACLModule,
					Categories:        []string{constants.AdminCategory, constants.SlowCategory, constants.DangerousCategory},
					Description:       "(ACL LIST) Dumps the effective rules for every user in rule-token form.",
					KeyExtractionFunc: noKeys,
					HandlerFunc:       handleList,
				},
				{
					Command:           "cat",
					Module:            constants.ACLModule,
					Categories:        []string{constants.SlowCategory},
					Description:       "(ACL CAT [category]) Lists categories, or the commands within one.",
					KeyExtractionFunc: noKeys,
					HandlerFunc:       handleCat,
				},
				{
					Command:           "whoami",
					Module:            constants.ACLModule,
					Categories:        []string{constants.FastCategory},
					Description:       "(ACL WHOAMI) Reports the username the current connection is authenticated as.",
					KeyExtractionFunc: noKeys,
					HandlerFunc:       handleWhoAmI,
				},
				{
					Command:           "help",
					Module:            constants.ACLModule,
					Categories:        []string{constants.SlowCategory},
					Description:       "(ACL HELP) Lists the ACL subcommands.",
					KeyExtractionFunc: noKeys,
					HandlerFunc:       handleHelp,
				},
			},
		},
	}
}
