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

package commands

import (
	"errors"
	"fmt"

	"github.com/echovault/aclkv/internal"
	"github.com/echovault/aclkv/internal/constants"
)

func storeFrom(params internal.HandlerFuncParams) (*Store, error) {
	if params.GetStore == nil {
		return nil, errors.New("no store configured")
	}
	store, ok := params.GetStore().(*Store)
	if !ok {
		return nil, errors.New("store has unexpected type")
	}
	return store, nil
}

func handleGet(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) != 2 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	store, err := storeFrom(params)
	if err != nil {
		return nil, err
	}
	value, ok := store.Get(params.Command[1])
	if !ok {
		return []byte("$-1\r\n"), nil
	}
	return []byte(fmt.Sprintf("$%d\r\n%s\r\n", len(value), value)), nil
}

func handleSet(params internal.HandlerFuncParams) ([]byte, error) {
	if len(params.Command) != 3 {
		return nil, errors.New(constants.WrongArgsResponse)
	}
	store, err := storeFrom(params)
	if err != nil {
		return nil, err
	}
	store.Set(params.Command[1], params.Command[2])
	return []byte(constants.OkResponse), nil
}

func GenericCommands() []internal.Command {
	return []internal.Command{
		{
			Command:     "get",
			Module:      constants.GenericModule,
			Categories:  []string{constants.StringCategory, constants.ReadOnlyCategory, constants.FastCategory},
			Description: "(GET key) Retrieve the string value stored at key, or nil if the key does not exist.",
			KeyExtractionFunc: func(cmd []string) (internal.KeyExtractionFuncResult, error) {
				if len(cmd) != 2 {
					return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
				}
				return internal.KeyExtractionFuncResult{KeyPositions: []int{1}}, nil
			},
			HandlerFunc: handleGet,
		},
		{
			Command:     "set",
			Module:      constants.GenericModule,
			Categories:  []string{constants.StringCategory, constants.ReadWriteCategory, constants.FastCategory},
			Description: "(SET key value) Store value under key, overwriting any existing value.",
			KeyExtractionFunc: func(cmd []string) (internal.KeyExtractionFuncResult, error) {
				if len(cmd) != 3 {
					return internal.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
				}
				return internal.KeyExtractionFuncResult{KeyPositions: []int{1}}, nil
			},
			HandlerFunc: handleSet,
		},
	}
}
