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

package constants

const Version = "0.1.0"

const (
	ACLModule        = "acl"
	ConnectionModule = "connection"
	GenericModule    = "generic"
	DebugModule      = "debug"
)

// ACL rule categories. "all" is the wildcard category matched by every command.
const (
	AllCategory       = "all"
	SetCategory       = "set"
	SortedSetCategory = "sortedset"
	ListCategory      = "list"
	HashCategory      = "hash"
	StringCategory    = "string"
	BitmapCategory    = "bitmap"
	HyperLogLogCategory = "hyperloglog"
	StreamCategory    = "stream"
	AdminCategory     = "admin"
	ReadOnlyCategory  = "readonly"
	ReadWriteCategory = "readwrite"
	FastCategory      = "fast"
	SlowCategory      = "slow"
	PubSubCategory    = "pubsub"
	ConnectionCategory = "connection"
	KeyspaceCategory  = "keyspace"
	DangerousCategory = "dangerous"
)

const (
	OkResponse        = "+OK\r\n"
	WrongArgsResponse = "wrong number of arguments"
	WrongPassResponse = "WRONGPASS invalid username-password pair or user is disabled"
)
