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

package config

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Config carries the subset of server configuration the ACL subsystem and
// its admin command surface need. ACL rules themselves are never read from
// or written to disk here; only the bootstrap password for the default
// user is ambient configuration.
type Config struct {
	BindAddr    string `json:"BindAddr" yaml:"BindAddr"`
	Port        uint16 `json:"Port" yaml:"Port"`
	DataDir     string `json:"DataDir" yaml:"DataDir"`
	RequirePass bool   `json:"RequirePass" yaml:"RequirePass"`
	Password    string `json:"Password" yaml:"Password"`
}

func DefaultConfig() Config {
	return Config{
		BindAddr:    "localhost",
		Port:        7480,
		DataDir:     ".",
		RequirePass: false,
		Password:    "",
	}
}

// GetConfig parses command-line flags and, if "-config" points at a JSON or
// YAML file, overlays values read from that file on top of the flag values.
func GetConfig() (Config, error) {
	bindAddr := flag.String("bind-addr", "localhost", "Address to bind the server to.")
	port := flag.Int("port", 7480, "Port to use.")
	dataDir := flag.String("data-dir", ".", "Working directory.")
	requirePass := flag.Bool("require-pass", false, "Whether the default user should require a password.")
	password := flag.String("password", "", "The password for the default user.")
	config := flag.String("config", "", "File path to a JSON or YAML config file. Overrides the flag values above.")

	flag.Parse()

	conf := Config{
		BindAddr:    *bindAddr,
		Port:        uint16(*port),
		DataDir:     *dataDir,
		RequirePass: *requirePass,
		Password:    *password,
	}

	if len(*config) > 0 {
		f, err := os.Open(*config)
		if err != nil {
			return Config{}, err
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Println("config file close error:", err)
			}
		}()

		switch path.Ext(f.Name()) {
		case ".json":
			if err := json.NewDecoder(f).Decode(&conf); err != nil {
				return Config{}, err
			}
		case ".yaml", ".yml":
			if err := yaml.NewDecoder(f).Decode(&conf); err != nil {
				return Config{}, err
			}
		}
	}

	if conf.RequirePass && conf.Password == "" {
		return Config{}, errors.New("password cannot be empty if require-pass is set to true")
	}

	return conf, nil
}
