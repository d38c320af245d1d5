// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the aaclient YAML configuration file. It
// replaces the original Python implementation's configparser-based INI
// format (aaclient/conf.py) with the teacher's go-ucfg based engine,
// which is the idiomatic choice for this corpus.
package config

import (
	"github.com/elastic/go-ucfg"
	"github.com/elastic/go-ucfg/yaml"
)

// Engine wraps ucfg.Config with a few convenience accessors. Load uses
// only Unpack; Config.Validate works on the unpacked Config, not on the
// Engine.
type Engine struct {
	conf *ucfg.Config
}

func newEngine(conf *ucfg.Config) *Engine {
	return &Engine{conf: conf}
}

func (e *Engine) Has(path string) bool {
	ok, err := e.conf.Has(path, -1)
	return err == nil && ok
}

func (e *Engine) Unpack(to any) error {
	return e.conf.Unpack(to)
}

// LoadPath reads and parses a YAML config file from disk.
func LoadPath(path string) (*Engine, error) {
	conf, err := yaml.NewConfigWithFile(path, ucfg.PathSep("."))
	if err != nil {
		return nil, err
	}
	return newEngine(conf), nil
}

// LoadContent parses an in-memory YAML document. Load reads files
// through LoadPath and does not call it.
func LoadContent(b []byte) (*Engine, error) {
	conf, err := yaml.NewConfig(b)
	if err != nil {
		return nil, err
	}
	return newEngine(conf), nil
}
