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

package config

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/mdavidsaver/aaclient/internal/logger"
)

// ErrConfig is wrapped around every configuration validation failure.
var ErrConfig = errors.New("config")

// Config is the typed configuration for an archive client, mirroring
// the defaults of the original aaclient/conf.py DEFAULT section.
type Config struct {
	URL          string         `config:"url"`
	MaxQuery     int            `config:"maxQuery"`
	ChunkSize    int            `config:"chunkSize"`
	DefaultCount int            `config:"defaultCount"`
	Consolidate  bool           `config:"consolidate"`
	Timeout      time.Duration  `config:"timeout"`
	Logger       logger.Options `config:"logger"`
}

// Default mirrors aaclient/conf.py's ConfigParser DEFAULT section.
func Default() Config {
	return Config{
		URL:          "http://localhost:17665/mgmt/bpl/getApplianceInfo",
		MaxQuery:     30,
		ChunkSize:    256 * 1024,
		DefaultCount: 1000,
		Consolidate:  true,
		Timeout:      30 * time.Second,
		Logger:       logger.Options{Stdout: true, Level: "info"},
	}
}

// Load reads path (if non-empty) on top of Default(), then merges CLI
// overrides, then validates.
func Load(path string, overrides map[string]any) (Config, error) {
	cfg := Default()

	if path != "" {
		eng, err := LoadPath(path)
		if err != nil {
			return Config{}, errors.Wrapf(ErrConfig, "load %q: %v", path, err)
		}
		if err := eng.Unpack(&cfg); err != nil {
			return Config{}, errors.Wrapf(ErrConfig, "unpack %q: %v", path, err)
		}
	}

	if len(overrides) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: "config",
			Result:  &cfg,
		})
		if err != nil {
			return Config{}, errors.Wrapf(ErrConfig, "build decoder: %v", err)
		}
		if err := dec.Decode(overrides); err != nil {
			return Config{}, errors.Wrapf(ErrConfig, "apply overrides: %v", err)
		}
	}

	applyLoggerDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyLoggerDefaults sizes lumberjack rotation once file logging is
// requested but left unsized. aaclient is a short-lived CLI, not a
// long-running daemon, so it rotates smaller and sooner than a typical
// service would.
func applyLoggerDefaults(cfg *Config) {
	if cfg.Logger.Filename == "" {
		return
	}
	if cfg.Logger.MaxSize <= 0 {
		cfg.Logger.MaxSize = 20
	}
	if cfg.Logger.MaxBackups <= 0 {
		cfg.Logger.MaxBackups = 3
	}
	if cfg.Logger.MaxAge <= 0 {
		cfg.Logger.MaxAge = 7
	}
}

// Validate reports every missing/invalid required field at once via a
// multierror, rather than failing fast on the first problem.
func (c Config) Validate() error {
	var merr *multierror.Error
	if c.URL == "" {
		merr = multierror.Append(merr, errors.Wrap(ErrConfig, "url is required"))
	}
	if c.MaxQuery <= 0 {
		merr = multierror.Append(merr, errors.Wrap(ErrConfig, "maxQuery must be positive"))
	}
	if c.ChunkSize <= 0 {
		merr = multierror.Append(merr, errors.Wrap(ErrConfig, "chunkSize must be positive"))
	}
	return merr.ErrorOrNil()
}
