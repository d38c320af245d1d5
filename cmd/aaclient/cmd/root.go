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

// Package cmd implements the aaclient command-line client: grep to
// resolve PV name patterns, get to fetch a time window of samples.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mdavidsaver/aaclient/archive"
	"github.com/mdavidsaver/aaclient/internal/common"
	"github.com/mdavidsaver/aaclient/internal/config"
	"github.com/mdavidsaver/aaclient/internal/logger"
)

// ErrNoResults is returned by a subcommand's RunE when the appliance
// answered without error but produced zero matches or samples, so
// Execute exits 1 rather than the 0 a nil return would give
// (spec.md §6, §7).
var ErrNoResults = errors.New("aaclient: no results")

var (
	confPath string
	timeout  time.Duration
	verbose  bool
	logFile  string
)

var rootCmd = &cobra.Command{
	Use:   "aaclient",
	Short: "Query an EPICS Archiver Appliance over HTTP",
	Version: common.Version,
}

// Execute runs the root command, exiting the process with code 1 on
// any returned error (spec.md §7's exit code contract).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&confPath, "conf", "C", "", "Configuration file path")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "w", 0, "Per-request timeout override (e.g. 30s)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file (rotated) instead of stdout")
}

// newArchive loads configuration (file plus flag overrides) and
// constructs an *archive.Archive shared by every subcommand.
func newArchive() (*archive.Archive, error) {
	overrides := common.NewOptions()
	if timeout > 0 {
		overrides.Merge("timeout", timeout)
	}
	if logFile != "" {
		overrides.Merge("logger", map[string]any{"stdout": false, "filename": logFile})
	}

	cfg, err := config.Load(confPath, overrides)
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.Logger.Level = "debug"
	}
	logger.SetOptions(cfg.Logger)

	return archive.New(cfg, nil)
}
