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

// Package common holds small pieces of state shared by every other
// package: build identity, the CLI override bag, and a default byte
// block size constant.
package common

import (
	"time"

	"github.com/spf13/cast"
)

const (
	// App is the module's short name. It equals the "aaclient" namespace
	// the decoder's Prometheus metrics are registered under.
	App = "aaclient"

	// Version is the release version the CLI reports for --version. It
	// is a constant; the linker-settable build identity is the separate
	// set of variables read by GetBuildInfo.
	Version = "v0.0.1"

	// ReadBlockSize is a 64 KiB byte block size. The archive client does
	// not read response bodies in blocks of this size: it reads in
	// Config.ChunkSize blocks.
	ReadBlockSize = 64 * 1024
)

var started = time.Now().Unix()

// Started returns the process start time as a Unix timestamp.
func Started() int64 {
	return started
}

// BuildInfo describes how the running binary was built.
type BuildInfo struct {
	Version string
	GitHash string
	Time    string
}

var (
	buildVersion string
	buildHash    string
	buildTime    string
)

// GetBuildInfo reads the linker-injected build identity.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version: buildVersion,
		GitHash: buildHash,
		Time:    buildTime,
	}
}

// Options is a loosely typed bag of CLI flag overrides that get merged
// onto a strongly typed Config before validation.
type Options map[string]any

func NewOptions() Options {
	return make(Options)
}

func (o Options) GetInt(k string) (int, error) {
	return cast.ToIntE(o[k])
}

func (o Options) GetBool(k string) (bool, error) {
	return cast.ToBoolE(o[k])
}

func (o Options) GetString(k string) (string, error) {
	return cast.ToStringE(o[k])
}

func (o Options) Merge(k string, v any) {
	o[k] = v
}
