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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateReportsEveryMissingField(t *testing.T) {
	err := (Config{}).Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "url is required")
	assert.Contains(t, msg, "maxQuery must be positive")
	assert.Contains(t, msg, "chunkSize must be positive")
}

func TestLoadSizesLoggerRotationWhenFilenameOverridden(t *testing.T) {
	cfg, err := Load("", map[string]any{
		"logger": map[string]any{"stdout": false, "filename": "aaclient.log"},
	})
	require.NoError(t, err)

	assert.Equal(t, "aaclient.log", cfg.Logger.Filename)
	assert.False(t, cfg.Logger.Stdout)
	assert.Equal(t, 20, cfg.Logger.MaxSize)
	assert.Equal(t, 3, cfg.Logger.MaxBackups)
	assert.Equal(t, 7, cfg.Logger.MaxAge)
}

func TestLoadLeavesLoggerUntouchedWithoutFilename(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Empty(t, cfg.Logger.Filename)
	assert.Zero(t, cfg.Logger.MaxSize)
}

func TestLoadRespectsExplicitRotationSizing(t *testing.T) {
	cfg, err := Load("", map[string]any{
		"logger": map[string]any{"filename": "aaclient.log", "maxSize": 5, "maxBackups": 1, "maxAge": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Logger.MaxSize)
	assert.Equal(t, 1, cfg.Logger.MaxBackups)
	assert.Equal(t, 1, cfg.Logger.MaxAge)
}
