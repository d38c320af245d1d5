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

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdavidsaver/aaclient/archive"
)

func resetGrepFlags() {
	grepExact, grepWildcard, grepRegexp = false, false, false
}

func TestGrepMatchModeDefaultsToWildcard(t *testing.T) {
	defer resetGrepFlags()
	mode, err := grepMatchMode()
	require.NoError(t, err)
	assert.Equal(t, archive.MatchWildcard, mode)
}

func TestGrepMatchModeExact(t *testing.T) {
	defer resetGrepFlags()
	grepExact = true
	mode, err := grepMatchMode()
	require.NoError(t, err)
	assert.Equal(t, archive.MatchExact, mode)
}

func TestGrepMatchModeRegexp(t *testing.T) {
	defer resetGrepFlags()
	grepRegexp = true
	mode, err := grepMatchMode()
	require.NoError(t, err)
	assert.Equal(t, archive.MatchRegex, mode)
}

func TestGrepMatchModeRejectsConflictingFlags(t *testing.T) {
	defer resetGrepFlags()
	grepExact = true
	grepRegexp = true
	_, err := grepMatchMode()
	assert.Error(t, err)
}
