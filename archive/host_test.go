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

package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteHostLocalhostWithPort(t *testing.T) {
	out, err := rewriteHost("http://localhost:17665/mgmt/bpl/getApplianceInfo", "archiver.example.org:17665")
	require.NoError(t, err)
	assert.Equal(t, "http://archiver.example.org:17665/mgmt/bpl/getApplianceInfo", out)
}

func TestRewriteHostLoopbackIP(t *testing.T) {
	out, err := rewriteHost("http://127.0.0.1:17665/retrieval/bpl", "archiver.example.org:17665")
	require.NoError(t, err)
	assert.Equal(t, "http://archiver.example.org:17665/retrieval/bpl", out)
}

func TestRewriteHostLeavesOtherHostsAlone(t *testing.T) {
	out, err := rewriteHost("http://archiver-internal.example.org:17665/mgmt/bpl", "archiver.example.org:17665")
	require.NoError(t, err)
	assert.Equal(t, "http://archiver-internal.example.org:17665/mgmt/bpl", out)
}

func TestRewriteHostRequestHostWithoutPort(t *testing.T) {
	out, err := rewriteHost("http://localhost/mgmt/bpl", "archiver.example.org")
	require.NoError(t, err)
	assert.Equal(t, "http://archiver.example.org/mgmt/bpl", out)
}

func TestRewriteHostInvalidURL(t *testing.T) {
	_, err := rewriteHost("http://[::1:bad", "archiver.example.org")
	assert.Error(t, err)
}
