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
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWild2Re(t *testing.T) {
	cases := []struct{ in, want string }{
		{"LN-AM*DoseRate?", `LN-AM.*DoseRate.`},
		{`LN-AM\*Literal`, `LN-AM\*Literal`},
		{"a.b", `a\.b`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, wild2re(c.in), c.in)
	}
}

func TestBuildSearchRegexExactAddsAnchors(t *testing.T) {
	re, err := buildSearchRegex("LN-AM{RadMon:1}DoseRate-I", MatchExact)
	require.NoError(t, err)
	assert.Equal(t, `^LN-AM\{RadMon:1\}DoseRate-I$`, re)

	compiled, err := regexp.Compile(re)
	require.NoError(t, err)
	assert.True(t, compiled.MatchString("LN-AM{RadMon:1}DoseRate-I"))
	assert.False(t, compiled.MatchString("LN-AM{RadMon:1}DoseRate-IX"))
}

func TestBuildSearchRegexWildcardCompletesAnchors(t *testing.T) {
	re, err := buildSearchRegex("LN-AM*", MatchWildcard)
	require.NoError(t, err)
	assert.Equal(t, ".*LN-AM.*", re)

	compiled, err := regexp.Compile(re)
	require.NoError(t, err)
	assert.True(t, compiled.MatchString("LN-AM{RadMon:1}DoseRate-I"))
}

func TestBuildSearchRegexAlreadyAnchoredIsLeftAlone(t *testing.T) {
	re, err := buildSearchRegex("^LN-AM.*$", MatchRegex)
	require.NoError(t, err)
	assert.Equal(t, "^LN-AM.*$", re)
}

func TestBuildSearchRegexUnanchoredRegexGetsCompleted(t *testing.T) {
	re, err := buildSearchRegex("LN-AM", MatchRegex)
	require.NoError(t, err)
	assert.Equal(t, ".*LN-AM.*", re)
}

func TestStripOperatorRoundTrip(t *testing.T) {
	op, inner, wrapped := stripOperator("caplotbinning_300(LN-AM{RadMon:1}DoseRate-I)")
	require.True(t, wrapped)
	assert.Equal(t, "caplotbinning_300", op)
	assert.Equal(t, "LN-AM{RadMon:1}DoseRate-I", inner)
}

func TestStripOperatorNoMatch(t *testing.T) {
	_, inner, wrapped := stripOperator("LN-AM{RadMon:1}DoseRate-I")
	assert.False(t, wrapped)
	assert.Equal(t, "LN-AM{RadMon:1}DoseRate-I", inner)
}
