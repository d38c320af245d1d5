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

package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitBasics(t *testing.T) {
	cases := []struct {
		name      string
		in        string
		frames    []string
		remainder string
	}{
		{"empty", "", nil, ""},
		{"bare terminator", "\n", []string{""}, ""},
		{"no terminator", "hello", nil, "hello"},
		{"single frame", "hello\n", []string{"hello"}, ""},
		{"frame plus remainder", "hello\nworld", []string{"hello"}, "world"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			frames, remainder, err := Split([]byte(c.in))
			require.NoError(t, err)
			assert.Equal(t, c.frames, framesToStrings(frames))
			assert.Equal(t, c.remainder, string(remainder))
		})
	}
}

func TestSplitEscapes(t *testing.T) {
	in := "\x1b\x01\n\x1b\x02\n\x1b\x03\n"
	frames, remainder, err := Split([]byte(in))
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, "\x1b", string(frames[0]))
	assert.Equal(t, "\n", string(frames[1]))
	assert.Equal(t, "\r", string(frames[2]))
	assert.Empty(t, remainder)
}

func TestSplitEscapesAmongData(t *testing.T) {
	in := "q\x1b\x01q\nq\x1b\x02q\nq\x1b\x03q\n"
	frames, remainder, err := Split([]byte(in))
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, "q\x1bq", string(frames[0]))
	assert.Equal(t, "q\nq", string(frames[1]))
	assert.Equal(t, "q\rq", string(frames[2]))
	assert.Empty(t, remainder)
}

func TestSplitIncompleteEscapeIsRemainder(t *testing.T) {
	// A bare ESC at the very end of the buffer is not yet known to be
	// malformed: more data may complete it.
	frames, remainder, err := Split([]byte("hello\x1b"))
	require.NoError(t, err)
	assert.Nil(t, frames)
	assert.Equal(t, "hello\x1b", string(remainder))
}

func TestSplitMalformed(t *testing.T) {
	cases := []string{
		"\x1b\n",
		"xxx\x1b\n",
		"\x1b\x1b\n",
		"hello \x1bworld\n",
	}
	for _, in := range cases {
		_, _, err := Split([]byte(in))
		assert.ErrorIs(t, err, ErrMalformedFraming, "input %q", in)
	}
}

func TestJoinRoundTrip(t *testing.T) {
	frames := [][]byte{
		[]byte("\x1b"),
		[]byte("\n"),
		[]byte("\r"),
		[]byte("plain bytes"),
	}
	joined := Join(frames)

	gotFrames, remainder, err := Split(joined)
	require.NoError(t, err)
	assert.Empty(t, remainder)
	require.Len(t, gotFrames, len(frames))
	for i := range frames {
		assert.Equal(t, frames[i], gotFrames[i])
	}
}

func TestSplitJoinRoundTripWithRemainder(t *testing.T) {
	frames := [][]byte{[]byte("alpha"), []byte("beta")}
	remainder := []byte("tail-no-newline")

	buf := append(Join(frames), remainder...)
	gotFrames, gotRemainder, err := Split(buf)
	require.NoError(t, err)
	require.Len(t, gotFrames, 2)
	assert.Equal(t, frames[0], gotFrames[0])
	assert.Equal(t, frames[1], gotFrames[1])
	assert.Equal(t, remainder, gotRemainder)
}

func framesToStrings(frames [][]byte) []string {
	if frames == nil {
		return nil
	}
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = string(f)
	}
	return out
}

