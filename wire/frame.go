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

// Package wire implements the Frame Splitter (spec.md §4.1): scanning a
// byte buffer for unescaped newline frame terminators and reversing the
// in-band escape substitutions that let otherwise-binary protobuf
// payloads carry a literal '\n' terminator safely.
//
// The scan itself is grounded on the teacher's internal/splitio.Scanner,
// which walks a buffer with bytes.IndexByte('\n') while keeping the
// delimiter; this version additionally resolves the 3-case escape and
// distinguishes a legitimate trailing remainder from malformed framing.
package wire

import "github.com/pkg/errors"

const (
	escByte  = 0x1b
	escEsc   = 0x01 // 0x1b 0x01 -> 0x1b
	escLF    = 0x02 // 0x1b 0x02 -> '\n'
	escCR    = 0x03 // 0x1b 0x03 -> '\r'
	frameLF  = '\n'
	rawLF    = 0x0a
	rawCR    = 0x0d
)

// ErrMalformedFraming is wrapped around every framing failure: a bad
// escape continuation byte, or an escape byte with no continuation
// before the frame terminator.
var ErrMalformedFraming = errors.New("wire: malformed framing")

// Split scans in for unescaped '\n' frame terminators. It returns the
// complete logical frames found (escape sequences resolved), plus the
// trailing bytes after the last terminator as remainder — callers feed
// remainder back in, prepended to the next chunk, on the next call.
//
// Split never blocks on more data: an escape byte that is the last byte
// of in is assumed incomplete (not yet malformed) and folded into
// remainder verbatim, to be resolved once more bytes arrive.
func Split(in []byte) (frames [][]byte, remainder []byte, err error) {
	var cur []byte
	pendingStart := 0
	i, n := 0, len(in)

	for i < n {
		c := in[i]
		switch {
		case c == escByte:
			if i+1 >= n {
				// Incomplete: wait for more data.
				i = n
				goto done
			}
			switch in[i+1] {
			case escEsc:
				cur = append(cur, escByte)
			case escLF:
				cur = append(cur, rawLF)
			case escCR:
				cur = append(cur, rawCR)
			default:
				return nil, nil, errors.Wrapf(ErrMalformedFraming,
					"escape byte followed by invalid continuation 0x%02x", in[i+1])
			}
			i += 2

		case c == frameLF:
			frames = append(frames, cur)
			cur = nil
			i++
			pendingStart = i

		default:
			cur = append(cur, c)
			i++
		}
	}

done:
	remainder = append([]byte(nil), in[pendingStart:]...)
	return frames, remainder, nil
}

// Join is the inverse of Split: it re-escapes each logical frame and
// appends the '\n' terminator, for building test fixtures and for the
// encode-side round-trip tests described in spec.md §8. Production I/O
// never writes the wire format back over the network (spec.md §1
// Non-goals).
func Join(frames [][]byte) []byte {
	var out []byte
	for _, f := range frames {
		for _, b := range f {
			switch b {
			case escByte:
				out = append(out, escByte, escEsc)
			case rawLF:
				out = append(out, escByte, escLF)
			case rawCR:
				out = append(out, escByte, escCR)
			default:
				out = append(out, b)
			}
		}
		out = append(out, frameLF)
	}
	return out
}
