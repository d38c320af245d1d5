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

package dtype

// StringCellSize is the fixed width of a SCALAR_STRING/WAVEFORM_STRING
// value cell (spec.md §3: "Strings occupy fixed 40-byte cells").
const StringCellSize = 40

// StringCell is a fixed-capacity byte buffer that truncates writes
// exceeding its capacity and pads short writes with zero bytes.
//
// Adapted from the teacher's bufbytes.Bytes, which offered the same
// bounded-write-then-truncate behavior for a different purpose (reading
// fixed-size C-string fields out of a captured packet).
type StringCell struct {
	buf [StringCellSize]byte
	n   int
}

// NewStringCell packs s into a zero-padded or truncated 40-byte cell.
func NewStringCell(s []byte) StringCell {
	var c StringCell
	n := copy(c.buf[:], s)
	c.n = n
	return c
}

// Bytes returns the cell's full fixed-width backing array, zero-padded
// after the written content.
func (c StringCell) Bytes() [StringCellSize]byte {
	return c.buf
}

// Text returns the written content without the zero padding.
func (c StringCell) Text() string {
	return string(c.buf[:c.n])
}

// TrimCStringText returns Text() with one trailing NUL stripped, should
// the source have null-terminated the string within the cell.
func (c StringCell) TrimCStringText() string {
	if c.n > 0 && c.buf[c.n-1] == 0 {
		return string(c.buf[:c.n-1])
	}
	return c.Text()
}
