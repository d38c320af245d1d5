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

import "github.com/pkg/errors"

// Kind identifies which element type a Row/Values batch carries,
// independent of whether the wire PayloadType was a scalar or waveform
// variant of it (SCALAR_SHORT and WAVEFORM_SHORT both carry KindShort).
type Kind int

const (
	KindShort Kind = iota
	KindInt
	KindFloat
	KindDouble
	KindByte
	KindEnum
	KindString
	KindBytes
)

// ElementKind maps a wire PayloadType to the Kind of its elements.
func ElementKind(pt PayloadType) (Kind, error) {
	switch pt {
	case ScalarShort, WaveformShort:
		return KindShort, nil
	case ScalarInt, WaveformInt:
		return KindInt, nil
	case ScalarFloat, WaveformFloat:
		return KindFloat, nil
	case ScalarDouble, WaveformDouble:
		return KindDouble, nil
	case ScalarByte, WaveformByte:
		return KindByte, nil
	case ScalarEnum, WaveformEnum:
		return KindEnum, nil
	case ScalarString, WaveformString:
		return KindString, nil
	case V4GenericBytes:
		return KindBytes, nil
	default:
		return 0, errors.Errorf("dtype: unknown PayloadType %d", int32(pt))
	}
}

// MetaRow is the packed (sec_posix, ns, severity, status) quadruple
// attached to every decoded sample (spec.md §3).
type MetaRow struct {
	Sec      uint32
	Ns       uint32
	Severity uint32
	Status   uint32
}

// Row is one decoded sample's value, in its native element type.
// Exactly the field named by Kind is populated.
//
// Note on WAVEFORM_STRING: the original Python implementation maps both
// SCALAR_STRING and WAVEFORM_STRING to the same single-cell numpy dtype
// ('40c', see aaclient/dtype.py pt2dt) rather than an elementCount-sized
// array of cells. That quirk is preserved here rather than invented
// around: String is always exactly one StringCellSize cell per row.
type Row struct {
	Kind    Kind
	Short   []int16
	Int     []int32
	Float   []float32
	Double  []float64
	Byte    []int8
	Enum    []int16
	String  StringCell
	Bytes   []byte
}

// Len reports the element count actually carried by the row (not the
// header's declared elementCount, which ElementCountMismatch recovery
// may have padded/truncated this row to match).
func (r Row) Len() int {
	switch r.Kind {
	case KindShort:
		return len(r.Short)
	case KindInt:
		return len(r.Int)
	case KindFloat:
		return len(r.Float)
	case KindDouble:
		return len(r.Double)
	case KindByte:
		return len(r.Byte)
	case KindEnum:
		return len(r.Enum)
	case KindString:
		return 1
	case KindBytes:
		return 1
	default:
		return 0
	}
}

// ZeroRow builds an all-zero Row of the given kind and element count.
// String and Bytes rows come back empty. Waveform padding does not use
// it: PadOrTruncate zero-fills through its own per-kind helpers.
func ZeroRow(kind Kind, elementCount int) Row {
	switch kind {
	case KindShort:
		return Row{Kind: kind, Short: make([]int16, elementCount)}
	case KindInt:
		return Row{Kind: kind, Int: make([]int32, elementCount)}
	case KindFloat:
		return Row{Kind: kind, Float: make([]float32, elementCount)}
	case KindDouble:
		return Row{Kind: kind, Double: make([]float64, elementCount)}
	case KindByte:
		return Row{Kind: kind, Byte: make([]int8, elementCount)}
	case KindEnum:
		return Row{Kind: kind, Enum: make([]int16, elementCount)}
	case KindString:
		return Row{Kind: kind}
	case KindBytes:
		return Row{Kind: kind}
	default:
		return Row{Kind: kind}
	}
}

// PadOrTruncate right-pads r with zero elements up to elementCount, or
// truncates it, to satisfy spec.md §4.3's waveform elementCount
// recovery rule. Returns whether a mismatch occurred (the caller logs
// an ElementCountMismatch warning in that case; it is never a hard
// error).
func (r Row) PadOrTruncate(elementCount int) (Row, bool) {
	switch r.Kind {
	case KindShort:
		out, changed := padShort(r.Short, elementCount)
		return Row{Kind: r.Kind, Short: out}, changed
	case KindInt:
		out, changed := padInt(r.Int, elementCount)
		return Row{Kind: r.Kind, Int: out}, changed
	case KindFloat:
		out, changed := padFloat(r.Float, elementCount)
		return Row{Kind: r.Kind, Float: out}, changed
	case KindDouble:
		out, changed := padDouble(r.Double, elementCount)
		return Row{Kind: r.Kind, Double: out}, changed
	case KindByte:
		out, changed := padByte(r.Byte, elementCount)
		return Row{Kind: r.Kind, Byte: out}, changed
	case KindEnum:
		out, changed := padShort(r.Enum, elementCount)
		return Row{Kind: r.Kind, Enum: out}, changed
	default:
		// String and Bytes rows are not elementCount-bound (see WAVEFORM_STRING note above).
		return r, false
	}
}

func padShort(in []int16, n int) ([]int16, bool) {
	if len(in) == n {
		return in, false
	}
	out := make([]int16, n)
	copy(out, in)
	return out, true
}

func padInt(in []int32, n int) ([]int32, bool) {
	if len(in) == n {
		return in, false
	}
	out := make([]int32, n)
	copy(out, in)
	return out, true
}

func padFloat(in []float32, n int) ([]float32, bool) {
	if len(in) == n {
		return in, false
	}
	out := make([]float32, n)
	copy(out, in)
	return out, true
}

func padDouble(in []float64, n int) ([]float64, bool) {
	if len(in) == n {
		return in, false
	}
	out := make([]float64, n)
	copy(out, in)
	return out, true
}

func padByte(in []int8, n int) ([]int8, bool) {
	if len(in) == n {
		return in, false
	}
	out := make([]int8, n)
	copy(out, in)
	return out, true
}
