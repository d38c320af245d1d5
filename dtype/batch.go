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

// Values is the columnar value half of an emitted (values, meta) batch
// (spec.md §3/§4.4). Exactly the slice named by Kind is populated, and
// has shape [N][ElementCount] for the numeric kinds.
type Values struct {
	Kind         Kind
	ElementCount int

	Short  [][]int16
	Int    [][]int32
	Float  [][]float32
	Double [][]float64
	Byte   [][]int8
	Enum   [][]int16
	String []StringCell
	Bytes  [][]byte
}

// NewValues allocates an empty Values of the given kind/elementCount,
// ready to accumulate rows via Append.
func NewValues(kind Kind, elementCount int) *Values {
	return &Values{Kind: kind, ElementCount: elementCount}
}

// Append adds one decoded Row to the batch. The caller is responsible
// for having already reconciled r's length with v.ElementCount via
// Row.PadOrTruncate.
func (v *Values) Append(r Row) {
	switch v.Kind {
	case KindShort:
		v.Short = append(v.Short, r.Short)
	case KindInt:
		v.Int = append(v.Int, r.Int)
	case KindFloat:
		v.Float = append(v.Float, r.Float)
	case KindDouble:
		v.Double = append(v.Double, r.Double)
	case KindByte:
		v.Byte = append(v.Byte, r.Byte)
	case KindEnum:
		v.Enum = append(v.Enum, r.Enum)
	case KindString:
		v.String = append(v.String, r.String)
	case KindBytes:
		v.Bytes = append(v.Bytes, r.Bytes)
	}
}

// Len reports the row count N, which must equal the paired Meta
// batch's length for every emitted batch (spec.md §8 invariant).
func (v *Values) Len() int {
	switch v.Kind {
	case KindShort:
		return len(v.Short)
	case KindInt:
		return len(v.Int)
	case KindFloat:
		return len(v.Float)
	case KindDouble:
		return len(v.Double)
	case KindByte:
		return len(v.Byte)
	case KindEnum:
		return len(v.Enum)
	case KindString:
		return len(v.String)
	case KindBytes:
		return len(v.Bytes)
	default:
		return 0
	}
}

// Batch is one emitted (values, meta) pair.
type Batch struct {
	Values *Values
	Meta   []MetaRow
}
