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

package wireproto

import (
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/mdavidsaver/aaclient/dtype"
)

// Sample is one decoded sample message (spec.md §3, §6): {sec=1, ns=2,
// val=3 (type-dependent), severity=4 optional, status=5 optional,
// fieldvalues=6 optional repeated FieldValue}.
type Sample struct {
	Sec         uint32
	Ns          uint32
	Row         dtype.Row
	Severity    uint32
	Status      uint32
	FieldValues []FieldValue
}

// DecodeSample parses frame as a Sample whose val schema is selected by
// pt. It returns ErrMalformedSample on any wire-type mismatch or
// truncated field — including a val field that does not match pt's
// element kind, which is how the stream driver recognizes a candidate
// header resync (spec.md §4.3): it retries the same frame through
// DecodePayloadInfo.
func DecodeSample(frame []byte, pt dtype.PayloadType) (Sample, error) {
	kind, err := dtype.ElementKind(pt)
	if err != nil {
		return Sample{}, errors.Wrap(ErrMalformedSample, err.Error())
	}

	buf := proto.NewBuffer(frame)
	row := dtype.Row{Kind: kind}
	var s Sample
	var haveSec, haveNs bool

	for buf.Len() > 0 {
		tag, err := buf.DecodeVarint()
		if err != nil {
			return Sample{}, errors.Wrap(ErrMalformedSample, "truncated tag")
		}
		field, wireType := tagFieldWire(tag)

		switch field {
		case 1:
			if wireType != wireVarint {
				return Sample{}, errors.Wrapf(ErrMalformedSample, "sec wire type %d", wireType)
			}
			v, err := buf.DecodeVarint()
			if err != nil {
				return Sample{}, errors.Wrap(ErrMalformedSample, "truncated sec")
			}
			s.Sec = uint32(v)
			haveSec = true

		case 2:
			if wireType != wireVarint {
				return Sample{}, errors.Wrapf(ErrMalformedSample, "ns wire type %d", wireType)
			}
			v, err := buf.DecodeVarint()
			if err != nil {
				return Sample{}, errors.Wrap(ErrMalformedSample, "truncated ns")
			}
			s.Ns = uint32(v)
			haveNs = true

		case 3:
			if err := decodeValField(buf, wireType, kind, &row); err != nil {
				return Sample{}, errors.Wrapf(ErrMalformedSample, "val: %v", err)
			}

		case 4:
			if wireType != wireVarint {
				return Sample{}, errors.Wrapf(ErrMalformedSample, "severity wire type %d", wireType)
			}
			v, err := buf.DecodeVarint()
			if err != nil {
				return Sample{}, errors.Wrap(ErrMalformedSample, "truncated severity")
			}
			s.Severity = uint32(v)

		case 5:
			if wireType != wireVarint {
				return Sample{}, errors.Wrapf(ErrMalformedSample, "status wire type %d", wireType)
			}
			v, err := buf.DecodeVarint()
			if err != nil {
				return Sample{}, errors.Wrap(ErrMalformedSample, "truncated status")
			}
			s.Status = uint32(v)

		case 6:
			if wireType != wireBytes {
				return Sample{}, errors.Wrapf(ErrMalformedSample, "fieldvalues wire type %d", wireType)
			}
			raw, err := buf.DecodeRawBytes(true)
			if err != nil {
				return Sample{}, errors.Wrap(ErrMalformedSample, "truncated fieldvalues entry")
			}
			fv, err := decodeFieldValue(raw)
			if err != nil {
				return Sample{}, errors.Wrapf(ErrMalformedSample, "fieldvalues: %v", err)
			}
			s.FieldValues = append(s.FieldValues, fv)

		default:
			if err := skipField(buf, wireType); err != nil {
				return Sample{}, errors.Wrap(ErrMalformedSample, "truncated unknown field")
			}
		}
	}

	if !haveSec || !haveNs {
		return Sample{}, errors.Wrap(ErrMalformedSample, "missing sec/ns")
	}
	s.Row = row
	return s, nil
}

// EncodeSample is the inverse of DecodeSample, used by tests and by the
// (test-only) encode side of the round-trip law; production I/O never
// writes the wire format back over the network (spec.md §1 Non-goals).
func EncodeSample(pt dtype.PayloadType, s Sample) []byte {
	buf := proto.NewBuffer(nil)

	buf.EncodeVarint(uint64(1)<<3 | wireVarint)
	buf.EncodeVarint(uint64(s.Sec))

	buf.EncodeVarint(uint64(2)<<3 | wireVarint)
	buf.EncodeVarint(uint64(s.Ns))

	encodeValField(buf, s.Row)

	if s.Severity != 0 {
		buf.EncodeVarint(uint64(4)<<3 | wireVarint)
		buf.EncodeVarint(uint64(s.Severity))
	}
	if s.Status != 0 {
		buf.EncodeVarint(uint64(5)<<3 | wireVarint)
		buf.EncodeVarint(uint64(s.Status))
	}
	for _, fv := range s.FieldValues {
		sub := proto.NewBuffer(nil)
		encodeFieldValue(sub, fv)
		buf.EncodeVarint(uint64(6)<<3 | wireBytes)
		buf.EncodeRawBytes(sub.Bytes())
	}

	return buf.Bytes()
}

// zigzag32Decode/zigzag32Encode implement protobuf's sint32 mapping by
// hand against the Buffer's plain varint primitives, since DBR_SHORT
// values are frequently negative and a plain int32 varint would cost 10
// bytes per sample for them.
func zigzag32Decode(v uint64) int32 {
	return int32((v >> 1) ^ -(v & 1))
}

func zigzag32Encode(v int32) uint64 {
	return uint64(uint32((v << 1) ^ (v >> 31)))
}

func decodeValField(buf *proto.Buffer, wireType int, kind dtype.Kind, row *dtype.Row) error {
	switch kind {
	case dtype.KindShort, dtype.KindEnum:
		return decodeVarintArray(buf, wireType, kind == dtype.KindShort, row)

	case dtype.KindInt:
		return decodeVarintArray(buf, wireType, false, row)

	case dtype.KindFloat:
		switch wireType {
		case wireFixed32:
			f, err := decodeFixed32Float(buf)
			if err != nil {
				return err
			}
			row.Float = append(row.Float, f)
		case wireBytes:
			raw, err := buf.DecodeRawBytes(true)
			if err != nil {
				return err
			}
			sub := proto.NewBuffer(raw)
			for sub.Len() > 0 {
				f, err := decodeFixed32Float(sub)
				if err != nil {
					return err
				}
				row.Float = append(row.Float, f)
			}
		default:
			return errors.Errorf("float val wire type %d", wireType)
		}

	case dtype.KindDouble:
		switch wireType {
		case wireFixed64:
			d, err := decodeFixed64Double(buf)
			if err != nil {
				return err
			}
			row.Double = append(row.Double, d)
		case wireBytes:
			raw, err := buf.DecodeRawBytes(true)
			if err != nil {
				return err
			}
			sub := proto.NewBuffer(raw)
			for sub.Len() > 0 {
				d, err := decodeFixed64Double(sub)
				if err != nil {
					return err
				}
				row.Double = append(row.Double, d)
			}
		default:
			return errors.Errorf("double val wire type %d", wireType)
		}

	case dtype.KindByte:
		if wireType != wireBytes {
			return errors.Errorf("byte val wire type %d", wireType)
		}
		raw, err := buf.DecodeRawBytes(true)
		if err != nil {
			return err
		}
		row.Byte = append(row.Byte, bytesToInt8(raw)...)

	case dtype.KindString:
		if wireType != wireBytes {
			return errors.Errorf("string val wire type %d", wireType)
		}
		raw, err := buf.DecodeRawBytes(true)
		if err != nil {
			return err
		}
		row.String = dtype.NewStringCell(raw)

	case dtype.KindBytes:
		if wireType != wireBytes {
			return errors.Errorf("bytes val wire type %d", wireType)
		}
		raw, err := buf.DecodeRawBytes(true)
		if err != nil {
			return err
		}
		row.Bytes = append(row.Bytes, raw...)

	default:
		return errors.Errorf("unhandled kind %d", kind)
	}
	return nil
}

// decodeVarintArray handles KindShort/KindEnum/KindInt, which differ
// only in whether the wire encoding is zigzag (short) or plain (int,
// enum).
func decodeVarintArray(buf *proto.Buffer, wireType int, zigzag bool, row *dtype.Row) error {
	appendOne := func(v uint64) {
		var x int32
		if zigzag {
			x = zigzag32Decode(v)
		} else {
			x = int32(v)
		}
		if row.Kind == dtype.KindShort {
			row.Short = append(row.Short, int16(x))
		} else if row.Kind == dtype.KindEnum {
			row.Enum = append(row.Enum, int16(x))
		} else {
			row.Int = append(row.Int, x)
		}
	}

	switch wireType {
	case wireVarint:
		v, err := buf.DecodeVarint()
		if err != nil {
			return err
		}
		appendOne(v)
	case wireBytes:
		raw, err := buf.DecodeRawBytes(true)
		if err != nil {
			return err
		}
		sub := proto.NewBuffer(raw)
		for sub.Len() > 0 {
			v, err := sub.DecodeVarint()
			if err != nil {
				return err
			}
			appendOne(v)
		}
	default:
		return errors.Errorf("varint val wire type %d", wireType)
	}
	return nil
}

func encodeValField(buf *proto.Buffer, row dtype.Row) {
	switch row.Kind {
	case dtype.KindShort:
		encodeVarintArrayPacked(buf, len(row.Short), func(i int) uint64 {
			return zigzag32Encode(int32(row.Short[i]))
		})
	case dtype.KindEnum:
		encodeVarintArrayPacked(buf, len(row.Enum), func(i int) uint64 {
			return uint64(uint32(int32(row.Enum[i])))
		})
	case dtype.KindInt:
		encodeVarintArrayPacked(buf, len(row.Int), func(i int) uint64 {
			return uint64(uint32(row.Int[i]))
		})
	case dtype.KindFloat:
		if len(row.Float) == 1 {
			buf.EncodeVarint(uint64(3)<<3 | wireFixed32)
			encodeFixed32Float(buf, row.Float[0])
			return
		}
		sub := proto.NewBuffer(nil)
		for _, v := range row.Float {
			encodeFixed32Float(sub, v)
		}
		buf.EncodeVarint(uint64(3)<<3 | wireBytes)
		buf.EncodeRawBytes(sub.Bytes())
	case dtype.KindDouble:
		if len(row.Double) == 1 {
			buf.EncodeVarint(uint64(3)<<3 | wireFixed64)
			encodeFixed64Double(buf, row.Double[0])
			return
		}
		sub := proto.NewBuffer(nil)
		for _, v := range row.Double {
			encodeFixed64Double(sub, v)
		}
		buf.EncodeVarint(uint64(3)<<3 | wireBytes)
		buf.EncodeRawBytes(sub.Bytes())
	case dtype.KindByte:
		buf.EncodeVarint(uint64(3)<<3 | wireBytes)
		buf.EncodeRawBytes(int8ToBytes(row.Byte))
	case dtype.KindString:
		buf.EncodeVarint(uint64(3)<<3 | wireBytes)
		buf.EncodeRawBytes([]byte(row.String.TrimCStringText()))
	case dtype.KindBytes:
		buf.EncodeVarint(uint64(3)<<3 | wireBytes)
		buf.EncodeRawBytes(row.Bytes)
	}
}

// encodeVarintArrayPacked writes a scalar (n==1) as a bare varint field,
// or a waveform (n>1) as a single packed length-delimited field,
// matching proto3's default packed encoding for repeated scalar fields.
func encodeVarintArrayPacked(buf *proto.Buffer, n int, at func(i int) uint64) {
	if n == 1 {
		buf.EncodeVarint(uint64(3)<<3 | wireVarint)
		buf.EncodeVarint(at(0))
		return
	}
	sub := proto.NewBuffer(nil)
	for i := 0; i < n; i++ {
		sub.EncodeVarint(at(i))
	}
	buf.EncodeVarint(uint64(3)<<3 | wireBytes)
	buf.EncodeRawBytes(sub.Bytes())
}

func bytesToInt8(b []byte) []int8 {
	out := make([]int8, len(b))
	for i, v := range b {
		out[i] = int8(v)
	}
	return out
}

func int8ToBytes(b []int8) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = byte(v)
	}
	return out
}
