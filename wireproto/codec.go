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

// Package wireproto decodes and encodes the two protobuf message
// families carried inside wire frames (spec.md §4.2-§4.3, §6):
// PayloadInfo segment headers and per-type Sample records. There is no
// .proto file in play — field tables are walked by hand against
// gogo/protobuf's low-level proto.Buffer varint/length-delimited
// primitives, the same package the teacher links for its own protobuf
// encoding (there through proto.Marshal on generated types).
package wireproto

import (
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

// Protobuf wire types, as laid out in the field tag's low 3 bits.
const (
	wireVarint  = 0
	wireFixed64 = 1
	wireBytes   = 2
	wireFixed32 = 5
)

var (
	// ErrMalformedHeader is returned for a PayloadInfo frame with a bad
	// wire-type, a truncated varint/length, or a missing required field.
	ErrMalformedHeader = errors.New("wireproto: malformed header")

	// ErrMalformedSample is returned for a Sample frame with a bad
	// wire-type or truncated field, independent of any header mismatch.
	ErrMalformedSample = errors.New("wireproto: malformed sample")

	// ErrTypeChange is returned when a frame cannot be decoded under the
	// current header's schema and also fails to decode as a PayloadInfo
	// naming the same PV (spec.md §4.3, §7).
	ErrTypeChange = errors.New("wireproto: type change")
)

func tagFieldWire(tag uint64) (field int, wireType int) {
	return int(tag >> 3), int(tag & 0x7)
}

// skipField advances past a field value whose wire type is known but
// whose field number the caller does not care about, so unrecognized
// fields in a forward-compatible stream do not abort the decode.
func skipField(buf *proto.Buffer, wireType int) error {
	switch wireType {
	case wireVarint:
		_, err := buf.DecodeVarint()
		return err
	case wireFixed64:
		_, err := buf.DecodeFixed64()
		return err
	case wireBytes:
		_, err := buf.DecodeRawBytes(false)
		return err
	case wireFixed32:
		_, err := buf.DecodeFixed32()
		return err
	default:
		return errors.Errorf("wireproto: unknown wire type %d", wireType)
	}
}

func decodeFixed32Float(buf *proto.Buffer) (float32, error) {
	v, err := buf.DecodeFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func decodeFixed64Double(buf *proto.Buffer) (float64, error) {
	v, err := buf.DecodeFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func encodeFixed32Float(buf *proto.Buffer, v float32) {
	buf.EncodeFixed32(uint64(math.Float32bits(v)))
}

func encodeFixed64Double(buf *proto.Buffer, v float64) {
	buf.EncodeFixed64(math.Float64bits(v))
}

// FieldValue is the {name, val} pair used both by PayloadInfo.headers
// and Sample.fieldvalues.
type FieldValue struct {
	Name []byte
	Val  []byte
}

func decodeFieldValue(raw []byte) (FieldValue, error) {
	buf := proto.NewBuffer(raw)
	var fv FieldValue
	for buf.Len() > 0 {
		tag, err := buf.DecodeVarint()
		if err != nil {
			return fv, errors.Wrap(err, "wireproto: FieldValue tag")
		}
		field, wireType := tagFieldWire(tag)
		switch field {
		case 1:
			if wireType != wireBytes {
				return fv, errors.Wrapf(ErrMalformedHeader, "FieldValue.name wire type %d", wireType)
			}
			fv.Name, err = buf.DecodeRawBytes(true)
		case 2:
			if wireType != wireBytes {
				return fv, errors.Wrapf(ErrMalformedHeader, "FieldValue.val wire type %d", wireType)
			}
			fv.Val, err = buf.DecodeRawBytes(true)
		default:
			err = skipField(buf, wireType)
		}
		if err != nil {
			return fv, errors.Wrap(err, "wireproto: FieldValue field")
		}
	}
	return fv, nil
}

func encodeFieldValue(buf *proto.Buffer, fv FieldValue) {
	buf.EncodeVarint(uint64(1)<<3 | wireBytes)
	buf.EncodeRawBytes(fv.Name)
	buf.EncodeVarint(uint64(2)<<3 | wireBytes)
	buf.EncodeRawBytes(fv.Val)
}
