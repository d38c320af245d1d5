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

// PayloadInfo is the segment header message (spec.md §3, §6):
// {type=1 varint enum, pvname=2 bytes, year=3 varint, elementCount=4
// varint, headers=5 repeated FieldValue}.
type PayloadInfo struct {
	Type         dtype.PayloadType
	PVName       []byte
	Year         uint32
	ElementCount uint32
	Headers      []FieldValue
}

// DecodePayloadInfo parses frame as a PayloadInfo. It fails with
// ErrMalformedHeader on an unknown wire-type, a truncated varint, or a
// missing required field (type, pvname, year, elementCount).
func DecodePayloadInfo(frame []byte) (PayloadInfo, error) {
	buf := proto.NewBuffer(frame)
	var info PayloadInfo
	var haveType, havePV, haveYear, haveCount bool

	for buf.Len() > 0 {
		tag, err := buf.DecodeVarint()
		if err != nil {
			return PayloadInfo{}, errors.Wrap(ErrMalformedHeader, "truncated tag")
		}
		field, wireType := tagFieldWire(tag)

		switch field {
		case 1:
			if wireType != wireVarint {
				return PayloadInfo{}, errors.Wrapf(ErrMalformedHeader, "type wire type %d", wireType)
			}
			v, err := buf.DecodeVarint()
			if err != nil {
				return PayloadInfo{}, errors.Wrap(ErrMalformedHeader, "truncated type")
			}
			info.Type = dtype.PayloadType(int32(v))
			haveType = true

		case 2:
			if wireType != wireBytes {
				return PayloadInfo{}, errors.Wrapf(ErrMalformedHeader, "pvname wire type %d", wireType)
			}
			v, err := buf.DecodeRawBytes(true)
			if err != nil {
				return PayloadInfo{}, errors.Wrap(ErrMalformedHeader, "truncated pvname")
			}
			info.PVName = v
			havePV = true

		case 3:
			if wireType != wireVarint {
				return PayloadInfo{}, errors.Wrapf(ErrMalformedHeader, "year wire type %d", wireType)
			}
			v, err := buf.DecodeVarint()
			if err != nil {
				return PayloadInfo{}, errors.Wrap(ErrMalformedHeader, "truncated year")
			}
			info.Year = uint32(v)
			haveYear = true

		case 4:
			if wireType != wireVarint {
				return PayloadInfo{}, errors.Wrapf(ErrMalformedHeader, "elementCount wire type %d", wireType)
			}
			v, err := buf.DecodeVarint()
			if err != nil {
				return PayloadInfo{}, errors.Wrap(ErrMalformedHeader, "truncated elementCount")
			}
			info.ElementCount = uint32(v)
			haveCount = true

		case 5:
			if wireType != wireBytes {
				return PayloadInfo{}, errors.Wrapf(ErrMalformedHeader, "headers wire type %d", wireType)
			}
			raw, err := buf.DecodeRawBytes(true)
			if err != nil {
				return PayloadInfo{}, errors.Wrap(ErrMalformedHeader, "truncated headers entry")
			}
			fv, err := decodeFieldValue(raw)
			if err != nil {
				return PayloadInfo{}, errors.Wrapf(ErrMalformedHeader, "headers entry: %v", err)
			}
			info.Headers = append(info.Headers, fv)

		default:
			if err := skipField(buf, wireType); err != nil {
				return PayloadInfo{}, errors.Wrap(ErrMalformedHeader, "truncated unknown field")
			}
		}
	}

	if !haveType || !havePV || !haveYear || !haveCount {
		return PayloadInfo{}, errors.Wrap(ErrMalformedHeader, "missing required field")
	}
	if !info.Type.Valid() {
		return PayloadInfo{}, errors.Wrapf(ErrMalformedHeader, "unknown PayloadType %d", int32(info.Type))
	}
	return info, nil
}

// EncodePayloadInfo produces a byte-for-byte canonical encoding (fields
// in ascending tag order), the inverse of DecodePayloadInfo.
func EncodePayloadInfo(info PayloadInfo) []byte {
	buf := proto.NewBuffer(nil)

	buf.EncodeVarint(uint64(1)<<3 | wireVarint)
	buf.EncodeVarint(uint64(int32(info.Type)))

	buf.EncodeVarint(uint64(2)<<3 | wireBytes)
	buf.EncodeRawBytes(info.PVName)

	buf.EncodeVarint(uint64(3)<<3 | wireVarint)
	buf.EncodeVarint(uint64(info.Year))

	buf.EncodeVarint(uint64(4)<<3 | wireVarint)
	buf.EncodeVarint(uint64(info.ElementCount))

	for _, fv := range info.Headers {
		sub := proto.NewBuffer(nil)
		encodeFieldValue(sub, fv)
		buf.EncodeVarint(uint64(5)<<3 | wireBytes)
		buf.EncodeRawBytes(sub.Bytes())
	}

	return buf.Bytes()
}
