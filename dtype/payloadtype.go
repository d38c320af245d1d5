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

// Package dtype holds the EPICS Archiver Appliance wire-format data
// model: the PayloadType enumeration, typed value rows, and meta
// records (spec.md §3).
package dtype

import "fmt"

// PayloadType is the closed set of 15 payload tags the archiver's
// PayloadInfo.type field may carry.
type PayloadType int32

const (
	ScalarString PayloadType = 0
	ScalarShort  PayloadType = 1
	ScalarFloat  PayloadType = 2
	ScalarEnum   PayloadType = 3
	ScalarByte   PayloadType = 4
	ScalarInt    PayloadType = 5
	ScalarDouble PayloadType = 6

	WaveformString PayloadType = 7
	WaveformShort  PayloadType = 8
	WaveformFloat  PayloadType = 9
	WaveformEnum   PayloadType = 10
	WaveformByte   PayloadType = 11
	WaveformInt    PayloadType = 12
	WaveformDouble PayloadType = 13

	V4GenericBytes PayloadType = 14
)

var payloadTypeNames = map[PayloadType]string{
	ScalarString:   "SCALAR_STRING",
	ScalarShort:    "SCALAR_SHORT",
	ScalarFloat:    "SCALAR_FLOAT",
	ScalarEnum:     "SCALAR_ENUM",
	ScalarByte:     "SCALAR_BYTE",
	ScalarInt:      "SCALAR_INT",
	ScalarDouble:   "SCALAR_DOUBLE",
	WaveformString: "WAVEFORM_STRING",
	WaveformShort:  "WAVEFORM_SHORT",
	WaveformFloat:  "WAVEFORM_FLOAT",
	WaveformEnum:   "WAVEFORM_ENUM",
	WaveformByte:   "WAVEFORM_BYTE",
	WaveformInt:    "WAVEFORM_INT",
	WaveformDouble: "WAVEFORM_DOUBLE",
	V4GenericBytes: "V4_GENERIC_BYTES",
}

func (t PayloadType) String() string {
	if s, ok := payloadTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("PayloadType(%d)", int32(t))
}

// Valid reports whether t is one of the 15 known tags.
func (t PayloadType) Valid() bool {
	_, ok := payloadTypeNames[t]
	return ok
}

// IsWaveform reports whether t carries an elementCount that may be > 1.
func (t PayloadType) IsWaveform() bool {
	switch t {
	case WaveformString, WaveformShort, WaveformFloat, WaveformEnum,
		WaveformByte, WaveformInt, WaveformDouble:
		return true
	default:
		return false
	}
}
