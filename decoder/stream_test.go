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

package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdavidsaver/aaclient/dtype"
	"github.com/mdavidsaver/aaclient/wire"
	"github.com/mdavidsaver/aaclient/wireproto"
)

const fixturePV = "LN-AM{RadMon:1}DoseRate-I"

var firstSegment = []float64{0.03, 2.17, 0.45, -0.15, -0.31, -0.21, -0.14, -0.08, -0.02, 0.04, 0.02}
var secondSegment = []float64{0.00, 2.18, 0.44, -0.14, -0.32, -0.26, -0.21, -0.14, -0.09, -0.03, 0.03}

// buildTwoSegmentStream constructs a synthetic two-segment raw fetch
// stream: a header, 11 scalar-double samples, a type-stable header
// resync for the same PV (its first sample is a disconnect marker with
// severity=3904), and 11 more samples. Reproduces the shape of the
// fixture in spec.md §8 scenario 2-4.
func buildTwoSegmentStream() []byte {
	header := wireproto.PayloadInfo{
		Type:         dtype.ScalarDouble,
		PVName:       []byte(fixturePV),
		Year:         2015,
		ElementCount: 1,
		Headers: []wireproto.FieldValue{
			{Name: []byte("EGU"), Val: []byte("mR/h")},
		},
	}

	var frames [][]byte
	frames = append(frames, wireproto.EncodePayloadInfo(header))
	for i, v := range firstSegment {
		frames = append(frames, wireproto.EncodeSample(dtype.ScalarDouble, wireproto.Sample{
			Sec: uint32(1000 + i),
			Ns:  uint32(i),
			Row: dtype.Row{Kind: dtype.KindDouble, Double: []float64{v}},
		}))
	}

	frames = append(frames, wireproto.EncodePayloadInfo(header))
	for i, v := range secondSegment {
		s := wireproto.Sample{
			Sec: uint32(2000 + i),
			Ns:  uint32(i),
			Row: dtype.Row{Kind: dtype.KindDouble, Double: []float64{v}},
		}
		if i == 0 {
			s.Severity = 3904
			s.Ns = 0
		}
		frames = append(frames, wireproto.EncodeSample(dtype.ScalarDouble, s))
	}

	return wire.Join(frames)
}

func TestProcessEmptyInput(t *testing.T) {
	d := New(100, false, nil)
	more, err := d.Process(nil, true)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Empty(t, d.Output)
}

func TestProcessSingleByteFeedSplitsOnHeaderChange(t *testing.T) {
	stream := buildTwoSegmentStream()
	d := New(100, false, nil)

	for i := 0; i < len(stream); i++ {
		last := i == len(stream)-1
		_, err := d.Process(stream[i:i+1], last)
		require.NoError(t, err)
	}

	require.Len(t, d.Output, 2)
	assert.Equal(t, 11, d.Output[0].Values.Len())
	assert.Equal(t, 11, d.Output[1].Values.Len())
	assert.Equal(t, firstSegment, flatten(d.Output[0].Values.Double))
	assert.Equal(t, secondSegment, flatten(d.Output[1].Values.Double))
	assert.Equal(t, uint32(3904), d.Output[1].Meta[0].Severity)
	assert.Equal(t, uint32(0), d.Output[1].Meta[0].Ns)
}

func TestProcessOneShotMatchesByteByByte(t *testing.T) {
	stream := buildTwoSegmentStream()

	whole := New(100, false, nil)
	_, err := whole.Process(stream, true)
	require.NoError(t, err)

	piecewise := New(100, false, nil)
	for i := 0; i < len(stream); i++ {
		last := i == len(stream)-1
		_, err := piecewise.Process(stream[i:i+1], last)
		require.NoError(t, err)
	}

	require.Len(t, whole.Output, len(piecewise.Output))
	for i := range whole.Output {
		assert.Equal(t, whole.Output[i].Meta, piecewise.Output[i].Meta)
		assert.Equal(t, whole.Output[i].Values.Double, piecewise.Output[i].Values.Double)
	}
}

func TestProcessThresholdSplitsFourBatches(t *testing.T) {
	stream := buildTwoSegmentStream()
	d := New(6, false, nil)

	_, err := d.Process(stream, true)
	require.NoError(t, err)

	require.Len(t, d.Output, 4)
	sizes := make([]int, len(d.Output))
	for i, b := range d.Output {
		sizes[i] = b.Values.Len()
	}
	assert.Equal(t, []int{6, 5, 6, 5}, sizes)
}

func TestProcessConsolidateMergesSegments(t *testing.T) {
	stream := buildTwoSegmentStream()
	d := New(100, true, nil)

	_, err := d.Process(stream, true)
	require.NoError(t, err)

	require.Len(t, d.Output, 1)
	assert.Equal(t, 22, d.Output[0].Values.Len())
}

func TestProcessUnterminatedFrameErrors(t *testing.T) {
	d := New(100, false, nil)
	_, err := d.Process([]byte("\x1b"), true)
	assert.Error(t, err)
}

func TestProcessReturnsTrueOnlyWhenBatchAppended(t *testing.T) {
	stream := buildTwoSegmentStream()
	d := New(100, false, nil)

	sawFlush := false
	for i := 0; i < len(stream); i++ {
		last := i == len(stream)-1
		more, err := d.Process(stream[i:i+1], last)
		require.NoError(t, err)
		if more {
			sawFlush = true
		}
	}
	assert.True(t, sawFlush)
}

func flatten(rows [][]float64) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
