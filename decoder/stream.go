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

// Package decoder implements the Batcher & Stream Driver (spec.md
// §4.4): a synchronous, not-reentrant state machine that consumes
// arbitrary-sized byte chunks, splits and decodes frames via wire and
// wireproto, and emits (values, meta) batches under a size-threshold or
// type-stable-consolidation policy.
package decoder

import (
	"bytes"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/mdavidsaver/aaclient/dtype"
	"github.com/mdavidsaver/aaclient/internal/logger"
	"github.com/mdavidsaver/aaclient/wire"
	"github.com/mdavidsaver/aaclient/wireproto"
)

// ErrUnterminatedFrame is returned by Process when last=true but the
// rolling buffer still holds an unterminated trailing frame.
var ErrUnterminatedFrame = errors.New("decoder: unterminated frame at end of stream")

// StreamDecoder is not safe for concurrent use; the surrounding I/O
// layer serializes calls to Process for a given instance (spec.md §5).
type StreamDecoder struct {
	threshold   int
	consolidate bool
	metrics     *Metrics

	buf    *bytebufferpool.ByteBuffer
	header *wireproto.PayloadInfo
	kind   dtype.Kind
	year0  int64

	pending     []dtype.Row
	pendingMeta []dtype.MetaRow

	// Output accumulates every emitted batch across the decoder's
	// lifetime; the caller owns entries once appended and should drain
	// them between Process calls if memory is a concern.
	Output []dtype.Batch
}

// New builds a StreamDecoder. threshold must be positive; consolidate
// selects the batch-merge policy on type-stable header resync (spec.md
// §4.4). A nil metrics set uses counters that are not registered
// anywhere.
func New(threshold int, consolidate bool, metrics *Metrics) *StreamDecoder {
	if threshold <= 0 {
		threshold = 1
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &StreamDecoder{
		threshold:   threshold,
		consolidate: consolidate,
		metrics:     metrics,
		buf:         bytebufferpool.Get(),
	}
}

// Free returns the decoder's rolling buffer to the shared pool. Callers
// should invoke it once a StreamDecoder is no longer needed.
func (d *StreamDecoder) Free() {
	bytebufferpool.Put(d.buf)
	d.buf = nil
}

// Process feeds chunk to the decoder and reports whether at least one
// new batch was appended to Output by this call (spec.md §8).
func (d *StreamDecoder) Process(chunk []byte, last bool) (bool, error) {
	before := len(d.Output)

	if _, err := d.buf.Write(chunk); err != nil {
		return false, errors.Wrap(err, "decoder: buffering chunk")
	}

	frames, remainder, err := wire.Split(d.buf.Bytes())
	if err != nil {
		return false, err
	}
	d.buf.Reset()
	if _, err := d.buf.Write(remainder); err != nil {
		return false, errors.Wrap(err, "decoder: buffering remainder")
	}

	for _, f := range frames {
		if err := d.handleFrame(f); err != nil {
			return false, err
		}
	}

	if last {
		if d.buf.Len() > 0 {
			return false, ErrUnterminatedFrame
		}
		if len(d.pending) > 0 {
			d.flush()
		}
	}

	return len(d.Output) > before, nil
}

func (d *StreamDecoder) handleFrame(f []byte) error {
	if d.header == nil {
		info, err := wireproto.DecodePayloadInfo(f)
		if err != nil {
			return err
		}
		d.installHeader(info)
		return nil
	}

	sample, serr := wireproto.DecodeSample(f, d.header.Type)
	if serr == nil {
		return d.appendSample(sample)
	}

	info, herr := wireproto.DecodePayloadInfo(f)
	if herr != nil || !bytes.Equal(info.PVName, d.header.PVName) {
		d.metrics.DecodeErrors.Inc()
		return errors.Wrapf(wireproto.ErrTypeChange, "frame decodes as neither sample (%v) nor matching header (%v)", serr, herr)
	}

	consolidating := d.consolidate &&
		info.Type == d.header.Type &&
		info.ElementCount == d.header.ElementCount &&
		bytes.Equal(info.PVName, d.header.PVName)

	if !consolidating {
		d.flush()
	}
	d.installHeader(info)
	return nil
}

func (d *StreamDecoder) installHeader(info wireproto.PayloadInfo) {
	kind, err := dtype.ElementKind(info.Type)
	if err != nil {
		// DecodePayloadInfo already rejects unknown PayloadType values,
		// so this path is unreachable in practice.
		kind = dtype.KindBytes
	}
	d.header = &info
	d.kind = kind
	d.year0 = time.Date(int(info.Year), time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
}

func (d *StreamDecoder) appendSample(s wireproto.Sample) error {
	row, changed := s.Row.PadOrTruncate(int(d.header.ElementCount))
	if changed {
		d.metrics.ElementCountMismatch.Inc()
		logger.Warnf("decoder: elementCount mismatch for pv %q: got %d want %d",
			d.header.PVName, s.Row.Len(), d.header.ElementCount)
	}

	d.pending = append(d.pending, row)
	d.pendingMeta = append(d.pendingMeta, dtype.MetaRow{
		Sec:      uint32(d.year0) + s.Sec,
		Ns:       s.Ns,
		Severity: s.Severity,
		Status:   s.Status,
	})

	if len(d.pending) >= d.threshold {
		d.flush()
	}
	return nil
}

func (d *StreamDecoder) flush() {
	if len(d.pending) == 0 {
		return
	}

	values := dtype.NewValues(d.kind, int(d.header.ElementCount))
	for _, r := range d.pending {
		values.Append(r)
	}
	meta := make([]dtype.MetaRow, len(d.pendingMeta))
	copy(meta, d.pendingMeta)

	d.Output = append(d.Output, dtype.Batch{Values: values, Meta: meta})
	d.metrics.BatchesEmitted.Inc()
	d.metrics.SamplesDecoded.Add(float64(len(meta)))

	d.pending = d.pending[:0]
	d.pendingMeta = d.pendingMeta[:0]
}
