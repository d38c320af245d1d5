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

package archive

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mdavidsaver/aaclient/decoder"
	"github.com/mdavidsaver/aaclient/dtype"
	"github.com/mdavidsaver/aaclient/internal/logger"
)

// RawQuery fetches pv's samples over [start, end) and decodes them in
// full, returning every emitted batch. It is a thin, allocate-everything
// convenience over the same rawStream path RawIter uses, for callers
// that don't need streaming (spec.md §4.5). BinQuery and Plot build on top of RawQuery
// by rewriting pv before the fetch rather than duplicating it.
func (a *Archive) RawQuery(ctx context.Context, pv string, start, end time.Time) ([]dtype.Batch, error) {
	d := decoder.New(a.cfg.DefaultCount, a.cfg.Consolidate, a.metrics)
	defer d.Free()

	if err := a.rawStream(ctx, pv, start, end, d); err != nil {
		return nil, err
	}
	return d.Output, nil
}

// RawIter fetches pv's samples over [start, end), invoking onBatch as
// each batch is emitted by the decoder rather than buffering them all.
// onBatch receives ownership of each batch; returning a non-nil error
// aborts the fetch.
func (a *Archive) RawIter(ctx context.Context, pv string, start, end time.Time, onBatch func(dtype.Batch) error) error {
	d := decoder.New(a.cfg.DefaultCount, a.cfg.Consolidate, a.metrics)
	defer d.Free()

	drain := func() error {
		for len(d.Output) > 0 {
			b := d.Output[0]
			d.Output = d.Output[1:]
			if err := onBatch(b); err != nil {
				return err
			}
		}
		return nil
	}

	err := a.rawStream(ctx, pv, start, end, withDrain{d, drain})
	if drainErr := drain(); err == nil {
		err = drainErr
	}
	return err
}

// withDrain lets RawIter's drain callback run after every Process call
// without rawStream needing to know about streaming consumers.
type withDrain struct {
	*decoder.StreamDecoder
	drain func() error
}

func (w withDrain) Process(chunk []byte, last bool) (bool, error) {
	more, err := w.StreamDecoder.Process(chunk, last)
	if err != nil {
		return more, err
	}
	if more {
		if derr := w.drain(); derr != nil {
			return more, derr
		}
	}
	return more, nil
}

type streamProcessor interface {
	Process(chunk []byte, last bool) (bool, error)
}

// rawStream performs the gated, traced HTTP fetch and feeds the
// response body through proc in fixed-size chunks, calling
// proc.Process(chunk, last) until the body is exhausted (spec.md §5,
// §8). last is true only for the final, possibly-empty, read.
func (a *Archive) rawStream(ctx context.Context, pv string, start, end time.Time, proc streamProcessor) error {
	ctx, span := tracer.Start(ctx, "archive.RawQuery")
	defer span.End()

	if err := a.gate.Acquire(ctx); err != nil {
		return errors.Wrap(ErrTimedOut, err.Error())
	}
	defer a.gate.Release()

	info, err := a.applianceInfo(ctx)
	if err != nil {
		return err
	}

	u, err := url.Parse(dataURL(info.RetrievalURL))
	if err != nil {
		return err
	}
	q := u.Query()
	q.Set("pv", pv)
	q.Set("from", formatISO8601(start))
	q.Set("to", formatISO8601(end))
	u.RawQuery = q.Encode()

	requestID := uuid.NewString()
	req, err := newHTTPRequest(ctx, u.String(), requestID)
	if err != nil {
		return err
	}

	logger.Debugf("archive: raw fetch pv=%q from=%s to=%s request=%s", pv, q.Get("from"), q.Get("to"), requestID)

	resp, err := a.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(ErrTimedOut, err.Error())
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		logger.Warnf("archive: raw fetch pv=%q request=%s failed with status %d", pv, requestID, resp.StatusCode)
		return errors.Wrapf(ErrHTTPStatus, "%d fetching %s", resp.StatusCode, u.String())
	}

	chunkSize := a.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 256 * 1024
	}
	buf := make([]byte, chunkSize)

	for {
		n, readErr := resp.Body.Read(buf)
		eof := readErr == io.EOF

		if n > 0 {
			if _, err := proc.Process(buf[:n], eof); err != nil {
				return err
			}
		}

		if eof {
			if n == 0 {
				if _, err := proc.Process(nil, true); err != nil {
					return err
				}
			}
			return nil
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return errors.Wrap(ErrTimedOut, readErr.Error())
			}
			return errors.Wrap(readErr, "archive: reading response body")
		}
	}
}
