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
	"time"

	"github.com/mdavidsaver/aaclient/dtype"
)

// BinQuery is the Time-Window Query Assembler of spec.md §4.5: it
// rewrites pv into a caplotbinning_<N>(pv) operator sized to return
// roughly targetCount points over [start, end), then fetches through
// RawQuery exactly as if the caller had named the rewritten PV
// directly. The window is too short to bin (plotPVName falls back to
// the bare pv) whenever N <= 1 or end does not follow start.
func (a *Archive) BinQuery(ctx context.Context, pv string, start, end time.Time, targetCount int) ([]dtype.Batch, error) {
	binned := plotPVName(pv, end.Sub(start), targetCount)
	return a.RawQuery(ctx, binned, start, end)
}

// Plot requests binned data suitable for a simple plot, matching
// aaclient/appl.py Appl.plot: it targets the configured DefaultCount
// of samples and falls back to an unbinned RawQuery when the window is
// too short to benefit.
func (a *Archive) Plot(ctx context.Context, pv string, start, end time.Time) ([]dtype.Batch, error) {
	return a.BinQuery(ctx, pv, start, end, a.cfg.DefaultCount)
}
