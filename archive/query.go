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
	"math"
	"strconv"
	"strings"
	"time"
)

// isoFormat is the timestamp layout the appliance's getData.raw and
// BPL endpoints expect: UTC, microsecond precision (spec.md §4.5).
const isoFormat = "2006-01-02T15:04:05.000000Z"

func formatISO8601(t time.Time) string {
	return t.UTC().Format(isoFormat)
}

// plotPVName rewrites pv into a caplotbinning_<N>(pv) operator string
// sized so the window returns roughly targetCount points, per spec.md
// §4.5. It falls through to the bare pv name when the window is
// non-positive or the computed bin count would not reduce the data
// (N <= 1).
func plotPVName(pv string, window time.Duration, targetCount int) string {
	seconds := window.Seconds()
	if seconds <= 0 || targetCount <= 0 {
		return pv
	}

	n := int(math.Ceil(seconds / float64(targetCount)))
	if n <= 1 {
		return pv
	}
	return "caplotbinning_" + strconv.Itoa(n) + "(" + pv + ")"
}

// dataURL derives the getData.raw endpoint from a retrievalURL of the
// form ".../retrieval/bpl", per spec.md §6.
func dataURL(retrievalURL string) string {
	base := strings.TrimSuffix(strings.TrimRight(retrievalURL, "/"), "/bpl")
	return base + "/data/getData.raw"
}
