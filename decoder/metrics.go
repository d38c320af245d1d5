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

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters a StreamDecoder reports to, grounded on
// the teacher's controller/metrics.go pattern of a small struct of
// pre-registered prometheus.Counter/Histogram fields handed to the
// component that emits them, rather than package-level globals.
type Metrics struct {
	BatchesEmitted       prometheus.Counter
	SamplesDecoded       prometheus.Counter
	DecodeErrors         prometheus.Counter
	ElementCountMismatch prometheus.Counter
}

// NewMetrics constructs and registers a Metrics set against reg. Pass a
// fresh prometheus.Registry per Archive instance, or prometheus's
// default registry for a process-wide client.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		BatchesEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aaclient",
			Subsystem: "decoder",
			Name:      "batches_emitted_total",
			Help:      "Batches appended to a StreamDecoder's output queue.",
		}),
		SamplesDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aaclient",
			Subsystem: "decoder",
			Name:      "samples_decoded_total",
			Help:      "Sample records decoded across all batches.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aaclient",
			Subsystem: "decoder",
			Name:      "decode_errors_total",
			Help:      "Frames that decoded as neither a sample nor a compatible header.",
		}),
		ElementCountMismatch: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "aaclient",
			Subsystem: "decoder",
			Name:      "element_count_mismatch_total",
			Help:      "Waveform samples padded or truncated to match the header's elementCount.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.BatchesEmitted, m.SamplesDecoded, m.DecodeErrors, m.ElementCountMismatch)
	}
	return m
}
