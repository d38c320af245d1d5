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
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http2"

	"github.com/mdavidsaver/aaclient/decoder"
	"github.com/mdavidsaver/aaclient/internal/cache"
	"github.com/mdavidsaver/aaclient/internal/config"
	"github.com/mdavidsaver/aaclient/internal/gate"
	"github.com/mdavidsaver/aaclient/internal/logger"
)

var tracer = trace.NewNoopTracerProvider().Tracer("github.com/mdavidsaver/aaclient/archive")

// applianceInfoTTL bounds how long a fetched appliance-info document is
// reused before being refetched (spec.md §4.5).
const applianceInfoTTL = 5 * time.Minute

// Archive is the client boundary: it resolves a PV name and time window
// into appliance-info-aware HTTP requests and decodes the responses.
type Archive struct {
	cfg     config.Config
	client  *http.Client
	cache   *cache.TTLCache
	gate    *gate.Gate
	metrics *decoder.Metrics

	requestHost string
}

// New constructs an Archive against cfg.URL. reg may be nil, in which
// case decoder metrics are created but not registered anywhere.
func New(cfg config.Config, reg prometheus.Registerer) (*Archive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, errorsWrapConfig(err, "parsing configured url")
	}

	transport := &http.Transport{}
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, errorsWrapConfig(err, "configuring http2 transport")
	}

	logger.Infof("archive: targeting %s (maxQuery=%d, chunkSize=%d, consolidate=%v)",
		u.Host, cfg.MaxQuery, cfg.ChunkSize, cfg.Consolidate)

	return &Archive{
		cfg:         cfg,
		client:      &http.Client{Transport: transport, Timeout: cfg.Timeout},
		cache:       cache.New(applianceInfoTTL),
		gate:        gate.New(cfg.MaxQuery),
		metrics:     decoder.NewMetrics(reg),
		requestHost: u.Host,
	}, nil
}

// Close releases background resources (the appliance-info cache's
// sweep goroutine). It does not close idle HTTP connections, since the
// underlying transport may still be referenced by in-flight requests.
func (a *Archive) Close() error {
	a.cache.Close()
	return nil
}

func newHTTPRequest(ctx context.Context, rawURL string, requestID string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-Id", requestID)
	return req, nil
}
