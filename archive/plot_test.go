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
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdavidsaver/aaclient/dtype"
	"github.com/mdavidsaver/aaclient/internal/config"
	"github.com/mdavidsaver/aaclient/wire"
	"github.com/mdavidsaver/aaclient/wireproto"
)

// newPVCapturingServer behaves like newTestServer but records the "pv"
// query parameter of every getData.raw request, so tests can assert on
// the effective PV name BinQuery/Plot sent over the wire.
func newPVCapturingServer(t *testing.T, gotPV *string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/mgmt/bpl/getApplianceInfo", func(w http.ResponseWriter, r *http.Request) {
		_, port, _ := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"mgmtURL": "http://localhost:` + port + `/mgmt/bpl",
			"retrievalURL": "http://localhost:` + port + `/retrieval/bpl"
		}`))
	})
	mux.HandleFunc("/retrieval/data/getData.raw", func(w http.ResponseWriter, r *http.Request) {
		*gotPV = r.URL.Query().Get("pv")
		header := wireproto.PayloadInfo{
			Type:         dtype.ScalarDouble,
			PVName:       []byte(testPV),
			Year:         2015,
			ElementCount: 1,
		}
		frames := [][]byte{wireproto.EncodePayloadInfo(header)}
		frames = append(frames, wireproto.EncodeSample(dtype.ScalarDouble, wireproto.Sample{
			Sec: 0,
			Row: dtype.Row{Kind: dtype.KindDouble, Double: []float64{1}},
		}))
		_, _ = w.Write(wire.Join(frames))
	})

	srv = httptest.NewServer(mux)
	return srv
}

func TestBinQueryRewritesPVForLongWindow(t *testing.T) {
	var gotPV string
	srv := newPVCapturingServer(t, &gotPV)
	defer srv.Close()
	a := newTestArchive(t, srv)

	start := time.Unix(0, 0)
	end := start.Add(1000 * time.Second)
	_, err := a.BinQuery(t.Context(), testPV, start, end, 10)
	require.NoError(t, err)

	assert.Equal(t, "caplotbinning_100("+testPV+")", gotPV)
}

func TestBinQueryFallsBackToRawForShortWindow(t *testing.T) {
	var gotPV string
	srv := newPVCapturingServer(t, &gotPV)
	defer srv.Close()
	a := newTestArchive(t, srv)

	start := time.Unix(0, 0)
	end := start.Add(time.Second)
	_, err := a.BinQuery(t.Context(), testPV, start, end, 10)
	require.NoError(t, err)

	assert.Equal(t, testPV, gotPV)
}

func TestPlotUsesConfiguredDefaultCount(t *testing.T) {
	var gotPV string
	srv := newPVCapturingServer(t, &gotPV)
	defer srv.Close()
	a := newTestArchive(t, srv) // newTestArchive sets cfg.DefaultCount = 100

	start := time.Unix(0, 0)
	end := start.Add(1000 * time.Second)
	_, err := a.Plot(t.Context(), testPV, start, end)
	require.NoError(t, err)

	assert.Equal(t, "caplotbinning_10("+testPV+")", gotPV)
}
