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

// Package debugserver runs a small HTTP endpoint exposing Prometheus
// metrics and a liveness probe alongside the CLI's own output, for
// operators running aaclient as a long-lived sidecar (e.g. a cron wrapper
// scraping PVs on a schedule).
package debugserver

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mdavidsaver/aaclient/internal/logger"
)

// Config controls whether the debug server runs and where it binds.
type Config struct {
	Enabled bool          `config:"enabled"`
	Address string        `config:"address"`
	Timeout time.Duration `config:"timeout"`
}

// Server is an optional sidecar HTTP server exposing /metrics and
// /healthz. New returns a nil Server when cfg.Enabled is false; callers
// must check for nil before calling ListenAndServe.
type Server struct {
	config Config
	router *mux.Router
	server *http.Server
}

// New builds a Server bound to reg's registry, or returns (nil, nil)
// if cfg.Enabled is false.
func New(cfg Config, reg *prometheus.Registry) (*Server, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	router := mux.NewRouter()
	s := &Server{
		config: cfg,
		router: router,
		server: &http.Server{
			Handler:      router,
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
	}

	handler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	router.Methods(http.MethodGet).Path("/metrics").Handler(handler)
	router.Methods(http.MethodGet).Path("/healthz").HandlerFunc(s.handleHealthz)
	return s, nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ListenAndServe blocks serving on config.Address until the listener
// errors or Shutdown is called from another goroutine.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	logger.Infof("debugserver: listening on %s", s.config.Address)
	return s.server.Serve(l)
}

// Shutdown stops the server at once: it closes the listener and every
// open connection without waiting for in-flight requests to finish.
func (s *Server) Shutdown() error {
	return s.server.Close()
}
