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

// Package archive is the client boundary (spec.md §4.5, §6): it turns a
// PV name and a time window into HTTP requests against an EPICS
// Archiver Appliance, and feeds the response bodies through decoder and
// wire/wireproto to produce typed batches.
package archive

import "github.com/pkg/errors"

var (
	// ErrTimedOut wraps a scalar operation deadline exceeded (spec.md §7).
	ErrTimedOut = errors.New("archive: timed out")

	// ErrHTTPStatus wraps a status >= 400 response from the server.
	ErrHTTPStatus = errors.New("archive: unexpected http status")

	// ErrConfigError wraps a missing required key in appliance-info or
	// client configuration.
	ErrConfigError = errors.New("archive: config error")
)

func errorsWrapConfig(err error, msg string) error {
	return errors.Wrap(ErrConfigError, msg+": "+err.Error())
}
