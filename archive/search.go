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
	"regexp"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MatchMode selects how a caller-supplied search pattern is translated
// to the server's anchored regex (spec.md §6).
type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchWildcard
	MatchRegex
)

var operatorPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*_\d+)\((.*)\)$`)

// stripOperator recognizes a pattern of the form <op>_<N>(<inner>),
// returning the operator prefix and inner pattern so Search can query
// on inner alone and re-wrap whatever PV names come back.
func stripOperator(pattern string) (op string, inner string, wrapped bool) {
	m := operatorPattern.FindStringSubmatch(pattern)
	if m == nil {
		return "", pattern, false
	}
	return m[1], m[2], true
}

// wild2re translates a shell-style glob (? and *, with \X as a literal
// escape) into its regex equivalent, re-escaping any other regex
// metacharacter so it matches literally.
func wild2re(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '?':
			b.WriteString(".")
		case c == '*':
			b.WriteString(".*")
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte('\\')
			b.WriteByte(pattern[i+1])
			i++
		case strings.IndexByte(`.+()[]{}^$|`, c) >= 0:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// buildSearchRegex implements the full pattern-normalization rule of
// spec.md §6: translate per mode, then complete the implicit anchors
// the server assumes when neither end is already anchored.
func buildSearchRegex(pattern string, mode MatchMode) (string, error) {
	var re string
	switch mode {
	case MatchExact:
		re = "^" + regexp.QuoteMeta(pattern) + "$"
	case MatchWildcard:
		re = wild2re(pattern)
	case MatchRegex:
		re = pattern
	default:
		return "", errors.Errorf("archive: unknown match mode %d", mode)
	}

	if !strings.HasPrefix(re, "^") && !strings.HasPrefix(re, ".*") {
		re = ".*" + re
	}
	if !strings.HasSuffix(re, "$") && !strings.HasSuffix(re, ".*") {
		re = re + ".*"
	}
	return re, nil
}

// Search resolves pattern under mode against the appliance's
// getAllPVs endpoint, stripping and re-wrapping any <op>_<N>(...)
// operator envelope around the pattern (spec.md §6).
func (a *Archive) Search(ctx context.Context, pattern string, mode MatchMode) ([]string, error) {
	ctx, span := tracer.Start(ctx, "archive.Search")
	defer span.End()

	op, inner, wrapped := stripOperator(pattern)
	re, err := buildSearchRegex(inner, mode)
	if err != nil {
		return nil, err
	}

	names, err := a.getAllPVs(ctx, re)
	if err != nil {
		return nil, err
	}
	if !wrapped {
		return names, nil
	}

	out := make([]string, len(names))
	for i, n := range names {
		out[i] = op + "(" + n + ")"
	}
	return out, nil
}

func (a *Archive) getAllPVs(ctx context.Context, re string) ([]string, error) {
	if err := a.gate.Acquire(ctx); err != nil {
		return nil, errors.Wrap(ErrTimedOut, err.Error())
	}
	defer a.gate.Release()

	info, err := a.applianceInfo(ctx)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(strings.TrimRight(info.MgmtURL, "/") + "/getAllPVs")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("regex", re)
	u.RawQuery = q.Encode()

	req, err := a.newRequest(ctx, u.String())
	if err != nil {
		return nil, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ErrTimedOut, err.Error())
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, errors.Wrapf(ErrHTTPStatus, "%d fetching %s", resp.StatusCode, u.String())
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, errors.Wrap(err, "archive: decoding getAllPVs response")
	}
	return names, nil
}

func (a *Archive) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	return newHTTPRequest(ctx, rawURL, uuid.NewString())
}
