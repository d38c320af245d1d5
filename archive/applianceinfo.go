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
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/mdavidsaver/aaclient/internal/cache"
)

// ApplianceInfo is the subset of getApplianceInfo.json fields this
// client needs (spec.md §6). Unrecognized fields are ignored.
type ApplianceInfo struct {
	MgmtURL          string `json:"mgmtURL"`
	DataRetrievalURL string `json:"dataRetrievalURL"`
	RetrievalURL     string `json:"retrievalURL"`
}

func (info ApplianceInfo) validate() error {
	var merr *multierror.Error
	if info.MgmtURL == "" {
		merr = multierror.Append(merr, errors.Wrap(ErrConfigError, "appliance-info missing mgmtURL"))
	}
	if info.RetrievalURL == "" {
		merr = multierror.Append(merr, errors.Wrap(ErrConfigError, "appliance-info missing retrievalURL"))
	}
	return merr.ErrorOrNil()
}

// applianceInfo fetches (or returns a cached copy of) the appliance's
// self-described endpoint document, rewriting any localhost/127.0.0.1
// host it advertises to the host this client actually dialed.
func (a *Archive) applianceInfo(ctx context.Context) (ApplianceInfo, error) {
	ctx, span := tracer.Start(ctx, "archive.applianceInfo")
	defer span.End()

	key := cacheKey(a.cfg.URL)
	if raw, ok := a.cache.Get(key); ok {
		var info ApplianceInfo
		if err := json.Unmarshal(raw, &info); err == nil {
			return info, nil
		}
	}

	req, err := newHTTPRequest(ctx, a.cfg.URL, uuid.NewString())
	if err != nil {
		return ApplianceInfo{}, err
	}

	resp, err := a.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ApplianceInfo{}, errors.Wrap(ErrTimedOut, err.Error())
		}
		return ApplianceInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ApplianceInfo{}, errors.Wrapf(ErrHTTPStatus, "%d fetching %s", resp.StatusCode, a.cfg.URL)
	}

	var info ApplianceInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ApplianceInfo{}, errors.Wrap(err, "archive: decoding appliance-info response")
	}
	if err := info.validate(); err != nil {
		return ApplianceInfo{}, err
	}

	if err := a.rewriteInfoHosts(&info); err != nil {
		return ApplianceInfo{}, err
	}

	if raw, err := json.Marshal(info); err == nil {
		a.cache.Set(key, raw)
	}
	return info, nil
}

// rewriteInfoHosts applies rewriteHost to every URL field of info,
// aggregating any per-field parse failure rather than failing on the
// first one.
func (a *Archive) rewriteInfoHosts(info *ApplianceInfo) error {
	var merr *multierror.Error

	fields := []*string{&info.MgmtURL, &info.DataRetrievalURL, &info.RetrievalURL}
	for _, f := range fields {
		if *f == "" {
			continue
		}
		rewritten, err := rewriteHost(*f, a.requestHost)
		if err != nil {
			merr = multierror.Append(merr, errors.Wrapf(err, "rewriting host of %q", *f))
			continue
		}
		*f = rewritten
	}
	return merr.ErrorOrNil()
}

func cacheKey(applianceInfoURL string) uint64 {
	return cache.Key("applianceInfo:" + strings.TrimSpace(applianceInfoURL))
}
