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
	"net/url"
)

// rewriteHost implements spec.md §6's host rewriting rule: appliances
// frequently advertise mgmtURL/retrievalURL pointing at localhost or
// 127.0.0.1 (their own view of themselves), which is useless to a
// client that reached them through a different hostname. If raw's host
// is localhost or 127.0.0.1, its host is replaced by requestHost,
// preserving port and path.
func rewriteHost(raw string, requestHost string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	switch u.Hostname() {
	case "localhost", "127.0.0.1":
	default:
		return raw, nil
	}

	reqHostname := requestHost
	if h, _, err := net.SplitHostPort(requestHost); err == nil {
		reqHostname = h
	}

	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(reqHostname, port)
	} else {
		u.Host = reqHostname
	}
	return u.String(), nil
}
