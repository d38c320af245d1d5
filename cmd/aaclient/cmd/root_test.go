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

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Both grep and get return ErrNoResults, not nil, when the appliance
// answers without error but with nothing to show: the cobra RunE
// contract that drives Execute's exit code relies on that non-nil
// error, so a nil return here would silently regress to exit code 0.
func TestErrNoResultsIsNonNil(t *testing.T) {
	assert.Error(t, ErrNoResults)
	assert.Contains(t, ErrNoResults.Error(), "no results")
}
