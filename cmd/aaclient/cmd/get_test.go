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

	"github.com/mdavidsaver/aaclient/dtype"
)

func TestFormatRowDouble(t *testing.T) {
	v := dtype.NewValues(dtype.KindDouble, 1)
	v.Append(dtype.Row{Kind: dtype.KindDouble, Double: []float64{0.03}})
	assert.Equal(t, "0.03", formatRow(v, 0))
}

func TestFormatRowString(t *testing.T) {
	v := dtype.NewValues(dtype.KindString, 1)
	v.Append(dtype.Row{Kind: dtype.KindString, String: dtype.NewStringCell([]byte("hello"))})
	assert.Equal(t, "hello", formatRow(v, 0))
}
