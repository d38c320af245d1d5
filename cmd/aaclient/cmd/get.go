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
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mdavidsaver/aaclient/dtype"
)

const disconnectSeverity = 3904

var (
	getStart string
	getEnd   string
)

var getCmd = &cobra.Command{
	Use:   "get <pv>",
	Short: "Fetch a PV's samples over a time window",
	Args:  cobra.ExactArgs(1),
	Example: "# aaclient get 'LN-AM{RadMon:1}DoseRate-I' " +
		"--start 2015-03-04T00:00:00Z --end 2015-03-05T00:00:00Z",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse(time.RFC3339, getStart)
		if err != nil {
			return fmt.Errorf("aaclient: --start must be RFC3339 (e.g. 2015-03-04T00:00:00Z): %w", err)
		}
		end, err := time.Parse(time.RFC3339, getEnd)
		if err != nil {
			return fmt.Errorf("aaclient: --end must be RFC3339 (e.g. 2015-03-05T00:00:00Z): %w", err)
		}

		a, err := newArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		var total int
		if err := a.RawIter(cmd.Context(), args[0], start, end, func(b dtype.Batch) error {
			total += b.Values.Len()
			printBatch(b)
			return nil
		}); err != nil {
			return err
		}
		if total == 0 {
			return ErrNoResults
		}
		return nil
	},
}

func printBatch(b dtype.Batch) {
	for i, meta := range b.Meta {
		marker := ""
		if meta.Severity == disconnectSeverity {
			marker = " [DISCONNECTED]"
		}
		fmt.Printf("%d.%09d %s%s\n", meta.Sec, meta.Ns, formatRow(b.Values, i), marker)
	}
}

func formatRow(v *dtype.Values, i int) string {
	var s string
	switch v.Kind {
	case dtype.KindShort:
		s = fmt.Sprint(v.Short[i])
	case dtype.KindInt:
		s = fmt.Sprint(v.Int[i])
	case dtype.KindFloat:
		s = fmt.Sprint(v.Float[i])
	case dtype.KindDouble:
		s = fmt.Sprint(v.Double[i])
	case dtype.KindByte:
		s = fmt.Sprint(v.Byte[i])
	case dtype.KindEnum:
		s = fmt.Sprint(v.Enum[i])
	case dtype.KindString:
		return v.String[i].Text()
	case dtype.KindBytes:
		return fmt.Sprintf("%x", v.Bytes[i])
	default:
		return ""
	}
	if v.ElementCount == 1 {
		// A scalar row prints as its single element, not a one-element list.
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	}
	return s
}

func init() {
	getCmd.Flags().StringVar(&getStart, "start", "", "Window start, RFC3339 (e.g. 2015-03-04T00:00:00Z)")
	getCmd.Flags().StringVar(&getEnd, "end", "", "Window end, RFC3339")
	_ = getCmd.MarkFlagRequired("start")
	_ = getCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(getCmd)
}
