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

	"github.com/spf13/cobra"

	"github.com/mdavidsaver/aaclient/archive"
)

var (
	grepExact    bool
	grepWildcard bool
	grepRegexp   bool
)

var grepCmd = &cobra.Command{
	Use:   "grep <pattern>",
	Short: "Resolve a PV name pattern against the appliance's name index",
	Args:  cobra.ExactArgs(1),
	Example: "# aaclient grep 'LN-AM*DoseRate-I'\n" +
		"# aaclient grep --regexp '^LN-AM\\{RadMon:\\d+\\}.*'",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := grepMatchMode()
		if err != nil {
			return err
		}

		a, err := newArchive()
		if err != nil {
			return err
		}
		defer a.Close()

		names, err := a.Search(cmd.Context(), args[0], mode)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return ErrNoResults
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

func grepMatchMode() (archive.MatchMode, error) {
	switch {
	case grepExact && !grepWildcard && !grepRegexp:
		return archive.MatchExact, nil
	case grepRegexp && !grepExact && !grepWildcard:
		return archive.MatchRegex, nil
	case !grepExact && !grepRegexp:
		return archive.MatchWildcard, nil
	default:
		return 0, fmt.Errorf("aaclient: --exact, --wildcard, and --regexp are mutually exclusive")
	}
}

func init() {
	grepCmd.Flags().BoolVar(&grepExact, "exact", false, "Match the pattern literally")
	grepCmd.Flags().BoolVar(&grepWildcard, "wildcard", false, "Match the pattern as a shell glob (default)")
	grepCmd.Flags().BoolVar(&grepRegexp, "regexp", false, "Match the pattern as a regular expression")
	rootCmd.AddCommand(grepCmd)
}
