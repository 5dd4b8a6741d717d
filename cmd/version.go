// Copyright 2025 Interlynk.io
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
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
	"sigs.k8s.io/release-utils/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the citeproc version",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.GetVersionInfo()
		fmt.Println(info.GitVersion)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
