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

	"github.com/go-csl/citeproc/pkg/edge"
	"github.com/go-csl/citeproc/pkg/format"
	"github.com/go-csl/citeproc/pkg/query"
)

var namesCmd = &cobra.Command{
	Use:   "names",
	Short: "List every person name observed across a reference set",
	RunE: func(cmd *cobra.Command, args []string) error {
		refsPath, _ := cmd.Flags().GetString("references")
		if refsPath == "" {
			return fmt.Errorf("--references is required")
		}

		refs, err := LoadReferences(refsPath)
		if err != nil {
			return err
		}

		layer := query.NewLayer(refs, mustLoadStyleOrDefault(cmd), format.NewPlainFormatter(), edge.New())
		for _, n := range layer.AllPersonNames() {
			fmt.Println(n.Family + ", " + n.Given)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(namesCmd)
	namesCmd.Flags().StringP("references", "r", "", "path to a YAML references file")
	namesCmd.Flags().StringP("style", "s", "", "path to a YAML style descriptor")
}
