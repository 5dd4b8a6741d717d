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
	"context"

	"github.com/spf13/cobra"

	"github.com/go-csl/citeproc/pkg/logger"
	"github.com/go-csl/citeproc/pkg/style"
)

// mustLoadStyleOrDefault loads the style file named by --style, if
// given, and falls back to a zero-value Style otherwise — commands
// that only inspect references (e.g. `names`) don't require one.
func mustLoadStyleOrDefault(cmd *cobra.Command) style.Style {
	path, _ := cmd.Flags().GetString("style")
	if path == "" {
		return style.Style{}
	}
	st, err := LoadStyle(path)
	if err != nil {
		return style.Style{}
	}
	return st
}

// loggerContext wires a prod or debug logger onto a fresh context
// depending on the persistent --debug flag, the way the teacher's
// subcommands do in their RunE (pkg/assemble's assembleCmd).
func loggerContext(cmd *cobra.Command) context.Context {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		logger.InitDebugLogger()
	} else {
		logger.InitProdLogger()
	}
	return logger.WithLogger(context.Background())
}
