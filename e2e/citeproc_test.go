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
package e2e_citeproc_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-csl/citeproc/cmd"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestCiteprocNames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	t.Parallel()
	testscript.Run(t, testscript.Params{
		Dir:                 "testdata/names",
		RequireExplicitExec: true,
		Setup: func(env *testscript.Env) error {
			return copyFile("testdata/names/references.yaml", filepath.Join(env.WorkDir, "references.yaml"))
		},
	})
}

func TestCiteprocRender(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	t.Parallel()
	testscript.Run(t, testscript.Params{
		Dir:                 "testdata/render",
		RequireExplicitExec: true,
		Setup: func(env *testscript.Env) error {
			return copyFile("testdata/render/references.yaml", filepath.Join(env.WorkDir, "references.yaml"))
		},
	})
}

func TestCiteprocRenderDisambiguatesIdenticalReferences(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode.")
	}

	t.Parallel()
	testscript.Run(t, testscript.Params{
		Dir:                 "testdata/render_disambiguate",
		RequireExplicitExec: true,
		Setup: func(env *testscript.Env) error {
			return copyFile("testdata/render_disambiguate/references.yaml", filepath.Join(env.WorkDir, "references.yaml"))
		},
	})
}

func runCiteproc() int {
	cmd.Execute()
	return 0
}

func TestMain(m *testing.M) {
	exitCode := testscript.RunMain(m, map[string]func() int{
		"citeproc": runCiteproc,
	})
	os.Exit(exitCode)
}

// copyFile copies a fixture into a testscript workdir.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	return err
}
