// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package harness

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

const stubObject = "OBJ\n"

// stub compilers; every input is one line, appended to calls.log
const (
	stubOK = `#!/bin/sh
cat >> calls.log
printf 'OBJ\n' > program.o
`
	stubFailSquare = `#!/bin/sh
input=$(cat)
echo "$input" >> calls.log
case "$input" in
square) exit 3 ;;
esac
printf 'OBJ\n' > program.o
`
	stubNoArtifact = `#!/bin/sh
cat >> calls.log
exit 0
`
)

// newWorkspace extracts the test inputs into a temporary directory and
// installs the stub compiler at bin/cc.
func newWorkspace(t *testing.T, stub string) Config {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub compilers are shell scripts")
	}
	dir := t.TempDir()

	archive, err := txtar.ParseFile(filepath.Join("testdata", "workspace.txtar"))
	require.NoError(t, err)
	for _, f := range archive.Files {
		fn := filepath.Join(dir, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(fn), 0755))
		require.NoError(t, os.WriteFile(fn, f.Data, 0644))
	}

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bin"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bin", "cc"), []byte(stub), 0755))

	cfg := DefaultConfig()
	cfg.WorkDir = dir
	cfg.Compiler = "bin/cc"
	return cfg
}

func newHarness(cfg Config) (*Harness, *bytes.Buffer) {
	var out bytes.Buffer
	h := New(cfg)
	h.Stdout = &out
	h.Stderr = &out
	return h, &out
}

func calls(t *testing.T, cfg Config) []string {
	t.Helper()
	bs, err := os.ReadFile(filepath.Join(cfg.WorkDir, "calls.log"))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	return strings.Fields(string(bs))
}

func caseNames(cases []Case) []string {
	var names []string
	for _, c := range cases {
		names = append(names, strings.TrimSuffix(c.Name(), ".txt"))
	}
	return names
}

func outDir(t *testing.T, cfg Config) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(cfg.WorkDir, cfg.OutDir))
	require.NoError(t, err)
	files := map[string]string{}
	for _, e := range entries {
		bs, err := os.ReadFile(filepath.Join(cfg.WorkDir, cfg.OutDir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = string(bs)
	}
	return files
}

func TestRunAllCases(t *testing.T) {
	cfg := newWorkspace(t, stubOK)
	h, out := newHarness(cfg)

	require.NoError(t, h.Run(context.Background()))

	files := outDir(t, cfg)
	assert.Len(t, files, len(DefaultCases))
	for _, c := range DefaultCases {
		assert.Equal(t, stubObject, files[c.Object()], c.Object())
	}
	assert.NoFileExists(t, filepath.Join(cfg.WorkDir, DefaultArtifact))

	var want string
	for _, c := range DefaultCases {
		want += "Running " + c.Name() + "\n"
	}
	assert.Equal(t, want, out.String())
}

func TestRunOrder(t *testing.T) {
	cfg := newWorkspace(t, stubOK)
	h, _ := newHarness(cfg)

	require.NoError(t, h.Run(context.Background()))

	if diff := cmp.Diff(caseNames(DefaultCases), calls(t, cfg)); diff != "" {
		t.Errorf("invocation order mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStopsAtFailingCompiler(t *testing.T) {
	cfg := newWorkspace(t, stubFailSquare)
	h, out := newHarness(cfg)

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, InvocationError, KindOf(err))
	assert.ErrorIs(t, err, ErrCompilerFailed)

	var herr *Error
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, Case("square.txt"), herr.Case)

	// square.txt is the fourth case
	files := outDir(t, cfg)
	for i, c := range DefaultCases {
		if i < 3 {
			assert.Contains(t, files, c.Object())
		} else {
			assert.NotContains(t, files, c.Object())
		}
	}
	assert.Equal(t, caseNames(DefaultCases[:4]), calls(t, cfg))
	assert.NotContains(t, out.String(), "Running advanced_strings_concat.txt")
}

func TestRunMissingCompiler(t *testing.T) {
	cfg := newWorkspace(t, stubOK)
	cfg.Compiler = "bin/missing"
	h, out := newHarness(cfg)

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, ConfigError, KindOf(err))
	assert.ErrorIs(t, err, ErrCompilerNotFound)

	assert.NoDirExists(t, filepath.Join(cfg.WorkDir, cfg.OutDir))
	assert.Empty(t, out.String())
	assert.Empty(t, h.Compiler())
}

func TestRunMissingArtifact(t *testing.T) {
	cfg := newWorkspace(t, stubNoArtifact)
	h, _ := newHarness(cfg)

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, ArtifactError, KindOf(err))
	assert.ErrorIs(t, err, ErrArtifactMissing)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Empty(t, outDir(t, cfg))
	assert.Equal(t, caseNames(DefaultCases[:1]), calls(t, cfg))
}

func TestRunMissingInput(t *testing.T) {
	cfg := newWorkspace(t, stubOK)
	require.NoError(t, os.Remove(filepath.Join(cfg.WorkDir, "data", "square.txt")))
	h, out := newHarness(cfg)

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, InputError, KindOf(err))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Equal(t, caseNames(DefaultCases[:3]), calls(t, cfg))
	assert.NotContains(t, out.String(), "Running square.txt")
	assert.Len(t, outDir(t, cfg), 3)
}

func TestRunIdempotent(t *testing.T) {
	cfg := newWorkspace(t, stubOK)

	h, _ := newHarness(cfg)
	require.NoError(t, h.Run(context.Background()))
	first := outDir(t, cfg)

	h, _ = newHarness(cfg)
	require.NoError(t, h.Run(context.Background()))
	second := outDir(t, cfg)

	assert.Equal(t, first, second)
	assert.Len(t, calls(t, cfg), 2*len(DefaultCases))
}

func TestRunCaseRequiresCompiler(t *testing.T) {
	h, _ := newHarness(DefaultConfig())
	err := h.RunCase(context.Background(), DefaultCases[0])
	assert.Error(t, err)
	assert.Equal(t, Kind(0), KindOf(err))
}

func TestRunCaseCancelled(t *testing.T) {
	cfg := newWorkspace(t, stubOK)
	h, _ := newHarness(cfg)
	require.NoError(t, h.ResolveCompiler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := h.RunCase(ctx, DefaultCases[0])
	require.Error(t, err)
	assert.Equal(t, InvocationError, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveCompiler(t *testing.T) {
	cfg := newWorkspace(t, stubOK)

	path, err := ResolveCompiler(cfg)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, filepath.Join(cfg.WorkDir, "bin", "cc"), path)

	cfg.Compiler = path
	again, err := ResolveCompiler(cfg)
	require.NoError(t, err)
	assert.Equal(t, path, again)
}

func TestRunStaleArtifact(t *testing.T) {
	cfg := newWorkspace(t, stubNoArtifact)
	stale := filepath.Join(cfg.WorkDir, DefaultArtifact)
	require.NoError(t, os.WriteFile(stale, []byte("stale"), 0644))
	h, _ := newHarness(cfg)

	err := h.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArtifactMissing)
	assert.NoFileExists(t, stale)
	assert.Empty(t, outDir(t, cfg))
}
