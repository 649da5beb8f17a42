// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package harness

import (
	"path/filepath"
	"strings"

	"github.com/jinzhu/copier"

	"compiletest/tools"
)

func init() {
	tools.RegEnv("COMPILETEST_COMPILER", DefaultCompiler,
		"Path to the compiler under test, relative to the working directory")
}

const (
	// DefaultCompiler is where the compiler is built next to the test tree.
	DefaultCompiler = "../../debug-compiler-theory-samples/llvm_4"
	// DefaultDataDir holds the test inputs.
	DefaultDataDir = "data"
	// DefaultOutDir receives the relocated object files.
	DefaultOutDir = "out"
	// DefaultArtifact is the object file written by the compiler.
	DefaultArtifact = "program.o"
)

// DefaultCases is the fixed, ordered list of test inputs.
var DefaultCases = []Case{
	"first-space-velocity.txt",
	"if_branching.txt",
	"simple_strings_concat.txt",
	"square.txt",
	"advanced_strings_concat.txt",
}

// Case is a test input file name relative to the data directory.
type Case string

// Name returns the input file name.
func (c Case) Name() string {
	return string(c)
}

// Object returns the name of the relocated artifact: the input name with
// its extension replaced by ".o".
func (c Case) Object() string {
	name := filepath.Base(string(c))
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".o"
}

// Config describes where the harness finds the compiler, its inputs and
// where it puts the outputs. Relative paths are interpreted from WorkDir.
type Config struct {
	WorkDir  string
	Compiler string
	DataDir  string
	OutDir   string
	Artifact string
	Cases    []Case
}

// DefaultConfig returns the fixed layout run from the current directory.
// The compiler path can be overridden with COMPILETEST_COMPILER.
func DefaultConfig() Config {
	return Config{
		WorkDir:  ".",
		Compiler: tools.GetEnv("COMPILETEST_COMPILER"),
		DataDir:  DefaultDataDir,
		OutDir:   DefaultOutDir,
		Artifact: DefaultArtifact,
		Cases:    append([]Case(nil), DefaultCases...),
	}
}

// Merge returns a copy of c where every non-empty field of o replaces the
// corresponding field of c.
func (c Config) Merge(o Config) (Config, error) {
	merged := c
	if err := copier.CopyWithOption(&merged, &o, copier.Option{IgnoreEmpty: true}); err != nil {
		return c, err
	}
	merged.Cases = append([]Case(nil), merged.Cases...)
	return merged, nil
}

func (c Config) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.WorkDir, p)
}

func (c Config) inputPath(tc Case) string {
	return filepath.Join(c.path(c.DataDir), tc.Name())
}

func (c Config) artifactPath() string {
	return c.path(c.Artifact)
}

func (c Config) objectPath(tc Case) string {
	return filepath.Join(c.path(c.OutDir), tc.Object())
}
