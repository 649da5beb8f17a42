// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package harness runs a fixed list of test inputs through an external
// compiler and collects the object file produced by each run.
//
// The compiler reads the source from standard input and writes a single
// object file to a fixed path in the working directory. After every run the
// harness moves that file to the output directory under the input's base
// name. Cases run one after another and the first failure stops the run.
package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"compiletest/logger"
	"compiletest/tools"
)

// Harness runs test cases against one compiler.
type Harness struct {
	cfg      Config
	compiler string

	// Stdout receives the progress lines and the compiler's standard
	// output. Stderr receives the compiler's standard error.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a harness for cfg. The compiler is located by Run or
// ResolveCompiler.
func New(cfg Config) *Harness {
	return &Harness{
		cfg:    cfg,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Config returns the configuration of the harness.
func (h *Harness) Config() Config {
	return h.cfg
}

// Compiler returns the resolved compiler path, or "" before resolution.
func (h *Harness) Compiler() string {
	return h.compiler
}

// ResolveCompiler returns the absolute path of the configured compiler.
// It fails with a ConfigError if the compiler does not exist.
func ResolveCompiler(cfg Config) (string, error) {
	path, err := tools.LocateCmd(cfg.path(""), cfg.Compiler)
	if err != nil {
		return "", &Error{
			Kind: ConfigError,
			Err:  fmt.Errorf("%w: %s: %v", ErrCompilerNotFound, cfg.Compiler, err),
		}
	}
	logger.Debugf("compiler is at %s", path)
	return path, nil
}

// ResolveCompiler locates the compiler and remembers its path for RunCase.
func (h *Harness) ResolveCompiler() error {
	path, err := ResolveCompiler(h.cfg)
	if err != nil {
		return err
	}
	h.compiler = path
	return nil
}

// Run resolves the compiler and runs every configured case in order. It
// stops at the first failing case.
func (h *Harness) Run(ctx context.Context) error {
	if err := h.ResolveCompiler(); err != nil {
		return err
	}
	if err := tools.EnsureDir(h.cfg.path(h.cfg.OutDir)); err != nil {
		return err
	}
	for _, tc := range h.cfg.Cases {
		if err := h.RunCase(ctx, tc); err != nil {
			return err
		}
	}
	logger.Infof("%d cases done", len(h.cfg.Cases))
	return nil
}

// RunCase compiles the input of tc and moves the resulting object file into
// the output directory. The compiler must have been resolved.
func (h *Harness) RunCase(ctx context.Context, tc Case) error {
	if h.compiler == "" {
		return errors.New("compiler not resolved")
	}

	in, err := os.Open(h.cfg.inputPath(tc))
	if err != nil {
		return &Error{Kind: InputError, Case: tc, Err: err}
	}
	defer func() {
		if err := in.Close(); err != nil {
			logger.Warnf("error closing file: %v", err)
		}
	}()

	// a stale artifact must not pass for this run's output
	artifact := h.cfg.artifactPath()
	if err := tools.Remove(artifact); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &Error{Kind: ArtifactError, Case: tc, Err: err}
	}

	fmt.Fprintln(h.Stdout, "Running", tc.Name())
	err = tools.Compile(ctx, h.compiler, h.cfg.path(""), in, h.Stdout, h.Stderr)
	if err != nil {
		return &Error{
			Kind: InvocationError,
			Case: tc,
			Err:  fmt.Errorf("%w: %s: %w", ErrCompilerFailed, h.compiler, err),
		}
	}

	if _, err := os.Stat(artifact); err != nil {
		return &Error{
			Kind: ArtifactError,
			Case: tc,
			Err:  fmt.Errorf("%w: %w", ErrArtifactMissing, err),
		}
	}
	if err := tools.MoveFile(artifact, h.cfg.objectPath(tc)); err != nil {
		return &Error{Kind: ArtifactError, Case: tc, Err: err}
	}
	return nil
}
