// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tools contains a set of helper functions to locate and invoke external compilers
// as well as wrappers to move, copy and remove files.
package tools

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
)

// LocateCmd turns path into an absolute path, interpreting relative paths from
// base, and checks that it exists.
func LocateCmd(base, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("could not resolve '%s': %w", path, err)
	}
	if err := FileExists(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// Compile calls the compiler in directory dir without arguments and with
// source as standard input. The compiler output is forwarded to stdout and
// stderr.
func Compile(ctx context.Context, compiler, dir string, source io.Reader, stdout, stderr io.Writer) error {
	return RunCmdStdin(ctx, dir, compiler, nil, source, stdout, stderr)
}
