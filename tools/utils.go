// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"compiletest/logger"
)

const dirMode = 0755

// RunCmdStdin runs cmdl with args in directory dir, feeding stdin to the
// process and forwarding its output to stdout and stderr. It blocks until
// the process terminates.
//
// A non-zero exit status is returned as *exec.ExitError and a command that
// cannot be started as *exec.Error or *fs.PathError.
func RunCmdStdin(ctx context.Context, dir, cmdl string, args []string,
	stdin io.Reader, stdout, stderr io.Writer) error {
	logger.Debug(append([]string{cmdl}, args...))
	cmd := exec.CommandContext(ctx, cmdl, args...)
	cmd.Dir = dir
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%s interrupted: %w", cmdl, ctx.Err())
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.Debugf("%s exited with code %d", cmdl, exitErr.ExitCode())
	}
	return err
}

// MockFileExistsErr is a mock error returned by FileExists in tests
var MockFileExistsErr error

// FileExists returns nil if a file exists otherwise an error
func FileExists(fn string) error {
	if MockFileExistsErr != nil {
		return MockFileExistsErr
	}
	if _, err := os.Stat(fn); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", fn)
	}
	return nil
}

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("could not create '%v': %w", dir, err)
	}
	return nil
}

// CopyFile copies src into dst, keeping the permissions of src.
// Returns nil upon no error
func CopyFile(src, dst string) error {
	logger.Infof("copying file: '%s' -> '%s'", src, dst)
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("could not read '%v': %w", src, err)
	}
	input, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("could not read '%v': %w", src, err)
	}

	err = os.WriteFile(dst, input, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("could not create '%v': %w", dst, err)
	}
	return nil
}

// MoveFile renames src to dst, replacing dst if it exists. When both paths
// are on different devices the file is copied and src removed.
func MoveFile(src, dst string) error {
	logger.Debugf("Move file '%s' -> '%s'", src, dst)
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	return Remove(src)
}

const enableRemove = true

// Remove deletes as file. It can be disabled with the enableRemove flag in the source.
func Remove(fn string) error {
	logger.Debugf("Remove file '%s'", fn)
	if enableRemove {
		return os.Remove(fn)
	}
	return nil
}
