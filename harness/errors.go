// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package harness

import (
	"errors"
	"fmt"
)

// Kind classifies a harness failure. All kinds are fatal.
type Kind int

//go:generate go run golang.org/x/tools/cmd/stringer -type=Kind
const (
	// ConfigError is raised when the compiler cannot be found.
	ConfigError Kind = iota + 1
	// InputError is raised when a test input cannot be opened.
	InputError
	// InvocationError is raised when the compiler exits with non-zero status.
	InvocationError
	// ArtifactError is raised when the compiler did not leave an object file.
	ArtifactError
)

var (
	ErrCompilerNotFound = errors.New("compiler not found")
	ErrCompilerFailed   = errors.New("command failed")
	ErrArtifactMissing  = errors.New("artifact missing")
)

// Error is returned by the harness. Case is empty for configuration errors.
type Error struct {
	Kind Kind
	Case Case
	Err  error
}

func (e *Error) Error() string {
	if e.Case == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Case, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a harness error or 0 if err is not one.
func KindOf(err error) Kind {
	var herr *Error
	if errors.As(err, &herr) {
		return herr.Kind
	}
	return 0
}
