// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"os/exec"

	"compiletest/harness"
)

type errorType int

//go:generate go run golang.org/x/tools/cmd/stringer -type=errorType
const (
	internalError errorType = iota
	configError
	inputError
	compilerError
	artifactError
)

type vError struct {
	typ errorType
	err error
}

func (e *vError) Error() string {
	return e.err.Error()
}

func (e *vError) Unwrap() error {
	return e.err
}

// Code is the process exit code. A failing compiler passes its own exit
// code through.
func (e *vError) Code() int {
	switch e.typ {
	case configError:
		return 2
	case compilerError:
		var exitErr *exec.ExitError
		if errors.As(e.err, &exitErr) && exitErr.ExitCode() > 0 {
			return exitErr.ExitCode()
		}
		return 1
	default:
		return 1
	}
}

func verror(typ errorType, err error) *vError {
	return &vError{
		typ: typ,
		err: err,
	}
}

// classify maps harness failures to CLI errors.
func classify(err error) error {
	switch harness.KindOf(err) {
	case harness.ConfigError:
		return verror(configError, err)
	case harness.InputError:
		return verror(inputError, err)
	case harness.InvocationError:
		return verror(compilerError, err)
	case harness.ArtifactError:
		return verror(artifactError, err)
	default:
		return verror(internalError, err)
	}
}

func getErrorType(err error) string {
	if err == nil {
		return "none"
	}
	var e *vError
	if errors.As(err, &e) {
		return e.typ.String()
	}
	return internalError.String()
}

func getErrorCode(err error) int {
	if err == nil {
		return 0
	}
	var e *vError
	if errors.As(err, &e) {
		return e.Code()
	}
	return 1
}

func getErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
