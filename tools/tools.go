// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build tools
// +build tools

// Tool dependencies kept in go.mod: forbidigo for linting and stringer for
// the generated Kind and errorType String methods.
package main

import (
	_ "github.com/ashanbrown/forbidigo"
	_ "golang.org/x/tools/cmd/stringer"
)
