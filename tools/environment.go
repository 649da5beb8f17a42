// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package tools

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// Envvar describes an environment variable understood by compiletest.
type Envvar struct {
	Name string
	Defv string
	Desc string
}

var (
	envMu   sync.Mutex
	envvars = map[string]Envvar{}
)

// RegEnv registers an environment variable with its default value and a
// description shown in the help message.
func RegEnv(name, defv, desc string) {
	envMu.Lock()
	defer envMu.Unlock()
	envvars[name] = Envvar{Name: name, Defv: defv, Desc: desc}
}

// GetEnv returns the value of a registered environment variable or its
// default value if unset. Unregistered variables are read as is.
func GetEnv(name string) string {
	if v, has := os.LookupEnv(name); has {
		return v
	}
	envMu.Lock()
	defer envMu.Unlock()
	return envvars[name].Defv
}

// GetEnvvars returns all registered environment variables sorted by name.
func GetEnvvars() []Envvar {
	envMu.Lock()
	defer envMu.Unlock()
	var evs []Envvar
	for _, ev := range envvars {
		evs = append(evs, ev)
	}
	sort.Slice(evs, func(i, j int) bool { return evs[i].Name < evs[j].Name })
	return evs
}

// FindCmd looks for the value of an environment variable.
// If not set returns a default value.
func FindCmd(envVar string, defaultVal ...string) ([]string, error) {
	cmd, has := os.LookupEnv(envVar)
	if has {
		return strings.Fields(cmd), nil
	}
	return defaultVal, nil
}
