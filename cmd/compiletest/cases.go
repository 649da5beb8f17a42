// Copyright (C) 2024 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"compiletest/harness"
	"compiletest/logger"
	"compiletest/tools"
)

func init() {
	var casesCmd = cobra.Command{
		Use:   "cases",
		Short: "Prints the test inputs in the order they run",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := harnessConfig()
			if err != nil {
				return verror(internalError, err)
			}
			printCases(cfg)
			return nil
		},
	}

	var envCmd = cobra.Command{
		Use:   "env",
		Short: "Prints the environment variables and their current values",
		Args:  cobra.NoArgs,

		Run: func(cmd *cobra.Command, args []string) {
			for _, ev := range tools.GetEnvvars() {
				logger.Printf("%s=%s\n", ev.Name, tools.GetEnv(ev.Name))
			}
		},
	}

	rootCmd.AddCommand(&casesCmd)
	rootCmd.AddCommand(&envCmd)
}

func printCases(cfg harness.Config) {
	for _, c := range cfg.Cases {
		logger.Printf("%s -> %s\n",
			filepath.Join(cfg.DataDir, c.Name()),
			filepath.Join(cfg.OutDir, c.Object()))
	}
}
