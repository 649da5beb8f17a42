// Copyright (C) 2023 Huawei Technologies Co., Ltd. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the compiletest program: it runs the compiler test inputs
// and collects their object files.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"compiletest/harness"
	"compiletest/logger"
	"compiletest/tools"
)

const rootDoc = `compiletest -- Run compiler test inputs and collect the object files

Each input under data/ is fed to the compiler on standard input. The compiler
writes program.o into the current directory, which is then moved to
out/<input-name>.o. The first failure stops the run.`

var rootCmd = cobra.Command{
	Use:           "compiletest",
	Short:         "Runs the compiler on every test input",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,

	TraverseChildren: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := harnessConfig()
		if err != nil {
			return verror(internalError, err)
		}
		return runSuite(cmd.Context(), cfg)
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(logger.ParseLevel(rootFlags.log))
		if rootFlags.debug {
			logger.SetLevel(logger.DEBUG)
		}
		if rootFlags.quiet {
			logger.SetFileDescriptor(nil)
		}
	},
}

var rootFlags struct {
	log      string
	debug    bool
	quiet    bool
	compiler string
}

func init() {
	tools.RegEnv("COMPILETEST_LOG", "ERROR", "Default log level (ERROR|WARN|INFO|DEBUG)")

	helpMessage := rootDoc
	helpMessage += "\n\nEnvironment Variables:"
	for _, ev := range tools.GetEnvvars() {
		helpMessage += "\n  " + ev.Name + " " +
			"(default: \"" + ev.Defv + "\")\n\t" + ev.Desc
	}
	rootCmd.Long = helpMessage

	addRootFlags(rootCmd.PersistentFlags())
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func addRootFlags(flags *pflag.FlagSet) {
	flags.StringVar(&rootFlags.log, "log", tools.GetEnv("COMPILETEST_LOG"), "log level (ERROR|WARN|INFO|DEBUG)")
	flags.BoolVarP(&rootFlags.debug, "debug", "d", false, "set debug mode")
	flags.BoolVarP(&rootFlags.quiet, "quiet", "q", false, "do not produce log output")
	flags.StringVar(&rootFlags.compiler, "compiler", "", "path to the compiler (default $COMPILETEST_COMPILER)")
}

// harnessConfig returns the fixed layout with the command line overrides.
func harnessConfig() (harness.Config, error) {
	return harness.DefaultConfig().Merge(harness.Config{
		Compiler: rootFlags.compiler,
	})
}

// runSuite runs every case of cfg and converts failures into CLI errors.
func runSuite(ctx context.Context, cfg harness.Config) error {
	h := harness.New(cfg)
	if err := h.Run(ctx); err != nil {
		return classify(err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Debugf("failed with %s", getErrorType(err))
		if msg := getErrorMessage(err); msg != "" {
			logger.Error(msg)
		}
		os.Exit(getErrorCode(err))
	}
}
