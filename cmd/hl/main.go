// Package main is the entry point for hl, a structured log viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlview/hl/internal/config"
	"github.com/hlview/hl/internal/debuglog"
	"github.com/hlview/hl/internal/profile"
	"github.com/hlview/hl/internal/version"
)

// exitError lets run() signal a specific process exit code (SPEC_FULL §6:
// "0/1/141/other") without main needing to re-derive it from error content.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}

	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func main() {
	os.Exit(mainRun())
}

func mainRun() int {
	cfg := config.NewConfig()
	debugCfg := debuglog.NewConfig()
	profCfg := profile.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "hl [flags] [file ...]",
		Short:         "hl renders structured logs as readable, styled text",
		Version:       version.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, debugCfg, profCfg, args)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	debugCfg.RegisterFlags(rootCmd.Flags())
	profCfg.RegisterFlags(rootCmd.Flags())

	if path := config.DefaultConfigPath(); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "hl: %v\n", err)

			return 1
		}
	}

	cfg.ApplyEnv()
	debugCfg.ApplyEnv()

	for _, name := range []string{
		profCfg.Flags.CPUProfile, profCfg.Flags.HeapProfile, profCfg.Flags.AllocsProfile,
		profCfg.Flags.GoroutineProfile, profCfg.Flags.ThreadcreateProfile,
		profCfg.Flags.BlockProfile, profCfg.Flags.MutexProfile,
		profCfg.Flags.MemProfileRate, profCfg.Flags.BlockProfileRate, profCfg.Flags.MutexProfileFraction,
		debugCfg.Flags.Path, debugCfg.Flags.Format,
	} {
		_ = rootCmd.Flags().MarkHidden(name)
	}

	if err := cfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "hl: register completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "hl: register completions: %v\n", err)
	}

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(os.Stderr, "hl: %v\n", ee.err)
		}

		return ee.code
	}

	fmt.Fprintf(os.Stderr, "hl: %v\n", err)

	return 1
}
