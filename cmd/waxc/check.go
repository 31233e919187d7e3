package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waxlang/waxc/internal/diagnostics"
	"github.com/waxlang/waxc/internal/telemetry"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Lex, parse, and type-check a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	logger, shutdown, err := telemetry.Init(cmd.Context(), telemetry.Config{
		ServiceName:  "waxc-check",
		TraceEnabled: flagTrace,
		Verbose:      flagVerbose,
	})
	if err != nil {
		return err
	}
	defer shutdown(cmd.Context())

	if _, err := runPipeline(cmd.Context(), logger, string(src)); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), diagnostics.Render(err))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "ok")
	return nil
}
