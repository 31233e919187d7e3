// Command waxc is the compiler driver: it lexes, parses, and
// type-checks a source file and, for `build`, emits a WASM 1.0
// binary.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagVerbose bool
	flagTrace   bool
	flagWasmABI string
)

var rootCmd = &cobra.Command{
	Use:           "waxc",
	Short:         "waxc compiles the source language to WebAssembly",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable development-mode logging")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false, "enable OpenTelemetry tracing spans")

	rootCmd.AddCommand(buildCmd, checkCmd, tokensCmd, watchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
