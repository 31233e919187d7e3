package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/waxlang/waxc/internal/diagnostics"
	"github.com/waxlang/waxc/internal/telemetry"
	"github.com/waxlang/waxc/internal/wasmir"
)

var (
	flagOut      string
	flagDumpAST  bool
	flagDumpIR   bool
)

var buildCmd = &cobra.Command{
	Use:   "build <file>",
	Short: "Compile a source file to a WASM 1.0 binary",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output .wasm path (default: <file> with .wasm extension)")
	buildCmd.Flags().BoolVar(&flagDumpAST, "dump-ast", false, "pretty-print the parsed AST to stderr")
	buildCmd.Flags().BoolVar(&flagDumpIR, "dump-wasm-ir", false, "pretty-print the constructed WasmModule IR to stderr")
	buildCmd.Flags().StringVar(&flagWasmABI, "wasm-abi", "", `target WASM ABI version, only "1.0" is supported`)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := validateWasmABI(flagWasmABI); err != nil {
		return err
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	logger, shutdown, err := telemetry.Init(cmd.Context(), telemetry.Config{
		ServiceName:  "waxc-build",
		TraceEnabled: flagTrace,
		Verbose:      flagVerbose,
	})
	if err != nil {
		return err
	}
	defer shutdown(cmd.Context())

	result, err := runPipeline(cmd.Context(), logger, string(src))
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), diagnostics.Render(err))
		return err
	}

	if flagDumpAST {
		spew.Fdump(cmd.ErrOrStderr(), result.Program)
	}

	_, endEmit := telemetry.Phase(cmd.Context(), "emit")
	module, err := buildModule(result.Program)
	if err != nil {
		endEmit()
		return err
	}

	if flagDumpIR {
		spew.Fdump(cmd.ErrOrStderr(), module)
	}

	out, err := wasmir.Encode(module)
	endEmit()
	if err != nil {
		logger.Error("emit failed", zap.Error(err))
		return err
	}

	outPath := flagOut
	if outPath == "" {
		outPath = withExt(args[0], ".wasm")
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}

	logger.Info("wrote wasm module", zap.String("path", outPath), zap.Int("bytes", len(out)))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", outPath, humanize.Bytes(uint64(len(out))))
	return nil
}

func withExt(path, ext string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i] + ext
		}
	}
	return path + ext
}
