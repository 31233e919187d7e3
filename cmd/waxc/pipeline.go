package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/waxlang/waxc/internal/ast"
	"github.com/waxlang/waxc/internal/checker"
	"github.com/waxlang/waxc/internal/parser"
	"github.com/waxlang/waxc/internal/telemetry"
)

// pipelineResult holds everything a build/check run produces, so
// later stages (emit) and dump flags can inspect intermediate state.
type pipelineResult struct {
	Program  ast.Block
	Scope    *checker.Scope
	RetType  ast.Type
}

// runPipeline lexes (implicitly, inside ParseProgram), parses, and
// type-checks src, logging and wrapping the parse and type-check
// phases each in its own trace span; lexing has no span or log line
// of its own.
func runPipeline(ctx context.Context, logger *zap.Logger, src string) (*pipelineResult, error) {
	_, endParse := telemetry.Phase(ctx, "parse")
	logger.Debug("parsing")
	prog, err := parser.ParseProgram(src)
	endParse()
	if err != nil {
		logger.Error("parse failed", zap.Error(err))
		return nil, err
	}
	logger.Info("parsed", zap.Int("statements", len(prog)))

	_, endCheck := telemetry.Phase(ctx, "typecheck")
	logger.Debug("type-checking")
	scope := checker.NewScope(nil)
	retType, err := checker.CheckBlock(scope, prog)
	endCheck()
	if err != nil {
		logger.Error("type-check failed", zap.Error(err))
		return nil, err
	}
	logger.Info("type-checked", zap.String("inferred_return_type", retType.String()))

	return &pipelineResult{Program: prog, Scope: scope, RetType: retType}, nil
}
