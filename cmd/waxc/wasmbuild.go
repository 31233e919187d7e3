package main

import (
	"fmt"

	"github.com/waxlang/waxc/internal/ast"
	"github.com/waxlang/waxc/internal/wasmir"
)

// buildModule walks a type-checked program's top-level `let name =
// (...) => {...};` declarations and constructs a (hand-built,
// non-codegen) WasmModule exercising them: one WASM function per
// source function, exported under its source name. Function bodies
// are not compiled from the AST: each body is a minimal, valid
// placeholder matching the declared return type, since AST→instruction
// codegen is out of this compiler's scope.
func buildModule(prog ast.Block) (*wasmir.Module, error) {
	m := &wasmir.Module{}

	for _, stmt := range prog {
		vd, ok := stmt.(*ast.VarDefStmt)
		if !ok {
			continue
		}
		fn, ok := vd.Value.(*ast.FunctionLiteral)
		if !ok {
			continue
		}

		params := make([]wasmir.NumType, len(fn.Args))
		for i, p := range fn.Args {
			nt, err := numType(p.Type)
			if err != nil {
				return nil, fmt.Errorf("function %q: parameter %q: %w", vd.Name, p.Name, err)
			}
			params[i] = nt
		}

		var results []wasmir.NumType
		retT := fn.Ret
		if retT == nil {
			retT = &ast.Primitive{Kind: ast.VoidType}
		}
		if !isVoidType(retT) {
			nt, err := numType(retT)
			if err != nil {
				return nil, fmt.Errorf("function %q: return type: %w", vd.Name, err)
			}
			results = []wasmir.NumType{nt}
		}

		typeIdx := uint32(len(m.Types))
		m.Types = append(m.Types, wasmir.FunctionType{Params: params, Results: results})

		body := placeholderBody(results)
		funcIdx := uint32(len(m.Functions))
		m.Functions = append(m.Functions, wasmir.Function{TypeIndex: typeIdx, Instructions: body})
		m.Exports = append(m.Exports, wasmir.Export{Name: vd.Name, Kind: wasmir.ExportFunc, Index: funcIdx})
	}

	return m, nil
}

func isVoidType(t ast.Type) bool {
	p, ok := t.(*ast.Primitive)
	return ok && p.Kind == ast.VoidType
}

func numType(t ast.Type) (wasmir.NumType, error) {
	p, ok := t.(*ast.Primitive)
	if !ok {
		return 0, fmt.Errorf("type %s has no WASM numeric representation", t)
	}
	switch p.Kind {
	case ast.IntType, ast.BoolType, ast.CharType:
		return wasmir.I32, nil
	case ast.FloatType:
		return wasmir.F64, nil
	default:
		return 0, fmt.Errorf("type %s has no WASM numeric representation", t)
	}
}

func placeholderBody(results []wasmir.NumType) []wasmir.Instruction {
	if len(results) == 0 {
		return nil
	}
	switch results[0] {
	case wasmir.I32:
		return []wasmir.Instruction{wasmir.I32Const{Value: 0}}
	case wasmir.I64:
		return []wasmir.Instruction{wasmir.I64Const{Value: 0}}
	case wasmir.F32:
		return []wasmir.Instruction{wasmir.F32Const{Value: 0}}
	default:
		return []wasmir.Instruction{wasmir.F64Const{Value: 0}}
	}
}
