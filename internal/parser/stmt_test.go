package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waxlang/waxc/internal/ast"
)

func TestParseProgram_VarDefWithAnnotation(t *testing.T) {
	prog, err := ParseProgram("let x: int = 1 + 2 * 3;")
	require.NoError(t, err)
	require.Len(t, prog, 1)
	vd, ok := prog[0].(*ast.VarDefStmt)
	require.True(t, ok)
	assert.Equal(t, "x", vd.Name)
	_, ok = vd.Type.(*ast.Primitive)
	assert.True(t, ok)
	add, ok := vd.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)
}

func TestParseProgram_TypeDefAndStructLiteral(t *testing.T) {
	prog, err := ParseProgram(`type Pair = { a: int, b: int }; let p: Pair = { a: 1, b: 2 };`)
	require.NoError(t, err)
	require.Len(t, prog, 2)
	td, ok := prog[0].(*ast.TypeDefStmt)
	require.True(t, ok)
	assert.Equal(t, "Pair", td.Name)
	vd, ok := prog[1].(*ast.VarDefStmt)
	require.True(t, ok)
	named, ok := vd.Type.(*ast.Named)
	require.True(t, ok)
	assert.Equal(t, "Pair", named.Name)
}

func TestParseProgram_Import(t *testing.T) {
	prog, err := ParseProgram(`import foo as bar, baz from "mod.wax";`)
	require.NoError(t, err)
	require.Len(t, prog, 1)
	im, ok := prog[0].(*ast.ImportStmt)
	require.True(t, ok)
	assert.Equal(t, "mod.wax", im.Path)
	require.Len(t, im.Imports, 2)
	assert.Equal(t, "bar", im.Imports[0].Alias)
	assert.Equal(t, "baz", im.Imports[1].Alias) // no "as" -> alias == name
}

func TestParseProgram_WhileLoopBreakContinue(t *testing.T) {
	prog, err := ParseProgram(`while x { break; } loop { continue; }`)
	require.NoError(t, err)
	require.Len(t, prog, 2)
	ws, ok := prog[0].(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, ws.Body, 1)
	_, ok = ws.Body[0].(*ast.BreakStmt)
	assert.True(t, ok)
	ls, ok := prog[1].(*ast.LoopStmt)
	require.True(t, ok)
	_, ok = ls.Body[0].(*ast.ContinueStmt)
	assert.True(t, ok)
}

func TestParseProgram_IfElseIfChainIsNestedIfInElseSlot(t *testing.T) {
	prog, err := ParseProgram(`if a { } else if b { } else { }`)
	require.NoError(t, err)
	require.Len(t, prog, 1)
	top, ok := prog[0].(*ast.IfStmt)
	require.True(t, ok)
	nested, ok := top.Else.(*ast.IfStmt)
	require.True(t, ok)
	_, ok = nested.Else.(ast.Block)
	assert.True(t, ok)
}

func TestParseProgram_ReturnWithAndWithoutValue(t *testing.T) {
	prog, err := ParseProgram(`return 1; return;`)
	require.NoError(t, err)
	require.Len(t, prog, 2)
	r1, ok := prog[0].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.NotNil(t, r1.Value)
	r2, ok := prog[1].(*ast.ReturnStmt)
	require.True(t, ok)
	assert.Nil(t, r2.Value)
}

func TestParseProgram_CompoundAssignDesugars(t *testing.T) {
	prog, err := ParseProgram(`x += 1;`)
	require.NoError(t, err)
	require.Len(t, prog, 1)
	as, ok := prog[0].(*ast.AssignStmt)
	require.True(t, ok)
	_, ok = as.Lhs.(*ast.Identifier)
	require.True(t, ok)
	rhs, ok := as.Rhs.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, rhs.Op)
	lhsClone, ok := rhs.Left.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "x", lhsClone.Name)
}

func TestParseProgram_PlainAssign(t *testing.T) {
	prog, err := ParseProgram(`x = 1;`)
	require.NoError(t, err)
	as, ok := prog[0].(*ast.AssignStmt)
	require.True(t, ok)
	_, ok = as.Rhs.(*ast.IntLiteral)
	assert.True(t, ok)
}

func TestParseProgram_ExpressionStatement(t *testing.T) {
	prog, err := ParseProgram(`f(1);`)
	require.NoError(t, err)
	es, ok := prog[0].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = es.Value.(*ast.CallExpr)
	assert.True(t, ok)
}

func TestParseProgram_UnexpectedEOFSurfaces(t *testing.T) {
	_, err := ParseProgram(`let x = 1`)
	require.Error(t, err)
	pe, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, UnexpectedEOF, pe.Kind)
}

func TestParseProgram_UnexpectedTokenSurfaces(t *testing.T) {
	_, err := ParseProgram(`let 5 = 1;`)
	require.Error(t, err)
	pe, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, UnexpectedToken, pe.Kind)
}
