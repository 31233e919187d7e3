package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waxlang/waxc/internal/ast"
	"github.com/waxlang/waxc/internal/parser"
)

func checkProgram(t *testing.T, src string) (*Scope, ast.Type, error) {
	t.Helper()
	prog, err := parser.ParseProgram(src)
	require.NoError(t, err)
	scope := NewScope(nil)
	ret, err := CheckBlock(scope, prog)
	return scope, ret, err
}

func TestScenario1_VarDefWithArithmetic(t *testing.T) {
	scope, _, err := checkProgram(t, "let x: int = 1 + 2 * 3;")
	require.NoError(t, err)
	xt, ok := scope.LookupVar("x")
	require.True(t, ok)
	assert.True(t, isPrimKind(xt, ast.IntType))
}

func TestScenario2_NamedStructResolution(t *testing.T) {
	scope, _, err := checkProgram(t, `type Pair = { a: int, b: int }; let p: Pair = { a: 1, b: 2 };`)
	require.NoError(t, err)
	pt, ok := scope.LookupVar("p")
	require.True(t, ok)
	named, ok := pt.(*ast.Named)
	require.True(t, ok)
	assert.Equal(t, "Pair", named.Name)
	resolved, err := ResolveType(scope, pt)
	require.NoError(t, err)
	st, ok := resolved.(*ast.Struct)
	require.True(t, ok)
	assert.Len(t, st.Fields, 2)
}

func TestScenario3_FunctionLiteralAndCallType(t *testing.T) {
	prog, err := parser.ParseProgram(`let f = (x: int): int => { return x + 1; }; f(41);`)
	require.NoError(t, err)
	scope := NewScope(nil)
	_, err = CheckStmt(scope, prog[0])
	require.NoError(t, err)
	ft, ok := scope.LookupVar("f")
	require.True(t, ok)
	_, ok = ft.(*ast.Function)
	require.True(t, ok)

	callExpr := prog[1].(*ast.ExprStmt).Value
	rt, err := CheckExpr(scope, callExpr)
	require.NoError(t, err)
	assert.True(t, isPrimKind(rt, ast.IntType))
}

func TestScenario4_VoidPointerCoercionBothDirections(t *testing.T) {
	_, _, err := checkProgram(t, `let p: &void = null; let q: &int = p; let r: &void = q;`)
	require.NoError(t, err)
}

func TestVoidPointerCoercionRequiresSourceToBeAPointer(t *testing.T) {
	_, _, err := checkProgram(t, `let x: &void = 5;`)
	require.Error(t, err)
}

func TestScenario5_SizedArrayIndex(t *testing.T) {
	prog, err := parser.ParseProgram(`let a = [1, 2, 3]; a[0];`)
	require.NoError(t, err)
	scope := NewScope(nil)
	_, err = CheckStmt(scope, prog[0])
	require.NoError(t, err)
	at, ok := scope.LookupVar("a")
	require.True(t, ok)
	sa, ok := at.(*ast.SizedArray)
	require.True(t, ok)
	assert.Equal(t, int64(3), sa.Len)
	assert.True(t, isPrimKind(sa.Elem, ast.IntType))

	idxExpr := prog[1].(*ast.ExprStmt).Value
	rt, err := CheckExpr(scope, idxExpr)
	require.NoError(t, err)
	assert.True(t, isPrimKind(rt, ast.IntType))
}

func TestScenario6_IfRequiresBoolCondition(t *testing.T) {
	_, _, err := checkProgram(t, `if 1 { }`)
	require.Error(t, err)
	ce, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Unexpected, ce.Kind)
	assert.True(t, isPrimKind(ce.Got, ast.IntType))
	assert.True(t, isPrimKind(ce.Expected, ast.BoolType))
}

func TestInvariant3_ReflexiveAssignability(t *testing.T) {
	scope := NewScope(nil)
	types := []ast.Type{
		intT(), floatT(), stringT(), charT(), boolT(), voidT(),
		&ast.Ptr{Elem: intT()},
		&ast.Array{Elem: intT()},
		&ast.SizedArray{Elem: intT(), Len: 3},
		&ast.Tuple{Fields: []ast.Type{intT(), boolT()}},
		&ast.Struct{Fields: []ast.StructField{{Name: "a", Type: intT()}}},
		&ast.Function{Args: []ast.Type{intT()}, Ret: boolT()},
	}
	for _, ty := range types {
		assert.True(t, IsAssignable(scope, ty, ty), "expected %s assignable to itself", ty)
	}
}

func TestInvariant4_StructWidthSubtyping(t *testing.T) {
	scope := NewScope(nil)
	src := &ast.Struct{Fields: []ast.StructField{
		{Name: "a", Type: intT()},
		{Name: "b", Type: boolT()},
	}}
	dst := &ast.Struct{Fields: []ast.StructField{
		{Name: "a", Type: intT()},
	}}
	assert.True(t, IsAssignable(scope, src, dst))
	assert.False(t, IsAssignable(scope, dst, src))
}

func TestInvariant5_DuplicateStructLiteralKeyFailsParsing(t *testing.T) {
	_, err := parser.ParseProgram(`let p = { a: 1, a: 2 };`)
	require.Error(t, err)
}

func TestInvariant6_NonLValueAssignFails(t *testing.T) {
	_, _, err := checkProgram(t, `1 = 2;`)
	require.Error(t, err)
	ce, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Invalid, ce.Kind)
}

func TestAssign_ToIdentifierFieldIndexDeref(t *testing.T) {
	_, _, err := checkProgram(t, `
		type Pair = { a: int, b: int };
		let p: Pair = { a: 1, b: 2 };
		p.a = 9;
		let arr = [1, 2, 3];
		arr[0] = 9;
		let q: &int = &p.a;
		*q = 9;
	`)
	require.NoError(t, err)
}

func TestArithmeticRequiresEqualOperandTypes(t *testing.T) {
	_, _, err := checkProgram(t, `1 + 1.0;`)
	require.Error(t, err)
	ce, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Unexpected, ce.Kind)
}

func TestModRequiresInt(t *testing.T) {
	_, _, err := checkProgram(t, `1.0 % 2;`)
	require.Error(t, err)
}

func TestLogicalRequiresBool(t *testing.T) {
	_, _, err := checkProgram(t, `1 and 2;`)
	require.Error(t, err)
}

func TestEmptyArrayLiteralRejected(t *testing.T) {
	_, _, err := checkProgram(t, `let a = [];`)
	require.Error(t, err)
}

func TestUndefinedIdentifierIsInvalidIdentifier(t *testing.T) {
	_, _, err := checkProgram(t, `y;`)
	require.Error(t, err)
	ce, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, InvalidIdentifier, ce.Kind)
	assert.Equal(t, "y", ce.Name)
}

func TestBlockConflictingReturnTypesFail(t *testing.T) {
	scope := NewScope(nil)
	block := ast.Block{
		&ast.IfStmt{
			Cond: &ast.BoolLiteral{Value: true},
			Body: ast.Block{&ast.ReturnStmt{Value: &ast.IntLiteral{Value: 1}}},
			Else: ast.Block{&ast.ReturnStmt{Value: &ast.BoolLiteral{Value: true}}},
		},
	}
	_, err := CheckBlock(scope, block)
	require.Error(t, err)
}

func TestEmptyBlockInfersVoid(t *testing.T) {
	scope := NewScope(nil)
	ret, err := CheckBlock(scope, ast.Block{})
	require.NoError(t, err)
	assert.True(t, isPrimKind(ret, ast.VoidType))
}
