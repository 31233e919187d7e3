package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waxlang/waxc/internal/ast"
	"github.com/waxlang/waxc/internal/lexer"
)

func parseTypeString(t *testing.T, src string) ast.Type {
	t.Helper()
	p := New(lexer.New(src))
	typ, err := p.ParseType()
	require.NoError(t, err)
	return typ
}

func TestParseType_Primitives(t *testing.T) {
	tests := []struct {
		in   string
		want ast.PrimitiveKind
	}{
		{"int", ast.IntType},
		{"float", ast.FloatType},
		{"string", ast.StringType},
		{"bool", ast.BoolType},
		{"char", ast.CharType},
		{"void", ast.VoidType},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			typ := parseTypeString(t, tt.in)
			prim, ok := typ.(*ast.Primitive)
			require.True(t, ok)
			assert.Equal(t, tt.want, prim.Kind)
		})
	}
}

func TestParseType_PointerAndArraySuffixes(t *testing.T) {
	typ := parseTypeString(t, "&int[5][]")
	outer, ok := typ.(*ast.Array)
	require.True(t, ok)
	sized, ok := outer.Elem.(*ast.SizedArray)
	require.True(t, ok)
	assert.Equal(t, int64(5), sized.Len)
	ptr, ok := sized.Elem.(*ast.Ptr)
	require.True(t, ok)
	_, ok = ptr.Elem.(*ast.Primitive)
	assert.True(t, ok)
}

func TestParseType_Named(t *testing.T) {
	typ := parseTypeString(t, "Pair")
	named, ok := typ.(*ast.Named)
	require.True(t, ok)
	assert.Equal(t, "Pair", named.Name)
}

func TestParseType_TupleVsFunctionDisambiguation(t *testing.T) {
	tuple := parseTypeString(t, "(int, string)")
	tp, ok := tuple.(*ast.Tuple)
	require.True(t, ok)
	assert.Len(t, tp.Fields, 2)

	fn := parseTypeString(t, "(int, string) => bool")
	ft, ok := fn.(*ast.Function)
	require.True(t, ok)
	assert.Len(t, ft.Args, 2)
	_, isBool := ft.Ret.(*ast.Primitive)
	assert.True(t, isBool)
}

func TestParseType_EmptyTupleIsZeroArgFunctionHead(t *testing.T) {
	fn := parseTypeString(t, "() => void")
	ft, ok := fn.(*ast.Function)
	require.True(t, ok)
	assert.Empty(t, ft.Args)
}

func TestParseType_StructUniqueFields(t *testing.T) {
	typ := parseTypeString(t, "{ a: int, b: int }")
	st, ok := typ.(*ast.Struct)
	require.True(t, ok)
	assert.Len(t, st.Fields, 2)
}

func TestParseType_StructDuplicateFieldRejected(t *testing.T) {
	p := New(lexer.New("{ a: int, a: int }"))
	_, err := p.ParseType()
	require.Error(t, err)
	pe, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Unknown, pe.Kind)
}
