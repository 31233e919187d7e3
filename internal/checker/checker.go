package checker

import "github.com/waxlang/waxc/internal/ast"

func intT() ast.Type    { return &ast.Primitive{Kind: ast.IntType} }
func floatT() ast.Type  { return &ast.Primitive{Kind: ast.FloatType} }
func stringT() ast.Type { return &ast.Primitive{Kind: ast.StringType} }
func charT() ast.Type   { return &ast.Primitive{Kind: ast.CharType} }
func boolT() ast.Type   { return &ast.Primitive{Kind: ast.BoolType} }
func voidT() ast.Type   { return &ast.Primitive{Kind: ast.VoidType} }

func isPrimKind(t ast.Type, k ast.PrimitiveKind) bool {
	p, ok := t.(*ast.Primitive)
	return ok && p.Kind == k
}

// isLValue reports whether e is one of the l-value forms: identifier,
// deref, index, or field access.
func isLValue(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.DerefExpr, *ast.IndexExpr, *ast.FieldExpr:
		return true
	default:
		return false
	}
}

// CheckExpr infers the type of e within scope.
func CheckExpr(scope *Scope, e ast.Expression) (ast.Type, error) {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return intT(), nil
	case *ast.FloatLiteral:
		return floatT(), nil
	case *ast.StringLiteral:
		return stringT(), nil
	case *ast.CharLiteral:
		return charT(), nil
	case *ast.BoolLiteral:
		return boolT(), nil
	case *ast.NullLiteral:
		return &ast.Ptr{Elem: voidT()}, nil
	case *ast.Identifier:
		t, ok := scope.LookupVar(v.Name)
		if !ok {
			return nil, errInvalidIdentifier(v.Name)
		}
		return t, nil
	case *ast.BinaryExpr:
		return checkBinary(scope, v)
	case *ast.NegExpr:
		t, err := CheckExpr(scope, v.Operand)
		if err != nil {
			return nil, err
		}
		if !isPrimKind(t, ast.IntType) && !isPrimKind(t, ast.FloatType) {
			return nil, errInvalid(t)
		}
		return t, nil
	case *ast.NotExpr:
		t, err := CheckExpr(scope, v.Operand)
		if err != nil {
			return nil, err
		}
		if !isPrimKind(t, ast.BoolType) {
			return nil, errUnexpected(t, boolT())
		}
		return boolT(), nil
	case *ast.RefExpr:
		t, err := CheckExpr(scope, v.Operand)
		if err != nil {
			return nil, err
		}
		return &ast.Ptr{Elem: t}, nil
	case *ast.DerefExpr:
		t, err := CheckExpr(scope, v.Operand)
		if err != nil {
			return nil, err
		}
		rt, err := ResolveType(scope, t)
		if err != nil {
			return nil, err
		}
		p, ok := rt.(*ast.Ptr)
		if !ok {
			return nil, errInvalid(t)
		}
		return p.Elem, nil
	case *ast.IndexExpr:
		return checkIndex(scope, v)
	case *ast.FieldExpr:
		return checkField(scope, v)
	case *ast.CallExpr:
		return checkCall(scope, v)
	case *ast.ArrayLiteral:
		return checkArrayLiteral(scope, v)
	case *ast.TupleLiteral:
		fields := make([]ast.Type, len(v.Elements))
		for i, el := range v.Elements {
			t, err := CheckExpr(scope, el)
			if err != nil {
				return nil, err
			}
			fields[i] = t
		}
		return &ast.Tuple{Fields: fields}, nil
	case *ast.StructLiteral:
		fields := make([]ast.StructField, len(v.Order))
		for i, name := range v.Order {
			t, err := CheckExpr(scope, v.Fields[name])
			if err != nil {
				return nil, err
			}
			fields[i] = ast.StructField{Name: name, Type: t}
		}
		return &ast.Struct{Fields: fields}, nil
	case *ast.FunctionLiteral:
		return checkFunctionLiteral(scope, v)
	default:
		return nil, errInvalid(nil)
	}
}

func checkBinary(scope *Scope, b *ast.BinaryExpr) (ast.Type, error) {
	lt, err := CheckExpr(scope, b.Left)
	if err != nil {
		return nil, err
	}
	rt, err := CheckExpr(scope, b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.OpAnd, ast.OpOr:
		if !isPrimKind(lt, ast.BoolType) {
			return nil, errUnexpected(lt, boolT())
		}
		if !isPrimKind(rt, ast.BoolType) {
			return nil, errUnexpected(rt, boolT())
		}
		return boolT(), nil
	case ast.OpEq:
		if !typesEqual(lt, rt) {
			return nil, errUnexpected(rt, lt)
		}
		return boolT(), nil
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !typesEqual(lt, rt) {
			return nil, errUnexpected(rt, lt)
		}
		if !isArithmeticType(lt) {
			return nil, errInvalid(lt)
		}
		return boolT(), nil
	case ast.OpMod:
		if !isPrimKind(lt, ast.IntType) || !isPrimKind(rt, ast.IntType) {
			return nil, errUnexpected(rt, intT())
		}
		return intT(), nil
	default: // + - * /
		if !typesEqual(lt, rt) {
			return nil, errUnexpected(rt, lt)
		}
		if !isArithmeticType(lt) {
			return nil, errInvalid(lt)
		}
		return lt, nil
	}
}

func isArithmeticType(t ast.Type) bool {
	return isPrimKind(t, ast.IntType) || isPrimKind(t, ast.FloatType) || isPrimKind(t, ast.CharType)
}

func checkIndex(scope *Scope, idx *ast.IndexExpr) (ast.Type, error) {
	it, err := CheckExpr(scope, idx.Index)
	if err != nil {
		return nil, err
	}
	if !isPrimKind(it, ast.IntType) {
		return nil, errUnexpected(it, intT())
	}
	tt, err := CheckExpr(scope, idx.Target)
	if err != nil {
		return nil, err
	}
	rt, err := ResolveType(scope, tt)
	if err != nil {
		return nil, err
	}
	switch v := rt.(type) {
	case *ast.Array:
		return v.Elem, nil
	case *ast.SizedArray:
		return v.Elem, nil
	default:
		return nil, errInvalid(tt)
	}
}

func checkField(scope *Scope, f *ast.FieldExpr) (ast.Type, error) {
	tt, err := CheckExpr(scope, f.Target)
	if err != nil {
		return nil, err
	}
	rt, err := ResolveType(scope, tt)
	if err != nil {
		return nil, err
	}
	st, ok := rt.(*ast.Struct)
	if !ok {
		return nil, errInvalid(tt)
	}
	ft, ok := st.FieldType(f.Field)
	if !ok {
		return nil, errInvalidIdentifier(f.Field)
	}
	return ft, nil
}

func checkCall(scope *Scope, c *ast.CallExpr) (ast.Type, error) {
	ct, err := CheckExpr(scope, c.Callee)
	if err != nil {
		return nil, err
	}
	rt, err := ResolveType(scope, ct)
	if err != nil {
		return nil, err
	}
	fn, ok := rt.(*ast.Function)
	if !ok {
		return nil, errInvalid(ct)
	}
	if len(fn.Args) != len(c.Args) {
		return nil, errInvalid(ct)
	}
	for i, arg := range c.Args {
		at, err := CheckExpr(scope, arg)
		if err != nil {
			return nil, err
		}
		if !IsAssignable(scope, at, fn.Args[i]) {
			return nil, errUnexpected(at, fn.Args[i])
		}
	}
	return fn.Ret, nil
}

func checkArrayLiteral(scope *Scope, a *ast.ArrayLiteral) (ast.Type, error) {
	if len(a.Elements) == 0 {
		return nil, errInvalid(nil)
	}
	elem, err := CheckExpr(scope, a.Elements[0])
	if err != nil {
		return nil, err
	}
	for _, e := range a.Elements[1:] {
		t, err := CheckExpr(scope, e)
		if err != nil {
			return nil, err
		}
		if !typesEqual(t, elem) {
			return nil, errUnexpected(t, elem)
		}
	}
	return &ast.SizedArray{Elem: elem, Len: int64(len(a.Elements))}, nil
}

func checkFunctionLiteral(scope *Scope, fn *ast.FunctionLiteral) (ast.Type, error) {
	child := NewScope(scope)
	args := make([]ast.Type, len(fn.Args))
	for i, p := range fn.Args {
		child.DefineVar(p.Name, p.Type)
		args[i] = p.Type
	}
	bodyRet, err := CheckBlock(child, fn.Body)
	if err != nil {
		return nil, err
	}
	declRet := fn.Ret
	if declRet == nil {
		declRet = voidT()
	}
	if !typesEqual(bodyRet, declRet) {
		return nil, errUnexpected(bodyRet, declRet)
	}
	return &ast.Function{Args: args, Ret: declRet}, nil
}

// CheckStmt type-checks a single statement against scope, returning
// the type contributed by a Return statement (nil for statements that
// contribute none).
func CheckStmt(scope *Scope, s ast.Statement) (ast.Type, error) {
	switch v := s.(type) {
	case *ast.ImportStmt:
		return nil, nil
	case *ast.TypeDefStmt:
		// Bind name -> raw type first so self-reference resolves,
		// then rebind to the fully resolved type.
		scope.DefineType(v.Name, v.Type)
		resolved, err := ResolveType(scope, v.Type)
		if err != nil {
			return nil, err
		}
		scope.DefineType(v.Name, resolved)
		return nil, nil
	case *ast.VarDefStmt:
		vt, err := CheckExpr(scope, v.Value)
		if err != nil {
			return nil, err
		}
		if v.Type != nil {
			if !IsAssignable(scope, vt, v.Type) {
				return nil, errUnexpected(vt, v.Type)
			}
			scope.DefineVar(v.Name, v.Type)
		} else {
			scope.DefineVar(v.Name, vt)
		}
		return nil, nil
	case *ast.AssignStmt:
		if !isLValue(v.Lhs) {
			return nil, errInvalid(nil)
		}
		lt, err := CheckExpr(scope, v.Lhs)
		if err != nil {
			return nil, err
		}
		rt, err := CheckExpr(scope, v.Rhs)
		if err != nil {
			return nil, err
		}
		if !IsAssignable(scope, rt, lt) {
			return nil, errUnexpected(rt, lt)
		}
		return nil, nil
	case *ast.IfStmt:
		ct, err := CheckExpr(scope, v.Cond)
		if err != nil {
			return nil, err
		}
		if !isPrimKind(ct, ast.BoolType) {
			return nil, errUnexpected(ct, boolT())
		}
		bodyRet, err := blockReturn(scope, v.Body)
		if err != nil {
			return nil, err
		}
		var elseRet ast.Type
		switch e := v.Else.(type) {
		case nil:
		case ast.Block:
			elseRet, err = blockReturn(scope, e)
			if err != nil {
				return nil, err
			}
		case *ast.IfStmt:
			elseRet, err = CheckStmt(scope, e)
			if err != nil {
				return nil, err
			}
		}
		return mergeReturn(bodyRet, elseRet)
	case *ast.WhileStmt:
		ct, err := CheckExpr(scope, v.Cond)
		if err != nil {
			return nil, err
		}
		if !isPrimKind(ct, ast.BoolType) {
			return nil, errUnexpected(ct, boolT())
		}
		return blockReturn(scope, v.Body)
	case *ast.LoopStmt:
		return blockReturn(scope, v.Body)
	case *ast.ReturnStmt:
		if v.Value == nil {
			return voidT(), nil
		}
		return CheckExpr(scope, v.Value)
	case *ast.BreakStmt, *ast.ContinueStmt:
		return nil, nil
	case *ast.ExprStmt:
		_, err := CheckExpr(scope, v.Value)
		return nil, err
	default:
		return nil, errInvalid(nil)
	}
}

// mergeReturn combines two (possibly nil) contributed return types,
// failing if both are non-nil and disagree.
func mergeReturn(a, b ast.Type) (ast.Type, error) {
	if a == nil {
		return b, nil
	}
	if b == nil {
		return a, nil
	}
	if !typesEqual(a, b) {
		return nil, errUnexpected(b, a)
	}
	return a, nil
}

// CheckBlock type-checks every statement in order within scope and
// returns the block's unique inferred return type (Void if no
// statement contributes one). Conflicting contributions fail.
func CheckBlock(scope *Scope, block ast.Block) (ast.Type, error) {
	ret, err := blockReturn(scope, block)
	if ret == nil && err == nil {
		ret = voidT()
	}
	return ret, err
}

// blockReturn is CheckBlock without the Void default: it returns nil
// when no statement in block contributes a return type.
func blockReturn(scope *Scope, block ast.Block) (ast.Type, error) {
	var ret ast.Type
	for _, stmt := range block {
		contributed, err := CheckStmt(scope, stmt)
		if err != nil {
			return nil, err
		}
		if contributed == nil {
			continue
		}
		ret, err = mergeReturn(ret, contributed)
		if err != nil {
			return nil, err
		}
	}
	return ret, nil
}
