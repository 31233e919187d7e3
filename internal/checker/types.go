package checker

import "github.com/waxlang/waxc/internal/ast"

// ResolveType canonicalizes t by resolving Named(n) against scope,
// recursively resolving composite fields. It fails with
// InvalidIdentifier(n) if a named type is undefined.
//
// Named aliases may transitively reference themselves (e.g.
// "type A = A;"); this resolver does not detect such cycles and will
// recurse until the host stack overflows. See DESIGN.md's Open
// Question entries for why this is left undetected.
func ResolveType(scope *Scope, t ast.Type) (ast.Type, error) {
	switch v := t.(type) {
	case *ast.Named:
		raw, ok := scope.LookupType(v.Name)
		if !ok {
			return nil, errInvalidIdentifier(v.Name)
		}
		return ResolveType(scope, raw)
	case *ast.Ptr:
		elem, err := ResolveType(scope, v.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.Ptr{Elem: elem}, nil
	case *ast.Array:
		elem, err := ResolveType(scope, v.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.Array{Elem: elem}, nil
	case *ast.SizedArray:
		elem, err := ResolveType(scope, v.Elem)
		if err != nil {
			return nil, err
		}
		return &ast.SizedArray{Elem: elem, Len: v.Len}, nil
	case *ast.Tuple:
		fields := make([]ast.Type, len(v.Fields))
		for i, f := range v.Fields {
			rf, err := ResolveType(scope, f)
			if err != nil {
				return nil, err
			}
			fields[i] = rf
		}
		return &ast.Tuple{Fields: fields}, nil
	case *ast.Struct:
		fields := make([]ast.StructField, len(v.Fields))
		for i, f := range v.Fields {
			rf, err := ResolveType(scope, f.Type)
			if err != nil {
				return nil, err
			}
			fields[i] = ast.StructField{Name: f.Name, Type: rf}
		}
		return &ast.Struct{Fields: fields}, nil
	case *ast.Function:
		args := make([]ast.Type, len(v.Args))
		for i, a := range v.Args {
			ra, err := ResolveType(scope, a)
			if err != nil {
				return nil, err
			}
			args[i] = ra
		}
		ret, err := ResolveType(scope, v.Ret)
		if err != nil {
			return nil, err
		}
		return &ast.Function{Args: args, Ret: ret}, nil
	default:
		// Primitive: nothing to resolve.
		return t, nil
	}
}

// typesEqual is structural equality over resolved types (no Named on
// either side is assumed here; callers resolve first).
func typesEqual(a, b ast.Type) bool {
	switch av := a.(type) {
	case *ast.Primitive:
		bv, ok := b.(*ast.Primitive)
		return ok && av.Kind == bv.Kind
	case *ast.Named:
		bv, ok := b.(*ast.Named)
		return ok && av.Name == bv.Name
	case *ast.Ptr:
		bv, ok := b.(*ast.Ptr)
		return ok && typesEqual(av.Elem, bv.Elem)
	case *ast.Array:
		bv, ok := b.(*ast.Array)
		return ok && typesEqual(av.Elem, bv.Elem)
	case *ast.SizedArray:
		bv, ok := b.(*ast.SizedArray)
		return ok && av.Len == bv.Len && typesEqual(av.Elem, bv.Elem)
	case *ast.Tuple:
		bv, ok := b.(*ast.Tuple)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if !typesEqual(av.Fields[i], bv.Fields[i]) {
				return false
			}
		}
		return true
	case *ast.Struct:
		bv, ok := b.(*ast.Struct)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for _, f := range av.Fields {
			bt, ok := bv.FieldType(f.Name)
			if !ok || !typesEqual(f.Type, bt) {
				return false
			}
		}
		return true
	case *ast.Function:
		bv, ok := b.(*ast.Function)
		if !ok || len(av.Args) != len(bv.Args) {
			return false
		}
		for i := range av.Args {
			if !typesEqual(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return typesEqual(av.Ret, bv.Ret)
	default:
		return false
	}
}

func isVoid(t ast.Type) bool {
	p, ok := t.(*ast.Primitive)
	return ok && p.Kind == ast.VoidType
}

// IsAssignable implements the assignment/argument compatibility
// relation described by the checker's structural subtyping rules. It
// is pure: it never mutates scope.
//
// Struct width subtyping is one-directional: src may carry fields that
// dst lacks, but every field of dst must be present in src.
func IsAssignable(scope *Scope, src, dst ast.Type) bool {
	src = followNamed(scope, src)
	dst = followNamed(scope, dst)
	if src == nil || dst == nil {
		return false
	}

	if typesEqual(src, dst) {
		return true
	}

	switch d := dst.(type) {
	case *ast.Ptr:
		if s, ok := src.(*ast.Ptr); ok {
			if isVoid(d.Elem) || isVoid(s.Elem) {
				return true
			}
			return IsAssignable(scope, s.Elem, d.Elem)
		}
		return false
	case *ast.Array:
		switch s := src.(type) {
		case *ast.SizedArray:
			return IsAssignable(scope, s.Elem, d.Elem)
		case *ast.Array:
			return IsAssignable(scope, s.Elem, d.Elem)
		default:
			return false
		}
	case *ast.SizedArray:
		if s, ok := src.(*ast.SizedArray); ok {
			return s.Len == d.Len && IsAssignable(scope, s.Elem, d.Elem)
		}
		return false
	case *ast.Struct:
		s, ok := src.(*ast.Struct)
		if !ok {
			return false
		}
		for _, df := range d.Fields {
			sf, ok := s.FieldType(df.Name)
			if !ok || !IsAssignable(scope, sf, df.Type) {
				return false
			}
		}
		return true
	case *ast.Tuple:
		s, ok := src.(*ast.Tuple)
		if !ok || len(s.Fields) != len(d.Fields) {
			return false
		}
		for i := range d.Fields {
			if !IsAssignable(scope, s.Fields[i], d.Fields[i]) {
				return false
			}
		}
		return true
	case *ast.Function:
		s, ok := src.(*ast.Function)
		if !ok || len(s.Args) != len(d.Args) {
			return false
		}
		for i := range d.Args {
			if !IsAssignable(scope, s.Args[i], d.Args[i]) {
				return false
			}
		}
		return IsAssignable(scope, s.Ret, d.Ret)
	default:
		return false
	}
}

// followNamed resolves a Named type through the scope for the
// duration of a single IsAssignable call; unresolvable names yield
// nil (treated as non-assignable by the caller).
func followNamed(scope *Scope, t ast.Type) ast.Type {
	for {
		n, ok := t.(*ast.Named)
		if !ok {
			return t
		}
		raw, ok := scope.LookupType(n.Name)
		if !ok {
			return nil
		}
		t = raw
	}
}
