// Package ast defines the tagged-union type, expression, and statement
// nodes produced by the parser. Traversal is done by recursive
// case-analysis functions (in the parser and checker), not a visitor
// hierarchy.
package ast

import "fmt"

// Type is the structural type grammar: primitives, pointers, arrays,
// tuples, structural records, functions, and named aliases.
type Type interface {
	typeNode()
	String() string
}

// Primitive is one of the built-in scalar/void types.
type Primitive struct {
	Kind PrimitiveKind
}

// PrimitiveKind enumerates the built-in scalar/void types.
type PrimitiveKind int

const (
	IntType PrimitiveKind = iota
	FloatType
	StringType
	CharType
	BoolType
	VoidType
)

func (k PrimitiveKind) String() string {
	switch k {
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case CharType:
		return "char"
	case BoolType:
		return "bool"
	case VoidType:
		return "void"
	default:
		return "<unknown primitive>"
	}
}

func (p *Primitive) typeNode()     {}
func (p *Primitive) String() string { return p.Kind.String() }

// Named is a nominal alias resolved through the enclosing scope's type
// table.
type Named struct {
	Name string
}

func (n *Named) typeNode()      {}
func (n *Named) String() string { return n.Name }

// Ptr is a pointer to an element type.
type Ptr struct {
	Elem Type
}

func (p *Ptr) typeNode()      {}
func (p *Ptr) String() string { return "&" + p.Elem.String() }

// Array is an unsized array of an element type.
type Array struct {
	Elem Type
}

func (a *Array) typeNode()      {}
func (a *Array) String() string { return a.Elem.String() + "[]" }

// SizedArray is a fixed-length array of an element type. Len must be
// non-negative.
type SizedArray struct {
	Elem Type
	Len  int64
}

func (a *SizedArray) typeNode()      {}
func (a *SizedArray) String() string { return fmt.Sprintf("%s[%d]", a.Elem.String(), a.Len) }

// Tuple is a fixed-length, ordered, heterogeneous product type.
type Tuple struct {
	Fields []Type
}

func (tp *Tuple) typeNode() {}
func (tp *Tuple) String() string {
	s := "("
	for i, f := range tp.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.String()
	}
	return s + ")"
}

// StructField is one named field of a Struct type.
type StructField struct {
	Name string
	Type Type
}

// Struct is an unordered structural record type. Field names must be
// unique; this is enforced at parse time.
type Struct struct {
	Fields []StructField
}

func (s *Struct) typeNode() {}
func (s *Struct) String() string {
	out := "{"
	for i, f := range s.Fields {
		if i > 0 {
			out += ", "
		}
		out += f.Name + ": " + f.Type.String()
	}
	return out + "}"
}

// FieldType looks up a struct field's type by name.
func (s *Struct) FieldType(name string) (Type, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Function is a function type: an ordered parameter-type list and a
// return type.
type Function struct {
	Args []Type
	Ret  Type
}

func (f *Function) typeNode() {}
func (f *Function) String() string {
	out := "("
	for i, a := range f.Args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ") => " + f.Ret.String()
}
