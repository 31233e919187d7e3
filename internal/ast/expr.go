package ast

import "github.com/waxlang/waxc/internal/token"

// Expression is the tagged union of all expression node kinds.
type Expression interface {
	exprNode()
}

// IntLiteral is an integer literal.
type IntLiteral struct {
	Value int64
}

func (*IntLiteral) exprNode() {}

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Value float64
}

func (*FloatLiteral) exprNode() {}

// StringLiteral is a string literal with escapes already decoded.
type StringLiteral struct {
	Value string
}

func (*StringLiteral) exprNode() {}

// CharLiteral is a character literal with escapes already decoded.
type CharLiteral struct {
	Value byte
}

func (*CharLiteral) exprNode() {}

// BoolLiteral is a boolean literal.
type BoolLiteral struct {
	Value bool
}

func (*BoolLiteral) exprNode() {}

// NullLiteral is the literal `null`, typed as Ptr(Void) by the checker.
type NullLiteral struct{}

func (*NullLiteral) exprNode() {}

// Identifier is a bare name reference, resolved through scope.
type Identifier struct {
	Name string
}

func (*Identifier) exprNode() {}

// StructLiteral constructs a structural record value. Duplicate keys
// are rejected at parse time.
type StructLiteral struct {
	Fields map[string]Expression
	// Order preserves the source order of keys for deterministic
	// rendering and duplicate-key error reporting.
	Order []string
}

func (*StructLiteral) exprNode() {}

// ArrayLiteral constructs a fixed-length array value.
type ArrayLiteral struct {
	Elements []Expression
}

func (*ArrayLiteral) exprNode() {}

// TupleLiteral constructs a tuple value from two or more
// comma-separated expressions.
type TupleLiteral struct {
	Elements []Expression
}

func (*TupleLiteral) exprNode() {}

// FunctionLiteral is an anonymous function value.
type FunctionLiteral struct {
	Args []Param
	Ret  Type // defaults to Primitive{VoidType} when omitted
	Body Block
}

func (*FunctionLiteral) exprNode() {}

// Param is one (name, type) entry in a function literal's parameter
// list.
type Param struct {
	Name string
	Type Type
}

// BinaryOp identifies an arithmetic, comparison, or logical binary
// operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpGe
	OpGt
	OpLe
	OpLt
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpEq:
		return "=="
	case OpGe:
		return ">="
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpLt:
		return "<"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	default:
		return "<unknown op>"
	}
}

// BinaryExpr is a binary arithmetic, comparison, or logical operation.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (*BinaryExpr) exprNode() {}

// NegExpr is unary arithmetic negation (`-e`).
type NegExpr struct {
	Operand Expression
}

func (*NegExpr) exprNode() {}

// NotExpr is logical negation (`not e`).
type NotExpr struct {
	Operand Expression
}

func (*NotExpr) exprNode() {}

// RefExpr takes the address of its operand (`&e`).
type RefExpr struct {
	Operand Expression
}

func (*RefExpr) exprNode() {}

// DerefExpr dereferences a pointer operand (`*e`).
type DerefExpr struct {
	Operand Expression
}

func (*DerefExpr) exprNode() {}

// FieldExpr accesses a named struct field (`e.f`).
type FieldExpr struct {
	Target Expression
	Field  string
}

func (*FieldExpr) exprNode() {}

// IndexExpr indexes an array (`e[i]`).
type IndexExpr struct {
	Target Expression
	Index  Expression
}

func (*IndexExpr) exprNode() {}

// CallExpr invokes a function value (`e(args)`).
type CallExpr struct {
	Callee Expression
	Args   []Expression
}

func (*CallExpr) exprNode() {}

// TokenOf reports the lexical operator token for a BinaryOp, useful
// for error rendering.
func TokenOf(op BinaryOp) token.Kind {
	switch op {
	case OpAdd:
		return token.PLUS
	case OpSub:
		return token.MINUS
	case OpMul:
		return token.STAR
	case OpDiv:
		return token.SLASH
	case OpMod:
		return token.PERCENT
	case OpEq:
		return token.EQ
	case OpGe:
		return token.GE
	case OpGt:
		return token.GT
	case OpLe:
		return token.LE
	case OpLt:
		return token.LT
	case OpAnd:
		return token.AND
	case OpOr:
		return token.OR
	default:
		return token.ERROR
	}
}
