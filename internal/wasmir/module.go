// Package wasmir defines an in-memory WebAssembly 1.0 module IR and
// the byte-exact encoder that turns it into a `.wasm` binary. The IR
// is constructed by hand from a checked AST; it is not itself a
// code-generation target.
package wasmir

// NumType is a WASM 1.0 value type.
type NumType byte

const (
	I32 NumType = 0x7f
	I64 NumType = 0x7e
	F32 NumType = 0x7d
	F64 NumType = 0x7c
)

// FunctionType is an entry of the type section: a parameter vector
// and a result vector (WASM 1.0 allows at most one result).
type FunctionType struct {
	Params  []NumType
	Results []NumType
}

// ImportKind distinguishes the importable entity kinds this emitter
// supports.
type ImportKind int

const (
	ImportFunc ImportKind = iota
	ImportMemory
)

// Import is an entry of the import section.
type Import struct {
	Module string
	Name   string
	Kind   ImportKind

	// ImportFunc:
	TypeIndex uint32

	// ImportMemory:
	MemMin uint32
	MemMax uint32 // only meaningful when MemHasMax is true
	MemHasMax bool
}

// ExportKind distinguishes the exportable entity kinds this emitter
// supports.
type ExportKind int

const (
	ExportFunc ExportKind = iota
)

// Export is an entry of the export section.
type Export struct {
	Name  string
	Kind  ExportKind
	Index uint32
}

// Local is one function-local declaration; each local is emitted as
// its own group of size 1 per the §4.B framing rule.
type Local struct {
	Type NumType
}

// Function is a code-section entry: its signature is given separately
// by the function section's parallel type-index vector. Instructions
// holds the body without its terminating `end`; the encoder appends
// that byte itself.
type Function struct {
	TypeIndex    uint32
	Locals       []Local
	Instructions []Instruction
}

// Module is the full in-memory IR for one WASM 1.0 binary. Fields map
// 1:1 onto the sections the encoder writes, in the fixed order
// types(1), imports(2), functions(3), exports(7), start(8, optional),
// code(10).
type Module struct {
	Types     []FunctionType
	Imports   []Import
	Functions []Function
	Exports   []Export

	// HasStart/Start: the start section is emitted only when HasStart
	// is true.
	HasStart bool
	Start    uint32
}
