package wasmir

import (
	"bytes"
	"fmt"
	"math"

	"github.com/waxlang/waxc/internal/leb128"
)

var magic = []byte{0x00, 0x61, 0x73, 0x6d}
var version = []byte{0x01, 0x00, 0x00, 0x00}

const (
	secType     = 1
	secImport   = 2
	secFunction = 3
	secExport   = 7
	secStart    = 8
	secCode     = 10
)

const (
	importDescFunc   = 0x00
	importDescMemory = 0x02
	exportDescFunc   = 0x00
)

// Encode renders m as a byte-exact WASM 1.0 binary: magic, version,
// then sections 1, 2, 3, 7, 8 (only if m.HasStart), 10, in that order,
// and no others.
func Encode(m *Module) ([]byte, error) {
	out := &bytes.Buffer{}
	out.Write(magic)
	out.Write(version)

	if len(m.Types) > 0 {
		body := &bytes.Buffer{}
		leb128.AppendUsize(body, uint64(len(m.Types)))
		for _, ft := range m.Types {
			encodeFunctionType(body, ft)
		}
		appendSection(out, secType, body.Bytes())
	}

	if len(m.Imports) > 0 {
		body, err := encodeImportSection(m.Imports)
		if err != nil {
			return nil, err
		}
		appendSection(out, secImport, body)
	}

	if len(m.Functions) > 0 {
		body := &bytes.Buffer{}
		leb128.AppendUsize(body, uint64(len(m.Functions)))
		for _, fn := range m.Functions {
			leb128.AppendUint32(body, fn.TypeIndex)
		}
		appendSection(out, secFunction, body.Bytes())
	}

	if len(m.Exports) > 0 {
		body, err := encodeExportSection(m.Exports)
		if err != nil {
			return nil, err
		}
		appendSection(out, secExport, body)
	}

	if m.HasStart {
		body := &bytes.Buffer{}
		leb128.AppendUint32(body, m.Start)
		appendSection(out, secStart, body.Bytes())
	}

	if len(m.Functions) > 0 {
		body := &bytes.Buffer{}
		leb128.AppendUsize(body, uint64(len(m.Functions)))
		for _, fn := range m.Functions {
			if err := encodeFunctionBody(body, fn); err != nil {
				return nil, err
			}
		}
		appendSection(out, secCode, body.Bytes())
	}

	return out.Bytes(), nil
}

// appendSection frames a section with its id and the platform-word
// byte length of body, per spec.md §4.A's "platform word" width.
func appendSection(out *bytes.Buffer, id byte, body []byte) {
	out.WriteByte(id)
	leb128.AppendUsize(out, uint64(len(body)))
	out.Write(body)
}

func encodeFunctionType(out *bytes.Buffer, ft FunctionType) {
	out.WriteByte(0x60)
	leb128.AppendUsize(out, uint64(len(ft.Params)))
	for _, p := range ft.Params {
		out.WriteByte(byte(p))
	}
	leb128.AppendUsize(out, uint64(len(ft.Results)))
	for _, r := range ft.Results {
		out.WriteByte(byte(r))
	}
}

func encodeName(out *bytes.Buffer, s string) {
	leb128.AppendUsize(out, uint64(len(s)))
	out.WriteString(s)
}

func encodeImportSection(imports []Import) ([]byte, error) {
	out := &bytes.Buffer{}
	leb128.AppendUsize(out, uint64(len(imports)))
	for _, im := range imports {
		encodeName(out, im.Module)
		encodeName(out, im.Name)
		switch im.Kind {
		case ImportFunc:
			out.WriteByte(importDescFunc)
			leb128.AppendUint32(out, im.TypeIndex)
		case ImportMemory:
			out.WriteByte(importDescMemory)
			if im.MemHasMax {
				out.WriteByte(0x01)
				leb128.AppendUint32(out, im.MemMin)
				leb128.AppendUint32(out, im.MemMax)
			} else {
				out.WriteByte(0x00)
				leb128.AppendUint32(out, im.MemMin)
			}
		default:
			return nil, fmt.Errorf("wasmir: unsupported import kind %d", im.Kind)
		}
	}
	return out.Bytes(), nil
}

func encodeExportSection(exports []Export) ([]byte, error) {
	out := &bytes.Buffer{}
	leb128.AppendUsize(out, uint64(len(exports)))
	for _, ex := range exports {
		encodeName(out, ex.Name)
		switch ex.Kind {
		case ExportFunc:
			out.WriteByte(exportDescFunc)
			leb128.AppendUint32(out, ex.Index)
		default:
			return nil, fmt.Errorf("wasmir: unsupported export kind %d", ex.Kind)
		}
	}
	return out.Bytes(), nil
}

func encodeFunctionBody(out *bytes.Buffer, fn Function) error {
	body := &bytes.Buffer{}
	leb128.AppendUsize(body, uint64(len(fn.Locals)))
	for _, l := range fn.Locals {
		leb128.AppendUsize(body, 1)
		body.WriteByte(byte(l.Type))
	}
	for _, instr := range fn.Instructions {
		if err := encodeInstruction(body, instr); err != nil {
			return err
		}
	}
	body.WriteByte(0x0b)

	leb128.AppendUsize(out, uint64(body.Len()))
	out.Write(body.Bytes())
	return nil
}

func encodeInstruction(out *bytes.Buffer, instr Instruction) error {
	switch v := instr.(type) {
	case Unreachable:
		out.WriteByte(0x00)
	case Nop:
		out.WriteByte(0x01)
	case End:
		out.WriteByte(0x0b)
	case Call:
		out.WriteByte(0x10)
		leb128.AppendUint32(out, v.FuncIndex)
	case LocalGet:
		out.WriteByte(0x20)
		leb128.AppendUint32(out, v.Index)
	case LocalSet:
		out.WriteByte(0x21)
		leb128.AppendUint32(out, v.Index)
	case LocalTee:
		out.WriteByte(0x22)
		leb128.AppendUint32(out, v.Index)
	case I32Const:
		out.WriteByte(0x41)
		leb128.AppendInt32(out, v.Value)
	case I64Const:
		out.WriteByte(0x42)
		leb128.AppendInt64(out, v.Value)
	case F32Const:
		out.WriteByte(0x43)
		out.Write(encodeF32(v.Value))
	case F64Const:
		out.WriteByte(0x44)
		out.Write(encodeF64(v.Value))
	case Return:
		out.WriteByte(0x0f)
	case GlobalGet:
		out.WriteByte(0x23)
		leb128.AppendUint32(out, v.Index)
	case GlobalSet:
		out.WriteByte(0x24)
		leb128.AppendUint32(out, v.Index)
	case IntegerOp:
		b, err := integerOpByte(v.Op, v.Type)
		if err != nil {
			return err
		}
		out.WriteByte(b)
	case FloatOp:
		b, err := floatOpByte(v.Op, v.Type)
		if err != nil {
			return err
		}
		out.WriteByte(b)
	case Convert:
		b, subOp, hasSubOp, err := convertOpByte(v.Op)
		if err != nil {
			return err
		}
		out.WriteByte(b)
		if hasSubOp {
			leb128.AppendUint32(out, subOp)
		}
	default:
		return fmt.Errorf("wasmir: unsupported instruction %T", instr)
	}
	return nil
}

// integerOpByte maps an (op, width) pair to its single-byte WASM 1.0
// opcode, mirroring the IntegerOp match table of the ground encoder
// this is grounded on.
func integerOpByte(op IntegerOpKind, typ IntType) (byte, error) {
	if typ == I32 {
		switch op {
		case IntClz:
			return 0x67, nil
		case IntCtz:
			return 0x68, nil
		case IntPopcnt:
			return 0x69, nil
		case IntEqz:
			return 0x45, nil
		case IntEq:
			return 0x46, nil
		case IntNe:
			return 0x47, nil
		case IntLtS:
			return 0x48, nil
		case IntLtU:
			return 0x49, nil
		case IntGtS:
			return 0x4a, nil
		case IntGtU:
			return 0x4b, nil
		case IntLeS:
			return 0x4c, nil
		case IntLeU:
			return 0x4d, nil
		case IntGeS:
			return 0x4e, nil
		case IntGeU:
			return 0x4f, nil
		case IntAdd:
			return 0x6a, nil
		case IntSub:
			return 0x6b, nil
		case IntMul:
			return 0x6c, nil
		case IntDivS:
			return 0x6d, nil
		case IntDivU:
			return 0x6e, nil
		case IntRemS:
			return 0x6f, nil
		case IntRemU:
			return 0x70, nil
		case IntAnd:
			return 0x71, nil
		case IntOr:
			return 0x72, nil
		case IntXor:
			return 0x73, nil
		case IntShl:
			return 0x74, nil
		case IntShrS:
			return 0x75, nil
		case IntShrU:
			return 0x76, nil
		case IntRotl:
			return 0x77, nil
		case IntRotr:
			return 0x78, nil
		}
	} else {
		switch op {
		case IntClz:
			return 0x79, nil
		case IntCtz:
			return 0x7a, nil
		case IntPopcnt:
			return 0x7b, nil
		case IntEqz:
			return 0x50, nil
		case IntEq:
			return 0x51, nil
		case IntNe:
			return 0x52, nil
		case IntLtS:
			return 0x53, nil
		case IntLtU:
			return 0x54, nil
		case IntGtS:
			return 0x55, nil
		case IntGtU:
			return 0x56, nil
		case IntLeS:
			return 0x57, nil
		case IntLeU:
			return 0x58, nil
		case IntGeS:
			return 0x59, nil
		case IntGeU:
			return 0x5a, nil
		case IntAdd:
			return 0x7c, nil
		case IntSub:
			return 0x7d, nil
		case IntMul:
			return 0x7e, nil
		case IntDivS:
			return 0x7f, nil
		case IntDivU:
			return 0x80, nil
		case IntRemS:
			return 0x81, nil
		case IntRemU:
			return 0x82, nil
		case IntAnd:
			return 0x83, nil
		case IntOr:
			return 0x84, nil
		case IntXor:
			return 0x85, nil
		case IntShl:
			return 0x86, nil
		case IntShrS:
			return 0x87, nil
		case IntShrU:
			return 0x88, nil
		case IntRotl:
			return 0x89, nil
		case IntRotr:
			return 0x8a, nil
		}
	}
	return 0, fmt.Errorf("wasmir: unknown integer op %d/%d", op, typ)
}

// floatOpByte maps an (op, width) pair to its single-byte WASM 1.0
// opcode, mirroring the FloatOp match table of the ground encoder
// this is grounded on.
func floatOpByte(op FloatOpKind, typ FloatType) (byte, error) {
	if typ == F32 {
		switch op {
		case FloatAbs:
			return 0x8b, nil
		case FloatNeg:
			return 0x8c, nil
		case FloatCeil:
			return 0x8d, nil
		case FloatFloor:
			return 0x8e, nil
		case FloatTrunc:
			return 0x8f, nil
		case FloatNearest:
			return 0x90, nil
		case FloatSqrt:
			return 0x91, nil
		case FloatAdd:
			return 0x92, nil
		case FloatSub:
			return 0x93, nil
		case FloatMul:
			return 0x94, nil
		case FloatDiv:
			return 0x95, nil
		case FloatMin:
			return 0x96, nil
		case FloatMax:
			return 0x97, nil
		case FloatCopysign:
			return 0x98, nil
		case FloatEq:
			return 0x5b, nil
		case FloatNe:
			return 0x5c, nil
		case FloatLt:
			return 0x5d, nil
		case FloatGt:
			return 0x5e, nil
		case FloatLe:
			return 0x5f, nil
		case FloatGe:
			return 0x60, nil
		}
	} else {
		switch op {
		case FloatEq:
			return 0x61, nil
		case FloatNe:
			return 0x62, nil
		case FloatLt:
			return 0x63, nil
		case FloatGt:
			return 0x64, nil
		case FloatLe:
			return 0x65, nil
		case FloatGe:
			return 0x66, nil
		case FloatAbs:
			return 0x99, nil
		case FloatNeg:
			return 0x9a, nil
		case FloatCeil:
			return 0x9b, nil
		case FloatFloor:
			return 0x9c, nil
		case FloatTrunc:
			return 0x9d, nil
		case FloatNearest:
			return 0x9e, nil
		case FloatSqrt:
			return 0x9f, nil
		case FloatAdd:
			return 0xa0, nil
		case FloatSub:
			return 0xa1, nil
		case FloatMul:
			return 0xa2, nil
		case FloatDiv:
			return 0xa3, nil
		case FloatMin:
			return 0xa4, nil
		case FloatMax:
			return 0xa5, nil
		case FloatCopysign:
			return 0xa6, nil
		}
	}
	return 0, fmt.Errorf("wasmir: unknown float op %d/%d", op, typ)
}

// convertOpByte maps a ConvertOp variant to its opcode byte, plus a
// ULEB128 sub-opcode for the 0xFC-prefixed saturating-truncation
// family (sub-ops 0..7).
func convertOpByte(op ConvertOp) (b byte, subOp uint32, hasSubOp bool, err error) {
	switch op {
	case OpI32Extend8S:
		return 0xc0, 0, false, nil
	case OpI32Extend16S:
		return 0xc1, 0, false, nil
	case OpI64Extend8S:
		return 0xc2, 0, false, nil
	case OpI64Extend16S:
		return 0xc3, 0, false, nil
	case OpI64Extend32S:
		return 0xc4, 0, false, nil
	case OpI32WrapI64:
		return 0xa7, 0, false, nil
	case OpI64ExtendI32S:
		return 0xac, 0, false, nil
	case OpI64ExtendI32U:
		return 0xad, 0, false, nil
	case OpI32TruncF32S:
		return 0xa8, 0, false, nil
	case OpI32TruncF32U:
		return 0xa9, 0, false, nil
	case OpI32TruncF64S:
		return 0xaa, 0, false, nil
	case OpI32TruncF64U:
		return 0xab, 0, false, nil
	case OpI64TruncF32S:
		return 0xae, 0, false, nil
	case OpI64TruncF32U:
		return 0xaf, 0, false, nil
	case OpI64TruncF64S:
		return 0xb0, 0, false, nil
	case OpI64TruncF64U:
		return 0xb1, 0, false, nil
	case OpI32TruncSatF32S:
		return 0xfc, 0, true, nil
	case OpI32TruncSatF32U:
		return 0xfc, 1, true, nil
	case OpI32TruncSatF64S:
		return 0xfc, 2, true, nil
	case OpI32TruncSatF64U:
		return 0xfc, 3, true, nil
	case OpI64TruncSatF32S:
		return 0xfc, 4, true, nil
	case OpI64TruncSatF32U:
		return 0xfc, 5, true, nil
	case OpI64TruncSatF64S:
		return 0xfc, 6, true, nil
	case OpI64TruncSatF64U:
		return 0xfc, 7, true, nil
	case OpF32DemoteF64:
		return 0xb6, 0, false, nil
	case OpF64PromoteF32:
		return 0xbb, 0, false, nil
	case OpF32ConvertI32S:
		return 0xb2, 0, false, nil
	case OpF32ConvertI32U:
		return 0xb3, 0, false, nil
	case OpF32ConvertI64S:
		return 0xb4, 0, false, nil
	case OpF32ConvertI64U:
		return 0xb5, 0, false, nil
	case OpF64ConvertI32S:
		return 0xb7, 0, false, nil
	case OpF64ConvertI32U:
		return 0xb8, 0, false, nil
	case OpF64ConvertI64S:
		return 0xb9, 0, false, nil
	case OpF64ConvertI64U:
		return 0xba, 0, false, nil
	case OpI32ReinterpretF32:
		return 0xbc, 0, false, nil
	case OpI64ReinterpretF64:
		return 0xbd, 0, false, nil
	case OpF32ReinterpretI32:
		return 0xbe, 0, false, nil
	case OpF64ReinterpretI64:
		return 0xbf, 0, false, nil
	default:
		return 0, 0, false, fmt.Errorf("wasmir: unknown convert op %d", op)
	}
}

func encodeF32(f float32) []byte {
	bits := math.Float32bits(f)
	return []byte{byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24)}
}

func encodeF64(f float64) []byte {
	bits := math.Float64bits(f)
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(bits >> (8 * i))
	}
	return out
}
