// Package leb128 implements the LEB128 variable-length integer encoding
// used throughout the WebAssembly binary format.
package leb128

import "bytes"

// AppendUint32 appends the unsigned LEB128 encoding of v to buf and
// returns the number of bytes written.
func AppendUint32(buf *bytes.Buffer, v uint32) int {
	return appendUint64(buf, uint64(v))
}

// AppendUint64 appends the unsigned LEB128 encoding of v to buf and
// returns the number of bytes written.
func AppendUint64(buf *bytes.Buffer, v uint64) int {
	return appendUint64(buf, v)
}

// AppendUsize appends the unsigned LEB128 encoding of a platform-word
// sized value (section byte lengths, vector counts, indices) to buf.
func AppendUsize(buf *bytes.Buffer, v uint64) int {
	return appendUint64(buf, v)
}

func appendUint64(buf *bytes.Buffer, v uint64) int {
	n := 0
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		buf.WriteByte(c)
		n++
		if v == 0 {
			break
		}
	}
	return n
}

// AppendInt32 appends the signed LEB128 encoding of v to buf and
// returns the number of bytes written.
func AppendInt32(buf *bytes.Buffer, v int32) int {
	return appendInt64(buf, int64(v))
}

// AppendInt64 appends the signed LEB128 encoding of v to buf and
// returns the number of bytes written.
func AppendInt64(buf *bytes.Buffer, v int64) int {
	return appendInt64(buf, v)
}

func appendInt64(buf *bytes.Buffer, v int64) int {
	n := 0
	for {
		c := byte(v & 0x7f)
		sign := c&0x40 != 0
		v >>= 7
		done := (v == 0 && !sign) || (v == -1 && sign)
		if !done {
			c |= 0x80
		}
		buf.WriteByte(c)
		n++
		if done {
			break
		}
	}
	return n
}

// DecodeUint32 reads an unsigned LEB128 value from buf starting at
// offset, returning the decoded value and the number of bytes consumed.
func DecodeUint32(buf []byte, offset int) (uint32, int) {
	v, n := decodeUint64(buf, offset)
	return uint32(v), n
}

// DecodeUint64 reads an unsigned LEB128 value from buf starting at
// offset, returning the decoded value and the number of bytes consumed.
func DecodeUint64(buf []byte, offset int) (uint64, int) {
	return decodeUint64(buf, offset)
}

func decodeUint64(buf []byte, offset int) (uint64, int) {
	var result uint64
	var shift uint
	n := 0
	for {
		b := buf[offset+n]
		n++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}
	return result, n
}

// DecodeInt32 reads a signed LEB128 value from buf starting at offset,
// returning the decoded value and the number of bytes consumed.
func DecodeInt32(buf []byte, offset int) (int32, int) {
	v, n := decodeInt64(buf, offset)
	return int32(v), n
}

// DecodeInt64 reads a signed LEB128 value from buf starting at offset,
// returning the decoded value and the number of bytes consumed.
func DecodeInt64(buf []byte, offset int) (int64, int) {
	return decodeInt64(buf, offset)
}

func decodeInt64(buf []byte, offset int) (int64, int) {
	var result int64
	var shift uint
	n := 0
	var b byte
	for {
		b = buf[offset+n]
		n++
		result |= int64(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	if shift < 64 && b&0x40 != 0 {
		result |= -1 << shift
	}
	return result, n
}
