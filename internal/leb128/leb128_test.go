package leb128

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendUint32_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		in   uint32
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one byte", 0x7f, []byte{0x7f}},
		{"spec example 624485", 624485, []byte{0xE5, 0x8E, 0x26}},
		{"two bytes boundary", 128, []byte{0x80, 0x01}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			n := AppendUint32(buf, tt.in)
			assert.Equal(t, tt.want, buf.Bytes())
			assert.Equal(t, len(tt.want), n)
		})
	}
}

func TestAppendInt32_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		in   int32
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"minus one", -1, []byte{0x7f}},
		{"spec example -123456", -123456, []byte{0xC0, 0xBB, 0x78}},
		{"largest single-byte positive", 63, []byte{0x3f}},
		{"positive requiring extra zero byte", 64, []byte{0xc0, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			AppendInt32(buf, tt.in)
			assert.Equal(t, tt.want, buf.Bytes())
		})
	}
}

func TestRoundTrip_Unsigned(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 1 << 20, 1<<35 + 7, ^uint64(0)}
	for _, v := range values {
		buf := &bytes.Buffer{}
		AppendUint64(buf, v)
		got, n := DecodeUint64(buf.Bytes(), 0)
		require.Equal(t, buf.Len(), n)
		assert.Equal(t, v, got)
	}
}

func TestRoundTrip_Signed(t *testing.T) {
	values := []int64{0, -1, 1, 63, -64, 65, -65, 1 << 40, -(1 << 40)}
	for _, v := range values {
		buf := &bytes.Buffer{}
		AppendInt64(buf, v)
		got, n := DecodeInt64(buf.Bytes(), 0)
		require.Equal(t, buf.Len(), n)
		assert.Equal(t, v, got)
	}
}

func TestEncoding_IsMinimalLength(t *testing.T) {
	// No trailing 0x80-chained zero/-1 continuation bytes.
	buf := &bytes.Buffer{}
	AppendUint64(buf, 0)
	assert.Equal(t, 1, buf.Len())

	buf.Reset()
	AppendInt64(buf, -1)
	assert.Equal(t, 1, buf.Len())
}
