// Package leb128 implements the unsigned LEB128 varint encoding Wasm uses
// for section sizes (a section id is a single plain byte), grounded on the teacher's internal/leb128
// package (tetratelabs/wazero). It exists here only to support the binary
// round-trip check in internal/driver, which needs to walk a module's
// section headers without going through any compile/parse capability —
// section framing is a property of the Wasm binary format itself, not of
// any particular implementation of it.
package leb128

import "errors"

// ErrTruncated is returned when a buffer ends in the middle of a varint.
var ErrTruncated = errors.New("leb128: truncated varint")

// DecodeUint32 decodes an unsigned LEB128 varint from buf starting at
// offset, returning the value and the offset immediately after it.
func DecodeUint32(buf []byte, offset int) (value uint32, next int, err error) {
	var shift uint
	for {
		if offset >= len(buf) {
			return 0, 0, ErrTruncated
		}
		b := buf[offset]
		offset++
		value |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, offset, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, 0, errors.New("leb128: varint overflows uint32")
		}
	}
}

// EncodeUint32 appends n to buf as an unsigned LEB128 varint.
func EncodeUint32(buf []byte, n uint32) []byte {
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			buf = append(buf, b|0x80)
		} else {
			buf = append(buf, b)
			return buf
		}
	}
}
