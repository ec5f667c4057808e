// Package literal defines the value-constant syntax spec.md §3 calls
// ConstLit: the literal grammar shared by action arguments (invoke/get
// Const operands) and the Literal variant of an expected result. Keeping
// one type for both avoids duplicating the same closed sum in
// internal/script and internal/oracle.
package literal

// HeapType is the target of a Const_null literal.
type HeapType byte

const (
	HeapTypeFunc HeapType = iota
	HeapTypeExtern
)

// Kind discriminates the Const variants.
type Kind byte

const (
	KindI32 Kind = iota
	KindI64
	KindF32
	KindF64
	KindV128
	KindNull
	KindExtern
	// KindUnsupported is the "unsupported tail variant" spec.md §3 requires:
	// "must cause a compile-time exhaustiveness error in implementations".
	// Go has no sum types, so the equivalent enforceable behavior this
	// package offers is: every exhaustive switch over Kind in this
	// codebase has a default case that calls a panic helper
	// (PanicUnsupported) rather than silently falling through. See
	// DESIGN.md for why a panic, not a compile error, is the closest Go
	// analogue.
	KindUnsupported
)

// Const is the literal-constant grammar: i32/i64/f32/f64/v128 literals,
// null(heap_type), extern(i32), and the unsupported tail variant.
type Const struct {
	Kind Kind

	I32     int32
	I64     int64
	F32Bits uint32
	F64Bits uint64
	V128Lo  uint64
	V128Hi  uint64

	NullHeapType HeapType
	ExternPayload int32
}

// I32 constructs an i32 literal.
func I32(n int32) Const { return Const{Kind: KindI32, I32: n} }

// I64 constructs an i64 literal.
func I64(n int64) Const { return Const{Kind: KindI64, I64: n} }

// F32 constructs an f32 literal from its IEEE-754 bit pattern.
func F32(bits uint32) Const { return Const{Kind: KindF32, F32Bits: bits} }

// F64 constructs an f64 literal from its IEEE-754 bit pattern.
func F64(bits uint64) Const { return Const{Kind: KindF64, F64Bits: bits} }

// V128 constructs a v128 literal from its low/high 64-bit halves.
func V128(lo, hi uint64) Const { return Const{Kind: KindV128, V128Lo: lo, V128Hi: hi} }

// Null constructs a null(heap_type) literal.
func Null(ht HeapType) Const { return Const{Kind: KindNull, NullHeapType: ht} }

// Extern constructs an extern(i32) literal.
func Extern(payload int32) Const { return Const{Kind: KindExtern, ExternPayload: payload} }

// Unsupported constructs the unsupported tail variant.
func Unsupported() Const { return Const{Kind: KindUnsupported} }

// UnsupportedConstError is panicked by any exhaustive switch over Kind that
// reaches KindUnsupported, standing in for the compile-time exhaustiveness
// error spec.md §3 and §9 require. It is a distinct type (not a plain
// string panic) so tests can recover and assert on it specifically.
type UnsupportedConstError struct{ Context string }

func (e UnsupportedConstError) Error() string {
	return "unsupported literal constant variant in " + e.Context
}

// PanicUnsupported is the single call site every exhaustive switch's
// default arm invokes.
func PanicUnsupported(context string) {
	panic(UnsupportedConstError{Context: context})
}
