// Package value defines the runtime value model (V in spec.md §3) that
// flows between the action executor, the interpreter capability, and the
// result oracle.
package value

import "fmt"

// Kind tags a Value's active variant.
type Kind byte

const (
	KindI32 Kind = iota
	KindI64
	KindF32
	KindF64
	KindV128
	KindRef
)

// Value is a tagged sum over the WebAssembly runtime value types: I32, I64,
// F32, F64, V128 and Ref. Exactly one of the typed fields is meaningful,
// selected by Kind.
//
// Value is intentionally a flat struct rather than an interface: the set of
// variants is closed and the oracle and action executor need cheap,
// allocation-free construction and comparison.
type Value struct {
	kind Kind
	i    uint64 // holds I32 (zero-extended to 64 for uniform storage), I64, and the low 64 bits of a V128 bit pattern
	hi   uint64 // high 64 bits, meaningful only for V128
	ref  RefValue
}

// I32 constructs a 32-bit integer value.
func I32(n int32) Value { return Value{kind: KindI32, i: uint64(uint32(n))} }

// I64 constructs a 64-bit integer value.
func I64(n int64) Value { return Value{kind: KindI64, i: uint64(n)} }

// F32 constructs a 32-bit float value, carried as its IEEE-754 bit pattern.
func F32(bits uint32) Value { return Value{kind: KindF32, i: uint64(bits)} }

// F64 constructs a 64-bit float value, carried as its IEEE-754 bit pattern.
func F64(bits uint64) Value { return Value{kind: KindF64, i: bits} }

// V128 constructs a 128-bit vector value from its low and high 64-bit halves.
func V128(lo, hi uint64) Value { return Value{kind: KindV128, i: lo, hi: hi} }

// Ref constructs a reference value (funcref or externref).
func Ref(r RefValue) Value { return Value{kind: KindRef, ref: r} }

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// I32 returns the stored I32 bit pattern. Valid only when Kind() == KindI32.
func (v Value) I32() int32 { return int32(uint32(v.i)) }

// I64 returns the stored I64 bit pattern. Valid only when Kind() == KindI64.
func (v Value) I64() int64 { return int64(v.i) }

// F32Bits returns the stored F32 IEEE-754 bit pattern. Valid only when Kind() == KindF32.
func (v Value) F32Bits() uint32 { return uint32(v.i) }

// F64Bits returns the stored F64 IEEE-754 bit pattern. Valid only when Kind() == KindF64.
func (v Value) F64Bits() uint64 { return v.i }

// V128Bits returns the stored V128 bit pattern as (lo, hi). Valid only when Kind() == KindV128.
func (v Value) V128Bits() (lo, hi uint64) { return v.i, v.hi }

// RefValue returns the stored reference. Valid only when Kind() == KindRef.
func (v Value) RefValue() RefValue { return v.ref }

func (v Value) String() string {
	switch v.kind {
	case KindI32:
		return fmt.Sprintf("i32:%d", v.I32())
	case KindI64:
		return fmt.Sprintf("i64:%d", v.I64())
	case KindF32:
		return fmt.Sprintf("f32:%#x", v.F32Bits())
	case KindF64:
		return fmt.Sprintf("f64:%#x", v.F64Bits())
	case KindV128:
		lo, hi := v.V128Bits()
		return fmt.Sprintf("v128:%#x%016x", hi, lo)
	case KindRef:
		return fmt.Sprintf("ref:%s", v.ref)
	default:
		return "value:unknown"
	}
}

// RefKind tags the variant of a RefValue.
type RefKind byte

const (
	RefKindFunc RefKind = iota
	RefKindExtern
)

// FuncID identifies an instantiated function, opaque to this package.
type FuncID uint64

// ExternPayload is the payload carried by a non-null externref. Two
// externrefs compare equal only when their Brand matches, per spec.md §3:
// "two externrefs compare equal only when their brands match".
type ExternPayload struct {
	Brand   Brand
	Payload int64
}

// Brand is a process-wide unique identity used to distinguish externrefs
// minted by this harness from those minted elsewhere (spec.md §9 "Host
// externref brand"). The zero Brand never matches a brand issued by
// NewBrand, so a zero-valued ExternPayload can never satisfy a host-ref
// equality check.
type Brand uint64

// RefValue is a sum over funcref and externref, each nullable.
type RefValue struct {
	kind   RefKind
	funcID *FuncID
	extern *ExternPayload
}

// NullFuncRef constructs a null funcref.
func NullFuncRef() RefValue { return RefValue{kind: RefKindFunc} }

// FuncRef constructs a non-null funcref.
func FuncRef(id FuncID) RefValue { return RefValue{kind: RefKindFunc, funcID: &id} }

// NullExternRef constructs a null externref.
func NullExternRef() RefValue { return RefValue{kind: RefKindExtern} }

// ExternRef constructs a non-null externref carrying p.
func ExternRef(p ExternPayload) RefValue { return RefValue{kind: RefKindExtern, extern: &p} }

// Kind reports which reference variant is stored.
func (r RefValue) Kind() RefKind { return r.kind }

// IsNull reports whether the reference is the null value of its kind.
func (r RefValue) IsNull() bool {
	switch r.kind {
	case RefKindFunc:
		return r.funcID == nil
	case RefKindExtern:
		return r.extern == nil
	default:
		return true
	}
}

// Func returns the referenced function id and true, or (0, false) if null
// or not a funcref.
func (r RefValue) Func() (FuncID, bool) {
	if r.kind != RefKindFunc || r.funcID == nil {
		return 0, false
	}
	return *r.funcID, true
}

// Extern returns the externref payload and true, or (zero, false) if null
// or not an externref.
func (r RefValue) Extern() (ExternPayload, bool) {
	if r.kind != RefKindExtern || r.extern == nil {
		return ExternPayload{}, false
	}
	return *r.extern, true
}

func (r RefValue) String() string {
	switch r.kind {
	case RefKindFunc:
		if r.funcID == nil {
			return "funcref:null"
		}
		return fmt.Sprintf("funcref:%d", *r.funcID)
	case RefKindExtern:
		if r.extern == nil {
			return "externref:null"
		}
		return fmt.Sprintf("externref:{brand:%d,payload:%d}", r.extern.Brand, r.extern.Payload)
	default:
		return "ref:unknown"
	}
}
