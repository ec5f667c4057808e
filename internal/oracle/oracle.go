package oracle

import (
	"fmt"

	"github.com/wasmconform/harness/internal/literal"
	"github.com/wasmconform/harness/internal/nanbits"
	"github.com/wasmconform/harness/internal/value"
)

// Oracle decides whether a list of expected results matches a produced
// value stack (spec.md §4.1). It is parameterized by HostBrand because
// Literal(Extern n) acceptance requires comparing against the harness's own
// externref brand (spec.md §9 "Host externref brand") — the spec's
// matches(expected, produced) signature elides this because the brand is
// process-global state there; here it is threaded explicitly so Oracle
// stays a value with no hidden globals.
type Oracle struct {
	HostBrand value.Brand
}

// New constructs an Oracle bound to hostBrand.
func New(hostBrand value.Brand) Oracle {
	return Oracle{HostBrand: hostBrand}
}

// Matches implements matches(expected, produced) from spec.md §4.1: true
// iff the lists have equal length and each position satisfies match1.
//
// Per spec.md §4.1, "the produced stack is compared in reverse order of the
// runtime's push order (the harness reverses before comparison)" — callers
// (internal/driver) are responsible for that reversal before calling
// Matches; this function compares the two slices positionally, as given.
func (o Oracle) Matches(expected []ExpR, produced []value.Value) bool {
	if len(expected) != len(produced) {
		return false
	}
	for i := range expected {
		if !o.match1(expected[i], produced[i]) {
			return false
		}
	}
	return true
}

// match1 implements the pair-wise predicate table in spec.md §4.1.
func (o Oracle) match1(e ExpR, v value.Value) bool {
	switch e.Kind {
	case ExpKindLiteral:
		return o.matchLiteral(e.Literal, v)
	case ExpKindNanCanon:
		return o.matchNanCanon(e.Width, v)
	case ExpKindNanArith:
		return o.matchNanArith(e.Width, v)
	default:
		literal.PanicUnsupported(fmt.Sprintf("oracle.match1: ExpKind %d", e.Kind))
		return false
	}
}

func (o Oracle) matchLiteral(c literal.Const, v value.Value) bool {
	switch c.Kind {
	case literal.KindI32:
		return v.Kind() == value.KindI32 && v.I32() == c.I32
	case literal.KindI64:
		return v.Kind() == value.KindI64 && v.I64() == c.I64
	case literal.KindF32:
		if v.Kind() != value.KindF32 {
			return false
		}
		return c.F32Bits == v.F32Bits() || nanbits.CanonicalRender32(c.F32Bits) == nanbits.CanonicalRender32(v.F32Bits())
	case literal.KindF64:
		if v.Kind() != value.KindF64 {
			return false
		}
		return c.F64Bits == v.F64Bits() || nanbits.CanonicalRender64(c.F64Bits) == nanbits.CanonicalRender64(v.F64Bits())
	case literal.KindV128:
		if v.Kind() != value.KindV128 {
			return false
		}
		lo, hi := v.V128Bits()
		return lo == c.V128Lo && hi == c.V128Hi
	case literal.KindNull:
		if v.Kind() != value.KindRef {
			return false
		}
		ref := v.RefValue()
		switch c.NullHeapType {
		case literal.HeapTypeFunc:
			return ref.Kind() == value.RefKindFunc && ref.IsNull()
		case literal.HeapTypeExtern:
			return ref.Kind() == value.RefKindExtern && ref.IsNull()
		default:
			literal.PanicUnsupported("oracle.matchLiteral: heap type")
			return false
		}
	case literal.KindExtern:
		if v.Kind() != value.KindRef {
			return false
		}
		ref := v.RefValue()
		if ref.Kind() != value.RefKindExtern {
			return false
		}
		p, ok := ref.Extern()
		if !ok {
			return false
		}
		return p.Brand == o.HostBrand && p.Payload == int64(c.ExternPayload)
	case literal.KindUnsupported:
		// spec.md §4.1: "Literal(Host _) and any unsupported Literal case
		// produce a hard implementation error, not a comparison result —
		// the harness must not silently reject."
		literal.PanicUnsupported("oracle.matchLiteral: Literal(Host _)")
		return false
	default:
		literal.PanicUnsupported(fmt.Sprintf("oracle.matchLiteral: Kind %d", c.Kind))
		return false
	}
}

func (o Oracle) matchNanCanon(w Width, v value.Value) bool {
	switch w {
	case WidthS32:
		return v.Kind() == value.KindF32 && nanbits.IsNaN32(v.F32Bits())
	case WidthS64:
		return v.Kind() == value.KindF64 && nanbits.IsNaN64(v.F64Bits())
	default:
		literal.PanicUnsupported("oracle.matchNanCanon: Width")
		return false
	}
}

func (o Oracle) matchNanArith(w Width, v value.Value) bool {
	switch w {
	case WidthS32:
		return v.Kind() == value.KindF32 && nanbits.IsArithmeticNaN32(v.F32Bits())
	case WidthS64:
		return v.Kind() == value.KindF64 && nanbits.IsArithmeticNaN64(v.F64Bits())
	default:
		literal.PanicUnsupported("oracle.matchNanArith: Width")
		return false
	}
}
