package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmconform/harness/internal/literal"
	"github.com/wasmconform/harness/internal/value"
)

func TestMatchesLiteralI32(t *testing.T) {
	o := New(1)
	require.True(t, o.Matches([]ExpR{Lit(literal.I32(7))}, []value.Value{value.I32(7)}))
	require.False(t, o.Matches([]ExpR{Lit(literal.I32(7))}, []value.Value{value.I32(8)}))
}

func TestMatchesLengthMismatch(t *testing.T) {
	o := New(1)
	require.False(t, o.Matches([]ExpR{Lit(literal.I32(7))}, nil))
}

func TestMatchesF32BitIdenticalOrCanonicalString(t *testing.T) {
	o := New(1)
	// Bit-identical match.
	require.True(t, o.Matches([]ExpR{Lit(literal.F32(0x3f800000))}, []value.Value{value.F32(0x3f800000)}))
	// Distinct NaN bit patterns that render identically ("nan").
	require.True(t, o.Matches([]ExpR{Lit(literal.F32(0x7fc00001))}, []value.Value{value.F32(0x7f800001)}))
}

func TestMatchesNanCanon(t *testing.T) {
	o := New(1)
	require.True(t, o.Matches([]ExpR{NanCanon(WidthS32)}, []value.Value{value.F32(0x7fc00000)}))
	require.False(t, o.Matches([]ExpR{NanCanon(WidthS32)}, []value.Value{value.F32(0x3f800000)}))
}

func TestMatchesNanArith(t *testing.T) {
	o := New(1)
	require.True(t, o.Matches([]ExpR{NanArith(WidthS64)}, []value.Value{value.F64(0x7ff8000000000001)}))
	require.False(t, o.Matches([]ExpR{NanArith(WidthS64)}, []value.Value{value.F64(0x7ff0000000000001)}))
}

func TestMatchesNullRefsByHeapType(t *testing.T) {
	o := New(1)
	require.True(t, o.Matches(
		[]ExpR{Lit(literal.Null(literal.HeapTypeFunc))},
		[]value.Value{value.Ref(value.NullFuncRef())},
	))
	require.False(t, o.Matches(
		[]ExpR{Lit(literal.Null(literal.HeapTypeExtern))},
		[]value.Value{value.Ref(value.NullFuncRef())},
	))
}

func TestMatchesExternRequiresMatchingHostBrand(t *testing.T) {
	hostBrand := value.Brand(42)
	o := New(hostBrand)

	owned := value.Ref(value.ExternRef(value.ExternPayload{Brand: hostBrand, Payload: 5}))
	require.True(t, o.Matches([]ExpR{Lit(literal.Extern(5))}, []value.Value{owned}))

	foreign := value.Ref(value.ExternRef(value.ExternPayload{Brand: value.Brand(99), Payload: 5}))
	require.False(t, o.Matches([]ExpR{Lit(literal.Extern(5))}, []value.Value{foreign}))
}

func TestMatchLiteralUnsupportedPanics(t *testing.T) {
	o := New(1)
	require.Panics(t, func() {
		o.Matches([]ExpR{Lit(literal.Unsupported())}, []value.Value{value.I32(0)})
	})
}
