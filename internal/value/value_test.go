package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueAccessorsRoundTrip(t *testing.T) {
	require.Equal(t, int32(-7), I32(-7).I32())
	require.Equal(t, int64(-7), I64(-7).I64())
	require.Equal(t, uint32(0x7fc00000), F32(0x7fc00000).F32Bits())
	require.Equal(t, uint64(0x7ff8000000000000), F64(0x7ff8000000000000).F64Bits())

	lo, hi := V128(1, 2).V128Bits()
	require.Equal(t, uint64(1), lo)
	require.Equal(t, uint64(2), hi)
}

func TestValueKindDiscriminates(t *testing.T) {
	require.Equal(t, KindI32, I32(0).Kind())
	require.Equal(t, KindI64, I64(0).Kind())
	require.Equal(t, KindF32, F32(0).Kind())
	require.Equal(t, KindF64, F64(0).Kind())
	require.Equal(t, KindV128, V128(0, 0).Kind())
	require.Equal(t, KindRef, Ref(NullFuncRef()).Kind())
}

func TestRefValueNullAndNonNull(t *testing.T) {
	require.True(t, NullFuncRef().IsNull())
	require.True(t, NullExternRef().IsNull())

	f := FuncRef(42)
	require.False(t, f.IsNull())
	id, ok := f.Func()
	require.True(t, ok)
	require.Equal(t, FuncID(42), id)

	e := ExternRef(ExternPayload{Brand: 3, Payload: 9})
	require.False(t, e.IsNull())
	p, ok := e.Extern()
	require.True(t, ok)
	require.Equal(t, Brand(3), p.Brand)
	require.Equal(t, int64(9), p.Payload)
}

func TestExternRefBrandEquality(t *testing.T) {
	a := ExternRef(ExternPayload{Brand: 1, Payload: 5})
	b := ExternRef(ExternPayload{Brand: 2, Payload: 5})
	pa, _ := a.Extern()
	pb, _ := b.Extern()
	require.NotEqual(t, pa.Brand, pb.Brand)
}

func TestNewBrandIsUniquePerCall(t *testing.T) {
	a := NewBrand()
	b := NewBrand()
	require.NotEqual(t, a, b)
}
