package nanbits

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsNaN32(t *testing.T) {
	require.True(t, IsNaN32(0x7fc00000))  // canonical quiet NaN
	require.True(t, IsNaN32(0xffc00000))  // negative canonical
	require.True(t, IsNaN32(0x7f800001))  // signalling NaN
	require.False(t, IsNaN32(0x7f800000)) // +inf
	require.False(t, IsNaN32(0x00000000)) // +0
}

func TestIsArithmeticNaN32(t *testing.T) {
	require.True(t, IsArithmeticNaN32(F32CanonicalNaNBits))
	require.True(t, IsArithmeticNaN32(F32CanonicalNaNBits|0x1)) // extra payload bits still set
	require.False(t, IsArithmeticNaN32(0x7f800001))             // signalling, quiet bit clear
}

func TestIsArithmeticNaN64(t *testing.T) {
	require.True(t, IsArithmeticNaN64(F64CanonicalNaNBits))
	require.False(t, IsArithmeticNaN64(0x7ff0000000000001))
}

func TestCanonicalRenderDistinctBitsSameString(t *testing.T) {
	// Two non-canonical NaN bit patterns should still both render "nan".
	require.Equal(t, "nan", CanonicalRender32(0x7f800001))
	require.Equal(t, "nan", CanonicalRender32(0x7fc00001))
	require.Equal(t, "-nan", CanonicalRender32(0xff800001))
}

func TestCanonicalRenderOrdinaryFloats(t *testing.T) {
	require.Equal(t, "0", CanonicalRender32(0x00000000))
	require.Equal(t, "1", CanonicalRender32(0x3f800000))
}
