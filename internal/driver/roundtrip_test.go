package driver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wasmconform/harness/internal/leb128"
	"github.com/wasmconform/harness/internal/modules"
	"github.com/wasmconform/harness/internal/script"
)

// fakeEncoder re-encodes a decoded module (a string, per the fakes in
// fakes_test.go) by returning that string's bytes unchanged. Tests that
// need the re-encoded bytes to differ from the original get that from
// mappingParser, which decodes a binary to a different string.
type fakeEncoder struct{}

func (fakeEncoder) EncodeModule(m modules.CompiledModule) []byte {
	s, _ := m.(string)
	return []byte(s)
}

func buildModule(sections [][2]byte, customPayloads ...[]byte) []byte {
	buf := append([]byte{}, wasmMagicAndVersion()...)
	for _, payload := range customPayloads {
		buf = append(buf, 0x00)
		buf = leb128.EncodeUint32(buf, uint32(len(payload)))
		buf = append(buf, payload...)
	}
	return buf
}

func wasmMagicAndVersion() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

func TestCheckRoundTripIgnoresCustomSectionDifferences(t *testing.T) {
	original := buildModule(nil, []byte("name-section-v1"))

	// The fake encoder returns exactly the bytes ParseBinaryModule handed
	// back (since modules.CompiledModule here is just the string form), so
	// simulate "decoded, re-encoded with a different custom section" by
	// wiring a parser that maps this raw binary to a differently-custom-sectioned string.
	reencoded := buildModule(nil, []byte("name-section-v2-longer"))

	decodeMap := map[string]string{string(original): string(reencoded)}
	fp := &mappingParser{decodeTo: decodeMap}

	results := CheckRoundTrip(fp, fakeEncoder{}, [][]byte{original})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.True(t, results[0].Matched)
}

func TestCheckRoundTripDetectsRealDifference(t *testing.T) {
	original := buildModule(nil)
	reencoded := append(buildModule(nil), 0x01, 0x03, 'a', 'b', 'c')

	fp := &mappingParser{decodeTo: map[string]string{string(original): string(reencoded)}}
	results := CheckRoundTrip(fp, fakeEncoder{}, [][]byte{original})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.False(t, results[0].Matched)
}

func TestCheckRoundTripReportsDecodeFailure(t *testing.T) {
	fp := &mappingParser{decodeTo: map[string]string{}}
	results := CheckRoundTrip(fp, fakeEncoder{}, [][]byte{[]byte("FAIL_PARSE")})
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
}

// mappingParser decodes raw to whatever string was registered under it in
// decodeTo, so the encoder (which just echoes its input string as bytes)
// can be made to "re-encode" into deliberately different bytes for the
// round-trip comparison tests.
type mappingParser struct {
	decodeTo map[string]string
}

func (m *mappingParser) ParseTextScript(string) ([]script.Directive, error) {
	return nil, nil
}

func (m *mappingParser) ParseBinaryModule(raw []byte) (modules.CompiledModule, error) {
	if string(raw) == "FAIL_PARSE" {
		return nil, errParse
	}
	out, ok := m.decodeTo[string(raw)]
	if !ok {
		return string(raw), nil
	}
	return out, nil
}

func (m *mappingParser) ParseTextModule(string) (modules.TextModule, error) { return nil, nil }

func (m *mappingParser) ParseTextInlineModule(string) (modules.TextModule, error) { return nil, nil }

var errParse = &parseFailError{}

type parseFailError struct{}

func (*parseFailError) Error() string { return "malformed binary" }
