// Package hostmodule describes the two host fixtures spec.md §4.5's
// Initialization step installs before the first user directive runs:
// "spectest" (a normal, compiled text-format module) and "spectest_extern"
// (installed directly, without going through compile/link).
//
// This is grounded on the teacher's addSpectestModule helper
// (internal/integration_test/spectest/spectest.go in tetratelabs/wazero),
// which hand-builds the same fixture — print* functions that drop their
// argument, four constant globals, a table and a memory — but does so by
// mutating a decoded wasm.Module in place because wazero's own harness
// talks directly to its internal engine. Here the fixture is expressed as
// WAT source text (for the part that goes through the normal
// parse/compile/link pipeline) and as a declarative modules.HostModule
// (for the part that bypasses it), since this harness only ever talks to
// those pipelines through the capability interfaces.
package hostmodule

import (
	"context"

	"github.com/wasmconform/harness/internal/modules"
	"github.com/wasmconform/harness/internal/value"
)

// SpectestName is the name the host fixture module is registered under.
const SpectestName = "spectest"

// SpectestExternName is the name of the directly-installed host fixture.
const SpectestExternName = "spectest_extern"

// SpectestTextSource is the WAT source for the "spectest" fixture: globals
// fixed at 666 of each numeric type, a growable funcref table, a memory,
// and print functions that accept and discard their arguments rather than
// writing to a console (matching the upstream spec-test harness's choice
// not to clutter test output).
//
// See https://github.com/WebAssembly/spec/blob/wg-1.0/test/core/imports.wast
const SpectestTextSource = `(module $spectest
  (global (export "global_i32") i32 (i32.const 666))
  (global (export "global_i64") i64 (i64.const 666))
  (global (export "global_f32") f32 (f32.const 666))
  (global (export "global_f64") f64 (f64.const 666))

  (table (export "table") 10 20 funcref)
  (memory (export "memory") 1 2)

  (func (export "print"))
  (func (export "print_i32") (param i32) local.get 0 drop)
  (func (export "print_i64") (param i64) local.get 0 drop)
  (func (export "print_f32") (param f32) local.get 0 drop)
  (func (export "print_f64") (param f64) local.get 0 drop)
  (func (export "print_i32_f32") (param i32 f32) local.get 0 drop local.get 1 drop)
  (func (export "print_f64_f64") (param f64 f64) local.get 0 drop local.get 1 drop)
)`

// SpectestExtern builds the directly-installed "spectest_extern" fixture:
// host-native functions and globals that exercise externref handling
// end-to-end through the oracle's host-brand equality check (spec.md §4.1
// Literal(Extern n)), which nothing reachable through the plain
// parse/compile/link pipeline can produce on its own since externref
// values only ever originate at the host boundary.
func SpectestExtern(hostBrand value.Brand) modules.HostModule {
	return modules.HostModule{
		Name: SpectestExternName,
		Functions: map[string]modules.HostFunc{
			// make_externref constructs a branded externref carrying its
			// i32 argument as the payload, letting a script round-trip
			// `(assert_return (invoke "spectest_extern" "make_externref" (i32.const N)) (extern N))`.
			"make_externref": {
				ParamCount: 1,
				Call: func(_ context.Context, args []value.Value) ([]value.Value, error) {
					n := args[0].I32()
					ref := value.ExternRef(value.ExternPayload{Brand: hostBrand, Payload: int64(n)})
					return []value.Value{value.Ref(ref)}, nil
				},
			},
			// is_null_externref reports whether its argument is a null
			// externref, independent of brand.
			"is_null_externref": {
				ParamCount: 1,
				Call: func(_ context.Context, args []value.Value) ([]value.Value, error) {
					isNull := int32(0)
					if args[0].Kind() == value.KindRef && args[0].RefValue().IsNull() {
						isNull = 1
					}
					return []value.Value{value.I32(isNull)}, nil
				},
			},
		},
		Globals: map[string]modules.HostGlobal{
			"global_externref": {
				Value: value.Ref(value.ExternRef(value.ExternPayload{Brand: hostBrand, Payload: 0})),
			},
		},
	}
}
