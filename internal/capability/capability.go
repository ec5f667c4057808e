// Package capability describes the external collaborators spec.md §6 lists
// as out of scope for the core: the parser, the compiler, the validator,
// the linker, and the interpreter. Each is captured here as a narrow
// interface so the driver in internal/driver can orchestrate them without
// knowing how any of them are implemented.
//
// None of the concrete engines in the example corpus this repository was
// grounded on (wazero's own interpreter/compiler engines, wasmtime-go,
// wasmer-go) are implemented here — per spec.md §1 they are the thing the
// harness sits on top of, not part of it.
package capability

import (
	"context"

	"github.com/wasmconform/harness/internal/modules"
	"github.com/wasmconform/harness/internal/script"
	"github.com/wasmconform/harness/internal/value"
)

// Parser is the text/binary front end (spec.md §6 "Parser").
type Parser interface {
	// ParseTextScript parses a full spec-test script into directives. The
	// driver only calls this for quoted/malformed-quote sub-scripts; the
	// top-level script is already parsed before Run/Exec is invoked.
	ParseTextScript(src string) ([]script.Directive, error)
	// ParseTextModule parses a single text-format module.
	ParseTextModule(src string) (modules.TextModule, error)
	// ParseTextInlineModule parses a module embedded inline in a quoted
	// script fragment.
	ParseTextInlineModule(src string) (modules.TextModule, error)
	// ParseBinaryModule parses a raw Wasm binary into a pre-validation form.
	ParseBinaryModule(bytes []byte) (modules.CompiledModule, error)
}

// LinkedModule bundles the compiled module ready for interpretation with
// the exports and environment it was linked into — spec.md §6 describes
// compile_*_until_link as returning "(Module, LS)"; LinkedModule is that
// pair's Go shape, minus the rest of LS which the driver already owns.
type LinkedModule struct {
	Compiled modules.CompiledModule
	Exports  modules.ExportSet
	Env      modules.EnvID
}

// Compiler lowers a parsed module to its internal form, stopping either at
// the link boundary or (for quoted-malformed round trips) re-emitting text
// as binary (spec.md §6 "Compiler"). CompileTextUntilLink and
// CompileBinaryUntilLink perform linking as part of "until_link", per
// spec.md §6's compile_*_until_link(ls, m, opts) -> Result<(Module, LS),
// ErrKind> contract.
type Compiler interface {
	CompileTextUntilLink(ls LinkStateView, m modules.TextModule, opts modules.Options) (LinkedModule, error)
	CompileBinaryUntilLink(ls LinkStateView, m modules.CompiledModule, opts modules.Options) (LinkedModule, error)
	CompileTextUntilBinary(m modules.TextModule, opts modules.Options) ([]byte, error)
}

// Validator validates a module decoded from binary (spec.md §6 "Validator").
type Validator interface {
	ValidateBinary(m modules.CompiledModule) error
}

// Linker resolves imports against a link state and produces the exports of
// a newly instantiated module (spec.md §6 "Linker").
type Linker interface {
	LinkModule(ls LinkStateView, name string, m modules.CompiledModule) (modules.ExportSet, modules.EnvID, error)
	// ExternModule installs a host module's exports directly, without
	// going through compile/link (used for the spectest/spectest_extern
	// fixtures installed at driver initialization).
	ExternModule(name string, host modules.HostModule) (modules.ExportSet, modules.EnvID)
}

// Interpreter executes compiled modules and invokes functions from outside
// the module graph (spec.md §6 "Interpreter").
type Interpreter interface {
	// InterpretModule runs a module's start function, if any, within env.
	InterpretModule(ctx context.Context, env modules.EnvID, m modules.CompiledModule) error
	// ExecFuncFromOutside calls f with args already in interpreter push
	// order (the action executor is responsible for the spec.md §4.4
	// reversal before this call).
	ExecFuncFromOutside(ctx context.Context, env modules.EnvID, f modules.FuncHandle, args []value.Value) ([]value.Value, error)
	// ReadGlobal returns a global's current value, for the Get action
	// (spec.md §4.4: "Return a single-element result containing its
	// current value").
	ReadGlobal(ctx context.Context, g modules.GlobalHandle) (value.Value, error)
}

// LinkStateView is the read-only surface of the link state that compile and
// link calls need, to resolve imports against previously registered
// modules. internal/linkstate.LinkState implements it.
type LinkStateView interface {
	Lookup(name string) (modules.ExportSet, modules.EnvID, bool)
}

// Encoder re-serializes a compiled module back to its binary form. It backs
// the optional round-trip check in internal/driver (grounded on the
// teacher's TestBinaryEncoder in spectest.go, which decodes then
// re-encodes every binary fixture and diffs the two byte strings modulo
// custom sections); it is not part of the core pipeline spec.md §6
// describes and is never called from Run/Exec.
type Encoder interface {
	EncodeModule(m modules.CompiledModule) []byte
}

// Logger is the advisory info(fmt, ...) sink from spec.md §6. Messages
// must never alter semantics; the driver calls it purely for diagnostics.
type Logger interface {
	Infof(format string, args ...interface{})
}

// NopLogger discards every message. Useful for tests that don't want
// logger output interleaved with test failures.
type NopLogger struct{}

// Infof implements Logger by doing nothing.
func (NopLogger) Infof(string, ...interface{}) {}
