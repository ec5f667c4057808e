package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/wasmconform/harness/internal/capability"
	"github.com/wasmconform/harness/internal/errkind"
	"github.com/wasmconform/harness/internal/modules"
	"github.com/wasmconform/harness/internal/script"
	"github.com/wasmconform/harness/internal/value"
)

// The fakes in this file stand in for a real Wasm engine. Modules are
// plain strings: their content is sniffed for marker substrings (FAIL_*,
// TRAPFUNC) to steer which pipeline stage fails, which is all the driver's
// own dispatch logic needs exercised — none of these fakes attempt to
// model actual Wasm semantics.

type fakeParser struct {
	scripts map[string][]script.Directive
}

func (p *fakeParser) ParseTextScript(src string) ([]script.Directive, error) {
	ds, ok := p.scripts[src]
	if !ok {
		return nil, errkind.ParseFail("unknown quoted script fixture")
	}
	return ds, nil
}

func (p *fakeParser) ParseTextModule(src string) (modules.TextModule, error) {
	if strings.Contains(src, "FAIL_PARSE") {
		return nil, errkind.ParseFail("unexpected token")
	}
	return src, nil
}

func (p *fakeParser) ParseTextInlineModule(src string) (modules.TextModule, error) {
	return p.ParseTextModule(src)
}

func (p *fakeParser) ParseBinaryModule(raw []byte) (modules.CompiledModule, error) {
	s := string(raw)
	if strings.Contains(s, "FAIL_PARSE") {
		return nil, errkind.ParseFail("magic header not detected")
	}
	return s, nil
}

type fakeCompiler struct{}

func (fakeCompiler) compileUntilLink(m modules.TextModule) (capability.LinkedModule, error) {
	src, _ := m.(string)
	if strings.Contains(src, "FAIL_COMPILE") {
		return capability.LinkedModule{}, errkind.Msg("type mismatch")
	}
	funcs := map[string]modules.FuncHandle{"f": "run-handle"}
	if strings.Contains(src, "TRAPFUNC") {
		funcs["f"] = "trap-handle"
	}
	globals := map[string]modules.GlobalHandle{"g": value.I32(99)}
	return capability.LinkedModule{
		Compiled: src,
		Exports:  modules.ExportSet{Functions: funcs, Globals: globals},
		Env:      modules.EnvID(1),
	}, nil
}

func (c fakeCompiler) CompileTextUntilLink(_ capability.LinkStateView, m modules.TextModule, _ modules.Options) (capability.LinkedModule, error) {
	return c.compileUntilLink(m)
}

func (c fakeCompiler) CompileBinaryUntilLink(_ capability.LinkStateView, m modules.CompiledModule, _ modules.Options) (capability.LinkedModule, error) {
	return c.compileUntilLink(m)
}

func (fakeCompiler) CompileTextUntilBinary(m modules.TextModule, _ modules.Options) ([]byte, error) {
	src, _ := m.(string)
	if strings.Contains(src, "FAIL_ENCODE") {
		return nil, errkind.Msg("encode failed")
	}
	return []byte(src), nil
}

type fakeValidator struct{}

func (fakeValidator) ValidateBinary(m modules.CompiledModule) error {
	s, _ := m.(string)
	if strings.Contains(s, "FAIL_VALIDATE") {
		return errkind.Msg("invalid result arity")
	}
	return nil
}

type fakeLinker struct{}

func (fakeLinker) LinkModule(_ capability.LinkStateView, _ string, m modules.CompiledModule) (modules.ExportSet, modules.EnvID, error) {
	s, _ := m.(string)
	if strings.Contains(s, "FAIL_LINK") {
		return modules.ExportSet{}, 0, errkind.Msg("unknown import")
	}
	return modules.ExportSet{Functions: map[string]modules.FuncHandle{"f": "run-handle"}}, modules.EnvID(2), nil
}

func (fakeLinker) ExternModule(name string, host modules.HostModule) (modules.ExportSet, modules.EnvID) {
	exports := modules.ExportSet{
		Functions: map[string]modules.FuncHandle{},
		Globals:   map[string]modules.GlobalHandle{},
	}
	for k, v := range host.Functions {
		exports.Functions[k] = v
	}
	for k, v := range host.Globals {
		exports.Globals[k] = v.Value
	}
	return exports, modules.EnvID(3)
}

type fakeInterpreter struct{}

func (fakeInterpreter) InterpretModule(_ context.Context, _ modules.EnvID, m modules.CompiledModule) error {
	s, _ := m.(string)
	if strings.Contains(s, "FAIL_INTERP") {
		return errkind.Msg("unreachable executed")
	}
	return nil
}

func (fakeInterpreter) ExecFuncFromOutside(ctx context.Context, _ modules.EnvID, f modules.FuncHandle, args []value.Value) ([]value.Value, error) {
	switch h := f.(type) {
	case modules.HostFunc:
		return h.Call(ctx, args)
	case string:
		switch h {
		case "trap-handle":
			return nil, errkind.Msg("out of bounds memory access")
		case "run-handle":
			return args, nil
		}
	}
	return nil, fmt.Errorf("fakeInterpreter: unknown function handle %v", f)
}

func (fakeInterpreter) ReadGlobal(_ context.Context, g modules.GlobalHandle) (value.Value, error) {
	if v, ok := g.(value.Value); ok {
		return v, nil
	}
	return value.Value{}, fmt.Errorf("fakeInterpreter: unknown global handle %v", g)
}

func newTestConfig(scripts map[string][]script.Directive) Config {
	return Config{
		Parser:      &fakeParser{scripts: scripts},
		Compiler:    fakeCompiler{},
		Validator:   fakeValidator{},
		Linker:      fakeLinker{},
		Interpreter: fakeInterpreter{},
	}
}
