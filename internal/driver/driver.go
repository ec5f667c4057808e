// Package driver implements the script-driver state machine from spec.md
// §4.5 and §6: folding a parsed script over a mutable link state, dispatching
// each directive to the capability pipeline it names, and classifying the
// result of every Assert directive through the error classifier and result
// oracle.
package driver

import (
	"context"
	"fmt"

	"github.com/wasmconform/harness/internal/action"
	"github.com/wasmconform/harness/internal/capability"
	"github.com/wasmconform/harness/internal/errkind"
	"github.com/wasmconform/harness/internal/hostmodule"
	"github.com/wasmconform/harness/internal/linkstate"
	"github.com/wasmconform/harness/internal/modules"
	"github.com/wasmconform/harness/internal/oracle"
	"github.com/wasmconform/harness/internal/script"
	"github.com/wasmconform/harness/internal/value"
)

// Config bundles the capability implementations the driver orchestrates
// (spec.md §6's "Driver" glossary entry: "owns LS and holds references to
// every other component"). Logger defaults to capability.NopLogger{} if nil.
type Config struct {
	Parser      capability.Parser
	Compiler    capability.Compiler
	Validator   capability.Validator
	Linker      capability.Linker
	Interpreter capability.Interpreter
	Logger      capability.Logger
}

// Options mirrors the per-run knobs spec.md §4.5 holds constant across a
// whole script: whether to optimize compiled modules, and whether
// assert_exhaustion directives are skipped entirely (spec.md §4.5's note
// that some embeddings run without a usable call stack limit and so treat
// assert_exhaustion as vacuously true).
type Options struct {
	Optimize     bool
	NoExhaustion bool
}

// Driver owns the mutable link state and the host brand, allocated once
// when the Driver is constructed by New and reused by every Run on it (spec.md §9 "Global state: a host-owned monotonically increasing
// counter, used to brand externref values created by the host").
type Driver struct {
	cfg       Config
	ls        *linkstate.LinkState
	oracle    oracle.Oracle
	action    action.Executor
	hostBrand value.Brand

	curModule  int
	registered bool
}

// New constructs a Driver. cfg.Logger defaults to a no-op logger.
func New(cfg Config) *Driver {
	if cfg.Logger == nil {
		cfg.Logger = capability.NopLogger{}
	}
	brand := value.NewBrand()
	return &Driver{
		cfg:       cfg,
		ls:        linkstate.New(),
		oracle:    oracle.New(brand),
		action:    action.New(cfg.Interpreter, brand),
		hostBrand: brand,
	}
}

// LinkState exposes the driver's link state for inspection after a run.
func (d *Driver) LinkState() *linkstate.LinkState { return d.ls }

// init installs the two host fixtures spec.md §4.5's Initialization step
// requires before the first user directive runs:
//
//	(a) spectest_extern, installed directly via Linker.ExternModule;
//	(b) [spectest_module; Register("spectest", Some "spectest")], run
//	    through the very same directive-dispatch function as any
//	    user-supplied directive.
func (d *Driver) init(ctx context.Context, opts Options) error {
	exports, env := d.cfg.Linker.ExternModule(hostmodule.SpectestExternName, hostmodule.SpectestExtern(d.hostBrand))
	d.ls.Install(hostmodule.SpectestExternName, exports, env)

	tm, err := d.cfg.Parser.ParseTextModule(hostmodule.SpectestTextSource)
	if err != nil {
		return fmt.Errorf("driver: failed to parse built-in spectest fixture: %w", err)
	}
	id := hostmodule.SpectestName
	prelude := []script.Directive{
		script.TextModuleDirective(&id, tm),
		script.RegisterDirective(hostmodule.SpectestName, &id),
	}
	for _, d2 := range prelude {
		if err := d.step(ctx, d2, opts); err != nil {
			return fmt.Errorf("driver: failed to install built-in spectest fixture: %w", err)
		}
	}
	return nil
}

// Run folds s over a freshly initialized link state, stopping at the first
// directive whose result the classifier or oracle rejects (spec.md §7: "Any
// capability error not consumed by an Assert's classifier terminates the
// driver; the oracle's BadResult is always fatal"). It returns the final
// link state regardless of outcome, so a caller can inspect how far the
// script ran.
func (d *Driver) Run(ctx context.Context, s script.Script, opts Options) (*linkstate.LinkState, error) {
	if err := d.init(ctx, opts); err != nil {
		return d.ls, err
	}
	for i, dir := range s {
		d.cfg.Logger.Infof("step %d: %s", i, dir)
		if err := d.step(ctx, dir, opts); err != nil {
			return d.ls, fmt.Errorf("directive %d (%s): %w", i, dir, err)
		}
	}
	return d.ls, nil
}

// Exec is Run discarding the final link state, for callers that only care
// about pass/fail (spec.md §6's Driver.exec entry point).
func (d *Driver) Exec(ctx context.Context, s script.Script, opts Options) error {
	_, err := d.Run(ctx, s, opts)
	return err
}

// step dispatches a single directive per the table in spec.md §4.5. A nil
// return means the directive succeeded (including an Assert whose expected
// failure shape matched); a non-nil return always terminates the fold.
func (d *Driver) step(ctx context.Context, dir script.Directive, opts Options) error {
	switch dir.Kind {
	case script.DirectiveTextModule:
		return d.defineTextModule(ctx, dir.TextModuleID, dir.TextModule, opts)

	case script.DirectiveQuotedModule:
		return d.defineQuotedModule(ctx, dir.Quoted, opts)

	case script.DirectiveBinaryModule:
		return d.defineBinaryModule(ctx, dir.BinaryID, dir.BinaryBytes, opts)

	case script.DirectiveRegister:
		return d.ls.Register(dir.RegisterName, dir.RegisterID)

	case script.DirectiveAction:
		_, err := d.action.Run(ctx, d.ls, dir.Action)
		return err

	case script.DirectiveAssert:
		return d.assert(ctx, dir.Assert, opts)

	default:
		return fmt.Errorf("driver: unknown directive kind %d", dir.Kind)
	}
}

// nextAnonID stamps an id for a module directive that didn't declare one,
// so every successfully instantiated module has an entry in LS (spec.md §3
// "module-id" need not be the declared name — an anonymous module still
// occupies LS.last).
func (d *Driver) nextAnonID() string {
	d.curModule++
	return fmt.Sprintf("$anon%d", d.curModule)
}

func (d *Driver) resolveID(id *string) string {
	if id != nil {
		return *id
	}
	return d.nextAnonID()
}

// defineTextModule implements the Module(id?, text) row: compile.text.until_link
// then interpret.modul; install into LS only if both succeed.
func (d *Driver) defineTextModule(ctx context.Context, id *string, tm modules.TextModule, opts Options) error {
	linked, err := d.cfg.Compiler.CompileTextUntilLink(d.ls, tm, modules.Options{Optimize: opts.Optimize})
	if err != nil {
		return err
	}
	return d.interpretAndInstall(ctx, d.resolveID(id), linked)
}

// defineQuotedModule implements the Module(quote s) row: parse.text.inline_module
// then the same compile+interpret+install sequence as a text module.
func (d *Driver) defineQuotedModule(ctx context.Context, src string, opts Options) error {
	tm, err := d.cfg.Parser.ParseTextInlineModule(src)
	if err != nil {
		return err
	}
	return d.defineTextModule(ctx, nil, tm, opts)
}

// defineBinaryModule implements the Module(id?, binary bytes) row:
// parse.binary.module then compile.binary.until_link then interpret.modul.
func (d *Driver) defineBinaryModule(ctx context.Context, id *string, raw []byte, opts Options) error {
	parsed, err := d.cfg.Parser.ParseBinaryModule(raw)
	if err != nil {
		return err
	}
	linked, err := d.cfg.Compiler.CompileBinaryUntilLink(d.ls, parsed, modules.Options{Optimize: opts.Optimize})
	if err != nil {
		return err
	}
	return d.interpretAndInstall(ctx, d.resolveID(id), linked)
}

// interpretAndInstall runs a linked module's start function and, only on
// success, installs it into LS (spec.md §3 "LS.last is defined iff at least
// one module directive has succeeded" — a start-function trap must not
// leave a half-alive entry behind).
func (d *Driver) interpretAndInstall(ctx context.Context, id string, linked capability.LinkedModule) error {
	if err := d.cfg.Interpreter.InterpretModule(ctx, linked.Env, linked.Compiled); err != nil {
		return err
	}
	d.ls.Install(id, linked.Exports, linked.Env)
	return nil
}

// assert dispatches one Assert directive per spec.md §4.2/§4.5's table.
// Every branch funnels its pipeline error (or lack of one) through either
// the oracle (assert_return) or errkind.CheckErrorResult (every other
// kind), and that classified result — nil or non-nil — is the directive's
// final outcome. No branch ever installs its module into LS: each of these
// kinds exists specifically to exercise an expected-failure path, and the
// one kind with an install-shaped name (assert_trap_module, a.k.a.
// assert_uninstantiable in the upstream corpus) expects instantiation
// itself to fail.
func (d *Driver) assert(ctx context.Context, a script.Assert, opts Options) error {
	switch a.Kind {
	case script.AssertReturn:
		return d.assertReturn(ctx, a)
	case script.AssertTrap:
		return d.assertTrap(ctx, a)
	case script.AssertTrapModule:
		return d.assertTrapModule(ctx, a, opts)
	case script.AssertExhaustion:
		return d.assertExhaustion(ctx, a, opts)
	case script.AssertMalformed:
		return d.assertMalformed(ctx, a, opts)
	case script.AssertMalformedBinary:
		return d.assertMalformedBinary(a)
	case script.AssertMalformedQuote:
		return d.assertMalformedQuote(a, opts)
	case script.AssertInvalid:
		return d.assertInvalid(ctx, a, opts)
	case script.AssertInvalidBinary:
		return d.assertInvalidBinary(a)
	case script.AssertInvalidQuote:
		return d.assertInvalidQuote(a)
	case script.AssertUnlinkable:
		return d.assertUnlinkable(ctx, a, opts)
	default:
		return fmt.Errorf("driver: unknown assert kind %d", a.Kind)
	}
}

// assertReturn implements spec.md §4.1's use from the assert side:
// action(ls, a) then reverse the produced stack into source order and
// compare with Oracle.Matches. A mismatch (or an unexpected action error)
// is always fatal — assert_return never expects failure, so there is no
// classifier step to absorb one.
func (d *Driver) assertReturn(ctx context.Context, a script.Assert) error {
	produced, err := d.action.Run(ctx, d.ls, a.Action)
	if err != nil {
		return err
	}
	reversed := make([]value.Value, len(produced))
	for i, v := range produced {
		reversed[len(produced)-1-i] = v
	}
	if !d.oracle.Matches(a.Expected, reversed) {
		d.cfg.Logger.Infof("assert_return: got %v, expected %v", reversed, a.Expected)
		return errkind.BadResult()
	}
	return nil
}

func (d *Driver) assertTrap(ctx context.Context, a script.Assert) error {
	_, err := d.action.Run(ctx, d.ls, a.Action)
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

// assertTrapModule implements assert_trap_module (a.k.a. assert_uninstantiable):
// compile.text.until_link then, only if that succeeded, interpret.modul;
// whichever stage fails first supplies the error check_error_result
// classifies. A module that unexpectedly instantiates cleanly is not
// installed into LS — this directive has no declared id to install it
// under, matching the dead "otherwise" branch spec.md notes for this row.
func (d *Driver) assertTrapModule(ctx context.Context, a script.Assert, opts Options) error {
	linked, err := d.cfg.Compiler.CompileTextUntilLink(d.ls, a.Module, modules.Options{Optimize: opts.Optimize})
	if err == nil {
		err = d.cfg.Interpreter.InterpretModule(ctx, linked.Env, linked.Compiled)
	}
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

// assertExhaustion implements assert_exhaustion, including the
// NoExhaustion escape hatch spec.md §4.5 describes for embeddings that
// can't observe a call-stack-exhaustion trap: when set, the directive
// always succeeds without running the action at all.
func (d *Driver) assertExhaustion(ctx context.Context, a script.Assert, opts Options) error {
	if opts.NoExhaustion {
		return nil
	}
	_, err := d.action.Run(ctx, d.ls, a.Action)
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

func (d *Driver) assertMalformed(ctx context.Context, a script.Assert, opts Options) error {
	_, err := d.cfg.Compiler.CompileTextUntilLink(d.ls, a.Module, modules.Options{Optimize: opts.Optimize})
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

func (d *Driver) assertMalformedBinary(a script.Assert) error {
	_, err := d.cfg.Parser.ParseBinaryModule(a.Binary)
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

// assertMalformedQuote implements assert_malformed(quote s): parse the
// quoted source as a full script and, if it parses to exactly one
// text-module directive, run it through compile.text.until_binary (not
// until_link — a malformed-quote check only needs the text-to-binary
// encoder to fail, per spec.md §4.5's note that this is the one row that
// drives the Compiler's until_binary entry point rather than until_link).
func (d *Driver) assertMalformedQuote(a script.Assert, opts Options) error {
	directives, err := d.cfg.Parser.ParseTextScript(a.Quoted)
	if err != nil {
		return errkind.CheckErrorResult(a.ExpectedError, err)
	}
	if len(directives) != 1 || directives[0].Kind != script.DirectiveTextModule {
		return fmt.Errorf("driver: assert_malformed(quote ...) expected exactly one module definition, got %d directives", len(directives))
	}
	_, err = d.cfg.Compiler.CompileTextUntilBinary(directives[0].TextModule, modules.Options{Optimize: opts.Optimize})
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

func (d *Driver) assertInvalid(ctx context.Context, a script.Assert, opts Options) error {
	_, err := d.cfg.Compiler.CompileTextUntilLink(d.ls, a.Module, modules.Options{Optimize: opts.Optimize})
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

// assertInvalidBinary implements assert_invalid(binary bytes): stage the
// parse/validate/link pipeline by hand rather than through
// CompileBinaryUntilLink, since spec.md §4.5 calls this row out separately
// from assert_unlinkable specifically so the three stages can be
// distinguished by whichever one first reports failure.
func (d *Driver) assertInvalidBinary(a script.Assert) error {
	parsed, err := d.cfg.Parser.ParseBinaryModule(a.Binary)
	if err == nil {
		err = d.cfg.Validator.ValidateBinary(parsed)
	}
	if err == nil {
		_, _, err = d.cfg.Linker.LinkModule(d.ls, "", parsed)
	}
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

func (d *Driver) assertInvalidQuote(a script.Assert) error {
	_, err := d.cfg.Parser.ParseTextModule(a.Quoted)
	return errkind.CheckErrorResult(a.ExpectedError, err)
}

func (d *Driver) assertUnlinkable(ctx context.Context, a script.Assert, opts Options) error {
	_, err := d.cfg.Compiler.CompileTextUntilLink(d.ls, a.Module, modules.Options{Optimize: opts.Optimize})
	return errkind.CheckErrorResult(a.ExpectedError, err)
}
