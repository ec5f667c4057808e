// Package modules holds the small vocabulary of opaque handle types shared
// between internal/script (which names them in directives),
// internal/capability (which names them in collaborator contracts) and
// internal/linkstate (which stores them in the registry). Keeping them
// here breaks what would otherwise be an import cycle between script and
// capability: both need to talk about "a parsed module" or "a linked
// function" without either owning the other's vocabulary.
package modules

import (
	"context"

	"github.com/wasmconform/harness/internal/value"
)

// TextModule is an opaque handle to a parsed text-format module AST. Its
// shape belongs to whatever Parser implementation produced it.
type TextModule interface{}

// CompiledModule is an opaque handle to a module compiled up to (but not
// across) the link boundary: compile.*.until_link in spec.md's notation.
type CompiledModule interface{}

// FuncHandle is an opaque handle to an exported function.
type FuncHandle interface{}

// GlobalHandle is an opaque handle to an exported global.
type GlobalHandle interface{}

// EnvID identifies one runtime environment (spec.md §3's "Environment").
type EnvID uint64

// ExportSet is what a successfully linked module contributes to the link
// state (spec.md §3's `exports` record).
type ExportSet struct {
	Functions map[string]FuncHandle
	Globals   map[string]GlobalHandle
}

// Options bundles the compile/link/interpret knobs held constant per
// spec.md §4.5 across every pipeline invocation, except Optimize which is
// threaded from the driver's own parameter.
type Options struct {
	Optimize bool
}

// HostModule declaratively describes a host-provided module's exports, so
// internal/hostmodule can describe the spectest fixture without depending
// on a concrete compiler/linker implementation.
type HostModule struct {
	Name      string
	Functions map[string]HostFunc
	Globals   map[string]HostGlobal
}

// HostFunc is a host function export.
type HostFunc struct {
	ParamCount int
	Call       func(ctx context.Context, args []value.Value) ([]value.Value, error)
}

// HostGlobal is a host global export with a fixed initial value.
type HostGlobal struct {
	Value value.Value
}
