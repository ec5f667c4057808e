// Package linkstate implements the link state machine from spec.md §3-4.3:
// a named registry of instantiated modules plus the name resolver that
// looks functions and globals up through it.
package linkstate

import (
	"github.com/wasmconform/harness/internal/errkind"
	"github.com/wasmconform/harness/internal/modules"
)

// entry is one module-id's registry row: spec.md §3's `(exports, env_id)`.
type entry struct {
	exports modules.ExportSet
	env     modules.EnvID
}

// LinkState is LS from spec.md §3: a mapping from module-id to
// (exports, env_id), plus an optional `last` pointer to the most recently
// instantiated module, plus the set of environments referenced by any
// entry.
//
// The driver owns a single LinkState and mutates it in place (spec.md §4.5
// explicitly describes "The driver holds mutable ls: LS"); there is no
// persistent/functional variant here, matching that mutable contract.
type LinkState struct {
	byID map[string]entry
	last *string
	envs map[modules.EnvID]struct{}
}

// New constructs an empty LinkState: no modules, no last pointer.
func New() *LinkState {
	return &LinkState{
		byID: make(map[string]entry),
		envs: make(map[modules.EnvID]struct{}),
	}
}

// Lookup implements capability.LinkStateView, used by Compiler/Linker calls
// that need to resolve imports against previously registered modules.
func (ls *LinkState) Lookup(name string) (modules.ExportSet, modules.EnvID, bool) {
	e, ok := ls.byID[name]
	if !ok {
		return modules.ExportSet{}, 0, false
	}
	return e.exports, e.env, true
}

// Install records a newly linked module under id, marks it as LS.last, and
// tracks its environment. This is the only way new module-id entries enter
// the registry (spec.md §3 "Lifecycles": "Modules are created by the
// compile/link pipeline, never destroyed").
func (ls *LinkState) Install(id string, exports modules.ExportSet, env modules.EnvID) {
	ls.byID[id] = entry{exports: exports, env: env}
	last := id
	ls.last = &last
	ls.envs[env] = struct{}{}
}

// Register implements spec.md §4.5's Register(name, mod_id?) directive:
// "Register does not create a new environment; it installs an alias in the
// name map." If modID is nil, the alias points at whatever LS.last
// currently names.
func (ls *LinkState) Register(name string, modID *string) error {
	src := modID
	if src == nil {
		if ls.last == nil {
			return errkind.UnboundLastModule()
		}
		src = ls.last
	}
	e, ok := ls.byID[*src]
	if !ok {
		return errkind.UnboundModule(*src)
	}
	ls.byID[name] = e
	return nil
}

// Last reports the module-id most recently passed to Install (Register does
// not change it), and whether one exists (spec.md §3 "LS.last is defined iff at least one
// module directive has succeeded").
func (ls *LinkState) Last() (string, bool) {
	if ls.last == nil {
		return "", false
	}
	return *ls.last, true
}

// HasModule reports whether id names a known module, directly or via alias.
func (ls *LinkState) HasModule(id string) bool {
	_, ok := ls.byID[id]
	return ok
}

// HasEnv reports whether env is one of the environments referenced by any
// entry in the registry — used to check the invariant in spec.md §3:
// "Every env_id referenced by any (exports, env_id) in LS exists in envs."
func (ls *LinkState) HasEnv(env modules.EnvID) bool {
	_, ok := ls.envs[env]
	return ok
}

// ModuleIDs returns every module-id currently registered, for diagnostics
// and tests (spec.md §8 invariant 1 is phrased in terms of this set).
func (ls *LinkState) ModuleIDs() []string {
	ids := make([]string, 0, len(ls.byID))
	for id := range ls.byID {
		ids = append(ids, id)
	}
	return ids
}

// resolveModule looks up the entry a resolver call should act against:
// modID if present, else LS.last (spec.md §4.3).
func (ls *LinkState) resolveModule(modID *string) (entry, error) {
	if modID == nil {
		if ls.last == nil {
			return entry{}, errkind.UnboundLastModule()
		}
		e, ok := ls.byID[*ls.last]
		if !ok {
			// Defensive: Install adds the entry before setting LS.last and
			// no entry is ever removed, so this does not occur through
			// this package's API. Report it as the resolver failure for
			// the id LS.last names.
			return entry{}, errkind.UnboundModule(*ls.last)
		}
		return e, nil
	}
	e, ok := ls.byID[*modID]
	if !ok {
		return entry{}, errkind.UnboundModule(*modID)
	}
	return e, nil
}

// ResolveFunc implements spec.md §4.3's resolve_func.
func (ls *LinkState) ResolveFunc(modID *string, name string) (modules.FuncHandle, modules.EnvID, error) {
	e, err := ls.resolveModule(modID)
	if err != nil {
		return nil, 0, err
	}
	f, ok := e.exports.Functions[name]
	if !ok {
		return nil, 0, errkind.UnboundName(name)
	}
	return f, e.env, nil
}

// ResolveGlobal implements spec.md §4.3's resolve_global.
func (ls *LinkState) ResolveGlobal(modID *string, name string) (modules.GlobalHandle, error) {
	e, err := ls.resolveModule(modID)
	if err != nil {
		return nil, err
	}
	g, ok := e.exports.Globals[name]
	if !ok {
		return nil, errkind.UnboundName(name)
	}
	return g, nil
}
