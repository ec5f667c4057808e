// Package action implements the action executor from spec.md §4.4:
// translating invoke/get actions into calls against the interpreter,
// through the name resolver in internal/linkstate.
package action

import (
	"context"
	"fmt"

	"github.com/wasmconform/harness/internal/capability"
	"github.com/wasmconform/harness/internal/linkstate"
	"github.com/wasmconform/harness/internal/literal"
	"github.com/wasmconform/harness/internal/script"
	"github.com/wasmconform/harness/internal/value"
)

// Executor runs actions against a link state and an interpreter
// capability, implementing spec.md §4.4's action(ls, a).
type Executor struct {
	Interpreter capability.Interpreter
	HostBrand   value.Brand
}

// New constructs an Executor bound to interp, stamping HostBrand onto any
// Const_extern arguments it converts.
func New(interp capability.Interpreter, hostBrand value.Brand) Executor {
	return Executor{Interpreter: interp, HostBrand: hostBrand}
}

// Run implements action(ls, a) -> Result<[V], ErrKind>.
func (x Executor) Run(ctx context.Context, ls *linkstate.LinkState, a script.Action) ([]value.Value, error) {
	switch a.Kind {
	case script.ActionInvoke:
		return x.invoke(ctx, ls, a)
	case script.ActionGet:
		return x.get(ctx, ls, a)
	default:
		return nil, fmt.Errorf("action: unsupported action kind %d", a.Kind)
	}
}

// invoke implements spec.md §4.4's Invoke(mod_id?, name, args):
//  1. Convert each arg to a runtime V via value_of_const.
//  2. Resolve (f, env_id) via the name resolver.
//  3. Reverse the argument list to form the call stack in interpreter push
//     order.
//  4. Execute via the interpreter's external-invocation entry point.
func (x Executor) invoke(ctx context.Context, ls *linkstate.LinkState, a script.Action) ([]value.Value, error) {
	args := make([]value.Value, len(a.Args))
	for i, c := range a.Args {
		v, err := ValueOfConstBranded(c, x.HostBrand)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	f, env, err := ls.ResolveFunc(a.Module, a.Name)
	if err != nil {
		return nil, err
	}

	reversed := make([]value.Value, len(args))
	for i, v := range args {
		reversed[len(args)-1-i] = v
	}

	return x.Interpreter.ExecFuncFromOutside(ctx, env, f, reversed)
}

// get implements spec.md §4.4's Get(mod_id?, name): resolve the global,
// return a single-element result containing its current value.
func (x Executor) get(ctx context.Context, ls *linkstate.LinkState, a script.Action) ([]value.Value, error) {
	g, err := ls.ResolveGlobal(a.Module, a.Name)
	if err != nil {
		return nil, err
	}
	v, err := x.Interpreter.ReadGlobal(ctx, g)
	if err != nil {
		return nil, err
	}
	return []value.Value{v}, nil
}

// ValueOfConst implements spec.md §4.4's value_of_const: maps a literal
// constant to the corresponding runtime Value. Const_null ht converts ht to
// the matching null ref variant; Const_extern i produces an externref with
// payload i. Any unsupported constant is a hard error.
//
// ValueOfConst stamps the zero Brand on Const_extern values; use
// ValueOfConstBranded to stamp the host brand. Executor uses the latter,
// with the brand internal/driver passes to New. This function has no
// global state of its own.
func ValueOfConst(c literal.Const) (value.Value, error) {
	return valueOfConstWithBrand(c, 0)
}

// ValueOfConstBranded is ValueOfConst parameterized by the host brand to
// stamp onto Const_extern literals.
func ValueOfConstBranded(c literal.Const, brand value.Brand) (value.Value, error) {
	return valueOfConstWithBrand(c, brand)
}

func valueOfConstWithBrand(c literal.Const, brand value.Brand) (value.Value, error) {
	switch c.Kind {
	case literal.KindI32:
		return value.I32(c.I32), nil
	case literal.KindI64:
		return value.I64(c.I64), nil
	case literal.KindF32:
		return value.F32(c.F32Bits), nil
	case literal.KindF64:
		return value.F64(c.F64Bits), nil
	case literal.KindV128:
		return value.V128(c.V128Lo, c.V128Hi), nil
	case literal.KindNull:
		switch c.NullHeapType {
		case literal.HeapTypeFunc:
			return value.Ref(value.NullFuncRef()), nil
		case literal.HeapTypeExtern:
			return value.Ref(value.NullExternRef()), nil
		default:
			literal.PanicUnsupported("action.ValueOfConst: heap type")
			return value.Value{}, nil
		}
	case literal.KindExtern:
		return value.Ref(value.ExternRef(value.ExternPayload{Brand: brand, Payload: int64(c.ExternPayload)})), nil
	case literal.KindUnsupported:
		literal.PanicUnsupported("action.ValueOfConst: unsupported const literal")
		return value.Value{}, nil
	default:
		literal.PanicUnsupported(fmt.Sprintf("action.ValueOfConst: Kind %d", c.Kind))
		return value.Value{}, nil
	}
}
