// Package script defines the script data model from spec.md §3: an ordered
// sequence of directives (module forms, registration, bare actions, and
// assertions) that internal/driver folds over.
package script

import (
	"fmt"

	"github.com/wasmconform/harness/internal/literal"
	"github.com/wasmconform/harness/internal/modules"
	"github.com/wasmconform/harness/internal/oracle"
)

// ActionKind discriminates Invoke from Get.
type ActionKind byte

const (
	ActionInvoke ActionKind = iota
	ActionGet
)

// Action is an externally initiated interaction with the runtime
// (spec.md's glossary "Action"): invoke a function or read a global.
type Action struct {
	Kind   ActionKind
	Module *string // nil means "resolve against LS.last" per spec.md §4.3
	Name   string
	Args   []literal.Const // meaningful only for ActionInvoke
}

// Invoke constructs an invoke action.
func Invoke(module *string, name string, args ...literal.Const) Action {
	return Action{Kind: ActionInvoke, Module: module, Name: name, Args: args}
}

// Get constructs a get action.
func Get(module *string, name string) Action {
	return Action{Kind: ActionGet, Module: module, Name: name}
}

func (a Action) String() string {
	mod := "<last>"
	if a.Module != nil {
		mod = *a.Module
	}
	switch a.Kind {
	case ActionInvoke:
		return fmt.Sprintf("invoke %s.%s(%v)", mod, a.Name, a.Args)
	case ActionGet:
		return fmt.Sprintf("get %s.%s", mod, a.Name)
	default:
		return "action:unknown"
	}
}

// AssertKind enumerates the assertion directives from spec.md §3.
type AssertKind byte

const (
	AssertReturn AssertKind = iota
	AssertTrap
	AssertTrapModule
	AssertExhaustion
	AssertMalformed
	AssertMalformedBinary
	AssertMalformedQuote
	AssertInvalid
	AssertInvalidBinary
	AssertInvalidQuote
	AssertUnlinkable
)

func (k AssertKind) String() string {
	switch k {
	case AssertReturn:
		return "assert_return"
	case AssertTrap:
		return "assert_trap"
	case AssertTrapModule:
		return "assert_trap_module" // a.k.a. assert_uninstantiable
	case AssertExhaustion:
		return "assert_exhaustion"
	case AssertMalformed:
		return "assert_malformed"
	case AssertMalformedBinary:
		return "assert_malformed_binary"
	case AssertMalformedQuote:
		return "assert_malformed_quote"
	case AssertInvalid:
		return "assert_invalid"
	case AssertInvalidBinary:
		return "assert_invalid_binary"
	case AssertInvalidQuote:
		return "assert_invalid_quote"
	case AssertUnlinkable:
		return "assert_unlinkable"
	default:
		return "assert_unknown"
	}
}

// Assert is a directive that expects a specific success or failure shape
// (spec.md's glossary "Assertion"). Which of the Module, Binary, Quoted and
// Action fields is meaningful is selected by Kind; see the AssertKind
// dispatch in internal/driver for the mapping to pipeline stages.
type Assert struct {
	Kind AssertKind

	// Meaningful for AssertTrapModule, AssertMalformed, AssertInvalid,
	// AssertUnlinkable: an inline text-format module.
	Module modules.TextModule

	// Meaningful for AssertMalformedBinary, AssertInvalidBinary: raw bytes.
	Binary []byte

	// Meaningful for AssertMalformedQuote, AssertInvalidQuote: inline
	// quoted-text source.
	Quoted string

	// Meaningful for AssertReturn, AssertTrap, AssertExhaustion: the action
	// to perform.
	Action Action

	// Meaningful for AssertReturn: the expected result list.
	Expected []oracle.ExpR

	// Meaningful for every other kind: the expected error-message prefix
	// (spec.md §4.2).
	ExpectedError string
}

// DirectiveKind discriminates the Directive variants.
type DirectiveKind byte

const (
	DirectiveTextModule DirectiveKind = iota
	DirectiveQuotedModule
	DirectiveBinaryModule
	DirectiveRegister
	DirectiveAction
	DirectiveAssert
)

// Directive is one element of a script (spec.md's glossary "Directive").
type Directive struct {
	Kind DirectiveKind

	// Meaningful for DirectiveTextModule: the parsed module and its
	// optional declared id (the $name a script binds a module under).
	TextModule   modules.TextModule
	TextModuleID *string

	// Meaningful for DirectiveQuotedModule: inline quoted-text source.
	Quoted string

	// Meaningful for DirectiveBinaryModule: the declared id and raw bytes.
	BinaryID    *string
	BinaryBytes []byte

	// Meaningful for DirectiveRegister: the registered alias and the
	// module id it points to (nil means "the last instantiated module").
	RegisterName string
	RegisterID   *string

	// Meaningful for DirectiveAction: a bare action whose result is
	// discarded.
	Action Action

	// Meaningful for DirectiveAssert.
	Assert Assert
}

// TextModuleDirective constructs a text-format module definition directive.
func TextModuleDirective(id *string, m modules.TextModule) Directive {
	return Directive{Kind: DirectiveTextModule, TextModule: m, TextModuleID: id}
}

// QuotedModuleDirective constructs a quoted-text module definition directive.
func QuotedModuleDirective(src string) Directive {
	return Directive{Kind: DirectiveQuotedModule, Quoted: src}
}

// BinaryModuleDirective constructs a binary module definition directive.
func BinaryModuleDirective(id *string, bytes []byte) Directive {
	return Directive{Kind: DirectiveBinaryModule, BinaryID: id, BinaryBytes: bytes}
}

// RegisterDirective constructs a Register(name, mod_id?) directive.
func RegisterDirective(name string, modID *string) Directive {
	return Directive{Kind: DirectiveRegister, RegisterName: name, RegisterID: modID}
}

// ActionDirective constructs a bare Action directive.
func ActionDirective(a Action) Directive {
	return Directive{Kind: DirectiveAction, Action: a}
}

// AssertDirective constructs an Assert directive.
func AssertDirective(a Assert) Directive {
	return Directive{Kind: DirectiveAssert, Assert: a}
}

func (d Directive) String() string {
	switch d.Kind {
	case DirectiveTextModule:
		id := "<anon>"
		if d.TextModuleID != nil {
			id = *d.TextModuleID
		}
		return fmt.Sprintf("module %s", id)
	case DirectiveQuotedModule:
		return "module (quote)"
	case DirectiveBinaryModule:
		id := "<anon>"
		if d.BinaryID != nil {
			id = *d.BinaryID
		}
		return fmt.Sprintf("module %s (binary)", id)
	case DirectiveRegister:
		from := "<last>"
		if d.RegisterID != nil {
			from = *d.RegisterID
		}
		return fmt.Sprintf("register %q as %s", d.RegisterName, from)
	case DirectiveAction:
		return d.Action.String()
	case DirectiveAssert:
		return fmt.Sprintf("%s", d.Assert.Kind)
	default:
		return "directive:unknown"
	}
}

// Script is an ordered sequence of directives (spec.md §3 "Script (S)").
type Script []Directive
