// Package errkind implements the flat error taxonomy and classifier from
// spec.md §4.2 and §7. It is grounded in the teacher's
// wasmruntime.ErrRuntime* convention (sentinel errors panicked by the
// interpreter and compared with errors.Is in tests), generalized to a
// closed sum type so the driver can canonicalize and prefix-match messages
// coming from any of the external capabilities.
package errkind

import "fmt"

// Tag discriminates the ErrKind variants.
type Tag int

const (
	// TagMsg wraps a free-form message produced by a capability (e.g. the
	// interpreter's trap text, the linker's unlinkable reason).
	TagMsg Tag = iota
	// TagParseFail wraps a parser-produced message (text or binary front end).
	TagParseFail
	// TagConstantOutOfRange is the distinguished kind the decoder/compiler
	// emits for an out-of-range integer constant, separate from TagMsg so
	// the classifier can special-case it without string sniffing.
	TagConstantOutOfRange
	// TagUnboundLastModule is returned by the name resolver when an action
	// with no module id is resolved before any module has been installed.
	TagUnboundLastModule
	// TagUnboundModule is returned when a referenced module id has no entry
	// in the link state.
	TagUnboundModule
	// TagUnboundName is returned when a name is absent from a module's
	// export map.
	TagUnboundName
	// TagBadResult is returned by the driver when the oracle rejects a
	// produced value stack for an assert_return.
	TagBadResult
	// TagFailedWithButExpected wraps an inner ErrKind together with the
	// expected string prefix it failed to match.
	TagFailedWithButExpected
	// TagDidNotFailButExpected is returned by check_error_result when the
	// staged computation succeeded but an Assert directive required it to
	// fail.
	TagDidNotFailButExpected
)

// ErrKind is the flat tagged sum from spec.md §7. It implements the error
// interface so it composes with the rest of Go's error handling, but the
// driver and classifier always operate on the typed value, not on
// err.Error() alone.
type ErrKind struct {
	Tag  Tag
	Text string   // meaningful for TagMsg, TagParseFail, TagUnboundModule, TagUnboundName, TagDidNotFailButExpected (the expected string)
	Wrap *ErrKind // meaningful for TagFailedWithButExpected
}

// Msg constructs a TagMsg ErrKind.
func Msg(s string) ErrKind { return ErrKind{Tag: TagMsg, Text: s} }

// ParseFail constructs a TagParseFail ErrKind.
func ParseFail(s string) ErrKind { return ErrKind{Tag: TagParseFail, Text: s} }

// ConstantOutOfRange constructs the distinguished out-of-range-constant ErrKind.
func ConstantOutOfRange() ErrKind { return ErrKind{Tag: TagConstantOutOfRange} }

// UnboundLastModule constructs the "no last module" ErrKind.
func UnboundLastModule() ErrKind { return ErrKind{Tag: TagUnboundLastModule} }

// UnboundModule constructs the "unknown module id" ErrKind.
func UnboundModule(id string) ErrKind { return ErrKind{Tag: TagUnboundModule, Text: id} }

// UnboundName constructs the "unknown export name" ErrKind.
func UnboundName(name string) ErrKind { return ErrKind{Tag: TagUnboundName, Text: name} }

// BadResult constructs the oracle-mismatch ErrKind.
func BadResult() ErrKind { return ErrKind{Tag: TagBadResult} }

// FailedWithButExpected wraps inner, the ErrKind a staged computation
// actually produced, together with the expected prefix it was checked
// against and failed to match.
func FailedWithButExpected(inner ErrKind, expected string) ErrKind {
	return ErrKind{Tag: TagFailedWithButExpected, Text: expected, Wrap: &inner}
}

// DidNotFailButExpected constructs the "assert expected failure, got success" ErrKind.
func DidNotFailButExpected(expected string) ErrKind {
	return ErrKind{Tag: TagDidNotFailButExpected, Text: expected}
}

func (e ErrKind) Error() string {
	switch e.Tag {
	case TagMsg, TagParseFail:
		return e.Text
	case TagConstantOutOfRange:
		return "constant out of range"
	case TagUnboundLastModule:
		return "no last module instance to act on"
	case TagUnboundModule:
		return fmt.Sprintf("unknown module instance %q", e.Text)
	case TagUnboundName:
		return fmt.Sprintf("unknown export %q", e.Text)
	case TagBadResult:
		return "produced result does not match expected result"
	case TagFailedWithButExpected:
		return fmt.Sprintf("failed with %q but expected to fail with prefix %q", e.Wrap.Error(), e.Text)
	case TagDidNotFailButExpected:
		return fmt.Sprintf("did not fail but expected failure with prefix %q", e.Text)
	default:
		return "unknown error"
	}
}
