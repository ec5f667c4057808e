// Package oracle implements the result oracle from spec.md §4.1: deciding
// whether a symbolic expected result matches a concrete value produced by
// the interpreter, including the IEEE-754 NaN predicates and host-reference
// equality under the opaque externref brand.
package oracle

import "github.com/wasmconform/harness/internal/literal"

// Width discriminates the bit-width a NaN predicate applies to.
type Width byte

const (
	WidthS32 Width = iota
	WidthS64
)

// ExpKind discriminates the ExpR variants.
type ExpKind byte

const (
	ExpKindLiteral ExpKind = iota
	ExpKindNanCanon
	ExpKindNanArith
)

// ExpR is the expected-result sum the oracle consumes (spec.md §4.1):
// Literal(ConstLit), NanCanon(W), NanArith(W).
type ExpR struct {
	Kind    ExpKind
	Literal literal.Const
	Width   Width
}

// Lit constructs a Literal expected result.
func Lit(c literal.Const) ExpR { return ExpR{Kind: ExpKindLiteral, Literal: c} }

// NanCanon constructs a NanCanon(w) expected result.
func NanCanon(w Width) ExpR { return ExpR{Kind: ExpKindNanCanon, Width: w} }

// NanArith constructs a NanArith(w) expected result.
func NanArith(w Width) ExpR { return ExpR{Kind: ExpKindNanArith, Width: w} }
