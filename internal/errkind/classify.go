package errkind

import "strings"

// canonical implements spec.md §4.2's canonicalization rules, projecting an
// ErrKind to the string the classifier prefix-matches against.
//
// Msg and ParseFail canonicalize to their carried text verbatim; every
// other tag canonicalizes to its Error() text.
func canonical(e ErrKind) string {
	switch e.Tag {
	case TagMsg, TagParseFail:
		return e.Text
	default:
		return e.Error()
	}
}

// CheckError implements spec.md §4.2's check_error(expected, produced):
// return success iff canonical(produced) equals expected or begins with it
// as a prefix, after the three fuzzy-matching carve-outs. These carve-outs
// are the sole license for fuzzy matching; every other comparison is a
// strict string prefix.
func CheckError(expected string, produced ErrKind) bool {
	// "constant out of range" phrasing reconciled with the "i32 constant
	// ..." wording some capabilities use for the same failure.
	if produced.Tag == TagConstantOutOfRange && strings.HasPrefix(expected, "i32 constant") {
		return true
	}
	c := canonical(produced)
	if strings.HasPrefix(c, "constant out of range") && strings.HasPrefix(expected, "i32 constant") {
		return true
	}
	// Reconciles a known wording divergence between this harness's parser
	// and the upstream spec-test corpus.
	if c == "unexpected end of section or function" && expected == "section size mismatch" {
		return true
	}
	return strings.HasPrefix(c, expected)
}

// CheckErrorResult implements spec.md §4.2's check_error_result: it wraps a
// staged computation. If the computation succeeded, fail with
// DidNotFailButExpected(expected); otherwise apply CheckError, and on
// mismatch return FailedWithButExpected(produced, expected).
//
// err is the error returned by the pipeline stage, nil on success; the
// driver only needs the error to classify — the success payload, if any,
// is discarded by the Assert arm that calls this. An err that is not an
// ErrKind is classified as Msg(err.Error()).
func CheckErrorResult(expected string, err error) error {
	if err == nil {
		return DidNotFailButExpected(expected)
	}
	ek, ok := err.(ErrKind)
	if !ok {
		ek = Msg(err.Error())
	}
	if CheckError(expected, ek) {
		return nil
	}
	return FailedWithButExpected(ek, expected)
}
