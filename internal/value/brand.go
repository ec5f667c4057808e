package value

import "sync/atomic"

// brandCounter is the only process-wide mutable state in this package (see
// spec.md §9 "Global state"). It is lazily advanced, never reset, so every
// call to NewBrand within a process returns a value no other call can
// produce.
var brandCounter uint64

// NewBrand allocates a fresh, process-unique Brand. internal/driver calls
// this once per Driver it constructs, to mint the brand that Driver stamps
// onto every externref it produces (spec.md §9 "Host externref brand"); tests may call it again
// to construct a deliberately foreign brand.
func NewBrand() Brand {
	return Brand(atomic.AddUint64(&brandCounter, 1))
}
