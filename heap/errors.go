package heap

import "fmt"

// ErrorKind identifies the class of fatal, unrecoverable condition the
// allocator detected. It is the Go mirror of the original kernel's
// panic(error_kind) sink contract: every value here is fatal, never a
// return-nil condition.
type ErrorKind int

const (
	// ErrHeapCorrupt marks a structural invariant violation: a header
	// outside the region, misaligned, with an impossible size, a broken
	// next-adjacency, a used-flag mismatch on free, or a free_blocks
	// underflow.
	ErrHeapCorrupt ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case ErrHeapCorrupt:
		return "heap corrupt"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// CorruptionError is the value passed to panic by the default Panicker.
// It satisfies the error interface so tests and hosted callers can
// recover() and inspect it with errors.As instead of matching on a bare
// string.
type CorruptionError struct {
	Kind ErrorKind
	// Addr is the address of the header at which the failure was
	// detected (for a free_blocks underflow, the block being allocated),
	// or 0 if the failure is not tied to a single header.
	Addr uintptr
	// Reason is a short, human-readable diagnosis.
	Reason string
}

func (e *CorruptionError) Error() string {
	if e.Addr == 0 {
		return fmt.Sprintf("heap: %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("heap: %s at 0x%x: %s", e.Kind, e.Addr, e.Reason)
}

// Panicker is the fatal-error sink the allocator consumes from its
// environment. Panic must not return: the heap is presumed compromised
// and continued operation would propagate the damage. A bare-metal build
// maps this to a halt with an error code; the default hosted Panicker
// maps it to Go's builtin panic.
type Panicker interface {
	Panic(err *CorruptionError)
}

// defaultPanicker calls Go's builtin panic. It is the Panicker used when
// no WithPanicker option is supplied.
type defaultPanicker struct{}

func (defaultPanicker) Panic(err *CorruptionError) {
	panic(err)
}
