// Package heap implements the linmo kernel's single-region, first-fit
// allocator: one contiguous byte range laid out as an address-ordered,
// singly-linked list of block headers, searched first-fit and coalesced
// forward and backward on free.
//
// The allocator is not reentrant and not internally thread-safe; callers
// supply a sched.Guard that is held for the duration of every public
// operation, standing in for the kernel's interrupt-masking critical
// section. Structural corruption — an out-of-bounds header, a broken
// adjacency, a double free — is never recovered from: it is reported to
// a Panicker and the operation never returns normally.
package heap
