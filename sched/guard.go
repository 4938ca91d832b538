// Package sched defines the one scheduler capability the heap allocator
// consumes from its host environment: a mutual-exclusion guard standing
// in for enter_critical_section/leave_critical_section. The real linmo
// scheduler masks interrupts; this package only ships the hosted
// substitute used by tests and cmd/heapdemo.
package sched

import "sync"

// Guard disables preemption for the duration it is held and restores it
// on Leave. Implementations must nest safely if the caller already holds
// the guard when entering again from the same goroutine.
type Guard interface {
	Enter()
	Leave()
}

// MutexGuard is a Guard backed by a sync.Mutex, the substitution a hosted
// build uses in place of masking interrupts. It is not reentrant: nested
// Enter calls from the same goroutine deadlock, matching the fact that
// the allocator itself never calls Enter twice without an intervening
// Leave.
type MutexGuard struct {
	mu sync.Mutex
}

// NewMutexGuard returns a ready-to-use MutexGuard.
func NewMutexGuard() *MutexGuard {
	return &MutexGuard{}
}

func (g *MutexGuard) Enter() { g.mu.Lock() }
func (g *MutexGuard) Leave() { g.mu.Unlock() }

// NullGuard performs no synchronization. Useful for single-threaded
// benchmarks and for kernel builds where interrupts are already masked
// by the caller.
type NullGuard struct{}

func (NullGuard) Enter() {}
func (NullGuard) Leave() {}
