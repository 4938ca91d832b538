package heap

import (
	"strconv"
	"unsafe"

	"github.com/G36maid/linmo/heap/internal/debug"
	"github.com/G36maid/linmo/sched"
)

// WordSize is the platform's native word size and the allocator's
// alignment unit. Every payload size the allocator hands out is a
// multiple of WordSize.
const WordSize = unsafe.Sizeof(uintptr(0))

// MinPayload and MaxPayload clamp every request: a successful Allocate
// never returns fewer than MinPayload bytes, and never more than
// MaxPayload.
const (
	MinPayload = 2 * WordSize
	MaxPayload = 1 << 30
)

// CoalesceThreshold is the free_blocks count above which Allocate and
// Reallocate run a full coalescing sweep before searching.
const CoalesceThreshold = 8

// headerSize is the fixed metadata every allocation and every free
// range is preceded by.
var headerSize = unsafe.Sizeof(header{})

// header is the block header. next is a non-owning forward reference in
// address order, or nil on the terminal sentinel. sizeAndFlag packs the
// used flag into the low bit and the payload size (always a multiple of
// WordSize) into the remaining bits.
type header struct {
	next        *header
	sizeAndFlag uintptr
}

func (h *header) isUsed() bool         { return h.sizeAndFlag&1 != 0 }
func (h *header) payloadSize() uintptr { return h.sizeAndFlag &^ 1 }
func (h *header) markUsed()            { h.sizeAndFlag |= 1 }
func (h *header) markFree()            { h.sizeAndFlag &^= 1 }

func (h *header) setPayloadSize(size uintptr) {
	used := h.sizeAndFlag & 1
	h.sizeAndFlag = size | used
}

func headerAt(addr uintptr) *header {
	return (*header)(unsafe.Pointer(addr))
}

func addrOf(h *header) uintptr {
	return uintptr(unsafe.Pointer(h))
}

// payloadOf returns the address immediately after h's header: the
// pointer callers see.
func payloadOf(h *header) unsafe.Pointer {
	return unsafe.Pointer(addrOf(h) + headerSize)
}

// headerOf is the inverse of payloadOf: header = payload - sizeof(H).
func headerOf(payload unsafe.Pointer) *header {
	return headerAt(uintptr(payload) - headerSize)
}

// headerOfBytes recovers the header preceding a live payload slice
// previously returned by Allocate, Reallocate, or ZeroAllocate.
func headerOfBytes(b []byte) *header {
	return headerOf(unsafe.Pointer(&b[0]))
}

// Heap is a single, process-wide allocator instance over one contiguous
// region. The zero Heap is not usable; construct one with New.
type Heap struct {
	guard    sched.Guard
	panicker Panicker

	mem   []byte // backing store; keeps the region alive for the GC
	base  uintptr
	end   uintptr
	head  *header

	freeBlocks int
}

// Option configures a Heap constructed with New.
type Option func(*config)

type config struct {
	guard    sched.Guard
	panicker Panicker
}

func newConfig() *config {
	return &config{
		guard:    sched.NewMutexGuard(),
		panicker: defaultPanicker{},
	}
}

// WithGuard overrides the critical-section guard. The default is a
// sched.MutexGuard; a bare-metal build supplies one that masks
// interrupts instead.
func WithGuard(g sched.Guard) Option {
	return func(cfg *config) { cfg.guard = g }
}

// WithPanicker overrides the fatal-error sink. The default calls Go's
// builtin panic with a *CorruptionError.
func WithPanicker(p Panicker) Option {
	return func(cfg *config) { cfg.panicker = p }
}

// New lays a sentinel-terminated block list over mem and returns the
// resulting Heap. mem's length is rounded down to a multiple of
// WordSize. New returns nil as a silent no-op if mem is too small to
// hold two headers plus the minimum payload.
//
// mem must not be touched by the caller after New succeeds: the Heap
// owns every byte of it until the process using it exits. There is no
// Close; the region is never torn down.
func New(mem []byte, opts ...Option) *Heap {
	if mem == nil {
		return nil
	}

	length := uintptr(len(mem))
	length -= length % WordSize
	if length < 2*headerSize+MinPayload {
		return nil
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	base := uintptr(unsafe.Pointer(&mem[0]))
	end := base + length

	start := headerAt(base)
	sentinel := headerAt(end - headerSize)

	start.next = sentinel
	start.sizeAndFlag = length - 2*headerSize // used flag clear: free

	sentinel.next = nil
	sentinel.sizeAndFlag = 0
	sentinel.markUsed()

	h := &Heap{
		guard:      cfg.guard,
		panicker:   cfg.panicker,
		mem:        mem,
		base:       base,
		end:        end,
		head:       start,
		freeBlocks: 1,
	}
	debug.Log(func() string {
		return "heap: initialized region of " + strconv.Itoa(int(length)) + " bytes"
	})
	return h
}

// FreeBlocks returns the current free-block counter: the number of
// headers whose used flag is clear. It is a fragmentation heuristic, not
// a measure of total free bytes.
func (h *Heap) FreeBlocks() int {
	h.guard.Enter()
	defer h.guard.Leave()
	return h.freeBlocks
}

func (h *Heap) fail(addr uintptr, reason string) {
	h.panicker.Panic(&CorruptionError{Kind: ErrHeapCorrupt, Addr: addr, Reason: reason})
}
