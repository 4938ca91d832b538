package heap

import "unsafe"

// Allocate runs a strictly address-ordered first-fit search, with an
// optional coalescing sweep triggered by fragmentation, followed by a
// split of the chosen block.
//
// Allocate returns nil if size is zero, size exceeds MaxPayload, or no
// free block large enough exists.
func (h *Heap) Allocate(size uintptr) []byte {
	if size == 0 || size > MaxPayload {
		return nil
	}

	size = normalize(size)

	h.guard.Enter()
	defer h.guard.Leave()

	return h.allocateLocked(size)
}

// allocateLocked is Allocate's body with size already normalized and
// the guard already held. It is shared with Reallocate's relocate path
// so that path runs inside a single critical section instead of
// releasing and reacquiring the guard partway through.
func (h *Heap) allocateLocked(size uintptr) []byte {
	if h.freeBlocks > CoalesceThreshold {
		h.coalesceSweep()
	}

	for b := h.head; b != nil; b = b.next {
		if !h.validateBlock(b) {
			h.fail(addrOf(b), "invalid block encountered during allocate search")
			return nil
		}
		if !b.isUsed() && b.payloadSize() >= size {
			h.split(b, size)
			b.markUsed()
			if h.freeBlocks <= 0 {
				h.fail(addrOf(b), "free_blocks underflow on allocate")
				return nil
			}
			h.freeBlocks--
			return payloadBytes(b, b.payloadSize())
		}
	}

	return nil
}

// normalize rounds size up to a multiple of WordSize and clamps it up to
// MinPayload.
func normalize(size uintptr) uintptr {
	size = roundUp(size)
	if size < MinPayload {
		return MinPayload
	}
	return size
}

// payloadBytes returns the n payload bytes following b's header as a
// slice backed by the heap's own region, so callers see ordinary Go
// []byte semantics without a copy. The Heap itself keeps the backing
// array reachable for as long as the Heap is reachable, so these slices
// never outlive their storage.
func payloadBytes(b *header, n uintptr) []byte {
	return unsafe.Slice((*byte)(payloadOf(b)), n)
}

// split carves size bytes off the front of b, leaving the remainder as
// a new free block when it's large enough to be worth the extra
// header. Precondition: b.payloadSize() >= size.
func (h *Heap) split(b *header, size uintptr) {
	remaining := b.payloadSize() - size
	if remaining < headerSize+MinPayload {
		return
	}

	next := headerAt(addrOf(b) + headerSize + size)
	next.next = b.next
	next.sizeAndFlag = remaining - headerSize // free

	b.next = next
	b.setPayloadSize(size)
	h.freeBlocks++
}

// roundUp rounds size up to a multiple of WordSize.
func roundUp(size uintptr) uintptr {
	rem := size % WordSize
	if rem == 0 {
		return size
	}
	return size + (WordSize - rem)
}
