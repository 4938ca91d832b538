package heap

// Free validates the block, marks it free, then merges forward and
// backward with any free neighbors. ptr must be nil or a payload slice
// previously returned by Allocate, Reallocate, or ZeroAllocate on this
// Heap. nil is a no-op.
func (h *Heap) Free(ptr []byte) {
	if ptr == nil {
		return
	}

	b := headerOfBytes(ptr)

	h.guard.Enter()
	defer h.guard.Leave()

	h.freeLocked(b)
}

// freeLocked is Free's body with the guard already held. Reallocate's
// relocate path calls this directly so the whole Reallocate operation
// runs inside one critical section instead of nesting a second one.
func (h *Heap) freeLocked(b *header) {
	if !h.validateBlock(b) || !b.isUsed() {
		h.fail(addrOf(b), "free of invalid block or double free")
		return
	}

	b.markFree()
	h.freeBlocks++

	// Forward merge: runs unconditionally.
	if b.next != nil && !b.next.isUsed() {
		b.sizeAndFlag = b.payloadSize() + headerSize + b.next.payloadSize()
		b.next = b.next.next
		h.freeBlocks--
	}

	// Backward merge: the predecessor search walks the full
	// address-ordered list from head, not a free-only list, and runs
	// after the forward merge above has already possibly folded b's
	// old successor into b.
	var prev *header
	for cur := h.head; cur != nil && cur != b; cur = cur.next {
		prev = cur
	}

	if prev != nil && !prev.isUsed() {
		if !h.validateBlock(prev) {
			h.fail(addrOf(prev), "invalid predecessor encountered during backward merge")
			return
		}
		prev.sizeAndFlag = prev.payloadSize() + headerSize + b.payloadSize()
		prev.next = b.next
		h.freeBlocks--
	}
}

// coalesceSweep makes a single address-ordered pass merging every
// adjacent free pair. It does not advance past a block
// until its new successor is no longer a mergeable free block, so a run
// of N free blocks collapses into one in a single pass.
func (h *Heap) coalesceSweep() {
	b := h.head
	for b != nil && b.next != nil {
		if !h.validateBlock(b) {
			h.fail(addrOf(b), "invalid block encountered during coalesce sweep")
			return
		}
		if !b.isUsed() && !b.next.isUsed() {
			b.sizeAndFlag = b.payloadSize() + headerSize + b.next.payloadSize()
			b.next = b.next.next
			h.freeBlocks--
		} else {
			b = b.next
		}
	}
}
