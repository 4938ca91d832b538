package heap

import "github.com/G36maid/linmo/heap/internal/debug"

// validateBlock checks b's structural integrity against h's region. A
// false return means b has failed at least one structural check and the
// caller must treat the heap as compromised.
func (h *Heap) validateBlock(b *header) bool {
	addr := addrOf(b)
	if addr < h.base || addr >= h.end || addr%WordSize != 0 {
		debug.Log(func() string { return "heap: block outside region or misaligned" })
		return false
	}

	size := b.payloadSize()
	// A zero payload is only valid on the terminal sentinel; every other
	// header must carry a real, non-zero size.
	isSentinel := b.next == nil
	if size == 0 && !isSentinel {
		debug.Log(func() string { return "heap: zero payload on non-terminal block" })
		return false
	}
	if size > MaxPayload {
		debug.Log(func() string { return "heap: impossible payload size" })
		return false
	}

	if addr+headerSize+size > h.end {
		debug.Log(func() string { return "heap: block extends past region end" })
		return false
	}

	if b.next != nil && addr+headerSize+size != addrOf(b.next) {
		debug.Log(func() string { return "heap: broken adjacency to next block" })
		return false
	}

	return true
}
