package heap

import "github.com/JohnCGriffin/overflow"

// ZeroAllocate is the calloc equivalent: an overflow-checked count*size
// multiplication, followed by Allocate and a zero-fill of the returned
// bytes.
func (h *Heap) ZeroAllocate(count, size uintptr) []byte {
	total, ok := overflow.Mul(int(count), int(size))
	if !ok || uintptr(total) > MaxPayload {
		return nil
	}

	p := h.Allocate(roundUp(uintptr(total)))
	if p == nil {
		return nil
	}
	Set(p, 0)
	return p
}
