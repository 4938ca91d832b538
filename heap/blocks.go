package heap

// BlockInfo is a point-in-time snapshot of one header in the block
// list, for diagnostics and tooling outside the package.
type BlockInfo struct {
	Addr    uintptr
	Used    bool
	Payload uintptr
}

// Blocks walks the block list under the guard and returns a snapshot of
// every header in address order, including the terminal sentinel. It
// allocates, so it is meant for diagnostics, not the hot path.
func (h *Heap) Blocks() []BlockInfo {
	h.guard.Enter()
	defer h.guard.Leave()

	var blocks []BlockInfo
	for b := h.head; b != nil; b = b.next {
		blocks = append(blocks, BlockInfo{
			Addr:    addrOf(b),
			Used:    b.isUsed(),
			Payload: b.payloadSize(),
		})
	}
	return blocks
}
