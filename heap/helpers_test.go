package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestHeap builds a Heap over a freshly allocated region of n bytes,
// failing the test immediately if construction is rejected.
func newTestHeap(t *testing.T, n int) *Heap {
	t.Helper()
	mem := make([]byte, n)
	h := New(mem)
	require.NotNil(t, h, "New rejected a %d-byte region", n)
	return h
}

// countFree walks the block list and returns the number of free headers.
func countFree(h *Heap) int {
	n := 0
	for b := h.head; b != nil; b = b.next {
		if !b.isUsed() {
			n++
		}
	}
	return n
}

// assertInvariants walks h's current block list and checks every
// structural invariant: in-region/aligned headers, no gaps between
// adjacent blocks, no two adjacent free blocks, a sentinel-terminated
// list, and a free_blocks counter matching the actual free count.
func assertInvariants(t *testing.T, h *Heap) {
	t.Helper()

	var total uintptr
	prevFree := false
	var last *header

	for b := h.head; b != nil; b = b.next {
		addr := addrOf(b)
		require.GreaterOrEqual(t, addr, h.base, "header before region start")
		require.Less(t, addr, h.end, "header at or past region end")
		require.Zero(t, addr%WordSize, "header misaligned")

		total += headerSize + b.payloadSize()

		if b.next != nil {
			require.Equal(t, addrOf(b.next), addr+headerSize+b.payloadSize(),
				"broken adjacency at 0x%x", addr)
		}

		if !b.isUsed() {
			require.False(t, prevFree, "two adjacent free blocks at 0x%x", addr)
			prevFree = true
		} else {
			prevFree = false
		}

		last = b
	}

	require.NotNil(t, last, "empty block list")
	require.Nil(t, last.next, "walk did not terminate at the sentinel")
	require.True(t, last.isUsed(), "sentinel not marked used")
	require.Zero(t, last.payloadSize(), "sentinel has non-zero payload")

	require.Equal(t, h.end, h.base+total, "total bytes across all headers != region length")
	require.Equal(t, countFree(h), h.freeBlocks, "free_blocks counter mismatch")
}
