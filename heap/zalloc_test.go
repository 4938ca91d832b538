package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroAllocate_Overflow(t *testing.T) {
	h := newTestHeap(t, 256)
	assert.Nil(t, h.ZeroAllocate(1<<40, 1<<40))
}

func TestZeroAllocate_ExceedsMaxPayload(t *testing.T) {
	h := newTestHeap(t, 256)
	assert.Nil(t, h.ZeroAllocate(1, MaxPayload+1))
}

// TestZeroAllocate_ZeroesExactly checks that the first count*size bytes
// of a successful ZeroAllocate are all zero, even over a region tainted
// with non-zero garbage beforehand.
func TestZeroAllocate_ZeroesExactly(t *testing.T) {
	tests := []struct {
		count, size uintptr
	}{
		{1, 7},
		{4, 3},
		{10, WordSize},
	}
	for _, test := range tests {
		h := newTestHeap(t, 4096)

		// Taint the region so a correct zero-fill is actually observable.
		junk := h.Allocate(4096 - 2*headerSize)
		if junk != nil {
			for i := range junk {
				junk[i] = 0xff
			}
			h.Free(junk)
		}

		p := h.ZeroAllocate(test.count, test.size)
		require.NotNil(t, p)

		want := int(test.count * test.size)
		require.GreaterOrEqual(t, len(p), want)
		for i := 0; i < want; i++ {
			assert.Zero(t, p[i], "byte %d not zeroed (count=%d size=%d)", i, test.count, test.size)
		}
	}
}

func TestZeroAllocate_CountOrSizeZero(t *testing.T) {
	h := newTestHeap(t, 4096)
	assert.Nil(t, h.ZeroAllocate(0, 16), "calloc(0, n) mirrors Allocate(0): rejected, not a valid empty allocation")
	assert.Nil(t, h.ZeroAllocate(16, 0))
}
