package heap

// Set assigns c to every byte of buf. It is the memset-equivalent
// ZeroAllocate uses to zero-fill freshly allocated payloads.
func Set(buf []byte, c byte) {
	for i := range buf {
		buf[i] = c
	}
}
