//go:build !debug

package debug

// Log is a no-op when built without the debug tag.
func Log(msg interface{}) {}
