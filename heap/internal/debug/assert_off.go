//go:build !assert

package debug

// Assert is a no-op when built without the assert tag.
func Assert(cond bool, msg interface{}) {}
