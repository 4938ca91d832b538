/*
Package debug provides conditional runtime assertions and debug logging
for the heap allocator.

Using Assert

To enable runtime assertions, build with the assert tag. When the
assert tag is omitted, the assertion code is compiled out entirely, so
a release kernel build pays nothing for it.

Using Log

To enable forensic logging of corruption diagnostics before the fatal
sink fires, build with the debug tag.
*/
package debug
