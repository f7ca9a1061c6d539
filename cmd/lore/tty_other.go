//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package main

// isTerminal is false where terminal detection is not supported, so
// -color=auto never emits escape codes there.
func isTerminal(fd uintptr) bool {
	return false
}
