// Command lore prints the lines of its input that match a pattern.
//
// Usage:
//
//	lore [-o] [-c] [-n] [-H] [-color=auto|always|never] [-escape C] PATTERN [FILE...]
//
// With no FILE, or when FILE is -, lore reads standard input. The exit
// status is 0 if any line matched, 1 if none did and 2 if an error occurred.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
