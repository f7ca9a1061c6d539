// Package prefilter provides fast candidate filtering for whole-buffer search
// using the literal prefixes extracted from a compiled pattern.
//
// A prefilter is used to quickly skip positions in the haystack where no
// match can start. Every match of the pattern begins with one of the
// extracted literals, so the first occurrence of any of them is the earliest
// position worth feeding to the online matcher.
//
// The package selects a prefilter strategy based on the extracted literals:
//   - Single byte → memchr (bytes.IndexByte)
//   - Single substring → memmem (bytes.Index)
//   - Several literals sharing a long prefix → memmem on that prefix
//   - Several literals → Aho-Corasick automaton
//
// Example usage:
//
//	n, _ := nfa.Compile("(hello|world)")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(n)
//	pf := prefilter.NewBuilder(prefixes).Build()
//
//	haystack := []byte("foo hello bar world baz")
//	pos := pf.Find(haystack, 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/signaldust/lore/literal"
)

// minSharedPrefix is the shortest common prefix worth searching for
// instead of building an automaton over all literals.
const minSharedPrefix = 3

// Prefilter is used to quickly find candidate match positions before running
// the online matcher.
//
// A Prefilter is immutable after Build and safe for concurrent use.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or after
	// 'start', or -1 if no candidate is found.
	//
	// A candidate is a position where one of the prefilter literals begins.
	// It does NOT guarantee a match; the caller verifies it with the matcher.
	Find(haystack []byte, start int) int

	// IsComplete returns true if a prefilter hit is a whole match by itself,
	// which is the case when the pattern is exactly one literal.
	IsComplete() bool

	// LiteralLen returns the length of the matched literal when IsComplete() is true.
	// Returns 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the number of bytes of heap memory used by this prefilter.
	HeapBytes() int
}

// Builder constructs the prefilter for a set of extracted prefixes.
//
// Selection strategy (in order of preference):
//  1. Single byte literal → memchr
//  2. Single substring literal → memmem
//  3. Many literals with a shared prefix of at least three bytes → memmem on it
//  4. Many literals → Aho-Corasick
//  5. No literals → nil (no prefilter)
type Builder struct {
	prefixes *literal.Seq
}

// NewBuilder creates a new prefilter builder from extracted prefixes.
// prefixes may be nil, in which case Build returns nil.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes}
}

// Build constructs the best prefilter for the given literals.
//
// Returns nil if no effective prefilter can be built (no literals, or the
// Aho-Corasick automaton could not be constructed).
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.prefixes)
}

// selectPrefilter chooses the best prefilter strategy for seq.
func selectPrefilter(seq *literal.Seq) Prefilter {
	if seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	if lcp := seq.LongestCommonPrefix(); len(lcp) >= minSharedPrefix {
		return newMemmemPrefilter(lcp, false)
	}

	pf, err := newAhoCorasickPrefilter(seq.Patterns())
	if err != nil {
		return nil
	}
	return pf
}

// memchrPrefilter searches for a single byte.
//
// Example patterns:
//
//	/a\w*/        → search for 'a'
//	/x|x\d/       → after minimization → search for 'x'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.IndexByte.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// memmemPrefilter searches for a single substring.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/foo|foobar/  → after minimization → search for "foo"
//	/prefix.*/    → search for "prefix"
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle to prevent aliasing.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

// Find implements Prefilter.Find using bytes.Index.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

// ahoCorasickPrefilter finds the leftmost occurrence of any of several
// literals with one pass over the haystack.
//
// Example patterns:
//
//	/(GET|PUT|POST) /  → search for "GET /", "PUT /", "POST /"
//	/[abc]x/           → search for "ax", "bx", "cx"
type ahoCorasickPrefilter struct {
	auto      *ahocorasick.Automaton
	heapBytes int
}

func newAhoCorasickPrefilter(patterns [][]byte) (Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	heap := 0
	for _, p := range patterns {
		builder.AddPattern(p)
		heap += len(p)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &ahoCorasickPrefilter{auto: auto, heapBytes: heap}, nil
}

// Find implements Prefilter.Find using the automaton.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete implements Prefilter.IsComplete. Alternation order decides
// which literal a match uses, so a hit is never complete on its own.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes. It counts the pattern bytes
// the automaton was built from.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.heapBytes
}
