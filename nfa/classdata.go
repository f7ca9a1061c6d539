package nfa

import (
	"fmt"
	"strings"

	"github.com/signaldust/lore/internal/conv"
)

// ClassData is the packed storage shared by all Class and NClass states of
// one NFA. Each class occupies a region
//
//	[nChar, nRange, nFunc, chars..., lo0, hi0, lo1, hi1, ..., funcIDs...]
//
// starting at the offset stored in the state. Ranges always have lo <= hi.
type ClassData []rune

// classBuilder accumulates the members of one bracket expression before it
// is serialized.
type classBuilder struct {
	chars  []rune
	ranges []rune // lo, hi pairs
	funcs  []FuncID
}

func (c *classBuilder) addChar(r rune) {
	c.chars = append(c.chars, r)
}

// addRange adds lo-hi in either direction; [z-a] equals [a-z].
func (c *classBuilder) addRange(lo, hi rune) {
	if lo > hi {
		lo, hi = hi, lo
	}
	c.ranges = append(c.ranges, lo, hi)
}

func (c *classBuilder) addFunc(f FuncID) {
	c.funcs = append(c.funcs, f)
}

func (c *classBuilder) reset() {
	c.chars = c.chars[:0]
	c.ranges = c.ranges[:0]
	c.funcs = c.funcs[:0]
}

// appendTo serializes the class onto d and returns the region offset.
func (c *classBuilder) appendTo(d ClassData) (ClassData, int) {
	off := len(d)
	d = append(d,
		conv.IntToRune(len(c.chars)),
		conv.IntToRune(len(c.ranges)/2),
		conv.IntToRune(len(c.funcs)))
	d = append(d, c.chars...)
	d = append(d, c.ranges...)
	for _, f := range c.funcs {
		d = append(d, rune(f))
	}
	return d, off
}

// Contains reports whether r is a member of the class at offset.
// EndOfText is never a member.
func (d ClassData) Contains(offset int, r rune) bool {
	if r == EndOfText {
		return false
	}
	nChar, nRange, nFunc := int(d[offset]), int(d[offset+1]), int(d[offset+2])
	p := offset + 3
	for _, c := range d[p : p+nChar] {
		if c == r {
			return true
		}
	}
	p += nChar
	for i := 0; i < nRange; i++ {
		if r >= d[p] && r <= d[p+1] {
			return true
		}
		p += 2
	}
	for _, f := range d[p : p+nFunc] {
		if FuncID(f).Eval(r) {
			return true
		}
	}
	return false
}

// Expand lists the members of the class at offset when it holds at most
// limit runes and no builtin predicate. ok is false otherwise.
func (d ClassData) Expand(offset, limit int) (members []rune, ok bool) {
	nChar, nRange, nFunc := int(d[offset]), int(d[offset+1]), int(d[offset+2])
	if nFunc > 0 {
		return nil, false
	}
	p := offset + 3
	size := nChar
	for i := 0; i < nRange; i++ {
		lo, hi := d[p+nChar+2*i], d[p+nChar+2*i+1]
		size += int(hi-lo) + 1
		if size > limit {
			return nil, false
		}
	}
	if size > limit {
		return nil, false
	}
	members = append(members, d[p:p+nChar]...)
	p += nChar
	for i := 0; i < nRange; i++ {
		for r := d[p]; r <= d[p+1]; r++ {
			members = append(members, r)
		}
		p += 2
	}
	return members, true
}

// Format renders the class at offset in bracket syntax for debugging.
func (d ClassData) Format(offset int, negated bool) string {
	var b strings.Builder
	b.WriteByte('[')
	if negated {
		b.WriteByte('^')
	}
	nChar, nRange, nFunc := int(d[offset]), int(d[offset+1]), int(d[offset+2])
	p := offset + 3
	for _, c := range d[p : p+nChar] {
		b.WriteString(quoteClassRune(c))
	}
	p += nChar
	for i := 0; i < nRange; i++ {
		fmt.Fprintf(&b, "%s-%s", quoteClassRune(d[p]), quoteClassRune(d[p+1]))
		p += 2
	}
	for _, f := range d[p : p+nFunc] {
		b.WriteString(FuncID(f).String())
	}
	b.WriteByte(']')
	return b.String()
}

func quoteClassRune(r rune) string {
	switch r {
	case ']', '-', '^', '\\':
		return `\` + string(r)
	}
	q := fmt.Sprintf("%q", r)
	return q[1 : len(q)-1]
}
