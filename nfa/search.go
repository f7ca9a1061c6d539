package nfa

import "unicode/utf8"

// Search runs a whole search over input from position 0 and reports whether
// it matched. It is exactly Start(0), one Next per rune and End, stopping
// early once Next reports that the outcome is settled. The match is then
// available through Group and Submatches.
func (m *Matcher) Search(input []rune) bool {
	m.Start(0)
	for _, r := range input {
		if m.Next(r) {
			return m.Valid()
		}
	}
	return m.End()
}

// SearchString is Search over the runes of s. Positions count runes, not
// bytes; invalid UTF-8 is fed as utf8.RuneError.
func (m *Matcher) SearchString(s string) bool {
	return m.SearchStringAt(s, 0, 0)
}

// SearchStringAt searches s[offset:], numbering the rune at byte offset
// offset as position pos.
func (m *Matcher) SearchStringAt(s string, offset, pos int) bool {
	m.Start(pos)
	for offset < len(s) {
		r, w := utf8.DecodeRuneInString(s[offset:])
		offset += w
		if m.Next(r) {
			return m.Valid()
		}
	}
	return m.End()
}

// SearchAt is SearchStringAt over a byte slice.
func (m *Matcher) SearchAt(b []byte, offset, pos int) bool {
	m.Start(pos)
	for offset < len(b) {
		r, w := utf8.DecodeRune(b[offset:])
		offset += w
		if m.Next(r) {
			return m.Valid()
		}
	}
	return m.End()
}
