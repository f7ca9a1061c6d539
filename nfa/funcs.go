package nfa

import "fmt"

// FuncID names a builtin character predicate.
type FuncID int32

const (
	// FuncDigit matches ASCII digits (\d).
	FuncDigit FuncID = iota
	// FuncNotDigit matches anything but an ASCII digit (\D).
	FuncNotDigit
	// FuncSpace matches ASCII whitespace (\s).
	FuncSpace
	// FuncNotSpace matches anything but ASCII whitespace (\S).
	FuncNotSpace
	// FuncWord matches [0-9A-Za-z_] (\w).
	FuncWord
	// FuncNotWord matches anything but a word character (\W).
	FuncNotWord
	// FuncAnyNotNL matches any rune except a line break (.).
	FuncAnyNotNL
	// FuncAny matches any rune. Used by the unanchored search prefix.
	FuncAny

	numFuncs
)

var funcNames = [numFuncs]string{
	FuncDigit:    `\d`,
	FuncNotDigit: `\D`,
	FuncSpace:    `\s`,
	FuncNotSpace: `\S`,
	FuncWord:     `\w`,
	FuncNotWord:  `\W`,
	FuncAnyNotNL: ".",
	FuncAny:      "any",
}

func (f FuncID) String() string {
	if f >= 0 && f < numFuncs {
		return funcNames[f]
	}
	return fmt.Sprintf("FuncID(%d)", int32(f))
}

// Eval applies the predicate to r.
// EndOfText satisfies no predicate, not even the negated ones.
func (f FuncID) Eval(r rune) bool {
	if r == EndOfText {
		return false
	}
	switch f {
	case FuncDigit:
		return isDigit(r)
	case FuncNotDigit:
		return !isDigit(r)
	case FuncSpace:
		return isSpace(r)
	case FuncNotSpace:
		return !isSpace(r)
	case FuncWord:
		return isWord(r)
	case FuncNotWord:
		return !isWord(r)
	case FuncAnyNotNL:
		return !isLineBreak(r)
	case FuncAny:
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isWord(r rune) bool {
	return isDigit(r) || r == '_' || (r|0x20 >= 'a' && r|0x20 <= 'z')
}

func isLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}
