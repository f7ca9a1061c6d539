package literal

import (
	"slices"
	"unicode/utf8"

	"github.com/signaldust/lore/nfa"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: stops a prefix from growing without bound
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the number of alternative prefixes. A pattern
	// needing more yields no prefixes at all. Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each prefix in bytes.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// [abc] expands to "a", "b", "c"; larger classes end the prefix.
	// Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor walks a compiled NFA and collects the literal prefixes its
// matches must start with.
//
// Every path from the start of the pattern body is followed through
// zero-width states and literal characters until it reaches something that
// is not a single known character (a predicate, a large class, `$`, the
// match state), re-enters a loop it already went around, or the prefix
// reaches MaxLiteralLen. The bytes collected along each path become one
// Literal.
//
// The result is all or nothing: if any path yields an empty prefix, or the
// number of prefixes exceeds MaxLiterals, ExtractPrefixes returns an empty
// Seq, meaning a match may start anywhere.
//
// Example:
//
//	n, _ := nfa.Compile("(hello|world)!")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(n)
//	// prefixes = ["hello!", "world!"]
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// maxVisits bounds the walk for patterns whose paths multiply faster than
// they produce literals.
const maxVisits = 1 << 16

type path struct {
	id     nfa.StateID
	prefix []byte
	trail  []nfa.StateID // consuming states already passed
}

type seenKey struct {
	id     nfa.StateID
	prefix string
}

// ExtractPrefixes returns the literals every match of n begins with, or an
// empty Seq when no such set exists within the configured limits.
//
// Examples:
//
//	"hello"         → ["hello"] (complete)
//	"(foo|bar)"     → ["foo", "bar"] (complete)
//	"[ab]c\d"       → ["ac", "bc"]
//	"hello.*world"  → ["hello"]
//	"a+b"           → ["a"]
//	"a*b"           → ["a", "b"]
//	".*foo"         → [] (no prefix requirement)
func (e *Extractor) ExtractPrefixes(n *nfa.NFA) *Seq {
	if n == nil || e.config.MaxLiterals <= 0 || e.config.MaxLiteralLen <= 0 {
		return NewSeq()
	}

	var lits []Literal
	seen := make(map[seenKey]struct{})
	stack := []path{{id: bodyStart(n)}}
	var buf [utf8.UTFMax]byte

	for visits := 0; len(stack) > 0; visits++ {
		if visits > maxVisits {
			return NewSeq()
		}
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		key := seenKey{p.id, string(p.prefix)}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		emit, complete := false, false
		st := n.State(p.id)
		switch st.Kind() {
		case nfa.StateSave, nfa.StateEmpty:
			stack = append(stack, path{st.Next(), p.prefix, p.trail})
		case nfa.StateSplit:
			left, right := st.Split()
			stack = append(stack, path{right, p.prefix, p.trail}, path{left, p.prefix, p.trail})
		case nfa.StateChar:
			r, _ := st.Char()
			if r == nfa.EndOfText || r == utf8.RuneError || slices.Contains(p.trail, p.id) {
				emit = true
				break
			}
			stack = e.extend(stack, p, r, st.Next(), &emit, buf[:])
		case nfa.StateClass:
			if slices.Contains(p.trail, p.id) {
				emit = true
				break
			}
			off, _ := st.ClassOffset()
			members, ok := n.Classes().Expand(off, e.config.MaxClassSize)
			if !ok {
				emit = true
				break
			}
			for _, r := range members {
				if r == utf8.RuneError {
					emit = true
					continue
				}
				stack = e.extend(stack, p, r, st.Next(), &emit, buf[:])
			}
		case nfa.StateMatch:
			emit, complete = true, true
		default:
			emit = true
		}

		if !emit {
			continue
		}
		if len(p.prefix) == 0 {
			return NewSeq()
		}
		lits = append(lits, NewLiteral(p.prefix, complete))
		if len(lits) > e.config.MaxLiterals {
			return NewSeq()
		}
	}

	seq := NewSeq(lits...)
	seq.Minimize()
	return seq
}

// extend pushes p followed by r, or marks p for emission when r would make
// the prefix too long.
func (e *Extractor) extend(stack []path, p path, r rune, next nfa.StateID, emit *bool, buf []byte) []path {
	w := utf8.EncodeRune(buf, r)
	if len(p.prefix)+w > e.config.MaxLiteralLen {
		*emit = true
		return stack
	}
	prefix := make([]byte, len(p.prefix), len(p.prefix)+w)
	copy(prefix, p.prefix)
	prefix = append(prefix, buf[:w]...)
	trail := make([]nfa.StateID, len(p.trail), len(p.trail)+1)
	copy(trail, p.trail)
	trail = append(trail, p.id)
	return append(stack, path{next, prefix, trail})
}

// bodyStart skips the unanchored search loop in front of the pattern.
func bodyStart(n *nfa.NFA) nfa.StateID {
	start := n.State(n.Start())
	if !n.OnlyAtBeginning() && start.Kind() == nfa.StateSplit {
		left, _ := start.Split()
		return left
	}
	return n.Start()
}
