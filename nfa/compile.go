package nfa

import (
	"unicode/utf8"
)

// MaxGroups is the number of capture groups a match reports, group 0
// (the whole match) included. Capturing groups past the ninth compile as
// non-capturing.
const MaxGroups = 10

// MaxSlots is the number of capture slots: a start and an end per group.
const MaxSlots = 2 * MaxGroups

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// EscapeChar introduces escape sequences. Default: '\\'.
	EscapeChar rune

	// MaxStates caps the size of the state graph; 0 disables the limit.
	// Default: 0
	MaxStates int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		EscapeChar: '\\',
	}
}

// frag is a partially built piece of the graph. exit is a single-successor
// state whose successor is still InvalidState.
type frag struct {
	entry, exit StateID
}

// level tracks one nesting depth of the shift-reduce parse: how many
// fragments of the current alternative (seq) and how many finished
// alternatives (alt) sit on the fragment stack above it.
type level struct {
	seq, alt int
	group    int // capture group number, 0 for the top level, -1 for (?:...)
}

// Compiler turns pattern text into an NFA with a single left-to-right
// shift-reduce pass. A Compiler is not safe for concurrent use, but can be
// reused for successive patterns.
type Compiler struct {
	config CompilerConfig

	builder   *Builder
	pattern   string
	stack     []frag
	levels    []level
	nextGroup int
	class     classBuilder
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.EscapeChar == 0 {
		config.EscapeChar = '\\'
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*NFA, error) {
	return NewDefaultCompiler().Compile(pattern)
}

// CompileWithEscape compiles pattern using esc as the escape character.
func CompileWithEscape(pattern string, esc rune) (*NFA, error) {
	cfg := DefaultCompilerConfig()
	cfg.EscapeChar = esc
	return NewCompiler(cfg).Compile(pattern)
}

// Compile compiles a pattern string into an NFA.
// On failure it returns a *CompileError and no NFA; a partially built graph
// is never handed out.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	c.builder = NewBuilderWithCapacity(2*len(pattern) + 8)
	c.pattern = pattern
	c.stack = c.stack[:0]
	c.levels = append(c.levels[:0], level{group: 0})
	c.nextGroup = 1

	anchored := len(pattern) > 0 && pattern[0] == '^'
	i := 0
	if anchored {
		i = 1
	}

	for i < len(pattern) {
		next, err := c.step(i)
		if err != nil {
			return nil, err
		}
		if c.config.MaxStates > 0 && c.builder.States() > c.config.MaxStates {
			return nil, c.fail(ErrTooComplex, i)
		}
		i = next
	}

	if len(c.levels) > 1 {
		return nil, c.fail(ErrMissingParen, len(pattern))
	}
	body, err := c.reduceLevel()
	if err != nil {
		return nil, err
	}

	b := c.builder
	save0 := b.AddSave(0, body.entry)
	save1 := b.AddSave(1, InvalidState)
	if err := b.Patch(body.exit, save1); err != nil {
		return nil, err
	}
	if err := b.Patch(save1, b.AddMatch()); err != nil {
		return nil, err
	}

	start := save0
	if !anchored {
		// Lazy `(?s:.)*?` in front turns the anchored body into a substring search.
		loop := b.AddFunc(FuncAny, InvalidState)
		start = b.AddSplit(save0, loop)
		if err := b.Patch(loop, start); err != nil {
			return nil, err
		}
	}
	b.SetStart(start)
	b.SetAnchored(anchored)
	b.SetNumGroups(c.nextGroup)

	if c.config.MaxStates > 0 && b.States() > c.config.MaxStates {
		return nil, c.fail(ErrTooComplex, len(pattern))
	}

	n, err := b.Build()
	if err != nil {
		return nil, err
	}
	n.pattern = pattern
	return n, nil
}

// step shifts or reduces on the token at byte offset i and returns the
// offset of the following token.
func (c *Compiler) step(i int) (int, error) {
	p := c.pattern
	r, w := utf8.DecodeRuneInString(p[i:])
	b := c.builder

	if r == c.config.EscapeChar {
		lit, fn, isFunc, next, err := c.parseEscape(i)
		if err != nil {
			return 0, err
		}
		if isFunc {
			c.shiftState(b.AddFunc(fn, InvalidState))
		} else {
			c.shiftState(b.AddChar(lit, InvalidState))
		}
		return next, nil
	}

	switch r {
	case '(':
		group := -1
		next := i + w
		if len(p) >= next+2 && p[next] == '?' && p[next+1] == ':' {
			next += 2
		} else if c.nextGroup < MaxGroups {
			group = c.nextGroup
			c.nextGroup++
		}
		c.levels = append(c.levels, level{group: group})
		return next, nil

	case ')':
		if len(c.levels) == 1 {
			return 0, c.fail(ErrUnexpectedParen, i)
		}
		group := c.levels[len(c.levels)-1].group
		f, err := c.reduceLevel()
		if err != nil {
			return 0, err
		}
		c.levels = c.levels[:len(c.levels)-1]
		if group > 0 {
			save := b.AddSave(2*group, f.entry)
			end := b.AddSave(2*group+1, InvalidState)
			if err := b.Patch(f.exit, end); err != nil {
				return 0, err
			}
			f = frag{save, end}
		}
		c.shift(f)
		return i + w, nil

	case '|':
		if err := c.reduceSeq(); err != nil {
			return 0, err
		}
		c.top().alt++
		return i + w, nil

	case '*', '+', '?':
		if c.top().seq == 0 {
			return 0, c.fail(ErrMissingRepeatArgument, i)
		}
		next := i + w
		lazy := next < len(p) && p[next] == '?'
		if lazy {
			next++
		}
		f, err := c.repeat(c.pop(), r, lazy)
		if err != nil {
			return 0, err
		}
		c.stack = append(c.stack, f)
		return next, nil

	case '[':
		return c.parseClass(i)

	case '.':
		c.shiftState(b.AddFunc(FuncAnyNotNL, InvalidState))
		return i + w, nil

	case '$':
		next := i + w
		if next == len(p) || p[next] == '|' || p[next] == ')' {
			c.shiftState(b.AddChar(EndOfText, InvalidState))
			return next, nil
		}
	}

	c.shiftState(b.AddChar(r, InvalidState))
	return i + w, nil
}

func (c *Compiler) top() *level {
	return &c.levels[len(c.levels)-1]
}

func (c *Compiler) pop() frag {
	f := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return f
}

// shift pushes a finished fragment onto the current sequence.
func (c *Compiler) shift(f frag) {
	c.stack = append(c.stack, f)
	c.top().seq++
}

func (c *Compiler) shiftState(id StateID) {
	c.shift(frag{id, id})
}

// repeat wraps f in a quantifier. Each quantifier gets its own Split and
// Empty; lazy only swaps the Split's successors.
func (c *Compiler) repeat(f frag, op rune, lazy bool) (frag, error) {
	b := c.builder
	exit := b.AddEmpty(InvalidState)
	var split StateID
	if lazy {
		split = b.AddSplit(exit, f.entry)
	} else {
		split = b.AddSplit(f.entry, exit)
	}

	switch op {
	case '*':
		if err := b.Patch(f.exit, split); err != nil {
			return frag{}, err
		}
		return frag{split, exit}, nil
	case '+':
		if err := b.Patch(f.exit, split); err != nil {
			return frag{}, err
		}
		return frag{f.entry, exit}, nil
	default: // '?'
		if err := b.Patch(f.exit, exit); err != nil {
			return frag{}, err
		}
		return frag{split, exit}, nil
	}
}

// reduceSeq concatenates the pending fragments of the current alternative
// into one. An empty alternative becomes a lone Empty state.
func (c *Compiler) reduceSeq() error {
	lv := c.top()
	n := lv.seq
	lv.seq = 0
	if n == 0 {
		e := c.builder.AddEmpty(InvalidState)
		c.stack = append(c.stack, frag{e, e})
		return nil
	}
	base := len(c.stack) - n
	for k := base; k < len(c.stack)-1; k++ {
		if err := c.builder.Patch(c.stack[k].exit, c.stack[k+1].entry); err != nil {
			return err
		}
	}
	f := frag{c.stack[base].entry, c.stack[len(c.stack)-1].exit}
	c.stack = append(c.stack[:base], f)
	return nil
}

// reduceAlt joins the top m alternatives. Splits are chained so the
// leftmost alternative is always tried first; all exits meet in one Empty.
func (c *Compiler) reduceAlt(m int) error {
	if m <= 1 {
		return nil
	}
	b := c.builder
	base := len(c.stack) - m
	alts := c.stack[base:]
	merge := b.AddEmpty(InvalidState)
	for _, f := range alts {
		if err := b.Patch(f.exit, merge); err != nil {
			return err
		}
	}
	entry := alts[m-1].entry
	for k := m - 2; k >= 0; k-- {
		entry = b.AddSplit(alts[k].entry, entry)
	}
	c.stack = append(c.stack[:base], frag{entry, merge})
	return nil
}

// reduceLevel closes the innermost level and leaves its single fragment on
// the stack, returning it popped.
func (c *Compiler) reduceLevel() (frag, error) {
	if err := c.reduceSeq(); err != nil {
		return frag{}, err
	}
	lv := c.top()
	lv.alt++
	if err := c.reduceAlt(lv.alt); err != nil {
		return frag{}, err
	}
	lv.alt = 0
	return c.pop(), nil
}

// parseEscape decodes the escape sequence whose escape character is at
// offset i. It yields either a literal rune or a builtin predicate.
func (c *Compiler) parseEscape(i int) (lit rune, fn FuncID, isFunc bool, next int, err error) {
	p := c.pattern
	_, w := utf8.DecodeRuneInString(p[i:])
	at := i + w
	if at >= len(p) {
		return 0, 0, false, 0, c.fail(ErrTrailingEscape, len(p))
	}
	r, w := utf8.DecodeRuneInString(p[at:])
	next = at + w

	if r == c.config.EscapeChar {
		return r, 0, false, next, nil
	}
	switch r {
	case 'd':
		return 0, FuncDigit, true, next, nil
	case 'D':
		return 0, FuncNotDigit, true, next, nil
	case 's':
		return 0, FuncSpace, true, next, nil
	case 'S':
		return 0, FuncNotSpace, true, next, nil
	case 'w':
		return 0, FuncWord, true, next, nil
	case 'W':
		return 0, FuncNotWord, true, next, nil
	case 't':
		return '\t', 0, false, next, nil
	case 'n':
		return '\n', 0, false, next, nil
	case 'r':
		return '\r', 0, false, next, nil
	case 'e':
		return 0x1b, 0, false, next, nil
	case '0':
		return 0, 0, false, next, nil
	}
	if r < utf8.RuneSelf && isWord(r) {
		return 0, 0, false, 0, c.fail(ErrInvalidEscape, at)
	}
	// Any other punctuation or non-ASCII rune stands for itself.
	return r, 0, false, next, nil
}

// parseClass compiles the bracket expression starting at offset i.
// A `]` directly after `[` or `[^` is a literal; so is a `-` at either end
// of the class or right after a builtin escape.
func (c *Compiler) parseClass(i int) (int, error) {
	p := c.pattern
	i++ // '['
	negated := false
	if i < len(p) && p[i] == '^' {
		negated = true
		i++
	}

	c.class.reset()
	first := true
	for {
		if i >= len(p) {
			return 0, c.fail(ErrMissingBracket, len(p))
		}
		if p[i] == ']' && !first {
			i++
			break
		}
		first = false

		lo, fn, isFunc, next, err := c.classAtom(i)
		if err != nil {
			return 0, err
		}
		i = next
		if isFunc {
			c.class.addFunc(fn)
			continue
		}
		if i+1 < len(p) && p[i] == '-' && p[i+1] != ']' {
			hi, _, hiFunc, next, err := c.classAtom(i + 1)
			if err != nil {
				return 0, err
			}
			if hiFunc {
				return 0, c.fail(ErrInvalidRange, i+1)
			}
			c.class.addRange(lo, hi)
			i = next
			continue
		}
		c.class.addChar(lo)
	}

	off := c.builder.addClassData(&c.class)
	c.shiftState(c.builder.AddClass(off, negated, InvalidState))
	return i, nil
}

func (c *Compiler) classAtom(i int) (lit rune, fn FuncID, isFunc bool, next int, err error) {
	r, w := utf8.DecodeRuneInString(c.pattern[i:])
	if r == c.config.EscapeChar {
		return c.parseEscape(i)
	}
	return r, 0, false, i + w, nil
}

func (c *Compiler) fail(err error, offset int) error {
	return &CompileError{Pattern: c.pattern, Offset: offset, Err: err}
}
