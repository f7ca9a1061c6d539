package nfa

import (
	"errors"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr error
		offset  int
	}{
		{"unterminated group", "(abc", ErrMissingParen, 4},
		{"unterminated nested group", "((a)", ErrMissingParen, 4},
		{"unopened group", "abc)", ErrUnexpectedParen, 3},
		{"unopened group first", "a)(", ErrUnexpectedParen, 1},
		{"leading star", "*a", ErrMissingRepeatArgument, 0},
		{"star after bar", "a|*", ErrMissingRepeatArgument, 2},
		{"question after paren", "(?", ErrMissingRepeatArgument, 1},
		{"unterminated class", "[abc", ErrMissingBracket, 4},
		{"unterminated negated class", "[^", ErrMissingBracket, 2},
		{"unknown escape", `a\q`, ErrInvalidEscape, 2},
		{"backreference", `(a)\1`, ErrInvalidEscape, 4},
		{"trailing escape", `abc\`, ErrTrailingEscape, 4},
		{"range to builtin", `[a-\d]`, ErrInvalidRange, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Compile(tt.pattern)
			assert.Assert(t, n == nil, "a failed compile must not return an NFA")
			assert.ErrorIs(t, err, tt.wantErr)

			var ce *CompileError
			assert.Assert(t, errors.As(err, &ce))
			assert.Equal(t, ce.Offset, tt.offset)
			assert.Equal(t, ce.Pattern, tt.pattern)
		})
	}
}

func TestCompile_Valid(t *testing.T) {
	patterns := []string{
		"", "a", "abc", "a|b", "a|", "|a", "()", "(?:)", "a**", "a*??",
		`[]]`, `[a-]`, `[-a]`, `[\d-z]`, `[^\s]`, `a{2,3}`, `$`, `^`, `^$`,
		`\t\n\r\e\0\\`, `\.\*\+\?\(\)\[\]\|\^\$`, "é+", "(((a)))",
	}
	for _, p := range patterns {
		n, err := Compile(p)
		assert.NilError(t, err, "pattern %q", p)
		assert.Equal(t, n.Pattern(), p)
	}
}

func TestCompile_Anchored(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"^abc", true},
		{"abc", false},
		{"a^bc", false},
		{`\^abc`, false},
		{"(^abc)", false},
	}
	for _, tt := range tests {
		n, err := Compile(tt.pattern)
		assert.NilError(t, err)
		assert.Equal(t, n.OnlyAtBeginning(), tt.want, "pattern %q", tt.pattern)
	}
}

func TestCompile_NumGroups(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"abc", 1},
		{"(a)", 2},
		{"(?:a)", 1},
		{"(a)(b(c))", 4},
		{strings.Repeat("(a)", 12), MaxGroups},
	}
	for _, tt := range tests {
		n, err := Compile(tt.pattern)
		assert.NilError(t, err)
		assert.Equal(t, n.NumGroups(), tt.want, "pattern %q", tt.pattern)
	}
}

func TestCompile_StateCountIsLinear(t *testing.T) {
	for _, unit := range []string{"a", "a*", "(a|b)", "[a-z]+?", `(?:\d)?`} {
		small, err := Compile(strings.Repeat(unit, 10))
		assert.NilError(t, err)
		large, err := Compile(strings.Repeat(unit, 100))
		assert.NilError(t, err)

		perUnit := (large.States() - small.States()) / 90
		assert.Assert(t, perUnit <= 4*len(unit),
			"%q: %d states per repetition", unit, perUnit)
	}
}

func TestCompile_StateKinds(t *testing.T) {
	n, err := Compile("a")
	assert.NilError(t, err)

	// Char, Save 0, Save 1, Match, prefix loop Func and Split.
	assert.Equal(t, n.States(), 6)

	start := n.State(n.Start())
	assert.Equal(t, start.Kind(), StateSplit)
	left, right := start.Split()
	assert.Equal(t, n.State(left).Kind(), StateSave)
	loop := n.State(right)
	fn, ok := loop.Func()
	assert.Assert(t, ok)
	assert.Equal(t, fn, FuncAny)
	assert.Equal(t, loop.Next(), n.Start())

	anchored, err := Compile("^a")
	assert.NilError(t, err)
	assert.Equal(t, anchored.States(), 4)
	slot, ok := anchored.State(anchored.Start()).Slot()
	assert.Assert(t, ok)
	assert.Equal(t, slot, 0)
}

func TestCompile_LazyOnlySwapsPriority(t *testing.T) {
	greedy, err := Compile("^a*")
	assert.NilError(t, err)
	lazy, err := Compile("^a*?")
	assert.NilError(t, err)
	assert.Equal(t, greedy.States(), lazy.States())

	findSplit := func(n *NFA) *State {
		for i := 0; i < n.States(); i++ {
			if s := n.State(StateID(i)); s.Kind() == StateSplit {
				return s
			}
		}
		t.Fatal("no split state")
		return nil
	}
	gl, gr := findSplit(greedy).Split()
	ll, lr := findSplit(lazy).Split()
	assert.Equal(t, gl, lr)
	assert.Equal(t, gr, ll)
}

func TestCompile_EndAnchor(t *testing.T) {
	countEOT := func(pattern string) int {
		n, err := Compile(pattern)
		assert.NilError(t, err)
		count := 0
		for i := 0; i < n.States(); i++ {
			if r, ok := n.State(StateID(i)).Char(); ok && r == EndOfText {
				count++
			}
		}
		return count
	}
	assert.Equal(t, countEOT("abc$"), 1)
	assert.Equal(t, countEOT("a$|b$"), 2)
	assert.Equal(t, countEOT("(a$)"), 1)
	assert.Equal(t, countEOT("a$b"), 0)
	assert.Equal(t, countEOT(`abc\$`), 0)
}

func TestCompileWithEscape(t *testing.T) {
	n, err := CompileWithEscape(`%d+%.`, '%')
	assert.NilError(t, err)
	m, err := NewMatcher(n)
	assert.NilError(t, err)

	assert.Assert(t, m.SearchString("v12.x"))
	assert.Equal(t, m.GroupStart(0), 1)
	assert.Equal(t, m.GroupEnd(0), 4)

	// With another escape character a backslash is an ordinary rune.
	n, err = CompileWithEscape(`a\b`, '%')
	assert.NilError(t, err)
	m, err = NewMatcher(n)
	assert.NilError(t, err)
	assert.Assert(t, m.SearchString(`xa\b`))
	assert.Equal(t, m.GroupStart(0), 1)

	_, err = CompileWithEscape(`50%`, '%')
	assert.ErrorIs(t, err, ErrTrailingEscape)
}

func TestCompile_MaxStates(t *testing.T) {
	c := NewCompiler(CompilerConfig{MaxStates: 20})
	_, err := c.Compile("abc")
	assert.NilError(t, err)

	_, err = c.Compile(strings.Repeat("a", 50))
	assert.ErrorIs(t, err, ErrTooComplex)
}

func TestCompiler_Reuse(t *testing.T) {
	c := NewDefaultCompiler()
	_, err := c.Compile("(a")
	assert.ErrorIs(t, err, ErrMissingParen)

	n, err := c.Compile("(a)b")
	assert.NilError(t, err)
	assert.Equal(t, n.NumGroups(), 2)
}

func TestNFA_String(t *testing.T) {
	n, err := Compile("^a[b-c]$")
	assert.NilError(t, err)
	dump := n.String()
	for _, want := range []string{"anchored: true", "Char('a')", "Class(@0)", "Char($)", "Save(1)", "Match"} {
		assert.Assert(t, strings.Contains(dump, want), "dump lacks %q:\n%s", want, dump)
	}
}
