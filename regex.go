// Package lore provides online, non-backtracking regular expressions for Go.
//
// lore compiles a pattern into a Thompson NFA and runs it with an online
// matcher that consumes one rune at a time, so a search can be fed from a
// stream, a rope or a gap buffer without materializing the text. Matching
// is leftmost-first with the priority order of a backtracking engine, but
// every step is linear in the size of the pattern (ReDoS safe).
//
// Basic usage:
//
//	re, err := lore.Compile(`(\w+)@(\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Whole-string helpers report byte offsets, like package regexp
//	fmt.Println(re.FindStringSubmatch("mail user@host")) // [user@host user host]
//
//	// Search reports rune positions
//	m := re.Search("mail user@host")
//	fmt.Println(m.Start(), m.End()) // 5 14
//
// Streaming usage:
//
//	m := re.NewMatcher()
//	m.Start(0)
//	for _, r := range text {
//	    if m.Next(r) {
//	        break
//	    }
//	}
//	if m.End() {
//	    fmt.Println(m.GroupStart(0), m.GroupEnd(0))
//	}
//
// Syntax:
//   - Literals, `.` (any rune but a line break), `[...]` and `[^...]` classes
//   - `\d \D \s \S \w \W` (ASCII), `\t \n \r \e \0`
//   - `*`, `+`, `?` and their lazy forms `*?`, `+?`, `??`
//   - `(...)` capturing groups (up to nine), `(?:...)` non-capturing groups
//   - `|` alternation, `^` at pattern start, `$` at the end of a branch
//
// Matches are never empty. There are no flags, backreferences, lookaround
// or counted repetition; `{` and `}` are literals.
package lore

import (
	"github.com/signaldust/lore/meta"
	"github.com/signaldust/lore/nfa"
)

// Regex represents a compiled regular expression.
//
// A Regex is safe to use concurrently from multiple goroutines, except for
// methods that modify internal state (like ResetStats). A Matcher obtained
// from NewMatcher is not.
//
// Example:
//
//	re := lore.MustCompile(`hello`)
//	if re.MatchString("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	engine  *meta.Engine
	pattern string
}

// Regexp is an alias for Regex for code written against package regexp.
type Regexp = Regex

// Config controls compilation; see meta.Config.
type Config = meta.Config

// Stats holds search counters; see meta.Stats.
type Stats = meta.Stats

// Compile compiles a regular expression pattern.
//
// The error, if any, is a *nfa.CompileError carrying the byte offset of the
// problem; errors.Is matches it against the nfa.Err* sentinels.
//
// Example:
//
//	re, err := lore.Compile(`\d+-\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a regular expression pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
//
// Example:
//
//	var emailRegex = lore.MustCompile(`[a-z]+@[a-z]+\.[a-z]+`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("regexp: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithEscape compiles pattern using esc instead of `\` to introduce
// escape sequences, which suits patterns typed where backslashes are awkward.
//
// Example:
//
//	re, _ := lore.CompileWithEscape(`%d+%.`, '%')
//	re.FindString("v1.2") // "1."
func CompileWithEscape(pattern string, esc rune) (*Regex, error) {
	config := DefaultConfig()
	config.EscapeChar = esc
	return CompileWithConfig(pattern, config)
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := lore.DefaultConfig()
//	config.MaxStates = 10000 // reject huge patterns
//	re, err := lore.CompileWithConfig(pattern, config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, config)
	if err != nil {
		return nil, err
	}

	return &Regex{
		engine:  engine,
		pattern: pattern,
	}, nil
}

// DefaultConfig returns the default configuration for compilation.
//
// Users can customize this and pass to CompileWithConfig.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// QuoteMeta returns a string that escapes all regular expression metacharacters
// inside the argument text; the returned string is a regular expression matching
// the literal text.
//
// Example:
//
//	escaped := lore.QuoteMeta("hello.world")
//	// escaped = "hello\\.world"
//	re := lore.MustCompile(escaped)
//	re.MatchString("hello.world") // true
func QuoteMeta(s string) string {
	return QuoteMetaWithEscape(s, '\\')
}

// QuoteMetaWithEscape is QuoteMeta for patterns compiled with a custom
// escape character.
func QuoteMetaWithEscape(s string, esc rune) string {
	// `{` and `}` are plain literals
	const special = `.+*?()|[]^$`

	buf := make([]rune, 0, len(s))
	for _, r := range s {
		if r == esc || (r < 0x80 && isSpecial(byte(r), special)) {
			buf = append(buf, esc)
		}
		buf = append(buf, r)
	}
	return string(buf)
}

// isSpecial returns true if c is in the special characters string.
func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// NumSubexp returns the number of capturing groups in the pattern, at most
// nine. Groups past the ninth do not capture.
func (r *Regex) NumSubexp() int {
	return r.engine.NumCaptures() - 1
}

// OnlyAtBeginning reports whether the pattern starts with `^` and so only
// matches at the position a search starts from.
func (r *Regex) OnlyAtBeginning() bool {
	return r.engine.OnlyAtBeginning()
}

// NFA returns the compiled automaton, mainly for inspection with its
// String method.
func (r *Regex) NFA() *nfa.NFA {
	return r.engine.NFA()
}

// Stats returns search counters accumulated by this Regex.
func (r *Regex) Stats() Stats {
	return r.engine.Stats()
}

// ResetStats zeroes the search counters.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}

// Match reports whether the byte slice b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether the string s contains any match of the pattern.
//
// Example:
//
//	re := lore.MustCompile(`hello`)
//	if re.MatchString("hello world") {
//	    println("matched!")
//	}
func (r *Regex) MatchString(s string) bool {
	return r.Match([]byte(s))
}

// Find returns a slice holding the text of the leftmost match in b.
// Returns nil if no match is found.
func (r *Regex) Find(b []byte) []byte {
	match := r.engine.Find(b)
	if match == nil {
		return nil
	}
	return match.Bytes()
}

// FindString returns a string holding the text of the leftmost match in s.
// Returns empty string if no match is found.
//
// Example:
//
//	re := lore.MustCompile(`\d+`)
//	match := re.FindString("age: 42")
//	println(match) // "42"
func (r *Regex) FindString(s string) string {
	return string(r.Find([]byte(s)))
}

// FindIndex returns a two-element slice of integers defining the location of
// the leftmost match in b. The match is at b[loc[0]:loc[1]].
// Returns nil if no match is found.
func (r *Regex) FindIndex(b []byte) []int {
	match := r.engine.Find(b)
	if match == nil {
		return nil
	}
	return []int{match.Start(), match.End()}
}

// FindStringIndex returns a two-element slice of integers defining the location
// of the leftmost match in s. The match is at s[loc[0]:loc[1]].
// Returns nil if no match is found.
//
// Example:
//
//	re := lore.MustCompile(`\d+`)
//	loc := re.FindStringIndex("age: 42")
//	println(loc[0], loc[1]) // 5, 7
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindSubmatchIndex returns the byte offsets of the leftmost match and of
// each capturing group, 2*(NumSubexp()+1) integers with -1 for groups that
// did not participate. Returns nil if no match is found.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	match := r.engine.Find(b)
	if match == nil {
		return nil
	}
	return match.Slots()
}

// FindStringSubmatchIndex is FindSubmatchIndex for a string.
//
// Example:
//
//	re := lore.MustCompile(`(\w+)@(\w+)`)
//	loc := re.FindStringSubmatchIndex("to: a@b")
//	// loc = [4 7 4 5 6 7]
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.FindSubmatchIndex([]byte(s))
}

// FindSubmatch returns the text of the leftmost match and of each
// capturing group. Groups that did not participate are nil.
// Returns nil if no match is found.
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	match := r.engine.Find(b)
	if match == nil {
		return nil
	}
	return match.AllGroups()
}

// FindStringSubmatch returns the text of the leftmost match and of each
// capturing group. Groups that did not participate are "".
// Returns nil if no match is found.
//
// Example:
//
//	re := lore.MustCompile(`(\w+)@(\w+)`)
//	parts := re.FindStringSubmatch("to: user@host")
//	// parts = ["user@host", "user", "host"]
func (r *Regex) FindStringSubmatch(s string) []string {
	match := r.engine.Find([]byte(s))
	if match == nil {
		return nil
	}
	return match.AllGroupStrings()
}

// FindAll returns a slice of all successive matches of the pattern in b.
// If n >= 0, it returns at most n matches. If n < 0, it returns all matches.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	matches := r.engine.FindAll(b, n)
	if matches == nil {
		return nil
	}
	out := make([][]byte, len(matches))
	for i, m := range matches {
		out[i] = m.Bytes()
	}
	return out
}

// FindAllString returns a slice of all successive matches of the pattern in s.
// If n >= 0, it returns at most n matches. If n < 0, it returns all matches.
//
// Example:
//
//	re := lore.MustCompile(`\d+`)
//	matches := re.FindAllString("1 2 3", -1)
//	// matches = ["1", "2", "3"]
func (r *Regex) FindAllString(s string, n int) []string {
	matches := r.engine.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = s[m.Start():m.End()]
	}
	return out
}

// FindAllIndex returns the locations of all successive matches in b.
// If n >= 0, it returns at most n matches. If n < 0, it returns all matches.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	return r.engine.FindAllIndex(b, n)
}

// FindAllStringIndex returns the locations of all successive matches in s.
// If n >= 0, it returns at most n matches. If n < 0, it returns all matches.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.FindAllIndex([]byte(s), n)
}

// FindAllStringSubmatch returns the groups of all successive matches in s,
// as FindStringSubmatch does for one.
// If n >= 0, it returns at most n matches. If n < 0, it returns all matches.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	matches := r.engine.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([][]string, len(matches))
	for i, m := range matches {
		out[i] = m.AllGroupStrings()
	}
	return out
}

// FindAllStringSubmatchIndex returns the group offsets of all successive
// matches in s, as FindStringSubmatchIndex does for one.
// If n >= 0, it returns at most n matches. If n < 0, it returns all matches.
func (r *Regex) FindAllStringSubmatchIndex(s string, n int) [][]int {
	matches := r.engine.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = m.Slots()
	}
	return out
}

// Count returns the number of non-overlapping matches of the pattern in b.
// If n >= 0, counts at most n matches. If n < 0, counts all matches.
func (r *Regex) Count(b []byte, n int) int {
	return r.engine.Count(b, n)
}

// CountString returns the number of non-overlapping matches of the pattern in s.
//
// Example:
//
//	re := lore.MustCompile(`\d+`)
//	count := re.CountString("1 2 3 4 5", -1)
//	// count == 5
func (r *Regex) CountString(s string, n int) int {
	return r.Count([]byte(s), n)
}
