package lore

// ReplaceAllLiteral returns a copy of src, replacing matches of the pattern
// with the replacement bytes repl.
// The replacement is substituted directly, without expanding $ variables.
func (r *Regex) ReplaceAllLiteral(src, repl []byte) []byte {
	return r.replaceAll(src, func(dst []byte, _ []int) []byte {
		return append(dst, repl...)
	})
}

// ReplaceAllLiteralString returns a copy of src, replacing matches of the pattern
// with the replacement string repl.
// The replacement is substituted directly, without expanding $ variables.
//
// Example:
//
//	re := lore.MustCompile(`\d+`)
//	result := re.ReplaceAllLiteralString("age: 42", "$1")
//	// result = "age: $1"
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	return string(r.ReplaceAllLiteral([]byte(src), []byte(repl)))
}

// ReplaceAll returns a copy of src, replacing matches of the pattern
// with the replacement bytes repl.
// Inside repl, $0 is the entire match, $1 to $9 are capture groups, ${n}
// is group n, and $$ is a literal $. Groups that did not participate or do
// not exist expand to nothing.
func (r *Regex) ReplaceAll(src, repl []byte) []byte {
	return r.replaceAll(src, func(dst []byte, match []int) []byte {
		return expand(dst, repl, src, match)
	})
}

// ReplaceAllString returns a copy of src, replacing matches of the pattern
// with the replacement string repl, expanding $ variables as ReplaceAll does.
//
// Example:
//
//	re := lore.MustCompile(`(\w+)@(\w+)\.(\w+)`)
//	result := re.ReplaceAllString("user@example.com", "$1 at ${2} dot $3")
//	// result = "user at example dot com"
func (r *Regex) ReplaceAllString(src, repl string) string {
	return string(r.ReplaceAll([]byte(src), []byte(repl)))
}

// ReplaceAllFunc returns a copy of src in which all matches of the pattern
// have been replaced by the return value of function repl applied to the matched
// byte slice. The replacement returned by repl is substituted directly, without
// using Expand.
func (r *Regex) ReplaceAllFunc(src []byte, repl func([]byte) []byte) []byte {
	return r.replaceAll(src, func(dst []byte, match []int) []byte {
		return append(dst, repl(src[match[0]:match[1]])...)
	})
}

// ReplaceAllStringFunc returns a copy of src in which all matches of the
// pattern have been replaced by the return value of function repl applied to
// the matched substring.
//
// Example:
//
//	re := lore.MustCompile(`\d+`)
//	result := re.ReplaceAllStringFunc("1 2 3", func(s string) string {
//	    n, _ := strconv.Atoi(s)
//	    return strconv.Itoa(n * 2)
//	})
//	// result = "2 4 6"
func (r *Regex) ReplaceAllStringFunc(src string, repl func(string) string) string {
	b := r.replaceAll([]byte(src), func(dst []byte, match []int) []byte {
		return append(dst, repl(src[match[0]:match[1]])...)
	})
	return string(b)
}

// Expand appends template to dst with $ variables replaced by the groups of
// match, a result of FindSubmatchIndex over src, and returns the result.
func (r *Regex) Expand(dst []byte, template []byte, src []byte, match []int) []byte {
	return expand(dst, template, src, match)
}

// replaceAll copies src to a new buffer, letting repl append the
// replacement for every match.
func (r *Regex) replaceAll(src []byte, repl func(dst []byte, match []int) []byte) []byte {
	matches := r.engine.FindAll(src, -1)
	if len(matches) == 0 {
		// No matches, return copy of src
		result := make([]byte, len(src))
		copy(result, src)
		return result
	}

	result := make([]byte, 0, len(src))
	lastEnd := 0
	for _, m := range matches {
		slots := m.Slots()
		result = append(result, src[lastEnd:slots[0]]...)
		result = repl(result, slots)
		lastEnd = slots[1]
	}
	return append(result, src[lastEnd:]...)
}

// expand appends template to dst and returns the result; during the
// append, it replaces $1, ${1}, etc. with the corresponding submatch.
// $0 is the entire match.
func expand(dst []byte, template []byte, src []byte, match []int) []byte {
	i := 0
	for i < len(template) {
		if template[i] != '$' || i+1 >= len(template) {
			dst = append(dst, template[i])
			i++
			continue
		}

		next := template[i+1]

		// $$ -> $
		if next == '$' {
			dst = append(dst, '$')
			i += 2
			continue
		}

		group, width := -1, 0
		switch {
		case next >= '0' && next <= '9':
			group, width = int(next-'0'), 2
		case next == '{':
			group, width = parseBraced(template[i+2:])
			if width > 0 {
				width += 2
			}
		}
		if width == 0 {
			// Unknown $ escape, treat as literal
			dst = append(dst, '$')
			i++
			continue
		}

		if 2*group+1 < len(match) && match[2*group] >= 0 {
			dst = append(dst, src[match[2*group]:match[2*group+1]]...)
		}
		i += width
	}
	return dst
}

// parseBraced parses "n}" at the start of b and returns n and the number of
// bytes used, or width 0 if b does not start with a group number and `}`.
func parseBraced(b []byte) (group, width int) {
	n := 0
	for width < len(b) && b[width] >= '0' && b[width] <= '9' {
		n = n*10 + int(b[width]-'0')
		if n > 1<<16 {
			return 0, 0
		}
		width++
	}
	if width == 0 || width >= len(b) || b[width] != '}' {
		return 0, 0
	}
	return n, width + 1
}

// Split slices s into substrings separated by the expression and returns a slice of
// the substrings between those expression matches.
//
// The count determines the number of substrings to return:
//
//	n > 0: at most n substrings; the last substring will be the unsplit remainder.
//	n == 0: the result is nil (zero substrings)
//	n < 0: all substrings
//
// Example:
//
//	re := lore.MustCompile(`,`)
//	parts := re.Split("a,b,c", -1)
//	// parts = ["a", "b", "c"]
//
//	parts = re.Split("a,b,c", 2)
//	// parts = ["a", "b,c"]
func (r *Regex) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	limit := -1
	if n > 0 {
		limit = n - 1
	}
	indices := r.FindAllStringIndex(s, limit)

	result := make([]string, 0, len(indices)+1)
	lastEnd := 0
	for _, idx := range indices {
		result = append(result, s[lastEnd:idx[0]])
		lastEnd = idx[1]
	}
	return append(result, s[lastEnd:])
}
