package lore

import (
	"reflect"
	"testing"
)

// TestCompile tests basic compilation
func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{"simple literal", "hello", false},
		{"digit", `\d`, false},
		{"word", `\w+`, false},
		{"alternation", "foo|bar", false},
		{"repetition", "a+", false},
		{"lazy", "a+?b", false},
		{"class", "[^a-z_]", false},
		{"braces are literals", "a{2}", false},
		{"invalid", "(", true},
		{"backreference", `(a)\1`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Errorf("Compile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && re == nil {
				t.Error("Compile() returned nil")
			}
			if tt.wantErr && re != nil {
				t.Error("Compile() returned a Regex along with an error")
			}
		})
	}
}

// TestMustCompile tests panic on invalid pattern
func TestMustCompile(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustCompile() should panic on invalid pattern")
		}
	}()
	MustCompile("(")
}

func TestRegex_String(t *testing.T) {
	re := MustCompile(`a(b|c)\d`)
	if re.String() != `a(b|c)\d` {
		t.Errorf("String() = %q", re.String())
	}
	if re.NumSubexp() != 1 {
		t.Errorf("NumSubexp() = %d, want 1", re.NumSubexp())
	}
	if re.OnlyAtBeginning() {
		t.Error("OnlyAtBeginning() = true for an unanchored pattern")
	}
	if !MustCompile("^a").OnlyAtBeginning() {
		t.Error("OnlyAtBeginning() = false for ^a")
	}
	if n := MustCompile("(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)(k)").NumSubexp(); n != 9 {
		t.Errorf("NumSubexp() = %d, want 9", n)
	}
}

func TestRegex_MatchString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{"hello", "hello world", true},
		{"hello", "goodbye", false},
		{`\d+`, "abc 123", true},
		{"^abc", "xabc", false},
		{"abc$", "abcx", false},
		{"abc$", "xabc", true},
		{"a*", "bbb", false},
		{"a*", "bab", true},
		{`\w+`, "", false},
		{`[^\d\s]`, "1 2", false},
		{`\W`, "héllo", true},
		{`\d`, "٣", false},
		{"a.c", "a\nc", false},
		{"a.c", "a\tc", true},
		{"{x}", "a{x}", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.MatchString(tt.input); got != tt.want {
				t.Errorf("MatchString(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got := re.Match([]byte(tt.input)); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegex_FindString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    string
		wantIdx []int
	}{
		{`\d+`, "age: 42", "42", []int{5, 7}},
		{"a|ab", "ab", "a", []int{0, 1}},
		{"ab|a", "ab", "ab", []int{0, 2}},
		{"a+?", "aaa", "a", []int{0, 1}},
		{"a+", "baaa", "aaa", []int{1, 4}},
		{"x*", "abc", "", nil},
		{"é+", "café!", "é", []int{3, 5}},
		{`<.+?>`, "<a><b>", "<a>", []int{0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.FindString(tt.input); got != tt.want {
				t.Errorf("FindString(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got := re.FindStringIndex(tt.input); !reflect.DeepEqual(got, tt.wantIdx) {
				t.Errorf("FindStringIndex(%q) = %v, want %v", tt.input, got, tt.wantIdx)
			}
			if got := string(re.Find([]byte(tt.input))); got != tt.want {
				t.Errorf("Find(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegex_FindStringSubmatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    []string
		wantIdx []int
	}{
		{`(\w+)@(\w+)`, "to: user@host", []string{"user@host", "user", "host"}, []int{4, 13, 4, 8, 9, 13}},
		{"(a)(x)?(b)", "ab", []string{"ab", "a", "", "b"}, []int{0, 2, 0, 1, -1, -1, 1, 2}},
		{"(a+?)(a*)", "aaa", []string{"aaa", "a", "aa"}, []int{0, 3, 0, 1, 1, 3}},
		{"(é)(x)", "ééx", []string{"éx", "é", "x"}, []int{2, 5, 2, 4, 4, 5}},
		{"(?:a)(b)", "ab", []string{"ab", "b"}, []int{0, 2, 1, 2}},
		{"(a)", "zzz", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.FindStringSubmatch(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindStringSubmatch(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if got := re.FindStringSubmatchIndex(tt.input); !reflect.DeepEqual(got, tt.wantIdx) {
				t.Errorf("FindStringSubmatchIndex(%q) = %v, want %v", tt.input, got, tt.wantIdx)
			}
		})
	}

	re := MustCompile("(a)(x)?")
	groups := re.FindSubmatch([]byte("a"))
	if len(groups) != 3 || string(groups[1]) != "a" || groups[2] != nil {
		t.Errorf("FindSubmatch() = %q", groups)
	}
}

func TestRegex_FindAllString(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		n       int
		want    []string
	}{
		{`\d+`, "1 22 333", -1, []string{"1", "22", "333"}},
		{`\d+`, "1 22 333", 2, []string{"1", "22"}},
		{`\d+`, "1 22 333", 0, nil},
		{`\d+`, "none", -1, nil},
		{"a", "aaa", -1, []string{"a", "a", "a"}},
		{"a*", "aaa", -1, []string{"aaa"}},
		{"^a", "aaa", -1, []string{"a"}},
		{"é", "éaé", -1, []string{"é", "é"}},
		{"a$", "a a", -1, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			if got := re.FindAllString(tt.input, tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FindAllString(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
			if got := re.CountString(tt.input, tt.n); got != len(tt.want) {
				t.Errorf("CountString(%q, %d) = %d, want %d", tt.input, tt.n, got, len(tt.want))
			}
			if got := re.FindAll([]byte(tt.input), tt.n); len(got) != len(tt.want) {
				t.Errorf("FindAll(%q, %d) returned %d matches, want %d", tt.input, tt.n, len(got), len(tt.want))
			}
		})
	}
}

func TestRegex_FindAllStringIndex(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.FindAllStringIndex("1 2 3", -1)
	want := [][]int{{0, 1}, {2, 3}, {4, 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAllStringIndex = %v, want %v", got, want)
	}

	re = MustCompile(`(\w)=(\d)?`)
	subs := re.FindAllStringSubmatch("a=1 b=", -1)
	wantSubs := [][]string{{"a=1", "a", "1"}, {"b=", "b", ""}}
	if !reflect.DeepEqual(subs, wantSubs) {
		t.Errorf("FindAllStringSubmatch = %q, want %q", subs, wantSubs)
	}
	idx := re.FindAllStringSubmatchIndex("a=1 b=", -1)
	wantIdx := [][]int{{0, 3, 0, 1, 2, 3}, {4, 6, 4, 5, -1, -1}}
	if !reflect.DeepEqual(idx, wantIdx) {
		t.Errorf("FindAllStringSubmatchIndex = %v, want %v", idx, wantIdx)
	}
}

func TestCompileWithEscape(t *testing.T) {
	re, err := CompileWithEscape(`%d+%.`, '%')
	if err != nil {
		t.Fatal(err)
	}
	if got := re.FindString("v1.2"); got != "1." {
		t.Errorf("FindString() = %q, want %q", got, "1.")
	}

	// The backslash is an ordinary character.
	re, err = CompileWithEscape(`a\d`, '%')
	if err != nil {
		t.Fatal(err)
	}
	if !re.MatchString(`a\d`) || re.MatchString("a1") {
		t.Error(`a\d with escape % should match the text a\d only`)
	}
}

func TestCompileWithConfig(t *testing.T) {
	config := DefaultConfig()
	config.EnablePrefilter = false
	re, err := CompileWithConfig("needle", config)
	if err != nil {
		t.Fatal(err)
	}
	if got := re.FindStringIndex("hay needle"); !reflect.DeepEqual(got, []int{4, 10}) {
		t.Errorf("FindStringIndex() = %v", got)
	}
	if re.Stats().PrefilterHits != 0 {
		t.Error("prefilter used although disabled")
	}

	re = MustCompile("needle")
	re.FindString("hay needle")
	if re.Stats().LiteralMatches != 1 {
		t.Errorf("Stats() = %+v, want one literal match", re.Stats())
	}
	re.ResetStats()
	if re.Stats() != (Stats{}) {
		t.Errorf("Stats() = %+v after ResetStats", re.Stats())
	}
}

func TestQuoteMeta(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"hello", "hello"},
		{"1.5+2", `1\.5\+2`},
		{`a\b`, `a\\b`},
		{"[x](y)|^$*?", `\[x\]\(y\)\|\^\$\*\?`},
		{"{}", "{}"},
		{"é.", `é\.`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := QuoteMeta(tt.input)
			if got != tt.want {
				t.Errorf("QuoteMeta(%q) = %q, want %q", tt.input, got, tt.want)
			}
			re := MustCompile(got)
			if re.FindString("x"+tt.input+"x") != tt.input {
				t.Errorf("quoted pattern %q does not match %q", got, tt.input)
			}
		})
	}

	if got := QuoteMetaWithEscape("50% off.", '%'); got != "50%% off%." {
		t.Errorf("QuoteMetaWithEscape() = %q", got)
	}
}

func TestRegex_Concurrent(t *testing.T) {
	re := MustCompile(`(\w+)=(\d+)`)
	done := make(chan bool)
	for g := 0; g < 8; g++ {
		go func() {
			defer func() { done <- true }()
			for i := 0; i < 200; i++ {
				got := re.FindAllStringSubmatch("a=1, bb=22, ccc=333", -1)
				if len(got) != 3 || got[2][2] != "333" {
					t.Errorf("FindAllStringSubmatch() = %q", got)
					return
				}
			}
		}()
	}
	for g := 0; g < 8; g++ {
		<-done
	}
}
