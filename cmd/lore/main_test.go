package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"
)

func runLore(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NilError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Stdin(t *testing.T) {
	const input = "a needle\nno\nneedle two\n"

	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{"lines", []string{"needle"}, 0, "a needle\nneedle two\n"},
		{"dash", []string{"needle", "-"}, 0, "a needle\nneedle two\n"},
		{"line numbers", []string{"-n", "needle"}, 0, "1:a needle\n3:needle two\n"},
		{"count", []string{"-c", "needle"}, 0, "2\n"},
		{"only matching", []string{"-o", "e+d"}, 0, "eed\need\n"},
		{"no match", []string{"haystack"}, 1, ""},
		{"count no match", []string{"-c", "haystack"}, 1, "0\n"},
		{"anchored", []string{"^needle"}, 0, "needle two\n"},
		{"escape", []string{"-escape", "%", "%s%w%w%w$"}, 0, "needle two\n"},
		{"color never", []string{"-color=never", "no"}, 0, "no\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runLore(t, input, tt.args...)
			assert.Equal(t, code, tt.code)
			assert.Equal(t, errOut, "")
			if diff := cmp.Diff(tt.out, out); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun_OnlyMatchingMany(t *testing.T) {
	code, out, _ := runLore(t, "a 12 b 345\nx\n", "-o", "-n", `\d+`)
	assert.Equal(t, code, 0)
	assert.Equal(t, out, "1:12\n1:345\n")
}

func TestRun_Color(t *testing.T) {
	code, out, _ := runLore(t, "abcb\n", "-color=always", "b")
	assert.Equal(t, code, 0)
	assert.Equal(t, out, "a"+colorStart+"b"+colorEnd+"c"+colorStart+"b"+colorEnd+"\n")

	_, out, _ = runLore(t, "abc\n", "-o", "-color=always", "b")
	assert.Equal(t, out, colorStart+"b"+colorEnd+"\n")

	// A buffer is not a terminal.
	_, out, _ = runLore(t, "abc\n", "b")
	assert.Equal(t, out, "abc\n")
}

func TestRun_Files(t *testing.T) {
	one := writeFile(t, "one.txt", "alpha\nbeta\n")
	two := writeFile(t, "two.txt", "gamma\nalphabet\n")

	code, out, _ := runLore(t, "", "alpha", one, two)
	assert.Equal(t, code, 0)
	assert.Equal(t, out, one+":alpha\n"+two+":alphabet\n")

	code, out, _ = runLore(t, "", "-c", "a$", one, two)
	assert.Equal(t, code, 0)
	assert.Equal(t, out, one+":2\n"+two+":1\n")

	code, out, _ = runLore(t, "", "-H", "-n", "beta", one)
	assert.Equal(t, code, 0)
	assert.Equal(t, out, one+":2:beta\n")
}

func TestRun_MissingFile(t *testing.T) {
	one := writeFile(t, "one.txt", "alpha\n")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	code, out, errOut := runLore(t, "", "alpha", missing, one)
	assert.Equal(t, code, 2)
	assert.Equal(t, out, one+":alpha\n")
	assert.Assert(t, strings.HasPrefix(errOut, "lore: "+missing+": "), errOut)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no pattern", nil, "usage: lore"},
		{"bad pattern", []string{"(abc"}, "missing closing )"},
		{"bad escape flag", []string{"-escape", "ab", "x"}, "-escape wants a single character"},
		{"bad color flag", []string{"-color=sometimes", "x"}, "-color wants auto, always or never"},
		{"unknown flag", []string{"-z", "x"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runLore(t, "x\n", tt.args...)
			assert.Equal(t, code, 2)
			assert.Equal(t, out, "")
			assert.Assert(t, strings.Contains(errOut, tt.want), errOut)
		})
	}
}
