package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/signaldust/lore"
)

const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2

	// maxLineSize bounds a single input line.
	maxLineSize = 16 << 20

	colorStart = "\x1b[01;31m"
	colorEnd   = "\x1b[m"
)

var errUsage = errors.New("usage: lore [-o] [-c] [-n] [-H] [-color=auto|always|never] [-escape C] PATTERN [FILE...]")

type options struct {
	onlyMatching bool
	count        bool
	lineNumbers  bool
	withFilename bool
	color        bool
}

// grep holds the state shared by every input of one run.
type grep struct {
	re    *lore.Regex
	opts  options
	stdin io.Reader
	out   *bufio.Writer
}

// run is main without the process exit, returning the exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	re, opts, paths, err := parseArgs(args, stdout, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "lore: %v\n", err)
		}
		return exitError
	}

	g := &grep{
		re:    re,
		opts:  opts,
		stdin: stdin,
		out:   bufio.NewWriter(stdout),
	}
	defer g.out.Flush()

	if len(paths) == 0 {
		paths = []string{"-"}
	}

	found, failed := false, false
	for _, path := range paths {
		ok, err := g.scanPath(path)
		if err != nil {
			fmt.Fprintf(stderr, "lore: %s: %v\n", path, err)
			failed = true
		}
		found = found || ok
	}

	switch {
	case failed:
		return exitError
	case found:
		return exitMatch
	default:
		return exitNoMatch
	}
}

// parseArgs handles the flags, the pattern and the file operands.
func parseArgs(args []string, stdout, stderr io.Writer) (*lore.Regex, options, []string, error) {
	var opts options
	fs := flag.NewFlagSet("lore", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.onlyMatching, "o", false, "print only the matched parts of a line, one per line")
	fs.BoolVar(&opts.count, "c", false, "print only a count of matching lines per file")
	fs.BoolVar(&opts.lineNumbers, "n", false, "prefix each line with its line number")
	fs.BoolVar(&opts.withFilename, "H", false, "prefix each line with its file name")
	color := fs.String("color", "auto", "highlight matches: auto, always or never")
	escape := fs.String("escape", `\`, "escape character used by PATTERN")
	if err := fs.Parse(args); err != nil {
		return nil, opts, nil, err
	}

	if fs.NArg() < 1 {
		return nil, opts, nil, errUsage
	}

	esc, size := utf8.DecodeRuneInString(*escape)
	if size == 0 || size != len(*escape) || esc == utf8.RuneError {
		return nil, opts, nil, fmt.Errorf("-escape wants a single character, got %q", *escape)
	}

	switch *color {
	case "always":
		opts.color = true
	case "never":
		opts.color = false
	case "auto":
		f, ok := stdout.(*os.File)
		opts.color = ok && isTerminal(f.Fd())
	default:
		return nil, opts, nil, fmt.Errorf("-color wants auto, always or never, got %q", *color)
	}

	re, err := lore.CompileWithEscape(fs.Arg(0), esc)
	if err != nil {
		return nil, opts, nil, err
	}

	paths := fs.Args()[1:]
	if len(paths) > 1 {
		opts.withFilename = true
	}
	return re, opts, paths, nil
}

// scanPath opens path ("-" for stdin) and scans it.
func (g *grep) scanPath(path string) (bool, error) {
	if path == "-" {
		return g.scan("(standard input)", g.stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return g.scan(path, f)
}

// scan reads r line by line, prints what the options ask for and reports
// whether any line matched.
func (g *grep) scan(name string, r io.Reader) (bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	matched := 0
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Text()
		if g.opts.count {
			if g.re.MatchString(line) {
				matched++
			}
			continue
		}

		if !g.opts.onlyMatching && !g.opts.color {
			if g.re.MatchString(line) {
				matched++
				g.printLine(name, lineno, line)
			}
			continue
		}

		locs := g.re.FindAllStringIndex(line, -1)
		if len(locs) == 0 {
			continue
		}
		matched++
		if g.opts.onlyMatching {
			for _, loc := range locs {
				g.printLine(name, lineno, g.highlight(line[loc[0]:loc[1]]))
			}
			continue
		}
		g.printLine(name, lineno, g.highlightAll(line, locs))
	}
	if err := scanner.Err(); err != nil {
		return matched > 0, err
	}

	if g.opts.count {
		if g.opts.withFilename {
			g.out.WriteString(name)
			g.out.WriteByte(':')
		}
		g.out.WriteString(strconv.Itoa(matched))
		g.out.WriteByte('\n')
	}
	return matched > 0, nil
}

func (g *grep) printLine(name string, lineno int, text string) {
	if g.opts.withFilename {
		g.out.WriteString(name)
		g.out.WriteByte(':')
	}
	if g.opts.lineNumbers {
		g.out.WriteString(strconv.Itoa(lineno))
		g.out.WriteByte(':')
	}
	g.out.WriteString(text)
	g.out.WriteByte('\n')
}

func (g *grep) highlight(s string) string {
	if !g.opts.color {
		return s
	}
	return colorStart + s + colorEnd
}

// highlightAll wraps every located match of line in color codes.
func (g *grep) highlightAll(line string, locs [][]int) string {
	if !g.opts.color {
		return line
	}
	buf := make([]byte, 0, len(line)+len(locs)*(len(colorStart)+len(colorEnd)))
	last := 0
	for _, loc := range locs {
		buf = append(buf, line[last:loc[0]]...)
		buf = append(buf, colorStart...)
		buf = append(buf, line[loc[0]:loc[1]]...)
		buf = append(buf, colorEnd...)
		last = loc[1]
	}
	buf = append(buf, line[last:]...)
	return string(buf)
}
