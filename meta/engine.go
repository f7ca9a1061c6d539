package meta

import (
	"sync/atomic"

	"github.com/signaldust/lore/literal"
	"github.com/signaldust/lore/nfa"
	"github.com/signaldust/lore/prefilter"
)

// Engine is the meta-engine: a compiled pattern plus the prefilter built
// from its literal prefixes.
//
// The Engine:
//  1. Compiles the pattern into an NFA
//  2. Extracts literal prefixes (unanchored patterns only)
//  3. Builds a prefilter from them, if there are any
//  4. Coordinates prefilter and matcher during search
//
// Thread safety: the NFA and prefilter are immutable after compilation and
// per-search state is pooled, so multiple goroutines can call search methods
// on the same Engine concurrently.
//
// Example:
//
//	engine, err := meta.Compile(`(foo|bar)\d+`)
//	if err != nil {
//	    return err
//	}
//	match := engine.Find([]byte("test foo123 end"))
//	if match != nil {
//	    println(match.String()) // "foo123"
//	}
type Engine struct {
	// IMPORTANT: stats MUST be first field for proper 8-byte alignment on 32-bit platforms.
	stats Stats

	nfa       *nfa.NFA
	prefilter prefilter.Prefilter
	config    Config

	// literalOnly is set when the prefilter answers searches by itself:
	// the pattern is one literal and has no capture groups.
	literalOnly bool

	statePool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts matcher runs, including those the prefilter answered.
	Searches uint64

	// PrefilterHits counts prefilter candidates.
	PrefilterHits uint64

	// PrefilterMisses counts candidates where no match started.
	PrefilterMisses uint64

	// PrefilterSkips counts searches the prefilter ended without running
	// the matcher because no candidate was left.
	PrefilterSkips uint64

	// PrefilterAbandoned counts times the prefilter was retired for a
	// haystack due to a high false positive rate.
	PrefilterAbandoned uint64

	// LiteralMatches counts matches found by the prefilter alone.
	LiteralMatches uint64
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*Engine, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// Errors are *ConfigError for an invalid config and *nfa.CompileError for an
// invalid pattern.
func CompileWithConfig(pattern string, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		EscapeChar: config.EscapeChar,
		MaxStates:  config.MaxStates,
	})
	n, err := compiler.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return NewEngine(n, config)
}

// NewEngine builds an engine around an already compiled NFA.
func NewEngine(n *nfa.NFA, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if _, err := nfa.NewMatcher(n); err != nil {
		return nil, err
	}

	e := &Engine{
		nfa:    n,
		config: config,
	}

	// An anchored pattern only matches where the matcher starts, so there
	// is nothing to skip to.
	if config.EnablePrefilter && !n.OnlyAtBeginning() {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
			MaxClassSize:  literal.DefaultConfig().MaxClassSize,
		})
		prefixes := extractor.ExtractPrefixes(n)
		e.prefilter = prefilter.NewBuilder(prefixes).Build()
		e.literalOnly = e.prefilter != nil && e.prefilter.IsComplete() && n.NumGroups() == 1
	}

	e.statePool = newSearchStatePool(n, e.prefilter)
	return e, nil
}

// NFA returns the compiled automaton.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// Prefilter returns the prefilter, or nil if the pattern has none.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.prefilter
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config {
	return e.config
}

// NumCaptures returns the number of groups, group 0 included.
func (e *Engine) NumCaptures() int {
	return e.nfa.NumGroups()
}

// OnlyAtBeginning reports whether the pattern is anchored with `^`.
func (e *Engine) OnlyAtBeginning() bool {
	return e.nfa.OnlyAtBeginning()
}

// NewMatcher returns a fresh online matcher for the engine's NFA.
// The matcher is owned by the caller and is not safe for concurrent use.
func (e *Engine) NewMatcher() *nfa.Matcher {
	m, err := nfa.NewMatcher(e.nfa)
	if err != nil {
		// NewEngine already checked the NFA.
		panic("meta: " + err.Error())
	}
	return m
}

// Stats returns a snapshot of the execution statistics.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:           atomic.LoadUint64(&e.stats.Searches),
		PrefilterHits:      atomic.LoadUint64(&e.stats.PrefilterHits),
		PrefilterMisses:    atomic.LoadUint64(&e.stats.PrefilterMisses),
		PrefilterSkips:     atomic.LoadUint64(&e.stats.PrefilterSkips),
		PrefilterAbandoned: atomic.LoadUint64(&e.stats.PrefilterAbandoned),
		LiteralMatches:     atomic.LoadUint64(&e.stats.LiteralMatches),
	}
}

// ResetStats resets the execution statistics to zero.
func (e *Engine) ResetStats() {
	atomic.StoreUint64(&e.stats.Searches, 0)
	atomic.StoreUint64(&e.stats.PrefilterHits, 0)
	atomic.StoreUint64(&e.stats.PrefilterMisses, 0)
	atomic.StoreUint64(&e.stats.PrefilterSkips, 0)
	atomic.StoreUint64(&e.stats.PrefilterAbandoned, 0)
	atomic.StoreUint64(&e.stats.LiteralMatches, 0)
}
