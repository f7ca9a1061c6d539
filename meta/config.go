// Package meta ties the compiler, the literal extractor and the prefilter
// together into an Engine for whole-buffer search.
//
// The online matcher in package nfa is the only matching engine: it reads
// input one rune at a time and never backtracks. The meta-engine adds what a
// caller holding the whole haystack can exploit:
//   - Prefilter: every match starts with one of the pattern's literal
//     prefixes, so the first occurrence of one is where matching begins
//   - Literal fast path: a pattern that is exactly one literal is answered
//     by the prefilter alone
//   - Pooled matchers: search methods are safe for concurrent use
//
// Positions are reported both as byte offsets into the haystack and as rune
// positions, which is what the matcher counts.
package meta

// Config controls meta-engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // always run the matcher from the start
//	engine, err := meta.CompileWithConfig(`(foo|bar)\d+`, config)
type Config struct {
	// EscapeChar introduces escape sequences in patterns.
	// Default: '\\'
	EscapeChar rune

	// EnablePrefilter enables literal-based prefiltering.
	// When false, the matcher scans every haystack from its first rune.
	// Default: true
	EnablePrefilter bool

	// MaxStates caps the size of the compiled state graph; patterns needing
	// more fail with nfa.ErrTooComplex. 0 disables the limit.
	// Default: 0
	MaxStates int

	// MaxLiterals limits the number of prefix literals extracted for the
	// prefilter. Patterns needing more get no prefilter.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the length in bytes of each prefix literal.
	// Default: 64
	MaxLiteralLen int
}

// DefaultConfig returns a configuration with sensible defaults.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EscapeChar = '%'
func DefaultConfig() Config {
	return Config{
		EscapeChar:      '\\',
		EnablePrefilter: true,
		MaxStates:       0,
		MaxLiterals:     64,
		MaxLiteralLen:   64,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
func (c Config) Validate() error {
	if c.EscapeChar <= 0 || c.EscapeChar > 0x10FFFF || (c.EscapeChar >= 0xD800 && c.EscapeChar <= 0xDFFF) {
		return &ConfigError{
			Field:   "EscapeChar",
			Message: "must be a valid non-NUL character",
		}
	}

	if c.MaxStates < 0 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must not be negative",
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 1_024 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 1,024",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "regexp: invalid config: " + e.Field + ": " + e.Message
}
