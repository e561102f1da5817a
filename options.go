package wordpinyin

import (
	"log/slog"
	"runtime"
)

// Option configures a Converter.
type Option func(*config)

type config struct {
	tokenizer   Tokenizer
	resolver    Resolver
	strict      bool
	concurrency int
	foldWidth   bool
	logger      *slog.Logger
}

func defaultConfig() config {
	return config{
		strict:      true,
		concurrency: runtime.NumCPU(),
		foldWidth:   true,
		logger:      slog.Default(),
	}
}

// WithTokenizer sets the word tokenizer (default: tokenizer.GSE with its
// embedded dictionary).
func WithTokenizer(t Tokenizer) Option {
	return func(c *config) {
		if t != nil {
			c.tokenizer = t
		}
	}
}

// WithResolver sets the pinyin resolver (default: resolver.Resolver with the
// built-in phrase table).
func WithResolver(r Resolver) Option {
	return func(c *config) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithStrictAlignment controls whether disagreement between tokens and
// syllables fails with ErrAlignment (default: true). When disabled, groups
// are silently shortened and a warning is logged.
func WithStrictAlignment(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}

// WithConcurrency limits how many texts TokenizedPinyinBatch converts at
// once (default: runtime.NumCPU()).
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithWidthFolding controls whether full-width letters and digits are folded
// to ASCII before cleaning (default: true).
func WithWidthFolding(enabled bool) Option {
	return func(c *config) {
		c.foldWidth = enabled
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
