// Package resolver produces the per-character pinyin sequence for normalized
// text using go-pinyin, with phrase-level overrides for heteronyms.
package resolver

import (
	_ "embed"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mozillazg/go-pinyin"

	"github.com/jamesainslie/go-wordpinyin/textnorm"
)

//go:embed phrases.txt
var defaultPhrases string

// Resolver maps text to numeric-tone syllables. It is safe for concurrent
// use once constructed.
type Resolver struct {
	args      pinyin.Args
	phrases   map[string][]string
	maxPhrase int // longest phrase, in runes
}

// Option configures a Resolver.
type Option func(*config)

type config struct {
	defaults    bool
	phraseFiles []string
	phrases     map[string][]string
}

// WithPhraseFile adds phrase overrides from a text or binary (.pb) file.
// Later files win over earlier ones and over the built-in table.
func WithPhraseFile(path string) Option {
	return func(c *config) {
		if path != "" {
			c.phraseFiles = append(c.phraseFiles, path)
		}
	}
}

// WithPhrases adds phrase overrides directly.
func WithPhrases(phrases map[string][]string) Option {
	return func(c *config) {
		for k, v := range phrases {
			c.phrases[k] = v
		}
	}
}

// WithoutDefaultPhrases disables the built-in phrase table.
func WithoutDefaultPhrases() Option {
	return func(c *config) {
		c.defaults = false
	}
}

// New builds a Resolver.
func New(opts ...Option) (*Resolver, error) {
	cfg := config{defaults: true, phrases: make(map[string][]string)}
	for _, opt := range opts {
		opt(&cfg)
	}

	args := pinyin.NewArgs()
	args.Style = pinyin.Tone3
	args.Heteronym = false

	r := &Resolver{
		args:    args,
		phrases: make(map[string][]string),
	}

	if cfg.defaults {
		table, err := ParsePhrases(strings.NewReader(defaultPhrases))
		if err != nil {
			return nil, fmt.Errorf("built-in phrases: %w", err)
		}
		r.addPhrases(table)
	}
	for _, path := range cfg.phraseFiles {
		table, err := ReadPhraseFile(path)
		if err != nil {
			return nil, err
		}
		r.addPhrases(table)
	}
	if err := validatePhrases(cfg.phrases); err != nil {
		return nil, err
	}
	r.addPhrases(cfg.phrases)

	return r, nil
}

func (r *Resolver) addPhrases(table map[string][]string) {
	for phrase, syllables := range table {
		r.phrases[phrase] = syllables
		if n := utf8.RuneCountInString(phrase); n > r.maxPhrase {
			r.maxPhrase = n
		}
	}
}

// Phrases returns the number of phrase overrides loaded.
func (r *Resolver) Phrases() int {
	return len(r.phrases)
}

// Resolve returns one entry per character of text: a numeric-tone syllable
// for every Han character and the character itself otherwise, with CJK
// punctuation mapped to ASCII. A run of digits (optionally with a decimal
// part) yields a single entry.
func (r *Resolver) Resolve(text string) []string {
	if text == "" {
		return nil
	}

	numbers := textnorm.NumberSpans(text)
	entries := make([]string, 0, utf8.RuneCountInString(text))

	for i := 0; i < len(text); {
		if len(numbers) > 0 && numbers[0][0] == i {
			entries = append(entries, text[i:numbers[0][1]])
			i = numbers[0][1]
			numbers = numbers[1:]
			continue
		}

		ch, size := utf8.DecodeRuneInString(text[i:])
		if !textnorm.IsHan(ch) {
			entries = append(entries, textnorm.MapPunctuation(string(ch)))
			i += size
			continue
		}

		if syllables, n := r.matchPhrase(text[i:]); n > 0 {
			entries = append(entries, syllables...)
			i += n
			continue
		}

		entries = append(entries, r.single(ch))
		i += size
	}

	return entries
}

// matchPhrase finds the longest phrase at the start of s and returns its
// syllables and byte length.
func (r *Resolver) matchPhrase(s string) ([]string, int) {
	if r.maxPhrase < 2 {
		return nil, 0
	}

	ends := make([]int, 0, r.maxPhrase)
	for i, ch := range s {
		if !textnorm.IsHan(ch) || len(ends) == r.maxPhrase {
			break
		}
		ends = append(ends, i+utf8.RuneLen(ch))
	}

	for k := len(ends); k >= 2; k-- {
		if syllables, ok := r.phrases[s[:ends[k-1]]]; ok {
			return syllables, ends[k-1]
		}
	}
	return nil, 0
}

func (r *Resolver) single(ch rune) string {
	if py := pinyin.SinglePinyin(ch, r.args); len(py) > 0 && py[0] != "" {
		return py[0]
	}
	return string(ch)
}
