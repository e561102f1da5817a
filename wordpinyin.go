package wordpinyin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jamesainslie/go-wordpinyin/align"
	"github.com/jamesainslie/go-wordpinyin/resolver"
	"github.com/jamesainslie/go-wordpinyin/textnorm"
	"github.com/jamesainslie/go-wordpinyin/tokenizer"
	"github.com/jamesainslie/go-wordpinyin/tone"
)

// Tokenizer segments cleaned text into words. The returned tokens must
// concatenate to text exactly, and every number run must be a single token.
type Tokenizer interface {
	Tokenize(ctx context.Context, text string) ([]string, error)
}

// Resolver returns numeric-tone pinyin for text: one entry per character,
// except that a number run yields a single entry holding the number itself.
type Resolver interface {
	Resolve(text string) []string
}

// Style selects how syllables are rendered.
type Style = tone.Style

// Rendering styles.
const (
	StyleNumeric = tone.StyleNumeric // "hao3"
	StylePlain   = tone.StylePlain   // "hao"
	StyleMarks   = tone.StyleMarks   // "hǎo"
)

// Converter turns Chinese text into word-aligned pinyin. It is safe for
// concurrent use.
type Converter struct {
	tokenizer   Tokenizer
	resolver    Resolver
	strict      bool
	concurrency int
	foldWidth   bool
	logger      *slog.Logger
}

// New creates a Converter. Without WithTokenizer or WithResolver it uses
// the gse segmenter and the go-pinyin resolver.
func New(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.tokenizer == nil {
		cfg.tokenizer = tokenizer.NewGSE()
	}
	if cfg.resolver == nil {
		r, err := resolver.New()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		cfg.resolver = r
	}

	return &Converter{
		tokenizer:   cfg.tokenizer,
		resolver:    cfg.resolver,
		strict:      cfg.strict,
		concurrency: cfg.concurrency,
		foldWidth:   cfg.foldWidth,
		logger:      cfg.logger,
	}, nil
}

// ParseStyle parses a style name: "", "none" or "numeric", "plain", or
// "marks", ignoring case and surrounding space.
func ParseStyle(name string) (Style, error) {
	style, err := tone.ParseStyle(name)
	if err != nil {
		return style, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return style, nil
}

// CleanText drops every character outside CJK ideographs, ASCII letters and
// digits, and the punctuation whitelist.
func (c *Converter) CleanText(text string) string {
	if c.foldWidth {
		text = textnorm.FoldWidth(text)
	}
	return textnorm.Clean(text)
}

// PinyinList returns the resolver's numeric-tone syllables for text, with
// CJK punctuation mapped to ASCII. Text is not cleaned first.
func (c *Converter) PinyinList(text string) []string {
	if text == "" {
		return nil
	}
	return c.resolver.Resolve(text)
}

// TokenizedPinyin returns one pinyin group per word of text.
func (c *Converter) TokenizedPinyin(ctx context.Context, text string, style Style) ([]string, error) {
	aligned, err := c.AlignedTokens(ctx, text, style)
	if err != nil {
		return nil, err
	}
	return align.Groups(aligned), nil
}

// AlignedTokens returns each word of text paired with its pinyin group.
func (c *Converter) AlignedTokens(ctx context.Context, text string, style Style) ([]align.Aligned, error) {
	if !style.Valid() {
		return nil, fmt.Errorf("%w: %w: %v", ErrInvalidConfiguration, tone.ErrInvalidStyle, style)
	}
	if text == "" {
		return nil, nil
	}

	cleaned := c.CleanText(text)
	if cleaned == "" {
		return nil, nil
	}

	tokens, err := c.tokenizer.Tokenize(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenizerFailed, err)
	}
	if joined := strings.Join(tokens, ""); joined != cleaned {
		return nil, fmt.Errorf("%w: got %q for %q", ErrTokenizerContract, joined, cleaned)
	}

	syllables := c.resolver.Resolve(cleaned)

	aligned, err := align.Align(tokens, syllables, style, c.strict)
	if err != nil {
		return nil, err
	}

	if !c.strict {
		if need := consumption(tokens); need != len(syllables) {
			c.logger.Warn("token and syllable counts disagree",
				"text", cleaned, "needed", need, "syllables", len(syllables))
		}
	}
	c.logger.Debug("converted text",
		"chars", len(cleaned), "tokens", len(tokens), "syllables", len(syllables), "style", style.String())

	return aligned, nil
}

// TokenizedPinyinBatch converts texts concurrently, preserving order. The
// first failure cancels the remaining work and is returned.
func (c *Converter) TokenizedPinyinBatch(ctx context.Context, texts []string, style Style) ([][]string, error) {
	if !style.Valid() {
		return nil, fmt.Errorf("%w: %w: %v", ErrInvalidConfiguration, tone.ErrInvalidStyle, style)
	}

	results := make([][]string, len(texts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			groups, err := c.TokenizedPinyin(ctx, text, style)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = groups
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// JoinTokenizedPinyin renders pinyin groups as one line: groups are
// separated by a space except before a single ASCII punctuation mark.
func JoinTokenizedPinyin(groups []string) string {
	return align.Join(groups)
}

// Close releases the tokenizer and resolver if they hold resources.
func (c *Converter) Close() error {
	var errs []error

	if closer, ok := c.tokenizer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if closer, ok := c.resolver.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func consumption(tokens []string) int {
	n := 0
	for _, t := range tokens {
		n += align.Width(t)
	}
	return n
}
