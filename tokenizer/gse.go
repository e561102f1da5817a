package tokenizer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-ego/gse"
)

// GSE segments text with go-ego/gse. The dictionary is loaded on first use
// and shared read-only afterwards; GSE is safe for concurrent use.
type GSE struct {
	hmm       bool
	userDicts []string
	logger    *slog.Logger

	once sync.Once
	seg  gse.Segmenter
	err  error
}

// GSEOption configures a GSE segmenter.
type GSEOption func(*GSE)

// WithHMM enables the HMM pass that joins out-of-vocabulary characters.
func WithHMM(enabled bool) GSEOption {
	return func(g *GSE) {
		g.hmm = enabled
	}
}

// WithUserDict adds words from a dictionary file (see LoadModel) on top of
// the embedded gse dictionary.
func WithUserDict(path string) GSEOption {
	return func(g *GSE) {
		if path != "" {
			g.userDicts = append(g.userDicts, path)
		}
	}
}

// WithGSELogger sets the logger used to report dictionary loading.
func WithGSELogger(logger *slog.Logger) GSEOption {
	return func(g *GSE) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGSE returns a GSE segmenter. No dictionary is loaded until the first
// call to Load or Tokenize.
func NewGSE(opts ...GSEOption) *GSE {
	g := &GSE{hmm: true, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Load loads the embedded dictionary and any user dictionaries. Only the
// first call does any work; later calls return the same result.
func (g *GSE) Load() error {
	g.once.Do(func() {
		g.seg.SkipLog = true
		if err := g.seg.LoadDict(); err != nil {
			g.err = fmt.Errorf("loading gse dictionary: %w", err)
			return
		}
		for _, path := range g.userDicts {
			model, err := LoadModel(path)
			if err != nil {
				g.err = fmt.Errorf("loading user dictionary: %w", err)
				return
			}
			for _, w := range model.Words {
				if w.POS != "" {
					g.seg.AddToken(w.Text, w.Freq, w.POS)
				} else {
					g.seg.AddToken(w.Text, w.Freq)
				}
			}
		}
		if len(g.userDicts) > 0 {
			g.seg.CalcToken()
		}
		g.logger.Debug("loaded gse dictionary",
			"user_dicts", len(g.userDicts),
			"hmm", g.hmm,
		)
	})
	return g.err
}

// Tokenize splits text into words.
func (g *GSE) Tokenize(ctx context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.Load(); err != nil {
		return nil, err
	}

	words := restoreText(text, g.seg.Cut(text, g.hmm))
	return GroupNumbers(text, words), nil
}

// restoreText re-slices words from text by byte length. gse lowercases ASCII
// letters, which leaves byte lengths unchanged. If the lengths do not cover
// text exactly, words is returned as is.
func restoreText(text string, words []string) []string {
	out := make([]string, 0, len(words))
	off := 0
	for _, w := range words {
		end := off + len(w)
		if end > len(text) {
			return words
		}
		out = append(out, text[off:end])
		off = end
	}
	if off != len(text) {
		return words
	}
	return out
}

// Close releases segmenter resources.
func (g *GSE) Close() error {
	return nil
}
