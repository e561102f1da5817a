// Package tagger segments Chinese text with a character tagging model.
//
// Each character is labelled B (word begin), M (middle), E (end) or S
// (single-character word) by an ONNX token-classification model, and the
// label sequence is decoded into words.
package tagger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/jamesainslie/go-wordpinyin/inference"
	"github.com/jamesainslie/go-wordpinyin/tokenizer"
)

const (
	// defaultMaxSeqLen matches the 512 positions of BERT-base exports.
	defaultMaxSeqLen = 512

	// chunkOverlap is the number of characters shared by adjacent chunks.
	chunkOverlap = 64
)

// Label indexes in the model output.
const (
	labelB = iota
	labelM
	labelE
	labelS
	numLabels
)

// Option configures a Tagger.
type Option func(*config)

type config struct {
	poolSize  int
	maxSeqLen int
	session   inference.SessionConfig
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		poolSize:  runtime.NumCPU(),
		maxSeqLen: defaultMaxSeqLen,
		session:   inference.DefaultSessionConfig(),
		logger:    slog.Default(),
	}
}

// WithPoolSize sets the ONNX session pool size (default: runtime.NumCPU()).
func WithPoolSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.poolSize = n
		}
	}
}

// WithMaxSeqLen sets the longest sequence passed to the model, special
// tokens included (default: 512).
func WithMaxSeqLen(n int) Option {
	return func(c *config) {
		if n > chunkOverlap+2 {
			c.maxSeqLen = n
		}
	}
}

// WithSessionConfig overrides the model input and output names.
func WithSessionConfig(sc inference.SessionConfig) Option {
	return func(c *config) {
		c.session = sc
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

// inferFunc runs the model on one encoded sequence.
type inferFunc func(ctx context.Context, ids, mask []int64) ([][]float32, error)

// Tagger is a model-backed word tokenizer. It is safe for concurrent use.
type Tagger struct {
	vocab     *Vocab
	pool      *inference.Pool
	maxSeqLen int
	logger    *slog.Logger
}

// New creates a Tagger from an ONNX model and its vocabulary file.
func New(modelPath, vocabPath string, opts ...Option) (*Tagger, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("checking model file: %w", err)
	}

	vocab, err := LoadVocab(vocabPath)
	if err != nil {
		return nil, err
	}

	pool, err := inference.NewPool(modelPath, cfg.poolSize, cfg.session)
	if err != nil {
		return nil, fmt.Errorf("creating session pool: %w", err)
	}

	return &Tagger{
		vocab:     vocab,
		pool:      pool,
		maxSeqLen: cfg.maxSeqLen,
		logger:    cfg.logger,
	}, nil
}

// Tokenize splits text into words. Number runs come back as single tokens.
func (t *Tagger) Tokenize(ctx context.Context, text string) ([]string, error) {
	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	var labels []int
	err := t.pool.With(ctx, func(s *inference.Session) error {
		var err error
		labels, err = t.tag(ctx, runes, s.Infer)
		return err
	})
	if err != nil {
		return nil, err
	}

	words := decode(runes, labels)
	t.logger.Debug("tagged text", "chars", len(runes), "words", len(words))
	return tokenizer.GroupNumbers(text, words), nil
}

// tag returns one label per rune, chunking long inputs with overlap and
// averaging logits where chunks overlap.
func (t *Tagger) tag(ctx context.Context, runes []rune, infer inferFunc) ([]int, error) {
	size := t.maxSeqLen - t.vocab.special()
	sum := make([][]float32, len(runes))
	counts := make([]int, len(runes))

	for _, span := range chunkSpans(len(runes), size, chunkOverlap) {
		logits, err := t.inferChunk(ctx, runes[span[0]:span[1]], infer)
		if err != nil {
			return nil, err
		}
		for i, row := range logits {
			pos := span[0] + i
			if sum[pos] == nil {
				sum[pos] = make([]float32, len(row))
			}
			for j := range row {
				if j < len(sum[pos]) {
					sum[pos][j] += row[j]
				}
			}
			counts[pos]++
		}
	}

	labels := make([]int, len(runes))
	for i, row := range sum {
		if counts[i] > 1 {
			for j := range row {
				row[j] /= float32(counts[i])
			}
		}
		labels[i] = argmax(row)
	}
	return labels, nil
}

// inferChunk runs the model on one chunk and strips special positions.
func (t *Tagger) inferChunk(ctx context.Context, chunk []rune, infer inferFunc) ([][]float32, error) {
	ids, mask := t.vocab.Encode(chunk)
	logits, err := infer(ctx, ids, mask)
	if err != nil {
		return nil, err
	}
	if len(logits) != len(ids) {
		return nil, fmt.Errorf("model returned %d positions for %d inputs", len(logits), len(ids))
	}

	offset := t.vocab.special() / 2
	rows := logits[offset : offset+len(chunk)]
	for i, row := range rows {
		if len(row) < numLabels {
			return nil, fmt.Errorf("position %d has %d labels, want %d", i, len(row), numLabels)
		}
	}
	return rows, nil
}

// Close releases all resources.
func (t *Tagger) Close() error {
	var errs []error
	if t.pool != nil {
		if err := t.pool.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// chunkSpans covers [0, n) with windows of at most size positions, each
// starting size-overlap after the previous one.
func chunkSpans(n, size, overlap int) [][2]int {
	if n == 0 {
		return nil
	}
	if n <= size {
		return [][2]int{{0, n}}
	}

	var spans [][2]int
	stride := size - overlap
	for start := 0; start < n; start += stride {
		end := min(start+size, n)
		spans = append(spans, [2]int{start, end})
		if end >= n {
			break
		}
	}
	return spans
}

// decode groups runes into words. A word starts at B or S (or after E or
// S) and ends after E or S; M and stray labels extend the current word.
func decode(runes []rune, labels []int) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for i, r := range runes {
		label := labelS
		if i < len(labels) {
			label = labels[i]
		}
		if label == labelB || label == labelS {
			flush()
		}
		cur = append(cur, r)
		if label == labelE || label == labelS {
			flush()
		}
	}
	flush()
	return words
}

func argmax(row []float32) int {
	best := 0
	for i := 1; i < len(row) && i < numLabels; i++ {
		if row[i] > row[best] {
			best = i
		}
	}
	return best
}
