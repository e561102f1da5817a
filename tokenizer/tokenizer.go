// Package tokenizer segments normalized Chinese text into word tokens.
//
// Unigram is a maximum-probability dictionary segmenter; GSE wraps the
// go-ego/gse segmenter and its embedded dictionary. Both keep Latin runs and
// number runs whole and preserve the input exactly: the concatenation of the
// returned tokens equals the input text.
package tokenizer

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"
)

// Unigram implements dictionary-based word segmentation: each Han run is
// split along the path maximising the sum of word log probabilities.
type Unigram struct {
	scores     map[string]float64 // word -> log probability
	unkScore   float64            // log probability for an unknown character
	maxWordLen int                // longest word, in runes
}

// New loads a Unigram tokenizer from a dictionary file.
func New(dictPath string) (*Unigram, error) {
	model, err := LoadModel(dictPath)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}
	return NewFromModel(model), nil
}

// NewFromModel builds a Unigram tokenizer from an in-memory model.
func NewFromModel(model *Model) *Unigram {
	t := &Unigram{
		scores: make(map[string]float64, len(model.Words)),
	}

	logTotal := math.Log(model.Total)
	minFreq := math.Inf(1)
	for _, w := range model.Words {
		t.scores[w.Text] = math.Log(w.Freq) - logTotal
		if w.Freq < minFreq {
			minFreq = w.Freq
		}

		// Track max word length for optimization
		if n := utf8.RuneCountInString(w.Text); n > t.maxWordLen {
			t.maxWordLen = n
		}
	}

	// Unknown characters score below the rarest known word.
	t.unkScore = math.Log(minFreq) - logTotal - 1

	return t
}

// Tokenize splits text into words. It never fails; the error is part of
// the segmenter contract shared with model-backed implementations.
func (t *Unigram) Tokenize(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.Cut(text), nil
}

// VocabSize returns the number of dictionary words.
func (t *Unigram) VocabSize() int {
	return len(t.scores)
}

// Close releases tokenizer resources.
func (t *Unigram) Close() error {
	return nil
}
