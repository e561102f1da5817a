package bench

import (
	"context"
	"errors"
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	wordpinyin "github.com/jamesainslie/go-wordpinyin"
	"github.com/jamesainslie/go-wordpinyin/align"
)

// Converter produces word-aligned pinyin; *wordpinyin.Converter satisfies it.
type Converter interface {
	AlignedTokens(ctx context.Context, text string, style wordpinyin.Style) ([]align.Aligned, error)
}

// SampleResult is the outcome for one sentence.
type SampleResult struct {
	Metrics       Metrics
	PinyinChecked bool
	PinyinCorrect bool
	Got           string // plain pinyin produced by the converter
}

// Mismatch records a sentence whose pinyin differs from the gold pinyin.
type Mismatch struct {
	Line int
	Text string
	Want string
	Got  string
}

// Report aggregates results over many sentences.
type Report struct {
	Sentences      int
	Failed         int // sentences the converter rejected
	Boundary       Metrics
	PinyinChecked  int
	PinyinCorrect  int
	PinyinAccuracy float64
	Mismatches     []Mismatch
}

// EvaluateSample converts one gold sentence and scores its word boundaries
// and, when annotated, its plain pinyin.
func EvaluateSample(ctx context.Context, conv Converter, s Sample, cfg Config) (SampleResult, error) {
	aligned, err := conv.AlignedTokens(ctx, s.Text, wordpinyin.StylePlain)
	if err != nil {
		return SampleResult{}, err
	}

	words := make([]string, len(aligned))
	for i, a := range aligned {
		words[i] = a.Surface
	}

	res := SampleResult{
		Metrics: Evaluate(Boundaries(words), s.Boundaries(), cfg),
		Got:     align.Format(aligned),
	}
	if s.Pinyin != "" {
		res.PinyinChecked = true
		res.PinyinCorrect = res.Got == s.Pinyin
	}
	return res, nil
}

// EvaluateSamples scores conv over samples concurrently. Conversion errors
// other than cancellation count the sentence as failed with every gold
// boundary missed.
func EvaluateSamples(ctx context.Context, conv Converter, samples []Sample, cfg Config) (Report, error) {
	results := make([]SampleResult, len(samples))
	failed := make([]bool, len(samples))

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}

	var mu sync.Mutex
	var mismatches []Mismatch

	for i, s := range samples {
		g.Go(func() error {
			res, err := EvaluateSample(ctx, conv, s, cfg)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				failed[i] = true
				return nil
			}
			results[i] = res
			if res.PinyinChecked && !res.PinyinCorrect {
				mu.Lock()
				mismatches = append(mismatches, Mismatch{Line: s.Line, Text: s.Text, Want: s.Pinyin, Got: res.Got})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	r := Report{Sentences: len(samples)}
	var tp, fp, fn int
	for i, res := range results {
		if failed[i] {
			r.Failed++
			fn += len(samples[i].Boundaries())
			if samples[i].Pinyin != "" {
				r.PinyinChecked++
			}
			continue
		}
		tp += res.Metrics.TruePositives
		fp += res.Metrics.FalsePositives
		fn += res.Metrics.FalseNegatives
		if res.PinyinChecked {
			r.PinyinChecked++
			if res.PinyinCorrect {
				r.PinyinCorrect++
			}
		}
	}

	r.Boundary = Aggregate(tp, fp, fn, cfg)
	if r.PinyinChecked > 0 {
		r.PinyinAccuracy = float64(r.PinyinCorrect) / float64(r.PinyinChecked)
	}

	sort.Slice(mismatches, func(i, j int) bool { return mismatches[i].Line < mismatches[j].Line })
	if cfg.MaxMismatches >= 0 && len(mismatches) > cfg.MaxMismatches {
		mismatches = mismatches[:cfg.MaxMismatches]
	}
	r.Mismatches = mismatches

	return r, nil
}

// Chars returns the number of characters in all samples.
func Chars(samples []Sample) int {
	n := 0
	for _, s := range samples {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}
