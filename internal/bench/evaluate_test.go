package bench

import (
	"context"
	"errors"
	"testing"

	wordpinyin "github.com/jamesainslie/go-wordpinyin"
	"github.com/jamesainslie/go-wordpinyin/align"
)

// stubConverter returns fixed alignments keyed by text.
type stubConverter struct {
	aligned map[string][]align.Aligned
	err     error
}

func (s stubConverter) AlignedTokens(_ context.Context, text string, _ wordpinyin.Style) ([]align.Aligned, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.aligned[text]
	if !ok {
		return nil, wordpinyin.ErrAlignment
	}
	return a, nil
}

var goodConverter = stubConverter{aligned: map[string][]align.Aligned{
	"可以刷卡吗？": {
		{Surface: "可以", Pinyin: "keyi"},
		{Surface: "刷卡", Pinyin: "shuaka"},
		{Surface: "吗", Pinyin: "ma"},
		{Surface: "？", Pinyin: "?"},
	},
	"回家了": {
		{Surface: "回", Pinyin: "hui"},
		{Surface: "家了", Pinyin: "jiale"},
	},
}}

func mustSample(t *testing.T, line string) Sample {
	t.Helper()
	s, ok := ParseSample(line)
	if !ok {
		t.Fatalf("ParseSample(%q) not ok", line)
	}
	return s
}

func TestEvaluateSample(t *testing.T) {
	cfg := DefaultConfig()

	res, err := EvaluateSample(context.Background(), goodConverter, mustSample(t, "可以 刷卡 吗 ？\tkeyi shuaka ma?"), cfg)
	if err != nil {
		t.Fatalf("EvaluateSample() error = %v", err)
	}
	if res.Metrics.TruePositives != 3 || res.Metrics.F1 != 1 {
		t.Errorf("Metrics = %+v", res.Metrics)
	}
	if !res.PinyinChecked || !res.PinyinCorrect {
		t.Errorf("pinyin checked=%v correct=%v got=%q", res.PinyinChecked, res.PinyinCorrect, res.Got)
	}

	res, err = EvaluateSample(context.Background(), goodConverter, mustSample(t, "回家 了\thuijia le"), cfg)
	if err != nil {
		t.Fatalf("EvaluateSample() error = %v", err)
	}
	if res.Metrics.TruePositives != 0 || res.Metrics.FalsePositives != 1 || res.Metrics.FalseNegatives != 1 {
		t.Errorf("Metrics = %+v", res.Metrics)
	}
	if res.PinyinCorrect || res.Got != "hui jiale" {
		t.Errorf("pinyin correct=%v got=%q", res.PinyinCorrect, res.Got)
	}
}

func TestEvaluateSamples(t *testing.T) {
	samples := []Sample{
		mustSample(t, "可以 刷卡 吗 ？\tkeyi shuaka ma?"),
		mustSample(t, "回家 了\thuijia le"),
		mustSample(t, "不 认识 的 句子\tbu renshi de juzi"),
	}
	samples[1].Line = 2

	cfg := DefaultConfig()
	cfg.Concurrency = 2
	r, err := EvaluateSamples(context.Background(), goodConverter, samples, cfg)
	if err != nil {
		t.Fatalf("EvaluateSamples() error = %v", err)
	}

	if r.Sentences != 3 || r.Failed != 1 {
		t.Errorf("Sentences = %d, Failed = %d; want 3, 1", r.Sentences, r.Failed)
	}
	// 3 + 0 true positives; 1 false positive; 1 + 3 false negatives
	if r.Boundary.TruePositives != 3 || r.Boundary.FalsePositives != 1 || r.Boundary.FalseNegatives != 4 {
		t.Errorf("Boundary = %+v", r.Boundary)
	}
	if r.PinyinChecked != 3 || r.PinyinCorrect != 1 {
		t.Errorf("pinyin checked=%d correct=%d; want 3, 1", r.PinyinChecked, r.PinyinCorrect)
	}
	if len(r.Mismatches) != 1 || r.Mismatches[0].Line != 2 || r.Mismatches[0].Got != "hui jiale" {
		t.Errorf("Mismatches = %+v", r.Mismatches)
	}
}

func TestEvaluateSamples_Cancelled(t *testing.T) {
	samples := []Sample{mustSample(t, "可以 刷卡")}
	conv := stubConverter{err: context.Canceled}

	_, err := EvaluateSamples(context.Background(), conv, samples, DefaultConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEvaluateSamples_MaxMismatches(t *testing.T) {
	var samples []Sample
	for i := 0; i < 5; i++ {
		s := mustSample(t, "回家 了\thuijia le")
		s.Line = i + 1
		samples = append(samples, s)
	}

	cfg := DefaultConfig()
	cfg.MaxMismatches = 2
	r, err := EvaluateSamples(context.Background(), goodConverter, samples, cfg)
	if err != nil {
		t.Fatalf("EvaluateSamples() error = %v", err)
	}
	if len(r.Mismatches) != 2 || r.Mismatches[0].Line != 1 || r.Mismatches[1].Line != 2 {
		t.Errorf("Mismatches = %+v", r.Mismatches)
	}
}

func TestCompare(t *testing.T) {
	samples := []Sample{mustSample(t, "可以 刷卡 吗 ？")}

	// Splits every sentence into single characters.
	chars := stubConverter{aligned: map[string][]align.Aligned{
		"可以刷卡吗？": {{Surface: "可"}, {Surface: "以"}, {Surface: "刷"}, {Surface: "卡"}, {Surface: "吗"}, {Surface: "？"}},
	}}

	results, err := Compare(context.Background(), []Candidate{
		{Name: "chars", Converter: chars},
		{Name: "words", Converter: goodConverter},
	}, samples, DefaultConfig())
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "words" {
		t.Errorf("best = %q, want %q", results[0].Name, "words")
	}
	if results[0].Report.Boundary.WeightedScore < results[1].Report.Boundary.WeightedScore {
		t.Error("results not sorted by weighted score")
	}
}
