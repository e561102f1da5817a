package tagger

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"testing"
)

const testVocab = "[PAD]\n[UNK]\n[CLS]\n[SEP]\n我\n可\n以\n刷\n卡\nx\n1\n"

func newTestVocab(t *testing.T) *Vocab {
	t.Helper()
	v, err := ParseVocab(strings.NewReader(testVocab))
	if err != nil {
		t.Fatalf("ParseVocab failed: %v", err)
	}
	return v
}

func TestParseVocab(t *testing.T) {
	v := newTestVocab(t)
	if v.Size() != 11 {
		t.Errorf("expected 11 tokens, got %d", v.Size())
	}
	if got := v.ID('刷'); got != 7 {
		t.Errorf("ID(刷) = %d, want 7", got)
	}
	if got := v.ID('X'); got != 9 {
		t.Errorf("ID(X) = %d, want lower-case id 9", got)
	}
	if got := v.ID('好'); got != 1 {
		t.Errorf("ID(好) = %d, want [UNK] id 1", got)
	}
}

func TestParseVocab_MissingUnknown(t *testing.T) {
	_, err := ParseVocab(strings.NewReader("[CLS]\n[SEP]\n我\n"))
	if !errors.Is(err, ErrVocabulary) {
		t.Errorf("expected ErrVocabulary, got %v", err)
	}
}

func TestLoadVocab_FileNotFound(t *testing.T) {
	_, err := LoadVocab("../testdata/nonexistent.txt")
	if !errors.Is(err, ErrVocabulary) {
		t.Errorf("expected ErrVocabulary, got %v", err)
	}
}

func TestVocab_Encode(t *testing.T) {
	v := newTestVocab(t)
	ids, mask := v.Encode([]rune("我刷"))
	if want := []int64{2, 4, 7, 3}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
	if want := []int64{1, 1, 1, 1}; !reflect.DeepEqual(mask, want) {
		t.Errorf("mask = %v, want %v", mask, want)
	}

	plain, err := ParseVocab(strings.NewReader("[UNK]\n我\n"))
	if err != nil {
		t.Fatal(err)
	}
	ids, _ = plain.Encode([]rune("我你"))
	if want := []int64{1, 0}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids without [CLS] = %v, want %v", ids, want)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		labels []int
		want   []string
	}{
		{"words", "我可以刷卡", []int{labelS, labelB, labelE, labelB, labelE}, []string{"我", "可以", "刷卡"}},
		{"middle", "讨价还价", []int{labelB, labelM, labelM, labelE}, []string{"讨价还价"}},
		{"missing end", "我可以", []int{labelS, labelB, labelM}, []string{"我", "可以"}},
		{"stray middle", "我可", []int{labelM, labelM}, []string{"我可"}},
		{"short labels", "我可", []int{labelB}, []string{"我", "可"}},
		{"empty", "", nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decode([]rune(tc.text), tc.labels)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("decode = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestChunkSpans(t *testing.T) {
	tests := []struct {
		n, size, overlap int
		want             [][2]int
	}{
		{0, 10, 2, nil},
		{5, 10, 2, [][2]int{{0, 5}}},
		{10, 10, 2, [][2]int{{0, 10}}},
		{20, 10, 2, [][2]int{{0, 10}, {8, 18}, {16, 20}}},
	}

	for _, tc := range tests {
		got := chunkSpans(tc.n, tc.size, tc.overlap)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("chunkSpans(%d, %d, %d) = %v, want %v", tc.n, tc.size, tc.overlap, got, tc.want)
		}
	}
}

// fakeInfer labels 刷 and 卡 as one word and everything else as single
// characters; special positions get zero logits.
func fakeInfer(v *Vocab) inferFunc {
	return func(ctx context.Context, ids, mask []int64) ([][]float32, error) {
		out := make([][]float32, len(ids))
		for i, id := range ids {
			row := make([]float32, numLabels)
			switch id {
			case v.ID('刷'):
				row[labelB] = 5
			case v.ID('卡'):
				row[labelE] = 5
			case v.cls, v.sep:
			default:
				row[labelS] = 5
			}
			out[i] = row
		}
		return out, nil
	}
}

func TestTagger_Tag(t *testing.T) {
	v := newTestVocab(t)
	tg := &Tagger{vocab: v, maxSeqLen: defaultMaxSeqLen, logger: slog.Default()}

	runes := []rune("我刷卡")
	labels, err := tg.tag(context.Background(), runes, fakeInfer(v))
	if err != nil {
		t.Fatalf("tag failed: %v", err)
	}
	if want := []int{labelS, labelB, labelE}; !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}
	if got := decode(runes, labels); !reflect.DeepEqual(got, []string{"我", "刷卡"}) {
		t.Errorf("decode = %q", got)
	}
}

func TestTagger_Tag_Chunked(t *testing.T) {
	v := newTestVocab(t)
	// 70 content positions per chunk with [CLS] and [SEP]
	tg := &Tagger{vocab: v, maxSeqLen: 72, logger: slog.Default()}

	text := strings.Repeat("我刷卡", 50)
	runes := []rune(text)
	calls := 0
	infer := func(ctx context.Context, ids, mask []int64) ([][]float32, error) {
		calls++
		if len(ids) > 72 {
			t.Errorf("chunk of %d positions exceeds limit", len(ids))
		}
		return fakeInfer(v)(ctx, ids, mask)
	}

	labels, err := tg.tag(context.Background(), runes, infer)
	if err != nil {
		t.Fatalf("tag failed: %v", err)
	}
	if calls < 2 {
		t.Errorf("expected several chunks, got %d", calls)
	}
	words := decode(runes, labels)
	if len(words) != 100 || strings.Join(words, "") != text {
		t.Errorf("unexpected segmentation of %d words", len(words))
	}
}

func TestTagger_Tag_ShapeMismatch(t *testing.T) {
	v := newTestVocab(t)
	tg := &Tagger{vocab: v, maxSeqLen: defaultMaxSeqLen, logger: slog.Default()}

	infer := func(ctx context.Context, ids, mask []int64) ([][]float32, error) {
		return [][]float32{{1, 0, 0, 0}}, nil
	}
	if _, err := tg.tag(context.Background(), []rune("我刷卡"), infer); err == nil {
		t.Error("expected error for short model output")
	}
}

func TestTagger_Tag_InferError(t *testing.T) {
	v := newTestVocab(t)
	tg := &Tagger{vocab: v, maxSeqLen: defaultMaxSeqLen, logger: slog.Default()}

	infer := func(ctx context.Context, ids, mask []int64) ([][]float32, error) {
		return nil, context.Canceled
	}
	if _, err := tg.tag(context.Background(), []rune("我"), infer); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNew_ModelNotFound(t *testing.T) {
	_, err := New("../testdata/nonexistent.onnx", "../testdata/nonexistent.txt")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestTagger_Tokenize_Model(t *testing.T) {
	const modelPath = "../testdata/bmes_tagger.onnx"
	const vocabPath = "../testdata/bmes_vocab.txt"
	if _, err := os.Stat(modelPath); err != nil {
		t.Skipf("Skipping: model not available at %s", modelPath)
	}

	tg, err := New(modelPath, vocabPath, WithPoolSize(1))
	if err != nil {
		t.Skipf("Skipping: tagger unavailable: %v", err)
	}
	defer func() { _ = tg.Close() }()

	text := "我可以刷卡吗"
	words, err := tg.Tokenize(context.Background(), text)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if strings.Join(words, "") != text {
		t.Errorf("tokens %q do not concatenate to input", words)
	}
}
