package setup

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	wordpinyin "github.com/jamesainslie/go-wordpinyin"
	"github.com/jamesainslie/go-wordpinyin/internal/config"
	"github.com/jamesainslie/go-wordpinyin/tokenizer"
)

func TestNewTokenizer(t *testing.T) {
	dict := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(dict, []byte("可以 100\n刷卡 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		sc      config.SegmenterConfig
		wantErr error
		check   func(t *testing.T, tok wordpinyin.Tokenizer)
	}{
		{
			name: "gse default",
			sc:   config.SegmenterConfig{},
			check: func(t *testing.T, tok wordpinyin.Tokenizer) {
				if _, ok := tok.(*tokenizer.GSE); !ok {
					t.Errorf("got %T, want *tokenizer.GSE", tok)
				}
			},
		},
		{
			name: "unigram",
			sc:   config.SegmenterConfig{Backend: "unigram", DictPath: dict},
			check: func(t *testing.T, tok wordpinyin.Tokenizer) {
				got, err := tok.Tokenize(context.Background(), "可以刷卡")
				if err != nil {
					t.Fatal(err)
				}
				if want := []string{"可以", "刷卡"}; !reflect.DeepEqual(got, want) {
					t.Errorf("Tokenize = %q, want %q", got, want)
				}
			},
		},
		{
			name:    "unigram without dictionary",
			sc:      config.SegmenterConfig{Backend: "unigram"},
			wantErr: wordpinyin.ErrInvalidConfiguration,
		},
		{
			name:    "unigram missing dictionary",
			sc:      config.SegmenterConfig{Backend: "unigram", DictPath: "/nonexistent/dict.txt"},
			wantErr: wordpinyin.ErrTokenizerFailed,
		},
		{
			name:    "onnx missing model",
			sc:      config.SegmenterConfig{Backend: "onnx", ModelPath: "/nonexistent/model.onnx"},
			wantErr: wordpinyin.ErrTokenizerFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := NewTokenizer(tt.sc, slog.Default())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTokenizer failed: %v", err)
			}
			tt.check(t, tok)
		})
	}
}

func TestNewTokenizer_InvalidBackend(t *testing.T) {
	if _, err := NewTokenizer(config.SegmenterConfig{Backend: "spacy"}, slog.Default()); err == nil {
		t.Error("expected error for invalid backend")
	}
}

func TestNewResolver(t *testing.T) {
	res, err := NewResolver(config.ResolverConfig{})
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	if res.Phrases() == 0 {
		t.Error("expected built-in phrases")
	}

	res, err = NewResolver(config.ResolverConfig{DisableDefaults: true})
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}
	if res.Phrases() != 0 {
		t.Errorf("expected no phrases, got %d", res.Phrases())
	}

	_, err = NewResolver(config.ResolverConfig{PhrasePath: "/nonexistent/phrases.txt"})
	if !errors.Is(err, wordpinyin.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

// closingTokenizer records whether it was closed.
type closingTokenizer struct {
	closed bool
	err    error
}

func (c *closingTokenizer) Tokenize(context.Context, string) ([]string, error) { return nil, nil }

func (c *closingTokenizer) Close() error {
	c.closed = true
	return c.err
}

func TestCloseOnError(t *testing.T) {
	cause := errors.New("resolver failed")

	tok := &closingTokenizer{}
	if err := closeOnError(tok, cause); !errors.Is(err, cause) {
		t.Errorf("expected %v, got %v", cause, err)
	}
	if !tok.closed {
		t.Error("tokenizer was not closed")
	}

	closeErr := errors.New("close failed")
	tok = &closingTokenizer{err: closeErr}
	err := closeOnError(tok, cause)
	if !errors.Is(err, cause) || !errors.Is(err, closeErr) {
		t.Errorf("expected both errors, got %v", err)
	}
}

func TestNewConverter_ResolverError(t *testing.T) {
	dict := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(dict, []byte("可以 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Segmenter.Backend = config.BackendUnigram
	cfg.Segmenter.DictPath = dict
	cfg.Resolver.PhrasePath = "/nonexistent/phrases.txt"

	conv, err := NewConverter(cfg, slog.Default())
	if !errors.Is(err, wordpinyin.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
	if conv != nil {
		t.Error("expected nil converter")
	}
}

func TestNewConverter(t *testing.T) {
	dict := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(dict, []byte("可以 100\n刷卡 50\n吗 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Segmenter.Backend = config.BackendUnigram
	cfg.Segmenter.DictPath = dict

	conv, err := NewConverter(cfg, slog.Default())
	if err != nil {
		t.Fatalf("NewConverter failed: %v", err)
	}
	defer func() { _ = conv.Close() }()

	groups, err := conv.TokenizedPinyin(context.Background(), "可以刷卡吗？", wordpinyin.StylePlain)
	if err != nil {
		t.Fatalf("TokenizedPinyin failed: %v", err)
	}
	if got := wordpinyin.JoinTokenizedPinyin(groups); got != "keyi shuaka ma?" {
		t.Errorf("got %q", got)
	}
}
