// Package setup builds converters from loaded configuration.
package setup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	wordpinyin "github.com/jamesainslie/go-wordpinyin"
	"github.com/jamesainslie/go-wordpinyin/inference"
	"github.com/jamesainslie/go-wordpinyin/internal/config"
	"github.com/jamesainslie/go-wordpinyin/resolver"
	"github.com/jamesainslie/go-wordpinyin/tagger"
	"github.com/jamesainslie/go-wordpinyin/tokenizer"
)

// NewConverter builds a Converter from the loaded configuration.
func NewConverter(cfg config.Config, logger *slog.Logger) (*wordpinyin.Converter, error) {
	tok, err := NewTokenizer(cfg.Segmenter, logger)
	if err != nil {
		return nil, err
	}

	res, err := NewResolver(cfg.Resolver)
	if err != nil {
		return nil, closeOnError(tok, err)
	}

	conv, err := wordpinyin.New(
		wordpinyin.WithTokenizer(tok),
		wordpinyin.WithResolver(res),
		wordpinyin.WithStrictAlignment(cfg.Pinyin.Strict),
		wordpinyin.WithWidthFolding(cfg.Pinyin.FoldWidth),
		wordpinyin.WithConcurrency(cfg.Batch.Concurrency),
		wordpinyin.WithLogger(logger),
	)
	if err != nil {
		return nil, closeOnError(tok, err)
	}
	return conv, nil
}

// closeOnError closes tok if it holds resources and joins any close error
// onto err.
func closeOnError(tok wordpinyin.Tokenizer, err error) error {
	if c, ok := tok.(io.Closer); ok {
		if cerr := c.Close(); cerr != nil {
			return errors.Join(err, fmt.Errorf("closing tokenizer: %w", cerr))
		}
	}
	return err
}

func NewTokenizer(sc config.SegmenterConfig, logger *slog.Logger) (wordpinyin.Tokenizer, error) {
	backend, err := config.NormalizeBackend(sc.Backend)
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendUnigram:
		if sc.DictPath == "" {
			return nil, fmt.Errorf("%w: backend %s needs --segmenter-dict-path",
				wordpinyin.ErrInvalidConfiguration, backend)
		}
		tok, err := tokenizer.New(sc.DictPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", wordpinyin.ErrTokenizerFailed, err)
		}
		return tok, nil

	case config.BackendONNX:
		if sc.ORTLibraryPath != "" {
			inference.SetLibraryPath(sc.ORTLibraryPath)
		}
		session := inference.DefaultSessionConfig()
		session.Threads = sc.Threads
		tok, err := tagger.New(sc.ModelPath, sc.VocabPath,
			tagger.WithPoolSize(sc.PoolSize),
			tagger.WithSessionConfig(session),
			tagger.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", wordpinyin.ErrTokenizerFailed, err)
		}
		return tok, nil

	default:
		return tokenizer.NewGSE(
			tokenizer.WithHMM(sc.HMM),
			tokenizer.WithUserDict(sc.DictPath),
			tokenizer.WithGSELogger(logger),
		), nil
	}
}

func NewResolver(rc config.ResolverConfig) (*resolver.Resolver, error) {
	var opts []resolver.Option
	if rc.DisableDefaults {
		opts = append(opts, resolver.WithoutDefaultPhrases())
	}
	if rc.PhrasePath != "" {
		opts = append(opts, resolver.WithPhraseFile(rc.PhrasePath))
	}
	res, err := resolver.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wordpinyin.ErrInvalidConfiguration, err)
	}
	return res, nil
}
