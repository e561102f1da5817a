package wordpinyin

import (
	"errors"

	"github.com/jamesainslie/go-wordpinyin/align"
)

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrInvalidConfiguration indicates an unknown style or option value.
	ErrInvalidConfiguration = errors.New("wordpinyin: invalid configuration")

	// ErrAlignment indicates that word tokens and syllables disagree in
	// strict mode. It is the same value as align.ErrAlignment.
	ErrAlignment = align.ErrAlignment

	// ErrTokenizerContract indicates tokens that do not concatenate back to
	// the cleaned text.
	ErrTokenizerContract = errors.New("wordpinyin: tokens do not reproduce input")

	// ErrTokenizerFailed indicates the tokenizer could not segment the text.
	ErrTokenizerFailed = errors.New("wordpinyin: tokenizer failed")
)
