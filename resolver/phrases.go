package resolver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jamesainslie/go-wordpinyin/internal/dictpb"
	"github.com/jamesainslie/go-wordpinyin/textnorm"
)

// ErrPhraseMismatch indicates a phrase whose syllable count differs from its
// character count, or a phrase containing non-Han characters.
var ErrPhraseMismatch = errors.New("resolver: phrase does not match its syllables")

// ParsePhrases reads a phrase table: one phrase per line followed by its
// numeric-tone syllables, whitespace separated. Blank lines and lines
// starting with # are ignored.
//
//	还价 huan2 jia4
func ParsePhrases(r io.Reader) (map[string][]string, error) {
	table := make(map[string][]string)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		phrase, syllables := fields[0], fields[1:]
		if err := validatePhrase(phrase, syllables); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		table[phrase] = syllables
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan phrases: %w", err)
	}
	return table, nil
}

// ReadPhraseFile loads a phrase table from path. Files ending in .pb or .bin
// are read as binary dictionaries; entries without syllables are skipped.
func ReadPhraseFile(path string) (map[string][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pb", ".bin":
		entries, err := dictpb.ReadFile(path)
		if err != nil {
			return nil, err
		}
		table := make(map[string][]string, len(entries))
		for _, e := range entries {
			if len(e.Syllables) == 0 {
				continue
			}
			if err := validatePhrase(e.Text, e.Syllables); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			table[e.Text] = e.Syllables
		}
		return table, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening phrase file: %w", err)
	}
	defer func() { _ = f.Close() }()

	table, err := ParsePhrases(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// PhraseEntries converts a phrase table into dictionary entries sorted by
// phrase.
func PhraseEntries(table map[string][]string) []dictpb.Entry {
	entries := make([]dictpb.Entry, 0, len(table))
	for phrase, syllables := range table {
		entries = append(entries, dictpb.Entry{Text: phrase, Syllables: syllables})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Text < entries[j].Text })
	return entries
}

func validatePhrases(table map[string][]string) error {
	for phrase, syllables := range table {
		if err := validatePhrase(phrase, syllables); err != nil {
			return err
		}
	}
	return nil
}

func validatePhrase(phrase string, syllables []string) error {
	if n := utf8.RuneCountInString(phrase); n != len(syllables) {
		return fmt.Errorf("%w: %q has %d characters and %d syllables", ErrPhraseMismatch, phrase, n, len(syllables))
	}
	for _, r := range phrase {
		if !textnorm.IsHan(r) {
			return fmt.Errorf("%w: %q contains %q", ErrPhraseMismatch, phrase, r)
		}
	}
	return nil
}
