package tagger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// ErrVocabulary indicates a missing or malformed vocabulary file.
var ErrVocabulary = errors.New("tagger: invalid vocabulary")

// Special tokens looked up in BERT-style vocabularies.
const (
	unkToken = "[UNK]"
	clsToken = "[CLS]"
	sepToken = "[SEP]"
)

// Vocab maps characters to model input ids. The id of a token is its line
// index in the vocabulary file.
type Vocab struct {
	ids    map[string]int64
	unk    int64
	cls    int64
	sep    int64
	hasCLS bool
}

// LoadVocab reads a vocabulary file with one token per line.
func LoadVocab(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVocabulary, err)
	}
	defer func() { _ = f.Close() }()
	return ParseVocab(f)
}

// ParseVocab reads a vocabulary from r. The [UNK] token is required; [CLS]
// and [SEP] wrap each sequence when both are present.
func ParseVocab(r io.Reader) (*Vocab, error) {
	v := &Vocab{ids: make(map[string]int64)}

	scanner := bufio.NewScanner(r)
	var id int64
	for scanner.Scan() {
		token := strings.TrimRight(scanner.Text(), "\r")
		if _, dup := v.ids[token]; !dup && token != "" {
			v.ids[token] = id
		}
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVocabulary, err)
	}

	unk, ok := v.ids[unkToken]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s token", ErrVocabulary, unkToken)
	}
	v.unk = unk

	cls, okCLS := v.ids[clsToken]
	sep, okSEP := v.ids[sepToken]
	if okCLS && okSEP {
		v.cls, v.sep, v.hasCLS = cls, sep, true
	}
	return v, nil
}

// Size returns the number of distinct tokens.
func (v *Vocab) Size() int {
	return len(v.ids)
}

// ID returns the id of a single character, trying its lower-case form
// before falling back to [UNK].
func (v *Vocab) ID(r rune) int64 {
	if id, ok := v.ids[string(r)]; ok {
		return id
	}
	if lower := unicode.ToLower(r); lower != r {
		if id, ok := v.ids[string(lower)]; ok {
			return id
		}
	}
	return v.unk
}

// Encode returns input ids and the attention mask for runes, wrapped in
// [CLS] and [SEP] when the vocabulary has them.
func (v *Vocab) Encode(runes []rune) (ids, mask []int64) {
	n := len(runes)
	if v.hasCLS {
		n += 2
	}
	ids = make([]int64, 0, n)
	if v.hasCLS {
		ids = append(ids, v.cls)
	}
	for _, r := range runes {
		ids = append(ids, v.ID(r))
	}
	if v.hasCLS {
		ids = append(ids, v.sep)
	}

	mask = make([]int64, len(ids))
	for i := range mask {
		mask[i] = 1
	}
	return ids, mask
}

// special reports how many positions Encode adds around the content.
func (v *Vocab) special() int {
	if v.hasCLS {
		return 2
	}
	return 0
}
