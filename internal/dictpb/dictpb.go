// Package dictpb reads and writes word/phrase dictionaries in protobuf wire
// format:
//
//	message Dictionary { repeated Entry entries = 1; }
//	message Entry {
//	  string text = 1;
//	  double freq = 2;
//	  string pos = 3;
//	  repeated string syllables = 4;
//	}
package dictpb

import (
	"errors"
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrMalformed indicates data that does not decode as a Dictionary.
var ErrMalformed = errors.New("dictpb: malformed dictionary")

const (
	fieldEntries protowire.Number = 1

	fieldText      protowire.Number = 1
	fieldFreq      protowire.Number = 2
	fieldPOS       protowire.Number = 3
	fieldSyllables protowire.Number = 4
)

// Entry is one dictionary word or phrase.
type Entry struct {
	Text      string
	Freq      float64
	POS       string
	Syllables []string
}

// Marshal encodes entries as a Dictionary message.
func Marshal(entries []Entry) []byte {
	var b []byte
	for _, e := range entries {
		b = protowire.AppendTag(b, fieldEntries, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalEntry(e))
	}
	return b
}

func marshalEntry(e Entry) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldText, protowire.BytesType)
	b = protowire.AppendString(b, e.Text)
	if e.Freq != 0 {
		b = protowire.AppendTag(b, fieldFreq, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(e.Freq))
	}
	if e.POS != "" {
		b = protowire.AppendTag(b, fieldPOS, protowire.BytesType)
		b = protowire.AppendString(b, e.POS)
	}
	for _, s := range e.Syllables {
		b = protowire.AppendTag(b, fieldSyllables, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

// Unmarshal decodes a Dictionary message. Unknown fields are skipped.
func Unmarshal(b []byte) ([]Entry, error) {
	var entries []Entry
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		if num == fieldEntries && typ == protowire.BytesType {
			raw, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(m))
			}
			e, err := unmarshalEntry(raw)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", len(entries), err)
			}
			entries = append(entries, e)
			b = b[m:]
			continue
		}

		m := protowire.ConsumeFieldValue(num, typ, b)
		if m < 0 {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(m))
		}
		b = b[m:]
	}
	return entries, nil
}

func unmarshalEntry(b []byte) (Entry, error) {
	var e Entry
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Entry{}, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		var m int
		switch {
		case num == fieldText && typ == protowire.BytesType:
			var v []byte
			v, m = protowire.ConsumeBytes(b)
			e.Text = string(v)
		case num == fieldFreq && typ == protowire.Fixed64Type:
			var v uint64
			v, m = protowire.ConsumeFixed64(b)
			e.Freq = math.Float64frombits(v)
		case num == fieldPOS && typ == protowire.BytesType:
			var v []byte
			v, m = protowire.ConsumeBytes(b)
			e.POS = string(v)
		case num == fieldSyllables && typ == protowire.BytesType:
			var v []byte
			v, m = protowire.ConsumeBytes(b)
			e.Syllables = append(e.Syllables, string(v))
		default:
			m = protowire.ConsumeFieldValue(num, typ, b)
		}
		if m < 0 {
			return Entry{}, fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(m))
		}
		b = b[m:]
	}
	if e.Text == "" {
		return Entry{}, fmt.Errorf("%w: entry without text", ErrMalformed)
	}
	return e, nil
}

// ReadFile loads a binary dictionary from path.
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dictionary file: %w", err)
	}
	entries, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// WriteFile stores entries at path in binary form.
func WriteFile(path string, entries []Entry) error {
	if err := os.WriteFile(path, Marshal(entries), 0o644); err != nil {
		return fmt.Errorf("writing dictionary file: %w", err)
	}
	return nil
}
