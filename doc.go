// Package wordpinyin converts Chinese text into pinyin grouped by word.
//
// # Quick Start
//
//	conv, err := wordpinyin.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	groups, err := conv.TokenizedPinyin(ctx, "可以刷卡吗？", wordpinyin.StylePlain)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(wordpinyin.JoinTokenizedPinyin(groups)) // keyi shuaka ma?
//
// # Pipeline
//
// Text is cleaned down to CJK ideographs, ASCII letters and digits, and a
// small punctuation whitelist. The cleaned text is segmented into words by a
// Tokenizer and resolved into one numeric-tone syllable per character (one
// per number run) by a Resolver. The syllables are then regrouped along the
// word boundaries and rendered in the requested Style.
//
// # Thread Safety
//
// Converter is safe for concurrent use. The default tokenizer loads its
// dictionary on first use and shares it afterwards.
package wordpinyin
