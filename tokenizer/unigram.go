package tokenizer

const negInf = -1e18

// Cut segments text, returning tokens in input order.
func (t *Unigram) Cut(text string) []string {
	if text == "" {
		return nil
	}

	var tokens []string
	for _, s := range splitSpans(text) {
		if !s.han {
			tokens = append(tokens, s.text)
			continue
		}
		tokens = append(tokens, t.viterbi(s.text)...)
	}
	return tokens
}

// viterbi finds the best segmentation of a run of Han characters.
func (t *Unigram) viterbi(text string) []string {
	runes := []rune(text)
	n := len(runes)

	// best[i] = best log probability to segment runes[0:i]
	best := make([]float64, n+1)
	// parent[i] = start position of the word ending at position i
	parent := make([]int, n+1)

	for i := 1; i <= n; i++ {
		best[i] = negInf
		parent[i] = -1
	}

	// Dynamic programming: find best segmentation
	for i := 1; i <= n; i++ {
		// Try all dictionary words ending at position i
		maxLen := t.maxWordLen
		if maxLen > i {
			maxLen = i
		}

		for length := 1; length <= maxLen; length++ {
			j := i - length
			score, exists := t.scores[string(runes[j:i])]
			if !exists {
				continue
			}

			candidate := best[j] + score
			if candidate > best[i] {
				best[i] = candidate
				parent[i] = j
			}
		}

		// Unknown single character keeps the path connected
		if candidate := best[i-1] + t.unkScore; parent[i] < 0 || candidate > best[i] {
			best[i] = candidate
			parent[i] = i - 1
		}
	}

	// Backtrack to get words
	var words []string
	for pos := n; pos > 0; pos = parent[pos] {
		words = append(words, string(runes[parent[pos]:pos]))
	}

	// Reverse to get correct order
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}

	return words
}
