//go:build ignore

// Process UD Chinese GSDSimp CoNLL-U files into the gold segmentation
// corpus format read by internal/bench: one sentence per line, words
// separated by spaces.
// Usage: go run ./scripts/process-ud-gsd.go
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const source = "https://github.com/UniversalDependencies/UD_Chinese-GSDSimp"

func main() {
	inDir := "testdata/ud-gsd"
	outDir := "testdata/gsd"

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", outDir, err)
		os.Exit(1)
	}

	splits := []string{"train", "dev", "test"}

	for _, split := range splits {
		inFile := filepath.Join(inDir, fmt.Sprintf("zh_gsdsimp-ud-%s.conllu", split))
		outFile := filepath.Join(outDir, fmt.Sprintf("%s.txt", split))

		fmt.Printf("Processing %s...\n", split)
		sentences, err := processCoNLLU(inFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inFile, err)
			continue
		}

		if err := writeCorpus(outFile, split, sentences); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outFile, err)
			continue
		}

		words := 0
		for _, s := range sentences {
			words += len(s)
		}
		fmt.Printf("  -> %s (%d sentences, %d words)\n", outFile, len(sentences), words)
	}

	fmt.Printf("\nDone! Corpus files created in %s/\n", outDir)
}

// processCoNLLU returns the word forms of every sentence. Multiword token
// ranges and empty nodes are skipped so that the forms concatenate to the
// sentence text.
func processCoNLLU(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var (
		sentences [][]string
		current   []string
	)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		// Blank line = end of sentence
		if strings.TrimSpace(line) == "" {
			if len(current) > 0 {
				sentences = append(sentences, current)
				current = nil
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			continue
		}
		id := cols[0]
		if strings.ContainsAny(id, "-.") {
			continue
		}
		if form := strings.TrimSpace(cols[1]); form != "" && form != "_" {
			current = append(current, form)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning file: %w", err)
	}

	// Don't forget last sentence if no trailing blank
	if len(current) > 0 {
		sentences = append(sentences, current)
	}

	return sentences, nil
}

func writeCorpus(path, split string, sentences [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# Source: %s\n", source)
	fmt.Fprintf(w, "# Title: UD Chinese GSDSimp %s\n", split)
	for _, words := range sentences {
		fmt.Fprintln(w, strings.Join(words, " "))
	}
	return w.Flush()
}
