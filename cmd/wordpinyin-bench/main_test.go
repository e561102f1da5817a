package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRun_Unigram(t *testing.T) {
	dir := t.TempDir()
	corpus := filepath.Join(dir, "corpus")
	if err := os.Mkdir(corpus, 0o755); err != nil {
		t.Fatal(err)
	}
	gold := "# Source: test\n可以 刷卡 吗 ？\tkeyi shuaka ma?\n你好\tnihao\n"
	if err := os.WriteFile(filepath.Join(corpus, "gold.txt"), []byte(gold), 0o644); err != nil {
		t.Fatal(err)
	}
	dict := filepath.Join(dir, "dict.txt")
	if err := os.WriteFile(dict, []byte("可以 100\n刷卡 50\n吗 80\n你好 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := run([]string{
		"--corpus", corpus,
		"--backends", "unigram",
		"--segmenter-dict-path", dict,
		"--log-level", "error",
	}, &out)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Loaded 2 sentences") {
		t.Errorf("missing corpus summary in %q", got)
	}
	if !strings.Contains(got, "unigram    1.000    1.000    1.000") {
		t.Errorf("expected perfect unigram scores in %q", got)
	}
}

func TestRun_MissingCorpus(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"--corpus", "/nonexistent/corpus", "--log-level", "error"}, &out); err == nil {
		t.Error("expected error for missing corpus")
	}
}

func TestRun_InvalidBackend(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	err := run([]string{"--corpus", dir, "--backends", "spacy", "--log-level", "error"}, &out)
	if err == nil {
		t.Error("expected error for invalid backend")
	}
}
