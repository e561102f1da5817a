package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	wordpinyin "github.com/jamesainslie/go-wordpinyin"
	"github.com/jamesainslie/go-wordpinyin/internal/setup"
)

func newBatchCmd() *cobra.Command {
	var in string
	var out string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Convert a file line by line (stdin to stdout by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			style, err := wordpinyin.ParseStyle(cfg.Pinyin.Style)
			if err != nil {
				return err
			}

			r := cmd.InOrStdin()
			if in != "" && in != "-" {
				f, err := os.Open(in)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			lines, err := readLines(r)
			if err != nil {
				return err
			}

			conv, err := setup.NewConverter(cfg, slog.Default())
			if err != nil {
				return err
			}
			defer func() { _ = conv.Close() }()

			results, err := conv.TokenizedPinyinBatch(cmd.Context(), lines, style)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			bw := bufio.NewWriter(w)
			for _, groups := range results {
				if _, err := fmt.Fprintln(bw, wordpinyin.JoinTokenizedPinyin(groups)); err != nil {
					return err
				}
			}
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			slog.Info("batch converted", "lines", len(lines))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "input", "i", "", "Input file, one text per line (default stdin)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (default stdout)")

	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}
