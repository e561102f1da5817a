package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	wordpinyin "github.com/jamesainslie/go-wordpinyin"
	"github.com/jamesainslie/go-wordpinyin/internal/setup"
	"github.com/jamesainslie/go-wordpinyin/textnorm"
)

// convertResult is the JSON shape printed by convert --json.
type convertResult struct {
	Text   string        `json:"text"`
	Pinyin string        `json:"pinyin"`
	Tokens []tokenPinyin `json:"tokens"`
}

type tokenPinyin struct {
	Surface string `json:"surface"`
	Pinyin  string `json:"pinyin"`
}

func newConvertCmd() *cobra.Command {
	var asJSON bool
	var asGroups bool

	cmd := &cobra.Command{
		Use:   "convert [text...]",
		Short: "Print word-grouped pinyin for text (arguments or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			style, err := wordpinyin.ParseStyle(cfg.Pinyin.Style)
			if err != nil {
				return err
			}
			text, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			conv, err := setup.NewConverter(cfg, slog.Default())
			if err != nil {
				return err
			}
			defer func() { _ = conv.Close() }()

			aligned, err := conv.AlignedTokens(cmd.Context(), text, style)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			groups := make([]string, len(aligned))
			for i, a := range aligned {
				groups[i] = a.Pinyin
			}

			switch {
			case asJSON:
				res := convertResult{
					Text:   text,
					Pinyin: wordpinyin.JoinTokenizedPinyin(groups),
					Tokens: make([]tokenPinyin, len(aligned)),
				}
				for i, a := range aligned {
					res.Tokens[i] = tokenPinyin{Surface: a.Surface, Pinyin: a.Pinyin}
				}
				enc := json.NewEncoder(out)
				enc.SetEscapeHTML(false)
				return enc.Encode(res)
			case asGroups:
				for _, a := range aligned {
					if _, err := fmt.Fprintf(out, "%s\t%s\n", a.Surface, a.Pinyin); err != nil {
						return err
					}
				}
				return nil
			default:
				_, err = fmt.Fprintln(out, wordpinyin.JoinTokenizedPinyin(groups))
				return err
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tokens and pinyin as JSON")
	cmd.Flags().BoolVar(&asGroups, "tokens", false, "Print one token and its pinyin per line")

	return cmd
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [text...]",
		Short: "Print text reduced to Chinese characters, letters, digits and punctuation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			text, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			if cfg.Pinyin.FoldWidth {
				text = textnorm.FoldWidth(text)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), textnorm.Clean(text))
			return err
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [text...]",
		Short: "Print the numeric-tone syllable of every character",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			text, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			res, err := setup.NewResolver(cfg.Resolver)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(res.Resolve(text), " "))
			return err
		},
	}
}

// readText joins args, or reads all of r when there are none.
func readText(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\r\n")
	if text == "" {
		return "", fmt.Errorf("no text provided")
	}
	return text, nil
}
