package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-wordpinyin/internal/dictpb"
	"github.com/jamesainslie/go-wordpinyin/resolver"
	"github.com/jamesainslie/go-wordpinyin/tokenizer"
)

func newDictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dict",
		Short: "Dictionary utilities",
	}
	cmd.AddCommand(newDictCompileCmd())
	return cmd
}

func newDictCompileCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "compile INPUT OUTPUT",
		Short: "Compile a text word or phrase dictionary into binary form",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loadDictEntries(kind, args[0])
			if err != nil {
				return err
			}
			if err := dictpb.WriteFile(args[1], entries); err != nil {
				return err
			}
			slog.Info("compiled dictionary", "kind", kind, "entries", len(entries), "output", args[1])
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d entries written to %s\n", len(entries), args[1])
			return err
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "words", "Dictionary kind: words|phrases")

	return cmd
}

func loadDictEntries(kind, path string) ([]dictpb.Entry, error) {
	switch kind {
	case "words":
		model, err := tokenizer.LoadModel(path)
		if err != nil {
			return nil, err
		}
		return model.Entries(), nil
	case "phrases":
		table, err := resolver.ReadPhraseFile(path)
		if err != nil {
			return nil, err
		}
		return resolver.PhraseEntries(table), nil
	default:
		return nil, fmt.Errorf("invalid dictionary kind %q (expected words|phrases)", kind)
	}
}
