package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/jamesainslie/go-wordpinyin/internal/bench"
	"github.com/jamesainslie/go-wordpinyin/internal/config"
	"github.com/jamesainslie/go-wordpinyin/internal/setup"
)

// flagSet adapts a pflag.FlagSet to config.LoadOptions.Cmd.
type flagSet struct{ fs *pflag.FlagSet }

func (f flagSet) Flags() *pflag.FlagSet { return f.fs }

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	defaults := config.DefaultConfig()
	fs := pflag.NewFlagSet("wordpinyin-bench", pflag.ContinueOnError)

	var (
		corpusDir  = fs.String("corpus", "testdata/gsd", "Directory containing gold corpus files")
		backends   = fs.String("backends", "", "Comma-separated segmenter backends to compare (default: configured backend)")
		tolerance  = fs.Int("tolerance", 0, "Character tolerance for boundary matching")
		wp         = fs.Float64("wp", 1.0, "Precision weight")
		wr         = fs.Float64("wr", 1.0, "Recall weight")
		mismatches = fs.Int("mismatches", 10, "Pinyin mismatches to print per backend")
		cfgFile    = fs.String("config", "", "Optional config file (yaml|toml|json)")
	)
	config.RegisterFlags(fs, defaults)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(config.LoadOptions{
		Cmd:        flagSet{fs},
		ConfigFile: *cfgFile,
		Defaults:   defaults,
	})
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	corpora, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	samples := bench.Samples(corpora)
	fmt.Fprintf(out, "Loaded %d sentences (%d characters) from %d files in %s\n\n",
		len(samples), bench.Chars(samples), len(corpora), *corpusDir)

	names := []string{cfg.Segmenter.Backend}
	if *backends != "" {
		names = strings.Split(*backends, ",")
	}

	var candidates []bench.Candidate
	for _, name := range names {
		bc := cfg
		bc.Segmenter.Backend = strings.TrimSpace(name)
		conv, err := setup.NewConverter(bc, logger)
		if err != nil {
			return fmt.Errorf("backend %s: %w", name, err)
		}
		defer func() { _ = conv.Close() }()
		candidates = append(candidates, bench.Candidate{Name: bc.Segmenter.Backend, Converter: conv})
	}

	bcfg := bench.Config{
		Tolerance:       *tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
		Concurrency:     cfg.Batch.Concurrency,
		MaxMismatches:   *mismatches,
	}

	results, err := bench.Compare(context.Background(), candidates, samples, bcfg)
	if err != nil {
		return err
	}

	printResults(out, results, bcfg)
	return nil
}

func printResults(out io.Writer, results []bench.CompareResult, cfg bench.Config) {
	fmt.Fprintf(out, "Segmenter Comparison (wp=%.1f, wr=%.1f, tolerance=%d)\n", cfg.PrecisionWeight, cfg.RecallWeight, cfg.Tolerance)
	fmt.Fprintln(out, strings.Repeat("-", 72))
	fmt.Fprintf(out, "%-10s %-8s %-8s %-8s %-8s %-8s %-8s %s\n", "Backend", "Prec", "Rec", "F1", "Weighted", "Pinyin", "Failed", "Time")

	for _, r := range results {
		b := r.Report.Boundary
		fmt.Fprintf(out, "%-10s %-8.3f %-8.3f %-8.3f %-8.3f %-8.3f %-8d %s\n",
			r.Name, b.Precision, b.Recall, b.F1, b.WeightedScore, r.Report.PinyinAccuracy, r.Report.Failed, r.Duration.Round(1e6))
	}
	fmt.Fprintln(out, strings.Repeat("-", 72))

	for _, r := range results {
		if len(r.Report.Mismatches) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s pinyin mismatches (%d of %d checked correct):\n", r.Name, r.Report.PinyinCorrect, r.Report.PinyinChecked)
		for _, m := range r.Report.Mismatches {
			fmt.Fprintf(out, "  line %d: %s\n    want: %s\n    got:  %s\n", m.Line, m.Text, m.Want, m.Got)
		}
	}
}
