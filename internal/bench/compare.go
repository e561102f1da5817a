package bench

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Candidate is a named converter configuration under comparison.
type Candidate struct {
	Name      string
	Converter Converter
}

// CompareResult holds the report for one candidate.
type CompareResult struct {
	Name     string
	Report   Report
	Duration time.Duration
}

// Compare evaluates every candidate on the same samples and returns results
// sorted by boundary weighted score, best first.
func Compare(ctx context.Context, candidates []Candidate, samples []Sample, cfg Config) ([]CompareResult, error) {
	results := make([]CompareResult, 0, len(candidates))

	for _, c := range candidates {
		start := time.Now()
		report, err := EvaluateSamples(ctx, c.Converter, samples, cfg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Name, err)
		}
		results = append(results, CompareResult{
			Name:     c.Name,
			Report:   report,
			Duration: time.Since(start),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Report.Boundary.WeightedScore > results[j].Report.Boundary.WeightedScore
	})

	return results, nil
}
