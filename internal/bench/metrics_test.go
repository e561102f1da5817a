package bench

import (
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		predicted []int
		truth     []int
		tolerance int
		wantTP    int
		wantFP    int
		wantFN    int
	}{
		{
			name:      "perfect match",
			predicted: []int{10, 20, 30},
			truth:     []int{10, 20, 30},
			tolerance: 0,
			wantTP:    3,
			wantFP:    0,
			wantFN:    0,
		},
		{
			name:      "within tolerance",
			predicted: []int{11, 19, 31},
			truth:     []int{10, 20, 30},
			tolerance: 2,
			wantTP:    3,
			wantFP:    0,
			wantFN:    0,
		},
		{
			name:      "false positive",
			predicted: []int{10, 15, 20},
			truth:     []int{10, 20},
			tolerance: 0,
			wantTP:    2,
			wantFP:    1,
			wantFN:    0,
		},
		{
			name:      "false negative",
			predicted: []int{10},
			truth:     []int{10, 20},
			tolerance: 0,
			wantTP:    1,
			wantFP:    0,
			wantFN:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Tolerance: tt.tolerance}
			got := Evaluate(tt.predicted, tt.truth, cfg)

			if got.TruePositives != tt.wantTP {
				t.Errorf("TruePositives = %d, want %d", got.TruePositives, tt.wantTP)
			}
			if got.FalsePositives != tt.wantFP {
				t.Errorf("FalsePositives = %d, want %d", got.FalsePositives, tt.wantFP)
			}
			if got.FalseNegatives != tt.wantFN {
				t.Errorf("FalseNegatives = %d, want %d", got.FalseNegatives, tt.wantFN)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	cfg := Config{PrecisionWeight: 1, RecallWeight: 3}
	m := Aggregate(3, 1, 3, cfg)

	if m.Precision != 0.75 {
		t.Errorf("Precision = %v, want 0.75", m.Precision)
	}
	if m.Recall != 0.5 {
		t.Errorf("Recall = %v, want 0.5", m.Recall)
	}
	if m.F1 != 0.6 {
		t.Errorf("F1 = %v, want 0.6", m.F1)
	}
	if want := (0.75 + 3*0.5) / 4; m.WeightedScore != want {
		t.Errorf("WeightedScore = %v, want %v", m.WeightedScore, want)
	}

	if zero := Aggregate(0, 0, 0, cfg); zero.F1 != 0 || zero.Precision != 0 {
		t.Errorf("Aggregate of zero counts = %+v", zero)
	}
}
