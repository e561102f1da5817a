package tone

import "testing"

func TestMarks(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ma1", "mā"},
		{"ma2", "má"},
		{"ma3", "mǎ"},
		{"ma4", "mà"},
		{"ma5", "ma"},
		{"ma0", "ma"},
		{"ma", "ma"},
		{"hao3", "hǎo"},
		{"xie4", "xiè"},
		{"gou3", "gǒu"},
		{"liu2", "liú"},
		{"gui4", "guì"},
		{"lv4", "lǜ"},
		{"nu:3", "nǚ"},
		{"nü3", "nǚ"},
		{"er2", "ér"},
		{"Zhong1", "Zhōng"},
		{"zhong1guo2", "zhōngguó"},
		{"T", "T"},
		{",", ","},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := Marks(tc.input); got != tc.expected {
				t.Errorf("Marks(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
