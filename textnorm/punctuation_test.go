package textnorm

import (
	"testing"
)

func TestMapPunctuation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"，", ","},
		{"。", "."},
		{"！", "!"},
		{"？", "?"},
		{"：", ":"},
		{"；", ";"},
		{"（", "("},
		{"）", ")"},
		{"【", "["},
		{"】", "]"},
		{"、", ","},
		{"—", "-"},
		{"ma3", "ma3"},
		{"T", "T"},
		{"100", "100"},
		{",", ","},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := MapPunctuation(tc.input); got != tc.expected {
				t.Errorf("MapPunctuation(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestIsPunctRun(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{",", true},
		{"()", true},
		{"./:", true},
		{"?!", false},
		{")(", false},
		{"a", false},
		{"。", false},
	}
	for _, tc := range tests {
		if got := IsPunctRun(tc.input); got != tc.want {
			t.Errorf("IsPunctRun(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestIsASCIIPunct(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{".", true},
		{",", true},
		{"?", true},
		{"-", true},
		{"", false},
		{",.", false},
		{"，", false},
		{"a", false},
		{"1", false},
	}

	for _, tc := range tests {
		if got := IsASCIIPunct(tc.input); got != tc.want {
			t.Errorf("IsASCIIPunct(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestIsNumber(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"100", true},
		{"0", true},
		{"3.14", true},
		{"-2", true},
		{"+7.5", true},
		{"1e5", true},
		{"", false},
		{"ma3", false},
		{"T", false},
		{"inf", false},
		{"NaN", false},
		{"12a", false},
		{".", false},
	}

	for _, tc := range tests {
		if got := IsNumber(tc.input); got != tc.want {
			t.Errorf("IsNumber(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNumberSpans(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][2]int
	}{
		{"none", "你好", nil},
		{"integer", "T恤100元", [][2]int{{4, 7}}},
		{"decimal", "3.5元", [][2]int{{0, 3}}},
		{"two runs", "1和22", [][2]int{{0, 1}, {4, 6}}},
		{"trailing dot", "5.", [][2]int{{0, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NumberSpans(tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("NumberSpans(%q) = %v, want %v", tc.input, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("span[%d] = %v, want %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}
