package quantity

import (
	"errors"
	"testing"
)

func TestMultiplier(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			suffix string
			want   string
		}{
			{"", "1"},
			{"Ki", "1024"},
			{"Mi", "1048576"},
			{"Gi", "1073741824"},
			{"Ti", "1099511627776"},
			{"Pi", "1125899906842624"},
			{"Ei", "1152921504606846976"},
			{"n", "0.000000001"},
			{"u", "0.000001"},
			{"m", "0.001"},
			{"k", "1000"},
			{"M", "1000000"},
			{"G", "1000000000"},
			{"T", "1000000000000"},
			{"P", "1000000000000000"},
			{"E", "1000000000000000000"},
			{"e0", "1"},
			{"e9", "1000000000"},
			{"E9", "1000000000"},
			{"e-6", "0.000001"},
			{"e+3", "1000"},
			{"e-1", "0.1"},
		}
		for _, tt := range tests {
			got, err := multiplier(tt.suffix)
			if err != nil {
				t.Errorf("multiplier(%q) failed: %v", tt.suffix, err)
				continue
			}
			if want := mustDec(tt.want); got.Cmp(want) != 0 {
				t.Errorf("multiplier(%q) = %v, want %v", tt.suffix, got, want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string]string{
			// 'K' splits quantity strings but maps to nothing; only
			// lowercase 'k' is kilo.
			"uppercase K":    "K",
			"unknown letter": "x",
			"bare marker":    "e",
			"sign only":      "e-",
			"fraction exp":   "e9.5",
			"huge exp":       "e9999999999",
			"mixed":          "KB",
		}
		for name, suffix := range tests {
			t.Run(name, func(t *testing.T) {
				_, err := multiplier(suffix)
				if err == nil {
					t.Errorf("multiplier(%q) did not fail", suffix)
				}
				if !errors.Is(err, ErrInvalidFormat) {
					t.Errorf("multiplier(%q) error = %v, want ErrInvalidFormat", suffix, err)
				}
			})
		}
	})
}

func TestIndexOfSuffix(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"1000", 4},
		{"500m", 3},
		{"2Gi", 1},
		{"4e9", 1},
		{".5", 2},
		{"e9", 0},
		{"1K", 1},
		{"-1.5Mi", 4},
		{"", 0},
	}
	for _, tt := range tests {
		if got := indexOfSuffix(tt.s); got != tt.want {
			t.Errorf("indexOfSuffix(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestContainsDigit(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"", false},
		{"Ki", false},
		{"e9", true},
		{"e-6", true},
		{"e-", false},
	}
	for _, tt := range tests {
		if got := containsDigit(tt.s); got != tt.want {
			t.Errorf("containsDigit(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestEndsWithLetter(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"", false},
		{"e9", false},
		{"e9x", true},
		{"Ki", true},
	}
	for _, tt := range tests {
		if got := endsWithLetter(tt.s); got != tt.want {
			t.Errorf("endsWithLetter(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}
