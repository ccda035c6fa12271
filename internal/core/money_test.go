package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"150000", 150000, false},
		{"-45000", -45000, false},
		{"0", 0, false},
		{"  ", 0, true},
		{"", 0, true},
		{"12.50", 0, true}, // the CFA has no fractional unit
		{"12,50", 0, true},
		{"abc", 0, true},
		{"1e3", 1000, false}, // decimal accepts exponent notation
		{"9223372036854775808", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseAmount(%q) err = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) err = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{20000, "20,000"},
		{1234567, "1,234,567"},
		{-45000, "-45,000"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPeriodRange(t *testing.T) {
	now := NewDate(2024, 6, 15)

	tests := []struct {
		token    string
		wantFrom string
	}{
		{PeriodOneMonth, "2024-05-15"},
		{PeriodThreeMonths, "2024-03-15"},
		{PeriodSixMonths, "2023-12-15"},
		{PeriodOneYear, "2023-06-15"},
		{"fortnight", "2023-12-15"}, // unknown tokens use the default window
		{"", "2023-12-15"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			from, to := PeriodRange(tt.token, now)
			if from.String() != tt.wantFrom {
				t.Errorf("PeriodRange(%q) from = %s, want %s", tt.token, from, tt.wantFrom)
			}
			if to.String() != "2024-06-15" {
				t.Errorf("PeriodRange(%q) to = %s, want 2024-06-15", tt.token, to)
			}
		})
	}
}
