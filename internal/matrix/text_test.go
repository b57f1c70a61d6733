package matrix

import (
	"errors"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	got := Format(Mat3{1, 0, 12.5, 0, -1, -3})
	want := "[\n" +
		"      1.000      0.000     12.500\n" +
		"      0.000     -1.000     -3.000\n" +
		"]"
	if got != want {
		t.Errorf("Format:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatNegativeZero(t *testing.T) {
	var negZero float64
	negZero = -negZero
	if got := Format(Mat3{negZero, 0, 0, 0, 1, 0}); strings.Contains(got, "-0.000") {
		t.Errorf("Format printed -0: %s", got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	m := Mat3{0.866, -0.5, 120.25, 0.5, 0.866, -40}
	got, err := ParseText(Format(m))
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if !got.ApproxEqual(m, 1e-9) {
		t.Errorf("round trip = %v, want %v", got, m)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{-2, "-2"},
		{0.5, "0.5000"},
		{0.70710678, "0.7071"},
		{6.123233995736766e-17, "0"},
		{2.9999999999, "3"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Mat3
	}{
		{"plain", "1 0 5\n0 1 6", Mat3{1, 0, 5, 0, 1, 6}},
		{"brackets", "[\n  2  0  0\n  0  2  0\n]", Mat3{2, 0, 0, 0, 2, 0}},
		{"commas", "[1, 0.5, -3]\n[0, 1, 4e1]", Mat3{1, 0.5, -3, 0, 1, 40}},
		{"blank lines", "\n\n1 2 3\n\n4 5 6\n\n", Mat3{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseText(tt.text)
			if err != nil {
				t.Fatalf("ParseText: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseTextErrors(t *testing.T) {
	tests := []string{
		"",
		"1 0 0",
		"1 0 0\n0 1 0\n0 0 1",
		"1 0\n0 1",
		"1 0 0 0\n0 1 0",
		"1 x 0\n0 1 0",
		"1 NaN 0\n0 1 0",
	}
	for _, text := range tests {
		_, err := ParseText(text)
		var te *TextError
		if !errors.As(err, &te) {
			t.Errorf("ParseText(%q) err = %v, want *TextError", text, err)
		}
	}
}
