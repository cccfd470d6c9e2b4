package format

import (
	"math"
	"testing"
)

func TestPriceEok(t *testing.T) {
	tests := []struct {
		name   string
		manwon float64
		want   string
	}{
		{"typical district average", 238000, "23.8억원"},
		{"rounds to one decimal", 61234, "6.1억원"},
		{"below one eok", 9500, "0.9억원"},
		{"zero is unknown", 0, "정보 없음"},
		{"nan is unknown", math.NaN(), "정보 없음"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PriceEok(tt.manwon); got != tt.want {
				t.Errorf("PriceEok(%v) = %q, want %q", tt.manwon, got, tt.want)
			}
		})
	}
}

func TestPriceKor(t *testing.T) {
	tests := []struct {
		name   string
		manwon float64
		want   string
	}{
		{"eok and man", 238500, "23억 8,500만원"},
		{"exact eok", 230000, "23억원"},
		{"man only", 9500, "9,500만원"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PriceKor(tt.manwon); got != tt.want {
				t.Errorf("PriceKor(%v) = %q, want %q", tt.manwon, got, tt.want)
			}
		})
	}
}

func TestManwon(t *testing.T) {
	if got := Manwon(238000.4); got != "₩238,000만원" {
		t.Errorf("Manwon = %q", got)
	}
	if got := Manwon(999.5); got != "₩1,000만원" {
		t.Errorf("Manwon rounds, got %q", got)
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{238000, "238,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := GroupDigits(tt.n); got != tt.want {
			t.Errorf("GroupDigits(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
