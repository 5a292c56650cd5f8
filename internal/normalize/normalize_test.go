package normalize

import (
	"fmt"
	"math"
	"testing"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
		ok   bool
	}{
		{name: "european grouping", raw: "1.234,56", want: 1234.56, ok: true},
		{name: "plain decimal", raw: "54.75", want: 54.75, ok: true},
		{name: "euro sign single decimal", raw: "€ 12,5", want: 12.5, ok: true},
		{name: "us grouping", raw: "1,234.56", want: 1234.56, ok: true},
		{name: "double european group", raw: "1.234.567,89", want: 1234567.89, ok: true},
		{name: "dollar sign", raw: "$99.90", want: 99.9, ok: true},
		{name: "pound with space", raw: "£ 7", want: 7, ok: true},
		{name: "bare thousands", raw: "1.234", want: 1234, ok: true},
		{name: "negative", raw: "-12,50", want: -12.5, ok: true},
		{name: "rounding", raw: "12.3456", ok: true, want: 12.35},
		{name: "dotted group is european grouping", raw: "10.005", ok: true, want: 10005},
		{name: "garbage", raw: "n/a"},
		{name: "empty", raw: ""},
		{name: "only currency", raw: "€"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.raw)
			if ok != tt.ok {
				t.Fatalf("Amount(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Amount(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAmountIdempotent(t *testing.T) {
	inputs := []string{"1.234,56", "54.75", "€ 12,5", "1,234.56", "150,00"}
	for _, raw := range inputs {
		first, ok := Amount(raw)
		if !ok {
			t.Fatalf("Amount(%q) unexpectedly failed", raw)
		}
		again, ok := Amount(fmt.Sprintf("%.2f", first))
		if !ok {
			t.Fatalf("Amount of canonical form of %q failed", raw)
		}
		if first != again {
			t.Errorf("Amount not idempotent for %q: %v then %v", raw, first, again)
		}
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "dots unpadded", raw: "5.3.2024", want: "05.03.2024"},
		{name: "slashes", raw: "15/11/2023", want: "15.11.2023"},
		{name: "dashes", raw: "01-09-2022", want: "01.09.2022"},
		{name: "already canonical", raw: "05.03.2024", want: "05.03.2024"},
		{name: "textual month", raw: "5 Mar 2024", want: "05.03.2024"},
		{name: "textual month long", raw: "15 October 2023", want: "15.10.2023"},
		{name: "embedded in sentence", raw: "Order date: 7/6/2021, thanks", want: "07.06.2021"},
		{name: "unparseable passes through", raw: "sometime next week", want: "sometime next week"},
		{name: "empty passes through", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(tt.raw); got != tt.want {
				t.Errorf("Date(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDateIdempotent(t *testing.T) {
	inputs := []string{"5.3.2024", "15/11/2023", "1-1-2020"}
	for _, raw := range inputs {
		first := Date(raw)
		if again := Date(first); again != first {
			t.Errorf("Date not idempotent for %q: %q then %q", raw, first, again)
		}
	}
}
