package constants

import (
	"reflect"
	"testing"
)

func TestClassifyFilename(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		want    Dataset
		matched bool
	}{
		{name: "invoice keyword", file: "invoice_001.pdf", want: DatasetInvoice, matched: true},
		{name: "order keyword", file: "order_017.pdf", want: DatasetOrder, matched: true},
		{name: "uppercase", file: "INVOICE_2024.PDF", want: DatasetInvoice, matched: true},
		{name: "keyword mid-name", file: "2024_order_acme.pdf", want: DatasetOrder, matched: true},
		{name: "both keywords prefers invoice", file: "invoice_for_order_42.pdf", want: DatasetInvoice, matched: true},
		{name: "no keyword", file: "scan_note.pdf", matched: false},
		{name: "empty", file: "", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyFilename(tt.file)
			if ok != tt.matched {
				t.Fatalf("ClassifyFilename(%q) ok = %v, want %v", tt.file, ok, tt.matched)
			}
			if got != tt.want {
				t.Errorf("ClassifyFilename(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestAsStringSlice(t *testing.T) {
	got := AsStringSlice()
	want := []string{"Invoice", "Order"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AsStringSlice() = %v, want %v", got, want)
	}
}

func TestIsAllowedExt(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{ext: ".pdf", want: true},
		{ext: "pdf", want: true},
		{ext: ".PDF", want: true},
		{ext: ".txt", want: false},
		{ext: "", want: false},
	}

	for _, tt := range tests {
		if got := IsAllowedExt(tt.ext); got != tt.want {
			t.Errorf("IsAllowedExt(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}
