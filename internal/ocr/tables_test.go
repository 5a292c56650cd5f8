package ocr

import (
	"reflect"
	"testing"
)

func TestFlattenTabularRows(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "item table",
			text: "Rechnung Nr. 42\n\nPos   Artikel        Menge   Preis\n1     Widget         2       100,00\n",
			want: []string{
				"Pos | Artikel | Menge | Preis",
				"1 | Widget | 2 | 100,00",
			},
		},
		{
			name: "prose only",
			text: "Sehr geehrte Damen und Herren,\nvielen Dank für Ihre Bestellung.",
			want: nil,
		},
		{
			name: "single wide gap",
			text: "Gesamtsumme         150,00",
			want: []string{"Gesamtsumme | 150,00"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FlattenTabularRows(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FlattenTabularRows(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "collapses space runs",
			text: "Gesamtsumme:    150,00",
			want: "Gesamtsumme: 150,00",
		},
		{
			name: "keeps accents and currency",
			text: "Café Müller € 12,50",
			want: "Café Müller € 12,50",
		},
		{
			name: "drops control characters",
			text: "Invoice\x00\x08 Number\x1b 7",
			want: "Invoice Number 7",
		},
		{
			name: "preserves line boundaries",
			text: "line one  \n\n  line two",
			want: "line one\nline two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.text); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
