package service

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases_and_strips_punctuation",
			text: "Hello, World!",
			want: []string{"hello", "world"},
		},
		{
			name: "empty_input",
			text: "",
			want: nil,
		},
		{
			name: "whitespace_only",
			text: "   \t\n  ",
			want: nil,
		},
		{
			name: "punctuation_only",
			text: "?!...,;",
			want: nil,
		},
		{
			name: "vietnamese_letters_preserved",
			text: "Thư viện! Mở cửa?",
			want: []string{"thư", "viện", "mở", "cửa"},
		},
		{
			name: "duplicates_collapse",
			text: "book Book BOOK",
			want: []string{"book"},
		},
		{
			name: "digits_and_underscore_kept",
			text: "room_101 at 9",
			want: []string{"room_101", "at", "9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Normalize(%q) returned %d tokens, want %d: %v", tt.text, len(got), len(tt.want), got)
			}
			for _, tok := range tt.want {
				if _, ok := got[tok]; !ok {
					t.Errorf("Normalize(%q) missing token %q, got %v", tt.text, tok, got)
				}
			}
		})
	}
}
