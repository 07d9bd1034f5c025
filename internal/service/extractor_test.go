package service

import (
	"testing"
)

func TestExtractFaqCandidate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *FaqCandidate
	}{
		{
			name: "json_with_surrounding_commentary",
			raw:  `Sure! Here you go: {"is_new_faq": true, "question": "Q", "answer": "A"} Thanks.`,
			want: &FaqCandidate{IsNewFaq: true, Question: "Q", Answer: "A"},
		},
		{
			name: "no_braces",
			raw:  "I cannot produce JSON for this.",
			want: nil,
		},
		{
			name: "empty_input",
			raw:  "",
			want: nil,
		},
		{
			name: "braces_inside_string_value",
			raw:  `{"is_new_faq": true, "question": "what {is} this", "answer": "a thing"}`,
			want: &FaqCandidate{IsNewFaq: true, Question: "what {is} this", Answer: "a thing"},
		},
		{
			name: "nested_object_and_short_keys",
			raw:  `note {"meta": {"x": 1}, "q": "Q2", "a": "A2", "is_new": true} done`,
			want: &FaqCandidate{IsNewFaq: true, Question: "Q2", Answer: "A2"},
		},
		{
			name: "smart_quotes_repaired",
			raw:  `{“is_new_faq”: true, “question”: “Q”, “answer”: “A”}`,
			want: &FaqCandidate{IsNewFaq: true, Question: "Q", Answer: "A"},
		},
		{
			name: "trailing_comma_repaired",
			raw:  `{"is_new_faq": false, "question": "Q", "answer": "A",}`,
			want: &FaqCandidate{IsNewFaq: false, Question: "Q", Answer: "A"},
		},
		{
			name: "fields_trimmed",
			raw:  `{"is_new_faq": true, "question": "  Q  ", "answer": "\tA\n"}`,
			want: &FaqCandidate{IsNewFaq: true, Question: "Q", Answer: "A"},
		},
		{
			name: "long_key_preferred_over_short",
			raw:  `{"is_new_faq": true, "question": "long form", "q": "short form", "answer": "A"}`,
			want: &FaqCandidate{IsNewFaq: true, Question: "long form", Answer: "A"},
		},
		{
			name: "missing_flag_defaults_false",
			raw:  `{"question": "Q", "answer": "A"}`,
			want: &FaqCandidate{IsNewFaq: false, Question: "Q", Answer: "A"},
		},
		{
			name: "unparseable_braces",
			raw:  `{not json at all}`,
			want: nil,
		},
		{
			name: "unbalanced_braces",
			raw:  `{"is_new_faq": true, "question": "Q"`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractFaqCandidate(tt.raw)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected absent, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %+v, got absent", tt.want)
			}
			if *got != *tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractFaqCandidate_FirstObjectWins(t *testing.T) {
	raw := `{"question": "first", "answer": "one"} and later {"question": "second", "answer": "two"}`
	got := ExtractFaqCandidate(raw)
	if got == nil || got.Question != "first" {
		t.Fatalf("expected first balanced object to win, got %+v", got)
	}
}
