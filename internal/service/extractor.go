package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

// FaqCandidate is the judged proposal extracted from one exchange. It is
// consumed immediately by the learner and never persisted.
type FaqCandidate struct {
	IsNewFaq bool
	Question string
	Answer   string
}

// The model is asked for clean JSON but regularly wraps it in commentary or
// uses alternate key spellings; accept both the short and the long names.
type rawCandidate struct {
	IsNewFaq *bool  `json:"is_new_faq"`
	IsNew    *bool  `json:"is_new"`
	Question string `json:"question"`
	Q        string `json:"q"`
	Answer   string `json:"answer"`
	A        string `json:"a"`
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// ExtractFaqCandidate recovers a structured record from raw model output.
// It locates the first balanced brace-delimited substring, parses it, and on
// failure runs one repair pass before giving up. Returns nil when nothing
// parseable is found; never panics.
func ExtractFaqCandidate(raw string) *FaqCandidate {
	obj := firstJSONObject(raw)
	if obj == "" {
		return nil
	}

	if cand := parseCandidate(obj); cand != nil {
		return cand
	}
	return parseCandidate(repairJSON(obj))
}

// firstJSONObject scans for the first balanced {...} substring, tracking
// nesting depth and string literals so braces inside quoted values do not
// terminate the scan early.
func firstJSONObject(raw string) string {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}

func parseCandidate(obj string) *FaqCandidate {
	var rc rawCandidate
	if err := json.Unmarshal([]byte(obj), &rc); err != nil {
		return nil
	}

	cand := &FaqCandidate{
		Question: strings.TrimSpace(firstNonEmpty(rc.Question, rc.Q)),
		Answer:   strings.TrimSpace(firstNonEmpty(rc.Answer, rc.A)),
	}
	switch {
	case rc.IsNewFaq != nil:
		cand.IsNewFaq = *rc.IsNewFaq
	case rc.IsNew != nil:
		cand.IsNewFaq = *rc.IsNew
	}
	return cand
}

// repairJSON normalizes typographic quotes and strips trailing commas, the
// two malformations the model actually produces.
func repairJSON(obj string) string {
	replacer := strings.NewReplacer(
		"“", `"`, // left double quote
		"”", `"`, // right double quote
		"„", `"`, // low double quote
		"‘", "'",
		"’", "'",
	)
	return trailingComma.ReplaceAllString(replacer.Replace(obj), "$1")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
