package service

import (
	"strings"

	"github.com/ShiKuZena/ChatBot-APP/internal/models"

	"go.uber.org/zap"
)

// Tier is one strategy level in the escalation ladder.
type Tier string

const (
	TierExact      Tier = "EXACT"
	TierFuzzy      Tier = "FUZZY"
	TierContextual Tier = "CONTEXTUAL"
	TierGenerative Tier = "GENERATIVE"
)

// fuzzyThreshold is the minimum overlap ratio a candidate must reach.
const fuzzyThreshold = 0.70

// MatchResult carries the outcome of one resolution attempt. It only drives
// escalation and is never stored.
type MatchResult struct {
	Answer     string
	Confidence float64
	Tier       Tier
}

func (m MatchResult) Found() bool {
	return m.Answer != ""
}

type Matcher struct {
	threshold float64
	logger    *zap.Logger
}

func NewMatcher(logger *zap.Logger) *Matcher {
	return &Matcher{
		threshold: fuzzyThreshold,
		logger:    logger,
	}
}

// Match scores the query against the stored questions. The exact pass runs
// first and short-circuits fuzzy scoring. The fuzzy ratio is directional:
// overlap divided by the candidate's token count, so a short stored question
// fully covered by a longer query scores 1.0.
func (m *Matcher) Match(query string, faqs []models.Faq) MatchResult {
	queryTokens := Normalize(query)
	if len(queryTokens) == 0 {
		return MatchResult{}
	}

	queryExact := strings.ToLower(strings.TrimSpace(query))
	for _, faq := range faqs {
		if strings.ToLower(strings.TrimSpace(faq.Question)) == queryExact {
			return MatchResult{Answer: faq.Answer, Confidence: 1.0, Tier: TierExact}
		}
	}

	// Strictly-greater tracking keeps the first-seen candidate on ties, so
	// the iteration order of faqs is part of the contract.
	var best MatchResult
	for _, faq := range faqs {
		faqTokens := Normalize(faq.Question)
		if len(faqTokens) == 0 {
			continue
		}

		overlap := 0
		for tok := range faqTokens {
			if _, ok := queryTokens[tok]; ok {
				overlap++
			}
		}

		ratio := float64(overlap) / float64(len(faqTokens))
		if ratio >= m.threshold && ratio > best.Confidence {
			best = MatchResult{Answer: faq.Answer, Confidence: ratio, Tier: TierFuzzy}
		}
	}

	return best
}
