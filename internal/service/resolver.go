package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShiKuZena/ChatBot-APP/internal/models"

	"go.uber.org/zap"
)

// FaqStore is the read/write contract with the knowledge base. A read failure
// must be reported distinctly from an empty result set.
type FaqStore interface {
	ListAll(ctx context.Context) ([]models.Faq, error)
	Create(ctx context.Context, faq *models.Faq) error
}

// HistorySink records resolved exchanges. Append failures are logged and
// ignored; they never block the reply.
type HistorySink interface {
	Append(ctx context.Context, sessionID, userMessage, botReply string) error
}

// ExchangeLearner runs the self-learning pass for one resolved exchange.
type ExchangeLearner interface {
	LearnFromExchange(userMessage, botReply string)
}

// Resolver walks the escalation ladder for each query: lexical match over a
// store snapshot, then context-grounded completion, then plain completion,
// then the sentinel. Each tier is a strategy so tiers can be tested and
// reordered independently.
type Resolver struct {
	store   FaqStore
	history HistorySink
	matcher *Matcher
	fetcher ContextSource
	llm     Completer
	learner ExchangeLearner
	logger  *zap.Logger
}

func NewResolver(
	store FaqStore,
	history HistorySink,
	matcher *Matcher,
	fetcher ContextSource,
	llm Completer,
	learner ExchangeLearner,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		store:   store,
		history: history,
		matcher: matcher,
		fetcher: fetcher,
		llm:     llm,
		learner: learner,
		logger:  logger,
	}
}

type resolutionStrategy struct {
	name    string
	attempt func(ctx context.Context, query string, snapshot []models.Faq) MatchResult
}

func (r *Resolver) strategies() []resolutionStrategy {
	return []resolutionStrategy{
		{name: "faq", attempt: r.attemptFaq},
		{name: "contextual", attempt: r.attemptContextual},
		{name: "generative", attempt: r.attemptGenerative},
	}
}

// Resolve always terminates with non-empty text; the caller never sees an
// error. Empty messages are a handler precondition and must be rejected
// before entering the pipeline.
func (r *Resolver) Resolve(ctx context.Context, userMessage, sessionID string) string {
	snapshot, err := r.store.ListAll(ctx)
	if err != nil {
		// Degrade to "no candidates" instead of aborting the request.
		r.logger.Warn("FAQ snapshot unavailable, matching degraded", zap.Error(err))
		snapshot = nil
	}

	answer := ""
	tier := Tier("TERMINAL")
	for _, strategy := range r.strategies() {
		result := strategy.attempt(ctx, userMessage, snapshot)
		if usable(result.Answer) {
			answer = result.Answer
			tier = result.Tier
			r.logger.Info("Query resolved",
				zap.String("strategy", strategy.name),
				zap.String("tier", string(result.Tier)),
				zap.Float64("confidence", result.Confidence),
			)
			break
		}
	}

	if !usable(answer) {
		answer = AnswerUnavailable
	}

	// Exactly one history row per resolution, no matter which tier won and
	// no matter what the learning pass does afterwards.
	if err := r.history.Append(ctx, sessionID, userMessage, sanitizeUTF8(answer)); err != nil {
		r.logger.Error("Failed to append chat history",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}

	if r.learner != nil && tier != Tier("TERMINAL") {
		// Fire-and-forget: the learner carries its own deadline and its
		// failures cannot alter the already-decided reply.
		go r.learner.LearnFromExchange(userMessage, answer)
	}

	return answer
}

func (r *Resolver) attemptFaq(_ context.Context, query string, snapshot []models.Faq) MatchResult {
	return r.matcher.Match(query, snapshot)
}

func (r *Resolver) attemptContextual(ctx context.Context, query string, _ []models.Faq) MatchResult {
	if !r.fetcher.TopicRelevant(query) {
		return MatchResult{}
	}

	reference := r.fetcher.FetchContext(ctx)
	if reference == "" {
		return MatchResult{}
	}

	answer := r.llm.Complete(ctx, buildContextPrompt(reference), query, GenerateOptions{})
	if !usable(answer) {
		return MatchResult{}
	}
	return MatchResult{Answer: answer, Tier: TierContextual}
}

func (r *Resolver) attemptGenerative(ctx context.Context, query string, snapshot []models.Faq) MatchResult {
	answer := r.llm.Complete(ctx, buildAnswerPrompt(snapshot), query, GenerateOptions{})
	if !usable(answer) {
		return MatchResult{}
	}
	return MatchResult{Answer: answer, Tier: TierGenerative}
}

// usable reports whether the text counts as an actual answer. The sentinel is
// what the completion client returns on any failure, so it is "no answer"
// here even though it is real text.
func usable(answer string) bool {
	trimmed := strings.TrimSpace(answer)
	return trimmed != "" && trimmed != AnswerUnavailable
}

func buildAnswerPrompt(snapshot []models.Faq) string {
	return fmt.Sprintf(`You are a helpful Library Assistant.
When answering, USE the following reference material when relevant.

%s`, serializeFaqs(snapshot))
}

func buildContextPrompt(reference string) string {
	return fmt.Sprintf(`You are a helpful Library Assistant.
Answer the question using ONLY the reference text below.
If the reference text does not contain the answer, reply exactly: %s

Reference text:
%s`, AnswerUnavailable, reference)
}

func serializeFaqs(snapshot []models.Faq) string {
	var b strings.Builder
	for _, faq := range snapshot {
		b.WriteString("Q: ")
		b.WriteString(faq.Question)
		b.WriteString("\nA: ")
		b.WriteString(faq.Answer)
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}
