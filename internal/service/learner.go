package service

import (
	"context"
	"fmt"

	"github.com/ShiKuZena/ChatBot-APP/internal/models"
	"github.com/ShiKuZena/ChatBot-APP/pkg/config"

	"go.uber.org/zap"
)

const judgeSystemPrompt = "You generate structured JSON only."

// FaqLearner decides whether a resolved exchange should become a durable FAQ
// record. Everything in this path is best-effort: the reply has already been
// returned, so every failure here is swallowed and logged.
type FaqLearner struct {
	store   FaqStore
	matcher *Matcher
	llm     Completer
	cfg     *config.LearningConfig
	logger  *zap.Logger
}

func NewFaqLearner(
	store FaqStore,
	matcher *Matcher,
	llm Completer,
	cfg *config.LearningConfig,
	logger *zap.Logger,
) *FaqLearner {
	return &FaqLearner{
		store:   store,
		matcher: matcher,
		llm:     llm,
		cfg:     cfg,
		logger:  logger,
	}
}

// LearnFromExchange runs the learning pass detached from the request that
// produced the exchange, under its own deadline.
func (l *FaqLearner) LearnFromExchange(userMessage, botReply string) {
	ctx, cancel := context.WithTimeout(context.Background(), l.cfg.Timeout)
	defer cancel()
	l.learn(ctx, userMessage, botReply)
}

func (l *FaqLearner) learn(ctx context.Context, userMessage, botReply string) {
	if !l.cfg.Enabled {
		return
	}

	cand := l.judgeExchange(ctx, userMessage, botReply)
	if cand == nil {
		l.logger.Warn("FAQ judgment unparseable, learning skipped for this exchange")
		return
	}

	if !cand.IsNewFaq || cand.Question == "" || cand.Answer == "" {
		l.logger.Debug("Exchange judged not FAQ-worthy")
		return
	}

	// Probe the current store with the candidate's question; any hit above
	// the matcher's own threshold counts as a duplicate.
	snapshot, err := l.store.ListAll(ctx)
	if err != nil {
		// Without a snapshot the duplicate probe is blind; skip the insert
		// rather than risk a semantic duplicate.
		l.logger.Warn("FAQ snapshot unavailable, learned insert skipped", zap.Error(err))
		return
	}

	if existing := l.matcher.Match(cand.Question, snapshot); existing.Found() {
		l.logger.Debug("Duplicate FAQ candidate skipped",
			zap.String("question", cand.Question),
			zap.Float64("confidence", existing.Confidence),
		)
		return
	}

	faq := models.NewFaq(sanitizeUTF8(cand.Question), sanitizeUTF8(cand.Answer))
	if err := l.store.Create(ctx, faq); err != nil {
		l.logger.Warn("Failed to insert learned FAQ", zap.Error(err))
		return
	}

	l.logger.Info("Learned new FAQ", zap.String("question", faq.Question))
}

// judgeExchange asks the model for a structured verdict, retrying the whole
// generation+extraction round a fixed number of times before accepting
// defeat.
func (l *FaqLearner) judgeExchange(ctx context.Context, userMessage, botReply string) *FaqCandidate {
	zero := 0.0
	opts := GenerateOptions{Temperature: &zero, MaxTokens: 256}
	prompt := buildJudgePrompt(userMessage, botReply)

	for attempt := 0; attempt < l.cfg.MaxAttempts; attempt++ {
		raw := l.llm.Complete(ctx, judgeSystemPrompt, prompt, opts)
		if cand := ExtractFaqCandidate(raw); cand != nil {
			return cand
		}
		l.logger.Debug("FAQ judgment attempt failed", zap.Int("attempt", attempt+1))
	}
	return nil
}

func buildJudgePrompt(userMessage, botReply string) string {
	return fmt.Sprintf(`User asked: %s
Bot answered: %s

Decide if this should be added as a new FAQ entry.

RULES:
- Only add if the question is useful for many users.
- No spam, personal info, greetings, jokes.
- Keep the answer short and factual (1-2 sentences).
- Output ONLY JSON.

Return JSON exactly like:
{
  "is_new_faq": true/false,
  "question": "cleaned question",
  "answer": "clean, short answer"
}`, userMessage, botReply)
}
