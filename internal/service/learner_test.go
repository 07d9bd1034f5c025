package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ShiKuZena/ChatBot-APP/pkg/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func learningConfig() *config.LearningConfig {
	return &config.LearningConfig{
		Enabled:     true,
		MaxAttempts: 2,
		Timeout:     5 * time.Second,
	}
}

func newTestLearner(store *mockFaqStore, llm *mockCompleter, cfg *config.LearningConfig) *FaqLearner {
	return NewFaqLearner(store, NewMatcher(zap.NewNop()), llm, cfg, zap.NewNop())
}

func judgedFaq(question, answer string) string {
	return fmt.Sprintf(`Here is the verdict: {"is_new_faq": true, "question": %q, "answer": %q}`, question, answer)
}

func TestLearner_InsertsNewFaq(t *testing.T) {
	store := &mockFaqStore{}
	llm := &mockCompleter{responses: []string{judgedFaq("giờ mở cửa", "8h-17h")}}

	l := newTestLearner(store, llm, learningConfig())
	l.learn(context.Background(), "thư viện mở cửa lúc mấy giờ vậy?", "Thư viện mở cửa từ 8h đến 17h.")

	require.Equal(t, 1, store.createdCount())
	require.Equal(t, "giờ mở cửa", store.created[0].Question)
	require.Equal(t, "8h-17h", store.created[0].Answer)

	// Judgment must run deterministically and bounded.
	require.Equal(t, 1, llm.callCount())
	require.NotNil(t, llm.calls[0].opts.Temperature)
	require.Equal(t, 0.0, *llm.calls[0].opts.Temperature)
	require.NotZero(t, llm.calls[0].opts.MaxTokens)
}

func TestLearner_Idempotent(t *testing.T) {
	// Submitting the same pair twice results in one record: the second
	// round's probe finds the first insert.
	store := &mockFaqStore{}
	llm := &mockCompleter{responses: []string{judgedFaq("giờ mở cửa", "8h-17h")}}

	l := newTestLearner(store, llm, learningConfig())
	l.learn(context.Background(), "giờ mở cửa?", "8h-17h")
	l.learn(context.Background(), "giờ mở cửa?", "8h-17h")

	require.Equal(t, 1, store.createdCount())
}

func TestLearner_SkipsDuplicateOfExistingRecord(t *testing.T) {
	store := &mockFaqStore{faqs: faqList([2]string{"giờ mở cửa", "8h-17h"})}
	llm := &mockCompleter{responses: []string{judgedFaq("giờ mở cửa", "từ 8h sáng đến 5h chiều")}}

	l := newTestLearner(store, llm, learningConfig())
	l.learn(context.Background(), "mấy giờ mở cửa", "từ 8h sáng")

	require.Equal(t, 0, store.createdCount())
}

func TestLearner_NegativeJudgment(t *testing.T) {
	store := &mockFaqStore{}
	llm := &mockCompleter{responses: []string{`{"is_new_faq": false, "question": "hi", "answer": "hello"}`}}

	l := newTestLearner(store, llm, learningConfig())
	l.learn(context.Background(), "hi", "hello there")

	require.Equal(t, 0, store.createdCount())
}

func TestLearner_EmptyFieldsRejected(t *testing.T) {
	store := &mockFaqStore{}
	llm := &mockCompleter{responses: []string{`{"is_new_faq": true, "question": "  ", "answer": "A"}`}}

	l := newTestLearner(store, llm, learningConfig())
	l.learn(context.Background(), "q", "a")

	require.Equal(t, 0, store.createdCount())
}

func TestLearner_RetriesThenGivesUp(t *testing.T) {
	store := &mockFaqStore{}
	llm := &mockCompleter{responses: []string{"no json here", "still no json"}}

	l := newTestLearner(store, llm, learningConfig())
	l.learn(context.Background(), "q", "a")

	require.Equal(t, 2, llm.callCount(), "one retry after the first failed round")
	require.Equal(t, 0, store.createdCount())
}

func TestLearner_SecondAttemptSucceeds(t *testing.T) {
	store := &mockFaqStore{}
	llm := &mockCompleter{responses: []string{"garbage output", judgedFaq("phí trả trễ", "2.000đ mỗi ngày")}}

	l := newTestLearner(store, llm, learningConfig())
	l.learn(context.Background(), "phí trả sách trễ là bao nhiêu", "2.000đ mỗi cuốn mỗi ngày")

	require.Equal(t, 2, llm.callCount())
	require.Equal(t, 1, store.createdCount())
}

func TestLearner_StoreFailuresSwallowed(t *testing.T) {
	t.Run("snapshot unavailable", func(t *testing.T) {
		store := &mockFaqStore{listErr: errMockStore}
		llm := &mockCompleter{responses: []string{judgedFaq("q", "a")}}

		l := newTestLearner(store, llm, learningConfig())
		l.learn(context.Background(), "q", "a")

		require.Equal(t, 0, store.createdCount())
	})

	t.Run("insert fails", func(t *testing.T) {
		store := &mockFaqStore{createErr: errMockStore}
		llm := &mockCompleter{responses: []string{judgedFaq("q", "a")}}

		l := newTestLearner(store, llm, learningConfig())
		l.learn(context.Background(), "q", "a") // must not panic or surface anywhere
	})
}

func TestLearner_Disabled(t *testing.T) {
	store := &mockFaqStore{}
	llm := &mockCompleter{responses: []string{judgedFaq("q", "a")}}
	cfg := learningConfig()
	cfg.Enabled = false

	l := newTestLearner(store, llm, cfg)
	l.learn(context.Background(), "q", "a")

	require.Equal(t, 0, llm.callCount())
	require.Equal(t, 0, store.createdCount())
}

func TestLearner_ConcurrentDistinctInserts(t *testing.T) {
	store := &mockFaqStore{}
	llm := &mockCompleter{
		CompleteFunc: func(_, userPrompt string) string {
			if strings.Contains(userPrompt, "giờ mở cửa") {
				return judgedFaq("giờ mở cửa", "8h-17h")
			}
			return judgedFaq("phí trả trễ", "2.000đ mỗi ngày")
		},
	}

	l := newTestLearner(store, llm, learningConfig())

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		l.learn(context.Background(), "giờ mở cửa của thư viện", "8h-17h")
	}()
	go func() {
		defer wg.Done()
		l.learn(context.Background(), "phí trả sách trễ", "2.000đ mỗi cuốn mỗi ngày")
	}()
	wg.Wait()

	require.Equal(t, 2, store.createdCount())

	// Both records are retrievable afterwards.
	snapshot, err := store.ListAll(context.Background())
	require.NoError(t, err)
	questions := []string{snapshot[0].Question, snapshot[1].Question}
	require.ElementsMatch(t, []string{"giờ mở cửa", "phí trả trễ"}, questions)
}
