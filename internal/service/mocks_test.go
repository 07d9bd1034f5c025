package service

import (
	"context"
	"errors"
	"sync"

	"github.com/ShiKuZena/ChatBot-APP/internal/models"
)

// Common test errors
var (
	errMockStore   = errors.New("mock store error")
	errMockHistory = errors.New("mock history error")
)

// mockFaqStore implements FaqStore for testing
type mockFaqStore struct {
	mu        sync.Mutex
	faqs      []models.Faq
	listErr   error
	createErr error
	created   []models.Faq
}

func (m *mockFaqStore) ListAll(_ context.Context) ([]models.Faq, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]models.Faq, len(m.faqs))
	copy(out, m.faqs)
	return out, nil
}

func (m *mockFaqStore) Create(_ context.Context, faq *models.Faq) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	m.faqs = append(m.faqs, *faq)
	m.created = append(m.created, *faq)
	return nil
}

func (m *mockFaqStore) createdCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.created)
}

// mockHistory implements HistorySink for testing
type historyEntry struct {
	sessionID   string
	userMessage string
	botReply    string
}

type mockHistory struct {
	mu      sync.Mutex
	entries []historyEntry
	err     error
}

func (m *mockHistory) Append(_ context.Context, sessionID, userMessage, botReply string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, historyEntry{
		sessionID:   sessionID,
		userMessage: userMessage,
		botReply:    botReply,
	})
	return m.err
}

// mockCompleter implements Completer for testing. Responses are consumed as a
// queue; the last one repeats. CompleteFunc, when set, takes precedence.
type completionCall struct {
	systemPrompt string
	userPrompt   string
	opts         GenerateOptions
}

type mockCompleter struct {
	mu           sync.Mutex
	responses    []string
	CompleteFunc func(systemPrompt, userPrompt string) string
	calls        []completionCall
}

func (m *mockCompleter) Complete(_ context.Context, systemPrompt, userPrompt string, opts GenerateOptions) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, completionCall{
		systemPrompt: systemPrompt,
		userPrompt:   userPrompt,
		opts:         opts,
	})

	if m.CompleteFunc != nil {
		return m.CompleteFunc(systemPrompt, userPrompt)
	}
	if len(m.responses) == 0 {
		return AnswerUnavailable
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp
}

func (m *mockCompleter) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockContextSource implements ContextSource for testing
type mockContextSource struct {
	relevant   bool
	text       string
	fetchCalls int
}

func (m *mockContextSource) TopicRelevant(_ string) bool {
	return m.relevant
}

func (m *mockContextSource) FetchContext(_ context.Context) string {
	m.fetchCalls++
	return m.text
}

// mockLearner records LearnFromExchange invocations on a channel so tests can
// wait for the fire-and-forget goroutine.
type mockLearner struct {
	exchanges chan [2]string
}

func newMockLearner() *mockLearner {
	return &mockLearner{exchanges: make(chan [2]string, 4)}
}

func (m *mockLearner) LearnFromExchange(userMessage, botReply string) {
	m.exchanges <- [2]string{userMessage, botReply}
}
