package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ShiKuZena/ChatBot-APP/pkg/config"

	"go.uber.org/zap"
)

// AnswerUnavailable is the sentinel reply substituted whenever no tier
// produces usable output. Callers treat it as "no usable answer"; it is the
// only failure mode ever shown to the user.
const AnswerUnavailable = "Xin lỗi, tôi không thể trả lời câu hỏi này."

// Literal markers some models leak into completions; stripped before the text
// is used anywhere.
var artifactMarkers = []string{
	"<|im_start|>",
	"<|im_end|>",
	"<|endoftext|>",
	"<s>",
	"</s>",
}

// GenerateOptions bounds one completion call. Zero values fall back to the
// configured defaults.
type GenerateOptions struct {
	Temperature *float64
	MaxTokens   int
	Timeout     time.Duration
}

// Completer is the narrow contract the pipeline has with the generative
// service: prompts in, cleaned text out, never an error.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts GenerateOptions) string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type LLMService struct {
	cfg        *config.OpenRouterConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewLLMService(cfg *config.OpenRouterConfig, logger *zap.Logger) *LLMService {
	// Per-call deadlines come from the request context; the client itself
	// carries the outer cap.
	return &LLMService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// Complete sends both prompts to the completion endpoint and returns cleaned
// text. Transport errors, non-success statuses and blank completions all
// collapse into the sentinel so the pipeline can keep moving.
func (s *LLMService) Complete(ctx context.Context, systemPrompt, userPrompt string, opts GenerateOptions) string {
	text, err := s.chat(ctx, systemPrompt, userPrompt, opts)
	if err != nil {
		s.logger.Warn("Completion failed", zap.Error(err))
		return AnswerUnavailable
	}

	text = strings.TrimSpace(stripArtifacts(text))
	if text == "" {
		s.logger.Warn("Completion returned blank text")
		return AnswerUnavailable
	}
	return text
}

func (s *LLMService) chat(ctx context.Context, systemPrompt, userPrompt string, opts GenerateOptions) (string, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = s.cfg.Timeout
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = s.cfg.MaxAnswerTokens
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   maxTokens,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := strings.TrimRight(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send chat request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion endpoint status %s: %s", resp.Status, string(bodyBytes))
	}

	var cr chatResponse
	if err := json.Unmarshal(bodyBytes, &cr); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return cr.Choices[0].Message.Content, nil
}

func stripArtifacts(text string) string {
	for _, marker := range artifactMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}
	return text
}
