package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ShiKuZena/ChatBot-APP/pkg/config"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Domain terms that mark a query as library-related. Substring containment
// against the lower-cased query, deliberately not token matching, so
// inflected Vietnamese phrases still hit.
var topicKeywords = []string{
	"thư viện",
	"mở cửa",
	"giờ",
	"sách",
	"mượn",
	"trả sách",
	"thẻ",
	"phòng đọc",
	"library",
	"book",
	"borrow",
	"open",
	"hours",
}

// ContextSource supplies best-effort reference text for the contextual tier.
type ContextSource interface {
	TopicRelevant(query string) bool
	FetchContext(ctx context.Context) string
}

type ContextFetcher struct {
	cfg        *config.ContextConfig
	httpClient *http.Client
	cache      *lru.Cache
	logger     *zap.Logger
}

func NewContextFetcher(cfg *config.ContextConfig, logger *zap.Logger) *ContextFetcher {
	// Single source today, but the cache keys by URL so more sources are a
	// config change away.
	cache, _ := lru.New(8)
	return &ContextFetcher{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
		cache:      cache,
		logger:     logger,
	}
}

func (f *ContextFetcher) TopicRelevant(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range topicKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

type cachedPage struct {
	text      string
	fetchedAt time.Time
}

// FetchContext retrieves the configured reference page, strips markup down to
// visible text and caps the result. Returns "" on any failure; the absence of
// context must never block escalation.
func (f *ContextFetcher) FetchContext(ctx context.Context) string {
	if f.cfg.SourceURL == "" {
		return ""
	}

	if v, ok := f.cache.Get(f.cfg.SourceURL); ok {
		page := v.(cachedPage)
		if time.Since(page.fetchedAt) < f.cfg.CacheTTL {
			return page.text
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.cfg.SourceURL, nil)
	if err != nil {
		f.logger.Warn("Failed to build context request", zap.Error(err))
		return ""
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn("Context fetch failed", zap.String("url", f.cfg.SourceURL), zap.Error(err))
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.logger.Warn("Context source returned non-success status",
			zap.String("url", f.cfg.SourceURL),
			zap.Int("status", resp.StatusCode),
		)
		return ""
	}

	text := visibleText(resp.Body)
	if len(text) > f.cfg.MaxChars {
		text = text[:f.cfg.MaxChars]
	}

	f.cache.Add(f.cfg.SourceURL, cachedPage{text: text, fetchedAt: time.Now()})

	f.logger.Debug("Context fetched", zap.Int("chars", len(text)))
	return text
}

// visibleText walks the HTML token stream collecting text nodes, skipping
// script/style subtrees, and collapses runs of whitespace.
func visibleText(r io.Reader) string {
	z := html.NewTokenizer(r)
	var b strings.Builder
	skipDepth := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style", "noscript":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}
