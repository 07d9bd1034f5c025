package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ShiKuZena/ChatBot-APP/pkg/config"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fetcherConfig(url string) *config.ContextConfig {
	return &config.ContextConfig{
		SourceURL:    url,
		MaxChars:     4000,
		FetchTimeout: 2 * time.Second,
		CacheTTL:     time.Minute,
	}
}

func TestContextFetcher_TopicRelevant(t *testing.T) {
	f := NewContextFetcher(fetcherConfig(""), zap.NewNop())

	tests := []struct {
		query string
		want  bool
	}{
		{"Thư viện mở cửa lúc nào?", true},
		{"GIỜ MỞ CỬA", true},
		{"where can I borrow a book", true},
		{"what is the weather today", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := f.TopicRelevant(tt.query); got != tt.want {
			t.Errorf("TopicRelevant(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestContextFetcher_StripsMarkup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`<html><head><style>body{color:red}</style><script>alert(1)</script></head>` +
			`<body><h1>Giờ   mở cửa</h1><p>8h - 17h</p></body></html>`))
	}))
	defer srv.Close()

	f := NewContextFetcher(fetcherConfig(srv.URL), zap.NewNop())
	got := f.FetchContext(context.Background())

	require.Equal(t, "Giờ mở cửa 8h - 17h", got)
}

func TestContextFetcher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewContextFetcher(fetcherConfig(srv.URL), zap.NewNop())

	require.Empty(t, f.FetchContext(context.Background()))
}

func TestContextFetcher_UnreachableSource(t *testing.T) {
	f := NewContextFetcher(fetcherConfig("http://127.0.0.1:1"), zap.NewNop())

	require.Empty(t, f.FetchContext(context.Background()))
}

func TestContextFetcher_NoSourceConfigured(t *testing.T) {
	f := NewContextFetcher(fetcherConfig(""), zap.NewNop())

	require.Empty(t, f.FetchContext(context.Background()))
}

func TestContextFetcher_CapsLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<body>aaaaaaaaaaaaaaaaaaaa</body>"))
	}))
	defer srv.Close()

	cfg := fetcherConfig(srv.URL)
	cfg.MaxChars = 5
	f := NewContextFetcher(cfg, zap.NewNop())

	require.Equal(t, "aaaaa", f.FetchContext(context.Background()))
}

func TestContextFetcher_CachesWithinTTL(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		w.Write([]byte("<body>cached page</body>"))
	}))
	defer srv.Close()

	f := NewContextFetcher(fetcherConfig(srv.URL), zap.NewNop())

	first := f.FetchContext(context.Background())
	second := f.FetchContext(context.Background())

	require.Equal(t, first, second)
	require.Equal(t, 1, requests)
}
