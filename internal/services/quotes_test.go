package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isFallbackQuote(q Quote) bool {
	for _, fallback := range fallbackQuotes {
		if q == fallback {
			return true
		}
	}
	return false
}

func TestDailyQuoteFromAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":"Be thankful for what you have.","author":"Oprah Winfrey"}`))
	}))
	defer srv.Close()

	s := NewQuoteService(srv.URL, time.Second)
	quote := s.DailyQuote(context.Background())

	assert.Equal(t, "Be thankful for what you have.", quote.Content)
	assert.Equal(t, "Oprah Winfrey", quote.Author)
}

func TestDailyQuoteDefaultsMissingAuthor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"content":"Count your blessings."}`))
	}))
	defer srv.Close()

	s := NewQuoteService(srv.URL, time.Second)
	quote := s.DailyQuote(context.Background())

	assert.Equal(t, "Count your blessings.", quote.Content)
	assert.Equal(t, "Unknown", quote.Author)
}

func TestDailyQuoteFallbackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"content":"too late","author":"nobody"}`))
	}))
	defer srv.Close()

	s := NewQuoteService(srv.URL, 20*time.Millisecond)
	quote := s.DailyQuote(context.Background())

	require.NotEmpty(t, quote.Content)
	assert.True(t, isFallbackQuote(quote), "expected a built-in fallback quote, got %+v", quote)
}

func TestDailyQuoteFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewQuoteService(srv.URL, time.Second)
	quote := s.DailyQuote(context.Background())

	assert.True(t, isFallbackQuote(quote))
}

func TestDailyQuoteFallbackOnBadPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"content":`},
		{name: "empty content", body: `{"content":"","author":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s := NewQuoteService(srv.URL, time.Second)
			assert.True(t, isFallbackQuote(s.DailyQuote(context.Background())))
		})
	}
}

func TestDailyQuoteFallbackOnUnreachableAPI(t *testing.T) {
	s := NewQuoteService("http://127.0.0.1:1", 100*time.Millisecond)
	assert.True(t, isFallbackQuote(s.DailyQuote(context.Background())))
}
