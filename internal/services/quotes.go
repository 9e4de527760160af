package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"
)

// Quote is a gratitude quote shown on the today page and snapshotted onto
// entries at creation time.
type Quote struct {
	Content string `json:"content"`
	Author  string `json:"author"`
}

// fallbackQuotes is served whenever the quote API fails or times out. The
// quote operation never returns an error to callers.
var fallbackQuotes = []Quote{
	{Content: "Gratitude turns what we have into enough.", Author: "Anonymous"},
	{Content: "Gratitude is not only the greatest of virtues, but the parent of all others.", Author: "Cicero"},
	{Content: "The roots of all goodness lie in the soil of appreciation for goodness.", Author: "Dalai Lama"},
	{Content: "Acknowledging the good that you already have in your life is the foundation for all abundance.", Author: "Eckhart Tolle"},
	{Content: "When you are grateful, fear disappears and abundance appears.", Author: "Tony Robbins"},
	{Content: "Gratitude makes sense of our past, brings peace for today, and creates a vision for tomorrow.", Author: "Melody Beattie"},
	{Content: "Enjoy the little things, for one day you may look back and realize they were the big things.", Author: "Robert Brault"},
	{Content: "Gratitude is the healthiest of all human emotions.", Author: "Zig Ziglar"},
}

// QuoteService fetches the daily quote from an external API with a bounded
// wait, caching the result in Redis for the rest of the day.
type QuoteService struct {
	apiURL string
	client *http.Client
}

// NewQuoteService builds a quote service. timeout bounds the whole fetch;
// on expiry the service falls back instead of surfacing an error.
func NewQuoteService(apiURL string, timeout time.Duration) *QuoteService {
	return &QuoteService{
		apiURL: apiURL,
		client: &http.Client{Timeout: timeout},
	}
}

// DailyQuote returns today's quote: cached value if present, else a fresh
// fetch, else a random built-in fallback. It never fails.
func (s *QuoteService) DailyQuote(ctx context.Context) Quote {
	cacheKey := "quote:" + time.Now().UTC().Format("2006-01-02")

	var cached Quote
	if ok, _ := Cache.Get(ctx, cacheKey, &cached); ok && cached.Content != "" {
		return cached
	}

	quote, err := s.fetchQuote(ctx)
	if err != nil {
		return FallbackQuote()
	}

	// Cache failures are ignored; tomorrow's key is a new one either way.
	_ = Cache.Set(ctx, cacheKey, quote, untilEndOfDay())
	return *quote
}

// FallbackQuote picks one of the built-in quotes uniformly at random.
func FallbackQuote() Quote {
	return fallbackQuotes[rand.Intn(len(fallbackQuotes))]
}

func (s *QuoteService) fetchQuote(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote API returned %d", resp.StatusCode)
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, err
	}
	if quote.Content == "" {
		return nil, fmt.Errorf("quote API returned empty content")
	}
	if quote.Author == "" {
		quote.Author = "Unknown"
	}
	return &quote, nil
}

func untilEndOfDay() time.Duration {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return midnight.Sub(now)
}
