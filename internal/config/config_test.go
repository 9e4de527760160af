package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "https://www.gratia.app", want: []string{"https://www.gratia.app"}},
		{
			name: "multiple with spaces",
			in:   "https://www.gratia.app, http://localhost:3000",
			want: []string{"https://www.gratia.app", "http://localhost:3000"},
		},
		{name: "skips empty items", in: ",https://www.gratia.app,,", want: []string{"https://www.gratia.app"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOrigins(tt.in))
		})
	}
}

func TestLoadAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://www.gratia.app,https://gratia.app")

	cfg := Load()
	assert.Equal(t, []string{"https://www.gratia.app", "https://gratia.app"}, cfg.AllowedOrigins)
}

func TestLoadFallsBackToFrontendURL(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "http://localhost:5173")
	t.Setenv("FRONTEND_URL_2", "")

	cfg := Load()
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENV", "Production ")
	assert.True(t, Load().IsProduction())

	t.Setenv("ENV", "development")
	assert.False(t, Load().IsProduction())
}

func TestQuoteTimeout(t *testing.T) {
	t.Setenv("QUOTE_TIMEOUT_SECONDS", "")
	assert.Equal(t, 3*time.Second, Load().QuoteTimeout)

	t.Setenv("QUOTE_TIMEOUT_SECONDS", "5")
	assert.Equal(t, 5*time.Second, Load().QuoteTimeout)

	t.Setenv("QUOTE_TIMEOUT_SECONDS", "not-a-number")
	assert.Equal(t, 3*time.Second, Load().QuoteTimeout)
}
