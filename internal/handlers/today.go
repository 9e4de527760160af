package handlers

import (
	"net/http"

	"github.com/gratia-app/gratia-backend/internal/services"
)

var (
	quoteService  *services.QuoteService
	promptService *services.PromptService
)

// InitProviderServices wires the quote and prompt providers constructed at
// startup into the today handlers.
func InitProviderServices(quotes *services.QuoteService, prompts *services.PromptService) {
	quoteService = quotes
	promptService = prompts
}

type QuoteResponse struct {
	Success bool           `json:"success"`
	Quote   services.Quote `json:"quote"`
}

type PromptResponse struct {
	Success bool   `json:"success"`
	Prompt  string `json:"prompt"`
}

// GetDailyQuote returns today's quote. Provider failures are absorbed by the
// fallback set, so this always answers 200.
func GetDailyQuote(w http.ResponseWriter, r *http.Request) {
	if quoteService == nil {
		writeJSON(w, http.StatusOK, QuoteResponse{Success: true, Quote: services.FallbackQuote()})
		return
	}
	writeJSON(w, http.StatusOK, QuoteResponse{Success: true, Quote: quoteService.DailyQuote(r.Context())})
}

// GetRandomPrompt returns a random writing prompt, degrading to a fixed
// message when no prompts are loaded. Always 200.
func GetRandomPrompt(w http.ResponseWriter, r *http.Request) {
	prompt := services.PromptUnavailableMessage
	if promptService != nil {
		prompt = promptService.RandomPrompt()
	}
	writeJSON(w, http.StatusOK, PromptResponse{Success: true, Prompt: prompt})
}
