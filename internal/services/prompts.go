package services

import (
	"encoding/json"
	"log"
	"math/rand"
	"os"
	"strings"
)

// PromptUnavailableMessage is shown when no prompts could be loaded. The
// prompt operation degrades to this message rather than failing.
const PromptUnavailableMessage = "Could not load a prompt. Try refreshing the page."

// PromptService serves random writing prompts from a JSON file loaded once
// at construction. There is no hidden module-level cache; the loaded list
// lives for the lifetime of the service.
type PromptService struct {
	prompts []string
}

// NewPromptService loads the prompt file (an array of {"prompt": "..."}).
// Load failures leave the service with an empty list and are logged, not
// surfaced; RandomPrompt then degrades to a fixed message.
func NewPromptService(path string) *PromptService {
	s := &PromptService{}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("⚠️  WARNING: could not read prompts file %s: %v", path, err)
		return s
	}

	var raw []struct {
		Prompt string `json:"prompt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("⚠️  WARNING: could not parse prompts file %s: %v", path, err)
		return s
	}

	for _, p := range raw {
		if strings.TrimSpace(p.Prompt) != "" {
			s.prompts = append(s.prompts, p.Prompt)
		}
	}
	return s
}

// RandomPrompt returns a uniformly random prompt, or the degraded message
// when none are loaded. It never fails.
func (s *PromptService) RandomPrompt() string {
	if len(s.prompts) == 0 {
		return PromptUnavailableMessage
	}
	return s.prompts[rand.Intn(len(s.prompts))]
}

// Count reports how many prompts were loaded.
func (s *PromptService) Count() int {
	return len(s.prompts)
}
