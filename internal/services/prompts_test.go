package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePromptsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPromptServiceLoadsFile(t *testing.T) {
	path := writePromptsFile(t, `[
		{"prompt": "What made you smile today?"},
		{"prompt": "Who are you grateful for?"}
	]`)

	s := NewPromptService(path)
	require.Equal(t, 2, s.Count())

	prompt := s.RandomPrompt()
	assert.Contains(t, []string{"What made you smile today?", "Who are you grateful for?"}, prompt)
}

func TestPromptServiceSkipsBlankPrompts(t *testing.T) {
	path := writePromptsFile(t, `[
		{"prompt": "A real prompt"},
		{"prompt": "   "},
		{"prompt": ""}
	]`)

	s := NewPromptService(path)
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, "A real prompt", s.RandomPrompt())
}

func TestPromptServiceMissingFile(t *testing.T) {
	s := NewPromptService(filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, PromptUnavailableMessage, s.RandomPrompt())
}

func TestPromptServiceMalformedFile(t *testing.T) {
	path := writePromptsFile(t, `{"not": "an array"}`)

	s := NewPromptService(path)
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, PromptUnavailableMessage, s.RandomPrompt())
}
