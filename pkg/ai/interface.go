package ai

import (
	"context"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
)

// Extractor turns email text into an optional event alert.
// A nil alert with a nil error means no event was found.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type Extractor interface {
	Analyze(ctx context.Context, text string, receivedAt time.Time) (*alertdomain.ClassAlert, error)
}

// TextGenerator sends a prompt to a language model and returns its raw reply.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
