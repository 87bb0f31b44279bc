package ai

import (
	"fmt"
	"log"
	"time"

	"redalert-backend/pkg/breaker"
	"redalert-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "ollama" or "auto"

	// Gemini config
	GeminiAPIKey string
	GeminiModel  string

	// Ollama config; the getters return the current runtime settings
	OllamaBaseURL func() string
	OllamaModel   func() string

	Location *time.Location
	Breaker  *breaker.Breaker
}

// NewExtractor builds the provider chain selected by cfg.Provider and puts it
// behind the breaker. Switch AI provider by changing cfg.Provider.
func NewExtractor(cfg Config) (Extractor, error) {
	var ollama Extractor
	if cfg.OllamaBaseURL != nil && cfg.OllamaModel != nil {
		ollama = NewPromptExtractor("Ollama", NewOllamaServiceWithGetters(cfg.OllamaBaseURL, cfg.OllamaModel), cfg.Location)
	} else {
		ollama = NewPromptExtractor("Ollama", NewOllamaService("", ""), cfg.Location)
	}

	var geminiExtractor Extractor
	if cfg.GeminiAPIKey != "" {
		geminiExtractor = NewPromptExtractor("Gemini", gemini.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel), cfg.Location)
	}

	var chain Extractor
	switch cfg.Provider {
	case ProviderGemini:
		if geminiExtractor == nil {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		chain = geminiExtractor

	case ProviderOllama:
		chain = ollama

	default:
		// Gemini first when a key is configured, Ollama as the fallback
		chain = NewFallbackService(geminiExtractor, ollama)
	}

	cb := cfg.Breaker
	if cb == nil {
		cb = breaker.New("ai", 5, time.Minute)
	}
	log.Printf("[AI] Extractor ready (provider=%s, gemini=%t)", providerName(cfg.Provider), geminiExtractor != nil)
	return NewGuardedExtractor(chain, cb), nil
}

func providerName(p ProviderType) string {
	if p == "" {
		return string(ProviderAuto)
	}
	return string(p)
}
