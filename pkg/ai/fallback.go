package ai

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
)

// FallbackService routes extraction to Gemini first (better quality) and
// falls back to Ollama (local, free) when Gemini fails.
type FallbackService struct {
	gemini Extractor
	ollama Extractor
}

// NewFallbackService creates a new fallback service; either provider may be nil.
func NewFallbackService(gemini, ollama Extractor) *FallbackService {
	return &FallbackService{
		gemini: gemini,
		ollama: ollama,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	return containsAny(err.Error(),
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"EOF",
	)
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	return containsAny(err.Error(),
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource exhausted",
		"RESOURCE_EXHAUSTED",
	)
}

func containsAny(s string, indicators ...string) bool {
	lower := strings.ToLower(s)
	for _, indicator := range indicators {
		if strings.Contains(lower, strings.ToLower(indicator)) {
			return true
		}
	}
	return false
}

// Analyze implements Extractor
func (f *FallbackService) Analyze(ctx context.Context, text string, receivedAt time.Time) (*alertdomain.ClassAlert, error) {
	if f.gemini != nil {
		result, err := f.gemini.Analyze(ctx, text, receivedAt)
		if err == nil {
			return result, nil
		}

		switch {
		case isQuotaError(err):
			log.Printf("[AI] Gemini quota exhausted: %v, falling back to Ollama", err)
		case isConnectionError(err):
			log.Printf("[AI] Gemini unreachable: %v, falling back to Ollama", err)
		default:
			log.Printf("[AI] Gemini error: %v, falling back to Ollama", err)
		}

		if f.ollama == nil {
			return nil, fmt.Errorf("gemini analysis failed: %w", err)
		}
	}

	if f.ollama != nil {
		result, err := f.ollama.Analyze(ctx, text, receivedAt)
		if err != nil {
			if isConnectionError(err) {
				log.Printf("[AI] Ollama connection failed: %v", err)
			}
			return nil, fmt.Errorf("ollama analysis failed: %w", err)
		}
		return result, nil
	}

	return nil, fmt.Errorf("no AI provider available for analysis")
}
