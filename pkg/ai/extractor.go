package ai

import (
	"context"
	"errors"
	"log"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
)

// PromptExtractor runs the extraction prompt against one TextGenerator.
// Transport errors are returned; unreadable replies become absence.
type PromptExtractor struct {
	name string
	gen  TextGenerator
	loc  *time.Location
}

// NewPromptExtractor creates an extractor named after its provider.
func NewPromptExtractor(name string, gen TextGenerator, loc *time.Location) *PromptExtractor {
	if loc == nil {
		loc = time.UTC
	}
	return &PromptExtractor{name: name, gen: gen, loc: loc}
}

// Analyze implements Extractor
func (p *PromptExtractor) Analyze(ctx context.Context, text string, receivedAt time.Time) (*alertdomain.ClassAlert, error) {
	log.Printf("[AI] Sending email to %s for analysis (reference date %s)", p.name, receivedAt.In(p.loc).Format(time.RFC3339))

	reply, err := p.gen.GenerateContent(ctx, BuildPrompt(text, receivedAt, p.loc))
	if err != nil {
		return nil, err
	}

	alert, err := ParseExtraction(reply, p.loc)
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			log.Printf("[AI] %s returned an unusable reply, treating as no event: %v", p.name, err)
			return nil, nil
		}
		return nil, err
	}
	if alert == nil {
		log.Printf("[AI] %s found no event", p.name)
	}
	return alert, nil
}
