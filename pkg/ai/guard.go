package ai

import (
	"context"
	"log"
	"time"

	alertdomain "redalert-backend/internal/alert/domain"
	"redalert-backend/pkg/breaker"
)

// GuardedExtractor puts an Extractor behind a circuit breaker. Any backend
// failure, including an open breaker, is reported as "no event". A done
// context is returned as an error instead and never trips the breaker.
type GuardedExtractor struct {
	inner   Extractor
	breaker *breaker.Breaker
}

// NewGuardedExtractor wraps inner with cb.
func NewGuardedExtractor(inner Extractor, cb *breaker.Breaker) *GuardedExtractor {
	return &GuardedExtractor{inner: inner, breaker: cb}
}

// Analyze implements Extractor. It only returns an error when ctx is done.
func (g *GuardedExtractor) Analyze(ctx context.Context, text string, receivedAt time.Time) (*alertdomain.ClassAlert, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var alert *alertdomain.ClassAlert
	err := g.breaker.ExecuteContext(ctx, func() error {
		var err error
		alert, err = g.inner.Analyze(ctx, text, receivedAt)
		return err
	})
	if err == nil {
		return alert, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	log.Printf("[AI] Analysis unavailable, treating as no event: %v", err)
	return nil, nil
}
