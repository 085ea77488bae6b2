package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/runtime"
)

// BoundedGenerator invokes the language model under a hard wall-clock
// deadline and classifies failures into a small set of outcomes.
// The deadline bounds the caller's wait, not the provider call: a call
// that completes after the deadline delivers into a buffered channel and
// its result is discarded, so it can never corrupt shared state.
type BoundedGenerator struct {
	services *runtime.Services
	logger   *slog.Logger
}

// NewBoundedGenerator creates a BoundedGenerator reading the current LLM
// service from the runtime registry on every call.
func NewBoundedGenerator(services *runtime.Services, logger *slog.Logger) *BoundedGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoundedGenerator{
		services: services,
		logger:   logger,
	}
}

type generationResult struct {
	answer string
	err    error
}

// Generate runs the model call with the given timeout and returns a tagged
// outcome. It never returns an error: failures map to non-success kinds.
func (g *BoundedGenerator) Generate(ctx context.Context, prompt string, timeout time.Duration) domain.Outcome {
	llm := g.services.LLMService()
	if llm == nil {
		g.logger.Warn("no LLM service configured")
		return domain.Outcome{Kind: domain.OutcomeUnknown}
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so a late completion can always deliver and the goroutine
	// never leaks; nobody reads the value after the deadline fires.
	resultCh := make(chan generationResult, 1)
	go func() {
		answer, err := llm.Complete(callCtx, prompt)
		resultCh <- generationResult{answer: answer, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				return domain.Outcome{Kind: domain.OutcomeTimeout}
			}
			kind := domain.ClassifyGenerationError(res.err)
			g.logger.Error("generation failed", "kind", kind, "model", llm.Model(), "error", res.err)
			return domain.Outcome{Kind: kind}
		}
		return domain.Success(res.answer)

	case <-callCtx.Done():
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			g.logger.Warn("generation timed out", "timeout", timeout, "model", llm.Model())
			return domain.Outcome{Kind: domain.OutcomeTimeout}
		}
		// Caller canceled; there is no fixed reply for this, the caller
		// is already gone.
		return domain.Outcome{Kind: domain.OutcomeUnknown}
	}
}
