package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven"
	"github.com/custodia-labs/converse-core/internal/core/ports/driving"
	"github.com/custodia-labs/converse-core/internal/index"
	"github.com/custodia-labs/converse-core/internal/runtime"
)

// topK is the number of context passages retrieved per query.
const topK = 3

// Ensure assistantService implements AssistantService
var _ driving.AssistantService = (*assistantService)(nil)

// assistantService orchestrates the retrieval-and-generation pipeline:
// resolve tenant, load or build that tenant's index, retrieve context,
// generate a bounded answer. Every failure mode maps to a fixed reply;
// callers never see an error.
type assistantService struct {
	resolver  *TenantResolver
	knowledge driven.KnowledgeStore
	records   driven.RecordStore
	cache     *index.Cache
	services  *runtime.Services
	generator *BoundedGenerator
	replies   domain.Replies
	timeout   time.Duration
	logger    *slog.Logger
}

// AssistantConfig wires the assistant service's collaborators.
type AssistantConfig struct {
	Resolver  *TenantResolver
	Knowledge driven.KnowledgeStore
	Records   driven.RecordStore
	Cache     *index.Cache
	Services  *runtime.Services
	Generator *BoundedGenerator
	Replies   domain.Replies
	Timeout   time.Duration
	Logger    *slog.Logger
}

// NewAssistantService creates the assistant pipeline service.
func NewAssistantService(cfg AssistantConfig) driving.AssistantService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &assistantService{
		resolver:  cfg.Resolver,
		knowledge: cfg.Knowledge,
		records:   cfg.Records,
		cache:     cfg.Cache,
		services:  cfg.Services,
		generator: cfg.Generator,
		replies:   cfg.Replies,
		timeout:   timeout,
		logger:    logger,
	}
}

// Handle answers a user utterance. It always returns reply text; any
// panic anywhere in the pipeline is recovered into the generic fallback
// so the end user never sees a raw failure or silence.
func (s *assistantService) Handle(ctx context.Context, senderID, query string, _ time.Time) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in assistant pipeline", "panic", r)
			reply = s.replies.Fallback
		}
	}()

	query = strings.TrimSpace(query)
	if query == "" {
		return s.replies.EmptyQuery
	}

	tenant := s.resolver.Resolve(ctx, senderID)

	ix, err := s.cache.GetOrBuild(ctx, tenant, s.buildIndex(tenant))
	if err != nil {
		s.logger.Error("tenant index unavailable", "tenant", tenant, "error", err)
		return s.replies.Unavailable
	}

	contextText := s.searchContext(ctx, ix, tenant, query)

	outcome := s.generator.Generate(ctx, composePrompt(query, contextText), s.timeout)
	if outcome.Kind != domain.OutcomeSuccess {
		return s.replies.ForOutcome(outcome.Kind)
	}
	return outcome.Answer
}

// buildIndex returns the build function the cache runs on first access for
// a tenant. Knowledge units come from the knowledge store; a tenant with
// no content yet gets the single placeholder unit so the index is never
// empty.
func (s *assistantService) buildIndex(tenant string) index.BuildFunc {
	return func(ctx context.Context) (*index.Index, error) {
		embedder := s.services.EmbeddingService()
		if embedder == nil {
			return nil, domain.ErrServiceUnavailable
		}
		return index.Build(ctx, embedder, s.loadUnits(ctx, tenant))
	}
}

func (s *assistantService) loadUnits(ctx context.Context, tenant string) []domain.TextUnit {
	if s.knowledge != nil {
		units, err := s.knowledge.Units(ctx, tenant)
		if err != nil {
			s.logger.Warn("knowledge store unavailable, using placeholder", "tenant", tenant, "error", err)
		} else if len(units) > 0 {
			return units
		}
	}
	return []domain.TextUnit{domain.PlaceholderUnit(tenant)}
}

// searchContext retrieves the top passages for the query. A search failure
// degrades to the fixed no-context string; generation still proceeds.
func (s *assistantService) searchContext(ctx context.Context, ix *index.Index, tenant, query string) string {
	hits, err := ix.Search(ctx, query, topK)
	if err != nil {
		s.logger.Error("search failed, degrading context", "tenant", tenant, "error", err)
		return s.replies.NoContext
	}
	if len(hits) == 0 {
		return s.replies.NoContext
	}

	passages := make([]string, len(hits))
	for i, h := range hits {
		passages[i] = h.Unit.Content
	}
	return strings.Join(passages, "\n")
}

func composePrompt(query, contextText string) string {
	var b strings.Builder
	b.WriteString("Answer the user's question using only the context below.\n\n")
	b.WriteString("Context:\n")
	b.WriteString(contextText)
	b.WriteString("\n\nQuestion: ")
	b.WriteString(query)
	return b.String()
}
