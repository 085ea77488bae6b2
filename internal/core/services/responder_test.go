package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/converse-core/internal/core/ports/driving"
	"github.com/custodia-labs/converse-core/internal/index"
	"github.com/custodia-labs/converse-core/internal/runtime"
)

type assistantFixture struct {
	tenants   *mocks.MockTenantStore
	knowledge *mocks.MockKnowledgeStore
	records   *mocks.MockRecordStore
	embedder  *mocks.MockEmbeddingService
	llm       *mocks.MockLLMService
	cache     *index.Cache
	replies   domain.Replies
	svc       driving.AssistantService
}

func newAssistantFixture(timeout time.Duration) *assistantFixture {
	f := &assistantFixture{
		tenants:   mocks.NewMockTenantStore(),
		knowledge: mocks.NewMockKnowledgeStore(),
		records:   mocks.NewMockRecordStore(),
		embedder:  mocks.NewMockEmbeddingService(),
		llm:       mocks.NewMockLLMService(),
		cache:     index.NewCache(),
		replies:   domain.DefaultReplies("+1 555 0100"),
	}

	services := runtime.NewServices(domain.NewRuntimeConfig("redis"))
	services.SetEmbeddingService(f.embedder)
	services.SetLLMService(f.llm)

	f.svc = NewAssistantService(AssistantConfig{
		Resolver:  NewTenantResolver(f.tenants, "default", nil),
		Knowledge: f.knowledge,
		Records:   f.records,
		Cache:     f.cache,
		Services:  services,
		Generator: NewBoundedGenerator(services, nil),
		Replies:   f.replies,
		Timeout:   timeout,
	})
	return f
}

func TestHandleWhitespaceQueryShortCircuits(t *testing.T) {
	f := newAssistantFixture(time.Second)

	reply := f.svc.Handle(context.Background(), "wa:1001", "   \t\n ", time.Now())
	if reply != f.replies.EmptyQuery {
		t.Errorf("expected empty-query reply, got %q", reply)
	}
	// No search, no generation.
	if f.embedder.EmbedCalls() != 0 {
		t.Errorf("expected no embedding calls, got %d", f.embedder.EmbedCalls())
	}
	if f.llm.Calls() != 0 {
		t.Errorf("expected no LLM calls, got %d", f.llm.Calls())
	}
}

// Unknown sender + empty knowledge base: the tenant resolves to default,
// the index builds from the placeholder unit, and the placeholder passage
// (with its tenant marker) reaches the prompt.
func TestHandleUnknownSenderUsesPlaceholderIndex(t *testing.T) {
	f := newAssistantFixture(time.Second)
	f.llm.SetAnswer("hi there")

	reply := f.svc.Handle(context.Background(), "unknown-sender", "hello", time.Now())
	if reply != "hi there" {
		t.Fatalf("expected generated answer, got %q", reply)
	}
	if !strings.Contains(f.llm.LastPrompt(), "tenant=default") {
		t.Errorf("expected placeholder passage with tenant marker in prompt, got %q", f.llm.LastPrompt())
	}
}

func TestHandleUsesTenantKnowledge(t *testing.T) {
	f := newAssistantFixture(time.Second)
	_ = f.tenants.SetTenant(context.Background(), "wa:1001", "acme")
	_ = f.knowledge.Append(context.Background(), "acme", []domain.TextUnit{
		{Content: "Acme opens Monday to Friday"},
		{Content: "Acme bookings happen on the website"},
	})
	f.llm.SetAnswer("we open weekdays")

	reply := f.svc.Handle(context.Background(), "wa:1001", "when do you open?", time.Now())
	if reply != "we open weekdays" {
		t.Fatalf("expected generated answer, got %q", reply)
	}
	if !strings.Contains(f.llm.LastPrompt(), "Acme opens Monday to Friday") {
		t.Errorf("expected tenant knowledge in prompt, got %q", f.llm.LastPrompt())
	}
}

func TestHandleIdempotentAcrossCalls(t *testing.T) {
	f := newAssistantFixture(time.Second)
	f.llm.SetAnswer("stable answer")

	first := f.svc.Handle(context.Background(), "wa:1001", "hello", time.Now())
	firstPrompt := f.llm.LastPrompt()
	second := f.svc.Handle(context.Background(), "wa:1001", "hello", time.Now())
	secondPrompt := f.llm.LastPrompt()

	if first != second {
		t.Errorf("replies differ: %q vs %q", first, second)
	}
	if firstPrompt != secondPrompt {
		t.Errorf("retrieved context differs between identical calls")
	}
	// The corpus embeds once; the second call hits the cache.
	if f.embedder.EmbedCalls() != 1 {
		t.Errorf("expected 1 corpus embedding, got %d", f.embedder.EmbedCalls())
	}
}

func TestHandleGenerationTimeout(t *testing.T) {
	f := newAssistantFixture(50 * time.Millisecond)
	f.llm.SetDelay(2 * time.Second)

	start := time.Now()
	reply := f.svc.Handle(context.Background(), "wa:1001", "hello", time.Now())
	elapsed := time.Since(start)

	if reply != f.replies.Timeout {
		t.Errorf("expected timeout reply, got %q", reply)
	}
	if elapsed > 500*time.Millisecond {
		t.Errorf("call took %v, want about the timeout budget", elapsed)
	}
}

func TestHandleGenerationRateLimited(t *testing.T) {
	f := newAssistantFixture(time.Second)
	f.llm.SetError(errors.New("openai: rate limit exceeded"))

	reply := f.svc.Handle(context.Background(), "wa:1001", "hello", time.Now())
	if reply != f.replies.RateLimited {
		t.Errorf("expected rate-limited reply, got %q", reply)
	}
}

// Embedding down: the build fails, the reply is the fixed unavailable
// message, and the cache stays clean so recovery works on the next call.
func TestHandleIndexUnavailableThenRecovers(t *testing.T) {
	f := newAssistantFixture(time.Second)
	f.embedder.SetFailing(true)

	reply := f.svc.Handle(context.Background(), "wa:1001", "hello", time.Now())
	if reply != f.replies.Unavailable {
		t.Fatalf("expected unavailable reply, got %q", reply)
	}
	if !strings.Contains(reply, "+1 555 0100") {
		t.Errorf("expected support contact in unavailable reply")
	}
	if f.cache.Len() != 0 {
		t.Fatalf("failed build must not be cached")
	}

	// Embedding service comes back; the same sender now gets an answer.
	f.embedder.SetFailing(false)
	f.llm.SetAnswer("recovered")
	reply = f.svc.Handle(context.Background(), "wa:1001", "hello", time.Now())
	if reply != "recovered" {
		t.Errorf("expected recovery after embedding returns, got %q", reply)
	}
}

// Search failure after a successful build degrades the context to the
// fixed no-context string; generation still runs.
func TestHandleSearchFailureDegradesContext(t *testing.T) {
	f := newAssistantFixture(time.Second)
	f.llm.SetAnswer("answered anyway")

	// Warm the cache with a healthy embedder.
	if got := f.svc.Handle(context.Background(), "wa:1001", "hello", time.Now()); got != "answered anyway" {
		t.Fatalf("warm-up call failed: %q", got)
	}

	f.embedder.SetFailing(true)
	reply := f.svc.Handle(context.Background(), "wa:1001", "hello again", time.Now())
	if reply != "answered anyway" {
		t.Fatalf("expected generation despite search failure, got %q", reply)
	}
	if !strings.Contains(f.llm.LastPrompt(), f.replies.NoContext) {
		t.Errorf("expected degraded context in prompt, got %q", f.llm.LastPrompt())
	}
}

func TestHandleKnowledgeStoreFailureUsesPlaceholder(t *testing.T) {
	f := newAssistantFixture(time.Second)
	f.knowledge.SetError(errors.New("store down"))
	f.llm.SetAnswer("ok")

	reply := f.svc.Handle(context.Background(), "wa:1001", "hello", time.Now())
	if reply != "ok" {
		t.Fatalf("expected answer from placeholder index, got %q", reply)
	}
	if !strings.Contains(f.llm.LastPrompt(), "tenant=default") {
		t.Errorf("expected placeholder passage in prompt")
	}
}

// A nil collaborator panics inside the pipeline; the outer boundary turns
// it into the generic fallback rather than letting the caller crash.
func TestHandleRecoversPanicsIntoFallback(t *testing.T) {
	replies := domain.DefaultReplies("+1 555 0100")
	services := runtime.NewServices(domain.NewRuntimeConfig("redis"))
	svc := NewAssistantService(AssistantConfig{
		Resolver:  NewTenantResolver(mocks.NewMockTenantStore(), "default", nil),
		Cache:     nil, // forces a nil dereference in LoadingIndex
		Services:  services,
		Generator: NewBoundedGenerator(services, nil),
		Replies:   replies,
		Timeout:   time.Second,
	})

	reply := svc.Handle(context.Background(), "wa:1001", "hello", time.Now())
	if reply != replies.Fallback {
		t.Errorf("expected fallback reply from recovered panic, got %q", reply)
	}
}
