package runtime

import (
	"context"
	"testing"

	"github.com/custodia-labs/converse-core/internal/core/domain"
	"github.com/custodia-labs/converse-core/internal/core/ports/driven/mocks"
)

func TestServicesStartEmpty(t *testing.T) {
	services := NewServices(domain.NewRuntimeConfig("redis"))

	if services.EmbeddingService() != nil {
		t.Error("expected nil embedding service before configuration")
	}
	if services.LLMService() != nil {
		t.Error("expected nil LLM service before configuration")
	}
	if services.Config().CanAnswer() {
		t.Error("expected CanAnswer to be false with no services")
	}
}

func TestSetEmbeddingServiceUpdatesFlags(t *testing.T) {
	services := NewServices(domain.NewRuntimeConfig("redis"))

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	if !services.Config().EmbeddingAvailable() {
		t.Error("expected embedding to be available")
	}

	services.SetEmbeddingService(nil)
	if services.Config().EmbeddingAvailable() {
		t.Error("expected embedding to be unavailable after clearing")
	}
}

func TestSetLLMServiceUpdatesFlags(t *testing.T) {
	services := NewServices(domain.NewRuntimeConfig("redis"))

	services.SetLLMService(mocks.NewMockLLMService())
	if !services.Config().LLMAvailable() {
		t.Error("expected LLM to be available")
	}
}

func TestCanAnswerNeedsBothServices(t *testing.T) {
	services := NewServices(domain.NewRuntimeConfig("redis"))

	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	if services.Config().CanAnswer() {
		t.Error("embedding alone must not be enough to answer")
	}

	services.SetLLMService(mocks.NewMockLLMService())
	if !services.Config().CanAnswer() {
		t.Error("expected CanAnswer with both services set")
	}
}

func TestValidateAndSetEmbeddingRejectsUnhealthy(t *testing.T) {
	services := NewServices(domain.NewRuntimeConfig("redis"))

	bad := mocks.NewMockEmbeddingService()
	bad.SetFailing(true)

	if err := services.ValidateAndSetEmbedding(context.Background(), bad); err == nil {
		t.Fatal("expected error for unhealthy embedding service")
	}
	if services.EmbeddingService() != nil {
		t.Error("unhealthy service must not be installed")
	}
}

func TestClose(t *testing.T) {
	services := NewServices(domain.NewRuntimeConfig("redis"))
	services.SetEmbeddingService(mocks.NewMockEmbeddingService())
	services.SetLLMService(mocks.NewMockLLMService())

	if err := services.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if services.EmbeddingService() != nil || services.LLMService() != nil {
		t.Error("expected services to be cleared after Close")
	}
	if services.Config().EmbeddingAvailable() || services.Config().LLMAvailable() {
		t.Error("expected capability flags cleared after Close")
	}
}
