package mocks

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// MockEmbeddingService is a mock implementation of EmbeddingService for
// testing. Embeddings are deterministic per input text, so identical
// queries always land in the same spot of the vector space.
type MockEmbeddingService struct {
	mu         sync.Mutex
	dimensions int
	model      string
	failing    bool
	embedCalls atomic.Int64
}

// NewMockEmbeddingService creates a new MockEmbeddingService
func NewMockEmbeddingService() *MockEmbeddingService {
	return &MockEmbeddingService{
		dimensions: 384,
		model:      "mock-embedding-model",
	}
}

func (m *MockEmbeddingService) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	m.embedCalls.Add(1)
	if err := m.checkFailing(); err != nil {
		return nil, err
	}

	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.generateEmbedding(text)
	}
	return result, nil
}

func (m *MockEmbeddingService) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	if err := m.checkFailing(); err != nil {
		return nil, err
	}
	return m.generateEmbedding(query), nil
}

func (m *MockEmbeddingService) Dimensions() int {
	return m.dimensions
}

func (m *MockEmbeddingService) Model() string {
	return m.model
}

func (m *MockEmbeddingService) HealthCheck(ctx context.Context) error {
	return m.checkFailing()
}

func (m *MockEmbeddingService) Close() error {
	return nil
}

func (m *MockEmbeddingService) checkFailing() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return context.DeadlineExceeded
	}
	return nil
}

// generateEmbedding generates a deterministic embedding based on text hash
func (m *MockEmbeddingService) generateEmbedding(text string) []float32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	seed := h.Sum32()

	embedding := make([]float32, m.dimensions)
	for i := range embedding {
		// Deterministic pseudo-random values
		seed = seed*1103515245 + 12345
		embedding[i] = float32(seed%1000) / 1000.0
	}
	return embedding
}

// Helper methods for testing

// SetFailing makes every call fail (or succeed again) until changed.
func (m *MockEmbeddingService) SetFailing(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = fail
}

// EmbedCalls returns how many times Embed was invoked.
func (m *MockEmbeddingService) EmbedCalls() int64 {
	return m.embedCalls.Load()
}
