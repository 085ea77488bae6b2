package mocks

import (
	"context"
	"sync"
	"time"
)

// MockLLMService is a mock implementation of LLMService for testing.
// It can answer with a fixed string, delay to trip caller deadlines, or
// fail with a scripted error.
type MockLLMService struct {
	mu         sync.Mutex
	answer     string
	delay      time.Duration
	err        error
	calls      int
	lastPrompt string
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{
		answer: "mock answer",
	}
}

func (m *MockLLMService) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	answer, delay, err := m.answer, m.delay, m.err
	m.calls++
	m.lastPrompt = prompt
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	return answer, nil
}

func (m *MockLLMService) Model() string {
	return "mock-llm-model"
}

func (m *MockLLMService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockLLMService) Close() error {
	return nil
}

// Helper methods for testing

// SetAnswer sets the fixed completion text.
func (m *MockLLMService) SetAnswer(answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answer = answer
}

// SetDelay makes Complete sleep before answering.
func (m *MockLLMService) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// SetError makes Complete fail with err.
func (m *MockLLMService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Complete was invoked.
func (m *MockLLMService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt passed to the most recent Complete call.
func (m *MockLLMService) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastPrompt
}
