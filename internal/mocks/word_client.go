package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/scry-drill/internal/domain"
)

// MockWordClient implements wordclient.Client for testing.
type MockWordClient struct {
	// Custom behavior functions
	FetchBatchFn    func(ctx context.Context) (domain.Batch, error)
	SubmitAnswersFn func(ctx context.Context, answers []domain.Answer) (domain.CommitResult, error)

	// Default response values
	Batch  domain.Batch
	Result domain.CommitResult
	Err    error

	mu           sync.Mutex
	fetchCalls   int
	submitCalls  [][]domain.Answer
	lastContexts []context.Context
}

// NewMockWordClient creates a MockWordClient configured by opts.
func NewMockWordClient(opts ...MockOption) *MockWordClient {
	m := &MockWordClient{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FetchBatch implements wordclient.Client.
func (m *MockWordClient) FetchBatch(ctx context.Context) (domain.Batch, error) {
	m.mu.Lock()
	m.fetchCalls++
	m.lastContexts = append(m.lastContexts, ctx)
	m.mu.Unlock()

	if m.FetchBatchFn != nil {
		return m.FetchBatchFn(ctx)
	}
	return m.Batch, m.Err
}

// SubmitAnswers implements wordclient.Client. The answers are recorded as a
// copy so later changes by the caller do not affect assertions.
func (m *MockWordClient) SubmitAnswers(
	ctx context.Context,
	answers []domain.Answer,
) (domain.CommitResult, error) {
	recorded := make([]domain.Answer, len(answers))
	copy(recorded, answers)

	m.mu.Lock()
	m.submitCalls = append(m.submitCalls, recorded)
	m.lastContexts = append(m.lastContexts, ctx)
	m.mu.Unlock()

	if m.SubmitAnswersFn != nil {
		return m.SubmitAnswersFn(ctx, answers)
	}
	return m.Result, m.Err
}

// FetchCalls returns how often FetchBatch was called.
func (m *MockWordClient) FetchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

// SubmitCalls returns the answers of every SubmitAnswers call in order.
func (m *MockWordClient) SubmitCalls() [][]domain.Answer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]domain.Answer, len(m.submitCalls))
	copy(out, m.submitCalls)
	return out
}

// Reset clears the call tracking state
func (m *MockWordClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls = 0
	m.submitCalls = nil
	m.lastContexts = nil
}

// MockOption configures a MockWordClient
type MockOption func(*MockWordClient)

// WithBatch sets the default batch returned by FetchBatch
func WithBatch(batch domain.Batch) MockOption {
	return func(m *MockWordClient) {
		m.Batch = batch
	}
}

// WithResult sets the default result returned by SubmitAnswers
func WithResult(result domain.CommitResult) MockOption {
	return func(m *MockWordClient) {
		m.Result = result
	}
}

// WithError sets the default error returned by both methods
func WithError(err error) MockOption {
	return func(m *MockWordClient) {
		m.Err = err
	}
}

// WithFetchBatchFn sets a custom function for FetchBatch
func WithFetchBatchFn(fn func(ctx context.Context) (domain.Batch, error)) MockOption {
	return func(m *MockWordClient) {
		m.FetchBatchFn = fn
	}
}

// WithSubmitAnswersFn sets a custom function for SubmitAnswers
func WithSubmitAnswersFn(
	fn func(ctx context.Context, answers []domain.Answer) (domain.CommitResult, error),
) MockOption {
	return func(m *MockWordClient) {
		m.SubmitAnswersFn = fn
	}
}
