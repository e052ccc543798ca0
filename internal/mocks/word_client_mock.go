package mocks

import (
	"context"

	"github.com/phrazzld/scry-drill/internal/domain"
	"github.com/stretchr/testify/mock"
)

// TestifyMockWordClient is a mock of wordclient.Client for use with testify/mock
type TestifyMockWordClient struct {
	mock.Mock
}

// FetchBatch is a mock implementation of wordclient.Client.FetchBatch
func (m *TestifyMockWordClient) FetchBatch(ctx context.Context) (domain.Batch, error) {
	args := m.Called(ctx)
	if batch, ok := args.Get(0).(domain.Batch); ok {
		return batch, args.Error(1)
	}
	return domain.Batch{}, args.Error(1)
}

// SubmitAnswers is a mock implementation of wordclient.Client.SubmitAnswers
func (m *TestifyMockWordClient) SubmitAnswers(
	ctx context.Context,
	answers []domain.Answer,
) (domain.CommitResult, error) {
	args := m.Called(ctx, answers)
	if res, ok := args.Get(0).(domain.CommitResult); ok {
		return res, args.Error(1)
	}
	return domain.CommitResult{}, args.Error(1)
}
