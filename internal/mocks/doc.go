// Package mocks provides shared test doubles for the drill packages.
//
// Two styles are available for the word client:
//
//   - MockWordClient takes per-method function fields and records every
//     call, for tests that script a sequence of responses.
//   - TestifyMockWordClient embeds testify's mock.Mock, for tests that
//     assert expectations with On/AssertExpectations.
//
// Usage:
//
//	client := &mocks.MockWordClient{
//	    FetchBatchFn: func(ctx context.Context) (domain.Batch, error) {
//	        return domain.Batch{Learn: words}, nil
//	    },
//	}
//	session := drill.NewSession(client, drill.Options{})
package mocks
