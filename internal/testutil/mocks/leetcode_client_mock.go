package mocks

import (
	"context"

	"github.com/lrocha/leetboard/internal/leetcode"
	"github.com/stretchr/testify/mock"
)

// MockLeetCodeClient is a mock implementation of leetcode.ClientInterface
type MockLeetCodeClient struct {
	mock.Mock
}

func (m *MockLeetCodeClient) FetchProfile(ctx context.Context, username string) (*leetcode.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*leetcode.Profile), args.Error(1)
}
