package mocks

import (
	"context"

	"github.com/lrocha/leetboard/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStatsService is a mock implementation of services.StatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) FetchOne(ctx context.Context, username string) models.ProfileRecord {
	args := m.Called(ctx, username)
	return args.Get(0).(models.ProfileRecord)
}

func (m *MockStatsService) FetchAll(ctx context.Context, usernames []string) []models.ProfileRecord {
	args := m.Called(ctx, usernames)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.ProfileRecord)
}
