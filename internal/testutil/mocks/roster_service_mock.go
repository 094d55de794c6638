package mocks

import (
	"context"

	"github.com/lrocha/leetboard/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRosterService is a mock implementation of services.RosterService
type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) ListRosters(ctx context.Context, filter models.RosterFilter) ([]models.Roster, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.Roster), args.Int(1), args.Error(2)
}

func (m *MockRosterService) GetRoster(ctx context.Context, id int64) (*models.Roster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roster), args.Error(1)
}

func (m *MockRosterService) CreateRoster(ctx context.Context, name string, usernames []string) (*models.Roster, error) {
	args := m.Called(ctx, name, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roster), args.Error(1)
}

func (m *MockRosterService) UpdateRoster(ctx context.Context, id int64, name string, usernames []string) (*models.Roster, error) {
	args := m.Called(ctx, id, name, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roster), args.Error(1)
}

func (m *MockRosterService) DeleteRoster(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
