package mocks

import (
	"context"

	"github.com/lrocha/leetboard/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockRosterRepository is a mock implementation of repository.RosterRepository
type MockRosterRepository struct {
	mock.Mock
}

func (m *MockRosterRepository) Get(ctx context.Context, id int64) (*models.Roster, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roster), args.Error(1)
}

func (m *MockRosterRepository) List(ctx context.Context, filter models.RosterFilter) ([]models.Roster, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Roster), args.Error(1)
}

func (m *MockRosterRepository) Count(ctx context.Context, filter models.RosterFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockRosterRepository) Create(ctx context.Context, name string, usernames []string) (*models.Roster, error) {
	args := m.Called(ctx, name, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roster), args.Error(1)
}

func (m *MockRosterRepository) Update(ctx context.Context, id int64, name string, usernames []string) (*models.Roster, error) {
	args := m.Called(ctx, id, name, usernames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Roster), args.Error(1)
}

func (m *MockRosterRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
