package services

import (
	"context"
	"database/sql"

	"github.com/lrocha/leetboard/internal/errors"
	"github.com/lrocha/leetboard/internal/logger"
	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/repository"
)

// RosterService handles saved username lists.
type RosterService interface {
	ListRosters(ctx context.Context, filter models.RosterFilter) ([]models.Roster, int, error)
	GetRoster(ctx context.Context, id int64) (*models.Roster, error)
	CreateRoster(ctx context.Context, name string, usernames []string) (*models.Roster, error)
	UpdateRoster(ctx context.Context, id int64, name string, usernames []string) (*models.Roster, error)
	DeleteRoster(ctx context.Context, id int64) error
}

type rosterService struct {
	rosterRepo repository.RosterRepository
}

// NewRosterService creates a new RosterService
func NewRosterService(rosterRepo repository.RosterRepository) RosterService {
	return &rosterService{rosterRepo: rosterRepo}
}

func (s *rosterService) ListRosters(ctx context.Context, filter models.RosterFilter) ([]models.Roster, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing rosters")

	rosters, err := s.rosterRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list rosters: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	total, err := s.rosterRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count rosters: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return rosters, total, nil
}

func (s *rosterService) GetRoster(ctx context.Context, id int64) (*models.Roster, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting roster: id=%d", id)

	roster, err := s.rosterRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get roster: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if roster == nil {
		return nil, errors.NewNotFoundError("roster", id)
	}

	return roster, nil
}

func (s *rosterService) CreateRoster(ctx context.Context, name string, usernames []string) (*models.Roster, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating roster: name=%s, members=%d", name, len(usernames))

	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if len(usernames) == 0 {
		return nil, errors.NewValidationError("usernames", "cannot be empty")
	}

	roster, err := s.rosterRepo.Create(ctx, name, usernames)
	if err != nil {
		if err == repository.ErrDuplicateName {
			return nil, errors.NewValidationError("name", "already taken")
		}
		log.Error("failed to create roster: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("roster created: id=%d, name=%s", roster.ID, roster.Name)
	return roster, nil
}

func (s *rosterService) UpdateRoster(ctx context.Context, id int64, name string, usernames []string) (*models.Roster, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating roster: id=%d", id)

	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if len(usernames) == 0 {
		return nil, errors.NewValidationError("usernames", "cannot be empty")
	}

	roster, err := s.rosterRepo.Update(ctx, id, name, usernames)
	if err != nil {
		if err == repository.ErrDuplicateName {
			return nil, errors.NewValidationError("name", "already taken")
		}
		log.Error("failed to update roster: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if roster == nil {
		return nil, errors.NewNotFoundError("roster", id)
	}

	return roster, nil
}

func (s *rosterService) DeleteRoster(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting roster: id=%d", id)

	if err := s.rosterRepo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError("roster", id)
		}
		log.Error("failed to delete roster: %v", err)
		return errors.NewInternalError(err)
	}

	return nil
}
