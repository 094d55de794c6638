package repository

import (
	"context"
	"errors"

	"github.com/lrocha/leetboard/internal/models"
)

// ErrDuplicateName is returned by Create and Update when the roster name is
// already taken.
var ErrDuplicateName = errors.New("roster name already taken")

// RosterRepository handles roster data access. Only the input username lists
// are stored; fetched stats never touch the database.
type RosterRepository interface {
	Get(ctx context.Context, id int64) (*models.Roster, error)
	List(ctx context.Context, filter models.RosterFilter) ([]models.Roster, error)
	Count(ctx context.Context, filter models.RosterFilter) (int, error)
	Create(ctx context.Context, name string, usernames []string) (*models.Roster, error)
	Update(ctx context.Context, id int64, name string, usernames []string) (*models.Roster, error)
	Delete(ctx context.Context, id int64) error
}
