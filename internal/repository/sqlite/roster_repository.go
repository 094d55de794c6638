package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/lrocha/leetboard/internal/logger"
	"github.com/lrocha/leetboard/internal/models"
	"github.com/lrocha/leetboard/internal/repository"
	sqlite3 "github.com/mattn/go-sqlite3"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type rosterRepository struct {
	db *sql.DB
}

// NewRosterRepository creates a new RosterRepository implementation.
func NewRosterRepository(db *sql.DB) repository.RosterRepository {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) Get(ctx context.Context, id int64) (*models.Roster, error) {
	log := logger.FromContext(ctx).WithPrefix("roster_repo")
	log.Debug("getting roster: id=%d", id)

	var roster models.Roster
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, created_at, updated_at
FROM rosters
WHERE id = ?
`, id).Scan(&roster.ID, &roster.Name, &roster.CreatedAt, &roster.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("roster not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get roster: %v", err)
		return nil, err
	}

	members, err := r.loadMembers(ctx, []int64{roster.ID})
	if err != nil {
		log.Error("failed to load roster members: %v", err)
		return nil, err
	}
	roster.Usernames = members[roster.ID]
	return &roster, nil
}

func (r *rosterRepository) List(ctx context.Context, filter models.RosterFilter) ([]models.Roster, error) {
	log := logger.FromContext(ctx).WithPrefix("roster_repo")
	log.Debug("listing rosters: name_contains=%q, limit=%d, offset=%d", filter.NameContains, filter.Limit, filter.Offset)

	query := sqlBuilder.
		Select("id", "name", "created_at", "updated_at").
		From("rosters").
		OrderBy("created_at ASC", "id ASC")
	if filter.NameContains != "" {
		query = query.Where(squirrel.Like{"name": "%" + filter.NameContains + "%"})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list rosters: %v", err)
		return nil, err
	}
	defer rows.Close()

	var rosters []models.Roster
	var ids []int64
	for rows.Next() {
		var roster models.Roster
		if err := rows.Scan(&roster.ID, &roster.Name, &roster.CreatedAt, &roster.UpdatedAt); err != nil {
			log.Error("failed to scan roster row: %v", err)
			return nil, err
		}
		rosters = append(rosters, roster)
		ids = append(ids, roster.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		members, err := r.loadMembers(ctx, ids)
		if err != nil {
			log.Error("failed to load roster members: %v", err)
			return nil, err
		}
		for i := range rosters {
			rosters[i].Usernames = members[rosters[i].ID]
		}
	}

	log.Debug("found %d rosters", len(rosters))
	return rosters, nil
}

func (r *rosterRepository) Count(ctx context.Context, filter models.RosterFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("roster_repo")

	query := sqlBuilder.Select("COUNT(*)").From("rosters")
	if filter.NameContains != "" {
		query = query.Where(squirrel.Like{"name": "%" + filter.NameContains + "%"})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count rosters: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *rosterRepository) Create(ctx context.Context, name string, usernames []string) (*models.Roster, error) {
	log := logger.FromContext(ctx).WithPrefix("roster_repo")
	log.Debug("creating roster: name=%s, members=%d", name, len(usernames))

	var roster models.Roster
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
INSERT INTO rosters (name)
VALUES (?)
RETURNING id, name, created_at, updated_at
`, name).Scan(&roster.ID, &roster.Name, &roster.CreatedAt, &roster.UpdatedAt)
		if err != nil {
			return err
		}
		return insertMembers(ctx, tx, roster.ID, usernames)
	})
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("roster name already taken: %s", name)
			return nil, repository.ErrDuplicateName
		}
		log.Error("failed to create roster: %v", err)
		return nil, err
	}

	roster.Usernames = usernames
	log.Debug("roster created: id=%d", roster.ID)
	return &roster, nil
}

func (r *rosterRepository) Update(ctx context.Context, id int64, name string, usernames []string) (*models.Roster, error) {
	log := logger.FromContext(ctx).WithPrefix("roster_repo")
	log.Debug("updating roster: id=%d, name=%s, members=%d", id, name, len(usernames))

	var roster models.Roster
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
UPDATE rosters
SET name = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
RETURNING id, name, created_at, updated_at
`, name, id).Scan(&roster.ID, &roster.Name, &roster.CreatedAt, &roster.UpdatedAt)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM roster_members WHERE roster_id = ?`, id); err != nil {
			return err
		}
		return insertMembers(ctx, tx, id, usernames)
	})
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("roster not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("roster name already taken: %s", name)
			return nil, repository.ErrDuplicateName
		}
		log.Error("failed to update roster: %v", err)
		return nil, err
	}

	roster.Usernames = usernames
	return &roster, nil
}

func (r *rosterRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("roster_repo")
	log.Debug("deleting roster: id=%d", id)

	return tx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM roster_members WHERE roster_id = ?`, id); err != nil {
			log.Error("failed to delete roster members for %d: %v", id, err)
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM rosters WHERE id = ?`, id)
		if err != nil {
			log.Error("failed to delete roster %d: %v", id, err)
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return sql.ErrNoRows
		}
		log.Debug("roster %d deleted", id)
		return nil
	})
}

// loadMembers returns the ordered username list for each roster id.
func (r *rosterRepository) loadMembers(ctx context.Context, ids []int64) (map[int64][]string, error) {
	query := sqlBuilder.
		Select("roster_id", "username").
		From("roster_members").
		Where(squirrel.Eq{"roster_id": ids}).
		OrderBy("roster_id ASC", "position ASC")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make(map[int64][]string, len(ids))
	for rows.Next() {
		var rosterID int64
		var username string
		if err := rows.Scan(&rosterID, &username); err != nil {
			return nil, err
		}
		members[rosterID] = append(members[rosterID], username)
	}
	return members, rows.Err()
}

func insertMembers(ctx context.Context, tx *sql.Tx, rosterID int64, usernames []string) error {
	for i, username := range usernames {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO roster_members (roster_id, position, username)
VALUES (?, ?, ?)
`, rosterID, i, username); err != nil {
			return err
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
