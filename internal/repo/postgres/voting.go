package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/repo"
)

func (s *Storage) SaveVoting(ctx context.Context, title, description string, startDate, endDate time.Time) (int64, error) {
	const op = "storage.postgres.SaveVoting"

	query := `INSERT INTO votings (title, description, start_date, end_date) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, title, description, startDate, endDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateConstraint(err))
	}

	return id, nil
}

func (s *Storage) GetVotingByID(ctx context.Context, id int64) (entity.Voting, error) {
	const op = "storage.postgres.GetVotingByID"

	query := `SELECT id, title, description, start_date, end_date, created_at, updated_at FROM votings WHERE id = $1`

	var voting entity.Voting
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&voting.ID, &voting.Title, &voting.Description,
		&voting.StartDate, &voting.EndDate, &voting.CreatedAt, &voting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Voting{}, fmt.Errorf("%s: %w", op, repo.ErrVotingNotFound)
		}
		return entity.Voting{}, fmt.Errorf("%s: %w", op, err)
	}

	return voting, nil
}

func (s *Storage) ListVotings(ctx context.Context, filter repo.VotingFilter) ([]entity.Voting, error) {
	const op = "storage.postgres.ListVotings"

	query := `SELECT id, title, description, start_date, end_date, created_at, updated_at FROM votings`

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Title != "" {
		conds = append(conds, "title ILIKE "+arg("%"+filter.Title+"%"))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}
	if filter.ActiveAt != nil {
		p := arg(*filter.ActiveAt)
		conds = append(conds, "start_date <= "+p+" AND end_date >= "+p)
	}
	if filter.ExpiredAt != nil {
		conds = append(conds, "end_date < "+arg(*filter.ExpiredAt))
	}
	if filter.StartAfter != nil {
		conds = append(conds, "start_date >= "+arg(*filter.StartAfter))
	}
	if filter.EndBefore != nil {
		conds = append(conds, "end_date <= "+arg(*filter.EndBefore))
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	switch filter.OrderBy {
	case "start_date", "end_date", "created_at":
		dir := "ASC"
		if filter.Desc {
			dir = "DESC"
		}
		query += " ORDER BY " + filter.OrderBy + " " + dir
	default:
		query += " ORDER BY created_at DESC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var votings []entity.Voting
	for rows.Next() {
		var voting entity.Voting
		if err := rows.Scan(
			&voting.ID, &voting.Title, &voting.Description,
			&voting.StartDate, &voting.EndDate, &voting.CreatedAt, &voting.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		votings = append(votings, voting)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return votings, nil
}

func (s *Storage) UpdateVoting(ctx context.Context, id int64, title, description string, startDate, endDate time.Time) error {
	const op = "storage.postgres.UpdateVoting"

	const query = `UPDATE votings SET title = $1, description = $2, start_date = $3, end_date = $4, updated_at = NOW() WHERE id = $5`

	res, err := s.db.ExecContext(ctx, query, title, description, startDate, endDate, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateConstraint(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, repo.ErrVotingNotFound)
	}
	return nil
}

// CloseVoting force-ends the voting by moving its end date to the given moment.
func (s *Storage) CloseVoting(ctx context.Context, id int64, endDate time.Time) error {
	const op = "storage.postgres.CloseVoting"

	const query = `UPDATE votings SET end_date = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, endDate, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, repo.ErrVotingNotFound)
	}
	return nil
}

func (s *Storage) DeleteVoting(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteVoting"

	query := `DELETE FROM votings WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrVotingNotFound
	}

	return nil
}
