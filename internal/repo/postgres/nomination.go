package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/repo"
)

const nominationColumns = `n.id, n.voting_id, n.title, n.description, COUNT(p.id)`

func (s *Storage) SaveNomination(ctx context.Context, votingID int64, title, description string) (int64, error) {
	const op = "storage.postgres.SaveNomination"

	query := `INSERT INTO nominations (voting_id, title, description) VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, votingID, title, description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateConstraint(err))
	}

	return id, nil
}

func (s *Storage) GetNominationByID(ctx context.Context, id int64) (entity.Nomination, error) {
	const op = "storage.postgres.GetNominationByID"

	query := `SELECT ` + nominationColumns + `
		FROM nominations n
		LEFT JOIN participants p ON p.nomination_id = n.id
		WHERE n.id = $1
		GROUP BY n.id`

	var nomination entity.Nomination
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&nomination.ID, &nomination.VotingID, &nomination.Title,
		&nomination.Description, &nomination.ParticipantsCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Nomination{}, fmt.Errorf("%s: %w", op, repo.ErrNominationNotFound)
		}
		return entity.Nomination{}, fmt.Errorf("%s: %w", op, err)
	}

	return nomination, nil
}

func (s *Storage) ListNominations(ctx context.Context, filter repo.NominationFilter) ([]entity.Nomination, error) {
	const op = "storage.postgres.ListNominations"

	query := `SELECT ` + nominationColumns + `
		FROM nominations n
		LEFT JOIN participants p ON p.nomination_id = n.id`

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.VotingID != nil {
		conds = append(conds, "n.voting_id = "+arg(*filter.VotingID))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(n.title ILIKE "+p+" OR n.description ILIKE "+p+")")
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY n.id ORDER BY n.title"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var nominations []entity.Nomination
	for rows.Next() {
		var nomination entity.Nomination
		if err := rows.Scan(
			&nomination.ID, &nomination.VotingID, &nomination.Title,
			&nomination.Description, &nomination.ParticipantsCount,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		nominations = append(nominations, nomination)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return nominations, nil
}

func (s *Storage) UpdateNomination(ctx context.Context, id int64, title, description string) error {
	const op = "storage.postgres.UpdateNomination"

	const query = `UPDATE nominations SET title = $1, description = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, title, description, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateConstraint(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, repo.ErrNominationNotFound)
	}
	return nil
}

func (s *Storage) DeleteNomination(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteNomination"

	query := `DELETE FROM nominations WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrNominationNotFound
	}

	return nil
}
