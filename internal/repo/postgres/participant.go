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

const participantColumns = `p.id, p.nomination_id, p.name, p.description, p.avatar_url, p.created_at, COUNT(v.id)`

func (s *Storage) SaveParticipant(ctx context.Context, nominationID int64, name, description string, avatarURL *string) (int64, error) {
	const op = "storage.postgres.SaveParticipant"

	query := `INSERT INTO participants (nomination_id, name, description, avatar_url) VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := s.db.QueryRowContext(ctx, query, nominationID, name, description, avatarURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateConstraint(err))
	}

	return id, nil
}

func (s *Storage) GetParticipantByID(ctx context.Context, id int64) (entity.Participant, error) {
	const op = "storage.postgres.GetParticipantByID"

	query := `SELECT ` + participantColumns + `
		FROM participants p
		LEFT JOIN votes v ON v.participant_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`

	var participant entity.Participant
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&participant.ID, &participant.NominationID, &participant.Name,
		&participant.Description, &participant.AvatarURL, &participant.CreatedAt,
		&participant.VotesCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Participant{}, fmt.Errorf("%s: %w", op, repo.ErrParticipantNotFound)
		}
		return entity.Participant{}, fmt.Errorf("%s: %w", op, err)
	}

	return participant, nil
}

func (s *Storage) ListParticipants(ctx context.Context, filter repo.ParticipantFilter) ([]entity.Participant, error) {
	const op = "storage.postgres.ListParticipants"

	query := `SELECT ` + participantColumns + `
		FROM participants p
		LEFT JOIN votes v ON v.participant_id = p.id`

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.NominationID != nil {
		conds = append(conds, "p.nomination_id = "+arg(*filter.NominationID))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(p.name ILIKE "+p+" OR p.description ILIKE "+p+")")
	}

	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " GROUP BY p.id ORDER BY p.name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanParticipants(rows, op)
}

// PopularParticipants returns up to limit participants ordered by descending
// vote count. Ties are broken by name and then id, so the order is stable.
func (s *Storage) PopularParticipants(ctx context.Context, limit int) ([]entity.Participant, error) {
	const op = "storage.postgres.PopularParticipants"

	query := `SELECT ` + participantColumns + `
		FROM participants p
		LEFT JOIN votes v ON v.participant_id = p.id
		GROUP BY p.id
		ORDER BY COUNT(v.id) DESC, p.name ASC, p.id ASC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return scanParticipants(rows, op)
}

func scanParticipants(rows *sql.Rows, op string) ([]entity.Participant, error) {
	var participants []entity.Participant
	for rows.Next() {
		var participant entity.Participant
		if err := rows.Scan(
			&participant.ID, &participant.NominationID, &participant.Name,
			&participant.Description, &participant.AvatarURL, &participant.CreatedAt,
			&participant.VotesCount,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		participants = append(participants, participant)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return participants, nil
}

func (s *Storage) UpdateParticipant(ctx context.Context, id int64, name, description string, avatarURL *string) error {
	const op = "storage.postgres.UpdateParticipant"

	const query = `UPDATE participants SET name = $1, description = $2, avatar_url = $3 WHERE id = $4`

	res, err := s.db.ExecContext(ctx, query, name, description, avatarURL, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateConstraint(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, repo.ErrParticipantNotFound)
	}
	return nil
}

func (s *Storage) DeleteParticipant(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteParticipant"

	query := `DELETE FROM participants WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrParticipantNotFound
	}

	return nil
}
