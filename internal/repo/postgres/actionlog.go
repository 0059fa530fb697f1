package postgres

import (
	"context"
	"fmt"

	"github.com/mkrylova/awards-voting/internal/entity"
)

func (s *Storage) SaveActionLog(ctx context.Context, log *entity.ActionLog) (int64, error) {
	const op = "storage.postgres.SaveActionLog"

	query := `INSERT INTO action_logs (user_id, action, voting_id, nomination_id, participant_id, vote_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	err := s.db.QueryRowContext(ctx, query,
		log.UserID, log.Action, log.VotingID, log.NominationID, log.ParticipantID, log.VoteID,
	).Scan(&log.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return log.ID, nil
}

func (s *Storage) GetActionLogs(ctx context.Context) ([]entity.ActionLog, error) {
	const op = "storage.postgres.GetActionLogs"

	query := `SELECT id, user_id, action, voting_id, nomination_id, participant_id, vote_id, created_at
		FROM action_logs ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var logs []entity.ActionLog
	for rows.Next() {
		var log entity.ActionLog
		if err := rows.Scan(
			&log.ID, &log.UserID, &log.Action,
			&log.VotingID, &log.NominationID, &log.ParticipantID, &log.VoteID,
			&log.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return logs, nil
}
