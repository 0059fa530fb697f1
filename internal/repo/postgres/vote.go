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

// SaveVote inserts the ballot in a single statement. The participant's
// nomination is resolved inside the INSERT, so the uniqueness constraint on
// (user_id, nomination_id) decides concurrent casts at the storage level:
// the loser of a race gets a unique violation, translated to ErrAlreadyVoted.
func (s *Storage) SaveVote(ctx context.Context, userID, participantID int64, votedAt time.Time) (entity.Vote, error) {
	const op = "storage.postgres.SaveVote"

	query := `INSERT INTO votes (user_id, participant_id, nomination_id, voted_at)
		SELECT $1, p.id, p.nomination_id, $3
		FROM participants p
		WHERE p.id = $2
		RETURNING id, user_id, participant_id, nomination_id, voted_at`

	var vote entity.Vote
	err := s.db.QueryRowContext(ctx, query, userID, participantID, votedAt).Scan(
		&vote.ID, &vote.UserID, &vote.ParticipantID, &vote.NominationID, &vote.VotedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Vote{}, fmt.Errorf("%s: %w", op, repo.ErrParticipantNotFound)
		}
		return entity.Vote{}, fmt.Errorf("%s: %w", op, translateConstraint(err))
	}

	return vote, nil
}

func (s *Storage) GetVoteByID(ctx context.Context, id int64) (entity.Vote, error) {
	const op = "storage.postgres.GetVoteByID"

	query := `SELECT id, user_id, participant_id, nomination_id, voted_at FROM votes WHERE id = $1`

	var vote entity.Vote
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&vote.ID, &vote.UserID, &vote.ParticipantID, &vote.NominationID, &vote.VotedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Vote{}, fmt.Errorf("%s: %w", op, repo.ErrVoteNotFound)
		}
		return entity.Vote{}, fmt.Errorf("%s: %w", op, err)
	}

	return vote, nil
}

func (s *Storage) ListVotesByUser(ctx context.Context, userID int64, filter repo.VoteFilter) ([]entity.Vote, error) {
	const op = "storage.postgres.ListVotesByUser"

	query := `SELECT v.id, v.user_id, v.participant_id, v.nomination_id, v.voted_at FROM votes v`

	conds := []string{"v.user_id = $1"}
	args := []any{userID}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.VotingID != nil {
		query += " JOIN nominations n ON n.id = v.nomination_id"
		conds = append(conds, "n.voting_id = "+arg(*filter.VotingID))
	}
	if filter.ParticipantID != nil {
		conds = append(conds, "v.participant_id = "+arg(*filter.ParticipantID))
	}
	if filter.NominationID != nil {
		conds = append(conds, "v.nomination_id = "+arg(*filter.NominationID))
	}

	query += " WHERE " + strings.Join(conds, " AND ") + " ORDER BY v.voted_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var votes []entity.Vote
	for rows.Next() {
		var vote entity.Vote
		if err := rows.Scan(&vote.ID, &vote.UserID, &vote.ParticipantID, &vote.NominationID, &vote.VotedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		votes = append(votes, vote)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return votes, nil
}

// DeleteVotesByUserNomination removes the user's ballot in the nomination,
// whichever participant it was cast for. Returns the number of removed rows;
// zero is not an error, retracting a missing vote is a no-op.
func (s *Storage) DeleteVotesByUserNomination(ctx context.Context, userID, nominationID int64) (int64, error) {
	const op = "storage.postgres.DeleteVotesByUserNomination"

	query := `DELETE FROM votes WHERE user_id = $1 AND nomination_id = $2`

	res, err := s.db.ExecContext(ctx, query, userID, nominationID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (s *Storage) DeleteVote(ctx context.Context, id int64) error {
	const op = "storage.postgres.DeleteVote"

	query := `DELETE FROM votes WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return repo.ErrVoteNotFound
	}

	return nil
}

// GetVotingByParticipantID walks participant -> nomination -> voting, used to
// check the activity window before casting.
func (s *Storage) GetVotingByParticipantID(ctx context.Context, participantID int64) (entity.Voting, error) {
	const op = "storage.postgres.GetVotingByParticipantID"

	query := `SELECT vt.id, vt.title, vt.description, vt.start_date, vt.end_date, vt.created_at, vt.updated_at
		FROM participants p
		JOIN nominations n ON n.id = p.nomination_id
		JOIN votings vt ON vt.id = n.voting_id
		WHERE p.id = $1`

	var voting entity.Voting
	err := s.db.QueryRowContext(ctx, query, participantID).Scan(
		&voting.ID, &voting.Title, &voting.Description,
		&voting.StartDate, &voting.EndDate, &voting.CreatedAt, &voting.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Voting{}, fmt.Errorf("%s: %w", op, repo.ErrParticipantNotFound)
		}
		return entity.Voting{}, fmt.Errorf("%s: %w", op, err)
	}

	return voting, nil
}
