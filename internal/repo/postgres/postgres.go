package postgres

import (
	"errors"
	"fmt"

	"database/sql"

	"github.com/lib/pq"
	"github.com/mkrylova/awards-voting/internal/repo"
)

type Storage struct {
	db *sql.DB
}

func New(postgresURL string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Constraint names must stay in sync with the migrations.
const (
	constraintVoteUserNomination  = "votes_user_nomination_key"
	constraintVoteUserParticipant = "votes_user_participant_key"
	constraintNominationTitle     = "nominations_voting_title_key"
	constraintParticipantName     = "participants_nomination_name_key"

	fkNominationVoting    = "nominations_voting_id_fkey"
	fkParticipantNomation = "participants_nomination_id_fkey"
	fkVoteParticipant     = "votes_participant_id_fkey"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translateConstraint maps postgres constraint violations to repo sentinel
// errors. A unique violation on the votes table is the canonical signal of a
// lost cast-vote race, so it must never surface as a raw driver error.
func translateConstraint(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case constraintVoteUserNomination, constraintVoteUserParticipant:
			return repo.ErrAlreadyVoted
		case constraintNominationTitle:
			return repo.ErrNominationExists
		case constraintParticipantName:
			return repo.ErrParticipantExists
		}
	case pqForeignKeyViolation:
		switch pqErr.Constraint {
		case fkNominationVoting:
			return repo.ErrVotingNotFound
		case fkParticipantNomation:
			return repo.ErrNominationNotFound
		case fkVoteParticipant:
			return repo.ErrParticipantNotFound
		}
	}

	return err
}
