package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/events"
	"github.com/mkrylova/awards-voting/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotActive  = errors.New("voting is not active")
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
)

// MinVotingDuration is the shortest allowed voting window.
const MinVotingDuration = time.Hour

// Actor is the authenticated caller, as resolved by the auth middleware.
// User identity is never taken from request payloads.
type Actor struct {
	ID      int64
	Email   string
	IsAdmin bool
}

type VotingStorage interface {
	SaveVoting(ctx context.Context, title, description string, startDate, endDate time.Time) (int64, error)
	GetVotingByID(ctx context.Context, id int64) (entity.Voting, error)
	ListVotings(ctx context.Context, filter repo.VotingFilter) ([]entity.Voting, error)
	UpdateVoting(ctx context.Context, id int64, title, description string, startDate, endDate time.Time) error
	CloseVoting(ctx context.Context, id int64, endDate time.Time) error
	DeleteVoting(ctx context.Context, id int64) error
}

type NominationStorage interface {
	SaveNomination(ctx context.Context, votingID int64, title, description string) (int64, error)
	GetNominationByID(ctx context.Context, id int64) (entity.Nomination, error)
	ListNominations(ctx context.Context, filter repo.NominationFilter) ([]entity.Nomination, error)
	UpdateNomination(ctx context.Context, id int64, title, description string) error
	DeleteNomination(ctx context.Context, id int64) error
}

type ParticipantStorage interface {
	SaveParticipant(ctx context.Context, nominationID int64, name, description string, avatarURL *string) (int64, error)
	GetParticipantByID(ctx context.Context, id int64) (entity.Participant, error)
	ListParticipants(ctx context.Context, filter repo.ParticipantFilter) ([]entity.Participant, error)
	PopularParticipants(ctx context.Context, limit int) ([]entity.Participant, error)
	UpdateParticipant(ctx context.Context, id int64, name, description string, avatarURL *string) error
	DeleteParticipant(ctx context.Context, id int64) error
}

type VoteStorage interface {
	SaveVote(ctx context.Context, userID, participantID int64, votedAt time.Time) (entity.Vote, error)
	GetVoteByID(ctx context.Context, id int64) (entity.Vote, error)
	ListVotesByUser(ctx context.Context, userID int64, filter repo.VoteFilter) ([]entity.Vote, error)
	DeleteVotesByUserNomination(ctx context.Context, userID, nominationID int64) (int64, error)
	DeleteVote(ctx context.Context, id int64) error
	GetVotingByParticipantID(ctx context.Context, participantID int64) (entity.Voting, error)
}

type LogStorage interface {
	SaveActionLog(ctx context.Context, log *entity.ActionLog) (int64, error)
	GetActionLogs(ctx context.Context) ([]entity.ActionLog, error)
}

// AwardsVoting is the application service for the whole voting domain.
type AwardsVoting struct {
	log          *slog.Logger
	votings      VotingStorage
	nominations  NominationStorage
	participants ParticipantStorage
	votes        VoteStorage
	logs         LogStorage
	publisher    events.Publisher

	// now is the injected clock, every activity window check goes through it.
	now func() time.Time
}

func NewAwardsVoting(
	log *slog.Logger,
	votings VotingStorage,
	nominations NominationStorage,
	participants ParticipantStorage,
	votes VoteStorage,
	logs LogStorage,
	publisher events.Publisher,
) *AwardsVoting {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &AwardsVoting{
		log:          log,
		votings:      votings,
		nominations:  nominations,
		participants: participants,
		votes:        votes,
		logs:         logs,
		publisher:    publisher,
		now:          time.Now,
	}
}

// WithClock replaces the time source, used by tests.
func (s *AwardsVoting) WithClock(now func() time.Time) *AwardsVoting {
	s.now = now
	return s
}

func requireAdmin(actor Actor) error {
	if !actor.IsAdmin {
		return fmt.Errorf("%w: admin rights required", ErrPermission)
	}
	return nil
}

// mapStorageErr lifts repo sentinel errors into the service error kinds
// surfaced to callers.
func mapStorageErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrVotingNotFound),
		errors.Is(err, repo.ErrNominationNotFound),
		errors.Is(err, repo.ErrParticipantNotFound),
		errors.Is(err, repo.ErrVoteNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, err)
	case errors.Is(err, repo.ErrNominationExists),
		errors.Is(err, repo.ErrParticipantExists),
		errors.Is(err, repo.ErrAlreadyVoted):
		return fmt.Errorf("%w: %s", ErrConflict, err)
	}
	return err
}

func (s *AwardsVoting) GetLogs(ctx context.Context, actor Actor) ([]entity.ActionLog, error) {
	const op = "AwardsVoting.GetLogs"

	if err := requireAdmin(actor); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logs, err := s.logs.GetActionLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return logs, nil
}
