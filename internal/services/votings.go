package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/repo"
)

type VotingInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

// validateVoting is the single validation point for voting create and update,
// invoked from every entry path.
func validateVoting(input VotingInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !input.StartDate.Before(input.EndDate) {
		return fmt.Errorf("%w: start date must be before end date", ErrValidation)
	}
	if input.EndDate.Sub(input.StartDate) < MinVotingDuration {
		return fmt.Errorf("%w: voting must last at least %s", ErrValidation, MinVotingDuration)
	}
	return nil
}

type VotingsQuery struct {
	Title      string
	Search     string
	Active     bool
	Expired    bool
	StartAfter *time.Time
	EndBefore  *time.Time
	OrderBy    string
	Desc       bool
}

func (s *AwardsVoting) CreateVoting(ctx context.Context, actor Actor, input VotingInput) (int64, error) {
	const op = "AwardsVoting.CreateVoting"

	log := s.log.With(slog.String("op", op), slog.Int64("user_id", actor.ID))

	if err := requireAdmin(actor); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateVoting(input); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	votingID, err := s.votings.SaveVoting(ctx, input.Title, input.Description, input.StartDate, input.EndDate)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	log.Info("voting created", slog.Int64("voting_id", votingID))

	if err := s.audit(ctx, &entity.ActionLog{
		UserID:   actor.ID,
		Action:   op,
		VotingID: &votingID,
	}); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return votingID, nil
}

func (s *AwardsVoting) GetVotingByID(ctx context.Context, id int64) (entity.Voting, error) {
	const op = "AwardsVoting.GetVotingByID"

	voting, err := s.votings.GetVotingByID(ctx, id)
	if err != nil {
		return entity.Voting{}, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return voting, nil
}

func (s *AwardsVoting) ListVotings(ctx context.Context, query VotingsQuery) ([]entity.Voting, error) {
	const op = "AwardsVoting.ListVotings"

	filter := repo.VotingFilter{
		Title:      query.Title,
		Search:     query.Search,
		StartAfter: query.StartAfter,
		EndBefore:  query.EndBefore,
		OrderBy:    query.OrderBy,
		Desc:       query.Desc,
	}
	now := s.now()
	if query.Active {
		filter.ActiveAt = &now
	}
	if query.Expired {
		filter.ExpiredAt = &now
	}

	votings, err := s.votings.ListVotings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return votings, nil
}

// ActiveVotings returns votings whose window contains the current moment.
func (s *AwardsVoting) ActiveVotings(ctx context.Context) ([]entity.Voting, error) {
	const op = "AwardsVoting.ActiveVotings"

	now := s.now()
	votings, err := s.votings.ListVotings(ctx, repo.VotingFilter{ActiveAt: &now})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return votings, nil
}

// ExpiredVotings returns votings whose end date is already in the past.
func (s *AwardsVoting) ExpiredVotings(ctx context.Context) ([]entity.Voting, error) {
	const op = "AwardsVoting.ExpiredVotings"

	now := s.now()
	votings, err := s.votings.ListVotings(ctx, repo.VotingFilter{ExpiredAt: &now})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return votings, nil
}

func (s *AwardsVoting) UpdateVoting(ctx context.Context, actor Actor, id int64, input VotingInput) error {
	const op = "AwardsVoting.UpdateVoting"

	if err := requireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := validateVoting(input); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.votings.UpdateVoting(ctx, id, input.Title, input.Description, input.StartDate, input.EndDate); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return s.auditOp(ctx, op, &entity.ActionLog{
		UserID:   actor.ID,
		Action:   op,
		VotingID: &id,
	})
}

// CloseVoting ends the voting early by moving its end date to now.
func (s *AwardsVoting) CloseVoting(ctx context.Context, actor Actor, id int64) (entity.Voting, error) {
	const op = "AwardsVoting.CloseVoting"

	if err := requireAdmin(actor); err != nil {
		return entity.Voting{}, fmt.Errorf("%s: %w", op, err)
	}

	voting, err := s.votings.GetVotingByID(ctx, id)
	if err != nil {
		return entity.Voting{}, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	now := s.now()
	if now.Before(voting.StartDate) {
		return entity.Voting{}, fmt.Errorf("%s: %w: voting has not started", op, ErrNotActive)
	}

	if err := s.votings.CloseVoting(ctx, id, now); err != nil {
		return entity.Voting{}, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if err := s.auditOp(ctx, op, &entity.ActionLog{
		UserID:   actor.ID,
		Action:   op,
		VotingID: &id,
	}); err != nil {
		return entity.Voting{}, err
	}

	voting.EndDate = now
	return voting, nil
}

func (s *AwardsVoting) DeleteVoting(ctx context.Context, actor Actor, id int64) error {
	const op = "AwardsVoting.DeleteVoting"

	if err := requireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.votings.DeleteVoting(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return s.auditOp(ctx, op, &entity.ActionLog{
		UserID:   actor.ID,
		Action:   op,
		VotingID: &id,
	})
}

func (s *AwardsVoting) audit(ctx context.Context, entry *entity.ActionLog) error {
	_, err := s.logs.SaveActionLog(ctx, entry)
	return err
}

func (s *AwardsVoting) auditOp(ctx context.Context, op string, entry *entity.ActionLog) error {
	if err := s.audit(ctx, entry); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
