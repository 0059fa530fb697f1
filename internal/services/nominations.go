package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/repo"
)

func (s *AwardsVoting) CreateNomination(ctx context.Context, actor Actor, votingID int64, title, description string) (int64, error) {
	const op = "AwardsVoting.CreateNomination"

	if err := requireAdmin(actor); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("%s: %w: title is required", op, ErrValidation)
	}

	nominationID, err := s.nominations.SaveNomination(ctx, votingID, title, description)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if err := s.auditOp(ctx, op, &entity.ActionLog{
		UserID:       actor.ID,
		Action:       op,
		VotingID:     &votingID,
		NominationID: &nominationID,
	}); err != nil {
		return 0, err
	}

	return nominationID, nil
}

func (s *AwardsVoting) GetNominationByID(ctx context.Context, id int64) (entity.Nomination, error) {
	const op = "AwardsVoting.GetNominationByID"

	nomination, err := s.nominations.GetNominationByID(ctx, id)
	if err != nil {
		return entity.Nomination{}, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return nomination, nil
}

func (s *AwardsVoting) ListNominations(ctx context.Context, filter repo.NominationFilter) ([]entity.Nomination, error) {
	const op = "AwardsVoting.ListNominations"

	nominations, err := s.nominations.ListNominations(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return nominations, nil
}

func (s *AwardsVoting) UpdateNomination(ctx context.Context, actor Actor, id int64, title, description string) error {
	const op = "AwardsVoting.UpdateNomination"

	if err := requireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%s: %w: title is required", op, ErrValidation)
	}

	if err := s.nominations.UpdateNomination(ctx, id, title, description); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return s.auditOp(ctx, op, &entity.ActionLog{
		UserID:       actor.ID,
		Action:       op,
		NominationID: &id,
	})
}

func (s *AwardsVoting) DeleteNomination(ctx context.Context, actor Actor, id int64) error {
	const op = "AwardsVoting.DeleteNomination"

	if err := requireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.nominations.DeleteNomination(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return s.auditOp(ctx, op, &entity.ActionLog{
		UserID:       actor.ID,
		Action:       op,
		NominationID: &id,
	})
}
