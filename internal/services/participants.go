package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/repo"
)

// DefaultPopularLimit caps the leaderboard size when the caller does not ask
// for a specific one.
const DefaultPopularLimit = 10

func (s *AwardsVoting) CreateParticipant(ctx context.Context, actor Actor, nominationID int64, name, description string, avatarURL *string) (int64, error) {
	const op = "AwardsVoting.CreateParticipant"

	if err := requireAdmin(actor); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%s: %w: name is required", op, ErrValidation)
	}

	participantID, err := s.participants.SaveParticipant(ctx, nominationID, name, description, avatarURL)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if err := s.auditOp(ctx, op, &entity.ActionLog{
		UserID:        actor.ID,
		Action:        op,
		NominationID:  &nominationID,
		ParticipantID: &participantID,
	}); err != nil {
		return 0, err
	}

	return participantID, nil
}

func (s *AwardsVoting) GetParticipantByID(ctx context.Context, id int64) (entity.Participant, error) {
	const op = "AwardsVoting.GetParticipantByID"

	participant, err := s.participants.GetParticipantByID(ctx, id)
	if err != nil {
		return entity.Participant{}, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return participant, nil
}

func (s *AwardsVoting) ListParticipants(ctx context.Context, filter repo.ParticipantFilter) ([]entity.Participant, error) {
	const op = "AwardsVoting.ListParticipants"

	participants, err := s.participants.ListParticipants(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return participants, nil
}

// PopularParticipants returns the leaderboard: participants by descending
// vote count, ties broken by name then id.
func (s *AwardsVoting) PopularParticipants(ctx context.Context, limit int) ([]entity.Participant, error) {
	const op = "AwardsVoting.PopularParticipants"

	if limit <= 0 {
		limit = DefaultPopularLimit
	}

	participants, err := s.participants.PopularParticipants(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return participants, nil
}

func (s *AwardsVoting) UpdateParticipant(ctx context.Context, actor Actor, id int64, name, description string, avatarURL *string) error {
	const op = "AwardsVoting.UpdateParticipant"

	if err := requireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s: %w: name is required", op, ErrValidation)
	}

	if err := s.participants.UpdateParticipant(ctx, id, name, description, avatarURL); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return s.auditOp(ctx, op, &entity.ActionLog{
		UserID:        actor.ID,
		Action:        op,
		ParticipantID: &id,
	})
}

func (s *AwardsVoting) DeleteParticipant(ctx context.Context, actor Actor, id int64) error {
	const op = "AwardsVoting.DeleteParticipant"

	if err := requireAdmin(actor); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.participants.DeleteParticipant(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	return s.auditOp(ctx, op, &entity.ActionLog{
		UserID:        actor.ID,
		Action:        op,
		ParticipantID: &id,
	})
}
