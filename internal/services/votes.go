package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkrylova/awards-voting/internal/entity"
	"github.com/mkrylova/awards-voting/internal/events"
	"github.com/mkrylova/awards-voting/internal/lib/logger"
	"github.com/mkrylova/awards-voting/internal/repo"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// CastVote records the actor's ballot for the participant. The activity
// window is checked here; the one-vote-per-nomination rule is decided by the
// storage uniqueness constraint, so two concurrent casts cannot both win.
func (s *AwardsVoting) CastVote(ctx context.Context, actor Actor, participantID int64) (entity.Vote, error) {
	const op = "AwardsVoting.CastVote"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", actor.ID),
		slog.Int64("participant_id", participantID),
	)

	voting, err := s.votes.GetVotingByParticipantID(ctx, participantID)
	if err != nil {
		return entity.Vote{}, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	now := s.now()
	if !voting.IsActive(now) {
		return entity.Vote{}, fmt.Errorf("%s: %w", op, ErrNotActive)
	}

	vote, err := s.votes.SaveVote(ctx, actor.ID, participantID, now)
	if err != nil {
		return entity.Vote{}, fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	log.Info("vote cast", slog.Int64("vote_id", vote.ID), slog.Int64("nomination_id", vote.NominationID))

	if err := s.auditOp(ctx, op, &entity.ActionLog{
		UserID:        actor.ID,
		Action:        op,
		VotingID:      &voting.ID,
		NominationID:  &vote.NominationID,
		ParticipantID: &participantID,
		VoteID:        &vote.ID,
	}); err != nil {
		return entity.Vote{}, err
	}

	s.publish(ctx, log, events.VoteEvent{
		Type:          events.TypeVoteCast,
		UserID:        actor.ID,
		ParticipantID: participantID,
		NominationID:  vote.NominationID,
		At:            now,
	})

	return vote, nil
}

// RetractVote removes the actor's ballot in the participant's nomination,
// whichever participant it was cast for. Retracting when no ballot exists is
// a no-op.
func (s *AwardsVoting) RetractVote(ctx context.Context, actor Actor, participantID int64) error {
	const op = "AwardsVoting.RetractVote"

	log := s.log.With(
		slog.String("op", op),
		slog.Int64("user_id", actor.ID),
		slog.Int64("participant_id", participantID),
	)

	participant, err := s.participants.GetParticipantByID(ctx, participantID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	removed, err := s.votes.DeleteVotesByUserNomination(ctx, actor.ID, participant.NominationID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if removed == 0 {
		return nil
	}

	log.Info("vote retracted", slog.Int64("nomination_id", participant.NominationID))

	if err := s.auditOp(ctx, op, &entity.ActionLog{
		UserID:        actor.ID,
		Action:        op,
		NominationID:  &participant.NominationID,
		ParticipantID: &participantID,
	}); err != nil {
		return err
	}

	s.publish(ctx, log, events.VoteEvent{
		Type:          events.TypeVoteRetracted,
		UserID:        actor.ID,
		ParticipantID: participantID,
		NominationID:  participant.NominationID,
		At:            s.now(),
	})

	return nil
}

// DeleteVote removes a ballot by id. Only the vote's owner (or an admin) may
// delete it.
func (s *AwardsVoting) DeleteVote(ctx context.Context, actor Actor, voteID int64) error {
	const op = "AwardsVoting.DeleteVote"

	vote, err := s.votes.GetVoteByID(ctx, voteID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if vote.UserID != actor.ID && !actor.IsAdmin {
		return fmt.Errorf("%s: %w: not the vote owner", op, ErrPermission)
	}

	if err := s.votes.DeleteVote(ctx, voteID); err != nil {
		return fmt.Errorf("%s: %w", op, mapStorageErr(err))
	}

	if err := s.auditOp(ctx, op, &entity.ActionLog{
		UserID:       actor.ID,
		Action:       op,
		NominationID: &vote.NominationID,
		VoteID:       &voteID,
	}); err != nil {
		return err
	}

	s.publish(ctx, s.log.With(slog.String("op", op)), events.VoteEvent{
		Type:          events.TypeVoteRetracted,
		UserID:        vote.UserID,
		ParticipantID: vote.ParticipantID,
		NominationID:  vote.NominationID,
		At:            s.now(),
	})

	return nil
}

// VoteHistory lists the actor's own votes, newest first.
func (s *AwardsVoting) VoteHistory(ctx context.Context, actor Actor, limit int) ([]entity.Vote, error) {
	const op = "AwardsVoting.VoteHistory"

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	votes, err := s.votes.ListVotesByUser(ctx, actor.ID, repo.VoteFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return votes, nil
}

// ListVotes lists votes of the target user. A zero target means the actor
// themselves; reading someone else's votes requires admin rights.
func (s *AwardsVoting) ListVotes(ctx context.Context, actor Actor, targetUserID int64, filter repo.VoteFilter) ([]entity.Vote, error) {
	const op = "AwardsVoting.ListVotes"

	if targetUserID == 0 {
		targetUserID = actor.ID
	}
	if targetUserID != actor.ID && !actor.IsAdmin {
		return nil, fmt.Errorf("%s: %w: can only list own votes", op, ErrPermission)
	}

	votes, err := s.votes.ListVotesByUser(ctx, targetUserID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return votes, nil
}

// publish pushes a vote event; delivery failures are logged and never fail
// the request.
func (s *AwardsVoting) publish(ctx context.Context, log *slog.Logger, event events.VoteEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Warn("failed to publish vote event", logger.Err(err))
	}
}
