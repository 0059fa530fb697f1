package events

import (
	"context"
	"time"
)

const (
	TypeVoteCast      = "vote_cast"
	TypeVoteRetracted = "vote_retracted"
)

// VoteEvent is emitted after a ballot is cast or retracted. Consumers use it
// for live tallies and analytics; the voting flow never depends on delivery.
type VoteEvent struct {
	Type          string    `json:"type"`
	UserID        int64     `json:"user_id"`
	ParticipantID int64     `json:"participant_id"`
	NominationID  int64     `json:"nomination_id"`
	At            time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event VoteEvent) error
	Close() error
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, VoteEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
