package entity

import "time"

// Vote is a single ballot. NominationID is denormalized from the participant
// at insert time so the storage can hold a UNIQUE (user_id, nomination_id)
// constraint, which is what actually guarantees one vote per nomination.
type Vote struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ParticipantID int64     `json:"participant_id"`
	NominationID  int64     `json:"nomination_id"`
	VotedAt       time.Time `json:"voted_at"`
}
