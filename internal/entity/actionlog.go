package entity

import "time"

// ActionLog is an audit record written on every mutation.
type ActionLog struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Action        string    `json:"action"`
	VotingID      *int64    `json:"voting_id,omitempty"`
	NominationID  *int64    `json:"nomination_id,omitempty"`
	ParticipantID *int64    `json:"participant_id,omitempty"`
	VoteID        *int64    `json:"vote_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
